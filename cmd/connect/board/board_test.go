package board

import (
	"strings"
	"testing"
	"time"

	"github.com/ardanlabs/connect4/cmd/connect/game"
	"github.com/gdamore/tcell/v2"
	"github.com/google/go-cmp/cmp"
)

type speaker struct {
	said []string
	on   bool
}

func (s *speaker) Say(msg string) { s.said = append(s.said, msg) }

func (s *speaker) Toggle() bool {
	s.on = !s.on
	return s.on
}

func newTestBoard(t *testing.T, delay time.Duration) (*Board, tcell.SimulationScreen, *speaker) {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	spk := speaker{on: true}

	b, err := New(Config{Screen: screen, Speaker: &spk, InfoDelay: delay})
	if err != nil {
		t.Fatalf("new board: %v", err)
	}
	t.Cleanup(b.Shutdown)

	return b, screen, &spk
}

func line(screen tcell.SimulationScreen, y int) string {
	cells, width, _ := screen.GetContents()

	var s strings.Builder
	for x := range width {
		runes := cells[y*width+x].Runes
		if len(runes) == 0 {
			s.WriteRune(' ')
			continue
		}
		s.WriteRune(runes[0])
	}

	return s.String()
}

func stoneAt(screen tcell.SimulationScreen, col int, row int) string {
	cells, width, _ := screen.GetContents()

	x, y := cellPosition(col, row)
	runes := cells[y*width+x].Runes
	if len(runes) == 0 {
		return ""
	}

	return string(runes[0])
}

// panelText returns the text inside the side panel on line y.
func panelText(screen tcell.SimulationScreen, y int) string {
	x := game.Columns()*cellWidth + 1 + 5
	runes := []rune(line(screen, y))
	return strings.TrimSpace(string(runes[x : x+30]))
}

func infoLine(screen tcell.SimulationScreen) string {
	return panelText(screen, padTop+5)
}

func turnLine(screen tcell.SimulationScreen) string {
	return panelText(screen, padTop+3)
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func press(t *testing.T, b *Board, ctrl Controller, events ...*tcell.EventKey) {
	t.Helper()

	for _, ev := range events {
		if !b.handleEvent(ctrl, ev) {
			t.Fatalf("unexpected quit on %v", ev.Name())
		}
	}
}

func TestRunDropsStonesFromKeys(t *testing.T) {
	b, screen, _ := newTestBoard(t, time.Hour)
	g := game.New(nil, b)

	quit := b.Run(g)

	screen.InjectKey(tcell.KeyRune, '1', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, '1', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, '2', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case <-quit:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the event loop to quit")
	}

	if g.Stones() != 3 {
		t.Fatalf("expected 3 stones, got %d", g.Stones())
	}

	if got := stoneAt(screen, 0, 0); got != stoneRed {
		t.Fatalf("expected red at 0/0, got %q", got)
	}
	if got := stoneAt(screen, 0, 1); got != stoneYellow {
		t.Fatalf("expected yellow at 0/1, got %q", got)
	}
	if got := stoneAt(screen, 1, 0); got != stoneRed {
		t.Fatalf("expected red at 1/0, got %q", got)
	}
	if !strings.Contains(turnLine(screen), "Turn: Yellow") {
		t.Fatalf("expected yellow's turn, got %q", turnLine(screen))
	}
}

func TestSlotFullMessageClears(t *testing.T) {
	b, screen, _ := newTestBoard(t, 10*time.Millisecond)
	g := game.New(nil, b)

	quit := b.Run(g)

	for range game.Rows() + 1 {
		screen.InjectKey(tcell.KeyRune, '4', tcell.ModNone)
	}

	time.Sleep(500 * time.Millisecond)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case <-quit:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the event loop to quit")
	}

	if got := infoLine(screen); got != "" {
		t.Fatalf("expected the info line to be cleared, got %q", got)
	}
	if g.Current() != game.Players.Red || g.Stones() != game.Rows() {
		t.Fatalf("unexpected game state: %s %d", g.Current(), g.Stones())
	}
}

func TestNewerMessageOutlivesOlderTimer(t *testing.T) {
	b, screen, _ := newTestBoard(t, time.Hour)

	b.SlotFull(2)
	if got := infoLine(screen); got != "Slot 3 is not free" {
		t.Fatalf("unexpected info %q", got)
	}
	first := b.infoSeq

	b.SlotFull(4)
	b.handleEvent(nil, tcell.NewEventInterrupt(infoExpired{seq: first}))

	if got := infoLine(screen); got != "Slot 5 is not free" {
		t.Fatalf("expected the newer message to stay, got %q", got)
	}

	b.handleEvent(nil, tcell.NewEventInterrupt(infoExpired{seq: b.infoSeq}))

	if got := infoLine(screen); got != "" {
		t.Fatalf("expected the info line to be cleared, got %q", got)
	}
}

func TestWinHighlightsAndCancelsInfo(t *testing.T) {
	b, screen, spk := newTestBoard(t, time.Hour)
	g := game.New(nil, b)

	if err := g.Play(0, 0, 0, 0, 0, 0, 0); err != nil {
		t.Fatalf("play: %v", err)
	}
	if got := infoLine(screen); got != "Slot 1 is not free" {
		t.Fatalf("unexpected info %q", got)
	}
	pending := b.infoSeq

	if err := g.Play(1, 2, 1, 2, 1, 2, 1); err != nil {
		t.Fatalf("play: %v", err)
	}

	b.handleEvent(nil, tcell.NewEventInterrupt(infoExpired{seq: pending}))

	if got := infoLine(screen); got != "Red wins" {
		t.Fatalf("expected the result to stay, got %q", got)
	}
	if diff := cmp.Diff([]string{"Red wins"}, spk.said); diff != "" {
		t.Fatalf("wrong speech (-want +got):\n%s", diff)
	}
	if got := stoneAt(screen, 1, 3); got != stoneRed {
		t.Fatalf("expected winning stone to stay red, got %q", got)
	}
	if got := stoneAt(screen, 0, 0); got != stoneDimmed {
		t.Fatalf("expected other stones to be dimmed, got %q", got)
	}
	if !strings.Contains(turnLine(screen), "Game over") {
		t.Fatalf("expected game over, got %q", turnLine(screen))
	}

	press(t, b, g, key('5'))
	if g.Stones() != 13 {
		t.Fatalf("expected input to be ignored, got %d stones", g.Stones())
	}
}

func TestDrawAnnounced(t *testing.T) {
	b, screen, spk := newTestBoard(t, time.Hour)
	g := game.New(nil, b)

	moves := []int{
		5, 4, 5, 0, 6, 2, 4, 5, 5, 0, 4, 1, 1, 0, 4, 5, 6, 5, 3, 1, 1,
		2, 2, 6, 2, 6, 6, 3, 6, 2, 0, 3, 0, 3, 3, 4, 3, 1, 4, 2, 1, 0,
	}
	for _, m := range moves {
		press(t, b, g, key(rune('1'+m)))
	}

	if g.Status() != game.StatusDraw {
		t.Fatalf("expected a draw, got %s", g.Status())
	}
	if got := infoLine(screen); got != "Draw" {
		t.Fatalf("unexpected info %q", got)
	}
	if diff := cmp.Diff([]string{"Draw"}, spk.said); diff != "" {
		t.Fatalf("wrong speech (-want +got):\n%s", diff)
	}
}

func TestMarkerDrop(t *testing.T) {
	b, screen, _ := newTestBoard(t, time.Hour)
	g := game.New(nil, b)

	right := tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone)
	left := tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone)
	enter := tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)

	press(t, b, g, right, right, enter)
	if got := stoneAt(screen, startColumn+2, 0); got != stoneRed {
		t.Fatalf("expected red in column %d, got %q", startColumn+2, got)
	}

	for range game.Columns() + 2 {
		press(t, b, g, left)
	}
	press(t, b, g, key(' '))
	if got := stoneAt(screen, 0, 0); got != stoneYellow {
		t.Fatalf("expected yellow in column 0, got %q", got)
	}
}

func TestResetKey(t *testing.T) {
	b, screen, _ := newTestBoard(t, time.Hour)
	g := game.New(nil, b)

	press(t, b, g, key('3'), key('3'), key('r'))

	if g.Stones() != 0 {
		t.Fatalf("expected an empty game, got %d stones", g.Stones())
	}
	if got := stoneAt(screen, 2, 0); got == stoneRed || got == stoneYellow {
		t.Fatalf("expected cleared cell, got %q", got)
	}
	if !strings.Contains(turnLine(screen), "Turn: Red") {
		t.Fatalf("expected red's turn, got %q", turnLine(screen))
	}
}

func TestSoundToggle(t *testing.T) {
	b, screen, spk := newTestBoard(t, time.Hour)
	g := game.New(nil, b)

	press(t, b, g, key('s'))

	if spk.on {
		t.Fatal("expected sound to be off")
	}
	if got := infoLine(screen); got != "Sound off" {
		t.Fatalf("unexpected info %q", got)
	}
}

func TestQuitKeys(t *testing.T) {
	b, _, _ := newTestBoard(t, time.Hour)
	g := game.New(nil, b)

	events := []*tcell.EventKey{
		key('q'),
		tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl),
	}

	for _, ev := range events {
		if b.handleEvent(g, ev) {
			t.Fatalf("expected %s to quit", ev.Name())
		}
	}
}
