// Package board handles the terminal display of the game and all keyboard
// interactions.
package board

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/ardanlabs/connect4/cmd/connect/game"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const (
	cellWidth   = 5
	cellHeight  = 2
	padTop      = 4
	padLeft     = 1
	startColumn = 3
)

const (
	hozTopRune = '━'
	hozBotRune = '▅'
	verRune    = '┃'
	space      = ' '
)

const (
	stoneRed    = "🔴"
	stoneYellow = "🟡"
	stoneDimmed = "⚪"
)

// DefaultInfoDelay is how long a transient message stays on the screen.
const DefaultInfoDelay = 1500 * time.Millisecond

// Controller represents the game being played on the board.
type Controller interface {
	SelectColumn(column int) error
	Reset()
	State() game.BoardState
}

// Speaker represents something that can play audio feedback.
type Speaker interface {
	Say(msg string)
	Toggle() bool
}

// Config represents what is needed to construct the board.
type Config struct {
	Log       *slog.Logger
	Screen    tcell.Screen
	Speaker   Speaker
	InfoDelay time.Duration
}

// Board represents the terminal display of the game. It implements the
// game.Notifier interface. All methods except Shutdown must be called from the
// goroutine that drives the game.
type Board struct {
	log         *slog.Logger
	screen      tcell.Screen
	style       tcell.Style
	speaker     Speaker
	state       game.BoardState
	inputCol    int
	info        string
	infoSeq     int
	infoTimer   *time.Timer
	infoDelay   time.Duration
	boardWidth  int
	boardHeight int
}

// New contructs a game board and renders the board.
func New(cfg Config) (*Board, error) {
	if cfg.Log == nil {
		cfg.Log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if cfg.InfoDelay <= 0 {
		cfg.InfoDelay = DefaultInfoDelay
	}

	screen := cfg.Screen
	if screen == nil {
		tcell.SetEncodingFallback(tcell.EncodingFallbackASCII)

		var err error
		screen, err = tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("new screen: %w", err)
		}
	}

	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("screen init: %w", err)
	}

	style := tcell.StyleDefault
	style = style.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)

	board := Board{
		log:         cfg.Log,
		screen:      screen,
		style:       style,
		speaker:     cfg.Speaker,
		inputCol:    startColumn,
		infoDelay:   cfg.InfoDelay,
		boardWidth:  game.Columns()*cellWidth + 1,
		boardHeight: game.Rows() * cellHeight,
	}

	board.drawInit()

	return &board, nil
}

// Shutdown tears down the game board.
func (b *Board) Shutdown() {
	if b.infoTimer != nil {
		b.infoTimer.Stop()
	}

	b.screen.Fini()
}

// Run starts a goroutine to handle terminal events for the controller. The
// returned channel is closed when the user quits.
func (b *Board) Run(ctrl Controller) chan struct{} {
	b.state = ctrl.State()
	b.drawInit()

	return b.pollEvents(ctrl)
}

// =============================================================================
// game.Notifier implementation

// GameStarted clears the board for a new game.
func (b *Board) GameStarted(state game.BoardState) {
	b.state = state
	b.inputCol = startColumn
	b.cancelInfo()
	b.info = ""

	b.drawInit()
}

// StonePlaced draws the new stone.
func (b *Board) StonePlaced(state game.BoardState, move game.Move) {
	b.state = state

	b.clearMarker()
	b.drawStone(move.Column, move.Row, stoneFor(move.Player))
	b.screen.Beep()
	b.screen.Show()
}

// SlotFull tells the player the column can't take another stone.
func (b *Board) SlotFull(column int) {
	b.screen.Beep()
	b.flash(fmt.Sprintf("Slot %d is not free", column+1))
}

// TurnChanged shows whose turn it is and puts the marker back in the middle.
func (b *Board) TurnChanged(player game.Player) {
	b.state.Current = player
	b.inputCol = startColumn

	b.drawTurn()
	b.drawMarker()
}

// Won highlights the winning stones and announces the winner.
func (b *Board) Won(state game.BoardState) {
	b.state = state

	msg := fmt.Sprintf("%s wins", state.Winner.Title())
	b.showResult(msg)
}

// Draw announces the game ended without a winner.
func (b *Board) Draw(state game.BoardState) {
	b.state = state

	b.showResult("Draw")
}

// =============================================================================

func (b *Board) showResult(msg string) {
	b.cancelInfo()
	b.info = msg

	b.clearMarker()
	b.drawStones()
	b.drawTurn()
	b.drawInfo()

	if b.speaker != nil {
		b.speaker.Say(msg)
	}
}

// flash displays a message that clears itself after the info delay. A newer
// message replaces the older one and restarts the delay.
func (b *Board) flash(msg string) {
	b.cancelInfo()

	b.info = msg
	b.drawInfo()

	seq := b.infoSeq
	b.infoTimer = time.AfterFunc(b.infoDelay, func() {
		if err := b.screen.PostEvent(tcell.NewEventInterrupt(infoExpired{seq: seq})); err != nil {
			b.log.Error("post info expired", "ERROR", err)
		}
	})
}

// cancelInfo stops any pending clear. An expiry already posted to the event
// queue is ignored because the sequence moves on.
func (b *Board) cancelInfo() {
	b.infoSeq++

	if b.infoTimer != nil {
		b.infoTimer.Stop()
		b.infoTimer = nil
	}
}

// expireInfo clears the message if it is the one the timer was started for.
func (b *Board) expireInfo(seq int) {
	if seq != b.infoSeq {
		return
	}

	b.infoTimer = nil
	b.info = ""
	b.drawInfo()
}

func (b *Board) moveMarker(delta int) {
	if b.state.GameOver() {
		return
	}

	col := b.inputCol + delta
	if col < 0 || col >= game.Columns() {
		return
	}

	b.clearMarker()
	b.inputCol = col
	b.drawMarker()
}

// =============================================================================

func (b *Board) drawInit() {
	b.drawEmptyGameBoard()
	b.drawStones()
	b.drawTurn()
	b.drawInfo()

	if !b.state.GameOver() {
		b.drawMarker()
	}

	b.screen.Show()
}

func (b *Board) drawEmptyGameBoard() {
	b.screen.Clear()

	style := b.style
	style = style.Background(tcell.ColorBlack).Foreground(tcell.ColorGrey)

	for h := 0; h <= b.boardHeight; h++ {
		for w := 0; w < b.boardWidth; w++ {

			// Clear the entire line.
			b.screen.SetContent(w+padLeft, h+padTop, space, nil, style)

			if h%cellHeight == 0 {

				// These are the '━' characters creating each row.
				b.screen.SetContent(w+padLeft, h+padTop, hozTopRune, nil, style)

				if h == b.boardHeight {

					// These are the '▅' characters creating the bottom row.
					b.screen.SetContent(w+padLeft, h+padTop, hozBotRune, nil, style)
				}
			}

			if w%cellWidth == 0 {

				// These are the '┃' characters creating each column.
				b.screen.SetContent(w+padLeft, h+padTop, verRune, nil, style)
			}
		}
	}

	b.print(10, 1, "Connect 4")
	b.print(0, b.boardHeight+padTop+1, "   ①    ②    ③    ④    ⑤    ⑥    ⑦")

	b.print(b.boardWidth+3, padTop-1, "<1-7> drop   <←/→> move   <enter> drop")
	b.print(b.boardWidth+3, padTop, "<r> new game   <s> sound   <q> quit")

	b.drawBox(b.boardWidth+3, padTop+2, b.boardWidth+43, padTop+7)
}

func (b *Board) drawStones() {
	for col := range b.state.Cells {
		for row, cell := range b.state.Cells[col] {
			if !cell.HasPiece {
				continue
			}

			stone := stoneFor(cell.Player)
			if b.state.Status == game.StatusWon && b.state.Marks[col][row] == game.MarkDimmed {
				stone = stoneDimmed
			}

			b.drawStone(col, row, stone)
		}
	}

	b.screen.Show()
}

func (b *Board) drawStone(col int, row int, stone string) {
	x, y := cellPosition(col, row)
	b.print(x, y, stone)
}

func (b *Board) drawTurn() {
	x := b.boardWidth + 5
	y := padTop + 3

	b.print(x, y, fmt.Sprintf("%-30s", ""))

	switch b.state.Status {
	case game.StatusInProgress:
		b.print(x, y, fmt.Sprintf("Turn: %s %s", b.state.Current.Title(), stoneFor(b.state.Current)))
	default:
		b.print(x, y, "Game over")
	}
}

func (b *Board) drawInfo() {
	x := b.boardWidth + 5
	y := padTop + 5

	b.print(x, y, fmt.Sprintf("%-30s", ""))
	b.print(x, y, b.info)
}

func (b *Board) drawMarker() {
	b.print(markerColumn(b.inputCol), padTop-1, stoneFor(b.state.Current))
}

func (b *Board) clearMarker() {
	b.print(markerColumn(b.inputCol), padTop-1, "  ")
}

// drawBox draws an empty box on the screen.
func (b *Board) drawBox(x int, y int, width int, height int) {
	style := b.style
	style = style.Background(tcell.ColorBlack).Foreground(tcell.ColorGray)

	for h := y; h < height; h++ {
		for w := x; w < width; w++ {
			b.screen.SetContent(w, h, ' ', nil, b.style)
		}
	}

	for h := y; h < height; h++ {
		for w := x; w < width; w++ {
			if h == y {
				b.screen.SetContent(w, h, '▀', nil, style)
			}
			if h == height-1 {
				b.screen.SetContent(w, h, '▄', nil, style)
			}
			if w == x || w == width-1 {
				b.screen.SetContent(w, h, '█', nil, style)
			}
		}
	}

	b.screen.Show()
}

func (b *Board) print(x, y int, str string) {
	for _, c := range str {
		var comb []rune
		w := runewidth.RuneWidth(c)
		if w == 0 {
			comb = []rune{c}
			c = ' '
			w = 1
		}
		b.screen.SetContent(x, y, c, comb, b.style)
		x += w
	}
	b.screen.Show()
}

// =============================================================================

// cellPosition converts a board cell to screen coordinates. Row 0 is drawn at
// the bottom of the grid.
func cellPosition(col int, row int) (int, int) {
	x := markerColumn(col)
	y := padTop + 1 + cellHeight*(game.Rows()-1-row)
	return x, y
}

func markerColumn(col int) int {
	return padLeft + 2 + cellWidth*col
}

func stoneFor(player game.Player) string {
	switch player {
	case game.Players.Red:
		return stoneRed
	case game.Players.Yellow:
		return stoneYellow
	}

	return "  "
}
