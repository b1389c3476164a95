package board

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/ardanlabs/connect4/cmd/connect/game"
	"github.com/gdamore/tcell/v2"
)

// infoExpired is posted by the info timer so the message is cleared on the
// event loop.
type infoExpired struct {
	seq int
}

// pollEvents starts a goroutine to handle terminal events.
func (b *Board) pollEvents(ctrl Controller) chan struct{} {
	quit := make(chan struct{})

	go func() {
		defer close(quit)

		defer func() {
			if r := recover(); r != nil {
				b.screen.Clear()
				b.log.Error("panic", "ERROR", fmt.Sprint(r), "stack", string(debug.Stack()))
			}
		}()

		for {
			event := b.screen.PollEvent()

			// A nil event means the screen was finalized.
			if event == nil {
				return
			}

			if !b.handleEvent(ctrl, event) {
				return
			}
		}
	}()

	return quit
}

// handleEvent processes a single event. It returns false when the user asked
// to quit the game.
func (b *Board) handleEvent(ctrl Controller, event tcell.Event) bool {
	switch ev := event.(type) {
	case *tcell.EventResize:
		b.screen.Sync()
		b.drawInit()

	case *tcell.EventInterrupt:
		if exp, ok := ev.Data().(infoExpired); ok {
			b.expireInfo(exp.seq)
		}

	case *tcell.EventKey:
		return b.handleKey(ctrl, ev)
	}

	return true
}

func (b *Board) handleKey(ctrl Controller, ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false

	case tcell.KeyLeft:
		b.moveMarker(-1)

	case tcell.KeyRight:
		b.moveMarker(1)

	case tcell.KeyEnter, tcell.KeyDown:
		b.selectColumn(ctrl, b.inputCol)

	case tcell.KeyRune:
		r := ev.Rune()

		switch {
		case r == 'q':
			return false

		case r == 'r' || r == 'n':
			ctrl.Reset()

		case r == 's':
			b.toggleSound()

		case r == ' ':
			b.selectColumn(ctrl, b.inputCol)

		case r >= '1' && r < '1'+rune(game.Columns()):
			b.selectColumn(ctrl, int(r-'1'))
		}
	}

	return true
}

func (b *Board) selectColumn(ctrl Controller, column int) {
	err := ctrl.SelectColumn(column)

	switch {
	case err == nil:
	case errors.Is(err, game.ErrGameOver):
		b.screen.Beep()
	default:
		b.log.Error("select column", "column", column, "ERROR", err)
		b.screen.Beep()
	}
}

func (b *Board) toggleSound() {

	// Keep the result of a finished game on the screen.
	if b.state.GameOver() {
		if b.speaker != nil {
			b.speaker.Toggle()
		}
		return
	}

	if b.speaker == nil {
		b.flash("Sound is not available")
		return
	}

	switch b.speaker.Toggle() {
	case true:
		b.flash("Sound on")
	default:
		b.flash("Sound off")
	}
}
