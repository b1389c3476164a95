// Package snapshot renders finished games as PNG images.
package snapshot

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ardanlabs/connect4/cmd/connect/game"
	"github.com/fogleman/gg"
)

const (
	radius = 10
	gap    = 25
	margin = 20
)

// Size of a rendered board in pixels.
var (
	Width  = margin*2 + gap*(game.Columns()-1)
	Height = margin*2 + gap*(game.Rows()-1)
)

// Render draws the board state as a PNG. Row 0 is drawn at the bottom. Once a
// game is won the stones outside the winning line are drawn grey.
func Render(state game.BoardState) ([]byte, error) {
	dc := gg.NewContext(Width, Height)
	dc.SetRGB(0, 0, 0.6)
	dc.Clear()

	for col := range state.Cells {
		x := float64(margin + gap*col)

		for row, cell := range state.Cells[col] {
			y := float64(margin + gap*(game.Rows()-1-row))

			switch {
			case !cell.HasPiece:
				dc.SetRGB(1, 1, 1)
			case state.Status == game.StatusWon && state.Marks[col][row] == game.MarkDimmed:
				dc.SetRGB(0.6, 0.6, 0.6)
			case cell.Player == game.Players.Red:
				dc.SetRGB(1, 0, 0)
			default:
				dc.SetRGB(1, 1, 0)
			}

			dc.DrawCircle(x, y, radius)
			dc.Fill()
		}
	}

	var b bytes.Buffer
	if err := dc.EncodePNG(&b); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}

	return b.Bytes(), nil
}

// =============================================================================

// Writer saves an image of every finished game into a folder. It implements
// the game.Notifier interface and ignores the events of a game in progress.
type Writer struct {
	log    *slog.Logger
	folder string
}

// NewWriter constructs a writer for the folder, creating it if needed.
func NewWriter(log *slog.Logger, folder string) (*Writer, error) {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if err := os.MkdirAll(folder, 0755); err != nil {
		return nil, fmt.Errorf("create snapshot folder: %w", err)
	}

	w := Writer{
		log:    log,
		folder: folder,
	}

	return &w, nil
}

// Save renders the state and writes it to <folder>/<game id>.png.
func (w *Writer) Save(state game.BoardState) (string, error) {
	data, err := Render(state)
	if err != nil {
		return "", err
	}

	path := filepath.Join(w.folder, state.GameID+".png")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// Won saves the winning board.
func (w *Writer) Won(state game.BoardState) {
	w.save(state)
}

// Draw saves the full board.
func (w *Writer) Draw(state game.BoardState) {
	w.save(state)
}

func (*Writer) GameStarted(game.BoardState)           {}
func (*Writer) StonePlaced(game.BoardState, game.Move) {}
func (*Writer) SlotFull(int)                           {}
func (*Writer) TurnChanged(game.Player)                {}

func (w *Writer) save(state game.BoardState) {
	path, err := w.Save(state)
	if err != nil {
		w.log.Error("snapshot", "game_id", state.GameID, "ERROR", err)
		return
	}

	w.log.Info("snapshot", "game_id", state.GameID, "path", path)
}
