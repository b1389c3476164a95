package game

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// Game owns the turn order and the final state of a game played on a board.
// A game is driven by a single goroutine.
type Game struct {
	log      *slog.Logger
	notifier Notifier
	board    *Board
	id       string
	current  Player
	stones   int
	status   Status
	winner   Player
	line     Line
	lastMove Move
	moves    []Move
}

// New constructs a game ready for the first move by the red player. The
// notifier can be nil when nobody is interested in the events.
func New(log *slog.Logger, notifier Notifier) *Game {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if notifier == nil {
		notifier = Fanout()
	}

	g := Game{
		log:      log,
		notifier: notifier,
		board:    NewBoard(),
	}

	g.Reset()

	return &g
}

// Reset starts a new game from any state.
func (g *Game) Reset() {
	g.board.Reset()
	g.id = uuid.NewString()
	g.current = Players.Red
	g.stones = 0
	g.status = StatusInProgress
	g.winner = Player{}
	g.line = Line{}
	g.lastMove = Move{}
	g.moves = nil

	g.log.Info("new game", "game_id", g.id, "player", g.current)

	g.notifier.GameStarted(g.ToBoardState())
}

// SelectColumn plays a stone for the current player in the specified column.
// A full column leaves the turn with the same player. Input after the game is
// over is ignored and reported with ErrGameOver.
func (g *Game) SelectColumn(column int) error {
	if g.status != StatusInProgress {
		return ErrGameOver
	}

	if !inColumns(column) {
		g.log.Error("select column", "game_id", g.id, "column", column, "ERROR", ErrOutOfRangeColumn)
		return fmt.Errorf("select column %d: %w", column, ErrOutOfRangeColumn)
	}

	if !g.board.HasRoom(column) {
		g.log.Info("slot is not free", "game_id", g.id, "column", column)
		g.notifier.SlotFull(column)
		return nil
	}

	player := g.current

	row, err := g.board.Drop(player, column)
	if err != nil {
		g.log.Error("drop", "game_id", g.id, "column", column, "ERROR", err)
		return fmt.Errorf("select column: %w", err)
	}

	g.stones++
	g.lastMove = Move{Column: column, Row: row, Player: player}
	g.moves = append(g.moves, g.lastMove)

	g.log.Info("stone placed", "game_id", g.id, "player", player, "column", column, "row", row, "stones", g.stones)

	line, won, err := g.board.DetectWin(player)
	if err != nil {
		return fmt.Errorf("select column: %w", err)
	}

	switch {
	case won:
		g.status = StatusWon
		g.winner = player
		g.line = line
	case g.stones == MaxStones:
		g.status = StatusDraw
	default:
		g.current = player.Opponent()
	}

	state := g.ToBoardState()
	g.notifier.StonePlaced(state, g.lastMove)

	switch g.status {
	case StatusWon:
		g.log.Info("game won", "game_id", g.id, "player", player, "stones", g.stones)
		g.notifier.Won(state)

	case StatusDraw:
		g.log.Info("game draw", "game_id", g.id, "stones", g.stones)
		g.notifier.Draw(state)

	default:
		g.notifier.TurnChanged(g.current)
	}

	return nil
}

// Play is a convenience for playing a sequence of columns. It stops at the
// first error that is not ErrGameOver.
func (g *Game) Play(columns ...int) error {
	for _, column := range columns {
		if err := g.SelectColumn(column); err != nil && !errors.Is(err, ErrGameOver) {
			return err
		}
	}

	return nil
}

// ID returns the unique id of the current game.
func (g *Game) ID() string {
	return g.id
}

// Current returns the player whose turn it is. Once the game is over it is the
// player who made the last move.
func (g *Game) Current() Player {
	return g.current
}

// Stones returns the number of stones played in this game.
func (g *Game) Stones() int {
	return g.stones
}

// Status returns the status of the game.
func (g *Game) Status() Status {
	return g.status
}

// Winner returns the winning player. The boolean is false unless the game was
// won.
func (g *Game) Winner() (Player, bool) {
	return g.winner, g.status == StatusWon
}

// State returns a snapshot of the game for display.
func (g *Game) State() BoardState {
	return g.ToBoardState()
}

// HasRoom reports whether the column can still take a stone.
func (g *Game) HasRoom(column int) bool {
	return g.board.HasRoom(column)
}
