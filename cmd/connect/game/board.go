// Package game implements the connect 4 board and the rules for playing a game
// between two players.
package game

import "fmt"

const (
	rows = 6
	cols = 7

	// MaxStones is the number of stones that fill the board.
	MaxStones = rows * cols

	// Connect is the number of stones in a line that wins the game.
	Connect = 4
)

// Columns returns the number of columns on the board.
func Columns() int { return cols }

// Rows returns the number of rows on the board.
func Rows() int { return rows }

type cell struct {
	hasPiece bool
	player   Player
}

// Position identifies a cell on the board. Row 0 is the bottom of the board.
type Position struct {
	Column int `json:"column"`
	Row    int `json:"row"`
}

// Line represents the cells of a four in a row.
type Line [Connect]Position

// Contains reports whether the position is part of the line.
func (l Line) Contains(pos Position) bool {
	for _, p := range l {
		if p == pos {
			return true
		}
	}

	return false
}

// The directions checked from every cell: horizontal, vertical, the rising
// diagonal and the falling diagonal.
var directions = [...]struct {
	col int
	row int
}{
	{1, 0},
	{0, 1},
	{1, 1},
	{1, -1},
}

// Board represents the grid of the game. It knows nothing about whose turn it
// is, only where stones are.
type Board struct {
	cells  [cols][rows]cell
	stones int
}

// NewBoard constructs an empty board.
func NewBoard() *Board {
	return &Board{}
}

// Reset removes every stone from the board.
func (b *Board) Reset() {
	b.cells = [cols][rows]cell{}
	b.stones = 0
}

// HasRoom reports whether a stone can still be dropped in the column. A column
// outside the board never has room.
func (b *Board) HasRoom(column int) bool {
	return b.freeRow(column) != -1
}

// Drop places a stone for the player in the lowest empty row of the column and
// returns that row.
func (b *Board) Drop(player Player, column int) (int, error) {
	if !inColumns(column) {
		return -1, fmt.Errorf("drop column %d: %w", column, ErrOutOfRangeColumn)
	}

	if !player.IsValid() {
		return -1, fmt.Errorf("drop player %q: %w", player, ErrInvalidPlayer)
	}

	row := b.freeRow(column)
	if row == -1 {
		return -1, fmt.Errorf("drop column %d: %w", column, ErrColumnFull)
	}

	b.cells[column][row] = cell{hasPiece: true, player: player}
	b.stones++

	return row, nil
}

// CheckWin reports whether the player has four stones in a row anywhere on
// the board.
func (b *Board) CheckWin(player Player) (bool, error) {
	_, found, err := b.DetectWin(player)
	return found, err
}

// DetectWin finds the first four in a row for the player. Cells are scanned
// column by column from the bottom, and at each cell the directions are tried
// in order.
func (b *Board) DetectWin(player Player) (Line, bool, error) {
	if !player.IsValid() {
		return Line{}, false, fmt.Errorf("check win player %q: %w", player, ErrInvalidPlayer)
	}

	for col := range cols {
		for row := range rows {
			if !b.owns(player, col, row) {
				continue
			}

			for _, dir := range directions {
				if line, ok := b.run(player, col, row, dir.col, dir.row); ok {
					return line, true, nil
				}
			}
		}
	}

	return Line{}, false, nil
}

// Cell returns the player owning the stone at the position. The boolean is
// false when the cell is empty or outside the board.
func (b *Board) Cell(column int, row int) (Player, bool) {
	if !inColumns(column) || !inRows(row) {
		return Player{}, false
	}

	c := b.cells[column][row]
	return c.player, c.hasPiece
}

// Stones returns the number of stones on the board.
func (b *Board) Stones() int {
	return b.stones
}

// Full reports whether every cell holds a stone.
func (b *Board) Full() bool {
	return b.stones == MaxStones
}

// =============================================================================

func (b *Board) freeRow(column int) int {
	if !inColumns(column) {
		return -1
	}

	for row := range rows {
		if !b.cells[column][row].hasPiece {
			return row
		}
	}

	return -1
}

// run checks the Connect cells starting at col/row and walking by the offsets.
// Any cell off the board fails the match.
func (b *Board) run(player Player, col int, row int, dCol int, dRow int) (Line, bool) {
	var line Line

	for i := range Connect {
		c := col + i*dCol
		r := row + i*dRow

		if !b.owns(player, c, r) {
			return Line{}, false
		}

		line[i] = Position{Column: c, Row: r}
	}

	return line, true
}

func (b *Board) owns(player Player, col int, row int) bool {
	if !inColumns(col) || !inRows(row) {
		return false
	}

	c := b.cells[col][row]
	return c.hasPiece && c.player == player
}

func inColumns(column int) bool {
	return column >= 0 && column < cols
}

func inRows(row int) bool {
	return row >= 0 && row < rows
}
