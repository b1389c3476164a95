package game

// Status represents where the game is in its lifecycle.
type Status int

// Set of game status values.
const (
	StatusInProgress Status = iota
	StatusWon
	StatusDraw
)

func (s Status) String() string {
	switch s {
	case StatusInProgress:
		return "in-progress"
	case StatusWon:
		return "won"
	case StatusDraw:
		return "draw"
	}

	return "unknown"
}

// Mark describes how a stone should be displayed once a game is won.
type Mark int

// Set of marks for the highlight of a winning board.
const (
	MarkNone Mark = iota
	MarkActive
	MarkDimmed
)

// Marks holds a mark for every cell on the board.
type Marks [cols][rows]Mark

// Highlight marks the cells of the line as active and every other stone on
// the board as dimmed. Empty cells are left unmarked.
func (b *Board) Highlight(line Line) Marks {
	var marks Marks

	for col := range cols {
		for row := range rows {
			if !b.cells[col][row].hasPiece {
				continue
			}

			switch line.Contains(Position{Column: col, Row: row}) {
			case true:
				marks[col][row] = MarkActive
			default:
				marks[col][row] = MarkDimmed
			}
		}
	}

	return marks
}

// =============================================================================

// Cell represents a cell in the game board.
type Cell struct {
	HasPiece bool   `json:"hasPiece"`
	Player   Player `json:"player"`
}

// Move represents a stone placed on the board.
type Move struct {
	Column int    `json:"column"`
	Row    int    `json:"row"`
	Player Player `json:"player"`
}

// BoardState represent the state of the board for any UI to display.
type BoardState struct {
	GameID   string           `json:"gameID"`
	Cells    [cols][rows]Cell `json:"cells"`
	LastMove Move             `json:"lastMove"`
	Moves    []Move           `json:"moves"`
	Current  Player           `json:"current"`
	Stones   int              `json:"stones"`
	Status   Status           `json:"status"`
	Winner   Player           `json:"winner"`
	Line     Line             `json:"line"`
	Marks    Marks            `json:"marks"`
}

// GameOver reports whether the game reached a final state.
func (bs BoardState) GameOver() bool {
	return bs.Status != StatusInProgress
}

// ToBoardState represents the board for display.
func (g *Game) ToBoardState() BoardState {
	var cells [cols][rows]Cell
	for c := range g.board.cells {
		for r := range g.board.cells[c] {
			cells[c][r].HasPiece = g.board.cells[c][r].hasPiece
			cells[c][r].Player = g.board.cells[c][r].player
		}
	}

	bs := BoardState{
		GameID:   g.id,
		Cells:    cells,
		LastMove: g.lastMove,
		Moves:    append([]Move(nil), g.moves...),
		Current:  g.current,
		Stones:   g.stones,
		Status:   g.status,
		Winner:   g.winner,
	}

	if g.status == StatusWon {
		bs.Line = g.line
		bs.Marks = g.board.Highlight(g.line)
	}

	return bs
}
