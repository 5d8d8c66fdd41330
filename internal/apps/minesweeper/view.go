package minesweeper

// CellState is what the player can see of a cell.
type CellState string

const (
	StateHidden   CellState = "hidden"
	StateFlagged  CellState = "flagged"
	StateRevealed CellState = "revealed"
	StateBomb     CellState = "bomb"
)

// CellView is the rendered form of a cell. Adjacent is only meaningful for
// revealed cells.
type CellView struct {
	State    CellState `json:"state"`
	Adjacent int       `json:"adjacent,omitempty"`
}

// View is the rendered board.
type View struct {
	Rows     int          `json:"rows"`
	Cols     int          `json:"cols"`
	Bombs    int          `json:"bombs"`
	Flags    int          `json:"flags"`
	GameOver bool         `json:"game_over"`
	Won      bool         `json:"won"`
	Cells    [][]CellView `json:"cells"`
}

// View renders the board without leaking unrevealed bombs.
func (b *Board) View() View {
	v := View{
		Rows:     b.rows,
		Cols:     b.cols,
		Bombs:    b.bombs,
		Flags:    b.Flags(),
		GameOver: b.over,
		Won:      b.won,
		Cells:    make([][]CellView, b.rows),
	}
	for r, row := range b.cells {
		v.Cells[r] = make([]CellView, b.cols)
		for c, cell := range row {
			switch {
			case cell.Revealed && cell.Bomb:
				v.Cells[r][c] = CellView{State: StateBomb}
			case cell.Revealed:
				v.Cells[r][c] = CellView{State: StateRevealed, Adjacent: cell.Adjacent}
			case cell.Flagged:
				v.Cells[r][c] = CellView{State: StateFlagged}
			default:
				v.Cells[r][c] = CellView{State: StateHidden}
			}
		}
	}
	return v
}
