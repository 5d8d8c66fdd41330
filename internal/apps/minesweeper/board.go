// Package minesweeper implements the minesweeper board: bomb placement,
// reveal with zero-adjacency flood fill, and flagging.
package minesweeper

import "math/rand"

// Default board dimensions.
const (
	Rows  = 8
	Cols  = 8
	Bombs = 10
)

// Cell is one square of the board.
type Cell struct {
	Revealed bool `json:"revealed"`
	Bomb     bool `json:"bomb"`
	Flagged  bool `json:"flagged"`
	Adjacent int  `json:"adjacent"`
}

type point struct{ r, c int }

// Board is a minesweeper game. It is not safe for concurrent use.
type Board struct {
	rows, cols, bombs int
	cells             [][]Cell
	revealedSafe      int
	over              bool
	won               bool
	rng               *rand.Rand
}

// New creates a default 8x8 board with 10 bombs placed using rng.
func New(rng *rand.Rand) *Board {
	return NewSized(rng, Rows, Cols, Bombs)
}

// NewSized creates a board of the given size. The bomb count is clamped to
// the number of cells.
func NewSized(rng *rand.Rand, rows, cols, bombs int) *Board {
	rows, cols = max(rows, 1), max(cols, 1)
	b := &Board{
		rows:  rows,
		cols:  cols,
		bombs: min(max(bombs, 0), rows*cols),
		rng:   rng,
	}
	b.NewGame()
	return b
}

// NewGame discards the current board and places bombs afresh, uniformly
// without replacement.
func (b *Board) NewGame() {
	b.cells = make([][]Cell, b.rows)
	for r := range b.cells {
		b.cells[r] = make([]Cell, b.cols)
	}
	for _, i := range b.rng.Perm(b.rows * b.cols)[:b.bombs] {
		b.cells[i/b.cols][i%b.cols].Bomb = true
	}
	b.countAdjacent()
	b.revealedSafe = 0
	b.over = false
	b.won = false
}

// Reveal uncovers a cell. Zero-adjacency cells expand to their neighbours.
// It reports whether anything changed.
func (b *Board) Reveal(r, c int) bool {
	if b.over || !b.inside(r, c) {
		return false
	}
	cell := &b.cells[r][c]
	if cell.Revealed || cell.Flagged {
		return false
	}
	if cell.Bomb {
		cell.Revealed = true
		b.over = true
		return true
	}

	start := point{r, c}
	stack := []point{start}
	visited := map[point]bool{start: true}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		cur := &b.cells[p.r][p.c]
		cur.Revealed = true
		b.revealedSafe++
		if cur.Adjacent != 0 {
			continue
		}
		b.eachNeighbour(p, func(n point) {
			nc := b.cells[n.r][n.c]
			if visited[n] || nc.Revealed || nc.Flagged || nc.Bomb {
				return
			}
			visited[n] = true
			stack = append(stack, n)
		})
	}

	if b.revealedSafe == b.rows*b.cols-b.bombs {
		b.won = true
		b.over = true
	}
	return true
}

// ToggleFlag flips the flag on an unrevealed cell.
func (b *Board) ToggleFlag(r, c int) bool {
	if b.over || !b.inside(r, c) {
		return false
	}
	cell := &b.cells[r][c]
	if cell.Revealed {
		return false
	}
	cell.Flagged = !cell.Flagged
	return true
}

// GameOver reports whether the game has ended, by a bomb or by a win.
func (b *Board) GameOver() bool { return b.over }

// Won reports whether every safe cell has been revealed.
func (b *Board) Won() bool { return b.won }

func (b *Board) Rows() int  { return b.rows }
func (b *Board) Cols() int  { return b.cols }
func (b *Board) Bombs() int { return b.bombs }

// Cell returns a copy of the cell at (r, c).
func (b *Board) Cell(r, c int) (Cell, bool) {
	if !b.inside(r, c) {
		return Cell{}, false
	}
	return b.cells[r][c], true
}

// Flags counts flagged cells.
func (b *Board) Flags() int {
	n := 0
	for _, row := range b.cells {
		for _, cell := range row {
			if cell.Flagged {
				n++
			}
		}
	}
	return n
}

// countAdjacent fills Adjacent for safe cells. Bomb cells keep 0.
func (b *Board) countAdjacent() {
	for r := range b.cells {
		for c := range b.cells[r] {
			if b.cells[r][c].Bomb {
				b.cells[r][c].Adjacent = 0
				continue
			}
			n := 0
			b.eachNeighbour(point{r, c}, func(p point) {
				if b.cells[p.r][p.c].Bomb {
					n++
				}
			})
			b.cells[r][c].Adjacent = n
		}
	}
}

func (b *Board) eachNeighbour(p point, fn func(point)) {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			if b.inside(p.r+dr, p.c+dc) {
				fn(point{p.r + dr, p.c + dc})
			}
		}
	}
}

func (b *Board) inside(r, c int) bool {
	return r >= 0 && r < b.rows && c >= 0 && c < b.cols
}
