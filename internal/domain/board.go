package domain

import (
	"fmt"
	"strings"
)

// Board is a rows x cols grid stored row-major with row 0 at the top.
// heights[c] is the number of pieces in column c, so the lowest empty row of
// a column is rows-1-heights[c].
type Board struct {
	rows    int
	cols    int
	cells   []Piece
	heights []int
}

// NewBoard returns an empty board. Both dimensions must be at least WinLength.
func NewBoard(rows, cols int) (*Board, error) {
	if rows < WinLength || cols < WinLength {
		return nil, fmt.Errorf("%w: %dx%d", ErrBoardTooSmall, rows, cols)
	}
	return &Board{
		rows:    rows,
		cols:    cols,
		cells:   make([]Piece, rows*cols),
		heights: make([]int, cols),
	}, nil
}

// BoardFromRows builds a board from a grid given top row first. The grid must
// be rectangular, at least WinLength in both directions, hold only valid
// pieces and be gravity-consistent.
func BoardFromRows(grid [][]Piece) (*Board, error) {
	if len(grid) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrMalformedBoard)
	}
	b, err := NewBoard(len(grid), len(grid[0]))
	if err != nil {
		return nil, err
	}

	for r, row := range grid {
		if len(row) != b.cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformedBoard, r, len(row), b.cols)
		}
		for c, p := range row {
			if !p.Valid() {
				return nil, fmt.Errorf("%w: invalid piece %d at (%d,%d)", ErrMalformedBoard, p, r, c)
			}
			b.cells[r*b.cols+c] = p
		}
	}

	// walk each column bottom-up: once an empty cell is seen, nothing above
	// it may be occupied
	for c := 0; c < b.cols; c++ {
		height := 0
		for r := b.rows - 1; r >= 0; r-- {
			if b.cells[r*b.cols+c] == Empty {
				break
			}
			height++
		}
		for r := b.rows - 1 - height; r >= 0; r-- {
			if b.cells[r*b.cols+c] != Empty {
				return nil, fmt.Errorf("%w: floating piece at (%d,%d)", ErrMalformedBoard, r, c)
			}
		}
		b.heights[c] = height
	}

	return b, nil
}

// BoardFromInts is BoardFromRows for plain integer grids (JSON payloads).
func BoardFromInts(grid [][]int) (*Board, error) {
	rows := make([][]Piece, len(grid))
	for r := range grid {
		rows[r] = make([]Piece, len(grid[r]))
		for c, v := range grid[r] {
			rows[r][c] = Piece(v)
			if int(rows[r][c]) != v {
				return nil, fmt.Errorf("%w: invalid piece %d at (%d,%d)", ErrMalformedBoard, v, r, c)
			}
		}
	}
	return BoardFromRows(rows)
}

// ParseBoard reads the format produced by String: one string per row, top row
// first, 'X' for PlayerA, 'O' for PlayerB and '.' for Empty.
func ParseBoard(lines ...string) (*Board, error) {
	grid := make([][]Piece, len(lines))
	for r, line := range lines {
		grid[r] = make([]Piece, len(line))
		for c, ch := range line {
			switch ch {
			case 'X':
				grid[r][c] = PlayerA
			case 'O':
				grid[r][c] = PlayerB
			case '.':
				grid[r][c] = Empty
			default:
				return nil, fmt.Errorf("%w: unexpected %q at (%d,%d)", ErrMalformedBoard, ch, r, c)
			}
		}
	}
	return BoardFromRows(grid)
}

func (b *Board) Rows() int { return b.rows }
func (b *Board) Cols() int { return b.cols }

// At returns the piece at (row, col). Out-of-range coordinates read as Empty.
func (b *Board) At(row, col int) Piece {
	if !b.InBounds(row, col) {
		return Empty
	}
	return b.cells[row*b.cols+col]
}

func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.rows && col >= 0 && col < b.cols
}

// CanPlay reports whether a piece can be dropped in col.
func (b *Board) CanPlay(col int) bool {
	return col >= 0 && col < b.cols && b.cells[col] == Empty
}

// LowestEmpty returns the row a piece dropped in col would land on, or -1.
func (b *Board) LowestEmpty(col int) int {
	if !b.CanPlay(col) {
		return -1
	}
	return b.rows - 1 - b.heights[col]
}

// Drop places p in the lowest empty cell of col and returns its row.
func (b *Board) Drop(col int, p Piece) (int, error) {
	if col < 0 || col >= b.cols {
		return -1, ErrColumnOutOfRange
	}
	if p != PlayerA && p != PlayerB {
		return -1, ErrInvalidMove
	}
	if b.heights[col] >= b.rows {
		return -1, ErrColumnFull
	}
	row := b.rows - 1 - b.heights[col]
	b.cells[row*b.cols+col] = p
	b.heights[col]++
	return row, nil
}

// Undo removes the topmost piece of col. Drop followed by Undo on the same
// column restores the board exactly.
func (b *Board) Undo(col int) error {
	if col < 0 || col >= b.cols {
		return ErrColumnOutOfRange
	}
	if b.heights[col] == 0 {
		return ErrColumnEmpty
	}
	row := b.rows - b.heights[col]
	b.cells[row*b.cols+col] = Empty
	b.heights[col]--
	return nil
}

// this creates a deep copy of the board
func (b *Board) Clone() *Board {
	nb := &Board{
		rows:    b.rows,
		cols:    b.cols,
		cells:   make([]Piece, len(b.cells)),
		heights: make([]int, len(b.heights)),
	}
	copy(nb.cells, b.cells)
	copy(nb.heights, b.heights)
	return nb
}

func (b *Board) Equal(o *Board) bool {
	if o == nil || b.rows != o.rows || b.cols != o.cols {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Count returns the number of pieces on the board.
func (b *Board) Count() int {
	n := 0
	for _, h := range b.heights {
		n += h
	}
	return n
}

// Grid returns a copy of the cells as rows of plain integers, top row first.
func (b *Board) Grid() [][]int {
	grid := make([][]int, b.rows)
	for r := range grid {
		grid[r] = make([]int, b.cols)
		for c := range grid[r] {
			grid[r][c] = int(b.cells[r*b.cols+c])
		}
	}
	return grid
}

func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.cols; c++ {
			switch b.cells[r*b.cols+c] {
			case PlayerA:
				sb.WriteByte('X')
			case PlayerB:
				sb.WriteByte('O')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
