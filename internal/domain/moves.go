package domain

// Move is a legal drop together with the position it produces.
type Move struct {
	Column int
	Row    int
	Board  *Board
}

// GenerateMoves returns one move per playable column, left to right. Every
// move carries its own copy of the board; the input is not modified.
func GenerateMoves(board *Board, player Piece) []Move {
	moves := make([]Move, 0, board.cols)
	for col := 0; col < board.cols; col++ {
		if !board.CanPlay(col) {
			continue
		}
		next := board.Clone()
		row, err := next.Drop(col, player)
		if err != nil {
			continue
		}
		moves = append(moves, Move{Column: col, Row: row, Board: next})
	}
	return moves
}

// ValidColumns lists the playable columns in ascending order.
func ValidColumns(board *Board) []int {
	cols := make([]int, 0, board.cols)
	for col := 0; col < board.cols; col++ {
		if board.CanPlay(col) {
			cols = append(cols, col)
		}
	}
	return cols
}
