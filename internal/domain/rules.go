package domain

// Directions scanned from a starting cell: horizontal, vertical and both
// diagonals. Each line is only walked in its positive direction.
var Directions = [4][2]int{
	{0, 1},
	{1, 0},
	{1, 1},
	{-1, 1},
}

// IsWinner reports whether player owns winLength consecutive in-bounds cells
// in any direction.
func IsWinner(board *Board, player Piece, winLength int) bool {
	if player == Empty || winLength <= 0 {
		return false
	}
	for r := 0; r < board.rows; r++ {
		for c := 0; c < board.cols; c++ {
			if board.cells[r*board.cols+c] != player {
				continue
			}
			for _, dir := range Directions {
				if runFrom(board, r, c, dir[0], dir[1], player, winLength) {
					return true
				}
			}
		}
	}
	return false
}

func runFrom(board *Board, row, col, dRow, dCol int, player Piece, winLength int) bool {
	endRow, endCol := row+dRow*(winLength-1), col+dCol*(winLength-1)
	if !board.InBounds(endRow, endCol) {
		return false
	}
	for i := 1; i < winLength; i++ {
		if board.cells[(row+dRow*i)*board.cols+col+dCol*i] != player {
			return false
		}
	}
	return true
}

// IsFull reports whether the top row is occupied. Gravity makes that
// equivalent to every cell being occupied.
func IsFull(board *Board) bool {
	for c := 0; c < board.cols; c++ {
		if board.cells[c] == Empty {
			return false
		}
	}
	return true
}

// Winner returns the player holding a winning line, if any.
func Winner(board *Board, winLength int) (Piece, bool) {
	if IsWinner(board, PlayerA, winLength) {
		return PlayerA, true
	}
	if IsWinner(board, PlayerB, winLength) {
		return PlayerB, true
	}
	return Empty, false
}

// IsTerminal reports whether the game is over: someone won or the board is full.
func IsTerminal(board *Board, winLength int) bool {
	if _, won := Winner(board, winLength); won {
		return true
	}
	return IsFull(board)
}
