package bot

import (
	"github.com/iamasit07/connect-four/internal/domain"
)

const (
	// a window holding n pieces of one player is worth 10^(n-1) + WINDOW_BONUS
	WINDOW_BASE  = 10
	WINDOW_BONUS = 10
)

// Evaluate scores board from the maximizer's side. Every run of winLength
// in-bounds cells is a window; a window with pieces of only one player scores
// for that player, a window with both players is blocked and scores nothing.
func Evaluate(board *domain.Board, winLength int) int {
	score := 0
	rows, cols := board.Rows(), board.Cols()

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			for _, dir := range domain.Directions {
				dRow, dCol := dir[0], dir[1]
				if !board.InBounds(row+dRow*(winLength-1), col+dCol*(winLength-1)) {
					continue
				}

				maxCount, minCount := 0, 0
				for i := 0; i < winLength; i++ {
					switch board.At(row+dRow*i, col+dCol*i) {
					case domain.MaximizingPiece:
						maxCount++
					case domain.MaximizingPiece.Opponent():
						minCount++
					}
				}

				switch {
				case minCount == 0 && maxCount > 0:
					score += windowScore(maxCount)
				case maxCount == 0 && minCount > 0:
					score -= windowScore(minCount)
				}
			}
		}
	}

	return score
}

func windowScore(count int) int {
	v := 1
	for i := 1; i < count; i++ {
		v *= WINDOW_BASE
	}
	return v + WINDOW_BONUS
}
