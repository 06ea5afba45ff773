package bot

import (
	"math/rand"
	"testing"

	"github.com/iamasit07/connect-four/internal/domain"
)

func mustParse(t *testing.T, lines ...string) *domain.Board {
	t.Helper()
	b, err := domain.ParseBoard(lines...)
	if err != nil {
		t.Fatalf("parse board: %v", err)
	}
	return b
}

// randomPosition plays n random legal drops, alternating players.
func randomPosition(rng *rand.Rand, rows, cols, n int) *domain.Board {
	b, _ := domain.NewBoard(rows, cols)
	player := domain.PlayerA
	for i := 0; i < n; i++ {
		open := domain.ValidColumns(b)
		if len(open) == 0 {
			break
		}
		_, _ = b.Drop(open[rng.Intn(len(open))], player)
		player = player.Opponent()
	}
	return b
}

func negate(t *testing.T, b *domain.Board) *domain.Board {
	t.Helper()
	grid := b.Grid()
	for r := range grid {
		for c := range grid[r] {
			grid[r][c] = -grid[r][c]
		}
	}
	nb, err := domain.BoardFromInts(grid)
	if err != nil {
		t.Fatalf("negate: %v", err)
	}
	return nb
}

func TestEvaluateEmptyBoardIsZero(t *testing.T) {
	b, _ := domain.NewBoard(6, 7)
	if got := Evaluate(b, domain.WinLength); got != 0 {
		t.Fatalf("empty board scored %d", got)
	}
}

func TestEvaluateWindowScores(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  int
	}{
		{
			// (5,3) sits in 4 horizontal, 1 vertical and 1 window per diagonal
			name: "single centre piece",
			lines: []string{
				".......",
				".......",
				".......",
				".......",
				".......",
				"...O...",
			},
			want: 7 * 11,
		},
		{
			name: "single corner piece",
			lines: []string{
				".......",
				".......",
				".......",
				".......",
				".......",
				"O......",
			},
			want: 3 * 11,
		},
		{
			// 4x4 bottom row: the only horizontal window holds three pieces
			// (110); three verticals with one piece (33); only the up-right
			// diagonal starts on a piece (11)
			name: "three in a row on a 4x4 board",
			lines: []string{
				"....",
				"....",
				"....",
				"OOO.",
			},
			want: 110 + 33 + 11,
		},
		{
			name: "blocked window scores nothing",
			lines: []string{
				"....",
				"....",
				"....",
				"OOOX",
			},
			// horizontal window blocked; verticals +33 -11; diagonal down-right
			// ends on (3,3) X: -11; diagonal up-right starts on (3,0) O: +11
			want: 33 - 11 - 11 + 11,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustParse(t, tt.lines...)
			if got := Evaluate(b, domain.WinLength); got != tt.want {
				t.Fatalf("Evaluate = %d, want %d\n%s", got, tt.want, b)
			}
		})
	}
}

func TestEvaluateIsAntisymmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 300; i++ {
		b := randomPosition(rng, 4+rng.Intn(4), 4+rng.Intn(5), rng.Intn(30))
		if got, neg := Evaluate(b, domain.WinLength), Evaluate(negate(t, b), domain.WinLength); got != -neg {
			t.Fatalf("Evaluate=%d but negated board scored %d\n%s", got, neg, b)
		}
	}
}

func TestEvaluateFavoursTheMaximizingPiece(t *testing.T) {
	b := mustParse(t,
		".......",
		".......",
		".......",
		".......",
		".......",
		"..O.O..",
	)
	if domain.MaximizingPiece != domain.PlayerB {
		t.Fatalf("computer must be the maximizer")
	}
	if Evaluate(b, domain.WinLength) <= 0 {
		t.Fatalf("position owned by the maximizer should score positive")
	}
	if Evaluate(negate(t, b), domain.WinLength) >= 0 {
		t.Fatalf("position owned by the minimizer should score negative")
	}
}
