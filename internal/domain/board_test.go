package domain

import (
	"errors"
	"testing"
)

func mustParse(t *testing.T, lines ...string) *Board {
	t.Helper()
	b, err := ParseBoard(lines...)
	if err != nil {
		t.Fatalf("parse board: %v", err)
	}
	return b
}

func TestNewBoardRejectsSmallGrids(t *testing.T) {
	tests := []struct {
		rows, cols int
		ok         bool
	}{
		{6, 7, true},
		{4, 4, true},
		{3, 7, false},
		{6, 3, false},
		{0, 0, false},
	}
	for _, tt := range tests {
		_, err := NewBoard(tt.rows, tt.cols)
		if tt.ok && err != nil {
			t.Fatalf("NewBoard(%d,%d) unexpected error: %v", tt.rows, tt.cols, err)
		}
		if !tt.ok && !errors.Is(err, ErrBoardTooSmall) {
			t.Fatalf("NewBoard(%d,%d) expected ErrBoardTooSmall, got %v", tt.rows, tt.cols, err)
		}
	}
}

func TestDropStacksFromTheBottom(t *testing.T) {
	b, _ := NewBoard(6, 7)
	for i, want := range []int{5, 4, 3, 2, 1, 0} {
		row, err := b.Drop(3, PlayerA)
		if err != nil {
			t.Fatalf("drop %d: %v", i, err)
		}
		if row != want {
			t.Fatalf("drop %d landed on row %d, want %d", i, row, want)
		}
	}
	if b.CanPlay(3) {
		t.Fatalf("column 3 should be full")
	}
	if _, err := b.Drop(3, PlayerB); !errors.Is(err, ErrColumnFull) {
		t.Fatalf("expected ErrColumnFull, got %v", err)
	}
	if _, err := b.Drop(7, PlayerB); !errors.Is(err, ErrColumnOutOfRange) {
		t.Fatalf("expected ErrColumnOutOfRange, got %v", err)
	}
	if _, err := b.Drop(0, Empty); !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("expected ErrInvalidMove for empty piece, got %v", err)
	}
}

func TestDropUndoIsExact(t *testing.T) {
	b := mustParse(t,
		".......",
		".......",
		"...O...",
		"...X...",
		"..OXO..",
		".XOXOX.",
	)
	before := b.Clone()
	for col := 0; col < b.Cols(); col++ {
		for _, p := range []Piece{PlayerA, PlayerB} {
			if _, err := b.Drop(col, p); err != nil {
				t.Fatalf("drop col %d: %v", col, err)
			}
			if err := b.Undo(col); err != nil {
				t.Fatalf("undo col %d: %v", col, err)
			}
			if !b.Equal(before) {
				t.Fatalf("drop/undo on col %d changed the board:\n%s", col, b)
			}
			if b.LowestEmpty(col) != before.LowestEmpty(col) {
				t.Fatalf("drop/undo on col %d changed the column height", col)
			}
		}
	}
	empty, _ := NewBoard(4, 4)
	if err := empty.Undo(0); !errors.Is(err, ErrColumnEmpty) {
		t.Fatalf("expected ErrColumnEmpty, got %v", err)
	}
}

func TestBoardFromRowsValidatesGravity(t *testing.T) {
	_, err := ParseBoard(
		"....",
		"..X.",
		"....",
		"....",
	)
	if !errors.Is(err, ErrMalformedBoard) {
		t.Fatalf("expected ErrMalformedBoard for floating piece, got %v", err)
	}

	_, err = BoardFromInts([][]int{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 2, 0, 0},
	})
	if !errors.Is(err, ErrMalformedBoard) {
		t.Fatalf("expected ErrMalformedBoard for unknown piece, got %v", err)
	}

	_, err = BoardFromInts([][]int{
		{0, 0, 0, 0},
		{0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	if !errors.Is(err, ErrMalformedBoard) {
		t.Fatalf("expected ErrMalformedBoard for ragged rows, got %v", err)
	}

	b, err := BoardFromInts([][]int{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, -1, 0, 0},
		{1, 1, 0, -1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.LowestEmpty(1) != 1 || b.LowestEmpty(2) != 3 || b.Count() != 4 {
		t.Fatalf("heights not derived from grid: lowest(1)=%d lowest(2)=%d count=%d",
			b.LowestEmpty(1), b.LowestEmpty(2), b.Count())
	}
}

func TestGridAndStringRoundTrip(t *testing.T) {
	lines := []string{
		"....",
		"....",
		".O..",
		"XXO.",
	}
	b := mustParse(t, lines...)
	again := mustParse(t, splitLines(b.String())...)
	if !b.Equal(again) {
		t.Fatalf("String/ParseBoard mismatch:\n%s\n%s", b, again)
	}
	fromGrid, err := BoardFromInts(b.Grid())
	if err != nil {
		t.Fatalf("BoardFromInts(Grid()): %v", err)
	}
	if !b.Equal(fromGrid) {
		t.Fatalf("Grid/BoardFromInts mismatch")
	}
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return out
}
