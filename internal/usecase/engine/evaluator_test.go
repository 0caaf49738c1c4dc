package engine

import (
	"testing"

	"drop_four/internal/domain/board"
)

func TestSimpleEvaluateCountsOwnWin(t *testing.T) {
	b := buildBoard(t, []string{
		".......",
		".......",
		".......",
		".......",
		"OOO....",
		"XXX....",
	})
	// Column 3 wins for Self; no landing cell wins for the opponent
	// (their own completion at column 3 lands one row higher).
	if got := SimpleEvaluate(b); got != simpleWinWeight {
		t.Fatalf("expected %d, got %v", simpleWinWeight, got)
	}
}

func TestSimpleEvaluateCountsOpponentThreat(t *testing.T) {
	b := buildBoard(t, []string{
		".......",
		".......",
		".......",
		".......",
		".......",
		"OOO..XX",
	})
	if got := SimpleEvaluate(b); got != -simpleWinWeight {
		t.Fatalf("expected %d, got %v", -simpleWinWeight, got)
	}
}

func TestHeuristicPrefersCenterPiece(t *testing.T) {
	center := buildBoard(t, []string{
		".......",
		".......",
		".......",
		".......",
		".......",
		"...X...",
	})
	edge := buildBoard(t, []string{
		".......",
		".......",
		".......",
		".......",
		".......",
		"X......",
	})
	if HeuristicEvaluate(center) <= HeuristicEvaluate(edge) {
		t.Fatalf("center piece should score higher than edge piece")
	}
}

func TestHeuristicSymmetricForSwappedRoles(t *testing.T) {
	// Column 3 stays empty: the center-control term only counts Self
	// pieces, so it is the one term that is not antisymmetric.
	b := buildBoard(t, []string{
		".......",
		".......",
		".......",
		".O.....",
		".X..O..",
		".XX.OO.",
	})
	got := HeuristicEvaluate(b)
	flipped := HeuristicEvaluate(b.Flip())
	if got != -flipped {
		t.Fatalf("evaluation not antisymmetric: %v vs %v", got, flipped)
	}
}

func TestDetectForksDoubleThreat(t *testing.T) {
	b := buildBoard(t, []string{
		".......",
		".......",
		".......",
		".......",
		".......",
		".XX....",
	})
	// Dropping in column 3 makes .XXX. with completions at 0 and 4. The
	// bonus is counted once per empty cell of the forking column.
	want := float64(forkWeight * board.Rows)
	if got := detectForks(b, board.Self); got != want {
		t.Fatalf("expected fork score %v, got %v", want, got)
	}
	if got := detectForks(b, board.Opponent); got != 0 {
		t.Fatalf("opponent has no fork, got %v", got)
	}
}
