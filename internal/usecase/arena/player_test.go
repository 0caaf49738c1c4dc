package arena

import (
	"testing"

	"drop_four/internal/domain/board"
)

func mustApplyCols(t *testing.T, b board.Board, p board.Cell, cols ...int) board.Board {
	t.Helper()
	for _, col := range cols {
		var err error
		b, _, err = b.Apply(col, p)
		if err != nil {
			t.Fatalf("apply column %d: %v", col, err)
		}
		p = -p
	}
	return b
}

func TestBabyPlaysOnlyLegalColumns(t *testing.T) {
	var b board.Board
	// Stuff column 0 so it drops out of the legal set.
	for i := 0; i < board.Rows; i++ {
		p := board.Self
		if i%2 == 0 {
			p = board.Opponent
		}
		var err error
		b, _, err = b.Apply(0, p)
		if err != nil {
			t.Fatalf("fill: %v", err)
		}
	}
	player := NewBabyPlayer(42)
	for i := 0; i < 50; i++ {
		col, err := player.Decide(b)
		if err != nil {
			t.Fatalf("decide: %v", err)
		}
		if col == 0 {
			t.Fatalf("picked a full column")
		}
		if _, _, err := b.Apply(col, board.Self); err != nil {
			t.Fatalf("picked illegal column %d: %v", col, err)
		}
	}
}

func TestChildTakesImmediateWin(t *testing.T) {
	b := mustApplyCols(t, board.Board{}, board.Self, 2, 0, 3, 0, 4, 1)
	// Self holds columns 2, 3, 4 on the bottom row. Column 1 is taken by
	// the opponent, so the only winning drop is column 5.
	player := NewChildPlayer(42)
	for i := 0; i < 10; i++ {
		col, err := player.Decide(b)
		if err != nil {
			t.Fatalf("decide: %v", err)
		}
		if col != 5 {
			t.Fatalf("expected winning column 5, got %d", col)
		}
	}
}

func TestTeenagerBlocksImmediateLoss(t *testing.T) {
	b := mustApplyCols(t, board.Board{}, board.Opponent, 2, 0, 3, 0, 4)
	// Opponent threatens to complete at columns 1 and 5; the teenager has
	// no win of its own, so it must block at the lower threat.
	player := NewTeenagerPlayer(42)
	for i := 0; i < 10; i++ {
		col, err := player.Decide(b)
		if err != nil {
			t.Fatalf("decide: %v", err)
		}
		if col != 1 {
			t.Fatalf("expected blocking column 1, got %d", col)
		}
	}
}

func TestAnchorRatingsAscend(t *testing.T) {
	roster := []Player{
		NewBabyPlayer(1),
		NewChildPlayer(1),
		NewTeenagerPlayer(1),
		NewAdultPlayer(),
		NewAdultSmarterPlayer(),
	}
	for i := 1; i < len(roster); i++ {
		if roster[i].Rating() <= roster[i-1].Rating() {
			t.Fatalf("%s (%v) should outrank %s (%v)",
				roster[i].Name(), roster[i].Rating(),
				roster[i-1].Name(), roster[i-1].Rating())
		}
	}
}
