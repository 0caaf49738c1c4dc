package arena

import (
	"errors"
	"testing"

	"drop_four/internal/domain/board"
	domainerrors "drop_four/internal/errors"
)

// columnPlayer always plays the same column. Handy for scripted games.
type columnPlayer struct {
	col    int
	rating float64
}

func (p *columnPlayer) Decide(b board.Board) (int, error) {
	if _, _, err := b.Apply(p.col, board.Self); err != nil {
		moves := b.LegalMoves()
		if len(moves) == 0 {
			return -1, domainerrors.ErrNoLegalMove
		}
		return moves[0], nil
	}
	return p.col, nil
}

func (p *columnPlayer) Name() string        { return "ColumnPlayer" }
func (p *columnPlayer) Rating() float64     { return p.rating }
func (p *columnPlayer) Deterministic() bool { return true }

func TestStepAgentWins(t *testing.T) {
	env := NewEnv(&columnPlayer{col: 0}, 1)
	if _, err := env.ResetStarting(false); err != nil {
		t.Fatalf("reset: %v", err)
	}
	// Agent stacks column 3, opponent stacks column 0; the agent moves
	// first and completes its vertical four on move four.
	for i := 0; i < 3; i++ {
		_, reward, done, err := env.Step(3)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if done {
			t.Fatalf("game ended early on step %d with reward %v", i, reward)
		}
	}
	obs, reward, done, err := env.Step(3)
	if err != nil {
		t.Fatalf("final step: %v", err)
	}
	if !done || reward != RewardWin {
		t.Fatalf("expected win, got done=%v reward=%v\n%s", done, reward, obs)
	}
}

func TestStepOpponentWins(t *testing.T) {
	env := NewEnv(&columnPlayer{col: 0}, 1)
	if _, err := env.ResetStarting(true); err != nil {
		t.Fatalf("reset: %v", err)
	}
	// Opponent moved first and stacks column 0; the agent wastes moves on
	// column 6 and loses when the opponent reaches four.
	for i := 0; ; i++ {
		if i > board.Rows {
			t.Fatalf("game never ended")
		}
		_, reward, done, err := env.Step(6)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if done {
			if reward != RewardLoss {
				t.Fatalf("expected loss, got reward %v", reward)
			}
			return
		}
	}
}

func TestStepIllegalColumnLoses(t *testing.T) {
	env := NewEnv(&columnPlayer{col: 0}, 1)
	if _, err := env.ResetStarting(false); err != nil {
		t.Fatalf("reset: %v", err)
	}
	// Fill column 6 from both sides, then drop into it once more. Three
	// agent moves plus three opponent replies in column 0 leave both
	// columns short of four, so the game is still running.
	env.board = board.Board{}
	for r := 0; r < board.Rows; r++ {
		p := board.Self
		if r%2 == 0 {
			p = board.Opponent
		}
		var err error
		env.board, _, err = env.board.Apply(6, p)
		if err != nil {
			t.Fatalf("fill: %v", err)
		}
	}
	_, reward, done, err := env.Step(6)
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if !done || reward != RewardLoss {
		t.Fatalf("illegal move must lose: done=%v reward=%v", done, reward)
	}
}

func TestStepAfterDone(t *testing.T) {
	env := NewEnv(&columnPlayer{col: 0}, 1)
	if _, err := env.ResetStarting(false); err != nil {
		t.Fatalf("reset: %v", err)
	}
	for i := 0; i < 4; i++ {
		if _, _, _, err := env.Step(3); err != nil {
			t.Fatalf("step: %v", err)
		}
	}
	if !env.Done() {
		t.Fatalf("game should be over")
	}
	if _, _, _, err := env.Step(3); !errors.Is(err, domainerrors.ErrGameFinished) {
		t.Fatalf("expected ErrGameFinished, got %v", err)
	}
}

type brokenPlayer struct{}

func (brokenPlayer) Decide(board.Board) (int, error) { return 0, domainerrors.ErrInternal }
func (brokenPlayer) Name() string                    { return "BrokenPlayer" }
func (brokenPlayer) Rating() float64                 { return 0 }
func (brokenPlayer) Deterministic() bool             { return true }

func TestStepOpponentErrorEndsGame(t *testing.T) {
	env := NewEnv(brokenPlayer{}, 1)
	if _, err := env.ResetStarting(false); err != nil {
		t.Fatalf("reset: %v", err)
	}
	_, _, done, err := env.Step(3)
	if err == nil || !done {
		t.Fatalf("expected an error and a finished game, got done=%v err=%v", done, err)
	}
	if !env.Done() {
		t.Fatalf("env must stay done after the opponent failed")
	}
	if _, _, _, err := env.Step(3); !errors.Is(err, domainerrors.ErrGameFinished) {
		t.Fatalf("expected ErrGameFinished on the next step, got %v", err)
	}
}

func TestResetStartingOpponentMovesFirst(t *testing.T) {
	env := NewEnv(&columnPlayer{col: 2}, 1)
	obs, err := env.ResetStarting(true)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if obs.At(board.Rows-1, 2) != board.Opponent {
		t.Fatalf("expected opponent piece at bottom of column 2\n%s", obs)
	}
	count := 0
	for r := 0; r < board.Rows; r++ {
		for c := 0; c < board.Cols; c++ {
			if obs.At(r, c) != board.Empty {
				count++
			}
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one piece after opponent start, got %d", count)
	}
}
