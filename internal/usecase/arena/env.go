package arena

import (
	"math/rand"

	"drop_four/internal/domain/board"
	"drop_four/internal/errors"
)

// Rewards from the agent's point of view.
const (
	RewardWin  = 1.0
	RewardLoss = -1.0
	RewardNone = 0.0
)

// Env simulates a game between the agent and a fixed opponent. The agent
// always sees itself as Self in the observation; the opponent is handed
// the flipped board so it also plays "its own" pieces.
type Env struct {
	opponent Player
	rng      *rand.Rand
	board    board.Board
	done     bool
}

func NewEnv(opponent Player, seed int64) *Env {
	return &Env{
		opponent: opponent,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// Reset starts a fresh game; the starting side is drawn at random.
func (e *Env) Reset() (board.Board, error) {
	return e.ResetStarting(e.rng.Intn(2) == 1)
}

// ResetStarting starts a fresh game with an explicit starter. When the
// opponent starts, its first move is already applied to the returned
// observation.
func (e *Env) ResetStarting(opponentStarts bool) (board.Board, error) {
	e.board = board.Board{}
	e.done = false
	if opponentStarts {
		if _, _, err := e.opponentMove(); err != nil {
			return e.board, err
		}
	}
	return e.board, nil
}

// Step applies the agent's column, then the opponent's reply. It returns
// the next observation, the reward and whether the game ended. An illegal
// agent column loses the game on the spot.
func (e *Env) Step(col int) (board.Board, float64, bool, error) {
	if e.done {
		return e.board, RewardNone, true, errors.ErrGameFinished
	}

	next, row, err := e.board.Apply(col, board.Self)
	if err != nil {
		e.done = true
		return e.board, RewardLoss, true, nil
	}
	e.board = next

	if e.board.CheckWin(board.Self, row, col) {
		e.done = true
		return e.board, RewardWin, true, nil
	}
	if e.board.Full() {
		e.done = true
		return e.board, RewardNone, true, nil
	}

	won, full, err := e.opponentMove()
	if err != nil {
		// a broken opponent ends the game; later steps must not replay it
		e.done = true
		return e.board, RewardNone, true, err
	}
	switch {
	case won:
		e.done = true
		return e.board, RewardLoss, true, nil
	case full:
		e.done = true
		return e.board, RewardNone, true, nil
	}

	return e.board, RewardNone, false, nil
}

// Done reports whether the current game is over.
func (e *Env) Done() bool {
	return e.done
}

// Board returns the current observation.
func (e *Env) Board() board.Board {
	return e.board
}

// opponentMove asks the opponent for a column on the flipped board and
// applies it as Opponent.
func (e *Env) opponentMove() (won bool, full bool, err error) {
	col, err := e.opponent.Decide(e.board.Flip())
	if err != nil {
		return false, false, err
	}
	next, row, err := e.board.Apply(col, board.Opponent)
	if err != nil {
		return false, false, err
	}
	e.board = next
	if e.board.CheckWin(board.Opponent, row, col) {
		return true, false, nil
	}
	return false, e.board.Full(), nil
}
