// Package game runs live human-versus-engine sessions on top of a
// GameStore and the decision engine.
package game

import (
	"context"
	"time"

	"go.uber.org/zap"

	"drop_four/internal/domain/board"
	"drop_four/internal/domain/game"
	"drop_four/internal/errors"
	"drop_four/internal/statuses"
	"drop_four/internal/usecase/engine"
)

type GameStore interface {
	GenerateGameKeys(ctx context.Context) (gameKeySecret string, gameKeyPublic string, err error)
	SaveGame(ctx context.Context, g game.Game) error
	GetGameBySecretKey(ctx context.Context, gameKeySecret string) (game.Game, error)
	GetGameByPublicKey(ctx context.Context, gameKeyPublic string) (game.Game, error)
	DeleteGame(ctx context.Context, gameKeySecret string) error
	ArchiveGame(ctx context.Context, g game.Game) error
}

type GameUseCase struct {
	store GameStore
	eng   *engine.Engine
	log   *zap.SugaredLogger
}

func NewGameUseCase(store GameStore, eng *engine.Engine, log *zap.SugaredLogger) *GameUseCase {
	return &GameUseCase{store: store, eng: eng, log: log}
}

// CreateGame starts a session. When the engine starts, its first move is
// already on the board the caller gets back.
func (u *GameUseCase) CreateGame(ctx context.Context, req game.CreateGameRequest) (game.Game, error) {
	secret, public, err := u.store.GenerateGameKeys(ctx)
	if err != nil {
		return game.Game{}, err
	}

	var b board.Board
	g := game.Game{
		GameKeySecret: secret,
		GameKeyPublic: public,
		Status:        statuses.StatusRunning,
		Turn:          game.SideHuman,
		EngineName:    u.eng.Name(),
		EngineStarted: req.EngineStarts,
		CreatedAt:     time.Now(),
	}

	if req.EngineStarts {
		if err := u.engineMove(&g, &b); err != nil {
			return game.Game{}, err
		}
	}
	g.Board = b.Cells()

	if err := u.store.SaveGame(ctx, g); err != nil {
		u.log.Errorw("failed to save new game", "key", public, "error", err)
		return game.Game{}, errors.ErrCreateGameFailed
	}
	u.log.Infow("game created", "key", public, "engine_starts", req.EngineStarts)
	return g, nil
}

// Play applies the human's column and, if the game is still open, the
// engine's reply. Finished games are archived and removed from the live
// store.
func (u *GameUseCase) Play(ctx context.Context, gameKeySecret string, col int) (game.Game, error) {
	g, err := u.store.GetGameBySecretKey(ctx, gameKeySecret)
	if err != nil {
		return game.Game{}, err
	}
	if g.Status != statuses.StatusRunning {
		return g, errors.ErrGameFinished
	}
	if g.Turn != game.SideHuman {
		return g, errors.ErrNotYourTurn
	}

	b, err := board.FromCells(g.Board)
	if err != nil {
		return g, err
	}

	next, row, err := b.Apply(col, board.Self)
	if err != nil {
		return g, err
	}
	b = next
	g.Moves = append(g.Moves, game.Move{
		Side:     game.SideHuman,
		Column:   col,
		Row:      row,
		PlayedAt: time.Now(),
	})

	switch {
	case b.CheckWin(board.Self, row, col):
		finish(&g, statuses.StatusHumanWon)
	case b.Full():
		finish(&g, statuses.StatusDraw)
	default:
		g.Turn = game.SideEngine
		if err := u.engineMove(&g, &b); err != nil {
			return g, err
		}
	}

	g.Board = b.Cells()
	if err := u.store.SaveGame(ctx, g); err != nil {
		return g, err
	}

	if g.Status != statuses.StatusRunning {
		if err := u.store.ArchiveGame(ctx, g); err != nil {
			u.log.Errorw("failed to archive game", "key", g.GameKeyPublic, "error", err)
		} else if err := u.store.DeleteGame(ctx, g.GameKeySecret); err != nil {
			u.log.Errorw("failed to drop finished game", "key", g.GameKeyPublic, "error", err)
		}
		u.log.Infow("game finished", "key", g.GameKeyPublic, "status", g.Status, "moves", len(g.Moves))
	}

	return g, nil
}

func (u *GameUseCase) GetGameBySecretKey(ctx context.Context, gameKeySecret string) (game.Game, error) {
	return u.store.GetGameBySecretKey(ctx, gameKeySecret)
}

func (u *GameUseCase) GetGameByPublicKey(ctx context.Context, gameKeyPublic string) (game.Game, error) {
	return u.store.GetGameByPublicKey(ctx, gameKeyPublic)
}

// engineMove lets the engine pick on the flipped board, where it sees
// itself as the side to move, and applies the result as the engine side.
func (u *GameUseCase) engineMove(g *game.Game, b *board.Board) error {
	col, err := u.eng.Decide(b.Flip())
	if err != nil {
		return err
	}
	next, row, err := b.Apply(col, board.Opponent)
	if err != nil {
		return err
	}
	*b = next
	g.Moves = append(g.Moves, game.Move{
		Side:     game.SideEngine,
		Column:   col,
		Row:      row,
		PlayedAt: time.Now(),
	})

	switch {
	case b.CheckWin(board.Opponent, row, col):
		finish(g, statuses.StatusEngineWon)
	case b.Full():
		finish(g, statuses.StatusDraw)
	default:
		g.Turn = game.SideHuman
	}
	return nil
}

func finish(g *game.Game, status string) {
	now := time.Now()
	g.Status = status
	g.Turn = ""
	g.FinishedAt = &now
}
