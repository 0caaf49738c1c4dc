package game

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"drop_four/internal/domain/board"
	"drop_four/internal/domain/game"
	"drop_four/internal/errors"
	"drop_four/internal/statuses"
	"drop_four/internal/usecase/engine"
)

type memStore struct {
	games    map[string]game.Game
	archived []game.Game
	n        int
}

func newMemStore() *memStore {
	return &memStore{games: map[string]game.Game{}}
}

func (s *memStore) GenerateGameKeys(_ context.Context) (string, string, error) {
	s.n++
	return fmt.Sprintf("secret-%d", s.n), fmt.Sprintf("%05d", s.n), nil
}

func (s *memStore) SaveGame(_ context.Context, g game.Game) error {
	s.games[g.GameKeySecret] = g
	return nil
}

func (s *memStore) GetGameBySecretKey(_ context.Context, key string) (game.Game, error) {
	g, ok := s.games[key]
	if !ok {
		return game.Game{}, errors.ErrGameNotFound
	}
	return g, nil
}

func (s *memStore) GetGameByPublicKey(_ context.Context, key string) (game.Game, error) {
	for _, g := range s.games {
		if g.GameKeyPublic == key {
			return g, nil
		}
	}
	return game.Game{}, errors.ErrGameNotFound
}

func (s *memStore) DeleteGame(_ context.Context, key string) error {
	delete(s.games, key)
	return nil
}

func (s *memStore) ArchiveGame(_ context.Context, g game.Game) error {
	s.archived = append(s.archived, g)
	return nil
}

func newUseCase(store GameStore) *GameUseCase {
	eng := engine.New(engine.Config{MaxDepth: 2, UseHeuristic: true})
	return NewGameUseCase(store, eng, zap.NewNop().Sugar())
}

func countPieces(cells [][]int) (human, eng int) {
	for _, row := range cells {
		for _, c := range row {
			switch {
			case c > 0:
				human++
			case c < 0:
				eng++
			}
		}
	}
	return human, eng
}

func TestCreateGameHumanStarts(t *testing.T) {
	store := newMemStore()
	uc := newUseCase(store)

	created, err := uc.CreateGame(context.Background(), game.CreateGameRequest{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != statuses.StatusRunning || created.Turn != game.SideHuman {
		t.Fatalf("unexpected state: status=%s turn=%s", created.Status, created.Turn)
	}
	h, e := countPieces(created.Board)
	if h != 0 || e != 0 {
		t.Fatalf("expected an empty board, got %d human and %d engine pieces", h, e)
	}
	if _, ok := store.games[created.GameKeySecret]; !ok {
		t.Fatalf("game was not saved to the live store")
	}
}

func TestCreateGameEngineStarts(t *testing.T) {
	store := newMemStore()
	uc := newUseCase(store)

	created, err := uc.CreateGame(context.Background(), game.CreateGameRequest{EngineStarts: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	h, e := countPieces(created.Board)
	if h != 0 || e != 1 {
		t.Fatalf("expected exactly one engine piece, got %d human and %d engine", h, e)
	}
	if created.Turn != game.SideHuman {
		t.Fatalf("after the engine's opening move it is the human's turn, got %s", created.Turn)
	}
	if len(created.Moves) != 1 || created.Moves[0].Side != game.SideEngine {
		t.Fatalf("unexpected move log: %+v", created.Moves)
	}
}

func TestPlayEngineReplies(t *testing.T) {
	store := newMemStore()
	uc := newUseCase(store)

	created, err := uc.CreateGame(context.Background(), game.CreateGameRequest{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := uc.Play(context.Background(), created.GameKeySecret, 0)
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if updated.Status != statuses.StatusRunning || updated.Turn != game.SideHuman {
		t.Fatalf("unexpected state: status=%s turn=%s", updated.Status, updated.Turn)
	}
	h, e := countPieces(updated.Board)
	if h != 1 || e != 1 {
		t.Fatalf("expected one piece each, got %d human and %d engine", h, e)
	}
	if len(updated.Moves) != 2 || updated.Moves[0].Side != game.SideHuman || updated.Moves[1].Side != game.SideEngine {
		t.Fatalf("unexpected move log: %+v", updated.Moves)
	}
}

func TestPlayHumanWinArchivesGame(t *testing.T) {
	store := newMemStore()
	uc := newUseCase(store)

	created, err := uc.CreateGame(context.Background(), game.CreateGameRequest{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Hand-craft a position where column 3 wins for the human on the spot.
	var b board.Board
	for col := 0; col < 3; col++ {
		b, _, err = b.Apply(col, board.Self)
		if err != nil {
			t.Fatalf("setup: %v", err)
		}
		b, _, err = b.Apply(col, board.Opponent)
		if err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
	g := store.games[created.GameKeySecret]
	g.Board = b.Cells()
	store.games[created.GameKeySecret] = g

	updated, err := uc.Play(context.Background(), created.GameKeySecret, 3)
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if updated.Status != statuses.StatusHumanWon {
		t.Fatalf("expected human win, got %s", updated.Status)
	}
	if updated.FinishedAt == nil {
		t.Fatalf("finished game must carry a finish time")
	}
	if len(store.archived) != 1 {
		t.Fatalf("expected one archived game, got %d", len(store.archived))
	}
	if _, ok := store.games[created.GameKeySecret]; ok {
		t.Fatalf("finished game must leave the live store")
	}
	if _, err := uc.Play(context.Background(), created.GameKeySecret, 0); !stderrors.Is(err, errors.ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound after archiving, got %v", err)
	}
}

func TestPlayRejectsBadMoves(t *testing.T) {
	store := newMemStore()
	uc := newUseCase(store)

	if _, err := uc.Play(context.Background(), "missing", 0); !stderrors.Is(err, errors.ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}

	created, err := uc.CreateGame(context.Background(), game.CreateGameRequest{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := uc.Play(context.Background(), created.GameKeySecret, board.Cols); !stderrors.Is(err, errors.ErrInvalidMove) {
		t.Fatalf("expected ErrInvalidMove for an out-of-range column, got %v", err)
	}

	// Fill column 0 by hand and try to drop into it once more.
	var b board.Board
	for i := 0; i < board.Rows; i++ {
		p := board.Self
		if i%2 == 0 {
			p = board.Opponent
		}
		b, _, err = b.Apply(0, p)
		if err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
	g := store.games[created.GameKeySecret]
	g.Board = b.Cells()
	store.games[created.GameKeySecret] = g

	if _, err := uc.Play(context.Background(), created.GameKeySecret, 0); !stderrors.Is(err, errors.ErrInvalidMove) {
		t.Fatalf("expected ErrInvalidMove for a full column, got %v", err)
	}
}
