// Package game exposes the live-game use case over HTTP and websocket.
package game

import (
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"drop_four/internal/adapters"
	"drop_four/internal/bootstrap"
	"drop_four/internal/domain/game"
	domainerrors "drop_four/internal/errors"
	"drop_four/internal/httpresponse"
	repo "drop_four/internal/repository"
	"drop_four/internal/statuses"
	"drop_four/internal/usecase/engine"
	gameuc "drop_four/internal/usecase/game"
	"drop_four/internal/utils"
)

type GameHandler struct {
	cfg    bootstrap.Config
	log    *zap.SugaredLogger
	gameUC *gameuc.GameUseCase
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func NewGameHandler(
	cfg bootstrap.Config,
	log *zap.SugaredLogger,
	mongoAdapter *adapters.AdapterMongo,
	redisAdapter *adapters.AdapterRedis,
	eng *engine.Engine,
) *GameHandler {
	store := repo.NewGameRepository(cfg, log, redisAdapter.GetClient(), mongoAdapter.Database)
	return &GameHandler{
		cfg:    cfg,
		log:    log,
		gameUC: gameuc.NewGameUseCase(store, eng, log),
	}
}

// HandleNewGame creates a session and returns both keys: the secret one
// for playing, the public one for spectating.
func (g *GameHandler) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	var req game.CreateGameRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		g.log.Errorw("bad create request", "error", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := g.gameUC.CreateGame(r.Context(), req)
	if err != nil {
		g.log.Errorw("create game failed", "error", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusInternalServerError, err.Error())
		return
	}

	g.log.Infow("new game", "key", created.GameKeyPublic)
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, game.GameCreateResponse{
		GameKeyPublic: created.GameKeyPublic,
		GameKeySecret: created.GameKeySecret,
	})
}

// HandleGameState returns the spectator view of a game by its public key.
func (g *GameHandler) HandleGameState(w http.ResponseWriter, r *http.Request) {
	gameKey := r.URL.Query().Get("game_key")
	if gameKey == "" {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, "game_key query parameter is required")
		return
	}

	found, err := g.gameUC.GetGameByPublicKey(r.Context(), gameKey)
	if errors.Is(err, domainerrors.ErrGameNotFound) {
		httpresponse.WriteResponseWithStatus(w, http.StatusNotFound, err.Error())
		return
	} else if err != nil {
		g.log.Errorw("get game failed", "key", gameKey, "error", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusInternalServerError, err.Error())
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, stateResponse(found.Public()))
}

// HandleMove applies one human move over plain HTTP. The body carries the
// column; the secret key comes from the query string.
func (g *GameHandler) HandleMove(w http.ResponseWriter, r *http.Request) {
	gameKey := r.URL.Query().Get("game_key")
	if gameKey == "" {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, "game_key query parameter is required")
		return
	}

	var req game.MoveRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		g.log.Errorw("bad move request", "error", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := g.gameUC.Play(r.Context(), gameKey, req.Column)
	if err != nil {
		httpresponse.WriteResponseWithStatus(w, moveErrorStatus(err), err.Error())
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, stateResponse(updated.Public()))
}

// HandleGameSocket upgrades to a websocket and plays the game move by
// move: the client sends columns, the server answers with the state after
// the engine's reply.
func (g *GameHandler) HandleGameSocket(w http.ResponseWriter, r *http.Request) {
	gameKey := r.URL.Query().Get("game_key")
	if gameKey == "" {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, "game_key query parameter is required")
		return
	}

	ctx := r.Context()
	found, err := g.gameUC.GetGameBySecretKey(ctx, gameKey)
	if err != nil {
		httpresponse.WriteResponseWithStatus(w, moveErrorStatus(err), err.Error())
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Errorw("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	if err := conn.WriteJSON(stateResponse(found.Public())); err != nil {
		g.log.Errorw("websocket write failed", "error", err)
		return
	}

	for {
		var req game.MoveRequest
		if err := conn.ReadJSON(&req); err != nil {
			g.log.Infow("websocket closed", "key", found.GameKeyPublic, "error", err)
			return
		}

		updated, err := g.gameUC.Play(ctx, gameKey, req.Column)
		if err != nil {
			if writeErr := conn.WriteJSON(httpresponse.ErrorResponse{ErrorDescription: err.Error()}); writeErr != nil {
				return
			}
			continue
		}

		if err := conn.WriteJSON(stateResponse(updated.Public())); err != nil {
			g.log.Errorw("websocket write failed", "error", err)
			return
		}

		if updated.Status != statuses.StatusRunning {
			g.log.Infow("websocket game over", "key", updated.GameKeyPublic, "status", updated.Status)
			return
		}
	}
}

func stateResponse(g game.Game) game.GameStateResponse {
	resp := game.GameStateResponse{Game: g}
	if len(g.Moves) > 0 {
		last := g.Moves[len(g.Moves)-1]
		resp.LastMove = &last
	}
	return resp
}

func moveErrorStatus(err error) int {
	switch {
	case errors.Is(err, domainerrors.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainerrors.ErrInvalidMove),
		errors.Is(err, domainerrors.ErrNotYourTurn),
		errors.Is(err, domainerrors.ErrGameFinished),
		errors.Is(err, domainerrors.ErrMalformedBoard):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
