// Package repo keeps live games in Redis and finished games in MongoDB.
package repo

import (
	"context"
	"crypto/md5"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"drop_four/internal/bootstrap"
	"drop_four/internal/domain/game"
	domainerrors "drop_four/internal/errors"
)

const (
	liveGamePrefix   = "game:"
	publicKeyPrefix  = "game_public:"
	mongoOpTimeout   = 5 * time.Second
	archiveGamesColl = "games"
)

type GameRepository struct {
	cfg   bootstrap.Config
	log   *zap.SugaredLogger
	redis *redis.Client
	mongo *mongo.Database
}

func NewGameRepository(cfg bootstrap.Config, log *zap.SugaredLogger, redisClient *redis.Client, mongoDB *mongo.Database) *GameRepository {
	return &GameRepository{
		cfg:   cfg,
		log:   log,
		redis: redisClient,
		mongo: mongoDB,
	}
}

// GenerateGameKeys mints a uuid secret plus a short public code derived
// from it. On the rare public collision the whole pair is redrawn.
func (g *GameRepository) GenerateGameKeys(ctx context.Context) (gameKeySecret string, gameKeyPublic string, err error) {
	for {
		gameKeySecret = uuid.New().String()
		gameKeyPublic = generateHash(gameKeySecret)

		taken, err := g.redis.Exists(ctx, publicKeyPrefix+gameKeyPublic).Result()
		if err != nil {
			return "", "", fmt.Errorf("check public key: %w", err)
		}
		if taken == 0 {
			return gameKeySecret, gameKeyPublic, nil
		}
	}
}

func generateHash(s string) string {
	h := md5.New()
	h.Write([]byte(s))
	hashBytes := h.Sum(nil)
	number := binary.BigEndian.Uint32(hashBytes[:4])
	code := number % 100000
	return fmt.Sprintf("%05d", code)
}

func (g *GameRepository) SaveGame(ctx context.Context, gameData game.Game) error {
	raw, err := json.Marshal(gameData)
	if err != nil {
		return fmt.Errorf("marshal game: %w", err)
	}

	pipe := g.redis.TxPipeline()
	pipe.Set(ctx, liveGamePrefix+gameData.GameKeySecret, raw, 0)
	pipe.Set(ctx, publicKeyPrefix+gameData.GameKeyPublic, gameData.GameKeySecret, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		g.log.Errorw("failed to save live game", "key", gameData.GameKeyPublic, "error", err)
		return err
	}
	return nil
}

func (g *GameRepository) GetGameBySecretKey(ctx context.Context, gameKeySecret string) (game.Game, error) {
	raw, err := g.redis.Get(ctx, liveGamePrefix+gameKeySecret).Bytes()
	if errors.Is(err, redis.Nil) {
		return game.Game{}, domainerrors.ErrGameNotFound
	} else if err != nil {
		return game.Game{}, err
	}

	var found game.Game
	if err := json.Unmarshal(raw, &found); err != nil {
		return game.Game{}, fmt.Errorf("unmarshal game: %w", err)
	}
	return found, nil
}

func (g *GameRepository) GetGameByPublicKey(ctx context.Context, gameKeyPublic string) (game.Game, error) {
	secret, err := g.redis.Get(ctx, publicKeyPrefix+gameKeyPublic).Result()
	if errors.Is(err, redis.Nil) {
		return game.Game{}, domainerrors.ErrGameNotFound
	} else if err != nil {
		return game.Game{}, err
	}
	return g.GetGameBySecretKey(ctx, secret)
}

func (g *GameRepository) DeleteGame(ctx context.Context, gameKeySecret string) error {
	found, err := g.GetGameBySecretKey(ctx, gameKeySecret)
	if errors.Is(err, domainerrors.ErrGameNotFound) {
		return nil
	} else if err != nil {
		return err
	}
	return g.redis.Del(ctx,
		liveGamePrefix+gameKeySecret,
		publicKeyPrefix+found.GameKeyPublic,
	).Err()
}

// ArchiveGame writes a finished game to Mongo for later lookup.
func (g *GameRepository) ArchiveGame(ctx context.Context, gameData game.Game) error {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	collection := g.mongo.Collection(archiveGamesColl)
	if _, err := collection.InsertOne(ctx, gameData); err != nil {
		g.log.Errorw("failed to archive game", "key", gameData.GameKeyPublic, "error", err)
		return err
	}
	g.log.Infow("game archived", "key", gameData.GameKeyPublic, "status", gameData.Status)
	return nil
}
