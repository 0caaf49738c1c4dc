package repo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"drop_four/internal/usecase/arena"
)

const ratingsColl = "ratings"

// RatingRepository persists leaderboard runs, one document per player.
type RatingRepository struct {
	log   *zap.SugaredLogger
	mongo *mongo.Database
}

func NewRatingRepository(log *zap.SugaredLogger, mongoDB *mongo.Database) *RatingRepository {
	return &RatingRepository{log: log, mongo: mongoDB}
}

func (r *RatingRepository) SaveRating(ctx context.Context, entry arena.RatingEntry) error {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	collection := r.mongo.Collection(ratingsColl)
	filter := bson.M{"player": entry.Player}
	update := bson.M{"$set": entry}
	opts := options.Update().SetUpsert(true)

	if _, err := collection.UpdateOne(ctx, filter, update, opts); err != nil {
		r.log.Errorw("failed to save rating", "player", entry.Player, "error", err)
		return err
	}
	r.log.Infow("rating saved", "player", entry.Player, "rating", entry.Rating)
	return nil
}

var _ arena.RatingStore = (*RatingRepository)(nil)
