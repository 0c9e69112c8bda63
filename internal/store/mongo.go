package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"movierec/pkg/types"
)

const (
	moviesColl       = "movies"
	ratingsColl      = "ratings"
	similaritiesColl = "similarities"
)

// MongoRepository implementa Repository sobre MongoDB.
type MongoRepository struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoRepository crea el repositorio sobre la base indicada.
func NewMongoRepository(client *mongo.Client, dbName string) *MongoRepository {
	return &MongoRepository{
		client: client,
		db:     client.Database(dbName),
	}
}

// EnsureIndexes crea los índices que sostienen los invariantes: unicidad del
// par (userId, movieId) en ratings y los índices de consulta de la tabla de
// similitudes por ambos extremos.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.db.Collection(ratingsColl).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "movieId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("%w: ratings index: %w", ErrUnavailable, err)
	}

	sims := r.db.Collection(similaritiesColl)
	_, err = sims.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "anchorId", Value: 1}, {Key: "weightedSim", Value: -1}}},
		{Keys: bson.D{{Key: "neighborId", Value: 1}, {Key: "weightedSim", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("%w: similarities index: %w", ErrUnavailable, err)
	}
	return nil
}

func (r *MongoRepository) FindSimilarityEdges(ctx context.Context, movieID int) ([]types.SimilarityEdge, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"anchorId": movieID},
		bson.M{"neighborId": movieID},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "weightedSim", Value: -1}})

	cursor, err := r.db.Collection(similaritiesColl).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: find similarities: %w", ErrUnavailable, err)
	}
	defer cursor.Close(ctx)

	var edges []types.SimilarityEdge
	if err := cursor.All(ctx, &edges); err != nil {
		return nil, fmt.Errorf("%w: decode similarities: %w", ErrUnavailable, err)
	}
	return edges, nil
}

// ReplaceAllSimilarityEdges hace delete-then-insert dentro de una sola
// transacción: los lectores ven la tabla vieja o la nueva, nunca una mezcla,
// y un rebuild fallido no deja filas huérfanas.
func (r *MongoRepository) ReplaceAllSimilarityEdges(ctx context.Context, edges []types.SimilarityEdge) error {
	sess, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("%w: start session: %w", ErrUnavailable, err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(ctx context.Context) (interface{}, error) {
		coll := r.db.Collection(similaritiesColl)
		if _, err := coll.DeleteMany(ctx, bson.M{}); err != nil {
			return nil, err
		}
		if len(edges) == 0 {
			return nil, nil
		}
		docs := make([]interface{}, len(edges))
		for i, e := range edges {
			docs[i] = e
		}
		if _, err := coll.InsertMany(ctx, docs); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("%w: replace similarities: %w", ErrUnavailable, err)
	}
	return nil
}

func (r *MongoRepository) FindRatingsForUser(ctx context.Context, userID int) ([]types.Rating, error) {
	cursor, err := r.db.Collection(ratingsColl).Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("%w: find ratings: %w", ErrUnavailable, err)
	}
	defer cursor.Close(ctx)

	var ratings []types.Rating
	if err := cursor.All(ctx, &ratings); err != nil {
		return nil, fmt.Errorf("%w: decode ratings: %w", ErrUnavailable, err)
	}
	return ratings, nil
}

func (r *MongoRepository) UpsertRating(ctx context.Context, userID, movieID int, value float64) (bool, error) {
	res, err := r.db.Collection(ratingsColl).UpdateOne(ctx,
		bson.M{"userId": userID, "movieId": movieID},
		bson.M{"$setOnInsert": bson.M{
			"userId":    userID,
			"movieId":   movieID,
			"value":     value,
			"timestamp": time.Now().Unix(),
		}},
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		// carrera entre dos inserts del mismo par: el índice único frena al
		// segundo y degenera en no-op, nunca en fila duplicada
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, fmt.Errorf("%w: upsert rating: %w", ErrUnavailable, err)
	}
	return res.UpsertedCount > 0, nil
}

func (r *MongoRepository) FindAllMovies(ctx context.Context) ([]types.Movie, error) {
	cursor, err := r.db.Collection(moviesColl).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("%w: find movies: %w", ErrUnavailable, err)
	}
	defer cursor.Close(ctx)

	var movies []types.Movie
	if err := cursor.All(ctx, &movies); err != nil {
		return nil, fmt.Errorf("%w: decode movies: %w", ErrUnavailable, err)
	}
	return movies, nil
}

func (r *MongoRepository) ReplaceAllMovies(ctx context.Context, movies []types.Movie) error {
	sess, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("%w: start session: %w", ErrUnavailable, err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(ctx context.Context) (interface{}, error) {
		coll := r.db.Collection(moviesColl)
		if _, err := coll.DeleteMany(ctx, bson.M{}); err != nil {
			return nil, err
		}
		if len(movies) == 0 {
			return nil, nil
		}
		docs := make([]interface{}, len(movies))
		for i, m := range movies {
			docs[i] = m
		}
		if _, err := coll.InsertMany(ctx, docs); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("%w: replace movies: %w", ErrUnavailable, err)
	}
	return nil
}
