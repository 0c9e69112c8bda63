package auth

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// importedUserIDFloor separa los ids de perfiles registrados de los ids que
// trae el dataset importado, para que nunca choquen.
const importedUserIDFloor = 1_000_000

type mongoRepository struct {
	users    *mongo.Collection
	counters *mongo.Collection
}

// NewMongoRepository crea un repositorio de usuarios basado en MongoDB.
func NewMongoRepository(users, counters *mongo.Collection) Repository {
	return &mongoRepository{users: users, counters: counters}
}

// EnsureIndexes crea el índice único de username.
func EnsureIndexes(ctx context.Context, users *mongo.Collection) error {
	_, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("auth: users index: %w", err)
	}
	return nil
}

func (r *mongoRepository) CreateUser(ctx context.Context, u *User) error {
	_, err := r.users.InsertOne(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *mongoRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	err := r.users.FindOne(ctx, bson.M{"username": username}).Decode(&u)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// NextUserID incrementa el contador atómico de ids de usuario. Arranca en
// importedUserIDFloor para no pisar los ids del dataset.
func (r *mongoRepository) NextUserID(ctx context.Context) (int, error) {
	var doc struct {
		Seq int `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": "userId"},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().
			SetUpsert(true).
			SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("auth: next user id: %w", err)
	}
	return importedUserIDFloor + doc.Seq, nil
}
