// Package plattform concentra el bootstrap de clientes de infraestructura.
package plattform

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ErrMissingMongoURI indica que no se configuró la URI de MongoDB.
var ErrMissingMongoURI = errors.New("plattform: missing MongoDB URI")

// NewMongoClient establece la conexión a MongoDB y la verifica con un ping.
// El caller es dueño del cliente y debe llamar Disconnect al terminar.
func NewMongoClient(ctx context.Context, uri string) (*mongo.Client, error) {
	if uri == "" {
		return nil, ErrMissingMongoURI
	}

	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opt := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)
	client, err := mongo.Connect(opt)
	if err != nil {
		return nil, fmt.Errorf("plattform: connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("plattform: ping: %w", err)
	}
	return client, nil
}
