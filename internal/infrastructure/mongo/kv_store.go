// Package mongo implementa repository.KeyValueStore sobre MongoDB (driver v2).
// Cada clave es un documento {_id: clave, value: <bytes JSON>, updatedAt}.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/jhoicas/isp-ledger/internal/domain/repository"
	"github.com/jhoicas/isp-ledger/pkg/config"
)

var _ repository.KeyValueStore = (*KVStore)(nil)

type kvDoc struct {
	Key       string    `bson:"_id"`
	Value     []byte    `bson:"value"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func keyFilter(key string) bson.D {
	return bson.D{{Key: "_id", Value: key}}
}

// setUpdate reemplaza el documento de la clave conservando _id.
func setUpdate(value []byte, now time.Time) bson.D {
	return bson.D{{Key: "$set", Value: bson.D{
		{Key: "value", Value: value},
		{Key: "updatedAt", Value: now.UTC()},
	}}}
}

// KVStore almacenamiento clave/valor en una colección de MongoDB.
type KVStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// Connect abre el cliente y verifica la conexión.
func Connect(ctx context.Context, cfg config.MongoConfig) (*KVStore, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("conectar mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &KVStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Close desconecta el cliente.
func (s *KVStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var doc kvDoc
	err := s.coll.FindOne(ctx, keyFilter(key)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get kv %s: %w", key, err)
	}
	return doc.Value, true, nil
}

func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.coll.UpdateOne(ctx, keyFilter(key), setUpdate(value, time.Now()), options.UpdateOne().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("set kv %s: %w", key, err)
	}
	return nil
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	if _, err := s.coll.DeleteOne(ctx, keyFilter(key)); err != nil {
		return fmt.Errorf("delete kv %s: %w", key, err)
	}
	return nil
}
