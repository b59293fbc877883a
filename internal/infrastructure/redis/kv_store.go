// Package redis implementa repository.KeyValueStore sobre Redis (go-redis v9).
package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/isp-ledger/internal/domain/repository"
	"github.com/jhoicas/isp-ledger/pkg/config"
)

var _ repository.KeyValueStore = (*KVStore)(nil)

// KVStore guarda cada documento como un string de Redis bajo <prefix><clave>.
type KVStore struct {
	rdb    *goredis.Client
	prefix string
}

// Connect crea el cliente y verifica la conexión con PING.
func Connect(ctx context.Context, cfg config.RedisConfig, prefix string) (*KVStore, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}
	return &KVStore{rdb: rdb, prefix: prefix}, nil
}

// Close cierra el cliente.
func (s *KVStore) Close() error {
	return s.rdb.Close()
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := s.rdb.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get kv %s: %w", key, err)
	}
	return v, true, nil
}

func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.rdb.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("set kv %s: %w", key, err)
	}
	return nil
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("delete kv %s: %w", key, err)
	}
	return nil
}
