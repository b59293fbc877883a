// Package backend selecciona y abre el almacén clave/valor según STORAGE_DRIVER.
package backend

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/jhoicas/isp-ledger/internal/domain/repository"
	"github.com/jhoicas/isp-ledger/internal/infrastructure/kvstore"
	"github.com/jhoicas/isp-ledger/internal/infrastructure/mongo"
	"github.com/jhoicas/isp-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/isp-ledger/internal/infrastructure/redis"
	"github.com/jhoicas/isp-ledger/internal/infrastructure/sqlite"
	"github.com/jhoicas/isp-ledger/pkg/config"
	"github.com/jhoicas/isp-ledger/pkg/logger"
)

// Backend almacén abierto más su cierre. Postgres queda expuesto para las consultas SQL directas.
type Backend struct {
	KV       repository.KeyValueStore
	Postgres *postgres.KVStore
	closers  []func(context.Context) error
}

// Close libera las conexiones en orden inverso a la apertura.
func (b *Backend) Close(ctx context.Context) error {
	var first error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](ctx); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Open abre el driver configurado. fs solo lo usan los drivers de archivo (file, sqlite).
func Open(ctx context.Context, cfg *config.Config, fs afero.Fs, log *logger.Logger) (*Backend, error) {
	b := &Backend{}
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		b.KV = kvstore.NewMemory()

	case config.DriverFile:
		f, err := kvstore.NewFile(fs, cfg.Storage.Dir)
		if err != nil {
			return nil, err
		}
		b.KV = f

	case config.DriverSQLite:
		if err := fs.MkdirAll(filepath.Dir(cfg.Storage.SQLitePath), 0o755); err != nil {
			return nil, fmt.Errorf("crear directorio de sqlite: %w", err)
		}
		s, err := sqlite.Open(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		b.KV = s
		b.closers = append(b.closers, func(context.Context) error { return s.Close() })

	case config.DriverPostgres:
		s, err := postgres.Open(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		b.KV, b.Postgres = s, s
		b.closers = append(b.closers, func(context.Context) error { s.Close(); return nil })

	case config.DriverRedis:
		s, err := redis.Connect(ctx, cfg.Redis, cfg.App.Name+":")
		if err != nil {
			return nil, err
		}
		b.KV = s
		b.closers = append(b.closers, func(context.Context) error { return s.Close() })

	case config.DriverMongo:
		s, err := mongo.Connect(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		b.KV = s
		b.closers = append(b.closers, s.Close)

	default:
		return nil, fmt.Errorf("STORAGE_DRIVER desconocido: %q", cfg.Storage.Driver)
	}

	log.Info().Str("driver", cfg.Storage.Driver).Msg("almacenamiento listo")
	return b, nil
}
