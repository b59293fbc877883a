// Package sqlite implementa repository.KeyValueStore sobre un archivo SQLite embebido
// (driver modernc.org/sqlite, sin cgo). Pensado para instalaciones de un solo equipo.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // registra el driver "sqlite"

	"github.com/jhoicas/isp-ledger/internal/domain/repository"
)

var _ repository.KeyValueStore = (*KVStore)(nil)

const schema = `
	CREATE TABLE IF NOT EXISTS kv_store (
		key        TEXT PRIMARY KEY,
		value      BLOB NOT NULL,
		updated_at INTEGER NOT NULL
	)`

// KVStore almacenamiento clave/valor en la tabla kv_store.
type KVStore struct {
	db *sql.DB
}

// Open abre (o crea) la base en path. Usar ":memory:" para tests.
func Open(ctx context.Context, path string) (*KVStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite %s: %w", path, err)
	}
	// SQLite admite un solo escritor; una conexión evita SQLITE_BUSY y mantiene viva la base :memory:.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `PRAGMA journal_mode=WAL`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pragma wal: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("crear tabla kv_store: %w", err)
	}
	return &KVStore{db: db}, nil
}

// Close cierra la base.
func (s *KVStore) Close() error {
	return s.db.Close()
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get kv %s: %w", key, err)
	}
	return value, true, nil
}

func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES (?, ?, strftime('%s','now'))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("set kv %s: %w", key, err)
	}
	return nil
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv_store WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete kv %s: %w", key, err)
	}
	return nil
}
