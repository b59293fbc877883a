package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/isp-ledger/internal/domain/repository"
)

// Querier abstrae pool y tx para los adaptadores.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ repository.KeyValueStore = (*KVStore)(nil)

const kvSchema = `
	CREATE TABLE IF NOT EXISTS kv_store (
		key        TEXT PRIMARY KEY,
		value      JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

// KVStore implementación de KeyValueStore sobre la tabla kv_store (un documento JSONB por clave).
type KVStore struct {
	q    Querier
	pool *pgxpool.Pool // nil si el store se construyó sobre un Querier ajeno
}

// NewKVStore construye el adaptador y crea la tabla si no existe.
func NewKVStore(ctx context.Context, q Querier) (*KVStore, error) {
	if _, err := q.Exec(ctx, kvSchema); err != nil {
		return nil, fmt.Errorf("crear tabla kv_store: %w", err)
	}
	return &KVStore{q: q}, nil
}

// Close cierra el pool abierto por Open. Con un Querier ajeno no hace nada.
func (s *KVStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Get obtiene el documento de la clave.
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.q.QueryRow(ctx, `SELECT value FROM kv_store WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get kv %s: %w", key, err)
	}
	return value, true, nil
}

// Set inserta o reemplaza el documento de la clave.
func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	if _, err := s.q.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("set kv %s: %w", key, err)
	}
	return nil
}

// Delete elimina la clave (no-op si no existe).
func (s *KVStore) Delete(ctx context.Context, key string) error {
	if _, err := s.q.Exec(ctx, `DELETE FROM kv_store WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete kv %s: %w", key, err)
	}
	return nil
}

// RecordedTotals suma paidAmount y due de los registros existentes del mes directamente en
// PostgreSQL (clientes sin registro no cuentan). Lo usa syncctl para auditar sin cargar la colección.
func (s *KVStore) RecordedTotals(ctx context.Context, monthKey string) (collected, due decimal.Decimal, err error) {
	query := `
		SELECT COALESCE(SUM((c->'records'->$2->>'paidAmount')::numeric), 0),
		       COALESCE(SUM((c->'records'->$2->>'due')::numeric), 0)
		FROM kv_store, jsonb_array_elements(value) AS c
		WHERE key = $1 AND jsonb_typeof(value) = 'array' AND c->'records' ? $2`
	err = s.q.QueryRow(ctx, query, repository.KeyCustomers, monthKey).Scan(&collected, &due)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("totales del mes %s: %w", monthKey, err)
	}
	return collected, due, nil
}
