package repository

import (
	"context"

	"github.com/jhoicas/isp-ledger/internal/domain/entity"
)

// RecordMutator calcula el patch de un mes a partir del registro actual
// (o del registro por defecto si el mes aún no existe).
type RecordMutator func(current entity.MonthlyRecord) (entity.RecordPatch, error)

// CustomerRepository define el puerto de persistencia de la cartera de clientes (DIP).
// Los IDs desconocidos nunca producen error: GetByID devuelve nil, nil y las
// escrituras sobre un cliente inexistente son no-op.
type CustomerRepository interface {
	List(ctx context.Context) ([]*entity.Customer, error)
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	Create(ctx context.Context, patch entity.CustomerPatch) (*entity.Customer, error)
	Update(ctx context.Context, id string, patch entity.CustomerPatch) error
	Delete(ctx context.Context, id string) error
	UpsertMonthlyRecord(ctx context.Context, customerID, monthKey string, patch entity.RecordPatch) error
	// MutateMonthlyRecord es UpsertMonthlyRecord con el patch calculado bajo el lock de escritura.
	MutateMonthlyRecord(ctx context.Context, customerID, monthKey string, fn RecordMutator) (*entity.MonthlyRecord, error)
	// ReplaceAll sustituye la colección completa (importación).
	ReplaceAll(ctx context.Context, customers []*entity.Customer) error
}
