// Package storage implementa los repositorios de dominio sobre un repository.KeyValueStore.
// Cada colección es un único documento JSON: toda operación lee la colección completa,
// la modifica en memoria y la vuelve a escribir antes de retornar.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/isp-ledger/internal/domain/entity"
	"github.com/jhoicas/isp-ledger/internal/domain/repository"
	"github.com/jhoicas/isp-ledger/pkg/logger"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository sobre la clave isp_billing_data_v2.
type CustomerRepo struct {
	kv  repository.KeyValueStore
	log *logger.Logger

	// mu serializa los read-modify-write del proceso.
	mu  sync.Mutex
	now func() time.Time
}

// NewCustomerRepository construye el repositorio.
func NewCustomerRepository(kv repository.KeyValueStore, log *logger.Logger) *CustomerRepo {
	return &CustomerRepo{kv: kv, log: log, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (r *CustomerRepo) WithClock(now func() time.Time) *CustomerRepo {
	r.now = now
	return r
}

// load lee la colección. Datos ausentes o corruptos se tratan como colección vacía.
func (r *CustomerRepo) load(ctx context.Context) ([]*entity.Customer, error) {
	raw, ok, err := r.kv.Get(ctx, repository.KeyCustomers)
	if err != nil {
		return nil, fmt.Errorf("leer clientes: %w", err)
	}
	if !ok {
		return []*entity.Customer{}, nil
	}
	var list []*entity.Customer
	if err := json.Unmarshal(raw, &list); err != nil {
		r.log.Warn().Err(err).Str("key", repository.KeyCustomers).Msg("datos de clientes corruptos, se usa colección vacía")
		return []*entity.Customer{}, nil
	}
	out := list[:0]
	for _, c := range list {
		if c == nil {
			continue
		}
		if c.Records == nil {
			c.Records = map[string]*entity.MonthlyRecord{}
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *CustomerRepo) save(ctx context.Context, list []*entity.Customer) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("serializar clientes: %w", err)
	}
	if err := r.kv.Set(ctx, repository.KeyCustomers, raw); err != nil {
		return fmt.Errorf("guardar clientes: %w", err)
	}
	return nil
}

func indexOf(list []*entity.Customer, id string) int {
	for i, c := range list {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// List devuelve todos los clientes, sin orden garantizado.
func (r *CustomerRepo) List(ctx context.Context) ([]*entity.Customer, error) {
	return r.load(ctx)
}

// GetByID obtiene un cliente por ID; nil, nil si no existe.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	list, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexOf(list, id); i >= 0 {
		return list[i], nil
	}
	return nil, nil
}

// Create agrega un cliente con ID y CreatedAt nuevos. Campos ausentes quedan vacíos,
// la cuota en 0 y la fecha de conexión en hoy.
func (r *CustomerRepo) Create(ctx context.Context, patch entity.CustomerPatch) (*entity.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	now := r.now()
	c := &entity.Customer{
		ID:             uuid.NewString(),
		MonthlyBill:    decimal.Zero,
		ConnectionDate: now.Format("2006-01-02"),
		CreatedAt:      now.UnixMilli(),
		Records:        map[string]*entity.MonthlyRecord{},
	}
	patch.ApplyTo(c)
	if c.ConnectionDate == "" {
		c.ConnectionDate = now.Format("2006-01-02")
	}

	list = append(list, c)
	if err := r.save(ctx, list); err != nil {
		return nil, err
	}
	return c.Clone(), nil
}

// Update fusiona el patch sobre el cliente. No-op si no existe.
func (r *CustomerRepo) Update(ctx context.Context, id string, patch entity.CustomerPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return err
	}
	i := indexOf(list, id)
	if i < 0 {
		return nil
	}
	patch.ApplyTo(list[i])
	return r.save(ctx, list)
}

// Delete elimina el cliente y todos sus registros. No-op si no existe.
func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return err
	}
	i := indexOf(list, id)
	if i < 0 {
		return nil
	}
	list = append(list[:i], list[i+1:]...)
	return r.save(ctx, list)
}

// UpsertMonthlyRecord fusiona el patch sobre el registro del mes, creándolo con los
// valores por defecto si no existe. No-op si el cliente no existe.
func (r *CustomerRepo) UpsertMonthlyRecord(ctx context.Context, customerID, monthKey string, patch entity.RecordPatch) error {
	_, err := r.MutateMonthlyRecord(ctx, customerID, monthKey, func(entity.MonthlyRecord) (entity.RecordPatch, error) {
		return patch, nil
	})
	return err
}

// MutateMonthlyRecord igual que UpsertMonthlyRecord, pero el patch lo calcula fn a partir
// del registro actual mientras se mantiene el lock. Devuelve el registro resultante
// (nil, nil si el cliente no existe). Si fn falla no se escribe nada.
func (r *CustomerRepo) MutateMonthlyRecord(ctx context.Context, customerID, monthKey string, fn repository.RecordMutator) (*entity.MonthlyRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(list, customerID)
	if i < 0 {
		return nil, nil
	}
	c := list[i]

	rec := entity.DefaultRecord(c, monthKey)
	if existing := c.Record(monthKey); existing != nil {
		rec = *existing
	}
	patch, err := fn(rec)
	if err != nil {
		return nil, err
	}
	patch.ApplyTo(&rec)
	c.Records[monthKey] = &rec

	if err := r.save(ctx, list); err != nil {
		return nil, err
	}
	out := rec
	return &out, nil
}

// ReplaceAll sustituye la colección completa.
func (r *CustomerRepo) ReplaceAll(ctx context.Context, customers []*entity.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if customers == nil {
		customers = []*entity.Customer{}
	}
	return r.save(ctx, customers)
}
