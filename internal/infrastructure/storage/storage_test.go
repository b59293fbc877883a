package storage_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/isp-ledger/internal/domain"
	"github.com/jhoicas/isp-ledger/internal/domain/entity"
	"github.com/jhoicas/isp-ledger/internal/domain/repository"
	"github.com/jhoicas/isp-ledger/internal/infrastructure/kvstore"
	"github.com/jhoicas/isp-ledger/internal/infrastructure/storage"
	"github.com/jhoicas/isp-ledger/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

var fixedNow = time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func newCustomerRepo(t *testing.T) (*storage.CustomerRepo, *kvstore.Memory) {
	t.Helper()
	kv := kvstore.NewMemory()
	repo := storage.NewCustomerRepository(kv, logger.Nop()).WithClock(func() time.Time { return fixedNow })
	return repo, kv
}

type failingKV struct{ err error }

func (f failingKV) Get(context.Context, string) ([]byte, bool, error) { return nil, false, f.err }
func (f failingKV) Set(context.Context, string, []byte) error          { return f.err }
func (f failingKV) Delete(context.Context, string) error               { return f.err }

// ──────────────────────────────────────────────────────────────────────────────
// CustomerRepo
// ──────────────────────────────────────────────────────────────────────────────

func TestCustomerRepo_CreateRellenaDefaults(t *testing.T) {
	repo, _ := newCustomerRepo(t)
	ctx := context.Background()

	c, err := repo.Create(ctx, entity.CustomerPatch{Name: ptr("Rahim")})
	require.NoError(t, err)

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "Rahim", c.Name)
	assert.Equal(t, "", c.Mobile)
	assert.True(t, c.MonthlyBill.IsZero())
	assert.Equal(t, "2025-03-15", c.ConnectionDate, "sin fecha de conexión se usa hoy")
	assert.Equal(t, fixedNow.UnixMilli(), c.CreatedAt)
	assert.Empty(t, c.Records)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, c.ID, list[0].ID)
}

func TestCustomerRepo_IDsUnicos(t *testing.T) {
	repo, _ := newCustomerRepo(t)
	ctx := context.Background()

	a, err := repo.Create(ctx, entity.CustomerPatch{})
	require.NoError(t, err)
	b, err := repo.Create(ctx, entity.CustomerPatch{})
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestCustomerRepo_UpdateFusionaSoloLoEnviado(t *testing.T) {
	repo, _ := newCustomerRepo(t)
	ctx := context.Background()
	c, err := repo.Create(ctx, entity.CustomerPatch{Name: ptr("Rahim"), Mobile: ptr("01711"), MonthlyBill: ptr(decimal.NewFromInt(500))})
	require.NoError(t, err)

	require.NoError(t, repo.Update(ctx, c.ID, entity.CustomerPatch{MonthlyBill: ptr(decimal.NewFromInt(600))}))

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Rahim", got.Name)
	assert.Equal(t, "01711", got.Mobile)
	assert.True(t, got.MonthlyBill.Equal(decimal.NewFromInt(600)))
	assert.Equal(t, c.CreatedAt, got.CreatedAt)
}

func TestCustomerRepo_IDDesconocidoEsNoOp(t *testing.T) {
	repo, kv := newCustomerRepo(t)
	ctx := context.Background()
	_, err := repo.Create(ctx, entity.CustomerPatch{Name: ptr("A")})
	require.NoError(t, err)
	before, _, _ := kv.Get(ctx, repository.KeyCustomers)

	assert.NoError(t, repo.Update(ctx, "nope", entity.CustomerPatch{Name: ptr("B")}))
	assert.NoError(t, repo.Delete(ctx, "nope"))
	assert.NoError(t, repo.UpsertMonthlyRecord(ctx, "nope", "2025-03", entity.RecordPatch{}))

	got, err := repo.GetByID(ctx, "nope")
	assert.NoError(t, err)
	assert.Nil(t, got)

	after, _, _ := kv.Get(ctx, repository.KeyCustomers)
	assert.Equal(t, before, after, "nada se reescribió")
}

func TestCustomerRepo_DeleteBorraRegistros(t *testing.T) {
	repo, _ := newCustomerRepo(t)
	ctx := context.Background()
	c, err := repo.Create(ctx, entity.CustomerPatch{MonthlyBill: ptr(decimal.NewFromInt(500))})
	require.NoError(t, err)
	require.NoError(t, repo.UpsertMonthlyRecord(ctx, c.ID, "2025-03", entity.RecordPatch{Remarks: ptr("x")}))

	require.NoError(t, repo.Delete(ctx, c.ID))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCustomerRepo_UpsertCreaRegistroPorDefecto(t *testing.T) {
	repo, _ := newCustomerRepo(t)
	ctx := context.Background()
	c, err := repo.Create(ctx, entity.CustomerPatch{MonthlyBill: ptr(decimal.NewFromInt(500))})
	require.NoError(t, err)

	require.NoError(t, repo.UpsertMonthlyRecord(ctx, c.ID, "2025-03", entity.RecordPatch{Remarks: ptr("llamar")}))

	got, _ := repo.GetByID(ctx, c.ID)
	rec := got.Record("2025-03")
	require.NotNil(t, rec)
	assert.Equal(t, "2025-03", rec.MonthKey)
	assert.True(t, rec.ExpectedBill.Equal(decimal.NewFromInt(500)))
	assert.True(t, rec.PaidAmount.IsZero())
	assert.True(t, rec.Due.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, "llamar", rec.Remarks)
}

func TestCustomerRepo_UpsertMismoPatchEsIdempotente(t *testing.T) {
	repo, kv := newCustomerRepo(t)
	ctx := context.Background()
	c, err := repo.Create(ctx, entity.CustomerPatch{MonthlyBill: ptr(decimal.NewFromInt(500))})
	require.NoError(t, err)

	patch := entity.RecordPatch{
		PaidAmount:    ptr(decimal.NewFromInt(300)),
		Due:           ptr(decimal.NewFromInt(200)),
		PaymentDate:   ptr("2025-03-05"),
		Remarks:       ptr("parcial"),
		PaymentMethod: ptr(entity.PaymentBkash),
		TrxID:         ptr("TRX123"),
	}
	require.NoError(t, repo.UpsertMonthlyRecord(ctx, c.ID, "2025-03", patch))
	first, _ := repo.GetByID(ctx, c.ID)
	stored, _, err := kv.Get(ctx, repository.KeyCustomers)
	require.NoError(t, err)

	require.NoError(t, repo.UpsertMonthlyRecord(ctx, c.ID, "2025-03", patch))
	second, _ := repo.GetByID(ctx, c.ID)
	again, _, err := kv.Get(ctx, repository.KeyCustomers)
	require.NoError(t, err)

	assert.Equal(t, first.Record("2025-03"), second.Record("2025-03"))
	assert.JSONEq(t, string(stored), string(again), "el documento guardado no cambia")
	assert.True(t, second.Record("2025-03").ExpectedBill.Equal(decimal.NewFromInt(500)))
}

func TestCustomerRepo_ExpectedBillQuedaCongelado(t *testing.T) {
	repo, _ := newCustomerRepo(t)
	ctx := context.Background()
	c, err := repo.Create(ctx, entity.CustomerPatch{MonthlyBill: ptr(decimal.NewFromInt(500))})
	require.NoError(t, err)
	require.NoError(t, repo.UpsertMonthlyRecord(ctx, c.ID, "2025-03", entity.RecordPatch{}))

	require.NoError(t, repo.Update(ctx, c.ID, entity.CustomerPatch{MonthlyBill: ptr(decimal.NewFromInt(800))}))

	got, _ := repo.GetByID(ctx, c.ID)
	assert.True(t, got.Record("2025-03").ExpectedBill.Equal(decimal.NewFromInt(500)), "mes existente no cambia")
}

func TestCustomerRepo_MutateErrorNoEscribe(t *testing.T) {
	repo, _ := newCustomerRepo(t)
	ctx := context.Background()
	c, err := repo.Create(ctx, entity.CustomerPatch{MonthlyBill: ptr(decimal.NewFromInt(500))})
	require.NoError(t, err)

	boom := errors.New("boom")
	rec, err := repo.MutateMonthlyRecord(ctx, c.ID, "2025-03", func(entity.MonthlyRecord) (entity.RecordPatch, error) {
		return entity.RecordPatch{}, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, rec)

	got, _ := repo.GetByID(ctx, c.ID)
	assert.Nil(t, got.Record("2025-03"))
}

func TestCustomerRepo_MutateConcurrenteNoPierdePagos(t *testing.T) {
	repo, _ := newCustomerRepo(t)
	ctx := context.Background()
	c, err := repo.Create(ctx, entity.CustomerPatch{MonthlyBill: ptr(decimal.NewFromInt(1000))})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.MutateMonthlyRecord(ctx, c.ID, "2025-03", func(cur entity.MonthlyRecord) (entity.RecordPatch, error) {
				paid := cur.PaidAmount.Add(decimal.NewFromInt(10))
				return entity.RecordPatch{PaidAmount: &paid}, nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, _ := repo.GetByID(ctx, c.ID)
	assert.True(t, got.Record("2025-03").PaidAmount.Equal(decimal.NewFromInt(200)))
}

func TestCustomerRepo_DatosCorruptosSeLeenVacios(t *testing.T) {
	repo, kv := newCustomerRepo(t)
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, repository.KeyCustomers, []byte(`{no es json`)))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCustomerRepo_LeeDocumentoOriginal(t *testing.T) {
	repo, kv := newCustomerRepo(t)
	ctx := context.Background()
	doc := `[{"id":"c1","name":"Karim","connectionName":"karim01","address":"Mirpur","mobile":"017",
		"monthlyBill":500,"connectionDate":"2024-01-05",
		"records":{"2024-02":{"monthKey":"2024-02","expectedBill":500,"paidAmount":500,"due":0,
		"paymentDate":"2024-02-03","remarks":"বিল পরিশোধ করা হয়েছে"}}}]`
	require.NoError(t, kv.Set(ctx, repository.KeyCustomers, []byte(doc)))

	c, err := repo.GetByID(ctx, "c1")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, int64(0), c.CreatedAt)
	assert.True(t, c.Record("2024-02").PaidAmount.Equal(decimal.NewFromInt(500)))
}

func TestCustomerRepo_ErrorDeBackendSePropaga(t *testing.T) {
	boom := errors.New("disco lleno")
	repo := storage.NewCustomerRepository(failingKV{err: boom}, logger.Nop())

	_, err := repo.List(context.Background())
	assert.ErrorIs(t, err, boom)
	_, err = repo.Create(context.Background(), entity.CustomerPatch{})
	assert.ErrorIs(t, err, boom)
}

func TestCustomerRepo_ReplaceAll(t *testing.T) {
	repo, _ := newCustomerRepo(t)
	ctx := context.Background()
	_, err := repo.Create(ctx, entity.CustomerPatch{Name: ptr("viejo")})
	require.NoError(t, err)

	require.NoError(t, repo.ReplaceAll(ctx, []*entity.Customer{{ID: "x", Name: "nuevo"}}))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "nuevo", list[0].Name)
	assert.NotNil(t, list[0].Records)
}

// ──────────────────────────────────────────────────────────────────────────────
// UserRepo / SessionRepo
// ──────────────────────────────────────────────────────────────────────────────

func TestUserRepo_CreateDuplicado(t *testing.T) {
	repo := storage.NewUserRepository(kvstore.NewMemory(), logger.Nop())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, entity.User{Username: "admin", Password: "x"}))
	assert.ErrorIs(t, repo.Create(ctx, entity.User{Username: "admin", Password: "y"}), domain.ErrDuplicate)

	u, err := repo.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "x", u.Password)

	none, err := repo.GetByUsername(ctx, "otro")
	assert.NoError(t, err)
	assert.Nil(t, none)
}

func TestUserRepo_Update(t *testing.T) {
	repo := storage.NewUserRepository(kvstore.NewMemory(), logger.Nop())
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, entity.User{Username: "admin", Password: "plano"}))

	require.NoError(t, repo.Update(ctx, entity.User{Username: "admin", Password: "$2a$hash"}))

	u, _ := repo.GetByUsername(ctx, "admin")
	assert.Equal(t, "$2a$hash", u.Password)
}

func TestSessionRepo(t *testing.T) {
	kv := kvstore.NewMemory()
	repo := storage.NewSessionRepository(kv)
	ctx := context.Background()

	s, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, s)

	require.NoError(t, repo.Set(ctx, entity.Session{Username: "admin"}))
	raw, _, _ := kv.Get(ctx, repository.KeySession)
	assert.JSONEq(t, `{"username":"admin"}`, string(raw))

	s, err = repo.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "admin", s.Username)

	require.NoError(t, repo.Clear(ctx))
	s, _ = repo.Get(ctx)
	assert.Nil(t, s)
}
