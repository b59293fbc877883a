package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/isp-ledger/internal/application/auth"
	"github.com/jhoicas/isp-ledger/internal/application/backup"
	"github.com/jhoicas/isp-ledger/internal/application/billing"
	"github.com/jhoicas/isp-ledger/internal/application/dto"
	domainbilling "github.com/jhoicas/isp-ledger/internal/domain/billing"
	"github.com/jhoicas/isp-ledger/internal/domain/entity"
	"github.com/jhoicas/isp-ledger/internal/domain/repository"
	"github.com/jhoicas/isp-ledger/internal/infrastructure/kvstore"
	"github.com/jhoicas/isp-ledger/internal/infrastructure/storage"
	apphttp "github.com/jhoicas/isp-ledger/internal/interfaces/http"
	"github.com/jhoicas/isp-ledger/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

var fixedNow = time.Date(2025, time.March, 20, 10, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

type fakePDF struct{}

func (fakePDF) GenerateStatementPDF(_ context.Context, c *entity.Customer, _ []*entity.MonthlyRecord, _ time.Time) ([]byte, error) {
	return []byte("%PDF-fake " + c.Name), nil
}

type fakeXLSX struct{}

func (fakeXLSX) ExportMonthXLSX(_ context.Context, month domainbilling.MonthKey, rows []domainbilling.Row, _ domainbilling.Stats) ([]byte, error) {
	return []byte(month.String()), nil
}

// newTestApp arma el router completo sobre un almacén en memoria.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	return newTestAppWith(t, kvstore.NewMemory(), logger.Nop())
}

func newTestAppWith(t *testing.T, kv repository.KeyValueStore, log *logger.Logger) *fiber.App {
	t.Helper()
	customers := storage.NewCustomerRepository(kv, log).WithClock(clock)
	users := storage.NewUserRepository(kv, log)
	sessions := storage.NewSessionRepository(kv)

	reports := billing.NewReportUseCase(customers).WithClock(clock)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(users, sessions, auth.JWTConfig{
			Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
		}, log).WithBcryptCost(bcrypt.MinCost),
		CustomerUC:  billing.NewCustomerUseCase(customers),
		PaymentUC:   billing.NewPaymentUseCase(customers, log).WithClock(clock),
		ReportUC:    reports,
		StatementUC: billing.NewStatementUseCase(customers, reports, fakePDF{}, fakeXLSX{}).WithClock(clock),
		SyncUC:      backup.NewSyncUseCase(kv, users, customers, log).WithClock(clock),
		JWTSecret:   testJWTSecret,
		ServiceName: "isp-ledger-test",
		Log:         log,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// login registra al operador, inicia sesión y devuelve el header Authorization.
func login(t *testing.T, app *fiber.App) string {
	t.Helper()
	return loginAs(t, app, testUsername)
}

func loginAs(t *testing.T, app *fiber.App, username string) string {
	t.Helper()
	creds := dto.CredentialsRequest{Username: username, Password: "clave-segura"}
	resp := call(t, app, http.MethodPost, "/api/auth/signup", "", creds)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodPost, "/api/auth/login", "", creds)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.LoginResponse](t, resp)
	require.NotEmpty(t, out.Token)
	return "Bearer " + out.Token
}

func createCustomer(t *testing.T, app *fiber.App, token, name string, bill int64, connDate string) dto.CustomerResponse {
	t.Helper()
	amount := decimal.NewFromInt(bill)
	resp := call(t, app, http.MethodPost, "/api/customers", token, dto.CustomerRequest{
		Name: &name, MonthlyBill: &amount, ConnectionDate: &connDate,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[dto.CustomerResponse](t, resp)
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	resp := call(t, newTestApp(t), http.MethodGet, "/health", "", nil)
	body := decode[map[string]string](t, resp)
	assert.Equal(t, "ok", body["status"])
}

func TestAuth_SignupDuplicadoRetorna409(t *testing.T) {
	app := newTestApp(t)
	login(t, app)

	resp := call(t, app, http.MethodPost, "/api/auth/signup", "", dto.CredentialsRequest{Username: testUsername, Password: "x"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAuth_LoginCredencialesInvalidas(t *testing.T) {
	app := newTestApp(t)
	login(t, app)

	resp := call(t, app, http.MethodPost, "/api/auth/login", "", dto.CredentialsRequest{Username: testUsername, Password: "mala"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuth_MeYLogout(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app)

	me := decode[dto.UserResponse](t, call(t, app, http.MethodGet, "/api/auth/me", token, nil))
	assert.Equal(t, testUsername, me.Username)

	resp := call(t, app, http.MethodPost, "/api/auth/logout", token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/auth/me", token, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "sin sesión abierta")
}

func TestAuth_TokenTrasLogoutRetorna401(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app)

	resp := call(t, app, http.MethodGet, "/api/customers", token, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/auth/logout", token, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	for _, path := range []string{"/api/customers", "/api/billing", "/api/sync/export"} {
		resp = call(t, app, http.MethodGet, path, token, nil)
		body := decode[dto.ErrorResponse](t, resp)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
		assert.Equal(t, "NO_SESSION", body.Code, path)
	}
}

func TestAuth_SoloElTitularDeLaSesionOpera(t *testing.T) {
	app := newTestApp(t)
	ana := loginAs(t, app, "ana")
	beto := loginAs(t, app, "beto")

	resp := call(t, app, http.MethodGet, "/api/customers", ana, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "la sesión ahora es de beto")

	resp = call(t, app, http.MethodGet, "/api/customers", beto, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	me := decode[dto.UserResponse](t, call(t, app, http.MethodGet, "/api/auth/me", beto, nil))
	assert.Equal(t, "beto", me.Username)

	resp = call(t, app, http.MethodGet, "/api/auth/me", ana, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRutasProtegidas_SinToken(t *testing.T) {
	app := newTestApp(t)
	for _, path := range []string{"/api/customers", "/api/billing", "/api/sync/export"} {
		resp := call(t, app, http.MethodGet, path, "", nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Clientes
// ──────────────────────────────────────────────────────────────────────────────

func TestCustomers_CRUD(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app)

	created := createCustomer(t, app, token, "Abdul Karim", 500, "2025-01-05")
	require.NotEmpty(t, created.ID)

	list := decode[[]dto.CustomerResponse](t, call(t, app, http.MethodGet, "/api/customers", token, nil))
	require.Len(t, list, 1)

	mobile := "01711-223344"
	updated := decode[dto.CustomerResponse](t, call(t, app, http.MethodPut, "/api/customers/"+created.ID, token,
		dto.CustomerRequest{Mobile: &mobile}))
	assert.Equal(t, mobile, updated.Mobile)
	assert.Equal(t, "Abdul Karim", updated.Name, "los campos ausentes no cambian")

	resp := call(t, app, http.MethodDelete, "/api/customers/"+created.ID, token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/customers/"+created.ID, token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCustomers_DesconocidoRetorna404(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app)
	name := "x"

	cases := []struct {
		method, path string
		body         any
	}{
		{http.MethodPut, "/api/customers/nope", dto.CustomerRequest{Name: &name}},
		{http.MethodDelete, "/api/customers/nope", nil},
		{http.MethodPost, "/api/customers/nope/payments", dto.PaymentRequest{Month: "2025-03", Method: "Cash"}},
		{http.MethodGet, "/api/customers/nope/statement", nil},
	}
	for _, tc := range cases {
		resp := call(t, app, tc.method, tc.path, token, tc.body)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, tc.method+" "+tc.path)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Cobros y listado mensual
// ──────────────────────────────────────────────────────────────────────────────

func TestPayments_ParcialLuegoListadoMensual(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app)
	c := createCustomer(t, app, token, "Rahim", 500, "2025-01-05")
	createCustomer(t, app, token, "Futuro", 700, "2025-04-01")

	amount := decimal.NewFromInt(300)
	rec := decode[dto.MonthlyRecordResponse](t, call(t, app, http.MethodPost, "/api/customers/"+c.ID+"/payments", token,
		dto.PaymentRequest{Month: "2025-03", Method: "cash", Amount: &amount}))
	assert.True(t, rec.PaidAmount.Equal(decimal.NewFromInt(300)))
	assert.True(t, rec.Due.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, "partial", rec.Status)

	view := decode[dto.MonthViewResponse](t, call(t, app, http.MethodGet, "/api/billing?year=2025&month=3", token, nil))
	assert.Equal(t, "2025-03", view.Month)
	require.Len(t, view.Rows, 1, "el cliente conectado en abril no aparece en marzo")
	assert.Equal(t, c.ID, view.Rows[0].CustomerID)
	assert.Equal(t, 1, view.Stats.PartialCount)
	assert.True(t, view.Stats.TotalCollected.Equal(decimal.NewFromInt(300)))
	assert.True(t, view.Stats.TotalDue.Equal(decimal.NewFromInt(200)))

	paid := decode[dto.MonthViewResponse](t, call(t, app, http.MethodGet, "/api/billing?year=2025&month=3&status=paid", token, nil))
	assert.Empty(t, paid.Rows)
}

func TestPayments_MetodoInvalidoRetorna400(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app)
	c := createCustomer(t, app, token, "Rahim", 500, "2025-01-05")

	resp := call(t, app, http.MethodPost, "/api/customers/"+c.ID+"/payments", token,
		dto.PaymentRequest{Month: "2025-03", Method: "cheque"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEditRecord_RecalculaDue(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app)
	c := createCustomer(t, app, token, "Rahim", 500, "2025-01-05")

	paid := decimal.NewFromInt(650)
	rec := decode[dto.MonthlyRecordResponse](t, call(t, app, http.MethodPut, "/api/customers/"+c.ID+"/records/2025-02", token,
		dto.RecordEditRequest{PaidAmount: &paid}))
	assert.True(t, rec.Due.IsZero())
	assert.Equal(t, "paid", rec.Status)

	resp := call(t, app, http.MethodPut, "/api/customers/"+c.ID+"/records/2025-13", token, dto.RecordEditRequest{PaidAmount: &paid})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStatementYExport(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app)
	c := createCustomer(t, app, token, "Rahim", 500, "2025-01-05")

	resp := call(t, app, http.MethodGet, "/api/customers/"+c.ID+"/statement", token, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Rahim")

	resp2 := call(t, app, http.MethodGet, "/api/billing/export?year=2025&month=3", token, nil)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusOK, resp2.StatusCode)
	assert.Contains(t, resp2.Header.Get("Content-Disposition"), "billing_2025-03.xlsx")
}

// ──────────────────────────────────────────────────────────────────────────────
// Sincronización
// ──────────────────────────────────────────────────────────────────────────────

func TestSync_ExportarEImportarEnOtraInstalacion(t *testing.T) {
	src := newTestApp(t)
	token := login(t, src)
	createCustomer(t, src, token, "Rahim", 500, "2025-01-05")

	code := decode[dto.SyncCodeResponse](t, call(t, src, http.MethodGet, "/api/sync/export", token, nil))
	require.NotEmpty(t, code.Code)

	dst := newTestApp(t)
	dstToken := login(t, dst)
	out := decode[dto.SyncImportResponse](t, call(t, dst, http.MethodPost, "/api/sync/import", dstToken, dto.SyncImportRequest{Code: code.Code}))
	assert.True(t, out.CustomersRestored)
	assert.Equal(t, 1, out.Customers)

	list := decode[[]dto.CustomerResponse](t, call(t, dst, http.MethodGet, "/api/customers", dstToken, nil))
	require.Len(t, list, 1)
	assert.Equal(t, "Rahim", list[0].Name)
}

func TestSync_CodigoInvalidoRetorna400(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app)

	resp := call(t, app, http.MethodPost, "/api/sync/import", token, dto.SyncImportRequest{Code: "no es base64!!"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_CODE")
}

// ──────────────────────────────────────────────────────────────────────────────
// Errores internos
// ──────────────────────────────────────────────────────────────────────────────

// brokenKV deja de escribir la cartera cuando broken es true.
type brokenKV struct {
	*kvstore.Memory
	broken bool
}

func (k *brokenKV) Set(ctx context.Context, key string, value []byte) error {
	if k.broken && key == repository.KeyCustomers {
		return errors.New("disco lleno en /var/lib/isp")
	}
	return k.Memory.Set(ctx, key, value)
}

func TestErrorInterno_NoExponeDetalleYSeRegistra(t *testing.T) {
	var buf bytes.Buffer
	kv := &brokenKV{Memory: kvstore.NewMemory()}
	app := newTestAppWith(t, kv, logger.NewWithWriter(&buf, logger.Config{Level: "info"}))
	token := login(t, app)

	kv.broken = true
	name, bill, date := "Rahim", decimal.NewFromInt(500), "2025-01-01"
	resp := call(t, app, http.MethodPost, "/api/customers", token, dto.CustomerRequest{
		Name: &name, MonthlyBill: &bill, ConnectionDate: &date,
	})
	body := decode[dto.ErrorResponse](t, resp)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "INTERNAL", body.Code)
	assert.NotContains(t, body.Message, "disco lleno")
	assert.Contains(t, buf.String(), "disco lleno en /var/lib/isp")
}
