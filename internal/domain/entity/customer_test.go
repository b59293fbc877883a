package entity_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/isp-ledger/internal/domain/entity"
)

func ptr[T any](v T) *T { return &v }

func TestCustomerPatch_SoloCamposPresentes(t *testing.T) {
	c := &entity.Customer{ID: "c1", Name: "Rahim", Mobile: "01711", MonthlyBill: decimal.NewFromInt(500)}

	entity.CustomerPatch{Name: ptr("Karim")}.ApplyTo(c)

	assert.Equal(t, "c1", c.ID)
	assert.Equal(t, "Karim", c.Name)
	assert.Equal(t, "01711", c.Mobile, "los campos ausentes no se tocan")
	assert.True(t, c.MonthlyBill.Equal(decimal.NewFromInt(500)))
}

func TestRecordPatch_Idempotente(t *testing.T) {
	c := &entity.Customer{MonthlyBill: decimal.NewFromInt(500)}
	patch := entity.RecordPatch{PaidAmount: ptr(decimal.NewFromInt(300)), Remarks: ptr("x")}

	once := entity.DefaultRecord(c, "2025-01")
	patch.ApplyTo(&once)
	twice := once
	patch.ApplyTo(&twice)

	assert.Equal(t, once, twice)
}

func TestDefaultRecord(t *testing.T) {
	c := &entity.Customer{MonthlyBill: decimal.NewFromInt(700)}
	r := entity.DefaultRecord(c, "2025-04")

	assert.Equal(t, "2025-04", r.MonthKey)
	assert.True(t, r.ExpectedBill.Equal(decimal.NewFromInt(700)))
	assert.True(t, r.PaidAmount.IsZero())
	assert.True(t, r.Due.Equal(decimal.NewFromInt(700)))
	assert.Empty(t, r.PaymentDate)
	assert.Empty(t, r.Remarks)
}

func TestClone_NoCompartenRegistros(t *testing.T) {
	c := &entity.Customer{Records: map[string]*entity.MonthlyRecord{
		"2025-01": {MonthKey: "2025-01", PaidAmount: decimal.NewFromInt(1)},
	}}
	cp := c.Clone()
	cp.Records["2025-01"].PaidAmount = decimal.NewFromInt(99)

	assert.True(t, c.Records["2025-01"].PaidAmount.Equal(decimal.NewFromInt(1)))
}

func TestCustomer_JSONComoDocumentoOriginal(t *testing.T) {
	raw := `{"id":"a","name":"N","connectionName":"n@isp","address":"","mobile":"017",
		"monthlyBill":500,"connectionDate":"2025-01-01","createdAt":1700000000000,
		"records":{"2025-01":{"monthKey":"2025-01","expectedBill":500,"paidAmount":500,"due":0,
		"paymentDate":"2025-01-05","remarks":"ok","paymentMethod":"bKash","trxId":"BK1"}}}`

	var c entity.Customer
	require.NoError(t, json.Unmarshal([]byte(raw), &c))
	assert.Equal(t, entity.PaymentBkash, c.Records["2025-01"].PaymentMethod)

	out, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"monthlyBill":500`, "los montos se serializan como números")
}

func TestPaymentMethod_Valid(t *testing.T) {
	assert.True(t, entity.PaymentCash.Valid())
	assert.True(t, entity.PaymentFree.Valid())
	assert.False(t, entity.PaymentMethod("cheque").Valid())
}

func TestUser_HasHashedPassword(t *testing.T) {
	assert.True(t, entity.User{Password: "$2a$10$abc"}.HasHashedPassword())
	assert.False(t, entity.User{Password: "1234"}.HasHashedPassword())
}
