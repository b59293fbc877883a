package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/isp-ledger/internal/domain/entity"
	"github.com/jhoicas/isp-ledger/internal/infrastructure/pdf"
)

func TestGenerateStatementPDF(t *testing.T) {
	c := &entity.Customer{
		ID: "0b6a4c1e-1111-2222-3333-444455556666", Name: "Abdul Karim", ConnectionName: "karim01",
		Mobile: "01711-223344", Address: "মিরপুর ১০", MonthlyBill: decimal.NewFromInt(500), ConnectionDate: "2025-01-01",
	}
	records := []*entity.MonthlyRecord{
		{MonthKey: "2025-02", ExpectedBill: decimal.NewFromInt(500), PaidAmount: decimal.NewFromInt(300), Due: decimal.NewFromInt(200),
			PaymentMethod: entity.PaymentCash, Remarks: "নগদ (Cash) আংশিক পেমেন্ট ৳300"},
		{MonthKey: "2025-01", ExpectedBill: decimal.NewFromInt(500), PaidAmount: decimal.NewFromInt(500), Due: decimal.Zero,
			PaymentMethod: entity.PaymentBkash, TrxID: "BK12345678", Remarks: "বিকাশ পেমেন্ট (TrxID: BK12345678)"},
	}

	b, err := pdf.NewMarotoStatementGenerator("Dhaka Net").
		GenerateStatementPDF(context.Background(), c, records, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
}

func TestGenerateStatementPDF_SinRegistros(t *testing.T) {
	b, err := pdf.NewMarotoStatementGenerator("").
		GenerateStatementPDF(context.Background(), &entity.Customer{ID: "x"}, nil, time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, b)
}
