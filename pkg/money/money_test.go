package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/isp-ledger/pkg/money"
)

func TestFormat_SeparadorDeMiles(t *testing.T) {
	assert.Equal(t, "৳500", money.Format(decimal.NewFromInt(500)))
	assert.Equal(t, "৳1,500", money.Format(decimal.NewFromInt(1500)))
	assert.Equal(t, "৳1,000,000", money.Format(decimal.NewFromInt(1_000_000)))
}

func TestFormat_RedondeaFraccion(t *testing.T) {
	assert.Equal(t, "৳3", money.Format(decimal.RequireFromString("2.6")))
	assert.Equal(t, "৳0", money.Format(decimal.Zero))
}

func TestFormatCode(t *testing.T) {
	assert.Equal(t, "BDT 2,400", money.FormatCode(decimal.NewFromInt(2400)))
}
