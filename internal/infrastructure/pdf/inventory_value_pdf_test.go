package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":         "0,00",
		"25000":     "25.000,00",
		"1234567.5": "1.234.567,50",
		"999.999":   "1.000,00",
		"-1500":     "-1.500,00",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestShare(t *testing.T) {
	assert.Equal(t, "25.0%", share(decimal.NewFromInt(25), decimal.NewFromInt(100)))
	assert.Equal(t, "—", share(decimal.NewFromInt(25), decimal.Zero))
}

func TestInventoryValuePDF(t *testing.T) {
	report := &dto.InventoryValueResponse{
		Total: decimal.NewFromInt(300),
		ByCategory: []dto.CategoryValueDTO{
			{CategoryID: 1, CategoryName: "Ferretería", Value: decimal.NewFromInt(300)},
		},
		ByLocation: []dto.LocationValueDTO{},
	}
	data, err := NewMarotoRenderer("Stock Ledger").InventoryValue(report, time.Now())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestInventoryValuePDFNilReport(t *testing.T) {
	_, err := NewMarotoRenderer("x").InventoryValue(nil, time.Now())
	assert.Error(t, err)
}
