package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/negocio-api/internal/application/dto"
)

func TestFormatMoney(t *testing.T) {
	tests := map[string]string{
		"0":        "0,00",
		"999.5":    "999,50",
		"25000":    "25.000,00",
		"1000000":  "1.000.000,00",
		"-1234.56": "-1.234,56",
	}
	for in, want := range tests {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestMonthlyReportPDF_GeneraDocumento(t *testing.T) {
	g := NewReportGenerator("Mi Negocio")
	data, err := g.MonthlyReportPDF(context.Background(), &dto.MonthlyReportDTO{
		Period:      "Octubre 2026",
		Start:       "2026-10-01",
		End:         "2026-10-31",
		SalesCount:  2,
		SalesTotal:  decimal.NewFromInt(150),
		Payments:    []dto.PaymentTotalDTO{{Type: "expense", Count: 1, Total: decimal.NewFromInt(30)}},
		LowStock:    []dto.LowStockItem{{SupplyName: "Harina", OnHand: 1, MinStock: 5}},
		TopSupplies: []dto.TopSupplyDTO{{Name: "Café", SalesCount: 2, Units: 3}},
		GeneratedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestSalesReportPDF_SinVentas(t *testing.T) {
	g := NewReportGenerator("")
	data, err := g.SalesReportPDF(context.Background(), &dto.SalesReportDTO{Start: "2026-10-01", End: "2026-10-07"})
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
