package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/negocio-api/internal/application/analytics"
	"github.com/jhoicas/negocio-api/internal/application/dto"
	"github.com/jhoicas/negocio-api/internal/application/register"
	"github.com/jhoicas/negocio-api/internal/application/usecase"
	"github.com/jhoicas/negocio-api/internal/domain/entity"
	"github.com/jhoicas/negocio-api/internal/infrastructure/memory"
)

type world struct {
	store     *memory.Store
	dashboard *analytics.DashboardUseCase
	sales     *register.SaleUseCase
	payments  *usecase.PaymentUseCase
	sessionID string
}

func newWorld(t *testing.T) *world {
	t.Helper()
	store := memory.NewStore()
	tx := memory.NewTxRunner(store)
	registerID := store.SeedDefaults()
	sessions := register.NewSessionUseCase(tx, store.Registers(), store.Sessions(), store.CashMovements())
	s, err := sessions.OpenSession(context.Background(), "u1", dto.OpenSessionRequest{RegisterID: registerID})
	require.NoError(t, err)
	return &world{
		store:     store,
		dashboard: analytics.NewDashboardUseCase(store.Sales(), store.Stock(), store.Payments()),
		sales:     register.NewSaleUseCase(tx, store.Supplies(), store.Sales(), store.Registers(), store.Sessions()),
		payments:  usecase.NewPaymentUseCase(store.Payments(), store.Suppliers()),
		sessionID: s.ID,
	}
}

func (w *world) supply(t *testing.T, name string, onHand, minStock int64) string {
	t.Helper()
	ctx := context.Background()
	s := &entity.Supply{
		ID:          uuid.New().String(),
		Name:        name,
		MinStock:    minStock,
		UnitMeasure: entity.DefaultUnitMeasure,
		Lifecycle:   entity.LifecycleActive,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	require.NoError(t, w.store.Supplies().Create(ctx, s))
	require.NoError(t, w.store.Stock().Upsert(ctx, &entity.StockRecord{SupplyID: s.ID, OnHand: onHand, UpdatedAt: time.Now()}))
	return s.ID
}

func (w *world) sell(t *testing.T, tender string, lines ...dto.SaleLineRequest) {
	t.Helper()
	_, err := w.sales.CreateSale(context.Background(), "u1", dto.CreateSaleRequest{SessionID: w.sessionID, Tender: tender, Lines: lines})
	require.NoError(t, err)
}

func line(supplyID string, qty, price int64) dto.SaleLineRequest {
	return dto.SaleLineRequest{SupplyID: supplyID, Quantity: qty, UnitPrice: decimal.NewFromInt(price)}
}

func TestDashboard_Resumen(t *testing.T) {
	w := newWorld(t)
	cafe := w.supply(t, "Café", 100, 5)
	pan := w.supply(t, "Pan", 100, 5)
	w.supply(t, "Sal", 2, 5)

	w.sell(t, entity.TenderCash, line(cafe, 1, 10), line(pan, 2, 5))
	w.sell(t, entity.TenderCard, line(cafe, 3, 10))

	summary, err := w.dashboard.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TodayCount)
	assert.True(t, summary.TodaySales.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, 2, summary.MonthlyCount)
	assert.Equal(t, 1, summary.LowStockCount)
	require.Len(t, summary.TopSupplies, 2)
	assert.Equal(t, "Café", summary.TopSupplies[0].Name)
	assert.Equal(t, 2, summary.TopSupplies[0].SalesCount)
	assert.Equal(t, int64(4), summary.TopSupplies[0].Units)
	assert.NotEmpty(t, summary.DateLabel)
}

func TestVentasPorMedioDePago(t *testing.T) {
	w := newWorld(t)
	cafe := w.supply(t, "Café", 100, 0)
	w.sell(t, entity.TenderCash, line(cafe, 1, 10))
	w.sell(t, entity.TenderCash, line(cafe, 1, 15))
	w.sell(t, entity.TenderTransfer, line(cafe, 1, 40))

	rows, err := w.dashboard.SalesByTender(context.Background(), "", "")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, entity.TenderTransfer, rows[0].Tender)
	assert.Equal(t, 2, rows[1].Count)
	assert.True(t, rows[1].Total.Equal(decimal.NewFromInt(25)))

	days, err := w.dashboard.SalesSummary(context.Background(), "", "")
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, 3, days[0].Count)
}

func TestReporteMensual(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	cafe := w.supply(t, "Café", 100, 0)
	w.supply(t, "Sal", 0, 3)
	w.sell(t, entity.TenderCash, line(cafe, 2, 10))

	paid := time.Now()
	_, err := w.payments.Create(ctx, "u1", dto.PaymentRequest{Type: entity.PaymentTypeExpense, Concept: "Luz", Amount: decimal.NewFromInt(30), PaidAt: &paid})
	require.NoError(t, err)

	report, err := w.dashboard.MonthlyReport(ctx, paid.Format("2006-01"))
	require.NoError(t, err)
	assert.Equal(t, 1, report.SalesCount)
	assert.True(t, report.SalesTotal.Equal(decimal.NewFromInt(20)))
	require.Len(t, report.Payments, 1)
	assert.Equal(t, entity.PaymentTypeExpense, report.Payments[0].Type)
	require.Len(t, report.LowStock, 1)
	assert.Equal(t, "Sal", report.LowStock[0].SupplyName)
	require.Len(t, report.TopSupplies, 1)

	_, err = w.dashboard.MonthlyReport(ctx, "2026-13")
	assert.Error(t, err)
}
