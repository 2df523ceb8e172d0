package register_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/negocio-api/internal/application/dto"
	"github.com/jhoicas/negocio-api/internal/application/register"
	"github.com/jhoicas/negocio-api/internal/domain"
	"github.com/jhoicas/negocio-api/internal/domain/entity"
	"github.com/jhoicas/negocio-api/internal/domain/repository"
	"github.com/jhoicas/negocio-api/internal/infrastructure/memory"
)

type fixture struct {
	store      *memory.Store
	sessions   *register.SessionUseCase
	sales      *register.SaleUseCase
	registerID string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	tx := memory.NewTxRunner(store)
	return &fixture{
		store:      store,
		sessions:   register.NewSessionUseCase(tx, store.Registers(), store.Sessions(), store.CashMovements()),
		sales:      register.NewSaleUseCase(tx, store.Supplies(), store.Sales(), store.Registers(), store.Sessions()),
		registerID: store.SeedDefaults(),
	}
}

func (f *fixture) supply(t *testing.T, name string, onHand int64) *entity.Supply {
	t.Helper()
	ctx := context.Background()
	s := &entity.Supply{
		ID:            uuid.New().String(),
		Name:          name,
		PurchasePrice: decimal.NewFromInt(1),
		SalePrice:     decimal.NewFromInt(10),
		UnitMeasure:   entity.DefaultUnitMeasure,
		Lifecycle:     entity.LifecycleActive,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	require.NoError(t, f.store.Supplies().Create(ctx, s))
	require.NoError(t, f.store.Stock().Upsert(ctx, &entity.StockRecord{SupplyID: s.ID, OnHand: onHand, UpdatedAt: time.Now()}))
	return s
}

func (f *fixture) open(t *testing.T) *dto.SessionResponse {
	t.Helper()
	s, err := f.sessions.OpenSession(context.Background(), "u1", dto.OpenSessionRequest{
		RegisterID:    f.registerID,
		OpeningAmount: decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	return s
}

func (f *fixture) onHand(t *testing.T, supplyID string) int64 {
	t.Helper()
	rec, err := f.store.Stock().Get(context.Background(), supplyID)
	require.NoError(t, err)
	return rec.OnHand
}

func (f *fixture) stockMovements(t *testing.T, supplyID string) []*entity.StockMovement {
	t.Helper()
	list, err := f.store.StockMovements().List(context.Background(), repository.StockMovementFilter{SupplyID: supplyID})
	require.NoError(t, err)
	return list
}

func TestAbrirSesion_DobleAperturaEsConflicto(t *testing.T) {
	f := newFixture(t)
	f.open(t)

	_, err := f.sessions.OpenSession(context.Background(), "u2", dto.OpenSessionRequest{RegisterID: f.registerID})
	assert.ErrorIs(t, err, domain.ErrSessionAlreadyOpen)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAbrirSesion_Concurrente(t *testing.T) {
	f := newFixture(t)
	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.sessions.OpenSession(context.Background(), "u1", dto.OpenSessionRequest{RegisterID: f.registerID})
			if err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, domain.ErrSessionAlreadyOpen)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, ok)
}

func TestAbrirSesion_CajaInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.sessions.OpenSession(context.Background(), "u1", dto.OpenSessionRequest{RegisterID: uuid.New().String()})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.sessions.OpenSession(context.Background(), "u1", dto.OpenSessionRequest{RegisterID: f.registerID, OpeningAmount: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestCrearVenta_Totales(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cafe := f.supply(t, "Café", 10)
	pan := f.supply(t, "Pan", 5)
	session := f.open(t)

	sale, err := f.sales.CreateSale(ctx, "u1", dto.CreateSaleRequest{
		SessionID: session.ID,
		Tender:    entity.TenderCash,
		Discount:  decimal.NewFromInt(3),
		Tax:       decimal.NewFromInt(1),
		Lines: []dto.SaleLineRequest{
			{SupplyID: cafe.ID, Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")},
			{SupplyID: pan.ID, Quantity: 1, UnitPrice: decimal.RequireFromString("7.50"), Discount: decimal.RequireFromString("0.50")},
		},
	})
	require.NoError(t, err)
	assert.True(t, sale.Subtotal.Equal(decimal.NewFromInt(27)))
	assert.True(t, sale.Total.Equal(decimal.RequireFromString("25.00")))
	assert.Equal(t, entity.SaleStateCompleted, sale.State)
	assert.Regexp(t, `^V\d+$`, sale.Number)
	require.Len(t, sale.Lines, 2)

	assert.Equal(t, int64(8), f.onHand(t, cafe.ID))
	assert.Equal(t, int64(4), f.onHand(t, pan.ID))

	movs := f.stockMovements(t, cafe.ID)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.StockMovementOut, movs[0].Kind)
	assert.Equal(t, "Venta "+sale.Number, movs[0].Reason)
	assert.Equal(t, sale.ID, movs[0].Reference)

	cash, err := f.sessions.ListMovements(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, cash, 1)
	assert.Equal(t, entity.RegisterMovementSale, cash[0].Kind)
	assert.True(t, cash[0].Amount.Equal(sale.Total))
	require.NotNil(t, cash[0].SaleID)
	assert.Equal(t, sale.ID, *cash[0].SaleID)

	got, err := f.sales.GetSale(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, "Café", got.Lines[0].SupplyName)
}

func TestCrearVenta_StockInsuficiente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cafe := f.supply(t, "Café", 3)
	pan := f.supply(t, "Pan", 1)
	leche := f.supply(t, "Leche", 10)
	session := f.open(t)

	_, err := f.sales.CreateSale(ctx, "u1", dto.CreateSaleRequest{
		SessionID: session.ID,
		Tender:    entity.TenderCard,
		Lines: []dto.SaleLineRequest{
			{SupplyID: cafe.ID, Quantity: 2, UnitPrice: decimal.NewFromInt(5)},
			{SupplyID: cafe.ID, Quantity: 2, UnitPrice: decimal.NewFromInt(5)},
			{SupplyID: pan.ID, Quantity: 2, UnitPrice: decimal.NewFromInt(5)},
			{SupplyID: leche.ID, Quantity: 1, UnitPrice: decimal.NewFromInt(5)},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	require.Len(t, stockErr.Lines, 2)
	byID := map[string]domain.StockShortage{}
	for _, l := range stockErr.Lines {
		byID[l.SupplyID] = l
	}
	assert.Equal(t, int64(4), byID[cafe.ID].Requested)
	assert.Equal(t, int64(3), byID[cafe.ID].Available)
	assert.Equal(t, "Pan", byID[pan.ID].SupplyName)

	sales, err := f.sales.ListSales(ctx, session.ID)
	require.NoError(t, err)
	assert.Empty(t, sales)
	cash, err := f.sessions.ListMovements(ctx, session.ID)
	require.NoError(t, err)
	assert.Empty(t, cash)
	assert.Equal(t, int64(10), f.onHand(t, leche.ID))
	assert.Empty(t, f.stockMovements(t, leche.ID))
}

func TestCrearVenta_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cafe := f.supply(t, "Café", 10)
	session := f.open(t)
	line := dto.SaleLineRequest{SupplyID: cafe.ID, Quantity: 1, UnitPrice: decimal.NewFromInt(5)}

	cases := []struct {
		name string
		req  dto.CreateSaleRequest
		want error
	}{
		{"sin líneas", dto.CreateSaleRequest{SessionID: session.ID, Tender: entity.TenderCash}, domain.ErrInvalidInput},
		{"medio inválido", dto.CreateSaleRequest{SessionID: session.ID, Tender: "bitcoin", Lines: []dto.SaleLineRequest{line}}, domain.ErrInvalidInput},
		{"cantidad cero", dto.CreateSaleRequest{SessionID: session.ID, Tender: entity.TenderCash, Lines: []dto.SaleLineRequest{{SupplyID: cafe.ID, UnitPrice: decimal.NewFromInt(5)}}}, domain.ErrInvalidQuantity},
		{"precio cero", dto.CreateSaleRequest{SessionID: session.ID, Tender: entity.TenderCash, Lines: []dto.SaleLineRequest{{SupplyID: cafe.ID, Quantity: 1}}}, domain.ErrInvalidAmount},
		{"email inválido", dto.CreateSaleRequest{SessionID: session.ID, Tender: entity.TenderCash, CustomerEmail: "no-es-email", Lines: []dto.SaleLineRequest{line}}, domain.ErrInvalidInput},
		{"insumo inexistente", dto.CreateSaleRequest{SessionID: session.ID, Tender: entity.TenderCash, Lines: []dto.SaleLineRequest{{SupplyID: uuid.New().String(), Quantity: 1, UnitPrice: decimal.NewFromInt(5)}}}, domain.ErrNotFound},
		{"total cero", dto.CreateSaleRequest{SessionID: session.ID, Tender: entity.TenderCash, Discount: decimal.NewFromInt(5), Lines: []dto.SaleLineRequest{line}}, domain.ErrInvalidTotal},
		{"sesión inexistente", dto.CreateSaleRequest{SessionID: uuid.New().String(), Tender: entity.TenderCash, Lines: []dto.SaleLineRequest{line}}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.sales.CreateSale(ctx, "u1", tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Equal(t, int64(10), f.onHand(t, cafe.ID))
}

func TestCrearVenta_SesionCerrada(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cafe := f.supply(t, "Café", 10)
	session := f.open(t)
	_, err := f.sessions.CloseSession(ctx, session.ID, dto.CloseSessionRequest{})
	require.NoError(t, err)

	_, err = f.sales.CreateSale(ctx, "u1", dto.CreateSaleRequest{
		SessionID: session.ID,
		Tender:    entity.TenderCash,
		Lines:     []dto.SaleLineRequest{{SupplyID: cafe.ID, Quantity: 1, UnitPrice: decimal.NewFromInt(5)}},
	})
	assert.ErrorIs(t, err, domain.ErrSessionClosed)

	_, err = f.sessions.CloseSession(ctx, session.ID, dto.CloseSessionRequest{})
	assert.ErrorIs(t, err, domain.ErrSessionClosed)
}

func TestCrearVenta_FalloDeDescuentoNoAnulaVenta(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cafe := f.supply(t, "Café", 10)
	session := f.open(t)

	f.store.FailOn("stock_movements.create", errors.New("tabla bloqueada"))
	sale, err := f.sales.CreateSale(ctx, "u1", dto.CreateSaleRequest{
		SessionID: session.ID,
		Tender:    entity.TenderCash,
		Lines:     []dto.SaleLineRequest{{SupplyID: cafe.ID, Quantity: 4, UnitPrice: decimal.NewFromInt(5)}},
	})
	f.store.ClearFailures()
	require.NoError(t, err)

	got, err := f.sales.GetSale(ctx, sale.ID)
	require.NoError(t, err)
	assert.True(t, got.Total.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, int64(10), f.onHand(t, cafe.ID), "el savepoint revierte solo el descuento")
	assert.Empty(t, f.stockMovements(t, cafe.ID))
}

func TestCerrarSesion_TotalesPorMedio(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cafe := f.supply(t, "Café", 100)
	session := f.open(t)

	for _, tender := range []string{entity.TenderCash, entity.TenderCash, entity.TenderCard, entity.TenderTransfer, entity.TenderMixed} {
		_, err := f.sales.CreateSale(ctx, "u1", dto.CreateSaleRequest{
			SessionID: session.ID,
			Tender:    tender,
			Lines:     []dto.SaleLineRequest{{SupplyID: cafe.ID, Quantity: 1, UnitPrice: decimal.NewFromInt(10)}},
		})
		require.NoError(t, err)
	}
	_, err := f.sessions.AddMovement(ctx, "u1", dto.RegisterMovementRequest{
		SessionID: session.ID, Kind: entity.RegisterMovementIn, Amount: decimal.NewFromInt(50), Concept: "Cambio",
	})
	require.NoError(t, err)

	closed, err := f.sessions.CloseSession(ctx, session.ID, dto.CloseSessionRequest{ClosingAmount: decimal.NewFromInt(170), Notes: "ok"})
	require.NoError(t, err)
	assert.Equal(t, entity.SessionStateClosed, closed.State)
	require.NotNil(t, closed.ClosedAt)
	assert.True(t, closed.TotalSales.Equal(decimal.NewFromInt(50)), "mixto suma al total")
	assert.True(t, closed.TotalCash.Equal(decimal.NewFromInt(20)))
	assert.True(t, closed.TotalCard.Equal(decimal.NewFromInt(10)))
	assert.True(t, closed.TotalTransfer.Equal(decimal.NewFromInt(10)))

	_, err = f.sessions.ActiveSession(ctx, f.registerID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	f.open(t)
}

func TestMovimientoDeCaja_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	session := f.open(t)

	_, err := f.sessions.AddMovement(ctx, "u1", dto.RegisterMovementRequest{SessionID: session.ID, Kind: entity.RegisterMovementSale, Amount: decimal.NewFromInt(5), Concept: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.sessions.AddMovement(ctx, "u1", dto.RegisterMovementRequest{SessionID: session.ID, Kind: entity.RegisterMovementOut, Amount: decimal.Zero, Concept: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	mov, err := f.sessions.AddMovement(ctx, "u1", dto.RegisterMovementRequest{SessionID: session.ID, Kind: entity.RegisterMovementOut, Amount: decimal.NewFromInt(5), Concept: "Propina"})
	require.NoError(t, err)
	assert.Equal(t, entity.TenderCash, mov.Tender)
}

func TestReportesDeVentas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cafe := f.supply(t, "Café", 100)
	session := f.open(t)
	for _, price := range []int64{10, 20, 40} {
		_, err := f.sales.CreateSale(ctx, "u1", dto.CreateSaleRequest{
			SessionID: session.ID,
			Tender:    entity.TenderCash,
			Lines:     []dto.SaleLineRequest{{SupplyID: cafe.ID, Quantity: 1, UnitPrice: decimal.NewFromInt(price)}},
		})
		require.NoError(t, err)
	}

	daily, err := f.sales.DailySales(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 3, daily.Count)
	assert.True(t, daily.Total.Equal(decimal.NewFromInt(70)))
	assert.True(t, daily.Average.Equal(decimal.RequireFromString("23.33")))
	require.Len(t, daily.ByTender, 1)

	report, err := f.sales.SalesReport(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, report.Days, 1)
	assert.Equal(t, 3, report.Count)

	regReport, err := f.sales.RegisterReport(ctx, f.registerID, "", "")
	require.NoError(t, err)
	assert.Len(t, regReport.Sessions, 1)
	assert.True(t, regReport.Sales.Total.Equal(decimal.NewFromInt(70)))

	_, err = f.sales.RegisterReport(ctx, uuid.New().String(), "", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
