package inventory_test

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
	"github.com/jhoicas/negocio-api/internal/application/inventory"
	"github.com/jhoicas/negocio-api/internal/domain"
	"github.com/jhoicas/negocio-api/internal/domain/entity"
	"github.com/jhoicas/negocio-api/internal/domain/repository"
	"github.com/jhoicas/negocio-api/internal/infrastructure/memory"
)

func newLedger(t *testing.T) (*inventory.StockLedgerUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	uc := inventory.NewStockLedgerUseCase(
		memory.NewTxRunner(store),
		store.Supplies(),
		store.Stock(),
		store.StockMovements(),
	)
	return uc, store
}

func seedSupply(t *testing.T, store *memory.Store, name string, minStock int64) *entity.Supply {
	t.Helper()
	s := &entity.Supply{
		ID:            uuid.New().String(),
		Name:          name,
		Category:      "General",
		PurchasePrice: decimal.NewFromInt(2),
		SalePrice:     decimal.NewFromInt(5),
		MinStock:      minStock,
		UnitMeasure:   entity.DefaultUnitMeasure,
		Lifecycle:     entity.LifecycleActive,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	require.NoError(t, store.Supplies().Create(context.Background(), s))
	return s
}

func TestRegistrarMovimiento_EntradaYSalida(t *testing.T) {
	uc, store := newLedger(t)
	ctx := context.Background()
	s := seedSupply(t, store, "Café", 0)

	mov, err := uc.RecordMovement(ctx, inventory.MovementInput{SupplyID: s.ID, Kind: entity.StockMovementIn, Quantity: 10, UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), mov.QuantityBefore)
	assert.Equal(t, int64(10), mov.QuantityAfter)
	assert.Equal(t, "Café", mov.SupplyName)

	mov, err = uc.RecordMovement(ctx, inventory.MovementInput{SupplyID: s.ID, Kind: entity.StockMovementOut, Quantity: 3, UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, int64(10), mov.QuantityBefore)
	assert.Equal(t, int64(7), mov.QuantityAfter)

	stock, err := uc.GetStock(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), stock.OnHand)
	assert.Equal(t, int64(7), stock.Available)
	assert.True(t, stock.StockValue.Equal(decimal.NewFromInt(14)))
}

func TestRegistrarMovimiento_Validaciones(t *testing.T) {
	uc, store := newLedger(t)
	ctx := context.Background()
	s := seedSupply(t, store, "Azúcar", 0)

	tests := []struct {
		name  string
		input inventory.MovementInput
		want  error
	}{
		{"cantidad cero", inventory.MovementInput{SupplyID: s.ID, Kind: entity.StockMovementIn, Quantity: 0}, domain.ErrInvalidQuantity},
		{"cantidad negativa", inventory.MovementInput{SupplyID: s.ID, Kind: entity.StockMovementOut, Quantity: -2}, domain.ErrInvalidQuantity},
		{"tipo desconocido", inventory.MovementInput{SupplyID: s.ID, Kind: "transfer", Quantity: 1}, domain.ErrInvalidInput},
		{"insumo inexistente", inventory.MovementInput{SupplyID: uuid.New().String(), Kind: entity.StockMovementIn, Quantity: 1}, domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.RecordMovement(ctx, tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	list, err := store.StockMovements().List(ctx, repository.StockMovementFilter{})
	require.NoError(t, err)
	assert.Empty(t, list, "una validación fallida no debe escribir movimientos")
}

func TestRegistrarMovimiento_SalidaSinStockNoEscribe(t *testing.T) {
	uc, store := newLedger(t)
	ctx := context.Background()
	s := seedSupply(t, store, "Leche", 0)

	_, err := uc.RecordMovement(ctx, inventory.MovementInput{SupplyID: s.ID, Kind: entity.StockMovementIn, Quantity: 2})
	require.NoError(t, err)

	_, err = uc.RecordMovement(ctx, inventory.MovementInput{SupplyID: s.ID, Kind: entity.StockMovementOut, Quantity: 5})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	var shortage *domain.InsufficientStockError
	require.True(t, errors.As(err, &shortage))
	assert.Equal(t, int64(2), shortage.Lines[0].Available)

	stock, err := uc.GetStock(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stock.OnHand)

	list, err := store.StockMovements().List(ctx, repository.StockMovementFilter{SupplyID: s.ID})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestReservarYLiberar(t *testing.T) {
	uc, store := newLedger(t)
	ctx := context.Background()
	s := seedSupply(t, store, "Harina", 0)
	_, err := uc.RecordMovement(ctx, inventory.MovementInput{SupplyID: s.ID, Kind: entity.StockMovementIn, Quantity: 5})
	require.NoError(t, err)

	stock, err := uc.Reserve(ctx, s.ID, "u1", 4, "pedido")
	require.NoError(t, err)
	assert.Equal(t, int64(4), stock.Reserved)
	assert.Equal(t, int64(1), stock.Available)
	assert.Equal(t, int64(5), stock.OnHand)

	_, err = uc.Reserve(ctx, s.ID, "u1", 2, "otro pedido")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = uc.Release(ctx, s.ID, "u1", 5, "")
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	stock, err = uc.Release(ctx, s.ID, "u1", 4, "")
	require.NoError(t, err)
	assert.Equal(t, int64(0), stock.Reserved)

	list, err := uc.ListMovements(ctx, repository.StockMovementFilter{SupplyID: s.ID})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, entity.StockMovementRelease, list[0].Kind)
	assert.Equal(t, list[0].QuantityBefore, list[0].QuantityAfter)
}

func TestAjustar_ObjetivoCeroYSobreReserva(t *testing.T) {
	uc, store := newLedger(t)
	ctx := context.Background()
	s := seedSupply(t, store, "Té", 1)
	_, err := uc.RecordMovement(ctx, inventory.MovementInput{SupplyID: s.ID, Kind: entity.StockMovementIn, Quantity: 5})
	require.NoError(t, err)
	_, err = uc.Reserve(ctx, s.ID, "u1", 3, "")
	require.NoError(t, err)

	stock, err := uc.Adjust(ctx, s.ID, "admin", 0, "conteo físico")
	require.NoError(t, err)
	assert.Equal(t, int64(0), stock.OnHand)
	assert.Equal(t, int64(3), stock.Reserved)
	assert.True(t, stock.OverReserved)
	assert.True(t, stock.LowStock)

	_, err = uc.Adjust(ctx, s.ID, "admin", -1, "")
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestSetStock_DejaAjusteManual(t *testing.T) {
	uc, store := newLedger(t)
	ctx := context.Background()
	s := seedSupply(t, store, "Vasos", 0)

	stock, err := uc.SetStock(ctx, s.ID, "u1", dto.SetStockRequest{Quantity: 12, Location: "Bodega A"})
	require.NoError(t, err)
	assert.Equal(t, int64(12), stock.OnHand)
	assert.Equal(t, "Bodega A", stock.Location)

	list, err := uc.ListMovements(ctx, repository.StockMovementFilter{SupplyID: s.ID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entity.StockMovementAdjust, list[0].Kind)
	assert.Equal(t, "actualización manual", list[0].Reason)

	// una entrada posterior conserva la ubicación
	_, err = uc.RecordMovement(ctx, inventory.MovementInput{SupplyID: s.ID, Kind: entity.StockMovementIn, Quantity: 1})
	require.NoError(t, err)
	stock, err = uc.GetStock(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bodega A", stock.Location)
}

func TestListarStockBajo_SinRegistroCuentaComoCero(t *testing.T) {
	uc, store := newLedger(t)
	ctx := context.Background()
	sinRegistro := seedSupply(t, store, "Servilletas", 5)
	ok := seedSupply(t, store, "Platos", 2)
	_, err := uc.RecordMovement(ctx, inventory.MovementInput{SupplyID: ok.ID, Kind: entity.StockMovementIn, Quantity: 10})
	require.NoError(t, err)

	low, err := uc.ListLowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, sinRegistro.ID, low[0].SupplyID)
	assert.Equal(t, int64(5), low[0].Deficit)
	assert.False(t, low[0].HasRecord)

	report, err := uc.StockReport(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, report.TotalItems)
	assert.Equal(t, int64(10), report.TotalUnits)
	assert.Equal(t, 1, report.LowStockCount)
	assert.True(t, report.InventoryValue.Equal(decimal.NewFromInt(20)))
}

func TestRegistrarMovimiento_ConcurrenteNoPierdeEscrituras(t *testing.T) {
	uc, store := newLedger(t)
	ctx := context.Background()
	s := seedSupply(t, store, "Cucharas", 0)

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.RecordMovement(ctx, inventory.MovementInput{SupplyID: s.ID, Kind: entity.StockMovementIn, Quantity: 2})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stock, err := uc.GetStock(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(50), stock.OnHand)
}

func TestRegistrarMovimiento_FalloDeAlmacenamiento(t *testing.T) {
	uc, store := newLedger(t)
	ctx := context.Background()
	s := seedSupply(t, store, "Tapas", 0)
	store.FailOn("stock.upsert", errors.New("disco lleno"))

	_, err := uc.RecordMovement(ctx, inventory.MovementInput{SupplyID: s.ID, Kind: entity.StockMovementIn, Quantity: 3})
	require.ErrorIs(t, err, domain.ErrStorage)

	store.ClearFailures()
	list, err := store.StockMovements().List(ctx, repository.StockMovementFilter{SupplyID: s.ID})
	require.NoError(t, err)
	assert.Empty(t, list, "el rollback descarta el movimiento")
}

func TestAlertasDeStock_ProveedorMasBarato(t *testing.T) {
	_, store := newLedger(t)
	ctx := context.Background()
	s := seedSupply(t, store, "Filtros", 4)

	caro := &entity.Supplier{ID: uuid.New().String(), Name: "Distribuidora Norte", Lifecycle: entity.LifecycleActive}
	barato := &entity.Supplier{ID: uuid.New().String(), Name: "Mayorista Sur", Lifecycle: entity.LifecycleActive}
	require.NoError(t, store.Suppliers().Create(ctx, caro))
	require.NoError(t, store.Suppliers().Create(ctx, barato))
	require.NoError(t, store.Suppliers().UpsertSupply(ctx, &entity.SupplierSupply{ID: uuid.New().String(), SupplierID: caro.ID, SupplyID: s.ID, Price: decimal.NewFromInt(9), MinQuantity: 1, Active: true}))
	require.NoError(t, store.Suppliers().UpsertSupply(ctx, &entity.SupplierSupply{ID: uuid.New().String(), SupplierID: barato.ID, SupplyID: s.ID, Price: decimal.NewFromInt(7), MinQuantity: 10, Active: true}))

	uc := inventory.NewReplenishmentUseCase(store.Stock(), store.Suppliers())
	alerts, err := uc.StockAlerts(ctx)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	a := alerts[0]
	assert.Equal(t, barato.ID, a.BestSupplierID)
	assert.Equal(t, int64(10), a.SuggestedOrderQty, "se respeta la cantidad mínima del proveedor")
	assert.True(t, a.EstimatedOrderCost.Equal(decimal.NewFromInt(70)))
	assert.Equal(t, 1, a.Priority)
}
