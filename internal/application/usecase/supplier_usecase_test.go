package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/negocio-api/internal/application/dto"
	"github.com/jhoicas/negocio-api/internal/application/usecase"
	"github.com/jhoicas/negocio-api/internal/domain"
	"github.com/jhoicas/negocio-api/internal/infrastructure/memory"
)

func TestMejorPrecio_OrdenAscendente(t *testing.T) {
	store := memory.NewStore()
	supplies := usecase.NewSupplyUseCase(store.Supplies())
	uc := usecase.NewSupplierUseCase(store.Suppliers(), store.Supplies())
	ctx := context.Background()

	item, err := supplies.Create(ctx, dto.CreateSupplyRequest{Name: "Azúcar"})
	require.NoError(t, err)
	a, err := uc.Create(ctx, dto.SupplierRequest{Name: "Proveedor A"})
	require.NoError(t, err)
	b, err := uc.Create(ctx, dto.SupplierRequest{Name: "Proveedor B"})
	require.NoError(t, err)

	_, err = uc.AddSupply(ctx, a.ID, dto.SupplierSupplyRequest{SupplyID: item.ID, Price: decimal.NewFromInt(12)})
	require.NoError(t, err)
	_, err = uc.AddSupply(ctx, b.ID, dto.SupplierSupplyRequest{SupplyID: item.ID, Price: decimal.NewFromInt(10)})
	require.NoError(t, err)

	best, err := uc.BestPrice(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Proveedor B", best.Best.SupplierName)
	require.Len(t, best.Offers, 2)
	assert.True(t, best.Offers[1].Price.Equal(decimal.NewFromInt(12)))

	// actualizar el precio reemplaza la oferta del par (upsert)
	_, err = uc.AddSupply(ctx, a.ID, dto.SupplierSupplyRequest{SupplyID: item.ID, Price: decimal.NewFromInt(8), MinQuantity: 3})
	require.NoError(t, err)
	best, err = uc.BestPrice(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Proveedor A", best.Best.SupplierName)
	assert.Equal(t, int64(3), best.Best.MinQuantity)
	assert.Len(t, best.Offers, 2)

	// un proveedor retirado deja de ofrecer
	require.NoError(t, uc.Delete(ctx, a.ID))
	best, err = uc.BestPrice(ctx, item.ID)
	require.NoError(t, err)
	assert.Len(t, best.Offers, 1)
}

func TestMejorPrecio_SinOfertas(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewSupplierUseCase(store.Suppliers(), store.Supplies())
	_, err := uc.BestPrice(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReporteProveedor(t *testing.T) {
	store := memory.NewStore()
	supplies := usecase.NewSupplyUseCase(store.Supplies())
	uc := usecase.NewSupplierUseCase(store.Suppliers(), store.Supplies())
	ctx := context.Background()

	p, err := uc.Create(ctx, dto.SupplierRequest{Name: "Mayorista", CreditDays: 30})
	require.NoError(t, err)
	for _, price := range []int64{10, 20, 30} {
		s, err := supplies.Create(ctx, dto.CreateSupplyRequest{Name: "Insumo " + decimal.NewFromInt(price).String()})
		require.NoError(t, err)
		_, err = uc.AddSupply(ctx, p.ID, dto.SupplierSupplyRequest{SupplyID: s.ID, Price: decimal.NewFromInt(price)})
		require.NoError(t, err)
	}

	r, err := uc.Report(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, r.SupplyCount)
	assert.True(t, r.AveragePrice.Equal(decimal.NewFromInt(20)))
	assert.True(t, r.MinPrice.Equal(decimal.NewFromInt(10)))
	assert.True(t, r.MaxPrice.Equal(decimal.NewFromInt(30)))

	all, err := uc.ReportAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	assert.ErrorIs(t, uc.RemoveSupply(ctx, p.ID, "no-existe"), domain.ErrNotFound)
}
