package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/negocio-api/internal/application/dto"
	"github.com/jhoicas/negocio-api/internal/application/usecase"
	"github.com/jhoicas/negocio-api/internal/domain"
	"github.com/jhoicas/negocio-api/internal/domain/entity"
	"github.com/jhoicas/negocio-api/internal/infrastructure/memory"
)

func TestCrearInsumo_Validaciones(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewSupplyUseCase(store.Supplies())
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateSupplyRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateSupplyRequest{Name: "Café", PurchasePrice: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	s, err := uc.Create(ctx, dto.CreateSupplyRequest{Name: "Café", Category: "Bebidas", SalePrice: decimal.NewFromInt(3)})
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultUnitMeasure, s.UnitMeasure)
	assert.Equal(t, string(entity.LifecycleActive), s.Lifecycle)
}

func TestBuscarYCategorias(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewSupplyUseCase(store.Supplies())
	ctx := context.Background()
	_, err := uc.Create(ctx, dto.CreateSupplyRequest{Name: "Café molido", Category: "Bebidas", Barcode: "7701"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateSupplyRequest{Name: "Pan", Category: "Panadería"})
	require.NoError(t, err)

	found, err := uc.Search(ctx, "CAFÉ", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, found.Items, 1)

	found, err = uc.Search(ctx, "7701", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, found.Items, 1)

	byCat, err := uc.ListByCategory(ctx, "Panadería", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, byCat.Items, 1)
	assert.Equal(t, "Pan", byCat.Items[0].Name)

	cats, err := uc.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bebidas", "Panadería"}, cats)
}

func TestEliminarInsumo_RetiraSiTieneStock(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewSupplyUseCase(store.Supplies())
	ctx := context.Background()

	conStock, err := uc.Create(ctx, dto.CreateSupplyRequest{Name: "Leche"})
	require.NoError(t, err)
	require.NoError(t, store.Stock().Upsert(ctx, &entity.StockRecord{SupplyID: conStock.ID, OnHand: 3, UpdatedAt: time.Now()}))
	libre, err := uc.Create(ctx, dto.CreateSupplyRequest{Name: "Miel"})
	require.NoError(t, err)

	res, err := uc.Delete(ctx, conStock.ID)
	require.NoError(t, err)
	assert.True(t, res.Retired)

	res, err = uc.Delete(ctx, libre.ID)
	require.NoError(t, err)
	assert.False(t, res.Retired)

	_, err = uc.GetByID(ctx, conStock.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "los retirados no se leen")
	_, err = uc.Delete(ctx, libre.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestActualizarInsumo_Parcial(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewSupplyUseCase(store.Supplies())
	ctx := context.Background()
	s, err := uc.Create(ctx, dto.CreateSupplyRequest{Name: "Té", MinStock: 2})
	require.NoError(t, err)

	min := int64(5)
	price := decimal.NewFromFloat(4.5)
	out, err := uc.Update(ctx, s.ID, dto.UpdateSupplyRequest{MinStock: &min, SalePrice: &price})
	require.NoError(t, err)
	assert.Equal(t, "Té", out.Name)
	assert.Equal(t, int64(5), out.MinStock)
	assert.True(t, out.SalePrice.Equal(price))

	neg := int64(-1)
	_, err = uc.Update(ctx, s.ID, dto.UpdateSupplyRequest{MinStock: &neg})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
