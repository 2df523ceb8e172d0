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

func TestCrearPago_Validaciones(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewPaymentUseCase(store.Payments(), store.Suppliers())
	ctx := context.Background()

	_, err := uc.Create(ctx, "u1", dto.PaymentRequest{Type: "otro", Concept: "x", Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, "u1", dto.PaymentRequest{Type: entity.PaymentTypeIncome, Concept: "Venta", Amount: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	supplier := "no-existe"
	_, err = uc.Create(ctx, "u1", dto.PaymentRequest{Type: entity.PaymentTypeExpense, Concept: "Compra", Amount: decimal.NewFromInt(5), SupplierID: &supplier})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	p, err := uc.Create(ctx, "u1", dto.PaymentRequest{Type: entity.PaymentTypeIncome, Concept: "Servicio", Amount: decimal.NewFromInt(5)})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentMethodCash, p.Method)
	assert.Equal(t, entity.PaymentStateCompleted, p.State)
	assert.Equal(t, "u1", p.CreatedBy)
}

func TestReportePagos_NetoExcluyeCancelados(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewPaymentUseCase(store.Payments(), store.Suppliers())
	ctx := context.Background()
	paid := time.Now()

	reqs := []dto.PaymentRequest{
		{Type: entity.PaymentTypeIncome, Concept: "Servicio", Amount: decimal.NewFromInt(100), Method: entity.PaymentMethodTransfer, PaidAt: &paid},
		{Type: entity.PaymentTypeIncome, Concept: "Servicio", Amount: decimal.NewFromInt(50), PaidAt: &paid},
		{Type: entity.PaymentTypeExpense, Concept: "Luz", Amount: decimal.NewFromInt(30), PaidAt: &paid},
		{Type: entity.PaymentTypeExpense, Concept: "Anulado", Amount: decimal.NewFromInt(999), State: entity.PaymentStateCancelled, PaidAt: &paid},
	}
	for _, r := range reqs {
		_, err := uc.Create(ctx, "u1", r)
		require.NoError(t, err)
	}

	today := paid.Format(dto.DateLayout)
	report, err := uc.Report(ctx, today, today)
	require.NoError(t, err)
	assert.True(t, report.TotalIncome.Equal(decimal.NewFromInt(150)))
	assert.True(t, report.TotalExpense.Equal(decimal.NewFromInt(30)))
	assert.True(t, report.Net.Equal(decimal.NewFromInt(120)))
	require.Len(t, report.ByType, 2)
	assert.Equal(t, 2, report.ByType[0].Count)
	assert.Len(t, report.ByMethod, 3)

	list, err := uc.List(ctx, entity.PaymentTypeExpense, today, today)
	require.NoError(t, err)
	assert.Len(t, list, 2, "el listado sí incluye cancelados")
}

func TestEliminarPago(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewPaymentUseCase(store.Payments(), store.Suppliers())
	ctx := context.Background()
	p, err := uc.Create(ctx, "u1", dto.PaymentRequest{Type: entity.PaymentTypeIncome, Concept: "Servicio", Amount: decimal.NewFromInt(5)})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, p.ID))
	assert.ErrorIs(t, uc.Delete(ctx, p.ID), domain.ErrNotFound)
}

func TestCategoriasDePago_Sembradas(t *testing.T) {
	store := memory.NewStore()
	store.SeedDefaults()
	uc := usecase.NewPaymentUseCase(store.Payments(), store.Suppliers())

	cats, err := uc.Categories(context.Background())
	require.NoError(t, err)
	assert.Len(t, cats, 6)
}
