package accounting_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/negocio-api/internal/application/accounting"
	"github.com/jhoicas/negocio-api/internal/application/dto"
	"github.com/jhoicas/negocio-api/internal/domain"
	"github.com/jhoicas/negocio-api/internal/domain/entity"
	"github.com/jhoicas/negocio-api/internal/infrastructure/memory"
)

func newLedger(t *testing.T) (*accounting.LedgerUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return accounting.NewLedgerUseCase(memory.NewTxRunner(store), store.Accounts(), store.AccountMovements()), store
}

func createAccount(t *testing.T, uc *accounting.LedgerUseCase, code, typ string, initial int64) *dto.AccountResponse {
	t.Helper()
	acc, err := uc.CreateAccount(context.Background(), dto.CreateAccountRequest{
		Code:           code,
		Name:           "Cuenta " + code,
		Type:           typ,
		InitialBalance: decimal.NewFromInt(initial),
	})
	require.NoError(t, err)
	return acc
}

func movement(accountID, side string, amount int64) accounting.MovementInput {
	return accounting.MovementInput{
		AccountID: accountID,
		Side:      side,
		Amount:    decimal.NewFromInt(amount),
		Concept:   "prueba",
		UserID:    "u1",
	}
}

func TestCrearCuenta_Validaciones(t *testing.T) {
	uc, _ := newLedger(t)
	ctx := context.Background()

	_, err := uc.CreateAccount(ctx, dto.CreateAccountRequest{Code: "9000", Name: "X", Type: "otro"})
	assert.ErrorIs(t, err, domain.ErrInvalidAccountType)

	parent := createAccount(t, uc, "1000", entity.AccountTypeAsset, 0)
	assert.Equal(t, 1, parent.Level)
	assert.Equal(t, entity.AccountSubtypeDetail, parent.Subtype)

	_, err = uc.CreateAccount(ctx, dto.CreateAccountRequest{Code: "1000", Name: "Repetida", Type: entity.AccountTypeAsset})
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)
	assert.ErrorIs(t, err, domain.ErrConflict)

	missing := "00000000-0000-0000-0000-000000000000"
	_, err = uc.CreateAccount(ctx, dto.CreateAccountRequest{Code: "1001", Name: "Huérfana", Type: entity.AccountTypeAsset, ParentID: &missing})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	child, err := uc.CreateAccount(ctx, dto.CreateAccountRequest{Code: "1101", Name: "Caja", Type: entity.AccountTypeAsset, ParentID: &parent.ID, InitialBalance: decimal.NewFromInt(50)})
	require.NoError(t, err)
	assert.Equal(t, 2, child.Level)
	assert.True(t, child.CurrentBalance.Equal(decimal.NewFromInt(50)))
}

func TestRegistrarMovimiento_PolaridadPorTipo(t *testing.T) {
	uc, _ := newLedger(t)
	ctx := context.Background()

	cases := []struct {
		code string
		typ  string
		want int64
	}{
		{"1101", entity.AccountTypeAsset, 100 + 30 - 10},
		{"5101", entity.AccountTypeExpense, 100 + 30 - 10},
		{"2101", entity.AccountTypeLiability, 100 + 10 - 30},
		{"3101", entity.AccountTypeEquity, 100 + 10 - 30},
		{"4101", entity.AccountTypeIncome, 100 + 10 - 30},
	}
	for _, tc := range cases {
		t.Run(tc.typ, func(t *testing.T) {
			acc := createAccount(t, uc, tc.code, tc.typ, 100)
			_, err := uc.RecordMovement(ctx, movement(acc.ID, entity.SideDebit, 30))
			require.NoError(t, err)
			_, err = uc.RecordMovement(ctx, movement(acc.ID, entity.SideCredit, 10))
			require.NoError(t, err)

			got, err := uc.GetAccount(ctx, acc.ID)
			require.NoError(t, err)
			assert.True(t, got.CurrentBalance.Equal(decimal.NewFromInt(tc.want)), "saldo %s", got.CurrentBalance)
		})
	}
}

func TestRegistrarMovimiento_MontoYLado(t *testing.T) {
	uc, _ := newLedger(t)
	ctx := context.Background()
	acc := createAccount(t, uc, "1101", entity.AccountTypeAsset, 0)

	_, err := uc.RecordMovement(ctx, movement(acc.ID, entity.SideDebit, 0))
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	_, err = uc.RecordMovement(ctx, movement(acc.ID, entity.SideDebit, -5))
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	_, err = uc.RecordMovement(ctx, movement(acc.ID, "lateral", 5))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.RecordMovement(ctx, movement("no-existe", entity.SideDebit, 5))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegistrarMovimiento_FalloDeRecalculoRevierte(t *testing.T) {
	uc, store := newLedger(t)
	ctx := context.Background()
	acc := createAccount(t, uc, "1101", entity.AccountTypeAsset, 0)

	store.FailOn("accounts.update_balance", errors.New("disco lleno"))
	_, err := uc.RecordMovement(ctx, movement(acc.ID, entity.SideDebit, 25))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorage)
	store.ClearFailures()

	list, err := uc.ListMovements(ctx, acc.ID, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list)
	got, err := uc.GetAccount(ctx, acc.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentBalance.IsZero())
}

func TestRecalcularSaldo_Idempotente(t *testing.T) {
	uc, _ := newLedger(t)
	ctx := context.Background()
	acc := createAccount(t, uc, "2101", entity.AccountTypeLiability, 40)
	_, err := uc.RecordMovement(ctx, movement(acc.ID, entity.SideCredit, 60))
	require.NoError(t, err)

	first, err := uc.RecomputeBalance(ctx, acc.ID)
	require.NoError(t, err)
	second, err := uc.RecomputeBalance(ctx, acc.ID)
	require.NoError(t, err)
	assert.True(t, first.CurrentBalance.Equal(decimal.NewFromInt(100)))
	assert.True(t, first.CurrentBalance.Equal(second.CurrentBalance))
}

func TestEliminarCuenta(t *testing.T) {
	uc, _ := newLedger(t)
	ctx := context.Background()
	used := createAccount(t, uc, "1101", entity.AccountTypeAsset, 0)
	unused := createAccount(t, uc, "1102", entity.AccountTypeAsset, 0)
	_, err := uc.RecordMovement(ctx, movement(used.ID, entity.SideDebit, 5))
	require.NoError(t, err)

	assert.ErrorIs(t, uc.DeleteAccount(ctx, used.ID), domain.ErrHasMovements)
	require.NoError(t, uc.DeleteAccount(ctx, unused.ID))

	_, err = uc.GetAccount(ctx, unused.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	list, err := uc.ListAccounts(ctx, "")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	// el código de una cuenta retirada puede reutilizarse
	createAccount(t, uc, "1102", entity.AccountTypeAsset, 0)
}

func TestActualizarCuenta_CodigoInmutableConMovimientos(t *testing.T) {
	uc, _ := newLedger(t)
	ctx := context.Background()
	acc := createAccount(t, uc, "1101", entity.AccountTypeAsset, 0)

	name := "Caja chica"
	out, err := uc.UpdateAccount(ctx, acc.ID, dto.UpdateAccountRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, out.Name)

	_, err = uc.RecordMovement(ctx, movement(acc.ID, entity.SideDebit, 5))
	require.NoError(t, err)

	code := "1199"
	_, err = uc.UpdateAccount(ctx, acc.ID, dto.UpdateAccountRequest{Code: &code})
	assert.ErrorIs(t, err, domain.ErrHasMovements)
	typ := entity.AccountTypeExpense
	_, err = uc.UpdateAccount(ctx, acc.ID, dto.UpdateAccountRequest{Type: &typ})
	assert.ErrorIs(t, err, domain.ErrHasMovements)
}

func TestBalanceGeneral_Diferencia(t *testing.T) {
	uc, _ := newLedger(t)
	ctx := context.Background()
	createAccount(t, uc, "1101", entity.AccountTypeAsset, 500)
	createAccount(t, uc, "2101", entity.AccountTypeLiability, 200)
	createAccount(t, uc, "3101", entity.AccountTypeEquity, 250)
	_, err := uc.CreateAccount(ctx, dto.CreateAccountRequest{
		Code: "1000", Name: "ACTIVOS", Type: entity.AccountTypeAsset,
		Subtype: entity.AccountSubtypeGroup, InitialBalance: decimal.NewFromInt(999),
	})
	require.NoError(t, err)

	sheet, err := uc.BalanceSheet(ctx)
	require.NoError(t, err)
	assert.True(t, sheet.Assets.Equal(decimal.NewFromInt(500)), "los grupos no suman")
	assert.True(t, sheet.Liabilities.Equal(decimal.NewFromInt(200)))
	assert.True(t, sheet.Equity.Equal(decimal.NewFromInt(250)))
	assert.True(t, sheet.Difference.Equal(decimal.NewFromInt(50)))
	assert.Len(t, sheet.Accounts, 3)
}

func TestEstadoDeResultados(t *testing.T) {
	uc, _ := newLedger(t)
	ctx := context.Background()
	sales := createAccount(t, uc, "4101", entity.AccountTypeIncome, 0)
	costs := createAccount(t, uc, "5101", entity.AccountTypeExpense, 0)
	cash := createAccount(t, uc, "1101", entity.AccountTypeAsset, 0)

	for _, m := range []accounting.MovementInput{
		movement(sales.ID, entity.SideCredit, 1000),
		movement(sales.ID, entity.SideDebit, 100),
		movement(costs.ID, entity.SideDebit, 300),
		movement(cash.ID, entity.SideDebit, 900),
	} {
		_, err := uc.RecordMovement(ctx, m)
		require.NoError(t, err)
	}

	st, err := uc.IncomeStatement(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, st.Income, 1)
	require.Len(t, st.Expenses, 1)
	assert.True(t, st.Income[0].Amount.Equal(decimal.NewFromInt(-900)))
	assert.True(t, st.TotalIncome.Equal(decimal.NewFromInt(900)))
	assert.True(t, st.TotalExpenses.Equal(decimal.NewFromInt(300)))
	assert.True(t, st.NetIncome.Equal(decimal.NewFromInt(600)))

	_, err = uc.IncomeStatement(ctx, "2026-02-10", "2026-02-01")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReporteDeCuentas_PlanSembrado(t *testing.T) {
	uc, store := newLedger(t)
	store.SeedDefaults()

	report, err := uc.AccountsReport(context.Background())
	require.NoError(t, err)
	require.Len(t, report, 5)
	assert.Equal(t, entity.AccountTypeAsset, report[0].Type)
	assert.Equal(t, 6, report[0].Count)

	total := 0
	for _, r := range report {
		total += r.Count
	}
	assert.Equal(t, 19, total)
}
