package accounting_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/negocio-api/internal/domain/accounting"
	"github.com/jhoicas/negocio-api/internal/domain/entity"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Débito 100 y crédito 30 desde cero: activo/gasto = 70, pasivo/patrimonio/ingreso = -70.
func TestBalance_PolaridadPorTipo(t *testing.T) {
	cases := map[string]string{
		entity.AccountTypeAsset:     "70",
		entity.AccountTypeExpense:   "70",
		entity.AccountTypeLiability: "-70",
		entity.AccountTypeEquity:    "-70",
		entity.AccountTypeIncome:    "-70",
	}
	for typ, want := range cases {
		got := accounting.Balance(typ, decimal.Zero, d("100"), d("30"))
		assert.True(t, d(want).Equal(got), "%s: esperado %s, obtenido %s", typ, want, got)
	}
}

func TestBalance_IncluyeSaldoInicial(t *testing.T) {
	got := accounting.Balance(entity.AccountTypeLiability, d("500"), d("100"), d("250"))
	assert.True(t, d("650").Equal(got))
}

func TestTotals_SumaPorLado(t *testing.T) {
	movs := []*entity.AccountMovement{
		{Side: entity.SideDebit, Amount: d("100")},
		{Side: entity.SideCredit, Amount: d("30")},
		{Side: entity.SideDebit, Amount: d("0.50")},
	}
	debit, credit := accounting.Totals(movs)
	assert.True(t, d("100.50").Equal(debit))
	assert.True(t, d("30").Equal(credit))
}
