// Package accounting contiene las reglas puras del libro contable.
package accounting

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/negocio-api/internal/domain/entity"
)

// Balance calcula el saldo según la naturaleza del tipo de cuenta.
//
//	activo / gasto:               inicial + débitos - créditos
//	pasivo / patrimonio / ingreso: inicial + créditos - débitos
func Balance(accountType string, initial, debitTotal, creditTotal decimal.Decimal) decimal.Decimal {
	if entity.IsDebitNature(accountType) {
		return initial.Add(debitTotal).Sub(creditTotal)
	}
	return initial.Add(creditTotal).Sub(debitTotal)
}

// Totals suma débitos y créditos de una lista de movimientos.
func Totals(movements []*entity.AccountMovement) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, m := range movements {
		switch m.Side {
		case entity.SideDebit:
			debit = debit.Add(m.Amount)
		case entity.SideCredit:
			credit = credit.Add(m.Amount)
		}
	}
	return debit, credit
}
