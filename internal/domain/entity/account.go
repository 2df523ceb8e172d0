package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de cuenta contable.
const (
	AccountTypeAsset     = "asset"     // activo
	AccountTypeLiability = "liability" // pasivo
	AccountTypeEquity    = "equity"    // patrimonio
	AccountTypeIncome    = "income"    // ingreso
	AccountTypeExpense   = "expense"   // gasto
)

// Subtipos: las cuentas "detail" son hojas que reciben movimientos y entran al balance.
const (
	AccountSubtypeGroup  = "group"
	AccountSubtypeDetail = "detail"
)

// Account cuenta del plan de cuentas. CurrentBalance es derivado de sus movimientos.
type Account struct {
	ID             string
	Code           string
	Name           string
	Type           string
	Subtype        string
	Description    string
	InitialBalance decimal.Decimal
	CurrentBalance decimal.Decimal
	ParentID       *string
	Level          int
	Lifecycle      Lifecycle
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsValidAccountType valida el tipo contra el conjunto cerrado.
func IsValidAccountType(t string) bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeIncome, AccountTypeExpense:
		return true
	}
	return false
}

// IsDebitNature true para activo y gasto (el débito aumenta el saldo).
func IsDebitNature(t string) bool {
	return t == AccountTypeAsset || t == AccountTypeExpense
}
