package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lados de un movimiento contable.
const (
	SideDebit  = "debit"
	SideCredit = "credit"
)

// AccountMovement movimiento contable inmutable. Amount siempre > 0; el lado define el signo.
type AccountMovement struct {
	ID             string
	AccountID      string
	Side           string
	Amount         decimal.Decimal
	Concept        string
	Reference      string
	Document       string
	JournalEntryID *string
	CreatedBy      string
	CreatedAt      time.Time
}

// DebitPositive devuelve el monto con signo: débito positivo, crédito negativo.
func (m *AccountMovement) DebitPositive() decimal.Decimal {
	if m.Side == SideCredit {
		return m.Amount.Neg()
	}
	return m.Amount
}
