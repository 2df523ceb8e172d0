package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de pago.
const (
	PaymentTypeIncome  = "income"  // ingreso
	PaymentTypeExpense = "expense" // egreso
)

// Métodos de pago (incluye cheque y otro, a diferencia de caja).
const (
	PaymentMethodCash     = "cash"
	PaymentMethodCard     = "card"
	PaymentMethodTransfer = "transfer"
	PaymentMethodCheck    = "check"
	PaymentMethodOther    = "other"
)

// Estados de pago.
const (
	PaymentStatePending   = "pending"
	PaymentStateCompleted = "completed"
	PaymentStateCancelled = "cancelled"
	PaymentStateRefunded  = "refunded"
)

// Payment ingreso o egreso registrado fuera de caja.
type Payment struct {
	ID            string
	Type          string
	Concept       string
	Description   string
	Amount        decimal.Decimal
	Method        string
	Reference     string
	SupplierID    *string
	SupplierName  string
	CustomerName  string
	CustomerEmail string
	State         string
	PaidAt        time.Time
	DueAt         *time.Time
	CreatedBy     string
	Notes         string
}

// PaymentCategory categoría de pago (concepto).
type PaymentCategory struct {
	ID          string
	Name        string
	Type        string
	Description string
	Active      bool
}
