package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de venta.
const (
	SaleStatePending   = "pending"
	SaleStateCompleted = "completed"
	SaleStateCancelled = "cancelled"
	SaleStateRefunded  = "refunded"
)

// Sale cabecera de venta. Se crea junto con sus líneas y el movimiento de caja.
type Sale struct {
	ID            string
	Number        string
	SessionID     string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
	Tender        string
	State         string
	CreatedBy     string
	Notes         string
	CreatedAt     time.Time
	Lines         []SaleLine
}

// SaleLine línea de venta. Subtotal = Quantity*UnitPrice - Discount.
type SaleLine struct {
	ID         string
	SaleID     string
	SupplyID   string
	SupplyName string
	Quantity   int64
	UnitPrice  decimal.Decimal
	Discount   decimal.Decimal
	Subtotal   decimal.Decimal
}
