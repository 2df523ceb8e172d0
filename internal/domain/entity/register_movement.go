package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de caja.
const (
	RegisterMovementIn     = "in"     // entrada de efectivo
	RegisterMovementOut    = "out"    // salida de efectivo
	RegisterMovementSale   = "sale"   // venta (solo la genera CreateSale)
	RegisterMovementRefund = "refund" // devolución
)

// RegisterMovement movimiento inmutable dentro de una sesión de caja.
type RegisterMovement struct {
	ID        string
	SessionID string
	Kind      string
	Amount    decimal.Decimal
	Concept   string
	Reference string
	Tender    string
	SaleID    *string
	CreatedBy string
	CreatedAt time.Time
}
