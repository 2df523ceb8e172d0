package entity

import "time"

// Tipos de movimiento de stock.
const (
	StockMovementIn      = "in"      // entrada
	StockMovementOut     = "out"     // salida
	StockMovementAdjust  = "adjust"  // ajuste: la cantidad es el valor absoluto final
	StockMovementReserve = "reserve" // reserva
	StockMovementRelease = "release" // liberación de reserva
)

// StockMovement registro inmutable de un evento de stock (solo inserción).
// QuantityBefore/After guardan la foto de OnHand; en reserve/release ambas son iguales.
type StockMovement struct {
	ID             string
	SupplyID       string
	SupplyName     string // solo lectura (join)
	Kind           string
	Quantity       int64
	QuantityBefore int64
	QuantityAfter  int64
	Reason         string
	Reference      string
	CreatedBy      string
	CreatedAt      time.Time
}

// IsValidStockMovementKind valida el tipo contra el conjunto cerrado.
func IsValidStockMovementKind(kind string) bool {
	switch kind {
	case StockMovementIn, StockMovementOut, StockMovementAdjust, StockMovementReserve, StockMovementRelease:
		return true
	}
	return false
}
