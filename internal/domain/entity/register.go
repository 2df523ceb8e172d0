package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la sesión de caja.
const (
	SessionStateOpen   = "open"
	SessionStateClosed = "closed"
)

// Medios de pago aceptados en caja.
const (
	TenderCash     = "cash"     // efectivo
	TenderCard     = "card"     // tarjeta
	TenderTransfer = "transfer" // transferencia
	TenderMixed    = "mixed"    // mixto
)

// Register caja física o virtual.
type Register struct {
	ID          string
	Name        string
	Description string
	Location    string
	Lifecycle   Lifecycle
	CreatedAt   time.Time
}

// RegisterSession periodo de trabajo de una caja entre apertura y cierre.
// Una sesión cerrada es inmutable; una nueva apertura crea otra sesión.
type RegisterSession struct {
	ID            string
	RegisterID    string
	OpenedBy      string
	OpenedAt      time.Time
	ClosedAt      *time.Time
	OpeningAmount decimal.Decimal
	ClosingAmount decimal.Decimal
	TotalSales    decimal.Decimal
	TotalCash     decimal.Decimal
	TotalCard     decimal.Decimal
	TotalTransfer decimal.Decimal
	State         string
	OpeningNotes  string
	ClosingNotes  string
}

// IsOpen indica si la sesión admite ventas y movimientos.
func (s *RegisterSession) IsOpen() bool { return s.State == SessionStateOpen }

// IsValidTender valida el medio de pago.
func IsValidTender(t string) bool {
	switch t {
	case TenderCash, TenderCard, TenderTransfer, TenderMixed:
		return true
	}
	return false
}
