package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supplier proveedor de insumos.
type Supplier struct {
	ID           string
	Name         string
	LegalName    string
	TaxID        string
	Phone        string
	Email        string
	Address      string
	City         string
	State        string
	PostalCode   string
	ContactName  string
	ContactPhone string
	ContactEmail string
	PaymentTerms string
	CreditDays   int
	Lifecycle    Lifecycle
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SupplierSupply precio de lista de un proveedor para un insumo (único por par).
type SupplierSupply struct {
	ID           string
	SupplierID   string
	SupplierName string
	SupplyID     string
	SupplyName   string
	Price        decimal.Decimal
	LeadDays     int
	MinQuantity  int64
	Active       bool
	CreatedAt    time.Time
}
