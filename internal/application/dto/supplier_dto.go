package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SupplierRequest entrada para crear o actualizar un proveedor.
type SupplierRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=200"`
	LegalName    string `json:"legal_name" validate:"max=200"`
	TaxID        string `json:"tax_id" validate:"max=50"`
	Phone        string `json:"phone" validate:"max=50"`
	Email        string `json:"email" validate:"omitempty,email"`
	Address      string `json:"address" validate:"max=300"`
	City         string `json:"city" validate:"max=100"`
	State        string `json:"state" validate:"max=100"`
	PostalCode   string `json:"postal_code" validate:"max=20"`
	ContactName  string `json:"contact_name" validate:"max=200"`
	ContactPhone string `json:"contact_phone" validate:"max=50"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email"`
	PaymentTerms string `json:"payment_terms" validate:"max=200"`
	CreditDays   int    `json:"credit_days" validate:"min=0,max=365"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	LegalName    string    `json:"legal_name"`
	TaxID        string    `json:"tax_id"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	PostalCode   string    `json:"postal_code"`
	ContactName  string    `json:"contact_name"`
	ContactPhone string    `json:"contact_phone"`
	ContactEmail string    `json:"contact_email"`
	PaymentTerms string    `json:"payment_terms"`
	CreditDays   int       `json:"credit_days"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SupplierSupplyRequest body para POST /api/suppliers/:id/supplies.
type SupplierSupplyRequest struct {
	SupplyID    string          `json:"supply_id" validate:"required,uuid"`
	Price       decimal.Decimal `json:"price"`
	LeadDays    int             `json:"lead_days" validate:"min=0"`
	MinQuantity int64           `json:"min_quantity" validate:"omitempty,min=1"`
}

// SupplierSupplyResponse precio de un proveedor para un insumo.
type SupplierSupplyResponse struct {
	SupplierID   string          `json:"supplier_id"`
	SupplierName string          `json:"supplier_name"`
	SupplyID     string          `json:"supply_id"`
	SupplyName   string          `json:"supply_name"`
	Price        decimal.Decimal `json:"price"`
	LeadDays     int             `json:"lead_days"`
	MinQuantity  int64           `json:"min_quantity"`
}

// BestPriceDTO mejor oferta para un insumo más todas las alternativas.
type BestPriceDTO struct {
	SupplyID string                   `json:"supply_id"`
	Best     SupplierSupplyResponse   `json:"best"`
	Offers   []SupplierSupplyResponse `json:"offers"`
}

// SupplierReportDTO resumen de un proveedor.
type SupplierReportDTO struct {
	Supplier     SupplierResponse `json:"supplier"`
	SupplyCount  int              `json:"supply_count"`
	AveragePrice decimal.Decimal  `json:"average_price"`
	MinPrice     decimal.Decimal  `json:"min_price"`
	MaxPrice     decimal.Decimal  `json:"max_price"`
}
