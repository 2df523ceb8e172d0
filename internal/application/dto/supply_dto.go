package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSupplyRequest entrada para crear un insumo del catálogo.
type CreateSupplyRequest struct {
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	Description   string          `json:"description" validate:"max=1000"`
	Category      string          `json:"category" validate:"max=100"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	MinStock      int64           `json:"min_stock" validate:"min=0"`
	UnitMeasure   string          `json:"unit_measure" validate:"max=50"`
	Barcode       string          `json:"barcode" validate:"max=100"`
}

// UpdateSupplyRequest actualización parcial de un insumo.
type UpdateSupplyRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description   *string          `json:"description"`
	Category      *string          `json:"category"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	SalePrice     *decimal.Decimal `json:"sale_price"`
	MinStock      *int64           `json:"min_stock" validate:"omitempty,min=0"`
	UnitMeasure   *string          `json:"unit_measure"`
	Barcode       *string          `json:"barcode"`
}

// SupplyResponse salida de un insumo.
type SupplyResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	MinStock      int64           `json:"min_stock"`
	UnitMeasure   string          `json:"unit_measure"`
	Barcode       string          `json:"barcode"`
	Lifecycle     string          `json:"lifecycle"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// SupplyListResponse lista paginada de insumos.
type SupplyListResponse struct {
	Items []SupplyResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// DeleteSupplyResponse indica si el insumo se retiró o se borró físicamente.
type DeleteSupplyResponse struct {
	ID      string `json:"id"`
	Retired bool   `json:"retired"`
}
