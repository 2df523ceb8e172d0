package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SetStockRequest body para PUT /api/stock/:supplyId.
type SetStockRequest struct {
	Quantity int64  `json:"quantity" validate:"min=0"`
	Location string `json:"location" validate:"max=200"`
}

// StockMovementRequest body para POST /api/stock/:supplyId/movements.
type StockMovementRequest struct {
	Kind      string `json:"kind" validate:"required,oneof=in out adjust reserve release"`
	Quantity  int64  `json:"quantity"`
	Reason    string `json:"reason" validate:"max=500"`
	Reference string `json:"reference" validate:"max=200"`
}

// StockQuantityRequest body para reservas, liberaciones y ajustes.
type StockQuantityRequest struct {
	Quantity int64  `json:"quantity"`
	Reason   string `json:"reason" validate:"max=500"`
}

// StockResponse existencias de un insumo.
type StockResponse struct {
	SupplyID     string    `json:"supply_id"`
	SupplyName   string    `json:"supply_name,omitempty"`
	Category     string    `json:"category,omitempty"`
	UnitMeasure  string    `json:"unit_measure,omitempty"`
	MinStock     int64     `json:"min_stock"`
	OnHand       int64     `json:"on_hand"`
	Reserved     int64     `json:"reserved"`
	Available    int64     `json:"available"`
	Location     string    `json:"location"`
	LowStock     bool      `json:"low_stock"`
	OverReserved bool      `json:"over_reserved"`
	UpdatedAt    time.Time `json:"updated_at"`

	PurchasePrice decimal.Decimal `json:"purchase_price"`
	StockValue    decimal.Decimal `json:"stock_value"` // OnHand * PurchasePrice
}

// LowStockItem alerta de stock bajo.
type LowStockItem struct {
	SupplyID    string `json:"supply_id"`
	SupplyName  string `json:"supply_name"`
	Category    string `json:"category"`
	OnHand      int64  `json:"on_hand"`
	MinStock    int64  `json:"min_stock"`
	Deficit     int64  `json:"deficit"`
	HasRecord   bool   `json:"has_record"`
	UnitMeasure string `json:"unit_measure"`
}

// StockMovementResponse movimiento del historial.
type StockMovementResponse struct {
	ID             string    `json:"id"`
	SupplyID       string    `json:"supply_id"`
	SupplyName     string    `json:"supply_name,omitempty"`
	Kind           string    `json:"kind"`
	Quantity       int64     `json:"quantity"`
	QuantityBefore int64     `json:"quantity_before"`
	QuantityAfter  int64     `json:"quantity_after"`
	Reason         string    `json:"reason"`
	Reference      string    `json:"reference"`
	CreatedBy      string    `json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
}

// StockReportDTO resumen del inventario valorizado a precio de compra.
type StockReportDTO struct {
	TotalItems     int             `json:"total_items"`
	TotalUnits     int64           `json:"total_units"`
	TotalReserved  int64           `json:"total_reserved"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
	LowStockCount  int             `json:"low_stock_count"`
	Items          []StockResponse `json:"items"`
	GeneratedAt    time.Time       `json:"generated_at"`
}
