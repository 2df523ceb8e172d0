package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateRegisterRequest entrada para crear una caja.
type CreateRegisterRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"max=300"`
	Location    string `json:"location" validate:"max=200"`
}

// RegisterResponse salida de una caja.
type RegisterResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	CreatedAt   time.Time `json:"created_at"`
}

// OpenSessionRequest body para POST /api/caja/sessions/open.
type OpenSessionRequest struct {
	RegisterID    string          `json:"register_id" validate:"required,uuid"`
	OpeningAmount decimal.Decimal `json:"opening_amount"`
	Notes         string          `json:"notes" validate:"max=500"`
}

// CloseSessionRequest body para PUT /api/caja/sessions/:id/close.
type CloseSessionRequest struct {
	ClosingAmount decimal.Decimal `json:"closing_amount"`
	Notes         string          `json:"notes" validate:"max=500"`
}

// SessionResponse salida de una sesión de caja.
type SessionResponse struct {
	ID            string          `json:"id"`
	RegisterID    string          `json:"register_id"`
	OpenedBy      string          `json:"opened_by"`
	OpenedAt      time.Time       `json:"opened_at"`
	ClosedAt      *time.Time      `json:"closed_at,omitempty"`
	OpeningAmount decimal.Decimal `json:"opening_amount"`
	ClosingAmount decimal.Decimal `json:"closing_amount"`
	TotalSales    decimal.Decimal `json:"total_sales"`
	TotalCash     decimal.Decimal `json:"total_cash"`
	TotalCard     decimal.Decimal `json:"total_card"`
	TotalTransfer decimal.Decimal `json:"total_transfer"`
	State         string          `json:"state"`
	OpeningNotes  string          `json:"opening_notes"`
	ClosingNotes  string          `json:"closing_notes"`
}

// RegisterMovementRequest body para POST /api/caja/movements.
type RegisterMovementRequest struct {
	SessionID string          `json:"session_id" validate:"required,uuid"`
	Kind      string          `json:"kind" validate:"required,oneof=in out refund"`
	Amount    decimal.Decimal `json:"amount"`
	Concept   string          `json:"concept" validate:"required,max=300"`
	Reference string          `json:"reference" validate:"max=200"`
	Tender    string          `json:"tender" validate:"omitempty,oneof=cash card transfer mixed"`
}

// RegisterMovementResponse movimiento de caja.
type RegisterMovementResponse struct {
	ID        string          `json:"id"`
	SessionID string          `json:"session_id"`
	Kind      string          `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	Concept   string          `json:"concept"`
	Reference string          `json:"reference"`
	Tender    string          `json:"tender"`
	SaleID    *string         `json:"sale_id,omitempty"`
	CreatedBy string          `json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
}

// SaleLineRequest línea de venta.
type SaleLineRequest struct {
	SupplyID  string          `json:"supply_id" validate:"required,uuid"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
}

// CreateSaleRequest body para POST /api/caja/sales.
type CreateSaleRequest struct {
	SessionID     string            `json:"session_id" validate:"required,uuid"`
	Lines         []SaleLineRequest `json:"lines" validate:"required,min=1,dive"`
	Tender        string            `json:"tender" validate:"required"`
	Discount      decimal.Decimal   `json:"discount"`
	Tax           decimal.Decimal   `json:"tax"`
	CustomerName  string            `json:"customer_name" validate:"max=200"`
	CustomerEmail string            `json:"customer_email" validate:"max=200"`
	CustomerPhone string            `json:"customer_phone" validate:"max=50"`
	Notes         string            `json:"notes" validate:"max=500"`
}

// SaleLineResponse línea de venta.
type SaleLineResponse struct {
	SupplyID   string          `json:"supply_id"`
	SupplyName string          `json:"supply_name"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Discount   decimal.Decimal `json:"discount"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID            string             `json:"id"`
	Number        string             `json:"number"`
	SessionID     string             `json:"session_id"`
	CustomerName  string             `json:"customer_name"`
	CustomerEmail string             `json:"customer_email"`
	CustomerPhone string             `json:"customer_phone"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Discount      decimal.Decimal    `json:"discount"`
	Tax           decimal.Decimal    `json:"tax"`
	Total         decimal.Decimal    `json:"total"`
	Tender        string             `json:"tender"`
	State         string             `json:"state"`
	CreatedBy     string             `json:"created_by"`
	Notes         string             `json:"notes"`
	CreatedAt     time.Time          `json:"created_at"`
	Lines         []SaleLineResponse `json:"lines,omitempty"`
}

// DailySalesRow agregado diario de ventas completadas.
type DailySalesRow struct {
	Date    string          `json:"date"`
	Count   int             `json:"count"`
	Total   decimal.Decimal `json:"total"`
	Average decimal.Decimal `json:"average"`
}

// TenderTotalDTO ventas por medio de pago.
type TenderTotalDTO struct {
	Tender string          `json:"tender"`
	Count  int             `json:"count"`
	Total  decimal.Decimal `json:"total"`
}

// DailySalesDTO respuesta de GET /api/caja/sales/daily.
type DailySalesDTO struct {
	Date     string           `json:"date"`
	Count    int              `json:"count"`
	Total    decimal.Decimal  `json:"total"`
	Average  decimal.Decimal  `json:"average"`
	ByTender []TenderTotalDTO `json:"by_tender"`
}

// SalesReportDTO respuesta de GET /api/caja/sales/report.
type SalesReportDTO struct {
	Start   string          `json:"start"`
	End     string          `json:"end"`
	Days    []DailySalesRow `json:"days"`
	Count   int             `json:"count"`
	Total   decimal.Decimal `json:"total"`
	Average decimal.Decimal `json:"average"`
}

// RegisterReportDTO respuesta de GET /api/caja/registers/:id/report.
type RegisterReportDTO struct {
	Register RegisterResponse  `json:"register"`
	Start    string            `json:"start"`
	End      string            `json:"end"`
	Sessions []SessionResponse `json:"sessions"`
	Sales    SalesReportDTO    `json:"sales"`
	ByTender []TenderTotalDTO  `json:"by_tender"`
}
