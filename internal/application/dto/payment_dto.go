package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentRequest entrada para crear o actualizar un pago.
type PaymentRequest struct {
	Type          string          `json:"type" validate:"required,oneof=income expense"`
	Concept       string          `json:"concept" validate:"required,max=200"`
	Description   string          `json:"description" validate:"max=500"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method" validate:"omitempty,oneof=cash card transfer check other"`
	Reference     string          `json:"reference" validate:"max=200"`
	SupplierID    *string         `json:"supplier_id" validate:"omitempty,uuid"`
	CustomerName  string          `json:"customer_name" validate:"max=200"`
	CustomerEmail string          `json:"customer_email" validate:"omitempty,email"`
	State         string          `json:"state" validate:"omitempty,oneof=pending completed cancelled refunded"`
	PaidAt        *time.Time      `json:"paid_at"`
	DueAt         *time.Time      `json:"due_at"`
	Notes         string          `json:"notes" validate:"max=500"`
}

// PaymentResponse salida de un pago.
type PaymentResponse struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Concept       string          `json:"concept"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	Reference     string          `json:"reference"`
	SupplierID    *string         `json:"supplier_id,omitempty"`
	SupplierName  string          `json:"supplier_name,omitempty"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	State         string          `json:"state"`
	PaidAt        time.Time       `json:"paid_at"`
	DueAt         *time.Time      `json:"due_at,omitempty"`
	CreatedBy     string          `json:"created_by"`
	Notes         string          `json:"notes"`
}

// PaymentCategoryResponse categoría de pago.
type PaymentCategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// PaymentTotalDTO agregado de pagos.
type PaymentTotalDTO struct {
	Type   string          `json:"type"`
	Method string          `json:"method,omitempty"`
	Count  int             `json:"count"`
	Total  decimal.Decimal `json:"total"`
}

// PaymentReportDTO respuesta de GET /api/payments/report.
type PaymentReportDTO struct {
	Start        string            `json:"start"`
	End          string            `json:"end"`
	ByType       []PaymentTotalDTO `json:"by_type"`
	ByMethod     []PaymentTotalDTO `json:"by_method"`
	TotalIncome  decimal.Decimal   `json:"total_income"`
	TotalExpense decimal.Decimal   `json:"total_expense"`
	Net          decimal.Decimal   `json:"net"`
}
