package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSummaryDTO respuesta de GET /api/reports/dashboard.
type DashboardSummaryDTO struct {
	TodaySales    decimal.Decimal `json:"today_sales"`
	TodayCount    int             `json:"today_count"`
	MonthlySales  decimal.Decimal `json:"monthly_sales"`
	MonthlyCount  int             `json:"monthly_count"`
	LowStockCount int             `json:"low_stock_count"`
	TopSupplies   []TopSupplyDTO  `json:"top_supplies"`
	DateLabel     string          `json:"date_label"` // ej: "Febrero 2026"
}

// TopSupplyDTO insumo más vendido del periodo.
type TopSupplyDTO struct {
	SupplyID   string `json:"supply_id"`
	Name       string `json:"name"`
	SalesCount int    `json:"sales_count"`
	Units      int64  `json:"units"`
}

// MonthlyReportDTO contenido del reporte mensual por email.
type MonthlyReportDTO struct {
	Period      string            `json:"period"`
	Start       string            `json:"start"`
	End         string            `json:"end"`
	SalesCount  int               `json:"sales_count"`
	SalesTotal  decimal.Decimal   `json:"sales_total"`
	Payments    []PaymentTotalDTO `json:"payments"`
	LowStock    []LowStockItem    `json:"low_stock"`
	TopSupplies []TopSupplyDTO    `json:"top_supplies"`
	GeneratedAt time.Time         `json:"generated_at"`
}

// EmailConfigRequest body para POST /api/email/config.
type EmailConfigRequest struct {
	Recipient string `json:"recipient" validate:"required,email"`
	SendDay   int    `json:"send_day" validate:"required,min=1,max=31"`
	Enabled   bool   `json:"enabled"`
}

// EmailConfigResponse configuración actual del email mensual.
type EmailConfigResponse struct {
	Recipient   string     `json:"recipient"`
	SendDay     int        `json:"send_day"`
	Enabled     bool       `json:"enabled"`
	LastUpdated *time.Time `json:"last_updated,omitempty"`
}

// TestEmailRequest body para POST /api/email/test.
type TestEmailRequest struct {
	Recipient string `json:"recipient" validate:"required,email"`
}

// TestEmailResponse resultado del envío de prueba con vista previa HTML.
type TestEmailResponse struct {
	Message   string `json:"message"`
	Recipient string `json:"recipient"`
	Queued    bool   `json:"queued"`
	Preview   string `json:"preview"`
}

// StockAlertDTO alerta de stock bajo con la reposición sugerida y el proveedor más barato.
type StockAlertDTO struct {
	LowStockItem
	SuggestedOrderQty  int64            `json:"suggested_order_qty"`
	BestSupplierID     string           `json:"best_supplier_id,omitempty"`
	BestSupplierName   string           `json:"best_supplier_name,omitempty"`
	BestPrice          *decimal.Decimal `json:"best_price,omitempty"`
	EstimatedOrderCost decimal.Decimal  `json:"estimated_order_cost"`
	Priority           int              `json:"priority"`
}
