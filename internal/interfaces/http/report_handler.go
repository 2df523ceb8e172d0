package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/negocio-api/internal/application/analytics"
	"github.com/jhoicas/negocio-api/internal/application/inventory"
)

// ReportHandler dashboard y reportes de lectura.
type ReportHandler struct {
	dashboard *analytics.DashboardUseCase
	alerts    *inventory.ReplenishmentUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(dashboard *analytics.DashboardUseCase, alerts *inventory.ReplenishmentUseCase) *ReportHandler {
	return &ReportHandler{dashboard: dashboard, alerts: alerts}
}

// Dashboard devuelve ventas de hoy y del mes, stock bajo y top 5 insumos.
// GET /api/reports/dashboard
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.dashboard.GetSummary(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// StockAlerts insumos bajo mínimo con cantidad sugerida de reposición.
// GET /api/reports/stock-alerts
func (h *ReportHandler) StockAlerts(c *fiber.Ctx) error {
	out, err := h.alerts.StockAlerts(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SalesByTender GET /api/reports/sales-by-tender?start=&end=
func (h *ReportHandler) SalesByTender(c *fiber.Ctx) error {
	out, err := h.dashboard.SalesByTender(c.UserContext(), c.Query("start"), c.Query("end"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Monthly contenido del reporte mensual. GET /api/reports/monthly?month=YYYY-MM (vacío = mes anterior).
func (h *ReportHandler) Monthly(c *fiber.Ctx) error {
	out, err := h.dashboard.MonthlyReport(c.UserContext(), c.Query("month"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
