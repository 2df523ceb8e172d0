package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/negocio-api/internal/application/dto"
	"github.com/jhoicas/negocio-api/internal/application/register"
)

// salesPDF lo implementa *pdf.ReportGenerator.
type salesPDF interface {
	SalesReportPDF(ctx context.Context, report *dto.SalesReportDTO) ([]byte, error)
}

// CajaHandler cajas, sesiones, movimientos de caja y ventas.
type CajaHandler struct {
	sessions *register.SessionUseCase
	sales    *register.SaleUseCase
	pdf      salesPDF
}

// NewCajaHandler construye el handler. pdf puede ser nil (format=pdf responde 400).
func NewCajaHandler(sessions *register.SessionUseCase, sales *register.SaleUseCase, pdf salesPDF) *CajaHandler {
	return &CajaHandler{sessions: sessions, sales: sales, pdf: pdf}
}

// CreateRegister godoc
// @Summary      Crear caja
// @Tags         caja
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRegisterRequest  true  "Nombre y ubicación"
// @Success      201   {object}  dto.RegisterResponse
// @Router       /api/caja/registers [post]
func (h *CajaHandler) CreateRegister(c *fiber.Ctx) error {
	var in dto.CreateRegisterRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.sessions.CreateRegister(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListRegisters godoc
// @Summary      Listar cajas
// @Tags         caja
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.RegisterResponse
// @Router       /api/caja/registers [get]
func (h *CajaHandler) ListRegisters(c *fiber.Ctx) error {
	out, err := h.sessions.ListRegisters(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetRegister godoc
// @Summary      Obtener caja
// @Tags         caja
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la caja"
// @Success      200  {object}  dto.RegisterResponse
// @Router       /api/caja/registers/{id} [get]
func (h *CajaHandler) GetRegister(c *fiber.Ctx) error {
	out, err := h.sessions.GetRegister(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ActiveSession godoc
// @Summary      Sesión abierta de la caja
// @Tags         caja
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la caja"
// @Success      200  {object}  dto.SessionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/caja/registers/{id}/active-session [get]
func (h *CajaHandler) ActiveSession(c *fiber.Ctx) error {
	out, err := h.sessions.ActiveSession(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RegisterReport godoc
// @Summary      Reporte de la caja: sesiones y ventas del rango
// @Tags         caja
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID de la caja"
// @Param        start  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        end    query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200  {object}  dto.RegisterReportDTO
// @Router       /api/caja/registers/{id}/report [get]
func (h *CajaHandler) RegisterReport(c *fiber.Ctx) error {
	out, err := h.sales.RegisterReport(c.UserContext(), c.Params("id"), c.Query("start"), c.Query("end"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// OpenSession godoc
// @Summary      Abrir sesión de caja
// @Tags         caja
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OpenSessionRequest  true  "Caja y monto inicial"
// @Success      201   {object}  dto.SessionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/caja/sessions/open [post]
func (h *CajaHandler) OpenSession(c *fiber.Ctx) error {
	var in dto.OpenSessionRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.sessions.OpenSession(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CloseSession godoc
// @Summary      Cerrar sesión de caja
// @Tags         caja
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la sesión"
// @Param        body  body  dto.CloseSessionRequest  true  "Monto contado"
// @Success      200   {object}  dto.SessionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/caja/sessions/{id}/close [put]
func (h *CajaHandler) CloseSession(c *fiber.Ctx) error {
	var in dto.CloseSessionRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.sessions.CloseSession(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SessionSales godoc
// @Summary      Ventas de la sesión
// @Tags         caja
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la sesión"
// @Success      200  {array}  dto.SaleResponse
// @Router       /api/caja/sessions/{id}/sales [get]
func (h *CajaHandler) SessionSales(c *fiber.Ctx) error {
	out, err := h.sales.ListSales(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SessionMovements godoc
// @Summary      Movimientos de caja de la sesión
// @Tags         caja
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la sesión"
// @Success      200  {array}  dto.RegisterMovementResponse
// @Router       /api/caja/sessions/{id}/movements [get]
func (h *CajaHandler) SessionMovements(c *fiber.Ctx) error {
	out, err := h.sessions.ListMovements(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddMovement godoc
// @Summary      Registrar ingreso, egreso o devolución de caja
// @Tags         caja
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.RegisterMovementResponse
// @Router       /api/caja/movements [post]
func (h *CajaHandler) AddMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.sessions.AddMovement(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateSale godoc
// @Summary      Registrar venta
// @Tags         caja
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Sesión, medio de pago y líneas"
// @Success      201   {object}  dto.SaleResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/caja/sales [post]
func (h *CajaHandler) CreateSale(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.sales.CreateSale(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetSale godoc
// @Summary      Obtener venta con sus líneas
// @Tags         caja
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Router       /api/caja/sales/{id} [get]
func (h *CajaHandler) GetSale(c *fiber.Ctx) error {
	out, err := h.sales.GetSale(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DailySales godoc
// @Summary      Ventas del día
// @Tags         caja
// @Security     Bearer
// @Produce      json
// @Param        date  query  string  false  "Día (YYYY-MM-DD), por defecto hoy"
// @Success      200  {object}  dto.DailySalesDTO
// @Router       /api/caja/sales/daily [get]
func (h *CajaHandler) DailySales(c *fiber.Ctx) error {
	out, err := h.sales.DailySales(c.UserContext(), c.Query("date"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SalesReport godoc
// @Summary      Reporte de ventas por día (JSON o PDF)
// @Tags         caja
// @Security     Bearer
// @Produce      json
// @Produce      application/pdf
// @Param        start   query  string  false  "Desde (YYYY-MM-DD)"
// @Param        end     query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        format  query  string  false  "pdf para descargar"
// @Success      200  {object}  dto.SalesReportDTO
// @Router       /api/caja/sales/report [get]
func (h *CajaHandler) SalesReport(c *fiber.Ctx) error {
	out, err := h.sales.SalesReport(c.UserContext(), c.Query("start"), c.Query("end"))
	if err != nil {
		return respondError(c, err)
	}
	if c.Query("format") != "pdf" {
		return c.JSON(out)
	}
	if h.pdf == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "PDF_UNAVAILABLE", Message: "generación de PDF no configurada"})
	}
	data, err := h.pdf.SalesReportPDF(c.UserContext(), out)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="ventas-%s-%s.pdf"`, out.Start, out.End))
	return c.Send(data)
}
