package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/negocio-api/internal/application/dto"
	"github.com/jhoicas/negocio-api/internal/application/inventory"
	"github.com/jhoicas/negocio-api/internal/domain/repository"
	"github.com/jhoicas/negocio-api/internal/infrastructure/export"
)

// StockHandler existencias y movimientos del Inventory Ledger.
type StockHandler struct {
	uc *inventory.StockLedgerUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *inventory.StockLedgerUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// List godoc
// @Summary      Existencias de todos los insumos activos
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StockResponse
// @Router       /api/stock [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListStock(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Insumos en o bajo su stock mínimo
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LowStockItem
// @Router       /api/stock/low-stock [get]
func (h *StockHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.ListLowStock(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Existencias de un insumo
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        supplyId  path  string  true  "ID del insumo"
// @Success      200  {object}  dto.StockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{supplyId} [get]
func (h *StockHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetStock(c.UserContext(), supplyParam(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Set godoc
// @Summary      Fijar cantidad en mano (genera movimiento adjust)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        supplyId  path  string  true  "ID del insumo"
// @Param        body      body  dto.SetStockRequest  true  "Cantidad y ubicación"
// @Success      200  {object}  dto.StockResponse
// @Router       /api/stock/{supplyId} [put]
func (h *StockHandler) Set(c *fiber.Ctx) error {
	var in dto.SetStockRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.SetStock(c.UserContext(), supplyParam(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RecordMovement godoc
// @Summary      Registrar movimiento de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        supplyId  path  string  true  "ID del insumo"
// @Param        body      body  dto.StockMovementRequest  true  "Movimiento"
// @Success      201  {object}  dto.StockMovementResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock/{supplyId}/movements [post]
func (h *StockHandler) RecordMovement(c *fiber.Ctx) error {
	var in dto.StockMovementRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.RecordMovement(c.UserContext(), inventory.MovementInput{
		SupplyID:  supplyParam(c),
		Kind:      in.Kind,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		Reference: in.Reference,
		UserID:    GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Reserve godoc
// @Summary      Reservar cantidad
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        supplyId  path  string  true  "ID del insumo"
// @Param        body      body  dto.StockQuantityRequest  true  "Cantidad"
// @Success      200  {object}  dto.StockResponse
// @Router       /api/stock/{supplyId}/reserve [post]
func (h *StockHandler) Reserve(c *fiber.Ctx) error {
	var in dto.StockQuantityRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Reserve(c.UserContext(), supplyParam(c), GetUserID(c), in.Quantity, in.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Release godoc
// @Summary      Liberar reserva
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        supplyId  path  string  true  "ID del insumo"
// @Param        body      body  dto.StockQuantityRequest  true  "Cantidad"
// @Success      200  {object}  dto.StockResponse
// @Router       /api/stock/{supplyId}/release [post]
func (h *StockHandler) Release(c *fiber.Ctx) error {
	var in dto.StockQuantityRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Release(c.UserContext(), supplyParam(c), GetUserID(c), in.Quantity, in.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Adjust godoc
// @Summary      Ajustar cantidad en mano a un valor absoluto
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        supplyId  path  string  true  "ID del insumo"
// @Param        body      body  dto.StockQuantityRequest  true  "Cantidad objetivo"
// @Success      200  {object}  dto.StockResponse
// @Router       /api/stock/{supplyId}/adjust [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.StockQuantityRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Adjust(c.UserContext(), supplyParam(c), GetUserID(c), in.Quantity, in.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Movements godoc
// @Summary      Historial de movimientos de stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        supply_id  query  string  false  "Filtrar por insumo"
// @Param        start      query  string  false  "Desde (YYYY-MM-DD)"
// @Param        end        query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200  {array}  dto.StockMovementResponse
// @Router       /api/stock/movements [get]
func (h *StockHandler) Movements(c *fiber.Ctx) error {
	supplyID := supplyParam(c)
	if supplyID == "" {
		supplyID = c.Query("supply_id")
	}
	filter, err := movementFilter(c, supplyID)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ListMovements(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte de inventario valorizado (JSON o xlsx)
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        format  query  string  false  "xlsx para descargar planilla"
// @Success      200  {object}  dto.StockReportDTO
// @Router       /api/stock/report [get]
func (h *StockHandler) Report(c *fiber.Ctx) error {
	out, err := h.uc.StockReport(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	if c.Query("format") != "xlsx" {
		return c.JSON(out)
	}
	data, err := export.StockReportXLSX(out)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="inventario-%s.xlsx"`, out.GeneratedAt.Format(dto.DateLayout)))
	return c.Send(data)
}

// supplyParam :supplyId en /stock, :id en /supplies/:id/...
func supplyParam(c *fiber.Ctx) string {
	if id := c.Params("supplyId"); id != "" {
		return id
	}
	return c.Params("id")
}

func movementFilter(c *fiber.Ctx, supplyID string) (repository.StockMovementFilter, error) {
	page := pageFromQuery(c)
	filter := repository.StockMovementFilter{SupplyID: supplyID, Limit: page.Limit, Offset: page.Offset}
	now := time.Now()
	if s := c.Query("start"); s != "" {
		from, err := dto.ParseDate(s, now)
		if err != nil {
			return filter, err
		}
		filter.From = &from
	}
	if s := c.Query("end"); s != "" {
		day, err := dto.ParseDate(s, now)
		if err != nil {
			return filter, err
		}
		to := dto.EndOfDay(day)
		filter.To = &to
	}
	return filter, nil
}
