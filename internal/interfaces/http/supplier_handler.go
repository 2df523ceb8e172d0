package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/negocio-api/internal/application/dto"
	"github.com/jhoicas/negocio-api/internal/application/usecase"
)

// SupplierHandler proveedores y sus ofertas de insumos.
type SupplierHandler struct {
	uc *usecase.SupplierUseCase
}

// NewSupplierHandler construye el handler.
func NewSupplierHandler(uc *usecase.SupplierUseCase) *SupplierHandler {
	return &SupplierHandler{uc: uc}
}

// Create godoc
// @Summary      Crear proveedor
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SupplierRequest  true  "Datos del proveedor"
// @Success      201   {object}  dto.SupplierResponse
// @Router       /api/suppliers [post]
func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	var in dto.SupplierRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar o buscar proveedores activos
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        q  query  string  false  "Nombre, contacto o email"
// @Success      200  {array}  dto.SupplierResponse
// @Router       /api/suppliers [get]
// @Router       /api/suppliers/search [get]
func (h *SupplierHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener proveedor
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proveedor"
// @Success      200  {object}  dto.SupplierResponse
// @Router       /api/suppliers/{id} [get]
func (h *SupplierHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar proveedor
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del proveedor"
// @Param        body  body  dto.SupplierRequest  true  "Datos del proveedor"
// @Success      200   {object}  dto.SupplierResponse
// @Router       /api/suppliers/{id} [put]
func (h *SupplierHandler) Update(c *fiber.Ctx) error {
	var in dto.SupplierRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Desactivar proveedor
// @Tags         suppliers
// @Security     Bearer
// @Param        id   path  string  true  "ID del proveedor"
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/suppliers/{id} [delete]
func (h *SupplierHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "proveedor eliminado"})
}

// Supplies godoc
// @Summary      Insumos que ofrece el proveedor
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proveedor"
// @Success      200  {array}  dto.SupplierSupplyResponse
// @Router       /api/suppliers/{id}/supplies [get]
func (h *SupplierHandler) Supplies(c *fiber.Ctx) error {
	out, err := h.uc.Supplies(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddSupply godoc
// @Summary      Asociar insumo con precio (actualiza si ya existe)
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del proveedor"
// @Param        body  body  dto.SupplierSupplyRequest  true  "Insumo y precio"
// @Success      201   {object}  dto.SupplierSupplyResponse
// @Router       /api/suppliers/{id}/supplies [post]
func (h *SupplierHandler) AddSupply(c *fiber.Ctx) error {
	var in dto.SupplierSupplyRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.AddSupply(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RemoveSupply godoc
// @Summary      Quitar insumo del proveedor
// @Tags         suppliers
// @Security     Bearer
// @Param        id        path  string  true  "ID del proveedor"
// @Param        supplyId  path  string  true  "ID del insumo"
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/suppliers/{id}/supplies/{supplyId} [delete]
func (h *SupplierHandler) RemoveSupply(c *fiber.Ctx) error {
	if err := h.uc.RemoveSupply(c.UserContext(), c.Params("id"), c.Params("supplyId")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "insumo desasociado"})
}

// BestPrice godoc
// @Summary      Ofertas del insumo, la más barata primero
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        supplyId  path  string  true  "ID del insumo"
// @Success      200  {object}  dto.BestPriceDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/suppliers/supply/{supplyId}/best-price [get]
func (h *SupplierHandler) BestPrice(c *fiber.Ctx) error {
	out, err := h.uc.BestPrice(c.UserContext(), c.Params("supplyId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte de un proveedor
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proveedor"
// @Success      200  {object}  dto.SupplierReportDTO
// @Router       /api/suppliers/{id}/report [get]
func (h *SupplierHandler) Report(c *fiber.Ctx) error {
	out, err := h.uc.Report(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ReportAll godoc
// @Summary      Reporte de todos los proveedores
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SupplierReportDTO
// @Router       /api/suppliers/report [get]
func (h *SupplierHandler) ReportAll(c *fiber.Ctx) error {
	out, err := h.uc.ReportAll(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
