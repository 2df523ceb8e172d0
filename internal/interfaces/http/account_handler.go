package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/negocio-api/internal/application/accounting"
	"github.com/jhoicas/negocio-api/internal/application/dto"
)

// AccountHandler plan de cuentas, movimientos y estados contables.
type AccountHandler struct {
	uc *accounting.LedgerUseCase
}

// NewAccountHandler construye el handler.
func NewAccountHandler(uc *accounting.LedgerUseCase) *AccountHandler {
	return &AccountHandler{uc: uc}
}

// Create godoc
// @Summary      Crear cuenta
// @Tags         accounts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAccountRequest  true  "Datos de la cuenta"
// @Success      201   {object}  dto.AccountResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/accounts [post]
func (h *AccountHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAccountRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.CreateAccount(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar cuentas activas
// @Tags         accounts
// @Security     Bearer
// @Produce      json
// @Param        type  query  string  false  "asset, liability, equity, income, expense"
// @Success      200  {array}  dto.AccountResponse
// @Router       /api/accounts [get]
func (h *AccountHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListAccounts(c.UserContext(), c.Query("type"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener cuenta
// @Tags         accounts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la cuenta"
// @Success      200  {object}  dto.AccountResponse
// @Router       /api/accounts/{id} [get]
func (h *AccountHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetAccount(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar cuenta
// @Tags         accounts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la cuenta"
// @Param        body  body  dto.UpdateAccountRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.AccountResponse
// @Router       /api/accounts/{id} [put]
func (h *AccountHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateAccountRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.UpdateAccount(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Desactivar cuenta sin movimientos
// @Tags         accounts
// @Security     Bearer
// @Param        id   path  string  true  "ID de la cuenta"
// @Success      200  {object}  dto.MessageResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/accounts/{id} [delete]
func (h *AccountHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteAccount(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "cuenta eliminada"})
}

// RecordMovement godoc
// @Summary      Registrar movimiento contable
// @Tags         accounts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la cuenta"
// @Param        body  body  dto.AccountMovementRequest  true  "Débito o crédito"
// @Success      201   {object}  dto.AccountMovementResponse
// @Router       /api/accounts/{id}/movements [post]
func (h *AccountHandler) RecordMovement(c *fiber.Ctx) error {
	var in dto.AccountMovementRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.RecordMovement(c.UserContext(), accounting.MovementInput{
		AccountID:      c.Params("id"),
		Side:           in.Side,
		Amount:         in.Amount,
		Concept:        in.Concept,
		Reference:      in.Reference,
		Document:       in.Document,
		JournalEntryID: in.JournalEntryID,
		UserID:         GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Movements godoc
// @Summary      Movimientos de una cuenta, más recientes primero
// @Tags         accounts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la cuenta"
// @Success      200  {array}  dto.AccountMovementResponse
// @Router       /api/accounts/{id}/movements [get]
func (h *AccountHandler) Movements(c *fiber.Ctx) error {
	out, err := h.uc.ListMovements(c.UserContext(), c.Params("id"), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// BalanceSheet godoc
// @Summary      Balance general
// @Tags         accounts
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.BalanceSheetDTO
// @Router       /api/accounts/balance-sheet [get]
func (h *AccountHandler) BalanceSheet(c *fiber.Ctx) error {
	out, err := h.uc.BalanceSheet(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// IncomeStatement godoc
// @Summary      Estado de resultados del período
// @Tags         accounts
// @Security     Bearer
// @Produce      json
// @Param        start  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        end    query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200  {object}  dto.IncomeStatementDTO
// @Router       /api/accounts/income-statement [get]
func (h *AccountHandler) IncomeStatement(c *fiber.Ctx) error {
	out, err := h.uc.IncomeStatement(c.UserContext(), c.Query("start"), c.Query("end"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Resumen de cuentas por tipo
// @Tags         accounts
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AccountTypeSummary
// @Router       /api/accounts/report [get]
func (h *AccountHandler) Report(c *fiber.Ctx) error {
	out, err := h.uc.AccountsReport(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
