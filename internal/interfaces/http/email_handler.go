package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/negocio-api/internal/application/dto"
	"github.com/jhoicas/negocio-api/internal/application/notification"
)

// EmailHandler configuración y prueba del email mensual.
type EmailHandler struct {
	uc *notification.EmailReportUseCase
}

// NewEmailHandler construye el handler.
func NewEmailHandler(uc *notification.EmailReportUseCase) *EmailHandler {
	return &EmailHandler{uc: uc}
}

// GetConfig godoc
// @Summary      Configuración del email mensual
// @Tags         email
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.EmailConfigResponse
// @Router       /api/email/config [get]
func (h *EmailHandler) GetConfig(c *fiber.Ctx) error {
	out, err := h.uc.GetConfig(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Configure godoc
// @Summary      Guardar destinatario, día de envío y estado
// @Tags         email
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EmailConfigRequest  true  "Configuración"
// @Success      200   {object}  dto.EmailConfigResponse
// @Router       /api/email/config [post]
func (h *EmailHandler) Configure(c *fiber.Ctx) error {
	var in dto.EmailConfigRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Configure(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SendTest godoc
// @Summary      Enviar email de prueba con el reporte del mes en curso
// @Tags         email
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TestEmailRequest  true  "Destinatario"
// @Success      200   {object}  dto.TestEmailResponse
// @Router       /api/email/test [post]
func (h *EmailHandler) SendTest(c *fiber.Ctx) error {
	var in dto.TestEmailRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.SendTest(c.UserContext(), in.Recipient)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
