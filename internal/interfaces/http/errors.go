package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/negocio-api/internal/application/dto"
	"github.com/jhoicas/negocio-api/internal/domain"
)

// respondError traduce errores de dominio a status y código HTTP.
func respondError(c *fiber.Ctx, err error) error {
	status, body := mapError(err)
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
	}
	return c.Status(status).JSON(body)
}

func mapError(err error) (int, dto.ErrorResponse) {
	var shortage *domain.InsufficientStockError
	switch {
	case errors.As(err, &shortage):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error(), Details: shortage.Lines}
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidQuantity):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidAmount):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "INVALID_AMOUNT", Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidTotal):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "INVALID_TOTAL", Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidAccountType):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "INVALID_ACCOUNT_TYPE", Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()}
	case errors.Is(err, domain.ErrDuplicateCode):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "DUPLICATE_CODE", Message: err.Error()}
	case errors.Is(err, domain.ErrSessionAlreadyOpen):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "SESSION_ALREADY_OPEN", Message: err.Error()}
	case errors.Is(err, domain.ErrHasMovements):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "HAS_MOVEMENTS", Message: err.Error()}
	case errors.Is(err, domain.ErrSessionClosed):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "SESSION_CLOSED", Message: err.Error()}
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: err.Error()}
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()}
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()}
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"}
	}
}

// ErrorHandler para fiber.Config: errores que escapan de los handlers (404 de ruta, body demasiado grande).
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: fe.Message})
	}
	return respondError(c, err)
}
