package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email o usuario ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInvalidQuantity    = errors.New("la cantidad debe ser mayor a cero")
	ErrInvalidAmount      = errors.New("el monto debe ser mayor a cero")
	ErrInvalidTotal       = errors.New("el total de la venta debe ser mayor a cero")
	ErrInvalidAccountType = errors.New("tipo de cuenta inválido")
	ErrStorage            = errors.New("error de almacenamiento")
)

// Conflictos específicos; errors.Is(err, ErrConflict) se cumple para todos.
var (
	ErrDuplicateCode      = fmt.Errorf("%w: el código de cuenta ya existe", ErrConflict)
	ErrSessionAlreadyOpen = fmt.Errorf("%w: la caja ya tiene una sesión abierta", ErrConflict)
	ErrSessionClosed      = fmt.Errorf("%w: la sesión de caja no está abierta", ErrConflict)
	ErrHasMovements       = fmt.Errorf("%w: la cuenta tiene movimientos registrados", ErrConflict)
)

// Storage envuelve un fallo del almacenamiento como ErrStorage conservando la causa.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}

// StockShortage línea de venta o movimiento sin existencias suficientes.
type StockShortage struct {
	SupplyID   string `json:"supply_id"`
	SupplyName string `json:"supply_name"`
	Requested  int64  `json:"requested"`
	Available  int64  `json:"available"`
}

// InsufficientStockError agrupa todas las líneas que no alcanzan.
type InsufficientStockError struct {
	Lines []StockShortage
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, 0, len(e.Lines))
	for _, l := range e.Lines {
		name := l.SupplyName
		if name == "" {
			name = l.SupplyID
		}
		parts = append(parts, fmt.Sprintf("%s (solicitado %d, disponible %d)", name, l.Requested, l.Available))
	}
	return ErrInsufficientStock.Error() + ": " + strings.Join(parts, ", ")
}

// Is permite errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
