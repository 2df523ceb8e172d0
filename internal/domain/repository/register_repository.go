package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/negocio-api/internal/domain/entity"
)

// RegisterRepository define el puerto de cajas.
type RegisterRepository interface {
	Create(ctx context.Context, register *entity.Register) error
	GetByID(ctx context.Context, id string) (*entity.Register, error)
	// GetForUpdate bloquea la caja para serializar aperturas.
	GetForUpdate(ctx context.Context, id string) (*entity.Register, error)
	List(ctx context.Context) ([]*entity.Register, error)
}

// RegisterSessionRepository define el puerto de sesiones de caja.
type RegisterSessionRepository interface {
	Create(ctx context.Context, session *entity.RegisterSession) error
	GetByID(ctx context.Context, id string) (*entity.RegisterSession, error)
	GetForUpdate(ctx context.Context, id string) (*entity.RegisterSession, error)
	GetOpenByRegister(ctx context.Context, registerID string) (*entity.RegisterSession, error)
	// Close persiste totales, monto final, notas y estado cerrado.
	Close(ctx context.Context, session *entity.RegisterSession) error
	ListByRegister(ctx context.Context, registerID string, from, to time.Time) ([]*entity.RegisterSession, error)
}

// RegisterMovementRepository define el puerto de movimientos de caja (solo inserción).
type RegisterMovementRepository interface {
	Create(ctx context.Context, movement *entity.RegisterMovement) error
	ListBySession(ctx context.Context, sessionID string) ([]*entity.RegisterMovement, error)
	// SaleTotalsByTender suma los movimientos tipo venta de la sesión por medio de pago.
	SaleTotalsByTender(ctx context.Context, sessionID string) (map[string]decimal.Decimal, error)
}
