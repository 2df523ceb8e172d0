package repository

import (
	"context"
	"time"

	"github.com/jhoicas/negocio-api/internal/domain/entity"
)

// StockMovementFilter filtros del historial de movimientos.
type StockMovementFilter struct {
	SupplyID string
	From     *time.Time
	To       *time.Time
	Limit    int
	Offset   int
}

// StockMovementRepository define el puerto del historial de stock (solo inserción).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	List(ctx context.Context, filter StockMovementFilter) ([]*entity.StockMovement, error)
}
