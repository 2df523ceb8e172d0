package repository

import (
	"context"

	"github.com/jhoicas/negocio-api/internal/domain/entity"
)

// SupplyFilter filtros de listado del catálogo (solo insumos activos).
type SupplyFilter struct {
	Query    string // nombre, descripción o código de barras (ILIKE)
	Category string
	Limit    int
	Offset   int
}

// SupplyRepository define el puerto de persistencia para Supply (DIP).
// Las lecturas excluyen insumos retirados.
type SupplyRepository interface {
	Create(ctx context.Context, supply *entity.Supply) error
	GetByID(ctx context.Context, id string) (*entity.Supply, error)
	Update(ctx context.Context, supply *entity.Supply) error
	List(ctx context.Context, filter SupplyFilter) ([]*entity.Supply, error)
	Categories(ctx context.Context) ([]string, error)
	// IsReferenced indica si algún registro de stock o línea de venta apunta al insumo.
	IsReferenced(ctx context.Context, id string) (bool, error)
	Retire(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
