package repository

import (
	"context"

	"github.com/jhoicas/negocio-api/internal/domain/entity"
)

// StockView insumo activo con su registro de stock (en cero si aún no existe).
type StockView struct {
	Supply    entity.Supply
	Stock     entity.StockRecord
	HasRecord bool
}

// StockRepository define el puerto para consultar/actualizar existencias por insumo.
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	// Get devuelve el registro o uno en cero si el insumo aún no tiene stock.
	Get(ctx context.Context, supplyID string) (*entity.StockRecord, error)
	// GetForUpdate crea la fila en cero si falta y la bloquea (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, supplyID string) (*entity.StockRecord, error)
	Upsert(ctx context.Context, stock *entity.StockRecord) error
	ListWithSupply(ctx context.Context) ([]StockView, error)
	// ListLowStock insumos activos con existencias <= mínimo; sin registro cuenta como 0.
	ListLowStock(ctx context.Context) ([]StockView, error)
}
