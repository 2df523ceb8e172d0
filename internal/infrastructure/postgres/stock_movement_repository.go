package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/negocio-api/internal/domain/entity"
	"github.com/jhoicas/negocio-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo historial de stock sobre PostgreSQL (solo inserción).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento de stock.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, supply_id, kind, quantity, quantity_before, quantity_after, reason, reference, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.SupplyID, m.Kind, m.Quantity, m.QuantityBefore, m.QuantityAfter,
		m.Reason, m.Reference, m.CreatedBy, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// List más recientes primero, con el nombre del insumo.
func (r *StockMovementRepo) List(ctx context.Context, filter repository.StockMovementFilter) ([]*entity.StockMovement, error) {
	query := `
		SELECT m.id, m.supply_id, COALESCE(s.name, ''), m.kind, m.quantity, m.quantity_before, m.quantity_after,
		       m.reason, m.reference, m.created_by, m.created_at
		FROM stock_movements m
		LEFT JOIN supplies s ON s.id = m.supply_id
		WHERE ($1::uuid IS NULL OR m.supply_id = $1)
		  AND ($2::timestamptz IS NULL OR m.created_at >= $2)
		  AND ($3::timestamptz IS NULL OR m.created_at <= $3)
		ORDER BY m.created_at DESC
		LIMIT $4 OFFSET $5`
	var supplyID *string
	if filter.SupplyID != "" {
		supplyID = &filter.SupplyID
	}
	rows, err := r.q.Query(ctx, query, supplyID, filter.From, filter.To, nullIfZero(filter.Limit), filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.StockMovement, 0)
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.SupplyID, &m.SupplyName, &m.Kind, &m.Quantity, &m.QuantityBefore, &m.QuantityAfter,
			&m.Reason, &m.Reference, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
