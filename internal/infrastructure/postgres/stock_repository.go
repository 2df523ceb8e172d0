package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/negocio-api/internal/domain/entity"
	"github.com/jhoicas/negocio-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el stock actual de un insumo; sin fila devuelve un registro en cero.
func (r *StockRepo) Get(ctx context.Context, supplyID string) (*entity.StockRecord, error) {
	query := `
		SELECT supply_id, on_hand, reserved, location, updated_at
		FROM stock WHERE supply_id = $1`
	var s entity.StockRecord
	err := r.q.QueryRow(ctx, query, supplyID).Scan(&s.SupplyID, &s.OnHand, &s.Reserved, &s.Location, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockRecord{SupplyID: supplyID}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate crea la fila en cero si falta y la bloquea (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(ctx context.Context, supplyID string) (*entity.StockRecord, error) {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock (supply_id, on_hand, reserved, updated_at)
		VALUES ($1, 0, 0, now())
		ON CONFLICT (supply_id) DO NOTHING`, supplyID)
	if err != nil {
		return nil, fmt.Errorf("ensure stock row: %w", err)
	}
	query := `
		SELECT supply_id, on_hand, reserved, location, updated_at
		FROM stock WHERE supply_id = $1
		FOR UPDATE`
	var s entity.StockRecord
	err = r.q.QueryRow(ctx, query, supplyID).Scan(&s.SupplyID, &s.OnHand, &s.Reserved, &s.Location, &s.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza existencias, reservas y ubicación del insumo.
func (r *StockRepo) Upsert(ctx context.Context, stock *entity.StockRecord) error {
	query := `
		INSERT INTO stock (supply_id, on_hand, reserved, location, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (supply_id)
		DO UPDATE SET on_hand = EXCLUDED.on_hand, reserved = EXCLUDED.reserved,
			location = EXCLUDED.location, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query, stock.SupplyID, stock.OnHand, stock.Reserved, stock.Location, stock.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// ListWithSupply todos los insumos activos con su stock (LEFT JOIN: sin fila = cero).
func (r *StockRepo) ListWithSupply(ctx context.Context) ([]repository.StockView, error) {
	return r.views(ctx, "")
}

// ListLowStock insumos activos con on_hand <= min_stock.
func (r *StockRepo) ListLowStock(ctx context.Context) ([]repository.StockView, error) {
	return r.views(ctx, "AND COALESCE(st.on_hand, 0) <= s.min_stock")
}

func (r *StockRepo) views(ctx context.Context, cond string) ([]repository.StockView, error) {
	query := `
		SELECT s.id, s.name, s.description, s.category, s.purchase_price, s.sale_price, s.min_stock,
		       s.unit_measure, s.barcode, s.lifecycle, s.created_at, s.updated_at,
		       st.supply_id IS NOT NULL, COALESCE(st.on_hand, 0), COALESCE(st.reserved, 0),
		       COALESCE(st.location, ''), COALESCE(st.updated_at, s.updated_at)
		FROM supplies s
		LEFT JOIN stock st ON st.supply_id = s.id
		WHERE s.lifecycle = 'active' ` + cond + `
		ORDER BY s.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	out := make([]repository.StockView, 0)
	for rows.Next() {
		var v repository.StockView
		var lifecycle string
		s := &v.Supply
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Category, &s.PurchasePrice, &s.SalePrice, &s.MinStock,
			&s.UnitMeasure, &s.Barcode, &lifecycle, &s.CreatedAt, &s.UpdatedAt,
			&v.HasRecord, &v.Stock.OnHand, &v.Stock.Reserved, &v.Stock.Location, &v.Stock.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		s.Lifecycle = entity.Lifecycle(lifecycle)
		v.Stock.SupplyID = s.ID
		out = append(out, v)
	}
	return out, rows.Err()
}
