package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/negocio-api/internal/domain/entity"
	"github.com/jhoicas/negocio-api/internal/domain/repository"
)

var _ repository.SupplyRepository = (*SupplyRepo)(nil)

// SupplyRepo implementación del puerto SupplyRepository sobre PostgreSQL (usable con pool o tx).
type SupplyRepo struct {
	q Querier
}

// NewSupplyRepository construye el adaptador del catálogo. Pasar pool o tx (Querier).
func NewSupplyRepository(q Querier) *SupplyRepo {
	return &SupplyRepo{q: q}
}

const supplyColumns = `id, name, description, category, purchase_price, sale_price, min_stock, unit_measure, barcode, lifecycle, created_at, updated_at`

func scanSupply(row pgx.Row) (*entity.Supply, error) {
	var s entity.Supply
	var lifecycle string
	err := row.Scan(&s.ID, &s.Name, &s.Description, &s.Category, &s.PurchasePrice, &s.SalePrice,
		&s.MinStock, &s.UnitMeasure, &s.Barcode, &lifecycle, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	s.Lifecycle = entity.Lifecycle(lifecycle)
	return &s, nil
}

// Create persiste un nuevo insumo.
func (r *SupplyRepo) Create(ctx context.Context, s *entity.Supply) error {
	query := `
		INSERT INTO supplies (` + supplyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.Name, s.Description, s.Category, s.PurchasePrice, s.SalePrice,
		s.MinStock, s.UnitMeasure, s.Barcode, string(s.Lifecycle), s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert supply: %w", err)
	}
	return nil
}

// GetByID obtiene un insumo activo por ID.
func (r *SupplyRepo) GetByID(ctx context.Context, id string) (*entity.Supply, error) {
	query := `SELECT ` + supplyColumns + ` FROM supplies WHERE id = $1 AND lifecycle = 'active'`
	s, err := scanSupply(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supply: %w", err)
	}
	return s, nil
}

// Update actualiza los datos editables del insumo.
func (r *SupplyRepo) Update(ctx context.Context, s *entity.Supply) error {
	query := `
		UPDATE supplies SET name = $2, description = $3, category = $4, purchase_price = $5, sale_price = $6,
			min_stock = $7, unit_measure = $8, barcode = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.Name, s.Description, s.Category, s.PurchasePrice, s.SalePrice,
		s.MinStock, s.UnitMeasure, s.Barcode, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update supply: %w", err)
	}
	return nil
}

// List insumos activos ordenados por nombre, con búsqueda ILIKE y filtro de categoría opcionales.
func (r *SupplyRepo) List(ctx context.Context, filter repository.SupplyFilter) ([]*entity.Supply, error) {
	query := `
		SELECT ` + supplyColumns + `
		FROM supplies
		WHERE lifecycle = 'active'
		  AND ($1 = '' OR category = $1)
		  AND ($2 = '' OR name ILIKE $3 OR description ILIKE $3 OR barcode ILIKE $3)
		ORDER BY name
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(ctx, query, filter.Category, filter.Query, likePattern(filter.Query), nullIfZero(filter.Limit), filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("list supplies: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Supply, 0)
	for rows.Next() {
		s, err := scanSupply(rows)
		if err != nil {
			return nil, fmt.Errorf("scan supply: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Categories categorías distintas de insumos activos.
func (r *SupplyRepo) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, `
		SELECT DISTINCT category FROM supplies
		WHERE lifecycle = 'active' AND category <> ''
		ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	out := make([]string, 0)
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// IsReferenced true si hay registro de stock o líneas de venta del insumo.
func (r *SupplyRepo) IsReferenced(ctx context.Context, id string) (bool, error) {
	var referenced bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM stock WHERE supply_id = $1)
		    OR EXISTS (SELECT 1 FROM sale_lines WHERE supply_id = $1)`, id).Scan(&referenced)
	if err != nil {
		return false, fmt.Errorf("supply references: %w", err)
	}
	return referenced, nil
}

// Retire marca el insumo como retirado.
func (r *SupplyRepo) Retire(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `UPDATE supplies SET lifecycle = 'retired', updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("retire supply: %w", err)
	}
	return nil
}

// Delete borrado físico; solo para insumos sin referencias.
func (r *SupplyRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM supplies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete supply: %w", err)
	}
	return nil
}
