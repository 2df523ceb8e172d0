package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/negocio-api/internal/domain"
	"github.com/jhoicas/negocio-api/internal/domain/entity"
	"github.com/jhoicas/negocio-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas y agregados de lectura sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, number, session_id, customer_name, customer_email, customer_phone, subtotal, discount,
	tax, total, tender, state, created_by, notes, created_at`

// filtro común: ventas completadas en rango y, opcionalmente, de una caja.
const completedSalesWhere = `
	s.state = 'completed' AND s.created_at BETWEEN $1 AND $2
	AND ($3 = '' OR s.session_id IN (SELECT id FROM register_sessions WHERE register_id::text = $3))`

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	err := row.Scan(&s.ID, &s.Number, &s.SessionID, &s.CustomerName, &s.CustomerEmail, &s.CustomerPhone,
		&s.Subtotal, &s.Discount, &s.Tax, &s.Total, &s.Tender, &s.State, &s.CreatedBy, &s.Notes, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserta cabecera y líneas en un batch. Número repetido -> ErrConflict.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO sales (`+saleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		s.ID, s.Number, s.SessionID, s.CustomerName, s.CustomerEmail, s.CustomerPhone,
		s.Subtotal, s.Discount, s.Tax, s.Total, s.Tender, s.State, s.CreatedBy, s.Notes, s.CreatedAt)
	for _, l := range s.Lines {
		batch.Queue(`
			INSERT INTO sale_lines (id, sale_id, supply_id, quantity, unit_price, discount, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			l.ID, s.ID, l.SupplyID, l.Quantity, l.UnitPrice, l.Discount, l.Subtotal)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			if isUniqueViolation(err) {
				return domain.ErrConflict
			}
			return fmt.Errorf("insert sale: %w", err)
		}
	}
	return nil
}

// GetByID venta con sus líneas y el nombre de cada insumo.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales s WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if err := r.loadLines(ctx, []*entity.Sale{s}); err != nil {
		return nil, err
	}
	return s, nil
}

// ListBySession ventas de la sesión, más recientes primero.
func (r *SaleRepo) ListBySession(ctx context.Context, sessionID string) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, `SELECT `+saleColumns+` FROM sales s WHERE session_id = $1 ORDER BY created_at DESC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	list := make([]*entity.Sale, 0)
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	if err := r.loadLines(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *SaleRepo) loadLines(ctx context.Context, sales []*entity.Sale) error {
	if len(sales) == 0 {
		return nil
	}
	ids := make([]string, len(sales))
	byID := make(map[string]*entity.Sale, len(sales))
	for i, s := range sales {
		ids[i] = s.ID
		byID[s.ID] = s
	}
	rows, err := r.q.Query(ctx, `
		SELECT l.id, l.sale_id, l.supply_id, COALESCE(sp.name, ''), l.quantity, l.unit_price, l.discount, l.subtotal
		FROM sale_lines l
		LEFT JOIN supplies sp ON sp.id = l.supply_id
		WHERE l.sale_id::text = ANY($1)
		ORDER BY l.sale_id, l.id`, ids)
	if err != nil {
		return fmt.Errorf("list sale lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.SaleLine
		if err := rows.Scan(&l.ID, &l.SaleID, &l.SupplyID, &l.SupplyName, &l.Quantity, &l.UnitPrice, &l.Discount, &l.Subtotal); err != nil {
			return fmt.Errorf("scan sale line: %w", err)
		}
		if s, ok := byID[l.SaleID]; ok {
			s.Lines = append(s.Lines, l)
		}
	}
	return rows.Err()
}

// SummaryByDay conteo, total y promedio por día de ventas completadas.
func (r *SaleRepo) SummaryByDay(ctx context.Context, filter repository.SaleFilter) ([]repository.DailySales, error) {
	rows, err := r.q.Query(ctx, `
		SELECT date_trunc('day', s.created_at) AS day, COUNT(*), SUM(s.total), ROUND(AVG(s.total), 2)
		FROM sales s
		WHERE `+completedSalesWhere+`
		GROUP BY day
		ORDER BY day`, filter.From, filter.To, filter.RegisterID)
	if err != nil {
		return nil, fmt.Errorf("sales by day: %w", err)
	}
	defer rows.Close()
	out := make([]repository.DailySales, 0)
	for rows.Next() {
		var d repository.DailySales
		if err := rows.Scan(&d.Date, &d.Count, &d.Total, &d.Average); err != nil {
			return nil, fmt.Errorf("scan sales by day: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// TotalsByTender ventas completadas por medio de pago, mayor total primero.
func (r *SaleRepo) TotalsByTender(ctx context.Context, filter repository.SaleFilter) ([]repository.TenderTotal, error) {
	rows, err := r.q.Query(ctx, `
		SELECT s.tender, COUNT(*), SUM(s.total)
		FROM sales s
		WHERE `+completedSalesWhere+`
		GROUP BY s.tender
		ORDER BY SUM(s.total) DESC`, filter.From, filter.To, filter.RegisterID)
	if err != nil {
		return nil, fmt.Errorf("sales by tender: %w", err)
	}
	defer rows.Close()
	out := make([]repository.TenderTotal, 0)
	for rows.Next() {
		var t repository.TenderTotal
		if err := rows.Scan(&t.Tender, &t.Count, &t.Total); err != nil {
			return nil, fmt.Errorf("scan sales by tender: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// TopSupplies más vendidos por número de líneas, luego por unidades.
func (r *SaleRepo) TopSupplies(ctx context.Context, filter repository.SaleFilter, limit int) ([]repository.TopSupply, error) {
	rows, err := r.q.Query(ctx, `
		SELECT l.supply_id, COALESCE(sp.name, ''), COUNT(*) AS lines, SUM(l.quantity)::bigint AS units
		FROM sale_lines l
		JOIN sales s ON s.id = l.sale_id
		LEFT JOIN supplies sp ON sp.id = l.supply_id
		WHERE `+completedSalesWhere+`
		GROUP BY l.supply_id, sp.name
		ORDER BY lines DESC, units DESC, sp.name
		LIMIT $4`, filter.From, filter.To, filter.RegisterID, nullIfZero(limit))
	if err != nil {
		return nil, fmt.Errorf("top supplies: %w", err)
	}
	defer rows.Close()
	out := make([]repository.TopSupply, 0)
	for rows.Next() {
		var t repository.TopSupply
		if err := rows.Scan(&t.SupplyID, &t.Name, &t.SalesCount, &t.Units); err != nil {
			return nil, fmt.Errorf("scan top supply: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
