package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/negocio-api/internal/domain/entity"
	"github.com/jhoicas/negocio-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo pagos y categorías sobre PostgreSQL.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador de pagos.
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

const paymentSelect = `
	SELECT p.id, p.type, p.concept, p.description, p.amount, p.method, p.reference, p.supplier_id,
	       COALESCE(s.name, ''), p.customer_name, p.customer_email, p.state, p.paid_at, p.due_at, p.created_by, p.notes
	FROM payments p
	LEFT JOIN suppliers s ON s.id = p.supplier_id`

func scanPayment(row pgx.Row) (*entity.Payment, error) {
	var p entity.Payment
	err := row.Scan(&p.ID, &p.Type, &p.Concept, &p.Description, &p.Amount, &p.Method, &p.Reference, &p.SupplierID,
		&p.SupplierName, &p.CustomerName, &p.CustomerEmail, &p.State, &p.PaidAt, &p.DueAt, &p.CreatedBy, &p.Notes)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un pago.
func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO payments (id, type, concept, description, amount, method, reference, supplier_id,
			customer_name, customer_email, state, paid_at, due_at, created_by, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		p.ID, p.Type, p.Concept, p.Description, p.Amount, p.Method, p.Reference, p.SupplierID,
		p.CustomerName, p.CustomerEmail, p.State, p.PaidAt, p.DueAt, p.CreatedBy, p.Notes)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByID pago con el nombre del proveedor.
func (r *PaymentRepo) GetByID(ctx context.Context, id string) (*entity.Payment, error) {
	p, err := scanPayment(r.q.QueryRow(ctx, paymentSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return p, nil
}

// Update reescribe los datos del pago.
func (r *PaymentRepo) Update(ctx context.Context, p *entity.Payment) error {
	_, err := r.q.Exec(ctx, `
		UPDATE payments SET type = $2, concept = $3, description = $4, amount = $5, method = $6, reference = $7,
			supplier_id = $8, customer_name = $9, customer_email = $10, state = $11, paid_at = $12, due_at = $13, notes = $14
		WHERE id = $1`,
		p.ID, p.Type, p.Concept, p.Description, p.Amount, p.Method, p.Reference, p.SupplierID,
		p.CustomerName, p.CustomerEmail, p.State, p.PaidAt, p.DueAt, p.Notes)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	return nil
}

// Delete devuelve false si el pago no existía.
func (r *PaymentRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete payment: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// List más recientes primero.
func (r *PaymentRepo) List(ctx context.Context, filter repository.PaymentFilter) ([]*entity.Payment, error) {
	rows, err := r.q.Query(ctx, paymentSelect+`
		WHERE ($1 = '' OR p.type = $1)
		  AND ($2::timestamptz IS NULL OR p.paid_at >= $2)
		  AND ($3::timestamptz IS NULL OR p.paid_at <= $3)
		ORDER BY p.paid_at DESC`, filter.Type, filter.From, filter.To)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Categories categorías activas.
func (r *PaymentRepo) Categories(ctx context.Context) ([]*entity.PaymentCategory, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, name, type, description, active FROM payment_categories
		WHERE active ORDER BY type, name`)
	if err != nil {
		return nil, fmt.Errorf("list payment categories: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.PaymentCategory, 0)
	for rows.Next() {
		var c entity.PaymentCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Type, &c.Description, &c.Active); err != nil {
			return nil, fmt.Errorf("scan payment category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Totals pagos no cancelados por tipo y método en [from, to].
func (r *PaymentRepo) Totals(ctx context.Context, from, to time.Time) ([]repository.PaymentTotal, error) {
	rows, err := r.q.Query(ctx, `
		SELECT type, method, COUNT(*), SUM(amount)
		FROM payments
		WHERE state <> 'cancelled' AND paid_at BETWEEN $1 AND $2
		GROUP BY type, method
		ORDER BY type, method`, from, to)
	if err != nil {
		return nil, fmt.Errorf("payment totals: %w", err)
	}
	defer rows.Close()
	out := make([]repository.PaymentTotal, 0)
	for rows.Next() {
		var t repository.PaymentTotal
		if err := rows.Scan(&t.Type, &t.Method, &t.Count, &t.Total); err != nil {
			return nil, fmt.Errorf("scan payment total: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
