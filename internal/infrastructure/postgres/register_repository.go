package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/negocio-api/internal/domain"
	"github.com/jhoicas/negocio-api/internal/domain/entity"
	"github.com/jhoicas/negocio-api/internal/domain/repository"
)

var (
	_ repository.RegisterRepository         = (*RegisterRepo)(nil)
	_ repository.RegisterSessionRepository  = (*SessionRepo)(nil)
	_ repository.RegisterMovementRepository = (*RegisterMovementRepo)(nil)
)

// índice único parcial de 001_schema.sql
const openSessionIndex = "ux_register_sessions_open"

// RegisterRepo cajas sobre PostgreSQL.
type RegisterRepo struct {
	q Querier
}

// NewRegisterRepository construye el adaptador de cajas.
func NewRegisterRepository(q Querier) *RegisterRepo {
	return &RegisterRepo{q: q}
}

func scanRegister(row pgx.Row) (*entity.Register, error) {
	var reg entity.Register
	var lifecycle string
	if err := row.Scan(&reg.ID, &reg.Name, &reg.Description, &reg.Location, &lifecycle, &reg.CreatedAt); err != nil {
		return nil, err
	}
	reg.Lifecycle = entity.Lifecycle(lifecycle)
	return &reg, nil
}

// Create persiste una caja.
func (r *RegisterRepo) Create(ctx context.Context, reg *entity.Register) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO registers (id, name, description, location, lifecycle, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		reg.ID, reg.Name, reg.Description, reg.Location, string(reg.Lifecycle), reg.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert register: %w", err)
	}
	return nil
}

// GetByID caja activa por ID.
func (r *RegisterRepo) GetByID(ctx context.Context, id string) (*entity.Register, error) {
	return r.one(ctx, `SELECT id, name, description, location, lifecycle, created_at FROM registers WHERE id = $1 AND lifecycle = 'active'`, id)
}

// GetForUpdate bloquea la fila de la caja; serializa aperturas concurrentes.
func (r *RegisterRepo) GetForUpdate(ctx context.Context, id string) (*entity.Register, error) {
	return r.one(ctx, `SELECT id, name, description, location, lifecycle, created_at FROM registers WHERE id = $1 AND lifecycle = 'active' FOR UPDATE`, id)
}

func (r *RegisterRepo) one(ctx context.Context, query, id string) (*entity.Register, error) {
	reg, err := scanRegister(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get register: %w", err)
	}
	return reg, nil
}

// List cajas activas por nombre.
func (r *RegisterRepo) List(ctx context.Context) ([]*entity.Register, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, name, description, location, lifecycle, created_at
		FROM registers WHERE lifecycle = 'active' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list registers: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Register, 0)
	for rows.Next() {
		reg, err := scanRegister(rows)
		if err != nil {
			return nil, fmt.Errorf("scan register: %w", err)
		}
		list = append(list, reg)
	}
	return list, rows.Err()
}

// SessionRepo sesiones de caja sobre PostgreSQL.
type SessionRepo struct {
	q Querier
}

// NewSessionRepository construye el adaptador de sesiones.
func NewSessionRepository(q Querier) *SessionRepo {
	return &SessionRepo{q: q}
}

const sessionColumns = `id, register_id, opened_by, opened_at, closed_at, opening_amount, closing_amount,
	total_sales, total_cash, total_card, total_transfer, state, opening_notes, closing_notes`

func scanSession(row pgx.Row) (*entity.RegisterSession, error) {
	var s entity.RegisterSession
	err := row.Scan(&s.ID, &s.RegisterID, &s.OpenedBy, &s.OpenedAt, &s.ClosedAt, &s.OpeningAmount, &s.ClosingAmount,
		&s.TotalSales, &s.TotalCash, &s.TotalCard, &s.TotalTransfer, &s.State, &s.OpeningNotes, &s.ClosingNotes)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create persiste la sesión. Una segunda sesión abierta viola el índice parcial -> ErrSessionAlreadyOpen.
func (r *SessionRepo) Create(ctx context.Context, s *entity.RegisterSession) error {
	query := `
		INSERT INTO register_sessions (` + sessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.RegisterID, s.OpenedBy, s.OpenedAt, s.ClosedAt, s.OpeningAmount, s.ClosingAmount,
		s.TotalSales, s.TotalCash, s.TotalCard, s.TotalTransfer, s.State, s.OpeningNotes, s.ClosingNotes,
	)
	if err != nil {
		if isUniqueViolation(err) && violatedConstraint(err) == openSessionIndex {
			return domain.ErrSessionAlreadyOpen
		}
		return fmt.Errorf("insert register session: %w", err)
	}
	return nil
}

// GetByID sesión por ID.
func (r *SessionRepo) GetByID(ctx context.Context, id string) (*entity.RegisterSession, error) {
	return r.one(ctx, `SELECT `+sessionColumns+` FROM register_sessions WHERE id = $1`, id)
}

// GetForUpdate bloquea la sesión (cierre y ventas).
func (r *SessionRepo) GetForUpdate(ctx context.Context, id string) (*entity.RegisterSession, error) {
	return r.one(ctx, `SELECT `+sessionColumns+` FROM register_sessions WHERE id = $1 FOR UPDATE`, id)
}

// GetOpenByRegister sesión abierta de la caja o nil.
func (r *SessionRepo) GetOpenByRegister(ctx context.Context, registerID string) (*entity.RegisterSession, error) {
	return r.one(ctx, `SELECT `+sessionColumns+` FROM register_sessions WHERE register_id = $1 AND state = 'open'`, registerID)
}

func (r *SessionRepo) one(ctx context.Context, query, id string) (*entity.RegisterSession, error) {
	s, err := scanSession(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get register session: %w", err)
	}
	return s, nil
}

// Close persiste totales, monto final, notas y estado.
func (r *SessionRepo) Close(ctx context.Context, s *entity.RegisterSession) error {
	query := `
		UPDATE register_sessions SET closed_at = $2, closing_amount = $3, total_sales = $4, total_cash = $5,
			total_card = $6, total_transfer = $7, state = $8, closing_notes = $9
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, s.ID, s.ClosedAt, s.ClosingAmount, s.TotalSales, s.TotalCash,
		s.TotalCard, s.TotalTransfer, s.State, s.ClosingNotes)
	if err != nil {
		return fmt.Errorf("close register session: %w", err)
	}
	return nil
}

// ListByRegister sesiones abiertas en [from, to], más recientes primero.
func (r *SessionRepo) ListByRegister(ctx context.Context, registerID string, from, to time.Time) ([]*entity.RegisterSession, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+sessionColumns+` FROM register_sessions
		WHERE register_id = $1 AND opened_at BETWEEN $2 AND $3
		ORDER BY opened_at DESC`, registerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list register sessions: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.RegisterSession, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan register session: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// RegisterMovementRepo movimientos de caja (solo inserción).
type RegisterMovementRepo struct {
	q Querier
}

// NewRegisterMovementRepository construye el adaptador de movimientos de caja.
func NewRegisterMovementRepository(q Querier) *RegisterMovementRepo {
	return &RegisterMovementRepo{q: q}
}

// Create persiste un movimiento de caja.
func (r *RegisterMovementRepo) Create(ctx context.Context, m *entity.RegisterMovement) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO register_movements (id, session_id, kind, amount, concept, reference, tender, sale_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		m.ID, m.SessionID, m.Kind, m.Amount, m.Concept, m.Reference, m.Tender, m.SaleID, m.CreatedBy, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("create register movement: %w", err)
	}
	return nil
}

// ListBySession movimientos de la sesión en orden de creación.
func (r *RegisterMovementRepo) ListBySession(ctx context.Context, sessionID string) ([]*entity.RegisterMovement, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, session_id, kind, amount, concept, reference, tender, sale_id, created_by, created_at
		FROM register_movements WHERE session_id = $1
		ORDER BY created_at`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list register movements: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.RegisterMovement, 0)
	for rows.Next() {
		var m entity.RegisterMovement
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Kind, &m.Amount, &m.Concept, &m.Reference, &m.Tender,
			&m.SaleID, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan register movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// SaleTotalsByTender suma de movimientos tipo venta por medio de pago.
func (r *RegisterMovementRepo) SaleTotalsByTender(ctx context.Context, sessionID string) (map[string]decimal.Decimal, error) {
	rows, err := r.q.Query(ctx, `
		SELECT tender, SUM(amount) FROM register_movements
		WHERE session_id = $1 AND kind = 'sale'
		GROUP BY tender`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("session totals: %w", err)
	}
	defer rows.Close()
	out := map[string]decimal.Decimal{}
	for rows.Next() {
		var tender string
		var total decimal.Decimal
		if err := rows.Scan(&tender, &total); err != nil {
			return nil, fmt.Errorf("scan session total: %w", err)
		}
		out[tender] = total
	}
	return out, rows.Err()
}
