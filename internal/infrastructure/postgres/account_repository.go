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
	_ repository.AccountRepository         = (*AccountRepo)(nil)
	_ repository.AccountMovementRepository = (*AccountMovementRepo)(nil)
)

// AccountRepo plan de cuentas sobre PostgreSQL (usable con pool o tx).
type AccountRepo struct {
	q Querier
}

// NewAccountRepository construye el adaptador del plan de cuentas.
func NewAccountRepository(q Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

const accountColumns = `id, code, name, type, subtype, description, initial_balance, current_balance, parent_id, level, lifecycle, created_at, updated_at`

func scanAccount(row pgx.Row) (*entity.Account, error) {
	var a entity.Account
	var lifecycle string
	err := row.Scan(&a.ID, &a.Code, &a.Name, &a.Type, &a.Subtype, &a.Description, &a.InitialBalance,
		&a.CurrentBalance, &a.ParentID, &a.Level, &lifecycle, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.Lifecycle = entity.Lifecycle(lifecycle)
	return &a, nil
}

// Create persiste la cuenta. El índice único parcial sobre code traduce a ErrDuplicateCode.
func (r *AccountRepo) Create(ctx context.Context, a *entity.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.Code, a.Name, a.Type, a.Subtype, a.Description, a.InitialBalance,
		a.CurrentBalance, a.ParentID, a.Level, string(a.Lifecycle), a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetByID cuenta activa por ID.
func (r *AccountRepo) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	return r.one(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1 AND lifecycle = 'active'`, id)
}

// GetForUpdate bloquea la fila de la cuenta hasta el fin de la transacción.
func (r *AccountRepo) GetForUpdate(ctx context.Context, id string) (*entity.Account, error) {
	return r.one(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1 AND lifecycle = 'active' FOR UPDATE`, id)
}

// GetByCode cuenta activa por código.
func (r *AccountRepo) GetByCode(ctx context.Context, code string) (*entity.Account, error) {
	return r.one(ctx, `SELECT `+accountColumns+` FROM accounts WHERE code = $1 AND lifecycle = 'active'`, code)
}

func (r *AccountRepo) one(ctx context.Context, query string, arg string) (*entity.Account, error) {
	a, err := scanAccount(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return a, nil
}

// Update datos editables; el saldo solo cambia vía UpdateBalance.
func (r *AccountRepo) Update(ctx context.Context, a *entity.Account) error {
	query := `
		UPDATE accounts SET code = $2, name = $3, type = $4, subtype = $5, description = $6,
			parent_id = $7, level = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, a.ID, a.Code, a.Name, a.Type, a.Subtype, a.Description, a.ParentID, a.Level, a.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("update account: %w", err)
	}
	return nil
}

// UpdateBalance escribe el saldo recalculado.
func (r *AccountRepo) UpdateBalance(ctx context.Context, id string, balance decimal.Decimal) error {
	_, err := r.q.Exec(ctx, `UPDATE accounts SET current_balance = $2, updated_at = now() WHERE id = $1`, id, balance)
	if err != nil {
		return fmt.Errorf("update account balance: %w", err)
	}
	return nil
}

// List cuentas activas por código; accountType vacío = todas.
func (r *AccountRepo) List(ctx context.Context, accountType string) ([]*entity.Account, error) {
	query := `
		SELECT ` + accountColumns + ` FROM accounts
		WHERE lifecycle = 'active' AND ($1 = '' OR type = $1)
		ORDER BY code`
	rows, err := r.q.Query(ctx, query, accountType)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Account, 0)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Retire libera el código para cuentas nuevas (el índice único solo cubre activas).
func (r *AccountRepo) Retire(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `UPDATE accounts SET lifecycle = 'retired', updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("retire account: %w", err)
	}
	return nil
}

// AccountMovementRepo movimientos contables (solo inserción).
type AccountMovementRepo struct {
	q Querier
}

// NewAccountMovementRepository construye el adaptador de movimientos contables.
func NewAccountMovementRepository(q Querier) *AccountMovementRepo {
	return &AccountMovementRepo{q: q}
}

// Create persiste un movimiento contable.
func (r *AccountMovementRepo) Create(ctx context.Context, m *entity.AccountMovement) error {
	query := `
		INSERT INTO account_movements (id, account_id, side, amount, concept, reference, document, journal_entry_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.AccountID, m.Side, m.Amount, m.Concept, m.Reference, m.Document, m.JournalEntryID, m.CreatedBy, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create account movement: %w", err)
	}
	return nil
}

// ListByAccount más recientes primero.
func (r *AccountMovementRepo) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*entity.AccountMovement, error) {
	query := `
		SELECT id, account_id, side, amount, concept, reference, document, journal_entry_id, created_by, created_at
		FROM account_movements WHERE account_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, accountID, nullIfZero(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list account movements: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.AccountMovement, 0)
	for rows.Next() {
		var m entity.AccountMovement
		if err := rows.Scan(&m.ID, &m.AccountID, &m.Side, &m.Amount, &m.Concept, &m.Reference, &m.Document,
			&m.JournalEntryID, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan account movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Totals débitos y créditos acumulados de la cuenta.
func (r *AccountMovementRepo) Totals(ctx context.Context, accountID string) (decimal.Decimal, decimal.Decimal, error) {
	var debit, credit decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount) FILTER (WHERE side = 'debit'), 0),
		       COALESCE(SUM(amount) FILTER (WHERE side = 'credit'), 0)
		FROM account_movements WHERE account_id = $1`, accountID).Scan(&debit, &credit)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("account totals: %w", err)
	}
	return debit, credit, nil
}

// CountByAccount número de movimientos de la cuenta.
func (r *AccountMovementRepo) CountByAccount(ctx context.Context, accountID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM account_movements WHERE account_id = $1`, accountID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count account movements: %w", err)
	}
	return n, nil
}

// PeriodTotals débitos y créditos por cuenta entre from y to inclusivos.
func (r *AccountMovementRepo) PeriodTotals(ctx context.Context, from, to time.Time) ([]repository.PeriodTotal, error) {
	rows, err := r.q.Query(ctx, `
		SELECT account_id,
		       COALESCE(SUM(amount) FILTER (WHERE side = 'debit'), 0),
		       COALESCE(SUM(amount) FILTER (WHERE side = 'credit'), 0)
		FROM account_movements
		WHERE created_at BETWEEN $1 AND $2
		GROUP BY account_id`, from, to)
	if err != nil {
		return nil, fmt.Errorf("period totals: %w", err)
	}
	defer rows.Close()
	out := make([]repository.PeriodTotal, 0)
	for rows.Next() {
		var t repository.PeriodTotal
		if err := rows.Scan(&t.AccountID, &t.Debit, &t.Credit); err != nil {
			return nil, fmt.Errorf("scan period total: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
