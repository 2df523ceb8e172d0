package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/negocio-api/internal/domain"
	"github.com/jhoicas/negocio-api/internal/domain/accounting"
	"github.com/jhoicas/negocio-api/internal/domain/entity"
	"github.com/jhoicas/negocio-api/internal/domain/repository"
)

// AccountRepo plan de cuentas en memoria.
type AccountRepo struct{ s *Store }

var _ repository.AccountRepository = (*AccountRepo)(nil)

// Create rechaza códigos repetidos entre cuentas activas, como el índice único parcial.
func (r *AccountRepo) Create(ctx context.Context, account *entity.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, v := range r.s.d.accounts {
		if v.Code == account.Code && v.Lifecycle.IsActive() {
			return domain.ErrDuplicateCode
		}
	}
	r.s.d.accounts[account.ID] = *account
	return nil
}

func (r *AccountRepo) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	v, ok := r.s.d.accounts[id]
	if !ok || !v.Lifecycle.IsActive() {
		return nil, nil
	}
	return &v, nil
}

func (r *AccountRepo) GetForUpdate(ctx context.Context, id string) (*entity.Account, error) {
	return r.GetByID(ctx, id)
}

func (r *AccountRepo) GetByCode(ctx context.Context, code string) (*entity.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, v := range r.s.d.accounts {
		if v.Code == code && v.Lifecycle.IsActive() {
			return &v, nil
		}
	}
	return nil, nil
}

func (r *AccountRepo) Update(ctx context.Context, account *entity.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.d.accounts[account.ID]; ok {
		r.s.d.accounts[account.ID] = *account
	}
	return nil
}

func (r *AccountRepo) UpdateBalance(ctx context.Context, id string, balance decimal.Decimal) error {
	if err := r.s.fail("accounts.update_balance"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if v, ok := r.s.d.accounts[id]; ok {
		v.CurrentBalance = balance
		v.UpdatedAt = time.Now()
		r.s.d.accounts[id] = v
	}
	return nil
}

// List ordenado por código.
func (r *AccountRepo) List(ctx context.Context, accountType string) ([]*entity.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Account, 0)
	for _, v := range r.s.d.accounts {
		if !v.Lifecycle.IsActive() || (accountType != "" && v.Type != accountType) {
			continue
		}
		v := v
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *AccountRepo) Retire(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if v, ok := r.s.d.accounts[id]; ok {
		v.Lifecycle.Retire()
		r.s.d.accounts[id] = v
	}
	return nil
}

// AccountMovementRepo movimientos contables en memoria.
type AccountMovementRepo struct{ s *Store }

var _ repository.AccountMovementRepository = (*AccountMovementRepo)(nil)

func (r *AccountMovementRepo) Create(ctx context.Context, movement *entity.AccountMovement) error {
	if err := r.s.fail("account_movements.create"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.d.accountMovements = append(r.s.d.accountMovements, *movement)
	return nil
}

// ListByAccount más recientes primero.
func (r *AccountMovementRepo) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*entity.AccountMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.AccountMovement, 0)
	for i := len(r.s.d.accountMovements) - 1; i >= 0; i-- {
		m := r.s.d.accountMovements[i]
		if m.AccountID == accountID {
			out = append(out, &m)
		}
	}
	return paginate(out, limit, offset), nil
}

func (r *AccountMovementRepo) Totals(ctx context.Context, accountID string) (decimal.Decimal, decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	movs := make([]*entity.AccountMovement, 0)
	for i := range r.s.d.accountMovements {
		if r.s.d.accountMovements[i].AccountID == accountID {
			movs = append(movs, &r.s.d.accountMovements[i])
		}
	}
	debit, credit := accounting.Totals(movs)
	return debit, credit, nil
}

func (r *AccountMovementRepo) CountByAccount(ctx context.Context, accountID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, m := range r.s.d.accountMovements {
		if m.AccountID == accountID {
			n++
		}
	}
	return n, nil
}

func (r *AccountMovementRepo) PeriodTotals(ctx context.Context, from, to time.Time) ([]repository.PeriodTotal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	byAccount := map[string]*repository.PeriodTotal{}
	order := make([]string, 0)
	for _, m := range r.s.d.accountMovements {
		if m.CreatedAt.Before(from) || m.CreatedAt.After(to) {
			continue
		}
		t, ok := byAccount[m.AccountID]
		if !ok {
			t = &repository.PeriodTotal{AccountID: m.AccountID, Debit: decimal.Zero, Credit: decimal.Zero}
			byAccount[m.AccountID] = t
			order = append(order, m.AccountID)
		}
		if m.Side == entity.SideDebit {
			t.Debit = t.Debit.Add(m.Amount)
		} else {
			t.Credit = t.Credit.Add(m.Amount)
		}
	}
	out := make([]repository.PeriodTotal, 0, len(order))
	for _, id := range order {
		out = append(out, *byAccount[id])
	}
	return out, nil
}
