package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/negocio-api/internal/domain/entity"
)

// AccountRepository define el puerto de persistencia del plan de cuentas.
// Las lecturas excluyen cuentas retiradas.
type AccountRepository interface {
	Create(ctx context.Context, account *entity.Account) error
	GetByID(ctx context.Context, id string) (*entity.Account, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Account, error)
	GetByCode(ctx context.Context, code string) (*entity.Account, error)
	Update(ctx context.Context, account *entity.Account) error
	UpdateBalance(ctx context.Context, id string, balance decimal.Decimal) error
	// List filtra por tipo si accountType no está vacío.
	List(ctx context.Context, accountType string) ([]*entity.Account, error)
	Retire(ctx context.Context, id string) error
}

// PeriodTotal débitos y créditos de una cuenta en un rango de fechas.
type PeriodTotal struct {
	AccountID string
	Debit     decimal.Decimal
	Credit    decimal.Decimal
}

// AccountMovementRepository define el puerto de movimientos contables (solo inserción).
type AccountMovementRepository interface {
	Create(ctx context.Context, movement *entity.AccountMovement) error
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*entity.AccountMovement, error)
	// Totals agrega todos los movimientos de la cuenta (recalculo completo).
	Totals(ctx context.Context, accountID string) (debit, credit decimal.Decimal, err error)
	CountByAccount(ctx context.Context, accountID string) (int, error)
	// PeriodTotals agrega por cuenta los movimientos con fecha en [from, to].
	PeriodTotals(ctx context.Context, from, to time.Time) ([]PeriodTotal, error)
}
