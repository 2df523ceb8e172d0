package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/negocio-api/internal/domain/entity"
)

// PaymentFilter filtros de listado de pagos.
type PaymentFilter struct {
	Type string
	From *time.Time
	To   *time.Time
}

// PaymentTotal agregado por tipo y método de pago.
type PaymentTotal struct {
	Type   string
	Method string
	Count  int
	Total  decimal.Decimal
}

// PaymentRepository define el puerto de pagos.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, id string) (*entity.Payment, error)
	Update(ctx context.Context, payment *entity.Payment) error
	// Delete devuelve false si el pago no existía.
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, filter PaymentFilter) ([]*entity.Payment, error)
	Categories(ctx context.Context) ([]*entity.PaymentCategory, error)
	// Totals agrega pagos no cancelados con fecha en [from, to].
	Totals(ctx context.Context, from, to time.Time) ([]PaymentTotal, error)
}
