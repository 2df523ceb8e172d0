package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/negocio-api/internal/domain/entity"
)

// DailySales agregado de ventas completadas de un día.
type DailySales struct {
	Date    time.Time
	Count   int
	Total   decimal.Decimal
	Average decimal.Decimal
}

// TenderTotal agregado de ventas por medio de pago.
type TenderTotal struct {
	Tender string
	Count  int
	Total  decimal.Decimal
}

// TopSupply insumo más vendido (por número de líneas de venta).
type TopSupply struct {
	SupplyID   string
	Name       string
	SalesCount int
	Units      int64
}

// SaleFilter rango y alcance de las consultas de ventas; RegisterID vacío = todas las cajas.
type SaleFilter struct {
	From       time.Time
	To         time.Time
	RegisterID string
}

// SaleRepository define el puerto de ventas y sus agregados de lectura.
type SaleRepository interface {
	// Create persiste la cabecera y sus líneas.
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	ListBySession(ctx context.Context, sessionID string) ([]*entity.Sale, error)
	SummaryByDay(ctx context.Context, filter SaleFilter) ([]DailySales, error)
	TotalsByTender(ctx context.Context, filter SaleFilter) ([]TenderTotal, error)
	TopSupplies(ctx context.Context, filter SaleFilter, limit int) ([]TopSupply, error)
}
