package register

import (
	"context"

	"github.com/jhoicas/negocio-api/internal/application/inventory"
	"github.com/jhoicas/negocio-api/internal/domain/repository"
)

// TxRunner transacciones del motor de caja.
//   - RunRegister: apertura y cierre de sesiones, movimientos manuales.
//   - RunSale: venta completa; savepoint permite descontar cada línea sin arriesgar la venta.
type TxRunner interface {
	RunRegister(ctx context.Context, fn func(
		registerRepo repository.RegisterRepository,
		sessionRepo repository.RegisterSessionRepository,
		cashRepo repository.RegisterMovementRepository,
	) error) error

	RunSale(ctx context.Context, fn func(
		sessionRepo repository.RegisterSessionRepository,
		saleRepo repository.SaleRepository,
		cashRepo repository.RegisterMovementRepository,
		stockRepo repository.StockRepository,
		savepoint inventory.Savepoint,
	) error) error
}
