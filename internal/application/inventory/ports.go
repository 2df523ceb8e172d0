package inventory

import (
	"context"

	"github.com/jhoicas/negocio-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el libro de existencias.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
	) error) error
}

// Savepoint ejecuta fn dentro de un punto de guardado de la transacción en curso.
// Si fn falla solo se deshace lo escrito dentro de fn; la transacción externa sigue viva.
type Savepoint func(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
) error) error
