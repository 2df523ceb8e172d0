package accounting

import (
	"context"

	"github.com/jhoicas/negocio-api/internal/domain/repository"
)

// TxRunner ejecuta fn en una transacción con los repositorios contables atados a ella.
type TxRunner interface {
	RunAccounting(ctx context.Context, fn func(
		accountRepo repository.AccountRepository,
		movRepo repository.AccountMovementRepository,
	) error) error
}
