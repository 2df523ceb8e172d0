package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/negocio-api/internal/application/accounting"
	"github.com/jhoicas/negocio-api/internal/application/inventory"
	"github.com/jhoicas/negocio-api/internal/application/register"
	"github.com/jhoicas/negocio-api/internal/domain/repository"
)

var (
	_ inventory.TxRunner  = (*TxRunner)(nil)
	_ accounting.TxRunner = (*TxRunner)(nil)
	_ register.TxRunner   = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// inTx abre la transacción, ejecuta fn y hace Commit; cualquier error deja Rollback.
func (r *TxRunner) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Run transacción del libro de existencias.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewStockMovementRepository(tx), NewStockRepository(tx))
	})
}

// RunAccounting transacción del libro contable (movimiento + recálculo de saldo).
func (r *TxRunner) RunAccounting(ctx context.Context, fn func(
	accountRepo repository.AccountRepository,
	movRepo repository.AccountMovementRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewAccountRepository(tx), NewAccountMovementRepository(tx))
	})
}

// RunRegister transacción de apertura/cierre de sesión y movimientos de caja.
func (r *TxRunner) RunRegister(ctx context.Context, fn func(
	registerRepo repository.RegisterRepository,
	sessionRepo repository.RegisterSessionRepository,
	cashRepo repository.RegisterMovementRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewRegisterRepository(tx), NewSessionRepository(tx), NewRegisterMovementRepository(tx))
	})
}

// RunSale transacción de venta. El savepoint es una transacción anidada de pgx
// (SAVEPOINT / RELEASE / ROLLBACK TO) sobre la misma conexión.
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	sessionRepo repository.RegisterSessionRepository,
	saleRepo repository.SaleRepository,
	cashRepo repository.RegisterMovementRepository,
	stockRepo repository.StockRepository,
	savepoint inventory.Savepoint,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		savepoint := func(ctx context.Context, inner func(
			movRepo repository.StockMovementRepository,
			stockRepo repository.StockRepository,
		) error) error {
			sp, err := tx.Begin(ctx)
			if err != nil {
				return fmt.Errorf("savepoint: %w", err)
			}
			defer func() { _ = sp.Rollback(ctx) }()
			if err := inner(NewStockMovementRepository(sp), NewStockRepository(sp)); err != nil {
				return err
			}
			return sp.Commit(ctx)
		}
		return fn(NewSessionRepository(tx), NewSaleRepository(tx), NewRegisterMovementRepository(tx), NewStockRepository(tx), savepoint)
	})
}
