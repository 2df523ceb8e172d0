package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/negocio-api/internal/application/accounting"
	"github.com/jhoicas/negocio-api/internal/application/inventory"
	"github.com/jhoicas/negocio-api/internal/application/register"
	"github.com/jhoicas/negocio-api/internal/domain/repository"
	"github.com/jhoicas/negocio-api/internal/infrastructure/memory"
	"github.com/jhoicas/negocio-api/internal/infrastructure/postgres"
	"github.com/jhoicas/negocio-api/pkg/config"
)

// txRunner transacciones de los tres libros; lo implementan postgres.TxRunner y memory.TxRunner.
type txRunner interface {
	inventory.TxRunner
	accounting.TxRunner
	register.TxRunner
}

// storage repositorios del driver elegido por DB_DRIVER.
type storage struct {
	tx               txRunner
	supplies         repository.SupplyRepository
	stock            repository.StockRepository
	stockMovements   repository.StockMovementRepository
	accounts         repository.AccountRepository
	accountMovements repository.AccountMovementRepository
	registers        repository.RegisterRepository
	sessions         repository.RegisterSessionRepository
	cashMovements    repository.RegisterMovementRepository
	sales            repository.SaleRepository
	suppliers        repository.SupplierRepository
	payments         repository.PaymentRepository
	users            repository.UserRepository
	emailConfig      repository.EmailConfigRepository

	close func()
}

func openStorage(ctx context.Context, cfg config.DBConfig) (*storage, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return memoryStorage(), nil
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migraciones: %w", err)
		}
		return postgresStorage(pool), nil
	default:
		return nil, fmt.Errorf("DB_DRIVER desconocido: %q", cfg.Driver)
	}
}

func postgresStorage(pool *pgxpool.Pool) *storage {
	return &storage{
		tx:               postgres.NewTxRunner(pool),
		supplies:         postgres.NewSupplyRepository(pool),
		stock:            postgres.NewStockRepository(pool),
		stockMovements:   postgres.NewStockMovementRepository(pool),
		accounts:         postgres.NewAccountRepository(pool),
		accountMovements: postgres.NewAccountMovementRepository(pool),
		registers:        postgres.NewRegisterRepository(pool),
		sessions:         postgres.NewSessionRepository(pool),
		cashMovements:    postgres.NewRegisterMovementRepository(pool),
		sales:            postgres.NewSaleRepository(pool),
		suppliers:        postgres.NewSupplierRepository(pool),
		payments:         postgres.NewPaymentRepository(pool),
		users:            postgres.NewUserRepository(pool),
		emailConfig:      postgres.NewEmailConfigRepository(pool),
		close:            pool.Close,
	}
}

// memoryStorage datos por defecto sembrados; se pierden al reiniciar.
func memoryStorage() *storage {
	store := memory.NewStore()
	store.SeedDefaults()
	return &storage{
		tx:               memory.NewTxRunner(store),
		supplies:         store.Supplies(),
		stock:            store.Stock(),
		stockMovements:   store.StockMovements(),
		accounts:         store.Accounts(),
		accountMovements: store.AccountMovements(),
		registers:        store.Registers(),
		sessions:         store.Sessions(),
		cashMovements:    store.CashMovements(),
		sales:            store.Sales(),
		suppliers:        store.Suppliers(),
		payments:         store.Payments(),
		users:            store.Users(),
		emailConfig:      store.EmailConfig(),
		close:            func() {},
	}
}
