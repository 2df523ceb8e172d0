// Package memory implementa los repositorios en memoria. Sirve como driver sin base de datos
// (DB_DRIVER=memory) y como doble de pruebas de los casos de uso.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/negocio-api/internal/application/accounting"
	"github.com/jhoicas/negocio-api/internal/application/inventory"
	"github.com/jhoicas/negocio-api/internal/application/register"
	"github.com/jhoicas/negocio-api/internal/domain/entity"
	"github.com/jhoicas/negocio-api/internal/domain/repository"
)

type supplierSupplyKey struct {
	supplierID string
	supplyID   string
}

// data es todo el estado; se copia completo para emular rollback.
type data struct {
	supplies         map[string]entity.Supply
	stock            map[string]entity.StockRecord
	stockMovements   []entity.StockMovement
	accounts         map[string]entity.Account
	accountMovements []entity.AccountMovement
	registers        map[string]entity.Register
	sessions         map[string]entity.RegisterSession
	cashMovements    []entity.RegisterMovement
	sales            map[string]entity.Sale
	suppliers        map[string]entity.Supplier
	supplierSupplies map[supplierSupplyKey]entity.SupplierSupply
	payments         map[string]entity.Payment
	categories       []entity.PaymentCategory
	users            map[string]entity.User
	emailConfig      *entity.EmailConfig
}

func newData() *data {
	return &data{
		supplies:         map[string]entity.Supply{},
		stock:            map[string]entity.StockRecord{},
		accounts:         map[string]entity.Account{},
		registers:        map[string]entity.Register{},
		sessions:         map[string]entity.RegisterSession{},
		sales:            map[string]entity.Sale{},
		suppliers:        map[string]entity.Supplier{},
		supplierSupplies: map[supplierSupplyKey]entity.SupplierSupply{},
		payments:         map[string]entity.Payment{},
		users:            map[string]entity.User{},
	}
}

func (d *data) clone() *data {
	c := newData()
	for k, v := range d.supplies {
		c.supplies[k] = v
	}
	for k, v := range d.stock {
		c.stock[k] = v
	}
	c.stockMovements = append([]entity.StockMovement(nil), d.stockMovements...)
	for k, v := range d.accounts {
		c.accounts[k] = v
	}
	c.accountMovements = append([]entity.AccountMovement(nil), d.accountMovements...)
	for k, v := range d.registers {
		c.registers[k] = v
	}
	for k, v := range d.sessions {
		c.sessions[k] = v
	}
	c.cashMovements = append([]entity.RegisterMovement(nil), d.cashMovements...)
	for k, v := range d.sales {
		v.Lines = append([]entity.SaleLine(nil), v.Lines...)
		c.sales[k] = v
	}
	for k, v := range d.suppliers {
		c.suppliers[k] = v
	}
	for k, v := range d.supplierSupplies {
		c.supplierSupplies[k] = v
	}
	for k, v := range d.payments {
		c.payments[k] = v
	}
	c.categories = append([]entity.PaymentCategory(nil), d.categories...)
	for k, v := range d.users {
		c.users[k] = v
	}
	if d.emailConfig != nil {
		cfg := *d.emailConfig
		c.emailConfig = &cfg
	}
	return c
}

// Store estado en memoria compartido por todos los repositorios.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	d    *data

	failMu   sync.Mutex
	failures map[string]error
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{d: newData(), failures: map[string]error{}}
}

// FailOn hace que la operación op (p.ej. "stock_movements.create") devuelva err hasta ClearFailures.
func (s *Store) FailOn(op string, err error) {
	s.failMu.Lock()
	defer s.failMu.Unlock()
	s.failures[op] = err
}

// ClearFailures elimina los fallos inyectados.
func (s *Store) ClearFailures() {
	s.failMu.Lock()
	defer s.failMu.Unlock()
	s.failures = map[string]error{}
}

func (s *Store) fail(op string) error {
	s.failMu.Lock()
	defer s.failMu.Unlock()
	return s.failures[op]
}

func (s *Store) snapshot() *data {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.d.clone()
}

func (s *Store) restore(d *data) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.d = d
}

// atomically serializa fn con el resto de transacciones y restaura la foto si falla.
func (s *Store) atomically(fn func() error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	snap := s.snapshot()
	if err := fn(); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// Accesores de repositorios.

func (s *Store) Supplies() *SupplyRepo { return &SupplyRepo{s: s} }
func (s *Store) Stock() *StockRepo { return &StockRepo{s: s} }
func (s *Store) StockMovements() *StockMovementRepo { return &StockMovementRepo{s: s} }
func (s *Store) Accounts() *AccountRepo { return &AccountRepo{s: s} }
func (s *Store) AccountMovements() *AccountMovementRepo { return &AccountMovementRepo{s: s} }
func (s *Store) Registers() *RegisterRepo { return &RegisterRepo{s: s} }
func (s *Store) Sessions() *SessionRepo { return &SessionRepo{s: s} }
func (s *Store) CashMovements() *CashMovementRepo { return &CashMovementRepo{s: s} }
func (s *Store) Sales() *SaleRepo { return &SaleRepo{s: s} }
func (s *Store) Suppliers() *SupplierRepo { return &SupplierRepo{s: s} }
func (s *Store) Payments() *PaymentRepo { return &PaymentRepo{s: s} }
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }
func (s *Store) EmailConfig() *EmailConfigRepo { return &EmailConfigRepo{s: s} }

// TxRunner implementa los TxRunner de inventario, contabilidad y caja sobre un Store.
// Las transacciones se serializan; un error restaura el estado previo.
type TxRunner struct {
	s *Store
}

var (
	_ inventory.TxRunner  = (*TxRunner)(nil)
	_ accounting.TxRunner = (*TxRunner)(nil)
	_ register.TxRunner   = (*TxRunner)(nil)
)

// NewTxRunner construye el runner del almacén.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run transacción del libro de existencias.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
) error) error {
	return r.s.atomically(func() error {
		return fn(r.s.StockMovements(), r.s.Stock())
	})
}

// RunAccounting transacción contable.
func (r *TxRunner) RunAccounting(ctx context.Context, fn func(
	accountRepo repository.AccountRepository,
	movRepo repository.AccountMovementRepository,
) error) error {
	return r.s.atomically(func() error {
		return fn(r.s.Accounts(), r.s.AccountMovements())
	})
}

// RunRegister transacción de sesiones de caja.
func (r *TxRunner) RunRegister(ctx context.Context, fn func(
	registerRepo repository.RegisterRepository,
	sessionRepo repository.RegisterSessionRepository,
	cashRepo repository.RegisterMovementRepository,
) error) error {
	return r.s.atomically(func() error {
		return fn(r.s.Registers(), r.s.Sessions(), r.s.CashMovements())
	})
}

// RunSale transacción de venta; el savepoint restaura solo lo escrito dentro de él.
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	sessionRepo repository.RegisterSessionRepository,
	saleRepo repository.SaleRepository,
	cashRepo repository.RegisterMovementRepository,
	stockRepo repository.StockRepository,
	savepoint inventory.Savepoint,
) error) error {
	savepoint := func(ctx context.Context, inner func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
	) error) error {
		snap := r.s.snapshot()
		if err := inner(r.s.StockMovements(), r.s.Stock()); err != nil {
			r.s.restore(snap)
			return err
		}
		return nil
	}
	return r.s.atomically(func() error {
		return fn(r.s.Sessions(), r.s.Sales(), r.s.CashMovements(), r.s.Stock(), savepoint)
	})
}
