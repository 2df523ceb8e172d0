package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/negocio-api/internal/domain/entity"
	"github.com/jhoicas/negocio-api/internal/domain/repository"
)

// SupplyRepo catálogo en memoria.
type SupplyRepo struct{ s *Store }

var _ repository.SupplyRepository = (*SupplyRepo)(nil)

func (r *SupplyRepo) Create(ctx context.Context, supply *entity.Supply) error {
	if err := r.s.fail("supplies.create"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.d.supplies[supply.ID] = *supply
	return nil
}

func (r *SupplyRepo) GetByID(ctx context.Context, id string) (*entity.Supply, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	v, ok := r.s.d.supplies[id]
	if !ok || !v.Lifecycle.IsActive() {
		return nil, nil
	}
	return &v, nil
}

func (r *SupplyRepo) Update(ctx context.Context, supply *entity.Supply) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.d.supplies[supply.ID]; !ok {
		return nil
	}
	r.s.d.supplies[supply.ID] = *supply
	return nil
}

func (r *SupplyRepo) List(ctx context.Context, filter repository.SupplyFilter) ([]*entity.Supply, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	q := strings.ToLower(strings.TrimSpace(filter.Query))
	out := make([]*entity.Supply, 0)
	for _, v := range r.s.d.supplies {
		if !v.Lifecycle.IsActive() {
			continue
		}
		if filter.Category != "" && v.Category != filter.Category {
			continue
		}
		if q != "" && !containsFold(q, v.Name, v.Description, v.Barcode) {
			continue
		}
		v := v
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, filter.Limit, filter.Offset), nil
}

func (r *SupplyRepo) Categories(ctx context.Context) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	seen := map[string]bool{}
	out := make([]string, 0)
	for _, v := range r.s.d.supplies {
		if !v.Lifecycle.IsActive() || v.Category == "" || seen[v.Category] {
			continue
		}
		seen[v.Category] = true
		out = append(out, v.Category)
	}
	sort.Strings(out)
	return out, nil
}

func (r *SupplyRepo) IsReferenced(ctx context.Context, id string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if _, ok := r.s.d.stock[id]; ok {
		return true, nil
	}
	for _, sale := range r.s.d.sales {
		for _, l := range sale.Lines {
			if l.SupplyID == id {
				return true, nil
			}
		}
	}
	return false, nil
}

func (r *SupplyRepo) Retire(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.d.supplies[id]
	if !ok {
		return nil
	}
	v.Lifecycle.Retire()
	r.s.d.supplies[id] = v
	return nil
}

func (r *SupplyRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.d.supplies, id)
	return nil
}

// StockRepo existencias en memoria.
type StockRepo struct{ s *Store }

var _ repository.StockRepository = (*StockRepo)(nil)

func (r *StockRepo) Get(ctx context.Context, supplyID string) (*entity.StockRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if v, ok := r.s.d.stock[supplyID]; ok {
		return &v, nil
	}
	return &entity.StockRecord{SupplyID: supplyID}, nil
}

// GetForUpdate crea la fila en cero si falta; el bloqueo lo da la serialización de transacciones.
func (r *StockRepo) GetForUpdate(ctx context.Context, supplyID string) (*entity.StockRecord, error) {
	if err := r.s.fail("stock.get_for_update"); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.d.stock[supplyID]
	if !ok {
		v = entity.StockRecord{SupplyID: supplyID}
		r.s.d.stock[supplyID] = v
	}
	return &v, nil
}

func (r *StockRepo) Upsert(ctx context.Context, stock *entity.StockRecord) error {
	if err := r.s.fail("stock.upsert"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.d.stock[stock.SupplyID] = *stock
	return nil
}

func (r *StockRepo) ListWithSupply(ctx context.Context) ([]repository.StockView, error) {
	return r.views(func(repository.StockView) bool { return true }), nil
}

func (r *StockRepo) ListLowStock(ctx context.Context) ([]repository.StockView, error) {
	return r.views(func(v repository.StockView) bool { return v.Stock.OnHand <= v.Supply.MinStock }), nil
}

func (r *StockRepo) views(keep func(repository.StockView) bool) []repository.StockView {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]repository.StockView, 0)
	for _, sup := range r.s.d.supplies {
		if !sup.Lifecycle.IsActive() {
			continue
		}
		rec, ok := r.s.d.stock[sup.ID]
		if !ok {
			rec = entity.StockRecord{SupplyID: sup.ID}
		}
		v := repository.StockView{Supply: sup, Stock: rec, HasRecord: ok}
		if keep(v) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Supply.Name < out[j].Supply.Name })
	return out
}

// StockMovementRepo historial de stock en memoria.
type StockMovementRepo struct{ s *Store }

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

func (r *StockMovementRepo) Create(ctx context.Context, movement *entity.StockMovement) error {
	if err := r.s.fail("stock_movements.create"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.d.stockMovements = append(r.s.d.stockMovements, *movement)
	return nil
}

// List más recientes primero.
func (r *StockMovementRepo) List(ctx context.Context, filter repository.StockMovementFilter) ([]*entity.StockMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.StockMovement, 0)
	for i := len(r.s.d.stockMovements) - 1; i >= 0; i-- {
		m := r.s.d.stockMovements[i]
		if filter.SupplyID != "" && m.SupplyID != filter.SupplyID {
			continue
		}
		if filter.From != nil && m.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && m.CreatedAt.After(*filter.To) {
			continue
		}
		if sup, ok := r.s.d.supplies[m.SupplyID]; ok {
			m.SupplyName = sup.Name
		}
		out = append(out, &m)
	}
	return paginate(out, filter.Limit, filter.Offset), nil
}

func containsFold(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return items[:0]
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
