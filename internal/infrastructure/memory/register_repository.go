package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/negocio-api/internal/domain"
	"github.com/jhoicas/negocio-api/internal/domain/entity"
	"github.com/jhoicas/negocio-api/internal/domain/repository"
)

// RegisterRepo cajas en memoria.
type RegisterRepo struct{ s *Store }

var _ repository.RegisterRepository = (*RegisterRepo)(nil)

func (r *RegisterRepo) Create(ctx context.Context, register *entity.Register) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.d.registers[register.ID] = *register
	return nil
}

func (r *RegisterRepo) GetByID(ctx context.Context, id string) (*entity.Register, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	v, ok := r.s.d.registers[id]
	if !ok || !v.Lifecycle.IsActive() {
		return nil, nil
	}
	return &v, nil
}

func (r *RegisterRepo) GetForUpdate(ctx context.Context, id string) (*entity.Register, error) {
	return r.GetByID(ctx, id)
}

func (r *RegisterRepo) List(ctx context.Context) ([]*entity.Register, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Register, 0)
	for _, v := range r.s.d.registers {
		if v.Lifecycle.IsActive() {
			v := v
			out = append(out, &v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// SessionRepo sesiones de caja en memoria.
type SessionRepo struct{ s *Store }

var _ repository.RegisterSessionRepository = (*SessionRepo)(nil)

// Create aplica el mismo invariante que el índice único parcial de Postgres.
func (r *SessionRepo) Create(ctx context.Context, session *entity.RegisterSession) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if session.IsOpen() {
		for _, v := range r.s.d.sessions {
			if v.RegisterID == session.RegisterID && v.IsOpen() {
				return domain.ErrSessionAlreadyOpen
			}
		}
	}
	r.s.d.sessions[session.ID] = *session
	return nil
}

func (r *SessionRepo) GetByID(ctx context.Context, id string) (*entity.RegisterSession, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	v, ok := r.s.d.sessions[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (r *SessionRepo) GetForUpdate(ctx context.Context, id string) (*entity.RegisterSession, error) {
	return r.GetByID(ctx, id)
}

func (r *SessionRepo) GetOpenByRegister(ctx context.Context, registerID string) (*entity.RegisterSession, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, v := range r.s.d.sessions {
		if v.RegisterID == registerID && v.IsOpen() {
			return &v, nil
		}
	}
	return nil, nil
}

func (r *SessionRepo) Close(ctx context.Context, session *entity.RegisterSession) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.d.sessions[session.ID] = *session
	return nil
}

// ListByRegister sesiones abiertas en [from, to], más recientes primero.
func (r *SessionRepo) ListByRegister(ctx context.Context, registerID string, from, to time.Time) ([]*entity.RegisterSession, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.RegisterSession, 0)
	for _, v := range r.s.d.sessions {
		if v.RegisterID != registerID || v.OpenedAt.Before(from) || v.OpenedAt.After(to) {
			continue
		}
		v := v
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OpenedAt.After(out[j].OpenedAt) })
	return out, nil
}

// CashMovementRepo movimientos de caja en memoria.
type CashMovementRepo struct{ s *Store }

var _ repository.RegisterMovementRepository = (*CashMovementRepo)(nil)

func (r *CashMovementRepo) Create(ctx context.Context, movement *entity.RegisterMovement) error {
	if err := r.s.fail("register_movements.create"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.d.cashMovements = append(r.s.d.cashMovements, *movement)
	return nil
}

func (r *CashMovementRepo) ListBySession(ctx context.Context, sessionID string) ([]*entity.RegisterMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.RegisterMovement, 0)
	for _, m := range r.s.d.cashMovements {
		if m.SessionID == sessionID {
			m := m
			out = append(out, &m)
		}
	}
	return out, nil
}

func (r *CashMovementRepo) SaleTotalsByTender(ctx context.Context, sessionID string) (map[string]decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := map[string]decimal.Decimal{}
	for _, m := range r.s.d.cashMovements {
		if m.SessionID != sessionID || m.Kind != entity.RegisterMovementSale {
			continue
		}
		out[m.Tender] = out[m.Tender].Add(m.Amount)
	}
	return out, nil
}

// SaleRepo ventas en memoria.
type SaleRepo struct{ s *Store }

var _ repository.SaleRepository = (*SaleRepo)(nil)

func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	if err := r.s.fail("sales.create"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, v := range r.s.d.sales {
		if v.Number == sale.Number {
			return domain.ErrConflict
		}
	}
	v := *sale
	v.Lines = append([]entity.SaleLine(nil), sale.Lines...)
	r.s.d.sales[sale.ID] = v
	return nil
}

func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	v, ok := r.s.d.sales[id]
	if !ok {
		return nil, nil
	}
	return r.withNames(v), nil
}

func (r *SaleRepo) ListBySession(ctx context.Context, sessionID string) ([]*entity.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Sale, 0)
	for _, v := range r.s.d.sales {
		if v.SessionID == sessionID {
			out = append(out, r.withNames(v))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *SaleRepo) SummaryByDay(ctx context.Context, filter repository.SaleFilter) ([]repository.DailySales, error) {
	byDay := map[time.Time]*repository.DailySales{}
	for _, sale := range r.completed(filter) {
		y, m, d := sale.CreatedAt.Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, sale.CreatedAt.Location())
		row, ok := byDay[day]
		if !ok {
			row = &repository.DailySales{Date: day, Total: decimal.Zero}
			byDay[day] = row
		}
		row.Count++
		row.Total = row.Total.Add(sale.Total)
	}
	out := make([]repository.DailySales, 0, len(byDay))
	for _, row := range byDay {
		row.Average = row.Total.Div(decimal.NewFromInt(int64(row.Count))).Round(2)
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *SaleRepo) TotalsByTender(ctx context.Context, filter repository.SaleFilter) ([]repository.TenderTotal, error) {
	byTender := map[string]*repository.TenderTotal{}
	for _, sale := range r.completed(filter) {
		row, ok := byTender[sale.Tender]
		if !ok {
			row = &repository.TenderTotal{Tender: sale.Tender, Total: decimal.Zero}
			byTender[sale.Tender] = row
		}
		row.Count++
		row.Total = row.Total.Add(sale.Total)
	}
	out := make([]repository.TenderTotal, 0, len(byTender))
	for _, row := range byTender {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Total.GreaterThan(out[j].Total) })
	return out, nil
}

// TopSupplies ordena por número de líneas de venta y luego por unidades.
func (r *SaleRepo) TopSupplies(ctx context.Context, filter repository.SaleFilter, limit int) ([]repository.TopSupply, error) {
	bySupply := map[string]*repository.TopSupply{}
	for _, sale := range r.completed(filter) {
		for _, l := range sale.Lines {
			row, ok := bySupply[l.SupplyID]
			if !ok {
				row = &repository.TopSupply{SupplyID: l.SupplyID, Name: l.SupplyName}
				bySupply[l.SupplyID] = row
			}
			row.SalesCount++
			row.Units += l.Quantity
		}
	}
	out := make([]repository.TopSupply, 0, len(bySupply))
	for _, row := range bySupply {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SalesCount != out[j].SalesCount {
			return out[i].SalesCount > out[j].SalesCount
		}
		if out[i].Units != out[j].Units {
			return out[i].Units > out[j].Units
		}
		return out[i].Name < out[j].Name
	})
	return paginate(out, limit, 0), nil
}

func (r *SaleRepo) completed(filter repository.SaleFilter) []*entity.Sale {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Sale, 0)
	for _, v := range r.s.d.sales {
		if v.State != entity.SaleStateCompleted || v.CreatedAt.Before(filter.From) || v.CreatedAt.After(filter.To) {
			continue
		}
		if filter.RegisterID != "" && r.s.d.sessions[v.SessionID].RegisterID != filter.RegisterID {
			continue
		}
		out = append(out, r.withNames(v))
	}
	return out
}

// withNames completa el nombre de cada línea como lo haría el join con supplies.
func (r *SaleRepo) withNames(v entity.Sale) *entity.Sale {
	lines := make([]entity.SaleLine, len(v.Lines))
	for i, l := range v.Lines {
		if sup, ok := r.s.d.supplies[l.SupplyID]; ok {
			l.SupplyName = sup.Name
		}
		lines[i] = l
	}
	v.Lines = lines
	return &v
}
