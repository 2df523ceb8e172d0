package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/negocio-api/internal/domain"
	"github.com/jhoicas/negocio-api/internal/domain/entity"
	"github.com/jhoicas/negocio-api/internal/domain/repository"
)

// SupplierRepo proveedores y listas de precios en memoria.
type SupplierRepo struct{ s *Store }

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

func (r *SupplierRepo) Create(ctx context.Context, supplier *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.d.suppliers[supplier.ID] = *supplier
	return nil
}

func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	v, ok := r.s.d.suppliers[id]
	if !ok || !v.Lifecycle.IsActive() {
		return nil, nil
	}
	return &v, nil
}

func (r *SupplierRepo) Update(ctx context.Context, supplier *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.d.suppliers[supplier.ID]; ok {
		r.s.d.suppliers[supplier.ID] = *supplier
	}
	return nil
}

func (r *SupplierRepo) List(ctx context.Context, query string) ([]*entity.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]*entity.Supplier, 0)
	for _, v := range r.s.d.suppliers {
		if !v.Lifecycle.IsActive() {
			continue
		}
		if q != "" && !containsFold(q, v.Name, v.LegalName, v.ContactName) {
			continue
		}
		v := v
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *SupplierRepo) Retire(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if v, ok := r.s.d.suppliers[id]; ok {
		v.Lifecycle.Retire()
		r.s.d.suppliers[id] = v
	}
	return nil
}

func (r *SupplierRepo) ListSupplies(ctx context.Context, supplierID string) ([]*entity.SupplierSupply, error) {
	return r.offers(func(it entity.SupplierSupply) bool { return it.SupplierID == supplierID }, func(a, b *entity.SupplierSupply) bool {
		return a.SupplyName < b.SupplyName
	}), nil
}

func (r *SupplierRepo) UpsertSupply(ctx context.Context, item *entity.SupplierSupply) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := supplierSupplyKey{item.SupplierID, item.SupplyID}
	if prev, ok := r.s.d.supplierSupplies[key]; ok {
		item.ID = prev.ID
		item.CreatedAt = prev.CreatedAt
	}
	r.s.d.supplierSupplies[key] = *item
	return nil
}

func (r *SupplierRepo) RemoveSupply(ctx context.Context, supplierID, supplyID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := supplierSupplyKey{supplierID, supplyID}
	if _, ok := r.s.d.supplierSupplies[key]; !ok {
		return false, nil
	}
	delete(r.s.d.supplierSupplies, key)
	return true, nil
}

func (r *SupplierRepo) OffersForSupply(ctx context.Context, supplyID string) ([]*entity.SupplierSupply, error) {
	return r.offers(func(it entity.SupplierSupply) bool { return it.SupplyID == supplyID }, func(a, b *entity.SupplierSupply) bool {
		if !a.Price.Equal(b.Price) {
			return a.Price.LessThan(b.Price)
		}
		return a.SupplierName < b.SupplierName
	}), nil
}

// offers solo ofertas activas de proveedores e insumos activos, con nombres del join.
func (r *SupplierRepo) offers(keep func(entity.SupplierSupply) bool, less func(a, b *entity.SupplierSupply) bool) []*entity.SupplierSupply {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.SupplierSupply, 0)
	for _, it := range r.s.d.supplierSupplies {
		if !it.Active || !keep(it) {
			continue
		}
		sup, ok := r.s.d.suppliers[it.SupplierID]
		if !ok || !sup.Lifecycle.IsActive() {
			continue
		}
		item, ok := r.s.d.supplies[it.SupplyID]
		if !ok || !item.Lifecycle.IsActive() {
			continue
		}
		it.SupplierName = sup.Name
		it.SupplyName = item.Name
		out = append(out, &it)
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// PaymentRepo pagos en memoria.
type PaymentRepo struct{ s *Store }

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

func (r *PaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.d.payments[payment.ID] = *payment
	return nil
}

func (r *PaymentRepo) GetByID(ctx context.Context, id string) (*entity.Payment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	v, ok := r.s.d.payments[id]
	if !ok {
		return nil, nil
	}
	return r.withSupplier(v), nil
}

func (r *PaymentRepo) Update(ctx context.Context, payment *entity.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.d.payments[payment.ID]; ok {
		r.s.d.payments[payment.ID] = *payment
	}
	return nil
}

func (r *PaymentRepo) Delete(ctx context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.d.payments[id]; !ok {
		return false, nil
	}
	delete(r.s.d.payments, id)
	return true, nil
}

// List más recientes primero.
func (r *PaymentRepo) List(ctx context.Context, filter repository.PaymentFilter) ([]*entity.Payment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Payment, 0)
	for _, v := range r.s.d.payments {
		if filter.Type != "" && v.Type != filter.Type {
			continue
		}
		if filter.From != nil && v.PaidAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && v.PaidAt.After(*filter.To) {
			continue
		}
		out = append(out, r.withSupplier(v))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PaidAt.After(out[j].PaidAt) })
	return out, nil
}

func (r *PaymentRepo) Categories(ctx context.Context) ([]*entity.PaymentCategory, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.PaymentCategory, 0, len(r.s.d.categories))
	for _, c := range r.s.d.categories {
		if c.Active {
			c := c
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *PaymentRepo) Totals(ctx context.Context, from, to time.Time) ([]repository.PaymentTotal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	type key struct{ typ, method string }
	byKey := map[key]*repository.PaymentTotal{}
	for _, v := range r.s.d.payments {
		if v.State == entity.PaymentStateCancelled || v.PaidAt.Before(from) || v.PaidAt.After(to) {
			continue
		}
		k := key{v.Type, v.Method}
		row, ok := byKey[k]
		if !ok {
			row = &repository.PaymentTotal{Type: v.Type, Method: v.Method, Total: decimal.Zero}
			byKey[k] = row
		}
		row.Count++
		row.Total = row.Total.Add(v.Amount)
	}
	out := make([]repository.PaymentTotal, 0, len(byKey))
	for _, row := range byKey {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		return out[i].Method < out[j].Method
	})
	return out, nil
}

func (r *PaymentRepo) withSupplier(v entity.Payment) *entity.Payment {
	if v.SupplierID != nil {
		if sup, ok := r.s.d.suppliers[*v.SupplierID]; ok {
			v.SupplierName = sup.Name
		}
	}
	return &v
}

// UserRepo usuarios en memoria.
type UserRepo struct{ s *Store }

var _ repository.UserRepository = (*UserRepo)(nil)

// Create respeta la unicidad de email y usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, v := range r.s.d.users {
		if strings.EqualFold(v.Email, user.Email) || strings.EqualFold(v.Username, user.Username) {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.d.users[user.ID] = *user
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	v, ok := r.s.d.users[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return strings.EqualFold(u.Email, email) }), nil
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return strings.EqualFold(u.Username, username) }), nil
}

func (r *UserRepo) find(match func(entity.User) bool) *entity.User {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, v := range r.s.d.users {
		if match(v) {
			return &v
		}
	}
	return nil
}

func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, v := range r.s.d.users {
		if id != user.ID && (strings.EqualFold(v.Email, user.Email) || strings.EqualFold(v.Username, user.Username)) {
			return domain.ErrEmailAlreadyExists
		}
	}
	if _, ok := r.s.d.users[user.ID]; ok {
		r.s.d.users[user.ID] = *user
	}
	return nil
}

func (r *UserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if v, ok := r.s.d.users[id]; ok {
		v.PasswordHash = passwordHash
		v.UpdatedAt = time.Now()
		r.s.d.users[id] = v
	}
	return nil
}

func (r *UserRepo) List(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.User, 0, len(r.s.d.users))
	for _, v := range r.s.d.users {
		v := v
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return paginate(out, limit, offset), nil
}

func (r *UserRepo) CountAdmins(ctx context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, v := range r.s.d.users {
		if v.Role == entity.RoleAdmin && v.Status == entity.UserStatusActive {
			n++
		}
	}
	return n, nil
}

// EmailConfigRepo configuración del reporte mensual en memoria.
type EmailConfigRepo struct{ s *Store }

var _ repository.EmailConfigRepository = (*EmailConfigRepo)(nil)

func (r *EmailConfigRepo) Get(ctx context.Context) (*entity.EmailConfig, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.d.emailConfig == nil {
		return nil, nil
	}
	cfg := *r.s.d.emailConfig
	return &cfg, nil
}

func (r *EmailConfigRepo) Save(ctx context.Context, cfg *entity.EmailConfig) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *cfg
	r.s.d.emailConfig = &c
	return nil
}
