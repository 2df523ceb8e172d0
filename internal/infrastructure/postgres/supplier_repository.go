package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/negocio-api/internal/domain/entity"
	"github.com/jhoicas/negocio-api/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo proveedores y listas de precios sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador de proveedores.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

const supplierColumns = `id, name, legal_name, tax_id, phone, email, address, city, state, postal_code,
	contact_name, contact_phone, contact_email, payment_terms, credit_days, lifecycle, created_at, updated_at`

func scanSupplier(row pgx.Row) (*entity.Supplier, error) {
	var s entity.Supplier
	var lifecycle string
	err := row.Scan(&s.ID, &s.Name, &s.LegalName, &s.TaxID, &s.Phone, &s.Email, &s.Address, &s.City, &s.State,
		&s.PostalCode, &s.ContactName, &s.ContactPhone, &s.ContactEmail, &s.PaymentTerms, &s.CreditDays,
		&lifecycle, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	s.Lifecycle = entity.Lifecycle(lifecycle)
	return &s, nil
}

// Create persiste un proveedor.
func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO suppliers (`+supplierColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		s.ID, s.Name, s.LegalName, s.TaxID, s.Phone, s.Email, s.Address, s.City, s.State, s.PostalCode,
		s.ContactName, s.ContactPhone, s.ContactEmail, s.PaymentTerms, s.CreditDays, string(s.Lifecycle),
		s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// GetByID proveedor activo.
func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	s, err := scanSupplier(r.q.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id = $1 AND lifecycle = 'active'`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return s, nil
}

// Update actualiza los datos del proveedor.
func (r *SupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	_, err := r.q.Exec(ctx, `
		UPDATE suppliers SET name = $2, legal_name = $3, tax_id = $4, phone = $5, email = $6, address = $7,
			city = $8, state = $9, postal_code = $10, contact_name = $11, contact_phone = $12,
			contact_email = $13, payment_terms = $14, credit_days = $15, updated_at = $16
		WHERE id = $1`,
		s.ID, s.Name, s.LegalName, s.TaxID, s.Phone, s.Email, s.Address, s.City, s.State, s.PostalCode,
		s.ContactName, s.ContactPhone, s.ContactEmail, s.PaymentTerms, s.CreditDays, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update supplier: %w", err)
	}
	return nil
}

// List proveedores activos; query busca en nombre, razón social y contacto.
func (r *SupplierRepo) List(ctx context.Context, query string) ([]*entity.Supplier, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+supplierColumns+` FROM suppliers
		WHERE lifecycle = 'active'
		  AND ($1 = '' OR name ILIKE $2 OR legal_name ILIKE $2 OR contact_name ILIKE $2)
		ORDER BY name`, query, likePattern(query))
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Supplier, 0)
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Retire marca el proveedor como retirado.
func (r *SupplierRepo) Retire(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `UPDATE suppliers SET lifecycle = 'retired', updated_at = now() WHERE id = $1`, id); err != nil {
		return fmt.Errorf("retire supplier: %w", err)
	}
	return nil
}

// ofertas activas de proveedores e insumos activos, con nombres del join.
const offerQuery = `
	SELECT ss.id, ss.supplier_id, sp.name, ss.supply_id, su.name, ss.price, ss.lead_days, ss.min_quantity, ss.active, ss.created_at
	FROM supplier_supplies ss
	JOIN suppliers sp ON sp.id = ss.supplier_id AND sp.lifecycle = 'active'
	JOIN supplies su ON su.id = ss.supply_id AND su.lifecycle = 'active'
	WHERE ss.active`

func (r *SupplierRepo) offers(ctx context.Context, query string, arg string) ([]*entity.SupplierSupply, error) {
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list supplier supplies: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.SupplierSupply, 0)
	for rows.Next() {
		var it entity.SupplierSupply
		if err := rows.Scan(&it.ID, &it.SupplierID, &it.SupplierName, &it.SupplyID, &it.SupplyName, &it.Price,
			&it.LeadDays, &it.MinQuantity, &it.Active, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier supply: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// ListSupplies lista de precios del proveedor por nombre de insumo.
func (r *SupplierRepo) ListSupplies(ctx context.Context, supplierID string) ([]*entity.SupplierSupply, error) {
	return r.offers(ctx, offerQuery+` AND ss.supplier_id = $1 ORDER BY su.name`, supplierID)
}

// OffersForSupply ofertas del insumo, más barata primero.
func (r *SupplierRepo) OffersForSupply(ctx context.Context, supplyID string) ([]*entity.SupplierSupply, error) {
	return r.offers(ctx, offerQuery+` AND ss.supply_id = $1 ORDER BY ss.price, sp.name`, supplyID)
}

// UpsertSupply inserta o actualiza el precio del par; conserva id y fecha de alta existentes.
func (r *SupplierRepo) UpsertSupply(ctx context.Context, it *entity.SupplierSupply) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO supplier_supplies (id, supplier_id, supply_id, price, lead_days, min_quantity, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (supplier_id, supply_id)
		DO UPDATE SET price = EXCLUDED.price, lead_days = EXCLUDED.lead_days,
			min_quantity = EXCLUDED.min_quantity, active = EXCLUDED.active
		RETURNING id, created_at`,
		it.ID, it.SupplierID, it.SupplyID, it.Price, it.LeadDays, it.MinQuantity, it.Active, it.CreatedAt,
	).Scan(&it.ID, &it.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert supplier supply: %w", err)
	}
	return nil
}

// RemoveSupply devuelve false si el par no existía.
func (r *SupplierRepo) RemoveSupply(ctx context.Context, supplierID, supplyID string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM supplier_supplies WHERE supplier_id = $1 AND supply_id = $2`, supplierID, supplyID)
	if err != nil {
		return false, fmt.Errorf("remove supplier supply: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
