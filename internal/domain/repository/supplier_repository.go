package repository

import (
	"context"

	"github.com/jhoicas/negocio-api/internal/domain/entity"
)

// SupplierRepository define el puerto de proveedores y sus listas de precios.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	// List filtra por nombre, razón social o contacto si query no está vacío.
	List(ctx context.Context, query string) ([]*entity.Supplier, error)
	Retire(ctx context.Context, id string) error

	ListSupplies(ctx context.Context, supplierID string) ([]*entity.SupplierSupply, error)
	// UpsertSupply inserta o actualiza el precio del par (proveedor, insumo).
	UpsertSupply(ctx context.Context, item *entity.SupplierSupply) error
	// RemoveSupply devuelve false si el par no existía.
	RemoveSupply(ctx context.Context, supplierID, supplyID string) (bool, error)
	// OffersForSupply ofertas activas de proveedores activos, precio ascendente.
	OffersForSupply(ctx context.Context, supplyID string) ([]*entity.SupplierSupply, error)
}
