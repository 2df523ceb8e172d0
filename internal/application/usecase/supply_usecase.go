package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/negocio-api/internal/application/dto"
	"github.com/jhoicas/negocio-api/internal/domain"
	"github.com/jhoicas/negocio-api/internal/domain/entity"
	"github.com/jhoicas/negocio-api/internal/domain/repository"
)

// SupplyUseCase casos de uso del catálogo de insumos. Las existencias se manejan vía movimientos.
type SupplyUseCase struct {
	repo repository.SupplyRepository
}

// NewSupplyUseCase construye el caso de uso.
func NewSupplyUseCase(repo repository.SupplyRepository) *SupplyUseCase {
	return &SupplyUseCase{repo: repo}
}

// Create crea un insumo activo. Precios y mínimo no pueden ser negativos.
func (uc *SupplyUseCase) Create(ctx context.Context, in dto.CreateSupplyRequest) (*dto.SupplyResponse, error) {
	if strings.TrimSpace(in.Name) == "" || in.MinStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.PurchasePrice.IsNegative() || in.SalePrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitMeasure == "" {
		in.UnitMeasure = entity.DefaultUnitMeasure
	}
	now := time.Now()
	supply := &entity.Supply{
		ID:            uuid.New().String(),
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		Category:      in.Category,
		PurchasePrice: in.PurchasePrice,
		SalePrice:     in.SalePrice,
		MinStock:      in.MinStock,
		UnitMeasure:   in.UnitMeasure,
		Barcode:       in.Barcode,
		Lifecycle:     entity.LifecycleActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, supply); err != nil {
		return nil, domain.Storage("crear insumo", err)
	}
	return toSupplyResponse(supply), nil
}

// GetByID obtiene un insumo activo.
func (uc *SupplyUseCase) GetByID(ctx context.Context, id string) (*dto.SupplyResponse, error) {
	supply, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSupplyResponse(supply), nil
}

// Update actualización parcial de un insumo.
func (uc *SupplyUseCase) Update(ctx context.Context, id string, in dto.UpdateSupplyRequest) (*dto.SupplyResponse, error) {
	supply, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		supply.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		supply.Description = *in.Description
	}
	if in.Category != nil {
		supply.Category = *in.Category
	}
	if in.PurchasePrice != nil {
		if in.PurchasePrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		supply.PurchasePrice = *in.PurchasePrice
	}
	if in.SalePrice != nil {
		if in.SalePrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		supply.SalePrice = *in.SalePrice
	}
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		supply.MinStock = *in.MinStock
	}
	if in.UnitMeasure != nil && *in.UnitMeasure != "" {
		supply.UnitMeasure = *in.UnitMeasure
	}
	if in.Barcode != nil {
		supply.Barcode = *in.Barcode
	}
	supply.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, supply); err != nil {
		return nil, domain.Storage("actualizar insumo", err)
	}
	return toSupplyResponse(supply), nil
}

// List lista insumos activos con paginación.
func (uc *SupplyUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.SupplyListResponse, error) {
	page.DefaultPage()
	return uc.list(ctx, repository.SupplyFilter{Limit: page.Limit, Offset: page.Offset}, page)
}

// Search busca por nombre, descripción o código de barras.
func (uc *SupplyUseCase) Search(ctx context.Context, q string, page dto.PageRequest) (*dto.SupplyListResponse, error) {
	if strings.TrimSpace(q) == "" {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	return uc.list(ctx, repository.SupplyFilter{Query: q, Limit: page.Limit, Offset: page.Offset}, page)
}

// ListByCategory insumos activos de una categoría.
func (uc *SupplyUseCase) ListByCategory(ctx context.Context, category string, page dto.PageRequest) (*dto.SupplyListResponse, error) {
	if category == "" {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	return uc.list(ctx, repository.SupplyFilter{Category: category, Limit: page.Limit, Offset: page.Offset}, page)
}

// Categories categorías distintas de insumos activos.
func (uc *SupplyUseCase) Categories(ctx context.Context) ([]string, error) {
	cats, err := uc.repo.Categories(ctx)
	if err != nil {
		return nil, domain.Storage("listar categorías", err)
	}
	return cats, nil
}

// Delete retira el insumo si tiene stock o ventas asociadas; si no, lo borra físicamente.
func (uc *SupplyUseCase) Delete(ctx context.Context, id string) (*dto.DeleteSupplyResponse, error) {
	if _, err := uc.get(ctx, id); err != nil {
		return nil, err
	}
	referenced, err := uc.repo.IsReferenced(ctx, id)
	if err != nil {
		return nil, domain.Storage("verificar referencias", err)
	}
	if referenced {
		if err := uc.repo.Retire(ctx, id); err != nil {
			return nil, domain.Storage("retirar insumo", err)
		}
		return &dto.DeleteSupplyResponse{ID: id, Retired: true}, nil
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return nil, domain.Storage("eliminar insumo", err)
	}
	return &dto.DeleteSupplyResponse{ID: id}, nil
}

func (uc *SupplyUseCase) get(ctx context.Context, id string) (*entity.Supply, error) {
	supply, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Storage("leer insumo", err)
	}
	if supply == nil {
		return nil, domain.ErrNotFound
	}
	return supply, nil
}

func (uc *SupplyUseCase) list(ctx context.Context, filter repository.SupplyFilter, page dto.PageRequest) (*dto.SupplyListResponse, error) {
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, domain.Storage("listar insumos", err)
	}
	items := make([]dto.SupplyResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSupplyResponse(s))
	}
	return &dto.SupplyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toSupplyResponse(s *entity.Supply) *dto.SupplyResponse {
	return &dto.SupplyResponse{
		ID:            s.ID,
		Name:          s.Name,
		Description:   s.Description,
		Category:      s.Category,
		PurchasePrice: s.PurchasePrice,
		SalePrice:     s.SalePrice,
		MinStock:      s.MinStock,
		UnitMeasure:   s.UnitMeasure,
		Barcode:       s.Barcode,
		Lifecycle:     string(s.Lifecycle),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

