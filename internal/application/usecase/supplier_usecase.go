package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/negocio-api/internal/application/dto"
	"github.com/jhoicas/negocio-api/internal/domain"
	"github.com/jhoicas/negocio-api/internal/domain/entity"
	"github.com/jhoicas/negocio-api/internal/domain/repository"
)

// SupplierUseCase proveedores y sus listas de precios.
type SupplierUseCase struct {
	repo       repository.SupplierRepository
	supplyRepo repository.SupplyRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository, supplyRepo repository.SupplyRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo, supplyRepo: supplyRepo}
}

// Create registra un proveedor activo.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	if strings.TrimSpace(in.Name) == "" || in.CreditDays < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	s := &entity.Supplier{
		ID:        uuid.New().String(),
		Lifecycle: entity.LifecycleActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applySupplierRequest(s, in)
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, domain.Storage("crear proveedor", err)
	}
	return toSupplierResponse(s), nil
}

// GetByID obtiene un proveedor activo.
func (uc *SupplierUseCase) GetByID(ctx context.Context, id string) (*dto.SupplierResponse, error) {
	s, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// Update reemplaza los datos del proveedor.
func (uc *SupplierUseCase) Update(ctx context.Context, id string, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	if strings.TrimSpace(in.Name) == "" || in.CreditDays < 0 {
		return nil, domain.ErrInvalidInput
	}
	s, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	applySupplierRequest(s, in)
	s.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, domain.Storage("actualizar proveedor", err)
	}
	return toSupplierResponse(s), nil
}

// List proveedores activos; query filtra por nombre o contacto.
func (uc *SupplierUseCase) List(ctx context.Context, query string) ([]dto.SupplierResponse, error) {
	list, err := uc.repo.List(ctx, query)
	if err != nil {
		return nil, domain.Storage("listar proveedores", err)
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSupplierResponse(s))
	}
	return out, nil
}

// Delete retira el proveedor; sus precios dejan de ofrecerse.
func (uc *SupplierUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	if err := uc.repo.Retire(ctx, id); err != nil {
		return domain.Storage("retirar proveedor", err)
	}
	return nil
}

// Supplies lista de precios del proveedor.
func (uc *SupplierUseCase) Supplies(ctx context.Context, supplierID string) ([]dto.SupplierSupplyResponse, error) {
	if _, err := uc.get(ctx, supplierID); err != nil {
		return nil, err
	}
	items, err := uc.repo.ListSupplies(ctx, supplierID)
	if err != nil {
		return nil, domain.Storage("listar precios de proveedor", err)
	}
	return toSupplierSupplyResponses(items), nil
}

// AddSupply inserta o actualiza el precio del par (proveedor, insumo).
func (uc *SupplierUseCase) AddSupply(ctx context.Context, supplierID string, in dto.SupplierSupplyRequest) (*dto.SupplierSupplyResponse, error) {
	if in.Price.IsNegative() || in.LeadDays < 0 || in.MinQuantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.MinQuantity == 0 {
		in.MinQuantity = 1
	}
	supplier, err := uc.get(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	supply, err := uc.supplyRepo.GetByID(ctx, in.SupplyID)
	if err != nil {
		return nil, domain.Storage("leer insumo", err)
	}
	if supply == nil {
		return nil, domain.ErrNotFound
	}
	item := &entity.SupplierSupply{
		ID:           uuid.New().String(),
		SupplierID:   supplier.ID,
		SupplierName: supplier.Name,
		SupplyID:     supply.ID,
		SupplyName:   supply.Name,
		Price:        in.Price,
		LeadDays:     in.LeadDays,
		MinQuantity:  in.MinQuantity,
		Active:       true,
		CreatedAt:    time.Now(),
	}
	if err := uc.repo.UpsertSupply(ctx, item); err != nil {
		return nil, domain.Storage("guardar precio de proveedor", err)
	}
	out := toSupplierSupplyResponses([]*entity.SupplierSupply{item})
	return &out[0], nil
}

// RemoveSupply quita el insumo de la lista del proveedor.
func (uc *SupplierUseCase) RemoveSupply(ctx context.Context, supplierID, supplyID string) error {
	removed, err := uc.repo.RemoveSupply(ctx, supplierID, supplyID)
	if err != nil {
		return domain.Storage("quitar precio de proveedor", err)
	}
	if !removed {
		return domain.ErrNotFound
	}
	return nil
}

// BestPrice todas las ofertas del insumo, la más barata primero. Sin ofertas -> ErrNotFound.
func (uc *SupplierUseCase) BestPrice(ctx context.Context, supplyID string) (*dto.BestPriceDTO, error) {
	offers, err := uc.repo.OffersForSupply(ctx, supplyID)
	if err != nil {
		return nil, domain.Storage("leer ofertas", err)
	}
	if len(offers) == 0 {
		return nil, domain.ErrNotFound
	}
	list := toSupplierSupplyResponses(offers)
	return &dto.BestPriceDTO{SupplyID: supplyID, Best: list[0], Offers: list}, nil
}

// Report número de insumos y precios promedio, mínimo y máximo del proveedor.
func (uc *SupplierUseCase) Report(ctx context.Context, supplierID string) (*dto.SupplierReportDTO, error) {
	s, err := uc.get(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	return uc.report(ctx, s)
}

// ReportAll una fila por proveedor activo.
func (uc *SupplierUseCase) ReportAll(ctx context.Context) ([]dto.SupplierReportDTO, error) {
	list, err := uc.repo.List(ctx, "")
	if err != nil {
		return nil, domain.Storage("listar proveedores", err)
	}
	out := make([]dto.SupplierReportDTO, 0, len(list))
	for _, s := range list {
		r, err := uc.report(ctx, s)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, nil
}

func (uc *SupplierUseCase) report(ctx context.Context, s *entity.Supplier) (*dto.SupplierReportDTO, error) {
	items, err := uc.repo.ListSupplies(ctx, s.ID)
	if err != nil {
		return nil, domain.Storage("listar precios de proveedor", err)
	}
	r := &dto.SupplierReportDTO{
		Supplier:     *toSupplierResponse(s),
		SupplyCount:  len(items),
		AveragePrice: decimal.Zero,
		MinPrice:     decimal.Zero,
		MaxPrice:     decimal.Zero,
	}
	if len(items) == 0 {
		return r, nil
	}
	sum := decimal.Zero
	r.MinPrice, r.MaxPrice = items[0].Price, items[0].Price
	for _, it := range items {
		sum = sum.Add(it.Price)
		r.MinPrice = decimal.Min(r.MinPrice, it.Price)
		r.MaxPrice = decimal.Max(r.MaxPrice, it.Price)
	}
	r.AveragePrice = sum.Div(decimal.NewFromInt(int64(len(items)))).Round(2)
	return r, nil
}

func (uc *SupplierUseCase) get(ctx context.Context, id string) (*entity.Supplier, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Storage("leer proveedor", err)
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func applySupplierRequest(s *entity.Supplier, in dto.SupplierRequest) {
	s.Name = strings.TrimSpace(in.Name)
	s.LegalName = in.LegalName
	s.TaxID = in.TaxID
	s.Phone = in.Phone
	s.Email = in.Email
	s.Address = in.Address
	s.City = in.City
	s.State = in.State
	s.PostalCode = in.PostalCode
	s.ContactName = in.ContactName
	s.ContactPhone = in.ContactPhone
	s.ContactEmail = in.ContactEmail
	s.PaymentTerms = in.PaymentTerms
	s.CreditDays = in.CreditDays
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:           s.ID,
		Name:         s.Name,
		LegalName:    s.LegalName,
		TaxID:        s.TaxID,
		Phone:        s.Phone,
		Email:        s.Email,
		Address:      s.Address,
		City:         s.City,
		State:        s.State,
		PostalCode:   s.PostalCode,
		ContactName:  s.ContactName,
		ContactPhone: s.ContactPhone,
		ContactEmail: s.ContactEmail,
		PaymentTerms: s.PaymentTerms,
		CreditDays:   s.CreditDays,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func toSupplierSupplyResponses(items []*entity.SupplierSupply) []dto.SupplierSupplyResponse {
	out := make([]dto.SupplierSupplyResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.SupplierSupplyResponse{
			SupplierID:   it.SupplierID,
			SupplierName: it.SupplierName,
			SupplyID:     it.SupplyID,
			SupplyName:   it.SupplyName,
			Price:        it.Price,
			LeadDays:     it.LeadDays,
			MinQuantity:  it.MinQuantity,
		})
	}
	return out
}
