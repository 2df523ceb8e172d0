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

// PaymentUseCase ingresos y egresos registrados fuera de caja.
type PaymentUseCase struct {
	repo         repository.PaymentRepository
	supplierRepo repository.SupplierRepository
	now          func() time.Time
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(repo repository.PaymentRepository, supplierRepo repository.SupplierRepository) *PaymentUseCase {
	return &PaymentUseCase{repo: repo, supplierRepo: supplierRepo, now: time.Now}
}

// Create registra un pago. Método por defecto efectivo, estado por defecto completado.
func (uc *PaymentUseCase) Create(ctx context.Context, userID string, in dto.PaymentRequest) (*dto.PaymentResponse, error) {
	p := &entity.Payment{ID: uuid.New().String(), CreatedBy: userID}
	if err := uc.apply(ctx, p, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, domain.Storage("crear pago", err)
	}
	return toPaymentResponse(p), nil
}

// GetByID obtiene un pago.
func (uc *PaymentUseCase) GetByID(ctx context.Context, id string) (*dto.PaymentResponse, error) {
	p, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPaymentResponse(p), nil
}

// Update reemplaza los datos del pago (admin).
func (uc *PaymentUseCase) Update(ctx context.Context, id string, in dto.PaymentRequest) (*dto.PaymentResponse, error) {
	p, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.PaidAt == nil {
		paid := p.PaidAt
		in.PaidAt = &paid
	}
	if err := uc.apply(ctx, p, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, domain.Storage("actualizar pago", err)
	}
	return toPaymentResponse(p), nil
}

// Delete elimina un pago (admin).
func (uc *PaymentUseCase) Delete(ctx context.Context, id string) error {
	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return domain.Storage("eliminar pago", err)
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

// List pagos filtrados por tipo y rango inclusivo de fechas (YYYY-MM-DD, opcionales).
func (uc *PaymentUseCase) List(ctx context.Context, paymentType, startStr, endStr string) ([]dto.PaymentResponse, error) {
	if paymentType != "" && paymentType != entity.PaymentTypeIncome && paymentType != entity.PaymentTypeExpense {
		return nil, domain.ErrInvalidInput
	}
	filter := repository.PaymentFilter{Type: paymentType}
	now := uc.now()
	if startStr != "" {
		start, err := dto.ParseDate(startStr, now)
		if err != nil {
			return nil, err
		}
		filter.From = &start
	}
	if endStr != "" {
		end, err := dto.ParseDate(endStr, now)
		if err != nil {
			return nil, err
		}
		end = dto.EndOfDay(end)
		filter.To = &end
	}
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, domain.Storage("listar pagos", err)
	}
	out := make([]dto.PaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toPaymentResponse(p))
	}
	return out, nil
}

// Categories categorías de pago activas.
func (uc *PaymentUseCase) Categories(ctx context.Context) ([]dto.PaymentCategoryResponse, error) {
	cats, err := uc.repo.Categories(ctx)
	if err != nil {
		return nil, domain.Storage("listar categorías de pago", err)
	}
	out := make([]dto.PaymentCategoryResponse, 0, len(cats))
	for _, c := range cats {
		out = append(out, dto.PaymentCategoryResponse{ID: c.ID, Name: c.Name, Type: c.Type, Description: c.Description})
	}
	return out, nil
}

// Report totales por tipo y método en el periodo; neto = ingresos - egresos.
func (uc *PaymentUseCase) Report(ctx context.Context, startStr, endStr string) (*dto.PaymentReportDTO, error) {
	start, end, err := dto.ParsePeriod(startStr, endStr, uc.now())
	if err != nil {
		return nil, err
	}
	totals, err := uc.repo.Totals(ctx, start, end)
	if err != nil {
		return nil, domain.Storage("totalizar pagos", err)
	}
	report := BuildPaymentReport(totals)
	report.Start = start.Format(dto.DateLayout)
	report.End = end.Format(dto.DateLayout)
	return report, nil
}

// BuildPaymentReport agrupa los totales por tipo y conserva el detalle por método.
func BuildPaymentReport(totals []repository.PaymentTotal) *dto.PaymentReportDTO {
	report := &dto.PaymentReportDTO{
		ByType:       []dto.PaymentTotalDTO{},
		ByMethod:     make([]dto.PaymentTotalDTO, 0, len(totals)),
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}
	byType := map[string]*dto.PaymentTotalDTO{}
	for _, t := range totals {
		report.ByMethod = append(report.ByMethod, dto.PaymentTotalDTO{Type: t.Type, Method: t.Method, Count: t.Count, Total: t.Total})
		row, ok := byType[t.Type]
		if !ok {
			row = &dto.PaymentTotalDTO{Type: t.Type, Total: decimal.Zero}
			byType[t.Type] = row
		}
		row.Count += t.Count
		row.Total = row.Total.Add(t.Total)
		switch t.Type {
		case entity.PaymentTypeIncome:
			report.TotalIncome = report.TotalIncome.Add(t.Total)
		case entity.PaymentTypeExpense:
			report.TotalExpense = report.TotalExpense.Add(t.Total)
		}
	}
	for _, typ := range []string{entity.PaymentTypeIncome, entity.PaymentTypeExpense} {
		if row, ok := byType[typ]; ok {
			report.ByType = append(report.ByType, *row)
		}
	}
	report.Net = report.TotalIncome.Sub(report.TotalExpense)
	return report
}

func (uc *PaymentUseCase) apply(ctx context.Context, p *entity.Payment, in dto.PaymentRequest) error {
	if in.Type != entity.PaymentTypeIncome && in.Type != entity.PaymentTypeExpense {
		return domain.ErrInvalidInput
	}
	if strings.TrimSpace(in.Concept) == "" {
		return domain.ErrInvalidInput
	}
	if !in.Amount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	method := in.Method
	if method == "" {
		method = entity.PaymentMethodCash
	}
	if !isValidPaymentMethod(method) {
		return domain.ErrInvalidInput
	}
	state := in.State
	if state == "" {
		state = entity.PaymentStateCompleted
	}
	if !isValidPaymentState(state) {
		return domain.ErrInvalidInput
	}
	if in.SupplierID != nil && *in.SupplierID != "" {
		s, err := uc.supplierRepo.GetByID(ctx, *in.SupplierID)
		if err != nil {
			return domain.Storage("leer proveedor", err)
		}
		if s == nil {
			return domain.ErrNotFound
		}
		p.SupplierName = s.Name
	} else {
		in.SupplierID = nil
		p.SupplierName = ""
	}

	p.Type = in.Type
	p.Concept = strings.TrimSpace(in.Concept)
	p.Description = in.Description
	p.Amount = in.Amount
	p.Method = method
	p.Reference = in.Reference
	p.SupplierID = in.SupplierID
	p.CustomerName = in.CustomerName
	p.CustomerEmail = in.CustomerEmail
	p.State = state
	p.DueAt = in.DueAt
	p.Notes = in.Notes
	p.PaidAt = uc.now()
	if in.PaidAt != nil {
		p.PaidAt = *in.PaidAt
	}
	return nil
}

func (uc *PaymentUseCase) get(ctx context.Context, id string) (*entity.Payment, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Storage("leer pago", err)
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func isValidPaymentMethod(m string) bool {
	switch m {
	case entity.PaymentMethodCash, entity.PaymentMethodCard, entity.PaymentMethodTransfer,
		entity.PaymentMethodCheck, entity.PaymentMethodOther:
		return true
	}
	return false
}

func isValidPaymentState(s string) bool {
	switch s {
	case entity.PaymentStatePending, entity.PaymentStateCompleted, entity.PaymentStateCancelled, entity.PaymentStateRefunded:
		return true
	}
	return false
}

func toPaymentResponse(p *entity.Payment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		ID:            p.ID,
		Type:          p.Type,
		Concept:       p.Concept,
		Description:   p.Description,
		Amount:        p.Amount,
		Method:        p.Method,
		Reference:     p.Reference,
		SupplierID:    p.SupplierID,
		SupplierName:  p.SupplierName,
		CustomerName:  p.CustomerName,
		CustomerEmail: p.CustomerEmail,
		State:         p.State,
		PaidAt:        p.PaidAt,
		DueAt:         p.DueAt,
		CreatedBy:     p.CreatedBy,
		Notes:         p.Notes,
	}
}
