package register

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/negocio-api/internal/application/dto"
	"github.com/jhoicas/negocio-api/internal/domain"
	"github.com/jhoicas/negocio-api/internal/domain/repository"
)

// DailySales ventas completadas del día (YYYY-MM-DD, vacío = hoy) con totales por medio de pago.
func (uc *SaleUseCase) DailySales(ctx context.Context, dateStr string) (*dto.DailySalesDTO, error) {
	day, err := dto.ParseDate(dateStr, uc.now())
	if err != nil {
		return nil, err
	}
	filter := repository.SaleFilter{From: dto.StartOfDay(day), To: dto.EndOfDay(day)}
	rows, err := uc.saleRepo.SummaryByDay(ctx, filter)
	if err != nil {
		return nil, domain.Storage("resumir ventas", err)
	}
	tenders, err := uc.saleRepo.TotalsByTender(ctx, filter)
	if err != nil {
		return nil, domain.Storage("totalizar ventas", err)
	}
	out := &dto.DailySalesDTO{
		Date:     day.Format(dto.DateLayout),
		Total:    decimal.Zero,
		Average:  decimal.Zero,
		ByTender: ToTenderTotals(tenders),
	}
	for _, r := range rows {
		out.Count += r.Count
		out.Total = out.Total.Add(r.Total)
	}
	out.Average = average(out.Total, out.Count)
	return out, nil
}

// SalesReport filas diarias entre start y end inclusivos.
func (uc *SaleUseCase) SalesReport(ctx context.Context, startStr, endStr string) (*dto.SalesReportDTO, error) {
	start, end, err := dto.ParsePeriod(startStr, endStr, uc.now())
	if err != nil {
		return nil, err
	}
	return uc.salesReport(ctx, repository.SaleFilter{From: start, To: end})
}

// RegisterReport sesiones de la caja en el rango y resumen de sus ventas.
func (uc *SaleUseCase) RegisterReport(ctx context.Context, registerID, startStr, endStr string) (*dto.RegisterReportDTO, error) {
	reg, err := uc.registerRepo.GetByID(ctx, registerID)
	if err != nil {
		return nil, domain.Storage("leer caja", err)
	}
	if reg == nil {
		return nil, domain.ErrNotFound
	}
	start, end, err := dto.ParsePeriod(startStr, endStr, uc.now())
	if err != nil {
		return nil, err
	}
	sessions, err := uc.sessionRepo.ListByRegister(ctx, reg.ID, start, end)
	if err != nil {
		return nil, domain.Storage("listar sesiones", err)
	}
	filter := repository.SaleFilter{From: start, To: end, RegisterID: reg.ID}
	sales, err := uc.salesReport(ctx, filter)
	if err != nil {
		return nil, err
	}
	tenders, err := uc.saleRepo.TotalsByTender(ctx, filter)
	if err != nil {
		return nil, domain.Storage("totalizar ventas", err)
	}
	out := &dto.RegisterReportDTO{
		Register: toRegisterResponse(reg),
		Start:    sales.Start,
		End:      sales.End,
		Sessions: make([]dto.SessionResponse, 0, len(sessions)),
		Sales:    *sales,
		ByTender: ToTenderTotals(tenders),
	}
	for _, s := range sessions {
		out.Sessions = append(out.Sessions, toSessionResponse(s))
	}
	return out, nil
}

func (uc *SaleUseCase) salesReport(ctx context.Context, filter repository.SaleFilter) (*dto.SalesReportDTO, error) {
	rows, err := uc.saleRepo.SummaryByDay(ctx, filter)
	if err != nil {
		return nil, domain.Storage("resumir ventas", err)
	}
	out := &dto.SalesReportDTO{
		Start: filter.From.Format(dto.DateLayout),
		End:   filter.To.Format(dto.DateLayout),
		Days:  ToDailyRows(rows),
		Total: decimal.Zero,
	}
	for _, r := range rows {
		out.Count += r.Count
		out.Total = out.Total.Add(r.Total)
	}
	out.Average = average(out.Total, out.Count)
	return out, nil
}

// ToDailyRows mapea los agregados diarios del repositorio.
func ToDailyRows(rows []repository.DailySales) []dto.DailySalesRow {
	out := make([]dto.DailySalesRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.DailySalesRow{
			Date:    r.Date.Format(dto.DateLayout),
			Count:   r.Count,
			Total:   r.Total,
			Average: r.Average,
		})
	}
	return out
}

// ToTenderTotals mapea los totales por medio de pago.
func ToTenderTotals(rows []repository.TenderTotal) []dto.TenderTotalDTO {
	out := make([]dto.TenderTotalDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TenderTotalDTO{Tender: r.Tender, Count: r.Count, Total: r.Total})
	}
	return out
}

func average(total decimal.Decimal, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(count))).Round(2)
}
