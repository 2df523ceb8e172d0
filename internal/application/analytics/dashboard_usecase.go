// Package analytics contiene los casos de uso de reportes de lectura:
// dashboard, ventas por medio de pago y el reporte mensual.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/negocio-api/internal/application/dto"
	"github.com/jhoicas/negocio-api/internal/application/inventory"
	"github.com/jhoicas/negocio-api/internal/application/register"
	"github.com/jhoicas/negocio-api/internal/application/usecase"
	"github.com/jhoicas/negocio-api/internal/domain"
	"github.com/jhoicas/negocio-api/internal/domain/repository"
)

const dashboardTopSupplies = 5 // insumos en el widget del dashboard y en el reporte mensual

// DashboardUseCase compone lecturas de ventas, stock y pagos.
// No escribe; todo lo delega en los repositorios.
type DashboardUseCase struct {
	saleRepo    repository.SaleRepository
	stockRepo   repository.StockRepository
	paymentRepo repository.PaymentRepository
	now         func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	saleRepo repository.SaleRepository,
	stockRepo repository.StockRepository,
	paymentRepo repository.PaymentRepository,
) *DashboardUseCase {
	return &DashboardUseCase{saleRepo: saleRepo, stockRepo: stockRepo, paymentRepo: paymentRepo, now: time.Now}
}

type salesTotal struct {
	count int
	total decimal.Decimal
}

// GetSummary construye el DashboardSummaryDTO.
//
// Cuatro lecturas en paralelo:
//  1. ventas de hoy
//  2. ventas del mes en curso
//  3. insumos con stock bajo
//  4. top 5 insumos del mes
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()
	todayStart := dto.StartOfDay(now)
	todayEnd := dto.EndOfDay(now)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	type totalResult struct {
		v   salesTotal
		err error
	}
	type lowResult struct {
		n   int
		err error
	}
	type topResult struct {
		top []repository.TopSupply
		err error
	}

	todayCh := make(chan totalResult, 1)
	monthCh := make(chan totalResult, 1)
	lowCh := make(chan lowResult, 1)
	topCh := make(chan topResult, 1)

	go func() {
		v, err := uc.salesTotal(ctx, repository.SaleFilter{From: todayStart, To: todayEnd})
		todayCh <- totalResult{v, err}
	}()
	go func() {
		v, err := uc.salesTotal(ctx, repository.SaleFilter{From: monthStart, To: todayEnd})
		monthCh <- totalResult{v, err}
	}()
	go func() {
		views, err := uc.stockRepo.ListLowStock(ctx)
		lowCh <- lowResult{len(views), err}
	}()
	go func() {
		top, err := uc.saleRepo.TopSupplies(ctx, repository.SaleFilter{From: monthStart, To: todayEnd}, dashboardTopSupplies)
		topCh <- topResult{top, err}
	}()

	today := <-todayCh
	month := <-monthCh
	low := <-lowCh
	top := <-topCh

	if today.err != nil {
		return nil, domain.Storage("dashboard: ventas de hoy", today.err)
	}
	if month.err != nil {
		return nil, domain.Storage("dashboard: ventas del mes", month.err)
	}
	if low.err != nil {
		return nil, domain.Storage("dashboard: stock bajo", low.err)
	}
	if top.err != nil {
		return nil, domain.Storage("dashboard: top insumos", top.err)
	}

	return &dto.DashboardSummaryDTO{
		TodaySales:    today.v.total.Round(2),
		TodayCount:    today.v.count,
		MonthlySales:  month.v.total.Round(2),
		MonthlyCount:  month.v.count,
		LowStockCount: low.n,
		TopSupplies:   toTopSupplies(top.top),
		DateLabel:     monthLabel(now),
	}, nil
}

// SalesByTender ventas completadas por medio de pago entre dos fechas inclusivas.
func (uc *DashboardUseCase) SalesByTender(ctx context.Context, startStr, endStr string) ([]dto.TenderTotalDTO, error) {
	start, end, err := dto.ParsePeriod(startStr, endStr, uc.now())
	if err != nil {
		return nil, err
	}
	rows, err := uc.saleRepo.TotalsByTender(ctx, repository.SaleFilter{From: start, To: end})
	if err != nil {
		return nil, domain.Storage("ventas por medio de pago", err)
	}
	return register.ToTenderTotals(rows), nil
}

// SalesSummary filas diarias de ventas completadas.
func (uc *DashboardUseCase) SalesSummary(ctx context.Context, startStr, endStr string) ([]dto.DailySalesRow, error) {
	start, end, err := dto.ParsePeriod(startStr, endStr, uc.now())
	if err != nil {
		return nil, err
	}
	rows, err := uc.saleRepo.SummaryByDay(ctx, repository.SaleFilter{From: start, To: end})
	if err != nil {
		return nil, domain.Storage("resumen de ventas", err)
	}
	return register.ToDailyRows(rows), nil
}

// MonthlyReport contenido del email mensual (YYYY-MM; vacío = mes anterior).
func (uc *DashboardUseCase) MonthlyReport(ctx context.Context, monthStr string) (*dto.MonthlyReportDTO, error) {
	now := uc.now()
	start, end, err := dto.ParseMonth(monthStr, now)
	if err != nil {
		return nil, err
	}
	filter := repository.SaleFilter{From: start, To: end}
	sales, err := uc.salesTotal(ctx, filter)
	if err != nil {
		return nil, domain.Storage("reporte mensual: ventas", err)
	}
	totals, err := uc.paymentRepo.Totals(ctx, start, end)
	if err != nil {
		return nil, domain.Storage("reporte mensual: pagos", err)
	}
	views, err := uc.stockRepo.ListLowStock(ctx)
	if err != nil {
		return nil, domain.Storage("reporte mensual: stock bajo", err)
	}
	top, err := uc.saleRepo.TopSupplies(ctx, filter, dashboardTopSupplies)
	if err != nil {
		return nil, domain.Storage("reporte mensual: top insumos", err)
	}

	report := &dto.MonthlyReportDTO{
		Period:      monthLabel(start),
		Start:       start.Format(dto.DateLayout),
		End:         end.Format(dto.DateLayout),
		SalesCount:  sales.count,
		SalesTotal:  sales.total.Round(2),
		Payments:    usecase.BuildPaymentReport(totals).ByType,
		LowStock:    make([]dto.LowStockItem, 0, len(views)),
		TopSupplies: toTopSupplies(top),
		GeneratedAt: now,
	}
	for _, v := range views {
		report.LowStock = append(report.LowStock, inventory.ToLowStockItem(v))
	}
	return report, nil
}

func (uc *DashboardUseCase) salesTotal(ctx context.Context, filter repository.SaleFilter) (salesTotal, error) {
	rows, err := uc.saleRepo.SummaryByDay(ctx, filter)
	if err != nil {
		return salesTotal{}, err
	}
	out := salesTotal{total: decimal.Zero}
	for _, r := range rows {
		out.count += r.Count
		out.total = out.total.Add(r.Total)
	}
	return out, nil
}

func toTopSupplies(rows []repository.TopSupply) []dto.TopSupplyDTO {
	out := make([]dto.TopSupplyDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TopSupplyDTO{SupplyID: r.SupplyID, Name: r.Name, SalesCount: r.SalesCount, Units: r.Units})
	}
	return out
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
