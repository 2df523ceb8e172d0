// Package pdf genera los reportes imprimibles con Maroto v2.
//
// Layout común (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + período          │  fecha de generación    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  MÉTRICAS: recuadros con totales                             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLAS: una sección por bloque del reporte                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/negocio-api/internal/application/dto"
	"github.com/jhoicas/negocio-api/internal/application/notification"
	"github.com/jhoicas/negocio-api/internal/domain/entity"
)

var _ notification.PDFRenderer = (*ReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 37, Green: 99, Blue: 235}
	colorGray    = &props.Color{Red: 100, Green: 116, Blue: 139}
	colorDark    = &props.Color{Red: 30, Green: 41, Blue: 59}
)

// ReportGenerator genera los PDF del reporte mensual y del reporte de ventas.
type ReportGenerator struct {
	businessName string
}

// NewReportGenerator construye el generador; businessName aparece como autor y en el pie.
func NewReportGenerator(businessName string) *ReportGenerator {
	return &ReportGenerator{businessName: businessName}
}

func (g *ReportGenerator) document(title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(g.businessName, true).
		Build()
	return maroto.New(cfg)
}

// MonthlyReportPDF versión imprimible del reporte mensual que se adjunta al email.
func (g *ReportGenerator) MonthlyReportPDF(_ context.Context, report *dto.MonthlyReportDTO) ([]byte, error) {
	m := g.document("Reporte Mensual " + report.Period)

	m.AddRows(headerRow("Reporte Mensual", report.Period, report.Start+" - "+report.End, report.GeneratedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(metricsRow(
		metric{"Total de Ventas", strconv.Itoa(report.SalesCount)},
		metric{"Ingresos Totales", "$" + formatMoney(report.SalesTotal)},
	))

	m.AddRows(sectionRow("Resumen de Pagos"))
	m.AddRows(tableHeaderRow(column{"Tipo", 6, align.Left}, column{"Cantidad", 3, align.Center}, column{"Total", 3, align.Right}))
	if len(report.Payments) == 0 {
		m.AddRows(emptyRow("No hay datos"))
	}
	for _, p := range report.Payments {
		m.AddRows(tableRow(
			cell{paymentTypeLabel(p.Type), 6, align.Left},
			cell{strconv.Itoa(p.Count), 3, align.Center},
			cell{"$" + formatMoney(p.Total), 3, align.Right},
		))
	}

	m.AddRows(sectionRow("Productos con Stock Bajo"))
	m.AddRows(tableHeaderRow(column{"Producto", 6, align.Left}, column{"Stock Actual", 3, align.Center}, column{"Stock Mínimo", 3, align.Center}))
	if len(report.LowStock) == 0 {
		m.AddRows(emptyRow("Todos los productos tienen stock suficiente"))
	}
	for _, it := range report.LowStock {
		m.AddRows(tableRow(
			cell{it.SupplyName, 6, align.Left},
			cell{strconv.FormatInt(it.OnHand, 10), 3, align.Center},
			cell{strconv.FormatInt(it.MinStock, 10), 3, align.Center},
		))
	}

	m.AddRows(sectionRow("Productos Más Vendidos"))
	m.AddRows(tableHeaderRow(column{"Producto", 6, align.Left}, column{"Ventas", 3, align.Center}, column{"Unidades", 3, align.Center}))
	if len(report.TopSupplies) == 0 {
		m.AddRows(emptyRow("No hay datos de ventas"))
	}
	for _, t := range report.TopSupplies {
		m.AddRows(tableRow(
			cell{t.Name, 6, align.Left},
			cell{strconv.Itoa(t.SalesCount), 3, align.Center},
			cell{strconv.FormatInt(t.Units, 10), 3, align.Center},
		))
	}

	m.AddRows(footerRows(g.businessName)...)
	return generate(m)
}

// SalesReportPDF filas diarias de ventas del rango (GET /caja/sales/report?format=pdf).
func (g *ReportGenerator) SalesReportPDF(_ context.Context, report *dto.SalesReportDTO) ([]byte, error) {
	m := g.document("Reporte de Ventas")

	m.AddRows(headerRow("Reporte de Ventas", report.Start+" - "+report.End, "", time.Now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(metricsRow(
		metric{"Ventas", strconv.Itoa(report.Count)},
		metric{"Total", "$" + formatMoney(report.Total)},
		metric{"Promedio", "$" + formatMoney(report.Average)},
	))

	m.AddRows(sectionRow("Ventas por día"))
	m.AddRows(tableHeaderRow(
		column{"Fecha", 3, align.Left}, column{"Ventas", 2, align.Center},
		column{"Total", 4, align.Right}, column{"Promedio", 3, align.Right},
	))
	if len(report.Days) == 0 {
		m.AddRows(emptyRow("No hay ventas en el período"))
	}
	for _, d := range report.Days {
		m.AddRows(tableRow(
			cell{d.Date, 3, align.Left},
			cell{strconv.Itoa(d.Count), 2, align.Center},
			cell{"$" + formatMoney(d.Total), 4, align.Right},
			cell{"$" + formatMoney(d.Average), 3, align.Right},
		))
	}

	m.AddRows(footerRows(g.businessName)...)
	return generate(m)
}

func generate(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + período (izq) y fecha de generación (der).
func headerRow(title, period, rangeLabel string, generatedAt time.Time) core.Row {
	left := []core.Component{
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1}),
		text.New(period, props.Text{Size: 10, Top: 9, Color: colorDark}),
	}
	if rangeLabel != "" {
		left = append(left, text.New(rangeLabel, props.Text{Size: 8, Top: 14, Color: colorGray}))
	}
	return row.New(20).Add(
		col.New(8).Add(left...),
		col.New(4).Add(
			text.New("Generado", props.Text{Size: 8, Align: align.Right, Top: 2, Color: colorGray}),
			text.New(generatedAt.Format("02/01/2006 15:04"), props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 7}),
		),
	)
}

type metric struct {
	label string
	value string
}

// metricsRow: recuadros de igual ancho, uno por métrica.
func metricsRow(metrics ...metric) core.Row {
	size := 12 / len(metrics)
	cols := make([]core.Col, 0, len(metrics))
	for _, mt := range metrics {
		cols = append(cols, col.New(size).Add(
			text.New(mt.value, props.Text{Style: fontstyle.Bold, Size: 14, Align: align.Center, Top: 3, Color: colorDark}),
			text.New(mt.label, props.Text{Size: 8, Align: align.Center, Top: 11, Color: colorGray}),
		))
	}
	return row.New(18).Add(cols...)
}

func sectionRow(title string) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 4}),
	))
}

type column struct {
	label string
	size  int
	align align.Type
}

func tableHeaderRow(columns ...column) core.Row {
	cols := make([]core.Col, 0, len(columns))
	for _, c := range columns {
		cols = append(cols, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align, Top: 2, Left: 1, Right: 1, Color: colorDark,
		})))
	}
	return row.New(7).Add(cols...)
}

type cell struct {
	value string
	size  int
	align align.Type
}

func tableRow(cells ...cell) core.Row {
	cols := make([]core.Col, 0, len(cells))
	for _, c := range cells {
		cols = append(cols, col.New(c.size).Add(text.New(c.value, props.Text{
			Size: 8, Align: c.align, Top: 1, Left: 1, Right: 1,
		})))
	}
	return row.New(6).Add(cols...)
}

func emptyRow(msg string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 8, Style: fontstyle.Italic, Color: colorGray, Top: 1, Left: 1}),
	))
}

func footerRows(businessName string) []core.Row {
	return []core.Row{
		line.NewRow(4),
		line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}),
		row.New(8).Add(col.New(12).Add(
			text.New("Reporte generado automáticamente por "+nonEmpty(businessName, "el Sistema de Gestión de Negocios"),
				props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 2}),
		)),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func paymentTypeLabel(t string) string {
	if t == entity.PaymentTypeIncome {
		return "Ingresos"
	}
	return "Egresos"
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney dos decimales con puntos de miles y coma decimal.
// Ej: 25000 → "25.000,00", -1234.5 → "-1.234,50"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf) + "," + frac
}
