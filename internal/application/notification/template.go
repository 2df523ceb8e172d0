package notification

import (
	"bytes"
	"html/template"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/negocio-api/internal/application/dto"
	"github.com/jhoicas/negocio-api/internal/domain/entity"
)

var reportTemplate = template.Must(template.New("monthly").Funcs(template.FuncMap{
	"money": func(d decimal.Decimal) string { return "$" + d.StringFixed(2) },
	"date":  func(t time.Time) string { return t.Format("02/01/2006") },
	"paymentType": func(t string) string {
		if t == entity.PaymentTypeIncome {
			return "Ingresos"
		}
		return "Egresos"
	},
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Reporte Mensual</title>
<style>
body { font-family: Arial, sans-serif; background: #f8fafc; margin: 0; padding: 20px; }
.container { max-width: 600px; margin: 0 auto; background: #ffffff; border-radius: 12px; overflow: hidden; }
.header { background: #2563eb; color: #ffffff; padding: 30px; text-align: center; }
.badge { background: #f59e0b; color: #ffffff; padding: 4px 8px; border-radius: 4px; font-size: 12px; }
.content { padding: 30px; }
.metric { background: #f8fafc; border-radius: 8px; padding: 20px; margin: 15px 0; border-left: 4px solid #3b82f6; }
.metric-value { font-size: 24px; font-weight: bold; color: #1e293b; }
.metric-label { color: #64748b; font-size: 14px; }
table { width: 100%; border-collapse: collapse; margin: 15px 0; }
th, td { padding: 12px; text-align: left; border-bottom: 1px solid #e2e8f0; }
th { background: #f1f5f9; }
.footer { background: #1e293b; color: #ffffff; padding: 20px; text-align: center; font-size: 14px; }
</style>
</head>
<body>
<div class="container">
  <div class="header">
    <h1>Reporte Mensual {{if .Test}}<span class="badge">PRUEBA</span>{{end}}</h1>
    <p>Período: {{.Report.Start}} - {{.Report.End}} ({{.Report.Period}})</p>
  </div>
  <div class="content">
    <h2>Resumen de Ventas</h2>
    <div class="metric"><div class="metric-value">{{.Report.SalesCount}}</div><div class="metric-label">Total de Ventas</div></div>
    <div class="metric"><div class="metric-value">{{money .Report.SalesTotal}}</div><div class="metric-label">Ingresos Totales</div></div>

    <h2>Resumen de Pagos</h2>
    <table>
      <thead><tr><th>Tipo</th><th>Cantidad</th><th>Total</th></tr></thead>
      <tbody>
      {{range .Report.Payments}}<tr><td>{{paymentType .Type}}</td><td>{{.Count}}</td><td>{{money .Total}}</td></tr>
      {{else}}<tr><td colspan="3">No hay datos</td></tr>{{end}}
      </tbody>
    </table>

    <h2>Productos con Stock Bajo</h2>
    <table>
      <thead><tr><th>Producto</th><th>Stock Actual</th><th>Stock Mínimo</th></tr></thead>
      <tbody>
      {{range .Report.LowStock}}<tr><td>{{.SupplyName}}</td><td>{{.OnHand}}</td><td>{{.MinStock}}</td></tr>
      {{else}}<tr><td colspan="3">Todos los productos tienen stock suficiente</td></tr>{{end}}
      </tbody>
    </table>

    <h2>Productos Más Vendidos</h2>
    <table>
      <thead><tr><th>Producto</th><th>Ventas</th></tr></thead>
      <tbody>
      {{range .Report.TopSupplies}}<tr><td>{{.Name}}</td><td>{{.SalesCount}}</td></tr>
      {{else}}<tr><td colspan="2">No hay datos de ventas</td></tr>{{end}}
      </tbody>
    </table>
  </div>
  <div class="footer">
    <p>Reporte generado automáticamente por el Sistema de Gestión de Negocios</p>
    <p>Fecha de generación: {{date .Report.GeneratedAt}}</p>
  </div>
</div>
</body>
</html>
`))

// RenderHTML genera el cuerpo HTML del reporte; test agrega la marca PRUEBA.
func RenderHTML(report *dto.MonthlyReportDTO, test bool) (string, error) {
	var buf bytes.Buffer
	err := reportTemplate.Execute(&buf, struct {
		Report *dto.MonthlyReportDTO
		Test   bool
	}{report, test})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
