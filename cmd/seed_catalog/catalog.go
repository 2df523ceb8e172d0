package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// catalogNamespace fija los ids generados: el mismo nombre produce siempre el mismo UUID
// y el script puede aplicarse en cada arranque sin duplicar insumos.
var catalogNamespace = uuid.MustParse("6f1d3c1e-2b7a-4d55-9a0e-5c3f1b8e7a21")

type item struct {
	ID            uuid.UUID
	Name          string
	Description   string
	Category      string
	PurchasePrice decimal.Decimal
	SalePrice     decimal.Decimal
	MinStock      int64
	UnitMeasure   string
	Barcode       string
}

// Encabezados aceptados por columna (se comparan en minúsculas y sin espacios extremos).
var headerAliases = map[string][]string{
	"name":           {"nombre", "name", "insumo"},
	"description":    {"descripcion", "descripción", "description"},
	"category":       {"categoria", "categoría", "category"},
	"purchase_price": {"precio_compra", "costo", "purchase_price"},
	"sale_price":     {"precio_venta", "precio", "sale_price"},
	"min_stock":      {"stock_minimo", "stock_mínimo", "minimo", "min_stock"},
	"unit_measure":   {"unidad", "unidad_medida", "unit_measure"},
	"barcode":        {"codigo_barras", "código_barras", "barcode"},
}

// decodeCSV lee un CSV en UTF-8 o ISO-8859-1. Si el contenido no es UTF-8 válido se asume Latin-1,
// el formato en que la hoja de cálculo de escritorio exporta por defecto.
func decodeCSV(r io.Reader) ([][]string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	var src io.Reader = bytes.NewReader(raw)
	if !utf8.Valid(raw) {
		src = transform.NewReader(src, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	if bytes.Count(firstLine(raw), []byte(";")) > bytes.Count(firstLine(raw), []byte(",")) {
		cr.Comma = ';'
	}
	return cr.ReadAll()
}

func firstLine(b []byte) []byte {
	if i := bytes.IndexByte(b, '\n'); i >= 0 {
		return b[:i]
	}
	return b
}

// decodeXLSX devuelve las filas de la primera hoja del libro.
func decodeXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("el libro no tiene hojas")
	}
	return f.GetRows(sheets[0])
}

// parseRows convierte las filas (la primera es el encabezado) en insumos.
// Las filas sin nombre se ignoran; un precio o mínimo inválido aborta con el número de fila.
func parseRows(rows [][]string) ([]item, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("archivo vacío")
	}
	cols := mapHeader(rows[0])
	if _, ok := cols["name"]; !ok {
		return nil, fmt.Errorf("falta la columna nombre")
	}
	seen := make(map[string]bool)
	items := make([]item, 0, len(rows)-1)
	for i, row := range rows[1:] {
		line := i + 2
		get := func(key string) string {
			idx, ok := cols[key]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}
		name := get("name")
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true

		purchase, err := parseMoney(get("purchase_price"))
		if err != nil {
			return nil, fmt.Errorf("fila %d: precio de compra: %w", line, err)
		}
		sale, err := parseMoney(get("sale_price"))
		if err != nil {
			return nil, fmt.Errorf("fila %d: precio de venta: %w", line, err)
		}
		var minStock int64
		if v := get("min_stock"); v != "" {
			minStock, err = strconv.ParseInt(v, 10, 64)
			if err != nil || minStock < 0 {
				return nil, fmt.Errorf("fila %d: stock mínimo inválido %q", line, v)
			}
		}
		unit := get("unit_measure")
		if unit == "" {
			unit = "unidad"
		}
		items = append(items, item{
			ID:            uuid.NewSHA1(catalogNamespace, []byte(key)),
			Name:          truncate(name, 100),
			Description:   get("description"),
			Category:      truncate(get("category"), 50),
			PurchasePrice: purchase,
			SalePrice:     sale,
			MinStock:      minStock,
			UnitMeasure:   truncate(unit, 20),
			Barcode:       truncate(get("barcode"), 50),
		})
	}
	return items, nil
}

func mapHeader(header []string) map[string]int {
	cols := make(map[string]int)
	for idx, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		for key, aliases := range headerAliases {
			for _, a := range aliases {
				if h == a {
					if _, dup := cols[key]; !dup {
						cols[key] = idx
					}
				}
			}
		}
	}
	return cols
}

// parseMoney acepta "1234.5", "1.234,50" y "$ 25.000". Vacío es cero.
func parseMoney(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return decimal.Zero, nil
	}
	switch {
	case strings.Contains(s, ","):
		// Formato local: punto de miles, coma decimal.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case strings.Count(s, ".") > 1 || (strings.Contains(s, ".") && len(s)-strings.LastIndex(s, ".") == 4):
		s = strings.ReplaceAll(s, ".", "")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("valor %q inválido", s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("valor %q negativo", s)
	}
	return d.Round(2), nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// writeSQL escribe el script idempotente: insumos por id fijo y su fila de stock en cero.
func writeSQL(w io.Writer, items []item) error {
	var b strings.Builder
	b.WriteString("-- Catálogo inicial de insumos (generado por cmd/seed_catalog). No editar a mano.\n\n")
	for _, it := range items {
		fmt.Fprintf(&b, "INSERT INTO supplies (id, name, description, category, purchase_price, sale_price, min_stock, unit_measure, barcode)\n")
		fmt.Fprintf(&b, "VALUES ('%s', '%s', '%s', '%s', %s, %s, %d, '%s', '%s')\nON CONFLICT (id) DO NOTHING;\n",
			it.ID, escapeSQL(it.Name), escapeSQL(it.Description), escapeSQL(it.Category),
			it.PurchasePrice.StringFixed(2), it.SalePrice.StringFixed(2), it.MinStock,
			escapeSQL(it.UnitMeasure), escapeSQL(it.Barcode))
		fmt.Fprintf(&b, "INSERT INTO stock (supply_id) VALUES ('%s') ON CONFLICT (supply_id) DO NOTHING;\n\n", it.ID)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
