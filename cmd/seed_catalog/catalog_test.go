package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

func TestParseMoney(t *testing.T) {
	casos := map[string]string{
		"":          "0",
		"1234.5":    "1234.5",
		"1.234,50":  "1234.5",
		"$ 25.000":  "25000",
		"12.500":    "12500",
		" 3,75 ":    "3.75",
		"1.250.000": "1250000",
	}
	for in, want := range casos {
		got, err := parseMoney(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got.String(), in)
	}

	_, err := parseMoney("-5")
	assert.Error(t, err)
	_, err = parseMoney("abc")
	assert.Error(t, err)
}

func TestDecodeCSV_Latin1PuntoYComa(t *testing.T) {
	utf := "Nombre;Categoría;Precio_Venta\nCafé molido;Bebidas;12.500\n"
	latin, err := charmap.ISO8859_1.NewEncoder().String(utf)
	require.NoError(t, err)

	rows, err := decodeCSV(strings.NewReader(latin))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Categoría", rows[0][1])
	assert.Equal(t, "Café molido", rows[1][0])
}

func TestDecodeCSV_UTF8ConBOM(t *testing.T) {
	rows, err := decodeCSV(strings.NewReader("\xef\xbb\xbfnombre,precio\nPan,1500\n"))
	require.NoError(t, err)
	assert.Equal(t, "nombre", rows[0][0])
}

func TestParseRows(t *testing.T) {
	rows := [][]string{
		{"nombre", "categoria", "costo", "precio_venta", "stock_minimo", "unidad", "codigo_barras"},
		{"Harina", "Panadería", "2.000", "3.500", "10", "kg", "770123"},
		{"", "ignorada"},
		{"harina", "duplicada"},
		{"Azúcar"},
	}
	items, err := parseRows(rows)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "Harina", items[0].Name)
	assert.Equal(t, "2000", items[0].PurchasePrice.String())
	assert.Equal(t, int64(10), items[0].MinStock)
	assert.Equal(t, "kg", items[0].UnitMeasure)
	assert.Equal(t, "unidad", items[1].UnitMeasure)
	assert.True(t, items[1].SalePrice.IsZero())

	// Ids estables entre ejecuciones.
	again, err := parseRows(rows)
	require.NoError(t, err)
	assert.Equal(t, items[0].ID, again[0].ID)
}

func TestParseRows_Errores(t *testing.T) {
	_, err := parseRows(nil)
	assert.Error(t, err)

	_, err = parseRows([][]string{{"categoria"}, {"x"}})
	assert.ErrorContains(t, err, "nombre")

	_, err = parseRows([][]string{{"nombre", "stock_minimo"}, {"Sal", "-1"}})
	assert.ErrorContains(t, err, "fila 2")
}

func TestDecodeXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"nombre", "precio_venta"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"Leche", "4200"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	rows, err := decodeXLSX(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Leche", rows[1][0])
}

func TestWriteSQL_EscapaComillas(t *testing.T) {
	items, err := parseRows([][]string{{"nombre"}, {"Galletas D'Oro"}})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, writeSQL(&out, items))
	sql := out.String()
	assert.Contains(t, sql, "'Galletas D''Oro'")
	assert.Contains(t, sql, "ON CONFLICT (id) DO NOTHING")
	assert.Contains(t, sql, "INSERT INTO stock (supply_id)")
}
