// seed_catalog genera el script SQL del catálogo inicial de insumos a partir de una
// hoja exportada (CSV en UTF-8 o ISO-8859-1, separado por coma o punto y coma) o de un .xlsx.
//
// Uso: go run ./cmd/seed_catalog catalogo.csv|catalogo.xlsx [salida.sql]
// Por defecto escribe internal/infrastructure/postgres/migrations/003_seed_catalog.sql,
// que Migrate aplica en el siguiente arranque.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Uso: seed_catalog catalogo.csv|catalogo.xlsx [salida.sql]")
		os.Exit(2)
	}
	inPath := os.Args[1]
	outPath := filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "migrations", "003_seed_catalog.sql")
	if len(os.Args) > 2 {
		outPath = os.Args[2]
	}

	f, err := os.Open(inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir catálogo: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var rows [][]string
	switch strings.ToLower(filepath.Ext(inPath)) {
	case ".xlsx":
		rows, err = decodeXLSX(f)
	case ".csv", ".txt":
		rows, err = decodeCSV(f)
	default:
		err = fmt.Errorf("extensión no soportada %q", filepath.Ext(inPath))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer catálogo: %v\n", err)
		os.Exit(1)
	}

	items, err := parseRows(rows)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Catálogo inválido: %v\n", err)
		os.Exit(1)
	}

	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear salida: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()
	if err := writeSQL(out, items); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d insumos\n", outPath, len(items))
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
