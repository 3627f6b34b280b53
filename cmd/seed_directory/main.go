// seed_directory genera un script SQL para poblar la tabla businesses a partir de
// una exportación CSV del directorio de empresas indígenas (UTF-8 o Windows-1252).
//
// Uso: go run ./cmd/seed_directory [ruta/directorio.csv] [salida.sql]
// Por defecto lee directory.csv del directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_businesses.sql
package main

import (
	"fmt"
	"os"
	"path/filepath"
)

func main() {
	csvPath := "directory.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	outPath := filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "migrations", "002_seed_businesses.sql")
	if len(os.Args) > 2 {
		outPath = os.Args[2]
	}

	raw, err := os.ReadFile(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	rows, skipped, err := parseDirectory(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, filepath.Base(csvPath), rows); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d empresas (%d filas omitidas)\n", outPath, len(rows), skipped)
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
