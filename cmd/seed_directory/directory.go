package main

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type businessRow struct {
	ID                   string
	Name                 string
	Address              string
	RegistrationNumber   string
	JurisdictionCode     string
	IsIndigenous         bool
	ExemptionStatus      string
	OnReserveDelivery    bool
	ExemptionCertificate string
	BandNumber           string
}

// Encabezados aceptados por columna (en minúsculas, espacios como "_").
var columnAliases = map[string][]string{
	"id":                    {"id", "business_id"},
	"name":                  {"name", "business_name", "company"},
	"address":               {"address", "location"},
	"registration_number":   {"registration_number", "business_number", "bn"},
	"jurisdiction_code":     {"jurisdiction", "jurisdiction_code", "province"},
	"is_indigenous":         {"is_indigenous", "indigenous", "indigenous_owned"},
	"exemption_status":      {"exemption_status", "status"},
	"on_reserve_delivery":   {"on_reserve_delivery", "on_reserve"},
	"exemption_certificate": {"exemption_certificate", "certificate"},
	"band_number":           {"band_number", "band"},
}

var validStatuses = map[string]bool{"approved": true, "pending": true, "rejected": true}

func defaultNewID() string { return uuid.NewString() }

var newID = defaultNewID

// parseDirectory decodifica el CSV (detecta Windows-1252 si no es UTF-8 válido).
// Devuelve las filas útiles y cuántas se omitieron por no tener nombre.
func parseDirectory(raw []byte) ([]businessRow, int, error) {
	raw = bytes.TrimPrefix(raw, []byte("\xEF\xBB\xBF"))
	var src io.Reader = bytes.NewReader(raw)
	if !utf8.Valid(raw) {
		src = transform.NewReader(src, charmap.Windows1252.NewDecoder())
	}

	r := csv.NewReader(src)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, 0, fmt.Errorf("CSV vacío")
		}
		return nil, 0, err
	}
	idx := indexColumns(header)
	if _, ok := idx["name"]; !ok {
		return nil, 0, fmt.Errorf("falta la columna name")
	}

	var rows []businessRow
	skipped := 0
	seen := make(map[string]bool)
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, err
		}
		get := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		row := businessRow{
			ID:                   get("id"),
			Name:                 get("name"),
			Address:              get("address"),
			RegistrationNumber:   strings.ToUpper(strings.ReplaceAll(get("registration_number"), " ", "")),
			JurisdictionCode:     strings.ToUpper(get("jurisdiction_code")),
			IsIndigenous:         parseBool(get("is_indigenous")),
			ExemptionStatus:      strings.ToLower(get("exemption_status")),
			OnReserveDelivery:    parseBool(get("on_reserve_delivery")),
			ExemptionCertificate: get("exemption_certificate"),
			BandNumber:           get("band_number"),
		}
		if row.Name == "" {
			skipped++
			continue
		}
		if row.ID == "" {
			row.ID = newID()
		}
		if seen[row.ID] {
			skipped++
			continue
		}
		seen[row.ID] = true
		if row.JurisdictionCode == "" {
			row.JurisdictionCode = "ON"
		}
		if !validStatuses[row.ExemptionStatus] {
			row.ExemptionStatus = ""
		}
		rows = append(rows, row)
	}
	return rows, skipped, nil
}

func indexColumns(header []string) map[string]int {
	byName := make(map[string]int, len(header))
	for i, h := range header {
		byName[strings.ReplaceAll(strings.ToLower(strings.TrimSpace(h)), " ", "_")] = i
	}
	idx := make(map[string]int)
	for col, aliases := range columnAliases {
		for _, a := range aliases {
			if i, ok := byName[a]; ok {
				idx[col] = i
				break
			}
		}
	}
	return idx
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "y", "x", "oui", "si", "sí":
		return true
	}
	return false
}

// writeSQL escribe un upsert idempotente por empresa.
func writeSQL(w io.Writer, source string, rows []businessRow) error {
	var b strings.Builder
	b.WriteString("-- Directorio de empresas (atributos de exención)\n")
	fmt.Fprintf(&b, "-- Generado desde %s\n\n", source)
	for _, r := range rows {
		b.WriteString("INSERT INTO businesses (id, name, address, registration_number, jurisdiction_code, is_indigenous, exemption_status, on_reserve_delivery, exemption_certificate, band_number)\n")
		fmt.Fprintf(&b, "VALUES (%s, %s, %s, %s, %s, %t, %s, %t, %s, %s)\n",
			quote(r.ID), quote(r.Name), quote(r.Address), nullable(r.RegistrationNumber), quote(r.JurisdictionCode),
			r.IsIndigenous, nullable(r.ExemptionStatus), r.OnReserveDelivery, nullable(r.ExemptionCertificate), nullable(r.BandNumber))
		b.WriteString("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, address = EXCLUDED.address,\n")
		b.WriteString("  registration_number = EXCLUDED.registration_number, jurisdiction_code = EXCLUDED.jurisdiction_code,\n")
		b.WriteString("  is_indigenous = EXCLUDED.is_indigenous, exemption_status = EXCLUDED.exemption_status,\n")
		b.WriteString("  on_reserve_delivery = EXCLUDED.on_reserve_delivery, exemption_certificate = EXCLUDED.exemption_certificate,\n")
		b.WriteString("  band_number = EXCLUDED.band_number, updated_at = now();\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func nullable(s string) string {
	if s == "" {
		return "NULL"
	}
	return quote(s)
}
