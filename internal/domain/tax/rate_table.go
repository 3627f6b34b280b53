// Package tax contiene la lógica de dominio de impuestos al consumo (GST/HST/PST/QST):
// la tabla de tasas por jurisdicción y el cálculo directo e inverso del desglose.
package tax

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/salestax-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// DefaultJurisdictionCode jurisdicción por defecto de la plataforma.
const DefaultJurisdictionCode = "ON"

// ErrInvalidRateTable la configuración de tasas no es consistente.
var ErrInvalidRateTable = errors.New("tabla de tasas inválida")

// RateTable tabla inmutable de tasas por jurisdicción. Se construye una vez al arrancar
// y se comparte por puntero; es segura para uso concurrente porque nunca se modifica.
type RateTable struct {
	byCode      map[string]entity.Jurisdiction
	defaultCode string
}

// NewRateTable valida las jurisdicciones y construye la tabla.
// Reglas: códigos únicos, tasas no negativas, las tasas planas no llevan tasas separadas,
// a lo sumo una jurisdicción compuesta y la jurisdicción por defecto debe existir.
func NewRateTable(jurisdictions []entity.Jurisdiction, defaultCode string) (*RateTable, error) {
	byCode := make(map[string]entity.Jurisdiction, len(jurisdictions))
	compounding := 0
	for _, j := range jurisdictions {
		code := NormalizeCode(j.Code)
		if code == "" {
			return nil, fmt.Errorf("%w: jurisdicción sin código", ErrInvalidRateTable)
		}
		if _, dup := byCode[code]; dup {
			return nil, fmt.Errorf("%w: código duplicado %s", ErrInvalidRateTable, code)
		}
		if j.NationalRate.IsNegative() || j.RegionalRate.IsNegative() || j.CombinedFlatRate.IsNegative() {
			return nil, fmt.Errorf("%w: %s tiene tasas negativas", ErrInvalidRateTable, code)
		}
		if j.IsFlat() && (!j.NationalRate.IsZero() || !j.RegionalRate.IsZero() || j.RegionalCompoundsOnNational) {
			return nil, fmt.Errorf("%w: %s combina tasa plana con tasas separadas", ErrInvalidRateTable, code)
		}
		if j.RegionalCompoundsOnNational {
			compounding++
		}
		j.Code = code
		if j.DisplayName == "" {
			j.DisplayName = code
		}
		byCode[code] = j
	}
	if compounding > 1 {
		return nil, fmt.Errorf("%w: solo una jurisdicción puede ser compuesta, se encontraron %d", ErrInvalidRateTable, compounding)
	}
	def := NormalizeCode(defaultCode)
	if def == "" {
		def = DefaultJurisdictionCode
	}
	if _, ok := byCode[def]; !ok {
		return nil, fmt.Errorf("%w: la jurisdicción por defecto %s no está definida", ErrInvalidRateTable, def)
	}
	return &RateTable{byCode: byCode, defaultCode: def}, nil
}

// DefaultRates tabla incorporada de provincias y territorios de Canadá.
func DefaultRates() []entity.Jurisdiction {
	gst := decimal.RequireFromString("0.05")
	hst13 := decimal.RequireFromString("0.13")
	hst15 := decimal.RequireFromString("0.15")
	return []entity.Jurisdiction{
		{Code: "AB", DisplayName: "Alberta", NationalRate: gst},
		{Code: "BC", DisplayName: "British Columbia", NationalRate: gst, RegionalRate: decimal.RequireFromString("0.07")},
		{Code: "MB", DisplayName: "Manitoba", NationalRate: gst, RegionalRate: decimal.RequireFromString("0.07")},
		{Code: "NB", DisplayName: "New Brunswick", CombinedFlatRate: hst15},
		{Code: "NL", DisplayName: "Newfoundland and Labrador", CombinedFlatRate: hst15},
		{Code: "NS", DisplayName: "Nova Scotia", CombinedFlatRate: hst15},
		{Code: "NT", DisplayName: "Northwest Territories", NationalRate: gst},
		{Code: "NU", DisplayName: "Nunavut", NationalRate: gst},
		{Code: "ON", DisplayName: "Ontario", CombinedFlatRate: hst13},
		{Code: "PE", DisplayName: "Prince Edward Island", CombinedFlatRate: hst15},
		{Code: "QC", DisplayName: "Quebec", NationalRate: gst, RegionalRate: decimal.RequireFromString("0.09975"), RegionalCompoundsOnNational: true},
		{Code: "SK", DisplayName: "Saskatchewan", NationalRate: gst, RegionalRate: decimal.RequireFromString("0.06")},
		{Code: "YT", DisplayName: "Yukon", NationalRate: gst},
	}
}

// MustDefaultRateTable tabla incorporada con ON como jurisdicción por defecto.
func MustDefaultRateTable() *RateTable {
	t, err := NewRateTable(DefaultRates(), DefaultJurisdictionCode)
	if err != nil {
		panic(err)
	}
	return t
}

// RateFor devuelve la jurisdicción para el código (sin distinguir mayúsculas).
// Un código desconocido o vacío resuelve a la jurisdicción por defecto; nunca falla.
func (t *RateTable) RateFor(code string) entity.Jurisdiction {
	if j, ok := t.Lookup(code); ok {
		return j
	}
	return t.byCode[t.defaultCode]
}

// Lookup busca la jurisdicción exacta sin aplicar el respaldo por defecto.
func (t *RateTable) Lookup(code string) (entity.Jurisdiction, bool) {
	j, ok := t.byCode[NormalizeCode(code)]
	return j, ok
}

// Default jurisdicción por defecto.
func (t *RateTable) Default() entity.Jurisdiction {
	return t.byCode[t.defaultCode]
}

// All lista las jurisdicciones ordenadas por código.
func (t *RateTable) All() []entity.Jurisdiction {
	out := make([]entity.Jurisdiction, 0, len(t.byCode))
	for _, j := range t.byCode {
		out = append(out, j)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Code < out[b].Code })
	return out
}

// NormalizeCode normaliza un código de jurisdicción (trim + mayúsculas).
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
