package rates

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/jhoicas/salestax-api/internal/domain/entity"
	"github.com/jhoicas/salestax-api/internal/domain/tax"
)

// File formato del archivo de tasas.
//
//	default: "ON"
//	jurisdictions:
//	  - code: "QC"
//	    name: Quebec
//	    national: "0.05"
//	    regional: "0.09975"
//	    compounds: true
type File struct {
	Default       string             `yaml:"default"`
	Jurisdictions []JurisdictionYAML `yaml:"jurisdictions"`
}

// JurisdictionYAML tasas como texto para no perder precisión al parsear.
type JurisdictionYAML struct {
	Code      string `yaml:"code"`
	Name      string `yaml:"name"`
	National  string `yaml:"national"`
	Regional  string `yaml:"regional"`
	Flat      string `yaml:"flat"`
	Compounds bool   `yaml:"compounds"`
}

// Load construye la tabla de tasas. Sin path usa la tabla incorporada.
// defaultCode tiene prioridad sobre el "default" del archivo; vacío usa el del archivo.
func Load(path, defaultCode string) (*tax.RateTable, error) {
	if strings.TrimSpace(path) == "" {
		return tax.NewRateTable(tax.DefaultRates(), defaultCode)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("leer tasas %s: %w", path, err)
	}
	return Parse(raw, defaultCode)
}

// Parse decodifica el YAML y valida la tabla resultante.
func Parse(raw []byte, defaultCode string) (*tax.RateTable, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: yaml: %v", tax.ErrInvalidRateTable, err)
	}
	if len(f.Jurisdictions) == 0 {
		return nil, fmt.Errorf("%w: el archivo no define jurisdicciones", tax.ErrInvalidRateTable)
	}

	list := make([]entity.Jurisdiction, 0, len(f.Jurisdictions))
	for _, y := range f.Jurisdictions {
		j, err := y.toEntity()
		if err != nil {
			return nil, err
		}
		list = append(list, j)
	}
	if strings.TrimSpace(defaultCode) == "" {
		defaultCode = f.Default
	}
	return tax.NewRateTable(list, defaultCode)
}

func (y JurisdictionYAML) toEntity() (entity.Jurisdiction, error) {
	national, err := parseRate(y.Code, "national", y.National)
	if err != nil {
		return entity.Jurisdiction{}, err
	}
	regional, err := parseRate(y.Code, "regional", y.Regional)
	if err != nil {
		return entity.Jurisdiction{}, err
	}
	flat, err := parseRate(y.Code, "flat", y.Flat)
	if err != nil {
		return entity.Jurisdiction{}, err
	}
	return entity.Jurisdiction{
		Code:                        y.Code,
		DisplayName:                 y.Name,
		NationalRate:                national,
		RegionalRate:                regional,
		CombinedFlatRate:            flat,
		RegionalCompoundsOnNational: y.Compounds,
	}, nil
}

func parseRate(code, field, s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s.%s=%q no es un decimal", tax.ErrInvalidRateTable, code, field, s)
	}
	return d, nil
}
