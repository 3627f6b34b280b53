package entity

import "github.com/shopspring/decimal"

// Jurisdiction representa una provincia o territorio con su estructura de impuestos.
// Es inmutable: se define al arrancar el proceso y nunca se modifica.
type Jurisdiction struct {
	Code             string
	DisplayName      string
	NationalRate     decimal.Decimal // GST federal
	RegionalRate     decimal.Decimal // PST / QST provincial
	CombinedFlatRate decimal.Decimal // HST (tasa única combinada)
	// RegionalCompoundsOnNational indica que la base del impuesto regional incluye el impuesto nacional.
	RegionalCompoundsOnNational bool
}

// IsFlat informa si la jurisdicción cobra una tasa única combinada.
func (j Jurisdiction) IsFlat() bool {
	return j.CombinedFlatRate.GreaterThan(decimal.Zero)
}

// EffectiveRate devuelve la tasa total efectiva. Para jurisdicciones compuestas
// es n + r + n*r; el valor se deriva, no se almacena.
func (j Jurisdiction) EffectiveRate() decimal.Decimal {
	if j.IsFlat() {
		return j.CombinedFlatRate
	}
	rate := j.NationalRate.Add(j.RegionalRate)
	if j.RegionalCompoundsOnNational {
		rate = rate.Add(j.NationalRate.Mul(j.RegionalRate))
	}
	return rate
}
