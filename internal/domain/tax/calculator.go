package tax

import (
	"github.com/jhoicas/salestax-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// divisionScale decimales usados en las divisiones del cálculo inverso.
const divisionScale = 20

// RoundTripTolerance diferencia máxima aceptada entre el total original y el total
// reconstruido a partir del subtotal de un cálculo inverso (un centavo).
var RoundTripTolerance = decimal.New(1, -2)

var one = decimal.NewFromInt(1)

// Forward calcula el desglose para un subtotal no exento.
// HST: F = S*f. GST+PST: N = S*n, R = S*r. Compuesta: R = (S+N)*r.
func Forward(subtotal decimal.Decimal, j entity.Jurisdiction) entity.TaxBreakdown {
	b := entity.TaxBreakdown{Subtotal: subtotal}
	switch {
	case j.IsFlat():
		b.CombinedFlatTaxAmount = subtotal.Mul(j.CombinedFlatRate)
	case j.RegionalCompoundsOnNational:
		b.NationalTaxAmount = subtotal.Mul(j.NationalRate)
		b.RegionalTaxAmount = subtotal.Add(b.NationalTaxAmount).Mul(j.RegionalRate)
	default:
		b.NationalTaxAmount = subtotal.Mul(j.NationalRate)
		b.RegionalTaxAmount = subtotal.Mul(j.RegionalRate)
	}
	return withTotals(b)
}

// ExemptBreakdown desglose sin impuestos para una operación exenta.
func ExemptBreakdown(subtotal decimal.Decimal, record entity.ExemptionRecord) entity.TaxBreakdown {
	return entity.TaxBreakdown{
		Subtotal:        subtotal,
		Total:           subtotal,
		IsExempt:        true,
		ExemptionReason: record.Reason,
	}
}

// Reverse extrae el subtotal de un total con impuestos incluidos. Nunca produce un
// desglose exento: la exención no se puede deducir de un total.
func Reverse(total decimal.Decimal, j entity.Jurisdiction) entity.TaxBreakdown {
	switch {
	case j.IsFlat():
		subtotal := total.DivRound(one.Add(j.CombinedFlatRate), divisionScale)
		return withTotals(entity.TaxBreakdown{
			Subtotal:              subtotal,
			CombinedFlatTaxAmount: total.Sub(subtotal),
		})
	case j.RegionalCompoundsOnNational:
		// total = S * (1+n) * (1+r)
		divisor := one.Add(j.NationalRate).Mul(one.Add(j.RegionalRate))
		return Forward(total.DivRound(divisor, divisionScale), j)
	default:
		divisor := one.Add(j.NationalRate).Add(j.RegionalRate)
		return Forward(total.DivRound(divisor, divisionScale), j)
	}
}

// WithinTolerance informa si dos montos difieren como máximo en RoundTripTolerance.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(RoundTripTolerance)
}

func withTotals(b entity.TaxBreakdown) entity.TaxBreakdown {
	b.TotalTax = b.NationalTaxAmount.Add(b.RegionalTaxAmount).Add(b.CombinedFlatTaxAmount)
	b.Total = b.Subtotal.Add(b.TotalTax)
	return b
}
