package tax

import "github.com/shopspring/decimal"

// Límites de los montos aceptados como subtotal o total.
const (
	MaxAmountScale    = 20
	maxAmountExponent = 15
)

// MaxAmount monto máximo aceptado (10^15).
var MaxAmount = decimal.New(1, maxAmountExponent)

// ValidAmount informa si d es no negativo, no supera MaxAmount y tiene a lo sumo
// MaxAmountScale decimales. El exponente se revisa antes de comparar porque
// Cmp, String y Round reescalan el coeficiente a 10^|exp|.
func ValidAmount(d decimal.Decimal) bool {
	exp := d.Exponent()
	if exp < -MaxAmountScale || exp > maxAmountExponent {
		return false
	}
	return !d.IsNegative() && !d.GreaterThan(MaxAmount)
}
