package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentRecord pago liquidado tal como lo devuelve el almacén de pagos.
// Amount incluye impuestos; TaxAmount es el impuesto registrado al momento del cobro.
type PaymentRecord struct {
	ID        string
	Amount    decimal.Decimal
	TaxAmount decimal.Decimal
	CreatedAt time.Time
	Business  BusinessProfile
}

// Subtotal monto antes de impuestos según lo registrado en el pago.
func (p PaymentRecord) Subtotal() decimal.Decimal {
	return p.Amount.Sub(p.TaxAmount)
}
