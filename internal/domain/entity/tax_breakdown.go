package entity

import "github.com/shopspring/decimal"

// TaxBreakdown desglose de impuestos de una operación. Los montos van sin redondear;
// el redondeo se aplica solo al presentar (ver dto.NewBreakdownResponse).
//
// Invariantes:
//   - TotalTax = NationalTaxAmount + RegionalTaxAmount + CombinedFlatTaxAmount
//   - Total = Subtotal + TotalTax
type TaxBreakdown struct {
	Subtotal              decimal.Decimal `json:"subtotal"`
	NationalTaxAmount     decimal.Decimal `json:"national_tax_amount"`
	RegionalTaxAmount     decimal.Decimal `json:"regional_tax_amount"`
	CombinedFlatTaxAmount decimal.Decimal `json:"combined_flat_tax_amount"`
	TotalTax              decimal.Decimal `json:"total_tax"`
	Total                 decimal.Decimal `json:"total"`
	IsExempt              bool            `json:"is_exempt"`
	ExemptionReason       *string         `json:"exemption_reason"`
}
