package dto

import (
	"time"

	"github.com/jhoicas/salestax-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CalculateRequest body para POST /api/tax/calculate. Amount es puntero para
// distinguir un monto ausente de un cero explícito.
type CalculateRequest struct {
	Amount            *decimal.Decimal `json:"amount" validate:"required"`
	Jurisdiction      string           `json:"jurisdiction" validate:"max=16"`
	BusinessID        string           `json:"business_id,omitempty" validate:"max=64"`
	ClaimedIndigenous bool             `json:"claimed_indigenous,omitempty"`
}

// ReverseRequest body para POST /api/tax/reverse.
type ReverseRequest struct {
	Total        *decimal.Decimal `json:"total" validate:"required"`
	Jurisdiction string           `json:"jurisdiction" validate:"max=16"`
}

// ValidateTaxNumberRequest body para POST /api/tax/validate.
type ValidateTaxNumberRequest struct {
	Value    string `json:"value" validate:"max=64"`
	Category string `json:"category" validate:"required,oneof=NATIONAL REGIONAL EXEMPT"`
}

// ValidateTaxNumberResponse resultado de la validación de formato.
type ValidateTaxNumberResponse struct {
	Value    string `json:"value"`
	Category string `json:"category"`
	Valid    bool   `json:"valid"`
}

// BreakdownResponse desglose redondeado a centavos.
type BreakdownResponse struct {
	Subtotal              decimal.Decimal `json:"subtotal"`
	NationalTaxAmount     decimal.Decimal `json:"national_tax_amount"`
	RegionalTaxAmount     decimal.Decimal `json:"regional_tax_amount"`
	CombinedFlatTaxAmount decimal.Decimal `json:"combined_flat_tax_amount"`
	TotalTax              decimal.Decimal `json:"total_tax"`
	Total                 decimal.Decimal `json:"total"`
	IsExempt              bool            `json:"is_exempt"`
	ExemptionReason       *string         `json:"exemption_reason"`
}

// NewBreakdownResponse redondea cada componente una sola vez y recalcula total_tax y total
// a partir de los valores redondeados, de modo que los invariantes se conservan en la salida.
func NewBreakdownResponse(b *entity.TaxBreakdown) BreakdownResponse {
	subtotal := b.Subtotal.Round(presentationScale)
	national := b.NationalTaxAmount.Round(presentationScale)
	regional := b.RegionalTaxAmount.Round(presentationScale)
	flat := b.CombinedFlatTaxAmount.Round(presentationScale)
	totalTax := national.Add(regional).Add(flat)
	return BreakdownResponse{
		Subtotal:              subtotal,
		NationalTaxAmount:     national,
		RegionalTaxAmount:     regional,
		CombinedFlatTaxAmount: flat,
		TotalTax:              totalTax,
		Total:                 subtotal.Add(totalTax),
		IsExempt:              b.IsExempt,
		ExemptionReason:       b.ExemptionReason,
	}
}

// RatesResponse proyección de solo lectura de una jurisdicción.
type RatesResponse struct {
	Code          string          `json:"code"`
	DisplayName   string          `json:"display_name"`
	NationalRate  decimal.Decimal `json:"national_rate"`
	RegionalRate  decimal.Decimal `json:"regional_rate"`
	CombinedRate  decimal.Decimal `json:"combined_rate"`
	Compounding   bool            `json:"compounding"`
	EffectiveRate decimal.Decimal `json:"effective_rate"`
}

// NewRatesResponse construye la proyección.
func NewRatesResponse(j entity.Jurisdiction) RatesResponse {
	return RatesResponse{
		Code:          j.Code,
		DisplayName:   j.DisplayName,
		NationalRate:  j.NationalRate,
		RegionalRate:  j.RegionalRate,
		CombinedRate:  j.CombinedFlatRate,
		Compounding:   j.RegionalCompoundsOnNational,
		EffectiveRate: j.EffectiveRate(),
	}
}

// ExemptionResponse resultado de GET /api/tax/exemptions/:businessId.
// Verified=false indica que el directorio no respondió y se aplicó "no exento".
type ExemptionResponse struct {
	BusinessID string  `json:"business_id"`
	IsExempt   bool    `json:"is_exempt"`
	Reason     *string `json:"reason"`
	Verified   bool    `json:"verified"`
	Source     string  `json:"source"`
}

// InvoiceBusinessResponse datos del emisor en la factura.
type InvoiceBusinessResponse struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Address            string `json:"address,omitempty"`
	RegistrationNumber string `json:"registration_number,omitempty"`
	Jurisdiction       string `json:"jurisdiction"`
	JurisdictionName   string `json:"jurisdiction_name"`
	BandNumber         string `json:"band_number,omitempty"`
}

// InvoiceResponse factura tributaria para GET /api/invoices/:paymentId.
type InvoiceResponse struct {
	InvoiceNumber   string                  `json:"invoice_number"`
	PaymentID       string                  `json:"payment_id"`
	Date            string                  `json:"date"`
	Business        InvoiceBusinessResponse `json:"business"`
	Breakdown       BreakdownResponse       `json:"breakdown"`
	IsExempt        bool                    `json:"is_exempt"`
	ExemptionReason *string                 `json:"exemption_reason"`
}

// NewInvoiceResponse convierte la factura de dominio (fecha en formato YYYY-MM-DD, UTC).
func NewInvoiceResponse(inv *entity.TaxInvoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceNumber: inv.InvoiceNumber,
		PaymentID:     inv.PaymentID,
		Date:          inv.Date.UTC().Format(time.DateOnly),
		Business: InvoiceBusinessResponse{
			ID:                 inv.Business.ID,
			Name:               inv.Business.Name,
			Address:            inv.Business.Address,
			RegistrationNumber: inv.Business.RegistrationNumber,
			Jurisdiction:       inv.Business.JurisdictionCode,
			JurisdictionName:   inv.Business.JurisdictionName,
			BandNumber:         inv.Business.BandNumber,
		},
		Breakdown:       NewBreakdownResponse(&inv.Breakdown),
		IsExempt:        inv.Breakdown.IsExempt,
		ExemptionReason: inv.Breakdown.ExemptionReason,
	}
}
