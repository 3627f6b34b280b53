package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/salestax-api/internal/domain"
	"github.com/jhoicas/salestax-api/internal/domain/entity"
	"github.com/jhoicas/salestax-api/internal/domain/repository"
	"github.com/jhoicas/salestax-api/internal/domain/tax"
)

// GenerateInvoiceUseCase arma la factura tributaria de un pago liquidado.
// El impuesto registrado en el pago no es autoritativo: se recalcula con la exención vigente.
type GenerateInvoiceUseCase struct {
	payments   repository.PaymentRepository
	calculator *CalculatorUseCase
	rates      *tax.RateTable
}

// NewGenerateInvoiceUseCase construye el caso de uso.
func NewGenerateInvoiceUseCase(
	payments repository.PaymentRepository,
	calculator *CalculatorUseCase,
	rates *tax.RateTable,
) *GenerateInvoiceUseCase {
	return &GenerateInvoiceUseCase{
		payments:   payments,
		calculator: calculator,
		rates:      rates,
	}
}

// GenerateInvoice carga el pago y recalcula el desglose.
//
// Retorna:
//   - domain.ErrInvalidInput si paymentID está vacío o el pago tiene impuesto mayor al monto.
//   - domain.ErrNotFound     si el pago no existe.
func (uc *GenerateInvoiceUseCase) GenerateInvoice(ctx context.Context, paymentID string) (*entity.TaxInvoice, error) {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return nil, domain.ErrInvalidInput
	}

	// ── 1. Cargar pago ────────────────────────────────────────────────────────
	payment, err := uc.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("invoice: obtener pago: %w", err)
	}
	if payment == nil {
		return nil, domain.ErrNotFound
	}

	// ── 2. Recalcular con la exención actual de la empresa ────────────────────
	business := payment.Business
	breakdown, err := uc.calculator.Calculate(ctx,
		payment.Subtotal(),
		business.JurisdictionCode,
		business.ID,
		business.Exemption.IsIndigenous,
	)
	if err != nil {
		return nil, fmt.Errorf("invoice: recalcular impuestos del pago %s: %w", paymentID, err)
	}

	// ── 3. Armar factura ──────────────────────────────────────────────────────
	j := uc.rates.RateFor(business.JurisdictionCode)
	return &entity.TaxInvoice{
		InvoiceNumber: entity.InvoiceNumberPrefix + payment.ID,
		PaymentID:     payment.ID,
		Date:          payment.CreatedAt,
		Business: entity.InvoiceBusinessInfo{
			ID:                 business.ID,
			Name:               business.Name,
			Address:            business.Address,
			RegistrationNumber: business.RegistrationNumber,
			JurisdictionCode:   j.Code,
			JurisdictionName:   j.DisplayName,
			BandNumber:         business.Exemption.BandNumber,
		},
		Breakdown: *breakdown,
	}, nil
}
