package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/salestax-api/internal/application/billing"
	"github.com/jhoicas/salestax-api/internal/domain"
	"github.com/jhoicas/salestax-api/internal/domain/entity"
	"github.com/jhoicas/salestax-api/internal/domain/tax"
)

var paidAt = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

func newInvoiceFixture(payments map[string]entity.PaymentRecord, businesses ...entity.BusinessExemption) (*billing.GenerateInvoiceUseCase, *fakePayments) {
	f := newCalcFixture(businesses...)
	repo := &fakePayments{payments: payments}
	return billing.NewGenerateInvoiceUseCase(repo, f.uc, tax.MustDefaultRateTable()), repo
}

func TestGenerateInvoice_RecalculaImpuestos(t *testing.T) {
	payments := map[string]entity.PaymentRecord{
		"pay_001": {
			ID:        "pay_001",
			Amount:    dec("112"),
			TaxAmount: dec("12"),
			CreatedAt: paidAt,
			Business: entity.BusinessProfile{
				ID:                 "biz-bc",
				Name:               "Salish Coast Roasters",
				Address:            "100 Main St, Vancouver BC",
				RegistrationNumber: "123456789RT0001",
				JurisdictionCode:   "bc",
			},
		},
	}
	uc, _ := newInvoiceFixture(payments)

	inv, err := uc.GenerateInvoice(context.Background(), "pay_001")
	require.NoError(t, err)

	assert.Equal(t, "INV-pay_001", inv.InvoiceNumber)
	assert.Equal(t, paidAt, inv.Date)
	assert.Equal(t, "Salish Coast Roasters", inv.Business.Name)
	assert.Equal(t, "BC", inv.Business.JurisdictionCode)
	assert.Equal(t, "British Columbia", inv.Business.JurisdictionName)
	assert.True(t, inv.Breakdown.Subtotal.Equal(dec("100")))
	assert.True(t, inv.Breakdown.NationalTaxAmount.Equal(dec("5")))
	assert.True(t, inv.Breakdown.RegionalTaxAmount.Equal(dec("7")))
	assert.False(t, inv.Breakdown.IsExempt)
}

func TestGenerateInvoice_ExencionActualPrevaleceSobreImpuestoRegistrado(t *testing.T) {
	payments := map[string]entity.PaymentRecord{
		"pay_002": {
			ID:        "pay_002",
			Amount:    dec("113"),
			TaxAmount: dec("13"), // cobrado antes de aprobarse la exención
			CreatedAt: paidAt,
			Business: entity.BusinessProfile{
				ID:               testBusinessID,
				Name:             "Six Nations Supply",
				JurisdictionCode: "ON",
				Exemption:        entity.BusinessExemption{BusinessID: testBusinessID, IsIndigenous: true, BandNumber: "121"},
			},
		},
	}
	uc, _ := newInvoiceFixture(payments, entity.BusinessExemption{
		BusinessID: testBusinessID, IsIndigenous: true, ExemptionStatus: "approved", BandNumber: "121",
	})

	inv, err := uc.GenerateInvoice(context.Background(), "pay_002")
	require.NoError(t, err)

	assert.True(t, inv.Breakdown.IsExempt)
	require.NotNil(t, inv.Breakdown.ExemptionReason)
	assert.Equal(t, entity.ExemptionReasonApproved, *inv.Breakdown.ExemptionReason)
	assert.True(t, inv.Breakdown.TotalTax.IsZero())
	assert.True(t, inv.Breakdown.Total.Equal(dec("100")))
	assert.Equal(t, "121", inv.Business.BandNumber)
}

func TestGenerateInvoice_PagoInexistente(t *testing.T) {
	uc, _ := newInvoiceFixture(map[string]entity.PaymentRecord{})
	_, err := uc.GenerateInvoice(context.Background(), "pay_404")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGenerateInvoice_IDVacio(t *testing.T) {
	uc, _ := newInvoiceFixture(nil)
	_, err := uc.GenerateInvoice(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGenerateInvoice_ErrorDelAlmacenSePropaga(t *testing.T) {
	uc, repo := newInvoiceFixture(nil)
	repo.err = errUnavailable

	_, err := uc.GenerateInvoice(context.Background(), "pay_003")
	require.Error(t, err)
	assert.ErrorIs(t, err, errUnavailable)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestGenerateInvoice_ImpuestoMayorAlMontoEsInvalido(t *testing.T) {
	payments := map[string]entity.PaymentRecord{
		"pay_004": {ID: "pay_004", Amount: dec("10"), TaxAmount: dec("11"), Business: entity.BusinessProfile{JurisdictionCode: "ON"}},
	}
	uc, _ := newInvoiceFixture(payments)

	_, err := uc.GenerateInvoice(context.Background(), "pay_004")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
