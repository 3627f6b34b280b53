package tax_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/salestax-api/internal/domain/entity"
	"github.com/jhoicas/salestax-api/internal/domain/tax"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertInvariants(t *testing.T, b entity.TaxBreakdown) {
	t.Helper()
	assert.True(t, b.TotalTax.Equal(b.NationalTaxAmount.Add(b.RegionalTaxAmount).Add(b.CombinedFlatTaxAmount)),
		"totalTax debe ser la suma de los componentes")
	assert.True(t, b.Total.Equal(b.Subtotal.Add(b.TotalTax)), "total debe ser subtotal + totalTax")
}

func TestForward_HSTPlano(t *testing.T) {
	b := tax.Forward(d("100"), tax.MustDefaultRateTable().RateFor("ON"))

	assert.True(t, b.CombinedFlatTaxAmount.Equal(d("13")))
	assert.True(t, b.NationalTaxAmount.IsZero())
	assert.True(t, b.RegionalTaxAmount.IsZero())
	assert.True(t, b.TotalTax.Equal(d("13")))
	assert.True(t, b.Total.Equal(d("113")))
	assert.False(t, b.IsExempt)
	assertInvariants(t, b)
}

func TestForward_GSTMasPSTIndependientes(t *testing.T) {
	b := tax.Forward(d("100"), tax.MustDefaultRateTable().RateFor("BC"))

	assert.True(t, b.NationalTaxAmount.Equal(d("5")))
	assert.True(t, b.RegionalTaxAmount.Equal(d("7")))
	assert.True(t, b.CombinedFlatTaxAmount.IsZero())
	assert.True(t, b.TotalTax.Equal(d("12")))
	assert.True(t, b.Total.Equal(d("112")))
	assertInvariants(t, b)
}

func TestForward_QSTCompuesto(t *testing.T) {
	b := tax.Forward(d("100"), tax.MustDefaultRateTable().RateFor("QC"))

	assert.True(t, b.NationalTaxAmount.Equal(d("5")))
	// (100 + 5) * 0.09975
	assert.True(t, b.RegionalTaxAmount.Equal(d("10.47375")), b.RegionalTaxAmount.String())
	assert.True(t, b.TotalTax.Equal(d("15.47375")))
	assert.True(t, b.Total.Equal(d("115.47375")))
	assertInvariants(t, b)
}

func TestForward_SoloGST(t *testing.T) {
	b := tax.Forward(d("80"), tax.MustDefaultRateTable().RateFor("NU"))

	assert.True(t, b.NationalTaxAmount.Equal(d("4")))
	assert.True(t, b.RegionalTaxAmount.IsZero())
	assert.True(t, b.Total.Equal(d("84")))
	assertInvariants(t, b)
}

func TestForward_SinRedondeoIntermedio(t *testing.T) {
	b := tax.Forward(d("0.333"), tax.MustDefaultRateTable().RateFor("QC"))
	assert.True(t, b.NationalTaxAmount.Equal(d("0.01665")))
	assertInvariants(t, b)
}

func TestExemptBreakdown_TodoCero(t *testing.T) {
	b := tax.ExemptBreakdown(d("250.50"), entity.Exempt(entity.ExemptionReasonOnReserve))

	assert.True(t, b.IsExempt)
	assert.True(t, b.TotalTax.IsZero())
	assert.True(t, b.NationalTaxAmount.IsZero())
	assert.True(t, b.RegionalTaxAmount.IsZero())
	assert.True(t, b.CombinedFlatTaxAmount.IsZero())
	assert.True(t, b.Total.Equal(d("250.50")))
	assert.Equal(t, entity.ExemptionReasonOnReserve, *b.ExemptionReason)
	assertInvariants(t, b)
}

func TestReverse_HSTPlano(t *testing.T) {
	b := tax.Reverse(d("113"), tax.MustDefaultRateTable().RateFor("ON"))

	assert.True(t, b.Subtotal.Equal(d("100")), b.Subtotal.String())
	assert.True(t, b.CombinedFlatTaxAmount.Equal(d("13")))
	assert.True(t, b.Total.Equal(d("113")))
	assert.False(t, b.IsExempt)
	assertInvariants(t, b)
}

func TestReverse_Compuesto(t *testing.T) {
	b := tax.Reverse(d("115.47375"), tax.MustDefaultRateTable().RateFor("QC"))

	assert.True(t, tax.WithinTolerance(b.Subtotal, d("100")), b.Subtotal.String())
	assert.True(t, tax.WithinTolerance(b.NationalTaxAmount, d("5")))
	assert.True(t, tax.WithinTolerance(b.RegionalTaxAmount, d("10.47375")))
	assertInvariants(t, b)
}

func TestReverse_IdaYVueltaTodasLasJurisdicciones(t *testing.T) {
	table := tax.MustDefaultRateTable()
	amounts := []string{"0", "0.01", "1", "19.99", "100", "1234.56", "99999.99"}

	for _, j := range table.All() {
		for _, a := range amounts {
			forward := tax.Forward(d(a), j)
			reverse := tax.Reverse(forward.Total, j)
			assert.True(t, tax.WithinTolerance(reverse.Subtotal, d(a)),
				"%s: subtotal %s recuperado como %s", j.Code, a, reverse.Subtotal)

			again := tax.Forward(reverse.Subtotal, j)
			assert.True(t, tax.WithinTolerance(again.Total, forward.Total),
				"%s: total %s reconstruido como %s", j.Code, forward.Total, again.Total)
			assertInvariants(t, reverse)
		}
	}
}

func TestWithinTolerance(t *testing.T) {
	assert.True(t, tax.WithinTolerance(d("100"), d("100.01")))
	assert.True(t, tax.WithinTolerance(d("100.01"), d("100")))
	assert.False(t, tax.WithinTolerance(d("100"), d("100.011")))
}
