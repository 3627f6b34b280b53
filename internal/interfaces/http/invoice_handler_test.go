package http_test

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/salestax-api/internal/application/dto"
	pkgjwt "github.com/jhoicas/salestax-api/pkg/jwt"
)

func TestInvoiceHandler_GetByPayment(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/api/invoices/pay-1", nil, bearer(t, pkgjwt.ScopeInvoicesRead))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.InvoiceResponse
	decodeBody(t, resp, &out)
	assert.Equal(t, "INV-pay-1", out.InvoiceNumber)
	assert.Equal(t, "2026-03-14", out.Date)
	assert.Equal(t, "Northern Goods", out.Business.Name)
	assert.Equal(t, "Ontario", out.Business.JurisdictionName)
	assert.True(t, out.Breakdown.Subtotal.Equal(decimal.NewFromInt(100)))
	assert.True(t, out.Breakdown.TotalTax.Equal(decimal.NewFromInt(13)))
	assert.False(t, out.IsExempt)
}

func TestInvoiceHandler_PagoInexistente(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/api/invoices/pay-404", nil, bearer(t, pkgjwt.ScopeInvoicesRead))

	var out dto.ErrorResponse
	decodeBody(t, resp, &out)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", out.Code)
}

func TestInvoiceHandler_TokenInvalido(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/api/invoices/pay-1", nil, "Bearer token.invalido.aqui")

	var out dto.ErrorResponse
	decodeBody(t, resp, &out)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", out.Code)
}
