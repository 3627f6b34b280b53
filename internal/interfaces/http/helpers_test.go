package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/salestax-api/internal/application/billing"
	"github.com/jhoicas/salestax-api/internal/domain/entity"
	"github.com/jhoicas/salestax-api/internal/domain/tax"
	"github.com/jhoicas/salestax-api/internal/infrastructure/cache"
	apphttp "github.com/jhoicas/salestax-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/salestax-api/pkg/jwt"
	"github.com/jhoicas/salestax-api/pkg/logger"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testClientID  = "pos-terminal-01"
	testIssuer    = "salestax-api-test"
)

var errDirectoryDown = errors.New("directorio no disponible")

type stubDirectory struct {
	byID map[string]*entity.BusinessExemption
	err  error
}

func (s *stubDirectory) GetExemption(_ context.Context, id string) (*entity.BusinessExemption, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.byID[id], nil
}

type stubPayments struct {
	byID map[string]*entity.PaymentRecord
}

func (s *stubPayments) GetByID(_ context.Context, id string) (*entity.PaymentRecord, error) {
	return s.byID[id], nil
}

type testEnv struct {
	app       *fiber.App
	directory *stubDirectory
	payments  *stubPayments
}

// newTestEnv arma la API completa con caché en memoria y colaboradores en memoria.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	rates := tax.MustDefaultRateTable()
	mem := cache.NewMemoryCache(time.Hour, time.Minute)
	dir := &stubDirectory{byID: map[string]*entity.BusinessExemption{
		"biz-approved": {BusinessID: "biz-approved", IsIndigenous: true, ExemptionStatus: "approved", BandNumber: "123"},
		"biz-plain":    {BusinessID: "biz-plain"},
	}}
	pays := &stubPayments{byID: map[string]*entity.PaymentRecord{
		"pay-1": {
			ID:        "pay-1",
			Amount:    decimal.RequireFromString("113.00"),
			TaxAmount: decimal.RequireFromString("13.00"),
			CreatedAt: time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC),
			Business: entity.BusinessProfile{
				ID:               "biz-plain",
				Name:             "Northern Goods",
				Address:          "1 Main St, Toronto",
				JurisdictionCode: "ON",
				Exemption:        entity.BusinessExemption{BusinessID: "biz-plain"},
			},
		},
	}}

	log := logger.Nop()
	resolver := billing.NewExemptionResolver(dir, mem, billing.DefaultCacheTTL.Exemption, log, nil)
	calc := billing.NewCalculatorUseCase(rates, resolver, mem, billing.DefaultCacheTTL.Calculation, log, nil)
	invoices := billing.NewGenerateInvoiceUseCase(pays, calc, rates)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Calculator: calc,
		Invoices:   invoices,
		JWTSecret:  testJWTSecret,
	})
	return &testEnv{app: app, directory: dir, payments: pays}
}

func bearer(t *testing.T, scopes ...string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testClientID, testIssuer, 60, scopes...)
	require.NoError(t, err)
	return "Bearer " + tok
}

func (e *testEnv) do(t *testing.T, method, path string, body any, auth string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}
