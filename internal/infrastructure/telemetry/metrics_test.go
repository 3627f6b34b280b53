package telemetry_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/salestax-api/internal/application/billing"
	"github.com/jhoicas/salestax-api/internal/infrastructure/telemetry"
)

func TestTaxMetrics_Contadores(t *testing.T) {
	m := telemetry.NewTaxMetrics()

	m.ObserveCalculation(billing.DirectionForward, "QC", false)
	m.ObserveCalculation(billing.DirectionForward, "QC", false)
	m.ObserveCalculation(billing.DirectionReverse, "ON", false)
	m.ObserveCollaboratorFailure(billing.CollaboratorDirectory, "get_exemption")
	m.ObserveExemptionDecision("directory", true)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Calculations.WithLabelValues("QC", "false", billing.DirectionForward)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Calculations.WithLabelValues("ON", "false", billing.DirectionReverse)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CollaboratorFailures.WithLabelValues(billing.CollaboratorDirectory, "get_exemption")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ExemptionDecisions.WithLabelValues("directory", "true")))
}

func TestTaxMetrics_Handler(t *testing.T) {
	m := telemetry.NewTaxMetrics()
	m.ObserveCalculation(billing.DirectionForward, "BC", true)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `salestax_calculations_total{direction="forward",exempt="true",jurisdiction="BC"} 1`)
}

func TestTaxMetrics_InstanciasIndependientes(t *testing.T) {
	// Cada instancia usa su propio registro: crear dos no debe entrar en pánico.
	assert.NotPanics(t, func() {
		telemetry.NewTaxMetrics()
		telemetry.NewTaxMetrics()
	})
}
