package telemetry

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/salestax-api/internal/application/billing"
)

var _ billing.Metrics = (*TaxMetrics)(nil)

// TaxMetrics contadores Prometheus del motor de impuestos.
type TaxMetrics struct {
	registry *prometheus.Registry

	Calculations         *prometheus.CounterVec
	CollaboratorFailures *prometheus.CounterVec
	ExemptionDecisions   *prometheus.CounterVec
}

// NewTaxMetrics registra los contadores en un registro propio (más los collectors de Go y proceso).
func NewTaxMetrics() *TaxMetrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &TaxMetrics{
		registry: reg,
		Calculations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "salestax_calculations_total",
				Help: "Cálculos de impuesto realizados por jurisdicción, exención y dirección",
			},
			[]string{"jurisdiction", "exempt", "direction"},
		),
		CollaboratorFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "salestax_collaborator_failures_total",
				Help: "Fallos de colaboradores externos (caché, directorio) absorbidos por el motor",
			},
			[]string{"collaborator", "op"},
		),
		ExemptionDecisions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "salestax_exemption_decisions_total",
				Help: "Decisiones de exención por origen del dato",
			},
			[]string{"source", "exempt"},
		),
	}
}

func (m *TaxMetrics) ObserveCalculation(direction, jurisdiction string, exempt bool) {
	m.Calculations.WithLabelValues(jurisdiction, strconv.FormatBool(exempt), direction).Inc()
}

func (m *TaxMetrics) ObserveCollaboratorFailure(collaborator, op string) {
	m.CollaboratorFailures.WithLabelValues(collaborator, op).Inc()
}

func (m *TaxMetrics) ObserveExemptionDecision(source string, exempt bool) {
	m.ExemptionDecisions.WithLabelValues(source, strconv.FormatBool(exempt)).Inc()
}

// Handler expone el registro en formato Prometheus.
func (m *TaxMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
