package billing

import (
	"context"
	"time"
)

// Cache almacén clave/valor con expiración (memoria o PostgreSQL).
// Get retorna found=false cuando la clave no existe o expiró; err solo ante fallas de infraestructura.
type Cache interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Metrics observador de métricas de negocio (implementación Prometheus en infrastructure/telemetry).
type Metrics interface {
	ObserveCalculation(direction, jurisdiction string, exempt bool)
	ObserveCollaboratorFailure(collaborator, op string)
	ObserveExemptionDecision(source string, exempt bool)
}

// Direcciones de cálculo para métricas.
const (
	DirectionForward = "forward"
	DirectionReverse = "reverse"
)

// Colaboradores externos para métricas y logs.
const (
	CollaboratorCache     = "cache"
	CollaboratorDirectory = "directory"
)

// CacheTTL tiempos de expiración por tipo de resultado.
type CacheTTL struct {
	Calculation time.Duration
	Exemption   time.Duration
}

// DefaultCacheTTL 1h para cálculos, 24h para exenciones (cambian poco).
var DefaultCacheTTL = CacheTTL{
	Calculation: time.Hour,
	Exemption:   24 * time.Hour,
}

// NopMetrics descarta las observaciones.
type NopMetrics struct{}

func (NopMetrics) ObserveCalculation(string, string, bool)  {}
func (NopMetrics) ObserveCollaboratorFailure(string, string) {}
func (NopMetrics) ObserveExemptionDecision(string, bool)     {}
