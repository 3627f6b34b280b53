package billing

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/jhoicas/salestax-api/internal/domain/entity"
	"github.com/jhoicas/salestax-api/internal/domain/repository"
	"github.com/jhoicas/salestax-api/internal/domain/tax"
	"github.com/jhoicas/salestax-api/pkg/logger"
)

// ExemptionSource origen de una decisión de exención.
type ExemptionSource string

const (
	SourceNone      ExemptionSource = "none"      // sin businessID, no se consultó nada
	SourceCache     ExemptionSource = "cache"     // registro previo en caché
	SourceDirectory ExemptionSource = "directory" // evaluado con datos del directorio
	SourceFallback  ExemptionSource = "fallback"  // directorio no disponible: se aplicó "no exento"
)

// ExemptionResult distingue una respuesta definitiva de un valor por defecto aplicado
// porque no se pudo verificar (Verified=false).
type ExemptionResult struct {
	Record   entity.ExemptionRecord
	Verified bool
	Source   ExemptionSource
}

// ExemptionResolver decide si una empresa está exenta consultando caché y directorio.
// Política: la caché falla abierta (se ignora), el directorio falla cerrado (no exento).
type ExemptionResolver struct {
	directory repository.BusinessDirectory
	cache     Cache
	ttl       time.Duration
	log       *logger.Logger
	metrics   Metrics
}

// NewExemptionResolver construye el resolvedor. cache y metrics pueden ser nil.
func NewExemptionResolver(
	directory repository.BusinessDirectory,
	cache Cache,
	ttl time.Duration,
	log *logger.Logger,
	metrics Metrics,
) *ExemptionResolver {
	if log == nil {
		log = logger.Nop()
	}
	if metrics == nil {
		metrics = NopMetrics{}
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL.Exemption
	}
	return &ExemptionResolver{
		directory: directory,
		cache:     cache,
		ttl:       ttl,
		log:       log.Component("exemption_resolver"),
		metrics:   metrics,
	}
}

// Resolve evalúa la exención de la empresa. Nunca retorna error: ante fallas del
// directorio aplica "no exento" y lo informa con Verified=false.
func (r *ExemptionResolver) Resolve(ctx context.Context, businessID string, claimedIndigenous bool) ExemptionResult {
	businessID = strings.TrimSpace(businessID)
	if businessID == "" {
		return ExemptionResult{Record: entity.NotExempt(), Verified: true, Source: SourceNone}
	}

	key := ExemptionCacheKey(businessID)
	if rec, ok := r.fromCache(ctx, key); ok {
		r.metrics.ObserveExemptionDecision(string(SourceCache), rec.IsExempt)
		return ExemptionResult{Record: rec, Verified: true, Source: SourceCache}
	}

	if r.directory == nil {
		return r.fallback(businessID, nil)
	}
	attrs, err := r.directory.GetExemption(ctx, businessID)
	if err != nil {
		return r.fallback(businessID, err)
	}

	rec := entity.NotExempt()
	if attrs != nil {
		rec = tax.EvaluateExemption(*attrs)
		if claimedIndigenous && !attrs.IsIndigenous {
			r.log.Debug().Str("business_id", businessID).Msg("empresa declara ser indígena pero el directorio no lo registra")
		}
	}

	r.toCache(ctx, key, rec)
	r.metrics.ObserveExemptionDecision(string(SourceDirectory), rec.IsExempt)
	return ExemptionResult{Record: rec, Verified: true, Source: SourceDirectory}
}

// fallback no se guarda en caché: no es una respuesta definitiva.
func (r *ExemptionResolver) fallback(businessID string, err error) ExemptionResult {
	r.metrics.ObserveCollaboratorFailure(CollaboratorDirectory, "get_exemption")
	r.metrics.ObserveExemptionDecision(string(SourceFallback), false)
	ev := r.log.Warn().Str("business_id", businessID)
	if err != nil {
		ev = ev.Err(err)
	}
	ev.Msg("directorio no disponible, se aplica tarifa sin exención")
	return ExemptionResult{Record: entity.NotExempt(), Verified: false, Source: SourceFallback}
}

func (r *ExemptionResolver) fromCache(ctx context.Context, key string) (entity.ExemptionRecord, bool) {
	if r.cache == nil {
		return entity.ExemptionRecord{}, false
	}
	raw, found, err := r.cache.Get(ctx, key)
	if err != nil {
		r.metrics.ObserveCollaboratorFailure(CollaboratorCache, "get")
		r.log.Warn().Err(err).Str("key", key).Msg("lectura de caché fallida, se continúa sin caché")
		return entity.ExemptionRecord{}, false
	}
	if !found {
		return entity.ExemptionRecord{}, false
	}
	var rec entity.ExemptionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("registro de caché corrupto, se ignora")
		return entity.ExemptionRecord{}, false
	}
	return rec, true
}

func (r *ExemptionResolver) toCache(ctx context.Context, key string, rec entity.ExemptionRecord) {
	if r.cache == nil {
		return
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, key, raw, r.ttl); err != nil {
		r.metrics.ObserveCollaboratorFailure(CollaboratorCache, "set")
		r.log.Warn().Err(err).Str("key", key).Msg("escritura en caché fallida, se ignora")
	}
}
