package billing

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/jhoicas/salestax-api/internal/domain"
	"github.com/jhoicas/salestax-api/internal/domain/entity"
	"github.com/jhoicas/salestax-api/internal/domain/tax"
	"github.com/jhoicas/salestax-api/pkg/logger"
	"github.com/jhoicas/salestax-api/pkg/taxid"
	"github.com/shopspring/decimal"
)

// CalculatorUseCase cálculo directo e inverso de impuestos, consulta de tasas,
// validación de números tributarios y verificación de exenciones.
// No guarda estado mutable: se puede usar desde varias goroutines.
type CalculatorUseCase struct {
	rates      *tax.RateTable
	exemptions *ExemptionResolver
	cache      Cache
	ttl        time.Duration
	log        *logger.Logger
	metrics    Metrics
}

// NewCalculatorUseCase construye el caso de uso. cache y metrics pueden ser nil.
func NewCalculatorUseCase(
	rates *tax.RateTable,
	exemptions *ExemptionResolver,
	cache Cache,
	ttl time.Duration,
	log *logger.Logger,
	metrics Metrics,
) *CalculatorUseCase {
	if log == nil {
		log = logger.Nop()
	}
	if metrics == nil {
		metrics = NopMetrics{}
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL.Calculation
	}
	return &CalculatorUseCase{
		rates:      rates,
		exemptions: exemptions,
		cache:      cache,
		ttl:        ttl,
		log:        log.Component("tax_calculator"),
		metrics:    metrics,
	}
}

// Calculate calcula el desglose para un subtotal antes de impuestos.
// Primero resuelve la exención (si hay businessID); una operación exenta no lleva impuestos.
// Retorna domain.ErrInvalidInput si el subtotal es negativo o excede los límites de tax.ValidAmount.
func (uc *CalculatorUseCase) Calculate(
	ctx context.Context,
	subtotal decimal.Decimal,
	jurisdictionCode, businessID string,
	claimedIndigenous bool,
) (*entity.TaxBreakdown, error) {
	if !tax.ValidAmount(subtotal) {
		return nil, domain.ErrInvalidInput
	}
	j := uc.rates.RateFor(jurisdictionCode)
	key := CalculationCacheKey(j.Code, subtotal)
	businessID = strings.TrimSpace(businessID)

	// Sin empresa el resultado depende solo de (jurisdicción, subtotal): se puede servir desde caché.
	// Las entradas exentas se ignoran porque dependen de la empresa que las originó.
	if businessID == "" {
		if cached, ok := uc.fromCache(ctx, key); ok && !cached.IsExempt {
			return cached, nil
		}
	}

	var breakdown entity.TaxBreakdown
	exemption := uc.exemptions.Resolve(ctx, businessID, claimedIndigenous)
	if exemption.Record.IsExempt {
		breakdown = tax.ExemptBreakdown(subtotal, exemption.Record)
	} else {
		breakdown = tax.Forward(subtotal, j)
	}

	uc.toCache(ctx, key, breakdown)
	uc.metrics.ObserveCalculation(DirectionForward, j.Code, breakdown.IsExempt)
	return &breakdown, nil
}

// ReverseCalculate extrae subtotal e impuestos de un total con impuestos incluidos.
// Nunca marca la operación como exenta. Aplica los mismos límites de monto que Calculate.
func (uc *CalculatorUseCase) ReverseCalculate(_ context.Context, total decimal.Decimal, jurisdictionCode string) (*entity.TaxBreakdown, error) {
	if !tax.ValidAmount(total) {
		return nil, domain.ErrInvalidInput
	}
	j := uc.rates.RateFor(jurisdictionCode)
	breakdown := tax.Reverse(total, j)
	uc.metrics.ObserveCalculation(DirectionReverse, j.Code, false)
	return &breakdown, nil
}

// GetRates proyección de solo lectura de la tabla de tasas (con respaldo al default).
func (uc *CalculatorUseCase) GetRates(jurisdictionCode string) entity.Jurisdiction {
	return uc.rates.RateFor(jurisdictionCode)
}

// ListRates todas las jurisdicciones ordenadas por código.
func (uc *CalculatorUseCase) ListRates() []entity.Jurisdiction {
	return uc.rates.All()
}

// ValidateTaxNumber valida el formato según la categoría NATIONAL, REGIONAL o EXEMPT.
func (uc *CalculatorUseCase) ValidateTaxNumber(value, category string) bool {
	return taxid.Validate(value, category)
}

// CheckExemption verificación de exención sin cálculo.
func (uc *CalculatorUseCase) CheckExemption(ctx context.Context, businessID string, claimedIndigenous bool) ExemptionResult {
	return uc.exemptions.Resolve(ctx, businessID, claimedIndigenous)
}

func (uc *CalculatorUseCase) fromCache(ctx context.Context, key string) (*entity.TaxBreakdown, bool) {
	if uc.cache == nil {
		return nil, false
	}
	raw, found, err := uc.cache.Get(ctx, key)
	if err != nil {
		uc.metrics.ObserveCollaboratorFailure(CollaboratorCache, "get")
		uc.log.Warn().Err(err).Str("key", key).Msg("lectura de caché fallida, se calcula sin caché")
		return nil, false
	}
	if !found {
		return nil, false
	}
	var b entity.TaxBreakdown
	if err := json.Unmarshal(raw, &b); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("registro de caché corrupto, se ignora")
		return nil, false
	}
	return &b, true
}

func (uc *CalculatorUseCase) toCache(ctx context.Context, key string, b entity.TaxBreakdown) {
	if uc.cache == nil {
		return
	}
	raw, err := json.Marshal(b)
	if err != nil {
		return
	}
	if err := uc.cache.Set(ctx, key, raw, uc.ttl); err != nil {
		uc.metrics.ObserveCollaboratorFailure(CollaboratorCache, "set")
		uc.log.Warn().Err(err).Str("key", key).Msg("escritura en caché fallida, se retorna el resultado sin caché")
	}
}
