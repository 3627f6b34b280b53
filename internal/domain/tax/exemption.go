package tax

import (
	"strings"

	"github.com/jhoicas/salestax-api/internal/domain/entity"
	"github.com/jhoicas/salestax-api/pkg/taxid"
)

// EvaluateExemption aplica las condiciones de exención en orden estricto de prioridad:
//  1. estado de exención aprobado
//  2. entrega en reserva (on-reserve)
//  3. certificado de exención con formato válido
//
// Ser empresa indígena por sí solo nunca otorga la exención.
func EvaluateExemption(attrs entity.BusinessExemption) entity.ExemptionRecord {
	if strings.EqualFold(strings.TrimSpace(attrs.ExemptionStatus), entity.ExemptionStatusApproved) {
		return entity.Exempt(entity.ExemptionReasonApproved)
	}
	if attrs.OnReserveDelivery {
		return entity.Exempt(entity.ExemptionReasonOnReserve)
	}
	if cert := strings.TrimSpace(attrs.ExemptionCertificate); cert != "" && taxid.IsExemptionCertificate(cert) {
		return entity.Exempt(entity.ExemptionReasonCertificate + " (" + cert + ")")
	}
	return entity.NotExempt()
}
