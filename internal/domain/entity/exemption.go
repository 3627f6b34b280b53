package entity

// Motivos de exención (texto expuesto al cliente).
const (
	ExemptionReasonApproved    = "Approved tax exempt status"
	ExemptionReasonOnReserve   = "On-reserve delivery"
	ExemptionReasonCertificate = "Valid tax exempt certificate"
)

// ExemptionStatusApproved estado de aprobación que otorga la exención directamente.
const ExemptionStatusApproved = "approved"

// ExemptionRecord resultado de evaluar si una empresa está exenta. Reason es nil cuando no hay exención.
type ExemptionRecord struct {
	IsExempt bool    `json:"is_exempt"`
	Reason   *string `json:"reason"`
}

// NotExempt registro sin exención.
func NotExempt() ExemptionRecord {
	return ExemptionRecord{}
}

// Exempt registro exento con el motivo indicado.
func Exempt(reason string) ExemptionRecord {
	return ExemptionRecord{IsExempt: true, Reason: &reason}
}

// ReasonString devuelve el motivo o cadena vacía.
func (r ExemptionRecord) ReasonString() string {
	if r.Reason == nil {
		return ""
	}
	return *r.Reason
}
