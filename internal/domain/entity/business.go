package entity

// BusinessExemption atributos de exención que expone el directorio de empresas.
type BusinessExemption struct {
	BusinessID           string
	IsIndigenous         bool
	ExemptionStatus      string // approved, pending, rejected, "" = sin solicitud
	OnReserveDelivery    bool
	ExemptionCertificate string
	BandNumber           string
}

// BusinessProfile datos de la empresa asociados a un pago.
type BusinessProfile struct {
	ID                 string
	Name               string
	Address            string
	RegistrationNumber string // BN federal (#########RT####)
	JurisdictionCode   string
	Exemption          BusinessExemption
}
