package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/salestax-api/internal/domain/entity"
	"github.com/jhoicas/salestax-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo lectura de pagos liquidados junto con el perfil de la empresa.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// GetByID obtiene un pago por ID. (nil, nil) si no existe.
func (r *PaymentRepo) GetByID(ctx context.Context, paymentID string) (*entity.PaymentRecord, error) {
	const query = `
		SELECT p.id, p.amount, p.tax_amount, p.created_at,
		       b.id, b.name, b.address, COALESCE(b.registration_number, ''), b.jurisdiction_code,
		       b.is_indigenous, COALESCE(b.exemption_status, ''), b.on_reserve_delivery,
		       COALESCE(b.exemption_certificate, ''), COALESCE(b.band_number, '')
		FROM payments p
		JOIN businesses b ON b.id = p.business_id
		WHERE p.id = $1`
	var p entity.PaymentRecord
	b := &p.Business
	err := r.q.QueryRow(ctx, query, paymentID).Scan(
		&p.ID, &p.Amount, &p.TaxAmount, &p.CreatedAt,
		&b.ID, &b.Name, &b.Address, &b.RegistrationNumber, &b.JurisdictionCode,
		&b.Exemption.IsIndigenous, &b.Exemption.ExemptionStatus, &b.Exemption.OnReserveDelivery,
		&b.Exemption.ExemptionCertificate, &b.Exemption.BandNumber,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	b.Exemption.BusinessID = b.ID
	return &p, nil
}
