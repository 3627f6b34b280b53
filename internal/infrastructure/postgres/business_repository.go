package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/salestax-api/internal/domain/entity"
	"github.com/jhoicas/salestax-api/internal/domain/repository"
)

// Asegura que BusinessRepo implementa repository.BusinessDirectory.
var _ repository.BusinessDirectory = (*BusinessRepo)(nil)

// BusinessRepo directorio de empresas sobre PostgreSQL (tabla businesses).
type BusinessRepo struct {
	q Querier
}

// NewBusinessRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBusinessRepository(q Querier) *BusinessRepo {
	return &BusinessRepo{q: q}
}

// GetExemption obtiene los atributos de exención de una empresa. (nil, nil) si no existe.
func (r *BusinessRepo) GetExemption(ctx context.Context, businessID string) (*entity.BusinessExemption, error) {
	const query = `
		SELECT id, is_indigenous, COALESCE(exemption_status, ''), on_reserve_delivery,
		       COALESCE(exemption_certificate, ''), COALESCE(band_number, '')
		FROM businesses WHERE id = $1`
	var b entity.BusinessExemption
	err := r.q.QueryRow(ctx, query, businessID).Scan(
		&b.BusinessID, &b.IsIndigenous, &b.ExemptionStatus, &b.OnReserveDelivery,
		&b.ExemptionCertificate, &b.BandNumber,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get business exemption: %w", err)
	}
	return &b, nil
}
