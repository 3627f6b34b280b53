package repository

import (
	"context"

	"github.com/jhoicas/salestax-api/internal/domain/entity"
)

// PaymentRepository puerto de lectura de pagos liquidados (con el perfil de la empresa).
// GetByID retorna (nil, nil) si el pago no existe.
type PaymentRepository interface {
	GetByID(ctx context.Context, paymentID string) (*entity.PaymentRecord, error)
}
