package repository

import (
	"context"

	"github.com/jhoicas/salestax-api/internal/domain/entity"
)

// BusinessDirectory puerto de consulta al directorio de empresas.
// GetExemption retorna (nil, nil) si la empresa no existe en el directorio.
type BusinessDirectory interface {
	GetExemption(ctx context.Context, businessID string) (*entity.BusinessExemption, error)
}
