package repository

import (
	"context"

	"github.com/jhoicas/negocio-api/internal/domain/entity"
)

// EmailConfigRepository configuración única del reporte mensual.
type EmailConfigRepository interface {
	// Get devuelve nil, nil si todavía no hay configuración.
	Get(ctx context.Context) (*entity.EmailConfig, error)
	Save(ctx context.Context, cfg *entity.EmailConfig) error
}
