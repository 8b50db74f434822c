package repository

import (
	"context"
	"time"

	"github.com/jhoicas/dc-flow-dashboard/internal/domain/entity"
	"github.com/jhoicas/dc-flow-dashboard/internal/domain/movement"
)

// MovementRepository puerto de lectura del origen de movimientos.
// Las implementaciones son read-only y validan el esquema al cargar:
// una columna obligatoria ausente se reporta como *domain.SchemaError.
type MovementRepository interface {
	// Load devuelve todas las filas del flujo. Se llama una vez por sesión.
	Load(ctx context.Context, flow entity.Flow) (*movement.RecordSet, error)

	// DistinctValues valores distintos de la dimensión (sin el centinela "All").
	DistinctValues(ctx context.Context, flow entity.Flow, dim entity.Dimension) ([]string, error)

	// DateBounds fecha mínima y máxima del flujo; ok=false si no hay fechas.
	DateBounds(ctx context.Context, flow entity.Flow) (min, max time.Time, ok bool, err error)
}
