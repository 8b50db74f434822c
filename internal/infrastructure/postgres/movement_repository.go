package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/dc-flow-dashboard/internal/domain"
	"github.com/jhoicas/dc-flow-dashboard/internal/domain/entity"
	"github.com/jhoicas/dc-flow-dashboard/internal/domain/movement"
	"github.com/jhoicas/dc-flow-dashboard/internal/domain/repository"
	"github.com/jhoicas/dc-flow-dashboard/internal/infrastructure/rowmap"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo consultas de solo lectura sobre las tablas de staging inbound/outbound.
type MovementRepo struct {
	pool   *pgxpool.Pool
	tables map[entity.Flow]pgx.Identifier
}

// NewMovementRepository construye el adaptador. Los nombres de tabla admiten
// esquema ("temporary_data.INBOUND_STANDARD").
func NewMovementRepository(pool *pgxpool.Pool, inboundTable, outboundTable string) *MovementRepo {
	return &MovementRepo{
		pool: pool,
		tables: map[entity.Flow]pgx.Identifier{
			entity.FlowInbound:  tableIdentifier(inboundTable),
			entity.FlowOutbound: tableIdentifier(outboundTable),
		},
	}
}

func tableIdentifier(name string) pgx.Identifier {
	return pgx.Identifier(strings.Split(name, "."))
}

func (r *MovementRepo) table(flow entity.Flow) (string, error) {
	id, ok := r.tables[flow]
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrUnknownFlow, flow)
	}
	return id.Sanitize(), nil
}

// Load lee la tabla completa del flujo. Se consulta con SELECT * para validar
// el esquema por nombre de columna antes de mapear las filas.
func (r *MovementRepo) Load(ctx context.Context, flow entity.Flow) (*movement.RecordSet, error) {
	table, err := r.table(flow)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, "SELECT * FROM "+table)
	if err != nil {
		return nil, fmt.Errorf("movements.Load %s: %w", flow, err)
	}
	defer rows.Close()

	mapper, err := rowmap.New(flow, fieldNames(rows.FieldDescriptions()))
	if err != nil {
		return nil, err
	}

	var result []entity.Movement
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("movements.Load %s values: %w", flow, err)
		}
		mv, err := mapper.Map(values)
		if err != nil {
			return nil, fmt.Errorf("movements.Load %s fila %d: %w", flow, len(result)+1, err)
		}
		result = append(result, mv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("movements.Load %s rows: %w", flow, err)
	}
	return movement.NewRecordSet(flow, result), nil
}

// DistinctValues SELECT DISTINCT sobre la columna de la dimensión; ignora NULL.
func (r *MovementRepo) DistinctValues(ctx context.Context, flow entity.Flow, dim entity.Dimension) ([]string, error) {
	table, err := r.table(flow)
	if err != nil {
		return nil, err
	}
	col, err := r.resolveColumn(ctx, flow, table, entity.DimensionColumn(dim))
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT DISTINCT %s::TEXT FROM %s WHERE %s IS NOT NULL ORDER BY 1", col, table, col)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("movements.DistinctValues %s/%s: %w", flow, dim, err)
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("movements.DistinctValues scan: %w", err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// DateBounds SELECT MIN/MAX de la columna de fecha.
func (r *MovementRepo) DateBounds(ctx context.Context, flow entity.Flow) (time.Time, time.Time, bool, error) {
	table, err := r.table(flow)
	if err != nil {
		return time.Time{}, time.Time{}, false, err
	}
	col, err := r.resolveColumn(ctx, flow, table, entity.ColumnDate)
	if err != nil {
		return time.Time{}, time.Time{}, false, err
	}

	var lo, hi any
	query := fmt.Sprintf("SELECT MIN(%s), MAX(%s) FROM %s", col, col, table)
	if err := r.pool.QueryRow(ctx, query).Scan(&lo, &hi); err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("movements.DateBounds %s: %w", flow, err)
	}
	if lo == nil || hi == nil {
		return time.Time{}, time.Time{}, false, nil
	}
	first, err := rowmap.ToDate(lo)
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("movements.DateBounds %s min: %w", flow, err)
	}
	last, err := rowmap.ToDate(hi)
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("movements.DateBounds %s max: %w", flow, err)
	}
	return first, last, true, nil
}

// resolveColumn devuelve el identificador real (con su capitalización) de la columna pedida.
func (r *MovementRepo) resolveColumn(ctx context.Context, flow entity.Flow, table, want string) (string, error) {
	rows, err := r.pool.Query(ctx, "SELECT * FROM "+table+" LIMIT 0")
	if err != nil {
		return "", fmt.Errorf("movements.resolveColumn %s: %w", flow, err)
	}
	names := fieldNames(rows.FieldDescriptions())
	rows.Close()

	for _, n := range names {
		if strings.EqualFold(n, want) {
			return pgx.Identifier{n}.Sanitize(), nil
		}
	}
	return "", &domain.SchemaError{Flow: string(flow), Column: want}
}
