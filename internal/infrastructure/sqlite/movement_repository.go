// Package sqlite implementa el origen de movimientos sobre un archivo SQLite
// (copia local de las tablas de staging) usando sqlx.
package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/jhoicas/dc-flow-dashboard/internal/domain"
	"github.com/jhoicas/dc-flow-dashboard/internal/domain/entity"
	"github.com/jhoicas/dc-flow-dashboard/internal/domain/movement"
	"github.com/jhoicas/dc-flow-dashboard/internal/domain/repository"
	"github.com/jhoicas/dc-flow-dashboard/internal/infrastructure/rowmap"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// Open abre la base en modo solo lectura compartido.
func Open(path string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("sqlite: abrir %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: ping %s: %w", path, err)
	}
	return db, nil
}

// MovementRepo lectura de las tablas inbound/outbound.
type MovementRepo struct {
	db     *sqlx.DB
	tables map[entity.Flow]string
}

// NewMovementRepository construye el adaptador.
func NewMovementRepository(db *sqlx.DB, inboundTable, outboundTable string) *MovementRepo {
	return &MovementRepo{
		db: db,
		tables: map[entity.Flow]string{
			entity.FlowInbound:  quoteIdent(inboundTable),
			entity.FlowOutbound: quoteIdent(outboundTable),
		},
	}
}

// quoteIdent cita cada parte de "esquema.tabla" con comillas dobles.
func quoteIdent(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = `"` + strings.ReplaceAll(p, `"`, `""`) + `"`
	}
	return strings.Join(parts, ".")
}

func (r *MovementRepo) table(flow entity.Flow) (string, error) {
	t, ok := r.tables[flow]
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrUnknownFlow, flow)
	}
	return t, nil
}

// Load lee todas las filas del flujo validando columnas por nombre.
func (r *MovementRepo) Load(ctx context.Context, flow entity.Flow) (*movement.RecordSet, error) {
	table, err := r.table(flow)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryxContext(ctx, "SELECT * FROM "+table)
	if err != nil {
		return nil, fmt.Errorf("sqlite.Load %s: %w", flow, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("sqlite.Load %s columns: %w", flow, err)
	}
	mapper, err := rowmap.New(flow, cols)
	if err != nil {
		return nil, err
	}

	var result []entity.Movement
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return nil, fmt.Errorf("sqlite.Load %s scan: %w", flow, err)
		}
		mv, err := mapper.Map(values)
		if err != nil {
			return nil, fmt.Errorf("sqlite.Load %s fila %d: %w", flow, len(result)+1, err)
		}
		result = append(result, mv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite.Load %s rows: %w", flow, err)
	}
	return movement.NewRecordSet(flow, result), nil
}

// DistinctValues valores distintos no nulos de la dimensión, ordenados.
func (r *MovementRepo) DistinctValues(ctx context.Context, flow entity.Flow, dim entity.Dimension) ([]string, error) {
	table, err := r.table(flow)
	if err != nil {
		return nil, err
	}
	col := quoteIdent(entity.DimensionColumn(dim))

	values := []string{}
	query := fmt.Sprintf("SELECT DISTINCT CAST(%s AS TEXT) FROM %s WHERE %s IS NOT NULL ORDER BY 1", col, table, col)
	if err := r.db.SelectContext(ctx, &values, query); err != nil {
		if strings.Contains(err.Error(), "no such column") {
			return nil, &domain.SchemaError{Flow: string(flow), Column: entity.DimensionColumn(dim)}
		}
		return nil, fmt.Errorf("sqlite.DistinctValues %s/%s: %w", flow, dim, err)
	}
	return values, nil
}

// DateBounds MIN/MAX de DATE. SQLite guarda las fechas como texto o número,
// así que se convierten con rowmap.
func (r *MovementRepo) DateBounds(ctx context.Context, flow entity.Flow) (time.Time, time.Time, bool, error) {
	table, err := r.table(flow)
	if err != nil {
		return time.Time{}, time.Time{}, false, err
	}
	col := quoteIdent(entity.ColumnDate)

	var lo, hi any
	query := fmt.Sprintf("SELECT MIN(%s), MAX(%s) FROM %s", col, col, table)
	if err := r.db.QueryRowxContext(ctx, query).Scan(&lo, &hi); err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("sqlite.DateBounds %s: %w", flow, err)
	}
	if lo == nil || hi == nil {
		return time.Time{}, time.Time{}, false, nil
	}
	first, err := rowmap.ToDate(lo)
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("sqlite.DateBounds %s min: %w", flow, err)
	}
	last, err := rowmap.ToDate(hi)
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("sqlite.DateBounds %s max: %w", flow, err)
	}
	return first, last, true, nil
}
