// Package csvsource implementa el origen de movimientos sobre dos archivos
// CSV (extracciones de las tablas inbound y outbound con encabezado).
package csvsource

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/jhoicas/dc-flow-dashboard/internal/domain"
	"github.com/jhoicas/dc-flow-dashboard/internal/domain/entity"
	"github.com/jhoicas/dc-flow-dashboard/internal/domain/movement"
	"github.com/jhoicas/dc-flow-dashboard/internal/domain/repository"
	"github.com/jhoicas/dc-flow-dashboard/internal/infrastructure/rowmap"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo lee los archivos en cada llamada; no mantiene estado.
type MovementRepo struct {
	paths map[entity.Flow]string
}

// NewMovementRepository construye el adaptador con la ruta de cada flujo.
func NewMovementRepository(inboundPath, outboundPath string) *MovementRepo {
	return &MovementRepo{paths: map[entity.Flow]string{
		entity.FlowInbound:  inboundPath,
		entity.FlowOutbound: outboundPath,
	}}
}

// Load lee el archivo del flujo. La primera fila es el encabezado.
func (r *MovementRepo) Load(_ context.Context, flow entity.Flow) (*movement.RecordSet, error) {
	path, ok := r.paths[flow]
	if !ok || path == "" {
		return nil, fmt.Errorf("%w: %s sin archivo configurado", domain.ErrUnknownFlow, flow)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csvsource.Load %s: %w", flow, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &domain.SchemaError{Flow: string(flow), Column: entity.ColumnDate}
		}
		return nil, fmt.Errorf("csvsource.Load %s header: %w", flow, err)
	}
	mapper, err := rowmap.New(flow, header)
	if err != nil {
		return nil, err
	}

	var rows []entity.Movement
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("csvsource.Load %s línea %d: %w", flow, line, err)
		}
		values := make([]any, len(record))
		for i, v := range record {
			if v != "" {
				values[i] = v
			}
		}
		mv, err := mapper.Map(values)
		if err != nil {
			return nil, fmt.Errorf("csvsource.Load %s línea %d: %w", flow, line, err)
		}
		rows = append(rows, mv)
	}
	return movement.NewRecordSet(flow, rows), nil
}

// DistinctValues valores distintos no vacíos de la dimensión, ordenados.
func (r *MovementRepo) DistinctValues(ctx context.Context, flow entity.Flow, dim entity.Dimension) ([]string, error) {
	if !entity.SupportsDimension(flow, dim) {
		return nil, fmt.Errorf("%w: %s no aplica a %s", domain.ErrInvalidInput, dim, flow)
	}
	rs, err := r.Load(ctx, flow)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	values := []string{}
	for _, m := range rs.Rows {
		v := m.Dimension(dim)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			values = append(values, v)
		}
	}
	sort.Strings(values)
	return values, nil
}

// DateBounds fecha mínima y máxima del archivo.
func (r *MovementRepo) DateBounds(ctx context.Context, flow entity.Flow) (time.Time, time.Time, bool, error) {
	rs, err := r.Load(ctx, flow)
	if err != nil {
		return time.Time{}, time.Time{}, false, err
	}
	if rs.Len() == 0 {
		return time.Time{}, time.Time{}, false, nil
	}
	lo, hi := rs.Rows[0].Date, rs.Rows[0].Date
	for _, m := range rs.Rows[1:] {
		if m.Date.Before(lo) {
			lo = m.Date
		}
		if m.Date.After(hi) {
			hi = m.Date
		}
	}
	return lo, hi, true, nil
}
