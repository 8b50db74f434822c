package movement

import (
	"fmt"
	"time"

	"github.com/jhoicas/dc-flow-dashboard/internal/domain"
	"github.com/jhoicas/dc-flow-dashboard/internal/domain/entity"
)

// ApplyFilters devuelve las filas que cumplen todos los filtros (AND):
//
//  1. normaliza las fechas del conjunto (una sola vez);
//  2. si hay inicio y fin, conserva start <= fecha <= end (ambos inclusive);
//  3. por cada dimensión con valor distinto de "All", igualdad exacta.
//
// Sin filtros devuelve rs.Rows tal cual. Un resultado vacío es válido.
// Filtrar por una dimensión que el flujo no tiene es ErrInvalidInput.
func ApplyFilters(rs *RecordSet, c entity.FilterCriteria) ([]entity.Movement, error) {
	if rs == nil {
		return nil, nil
	}
	rs.Normalize()

	type dimFilter struct {
		dim   entity.Dimension
		value string
	}
	var dims []dimFilter
	for _, d := range []entity.Dimension{entity.DimensionDC, entity.DimensionBusinessUnit, entity.DimensionOrderType} {
		v, ok := c.Value(d)
		if !ok {
			continue
		}
		if !entity.SupportsDimension(rs.Flow, d) {
			return nil, fmt.Errorf("movement.ApplyFilters: %w: %s no aplica a %s", domain.ErrInvalidInput, d, rs.Flow)
		}
		dims = append(dims, dimFilter{dim: d, value: v})
	}

	byDate := c.HasDateRange()
	if !byDate && len(dims) == 0 {
		return rs.Rows, nil
	}

	var from, to time.Time
	if byDate {
		from, to = entity.NormalizeDate(*c.StartDate), entity.NormalizeDate(*c.EndDate)
	}

	out := make([]entity.Movement, 0, len(rs.Rows))
	for _, m := range rs.Rows {
		if byDate && (m.Date.Before(from) || m.Date.After(to)) {
			continue
		}
		pass := true
		for _, f := range dims {
			if m.Dimension(f.dim) != f.value {
				pass = false
				break
			}
		}
		if pass {
			out = append(out, m)
		}
	}
	return out, nil
}
