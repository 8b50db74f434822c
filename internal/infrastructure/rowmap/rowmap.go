// Package rowmap convierte filas sin tipo (SQL o CSV) en entity.Movement
// y valida que el origen tenga las columnas obligatorias del flujo.
package rowmap

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"

	"github.com/jhoicas/dc-flow-dashboard/internal/domain"
	"github.com/jhoicas/dc-flow-dashboard/internal/domain/entity"
)

// Mapper índice columna → posición para un flujo.
type Mapper struct {
	flow entity.Flow
	idx  map[string]int
}

// New valida las columnas del origen contra el esquema del flujo.
// La comparación ignora mayúsculas: PostgreSQL pliega a minúsculas los
// identificadores sin comillas (DATE → date).
func New(flow entity.Flow, columns []string) (*Mapper, error) {
	schema := entity.SchemaFor(flow)
	idx := make(map[string]int, len(schema.Columns))
	for _, want := range schema.Columns {
		pos := -1
		for i, c := range columns {
			if strings.EqualFold(strings.TrimSpace(c), want) {
				pos = i
				break
			}
		}
		if pos < 0 {
			return nil, &domain.SchemaError{Flow: string(flow), Column: want}
		}
		idx[want] = pos
	}
	return &Mapper{flow: flow, idx: idx}, nil
}

// Flow flujo del mapper.
func (m *Mapper) Flow() entity.Flow { return m.flow }

// Map convierte una fila. values sigue el orden de las columnas pasadas a New.
func (m *Mapper) Map(values []any) (entity.Movement, error) {
	var mv entity.Movement
	var err error

	if mv.Date, err = toDate(m.cell(values, entity.ColumnDate)); err != nil {
		return mv, fmt.Errorf("rowmap: %s: %w", entity.ColumnDate, err)
	}
	if mv.Quantity, err = toDecimal(m.cell(values, entity.ColumnQty)); err != nil {
		return mv, fmt.Errorf("rowmap: %s: %w", entity.ColumnQty, err)
	}
	mv.SKU = toText(m.cell(values, entity.ColumnSKU))
	mv.DCName = toText(m.cell(values, entity.ColumnDCName))

	switch m.flow {
	case entity.FlowInbound:
		mv.LoadID = toText(m.cell(values, entity.ColumnLoadNumber))
		mv.OrderID = toText(m.cell(values, entity.ColumnPONumber))
	case entity.FlowOutbound:
		mv.OrderID = toText(m.cell(values, entity.ColumnOrderNumber))
		mv.BusinessUnit = toText(m.cell(values, entity.ColumnBusinessUnit))
		mv.OrderType = toText(m.cell(values, entity.ColumnOrderType))
	}
	return mv, nil
}

func (m *Mapper) cell(values []any, column string) any {
	i, ok := m.idx[column]
	if !ok || i >= len(values) {
		return nil
	}
	return values[i]
}

// ── Conversión de celdas ──────────────────────────────────────────────────────

// ToDate convierte una celda de fecha (time.Time, "2006-01-02", timestamp...).
func ToDate(v any) (time.Time, error) { return toDate(v) }

func toDate(v any) (time.Time, error) {
	switch x := v.(type) {
	case nil:
		return time.Time{}, fmt.Errorf("%w: fecha vacía", domain.ErrInvalidInput)
	case time.Time:
		return x, nil
	case []byte:
		v = string(x)
	}
	t, err := cast.ToTimeE(v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return t, nil
}

// Texto vacío para NULL; los enteros se imprimen sin decimales (1.0 → "1").
func toText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case []byte:
		return strings.TrimSpace(string(x))
	case string:
		return strings.TrimSpace(x)
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return s
}

// NULL cuenta como cero, igual que la suma del reporte original.
func toDecimal(v any) (decimal.Decimal, error) {
	switch x := v.(type) {
	case nil:
		return decimal.Zero, nil
	case decimal.Decimal:
		return x, nil
	case []byte:
		return parseDecimal(string(x))
	case string:
		return parseDecimal(x)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		n, err := cast.ToInt64E(x)
		if err != nil {
			return decimal.Zero, err
		}
		return decimal.NewFromInt(n), nil
	case float32, float64:
		f, err := cast.ToFloat64E(x)
		if err != nil {
			return decimal.Zero, err
		}
		return decimal.NewFromFloat(f), nil
	}
	return parseDecimal(fmt.Sprint(v))
}

func parseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: cantidad %q", domain.ErrInvalidInput, s)
	}
	return d, nil
}
