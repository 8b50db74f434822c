// Package export transforma los mapeos de métricas ya formateados en las filas
// planas que se escriben a archivo (una por flujo).
package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/dc-flow-dashboard/internal/domain/entity"
	"github.com/jhoicas/dc-flow-dashboard/internal/domain/movement"
	"github.com/jhoicas/dc-flow-dashboard/pkg/numfmt"
)

// TimestampLayout formato del sello de tiempo en el nombre de archivo.
const TimestampLayout = "20060102_150405"

// Row registro plano listo para escribir: encabezado + una fila de valores.
// Los valores son int (días), float64 (cantidades expandidas) o string.
type Row struct {
	Flow     entity.Flow
	FileName string
	Stamp    string // sello de tiempo compartido por las filas de un lote
	Columns  []string
	Values   []any
}

// Input contexto completo de una exportación.
type Input struct {
	InboundVolumes  movement.Metrics
	InboundProfile  movement.Metrics
	OutboundVolumes movement.Metrics
	OutboundProfile movement.Metrics

	InboundDC    string
	OutboundDC   string
	BusinessUnit string
	Channel      string

	Timestamp time.Time
}

type fieldKind int

const (
	keep fieldKind = iota // se copia tal cual
	expand                // se reexpande con numfmt.ParseAbbreviated
)

type field struct {
	label string
	kind  fieldKind
}

// Units Per Line y Lines Per PO se exportan formateados; el resto de cantidades
// vuelve a su valor numérico.
var (
	inboundFields = []field{
		{movement.LabelDaysOfData, keep},
		{movement.LabelTotalIBLoads, expand},
		{movement.LabelTotalOrders, expand},
		{movement.LabelTotalLines, expand},
		{movement.LabelTotalUnits, expand},
		{movement.LabelSKUsWithMovement, expand},
		{movement.LabelIBUnitsPerLine, keep},
		{movement.LabelIBLinesPerPO, keep},
		{movement.LabelIBUnitsPerPO, expand},
	}
	outboundFields = []field{
		{movement.LabelDaysOfData, keep},
		{movement.LabelTotalOrders, expand},
		{movement.LabelTotalLines, expand},
		{movement.LabelTotalUnits, expand},
		{movement.LabelSKUsWithMovement, expand},
		{movement.LabelOBUnitsPerLine, keep},
		{movement.LabelOBLinesPerPO, keep},
		{movement.LabelOBUnitsPerPO, expand},
	}
)

// BuildRows construye la fila inbound y la fila outbound.
func BuildRows(in Input) (Row, Row, error) {
	stamp := in.Timestamp.Format(TimestampLayout)

	inbound := Row{
		Flow:     entity.FlowInbound,
		FileName: FileName(entity.FlowInbound, in.InboundDC, stamp),
		Stamp:    stamp,
		Columns:  []string{entity.ColumnDCName},
		Values:   []any{in.InboundDC},
	}
	if err := appendFields(&inbound, inboundFields, in.InboundVolumes, in.InboundProfile); err != nil {
		return Row{}, Row{}, fmt.Errorf("export.BuildRows inbound: %w", err)
	}

	outbound := Row{
		Flow:     entity.FlowOutbound,
		FileName: FileName(entity.FlowOutbound, in.OutboundDC, stamp),
		Stamp:    stamp,
		Columns:  []string{entity.ColumnDCName, entity.ColumnBusinessUnit, entity.ColumnOrderType},
		Values:   []any{in.OutboundDC, in.BusinessUnit, in.Channel},
	}
	if err := appendFields(&outbound, outboundFields, in.OutboundVolumes, in.OutboundProfile); err != nil {
		return Row{}, Row{}, fmt.Errorf("export.BuildRows outbound: %w", err)
	}
	return inbound, outbound, nil
}

func appendFields(row *Row, fields []field, volumes, profile movement.Metrics) error {
	for _, f := range fields {
		v, ok := volumes.Get(f.label)
		if !ok {
			v, ok = profile.Get(f.label)
		}
		if !ok {
			return fmt.Errorf("falta la métrica %q", f.label)
		}
		if f.kind == expand {
			text, isText := v.(string)
			if !isText {
				return fmt.Errorf("métrica %q: se esperaba texto, llegó %T", f.label, v)
			}
			n, err := numfmt.ParseAbbreviated(text)
			if err != nil {
				return fmt.Errorf("métrica %q: %w", f.label, err)
			}
			v = n
		}
		row.Columns = append(row.Columns, f.label)
		row.Values = append(row.Values, v)
	}
	return nil
}

// FileName {flujo}_data_summary_{valor}_{sello}.csv. Los separadores de ruta
// del valor de la dimensión se sustituyen por "_".
func FileName(flow entity.Flow, dimensionValue, stamp string) string {
	safe := strings.NewReplacer("/", "_", `\`, "_").Replace(dimensionValue)
	return fmt.Sprintf("%s_data_summary_%s_%s.csv", flow, safe, stamp)
}

// FormatValue texto de una celda. Los float64 se escriben con al menos un
// decimal (1500000 → "1500000.0").
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case float64:
		s := strconv.FormatFloat(x, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	default:
		return fmt.Sprint(x)
	}
}

// Strings valores de la fila como texto, en el orden de Columns.
func (r Row) Strings() []string {
	out := make([]string, len(r.Values))
	for i, v := range r.Values {
		out[i] = FormatValue(v)
	}
	return out
}
