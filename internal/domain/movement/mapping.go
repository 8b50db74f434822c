package movement

import (
	"bytes"
	"encoding/json"
)

// Etiquetas de las métricas. Son también los encabezados de la exportación.
const (
	LabelDaysOfData       = "Days of Data"
	LabelTotalIBLoads     = "Total IB Loads"
	LabelTotalOrders      = "Total Orders"
	LabelTotalLines       = "Total Lines"
	LabelTotalUnits       = "Total Units"
	LabelSKUsWithMovement = "SKUs with Movement"

	LabelIBUnitsPerLine = "IB Units Per Line"
	LabelIBLinesPerPO   = "IB Lines Per PO"
	LabelIBUnitsPerPO   = "IB Units Per PO"

	LabelOBUnitsPerLine = "OB Units Per Line"
	LabelOBLinesPerPO   = "OB Lines Per PO"
	LabelOBUnitsPerPO   = "OB Units Per PO"
)

// Conjuntos fijos de claves por flujo y tipo de métrica.
var (
	InboundVolumeLabels = []string{
		LabelDaysOfData, LabelTotalIBLoads, LabelTotalOrders,
		LabelTotalLines, LabelTotalUnits, LabelSKUsWithMovement,
	}
	OutboundVolumeLabels = []string{
		LabelDaysOfData, LabelTotalOrders, LabelTotalLines,
		LabelTotalUnits, LabelSKUsWithMovement,
	}
	InboundProfileLabels  = []string{LabelIBUnitsPerLine, LabelIBLinesPerPO, LabelIBUnitsPerPO}
	OutboundProfileLabels = []string{LabelOBUnitsPerLine, LabelOBLinesPerPO, LabelOBUnitsPerPO}
)

// Metric una entrada del mapeo. Value es int (días) o string (número abreviado).
type Metric struct {
	Label string
	Value any
}

// Metrics mapeo ordenado etiqueta → valor de presentación.
// Se construye completo o no se construye.
type Metrics []Metric

// Get devuelve el valor de la etiqueta.
func (m Metrics) Get(label string) (any, bool) {
	for _, e := range m {
		if e.Label == label {
			return e.Value, true
		}
	}
	return nil, false
}

// Labels claves en orden.
func (m Metrics) Labels() []string {
	out := make([]string, len(m))
	for i, e := range m {
		out[i] = e.Label
	}
	return out
}

// MarshalJSON serializa como objeto JSON respetando el orden de las claves.
func (m Metrics) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Label)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
