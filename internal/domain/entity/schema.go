package entity

// Columnas del origen. Los nombres vienen de las tablas de staging del cliente
// y se respetan tal cual (incluido "Qty").
const (
	ColumnDate         = "DATE"
	ColumnLoadNumber   = "LOAD_NUMBER"
	ColumnPONumber     = "PO_NUMBER"
	ColumnOrderNumber  = "ORDER_NUMBER"
	ColumnSKU          = "SKU"
	ColumnQty          = "Qty"
	ColumnDCName       = "DC_NAME"
	ColumnBusinessUnit = "BUSINESSUNIT"
	ColumnOrderType    = "ORDERTYPE"
)

// Schema columnas obligatorias de un flujo, en el orden del SELECT original.
type Schema struct {
	Flow    Flow
	Columns []string
}

var (
	InboundSchema = Schema{
		Flow:    FlowInbound,
		Columns: []string{ColumnDate, ColumnLoadNumber, ColumnPONumber, ColumnSKU, ColumnQty, ColumnDCName},
	}
	OutboundSchema = Schema{
		Flow:    FlowOutbound,
		Columns: []string{ColumnDate, ColumnOrderNumber, ColumnSKU, ColumnQty, ColumnDCName, ColumnBusinessUnit, ColumnOrderType},
	}
)

// SchemaFor devuelve el esquema del flujo.
func SchemaFor(f Flow) Schema {
	if f == FlowOutbound {
		return OutboundSchema
	}
	return InboundSchema
}

// DimensionColumn columna del origen que alimenta la dimensión.
func DimensionColumn(d Dimension) string {
	switch d {
	case DimensionBusinessUnit:
		return ColumnBusinessUnit
	case DimensionOrderType:
		return ColumnOrderType
	default:
		return ColumnDCName
	}
}
