package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/dc-flow-dashboard/internal/domain"
)

// Flow dirección del movimiento en el centro de distribución.
type Flow string

const (
	FlowInbound  Flow = "inbound"  // recepción (loads / PO)
	FlowOutbound Flow = "outbound" // despacho (órdenes de venta)
)

// ParseFlow valida el nombre de flujo recibido por la API.
func ParseFlow(s string) (Flow, error) {
	switch Flow(s) {
	case FlowInbound, FlowOutbound:
		return Flow(s), nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnknownFlow, s)
}

// Movement una línea de movimiento (una fila del origen).
// Inbound usa LoadID y OrderID (PO_NUMBER); outbound usa OrderID (ORDER_NUMBER),
// BusinessUnit y OrderType. Los campos que no aplican al flujo quedan vacíos.
type Movement struct {
	Date         time.Time
	LoadID       string
	OrderID      string
	SKU          string
	Quantity     decimal.Decimal
	DCName       string
	BusinessUnit string
	OrderType    string
}

// Dimension valor categórico de la fila para la dimensión dada.
func (m Movement) Dimension(d Dimension) string {
	switch d {
	case DimensionDC:
		return m.DCName
	case DimensionBusinessUnit:
		return m.BusinessUnit
	case DimensionOrderType:
		return m.OrderType
	}
	return ""
}

// NormalizeDate reduce t a su fecha civil (00:00 UTC). Aplicarla dos veces no cambia el resultado.
func NormalizeDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
