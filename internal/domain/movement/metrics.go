package movement

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/dc-flow-dashboard/internal/domain"
	"github.com/jhoicas/dc-flow-dashboard/internal/domain/entity"
	"github.com/jhoicas/dc-flow-dashboard/pkg/numfmt"
)

const hoursPerDay = 24

// Volumes conteos y sumas crudos sobre un conjunto filtrado.
type Volumes struct {
	DaysOfData int
	NoData     bool // conjunto vacío: DaysOfData no está definido y se reporta 0
	Loads      int
	Orders     int
	Lines      int
	Units      decimal.Decimal
	SKUs       int
}

// OrderProfile razones por unidad. Un denominador cero da 0.
type OrderProfile struct {
	UnitsPerLine  float64
	LinesPerOrder float64
	UnitsPerOrder float64
}

// DaySpan días entre la fecha mínima y la máxima del conjunto.
// Con el conjunto vacío devuelve ErrNoDataInRange.
func DaySpan(rows []entity.Movement) (int, error) {
	if len(rows) == 0 {
		return 0, fmt.Errorf("movement.DaySpan: %w", domain.ErrNoDataInRange)
	}
	lo, hi := rows[0].Date, rows[0].Date
	for _, m := range rows[1:] {
		if m.Date.Before(lo) {
			lo = m.Date
		}
		if m.Date.After(hi) {
			hi = m.Date
		}
	}
	return int(hi.Sub(lo).Hours()) / hoursPerDay, nil
}

// VolumesOf calcula los volúmenes. Los identificadores vacíos (NULL en origen)
// no cuentan como valor distinto.
func VolumesOf(rows []entity.Movement) Volumes {
	v := Volumes{Lines: len(rows), Units: decimal.Zero}
	days, err := DaySpan(rows)
	if err != nil {
		v.NoData = true
	}
	v.DaysOfData = days

	loads := make(map[string]struct{})
	orders := make(map[string]struct{})
	skus := make(map[string]struct{})
	for _, m := range rows {
		addDistinct(loads, m.LoadID)
		addDistinct(orders, m.OrderID)
		addDistinct(skus, m.SKU)
		v.Units = v.Units.Add(m.Quantity)
	}
	v.Loads, v.Orders, v.SKUs = len(loads), len(orders), len(skus)
	return v
}

func addDistinct(set map[string]struct{}, key string) {
	if key == "" {
		return
	}
	set[key] = struct{}{}
}

// OrderProfileOf calcula unidades por línea, líneas por orden y unidades por orden.
func OrderProfileOf(rows []entity.Movement) OrderProfile {
	units := decimal.Zero
	orders := make(map[string]struct{})
	for _, m := range rows {
		units = units.Add(m.Quantity)
		addDistinct(orders, m.OrderID)
	}
	return profileFrom(units.InexactFloat64(), len(rows), len(orders))
}

func profileFrom(units float64, lines, orders int) OrderProfile {
	var p OrderProfile
	if lines > 0 {
		p.UnitsPerLine = units / float64(lines)
	}
	if orders > 0 {
		p.LinesPerOrder = float64(lines) / float64(orders)
		p.UnitsPerOrder = units / float64(orders)
	}
	return p
}

// ── Mapeos por flujo ──────────────────────────────────────────────────────────

// InboundVolumes mapeo de volúmenes inbound (6 claves).
func InboundVolumes(rows []entity.Movement) (Metrics, Volumes) {
	v := VolumesOf(rows)
	return Metrics{
		{LabelDaysOfData, v.DaysOfData},
		{LabelTotalIBLoads, numfmt.FormatInt(v.Loads)},
		{LabelTotalOrders, numfmt.FormatInt(v.Orders)},
		{LabelTotalLines, numfmt.FormatInt(v.Lines)},
		{LabelTotalUnits, numfmt.Format(v.Units.InexactFloat64())},
		{LabelSKUsWithMovement, numfmt.FormatInt(v.SKUs)},
	}, v
}

// OutboundVolumes mapeo de volúmenes outbound (5 claves, sin loads).
func OutboundVolumes(rows []entity.Movement) (Metrics, Volumes) {
	v := VolumesOf(rows)
	return Metrics{
		{LabelDaysOfData, v.DaysOfData},
		{LabelTotalOrders, numfmt.FormatInt(v.Orders)},
		{LabelTotalLines, numfmt.FormatInt(v.Lines)},
		{LabelTotalUnits, numfmt.Format(v.Units.InexactFloat64())},
		{LabelSKUsWithMovement, numfmt.FormatInt(v.SKUs)},
	}, v
}

// InboundOrderProfile mapeo del perfil de órdenes inbound (por PO).
func InboundOrderProfile(rows []entity.Movement) Metrics {
	return profileMetrics(OrderProfileOf(rows), InboundProfileLabels)
}

// OutboundOrderProfile mapeo del perfil de órdenes outbound.
func OutboundOrderProfile(rows []entity.Movement) Metrics {
	return profileMetrics(OrderProfileOf(rows), OutboundProfileLabels)
}

func profileMetrics(p OrderProfile, labels []string) Metrics {
	return Metrics{
		{labels[0], numfmt.Format(p.UnitsPerLine)},
		{labels[1], numfmt.Format(p.LinesPerOrder)},
		{labels[2], numfmt.Format(p.UnitsPerOrder)},
	}
}

// VolumesFor / OrderProfileFor despachan según el flujo.
func VolumesFor(flow entity.Flow, rows []entity.Movement) (Metrics, Volumes) {
	if flow == entity.FlowOutbound {
		return OutboundVolumes(rows)
	}
	return InboundVolumes(rows)
}

func OrderProfileFor(flow entity.Flow, rows []entity.Movement) Metrics {
	if flow == entity.FlowOutbound {
		return OutboundOrderProfile(rows)
	}
	return InboundOrderProfile(rows)
}
