package entity

import "time"

// AllValue valor centinela de los filtros: "sin restricción en esta dimensión".
const AllValue = "All"

// Dimension dimensión categórica filtrable.
type Dimension string

const (
	DimensionDC           Dimension = "dc_name"
	DimensionBusinessUnit Dimension = "business_unit" // solo outbound
	DimensionOrderType    Dimension = "order_type"    // solo outbound (canal)
)

// DimensionsFor dimensiones disponibles para cada flujo.
func DimensionsFor(f Flow) []Dimension {
	if f == FlowOutbound {
		return []Dimension{DimensionDC, DimensionBusinessUnit, DimensionOrderType}
	}
	return []Dimension{DimensionDC}
}

// SupportsDimension indica si el flujo admite filtrar por d.
func SupportsDimension(f Flow, d Dimension) bool {
	for _, x := range DimensionsFor(f) {
		if x == d {
			return true
		}
	}
	return false
}

// FilterCriteria filtros activos de un evento. Todos los campos son opcionales:
// el rango de fechas solo aplica si ambos extremos están presentes, y una
// dimensión ausente o con valor "All" no restringe.
type FilterCriteria struct {
	StartDate  *time.Time
	EndDate    *time.Time
	Dimensions map[Dimension]string
}

// Value devuelve el valor del filtro para d y si restringe.
func (c FilterCriteria) Value(d Dimension) (string, bool) {
	v, ok := c.Dimensions[d]
	if !ok || v == "" || v == AllValue {
		return "", false
	}
	return v, true
}

// DimensionOrAll valor de la dimensión tal como se muestra/exporta ("All" si no restringe).
func (c FilterCriteria) DimensionOrAll(d Dimension) string {
	if v, ok := c.Value(d); ok {
		return v
	}
	return AllValue
}

// HasDateRange indica si el filtro de fechas está activo.
func (c FilterCriteria) HasDateRange() bool {
	return c.StartDate != nil && c.EndDate != nil
}

// Clone copia profunda para que el llamador pueda modificarla sin afectar la sesión.
func (c FilterCriteria) Clone() FilterCriteria {
	out := FilterCriteria{Dimensions: make(map[Dimension]string, len(c.Dimensions))}
	if c.StartDate != nil {
		s := *c.StartDate
		out.StartDate = &s
	}
	if c.EndDate != nil {
		e := *c.EndDate
		out.EndDate = &e
	}
	for k, v := range c.Dimensions {
		out.Dimensions[k] = v
	}
	return out
}
