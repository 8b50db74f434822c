package dto

import "github.com/jhoicas/dc-flow-dashboard/internal/domain/movement"

// DateLayout formato de fechas en query strings y respuestas.
const DateLayout = "2006-01-02"

// SummaryQuery selección de filtros de un evento. Un campo nil conserva el
// valor activo de la sesión; "All" quita la restricción de la dimensión.
type SummaryQuery struct {
	StartDate    *string `json:"start_date,omitempty" query:"start_date"`       // YYYY-MM-DD
	EndDate      *string `json:"end_date,omitempty" query:"end_date"`           // YYYY-MM-DD
	DCName       *string `json:"dc_name,omitempty" query:"dc_name"`
	BusinessUnit *string `json:"business_unit,omitempty" query:"business_unit"` // solo outbound
	OrderType    *string `json:"order_type,omitempty" query:"order_type"`       // solo outbound
}

// CriteriaDTO filtros efectivamente aplicados.
type CriteriaDTO struct {
	StartDate    string `json:"start_date,omitempty"`
	EndDate      string `json:"end_date,omitempty"`
	DCName       string `json:"dc_name"`
	BusinessUnit string `json:"business_unit,omitempty"`
	OrderType    string `json:"order_type,omitempty"`
}

// SummaryDTO respuesta de GET /api/flows/:flow/summary.
// Volumes y OrderProfile conservan el orden de las etiquetas.
type SummaryDTO struct {
	Flow         string           `json:"flow"`
	Criteria     CriteriaDTO      `json:"criteria"`
	NoData       bool             `json:"no_data"` // el rango filtrado no tiene filas
	Volumes      movement.Metrics `json:"volumes"`
	OrderProfile movement.Metrics `json:"order_profile"`
	Sections     []SectionDTO     `json:"sections"`
	Cards        []CardDTO        `json:"cards"`
}

// SectionDTO título de sección en la grilla de tarjetas.
type SectionDTO struct {
	Title  string `json:"title"`
	Row    int    `json:"row"`
	Column int    `json:"column"`
	Span   int    `json:"span"`
}

// CardDTO una tarjeta de métrica.
type CardDTO struct {
	Label  string `json:"label"`
	Value  string `json:"value"`
	Row    int    `json:"row"`
	Column int    `json:"column"`
}

// FilterOptionsDTO opciones para poblar los filtros de un flujo.
type FilterOptionsDTO struct {
	Flow       string              `json:"flow"`
	MinDate    string              `json:"min_date"`
	MaxDate    string              `json:"max_date"`
	Dimensions map[string][]string `json:"dimensions"` // "All" siempre primero
	Active     CriteriaDTO         `json:"active"`
}

// ExportRequest cuerpo de POST /api/export. Un flujo omitido usa los filtros activos.
type ExportRequest struct {
	Inbound  *SummaryQuery `json:"inbound,omitempty"`
	Outbound *SummaryQuery `json:"outbound,omitempty"`
	Format   string        `json:"format,omitempty"` // csv (por defecto) o xlsx
}

// ExportResultDTO resultado de una exportación.
type ExportResultDTO struct {
	BatchID string   `json:"batch_id"`
	Format  string   `json:"format"`
	Files   []string `json:"files"`
}
