package summary

import (
	"time"

	"github.com/jhoicas/dc-flow-dashboard/internal/application/dto"
	"github.com/jhoicas/dc-flow-dashboard/internal/domain/entity"
)

// PDFGenerator genera la versión imprimible del resumen de un flujo.
type PDFGenerator interface {
	Generate(doc Document) ([]byte, error)
}

// Document datos que necesita el generador de PDF.
type Document struct {
	Title       string
	Flow        entity.Flow
	Criteria    dto.CriteriaDTO
	Layout      Layout
	NoData      bool
	GeneratedAt time.Time
}
