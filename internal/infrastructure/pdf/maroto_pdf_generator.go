// Package pdf genera la versión imprimible del resumen de un flujo.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del flujo         │  Fecha de generación     │
//	│  FILTROS: rango | DC | BU | canal                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  VOLUMES: una tarjeta por métrica                            │
//	│  ORDER PROFILE: una tarjeta por razón                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/dc-flow-dashboard/internal/application/dto"
	"github.com/jhoicas/dc-flow-dashboard/internal/application/summary"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 255, Green: 59, Blue: 0}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

const gridColumns = 12

var _ summary.PDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa summary.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	author string
}

// NewMarotoPDFGenerator construye el generador; author va en los metadatos.
func NewMarotoPDFGenerator(author string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{author: author}
}

// Generate arma el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) Generate(doc summary.Document) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(doc.Title, true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(criteriaRow(doc.Criteria))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	if doc.NoData {
		m.AddRows(fullWidthRow(8, "No hay datos en el rango seleccionado.", props.Text{
			Size: 9, Top: 2, Color: colorGray,
		}))
	}

	for _, s := range doc.Layout.Sections {
		m.AddRows(sectionRow(s.Title))
		if r := cardsRow(sectionCards(doc.Layout.Cards, s)); r != nil {
			m.AddRows(r)
		}
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y fecha de generación (der).
func headerRow(doc summary.Document) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(doc.Title, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+doc.GeneratedAt.Format("2006-01-02 15:04:05"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

// criteriaRow: filtros aplicados.
func criteriaRow(c dto.CriteriaDTO) core.Row {
	parts := []string{
		fmt.Sprintf("Rango: %s a %s", nonEmpty(c.StartDate, "inicio"), nonEmpty(c.EndDate, "fin")),
		"DC: " + nonEmpty(c.DCName, "All"),
	}
	if c.BusinessUnit != "" {
		parts = append(parts, "BU: "+c.BusinessUnit)
	}
	if c.OrderType != "" {
		parts = append(parts, "Canal: "+c.OrderType)
	}
	return fullWidthRow(8, strings.Join(parts, "   |   "), props.Text{
		Size: 8, Top: 1, Color: colorGray,
	})
}

func sectionRow(title string) core.Row {
	return fullWidthRow(10, title, props.Text{
		Style: fontstyle.Bold, Size: 12, Top: 3,
	})
}

// sectionCards tarjetas cuya columna cae dentro de la sección.
func sectionCards(cards []summary.Card, s summary.Section) []summary.Card {
	var out []summary.Card
	for _, c := range cards {
		if c.Column >= s.Column && c.Column < s.Column+s.Span {
			out = append(out, c)
		}
	}
	return out
}

// cardsRow reparte las 12 columnas de la grilla entre las tarjetas.
func cardsRow(cards []summary.Card) core.Row {
	if len(cards) == 0 {
		return nil
	}
	size := gridColumns / len(cards)
	if size == 0 {
		size = 1
	}
	cols := make([]core.Col, 0, len(cards))
	for _, c := range cards {
		cols = append(cols, col.New(size).Add(
			text.New(c.Label, props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 2, Left: 1, Right: 1}),
			text.New(c.Value, props.Text{Size: 11, Align: align.Center, Top: 9, Color: colorPrimary}),
		))
	}
	return row.New(18).Add(cols...)
}

// fullWidthRow una fila con un solo texto a 12 columnas.
func fullWidthRow(height float64, value string, p props.Text) core.Row {
	return row.New(height).Add(col.New(gridColumns).Add(text.New(value, p)))
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
