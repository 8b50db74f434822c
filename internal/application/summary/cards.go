package summary

import (
	"fmt"

	"github.com/jhoicas/dc-flow-dashboard/internal/domain/entity"
	"github.com/jhoicas/dc-flow-dashboard/internal/domain/movement"
)

// Posiciones en la grilla: los volúmenes ocupan las columnas 0-5 y el perfil
// de órdenes arranca en la 6, aunque outbound solo tenga 5 volúmenes.
const (
	titleRow      = 0
	cardRow       = 1
	volumesColumn = 0
	volumesSpan   = 6
	profileColumn = 6
	profileSpan   = 3
)

// Section título de un bloque de tarjetas.
type Section struct {
	Title  string
	Row    int
	Column int
	Span   int
}

// Card una métrica en la grilla.
type Card struct {
	Label  string
	Value  string
	Row    int
	Column int
}

// Layout tarjetas de un flujo listas para pintar.
type Layout struct {
	Sections []Section
	Cards    []Card
}

// BuildCards distribuye los dos mapeos en la grilla. Si falta alguno no se
// produce nada: la vista queda vacía en lugar de mostrar datos a medias.
func BuildCards(flow entity.Flow, volumes, profile movement.Metrics) (Layout, bool) {
	if len(volumes) == 0 || len(profile) == 0 {
		return Layout{}, false
	}

	name := flowTitle(flow)
	layout := Layout{
		Sections: []Section{
			{Title: name + " Volumes", Row: titleRow, Column: volumesColumn, Span: volumesSpan},
			{Title: name + " Order Profile", Row: titleRow, Column: profileColumn, Span: profileSpan},
		},
		Cards: make([]Card, 0, len(volumes)+len(profile)),
	}
	for i, m := range volumes {
		layout.Cards = append(layout.Cards, Card{Label: m.Label, Value: fmt.Sprint(m.Value), Row: cardRow, Column: volumesColumn + i})
	}
	for i, m := range profile {
		layout.Cards = append(layout.Cards, Card{Label: m.Label, Value: fmt.Sprint(m.Value), Row: cardRow, Column: profileColumn + i})
	}
	return layout, true
}

func flowTitle(flow entity.Flow) string {
	if flow == entity.FlowOutbound {
		return "Outbound"
	}
	return "Inbound"
}
