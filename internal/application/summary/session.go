// Package summary orquesta los eventos del dashboard: filtros, resumen por
// flujo y exportación, sobre una sesión cargada una sola vez al arrancar.
package summary

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/dc-flow-dashboard/internal/domain"
	"github.com/jhoicas/dc-flow-dashboard/internal/domain/entity"
	"github.com/jhoicas/dc-flow-dashboard/internal/domain/movement"
	"github.com/jhoicas/dc-flow-dashboard/internal/domain/repository"
	"github.com/jhoicas/dc-flow-dashboard/pkg/logger"
)

// Rango por defecto cuando el origen no informa fechas.
var (
	FallbackStart = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	FallbackEnd   = time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC)
)

// FilterOptions valores disponibles para los filtros de un flujo.
type FilterOptions struct {
	MinDate    time.Time
	MaxDate    time.Time
	Dimensions map[entity.Dimension][]string // "All" primero
}

// flowState datos y filtros activos de un flujo.
type flowState struct {
	records *movement.RecordSet
	loadErr error // error de carga; se devuelve en cada evento del flujo
	options FilterOptions
	active  entity.FilterCriteria
}

// Session estado de una sesión del dashboard. Los eventos se serializan con mu.
type Session struct {
	mu    sync.Mutex
	flows map[entity.Flow]*flowState
}

// LoadSession carga ambos flujos una vez. Un flujo que no carga (por ejemplo,
// por esquema incompleto) queda marcado con su error y el otro sigue operativo.
func LoadSession(ctx context.Context, repo repository.MovementRepository, log *logger.Logger) *Session {
	s := &Session{flows: make(map[entity.Flow]*flowState, 2)}
	for _, flow := range []entity.Flow{entity.FlowInbound, entity.FlowOutbound} {
		s.flows[flow] = loadFlow(ctx, repo, log, flow)
	}
	return s
}

func loadFlow(ctx context.Context, repo repository.MovementRepository, log *logger.Logger, flow entity.Flow) *flowState {
	st := &flowState{}

	rs, err := repo.Load(ctx, flow)
	if err != nil {
		log.Error().Err(err).Str("flow", string(flow)).Msg("no se pudo cargar el flujo")
		st.loadErr = err
		rs = movement.NewRecordSet(flow, nil)
	}
	rs.Normalize()
	st.records = rs

	st.options = FilterOptions{
		MinDate:    FallbackStart,
		MaxDate:    FallbackEnd,
		Dimensions: make(map[entity.Dimension][]string),
	}
	if st.loadErr == nil {
		lo, hi, ok, err := repo.DateBounds(ctx, flow)
		switch {
		case err != nil:
			log.Warn().Err(err).Str("flow", string(flow)).Msg("sin rango de fechas; se usa el rango por defecto")
		case ok:
			st.options.MinDate, st.options.MaxDate = entity.NormalizeDate(lo), entity.NormalizeDate(hi)
		}
	}

	for _, dim := range entity.DimensionsFor(flow) {
		values := []string{entity.AllValue}
		if st.loadErr == nil {
			distinct, err := repo.DistinctValues(ctx, flow, dim)
			if err != nil {
				log.Warn().Err(err).Str("flow", string(flow)).Str("dimension", string(dim)).Msg("sin valores distintos; solo All")
			} else {
				values = append(values, distinct...)
			}
		}
		st.options.Dimensions[dim] = values
	}

	start, end := st.options.MinDate, st.options.MaxDate
	st.active = entity.FilterCriteria{
		StartDate:  &start,
		EndDate:    &end,
		Dimensions: make(map[entity.Dimension]string),
	}
	for _, dim := range entity.DimensionsFor(flow) {
		st.active.Dimensions[dim] = entity.AllValue
	}

	log.Info().Str("flow", string(flow)).Int("rows", rs.Len()).
		Time("min_date", st.options.MinDate).Time("max_date", st.options.MaxDate).
		Msg("flujo cargado")
	return st
}

func (s *Session) state(flow entity.Flow) (*flowState, error) {
	st, ok := s.flows[flow]
	if !ok {
		return nil, domain.ErrUnknownFlow
	}
	return st, nil
}
