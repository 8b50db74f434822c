package summary

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/dc-flow-dashboard/internal/application/dto"
	"github.com/jhoicas/dc-flow-dashboard/internal/application/export"
	"github.com/jhoicas/dc-flow-dashboard/internal/domain"
	"github.com/jhoicas/dc-flow-dashboard/internal/domain/entity"
	"github.com/jhoicas/dc-flow-dashboard/internal/domain/movement"
	"github.com/jhoicas/dc-flow-dashboard/pkg/logger"
)

// Formatos de exportación.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// UseCase eventos del dashboard sobre una Session.
type UseCase struct {
	session *Session
	writers map[string]export.RowWriter
	pdf     PDFGenerator
	log     *logger.Logger
	now     func() time.Time
}

// NewSummaryUseCase construye el caso de uso. writers se indexa por formato
// (FormatCSV, FormatXLSX); pdf puede ser nil si no se sirve el PDF.
func NewSummaryUseCase(session *Session, writers map[string]export.RowWriter, pdf PDFGenerator, log *logger.Logger) *UseCase {
	return &UseCase{
		session: session,
		writers: writers,
		pdf:     pdf,
		log:     log,
		now:     time.Now,
	}
}

// WithClock reemplaza el reloj (sello de tiempo de exportaciones y PDF).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// computed resultado de recalcular un flujo con unos filtros.
type computed struct {
	criteria entity.FilterCriteria
	volumes  movement.Metrics
	raw      movement.Volumes
	profile  movement.Metrics
}

// ── Filtros ───────────────────────────────────────────────────────────────────

// FilterOptions opciones de filtro y filtros activos del flujo.
func (uc *UseCase) FilterOptions(flow entity.Flow) (*dto.FilterOptionsDTO, error) {
	uc.session.mu.Lock()
	defer uc.session.mu.Unlock()

	st, err := uc.session.state(flow)
	if err != nil {
		return nil, err
	}
	out := &dto.FilterOptionsDTO{
		Flow:       string(flow),
		MinDate:    st.options.MinDate.Format(dto.DateLayout),
		MaxDate:    st.options.MaxDate.Format(dto.DateLayout),
		Dimensions: make(map[string][]string, len(st.options.Dimensions)),
		Active:     criteriaDTO(flow, st.active),
	}
	for dim, values := range st.options.Dimensions {
		out.Dimensions[string(dim)] = append([]string(nil), values...)
	}
	return out, nil
}

// ── Resumen ───────────────────────────────────────────────────────────────────

// Summary evento de cambio de filtros: recalcula volúmenes y perfil del flujo
// y deja los filtros como activos. Si el cálculo falla no cambia nada.
func (uc *UseCase) Summary(ctx context.Context, flow entity.Flow, q dto.SummaryQuery) (*dto.SummaryDTO, error) {
	uc.session.mu.Lock()
	defer uc.session.mu.Unlock()

	st, err := uc.session.state(flow)
	if err != nil {
		return nil, err
	}
	c, err := uc.recompute(flow, st, &q)
	if err != nil {
		return nil, err
	}
	st.active = c.criteria

	layout, _ := BuildCards(flow, c.volumes, c.profile)
	return summaryDTO(flow, c, layout), nil
}

// SummaryPDF igual que Summary pero devuelve el PDF y su nombre de archivo.
func (uc *UseCase) SummaryPDF(ctx context.Context, flow entity.Flow, q dto.SummaryQuery) ([]byte, string, error) {
	if uc.pdf == nil {
		return nil, "", fmt.Errorf("summary.SummaryPDF: generador no configurado")
	}
	res, err := uc.Summary(ctx, flow, q)
	if err != nil {
		return nil, "", err
	}

	now := uc.now()
	layout, _ := BuildCards(flow, res.Volumes, res.OrderProfile)
	pdfBytes, err := uc.pdf.Generate(Document{
		Title:       flowTitle(flow) + " Data Summary",
		Flow:        flow,
		Criteria:    res.Criteria,
		Layout:      layout,
		NoData:      res.NoData,
		GeneratedAt: now,
	})
	if err != nil {
		return nil, "", fmt.Errorf("summary.SummaryPDF: %w", err)
	}
	return pdfBytes, fmt.Sprintf("%s_data_summary_%s.pdf", flow, now.Format(export.TimestampLayout)), nil
}

// ── Exportación ───────────────────────────────────────────────────────────────

// Export recalcula los cuatro mapeos con los filtros pedidos (o los activos si
// se omite un flujo), arma las filas y las escribe: inbound primero y después
// outbound. Lo ya escrito no se deshace; cualquier fallo de escritura se
// informa como un único ErrExportFailed.
func (uc *UseCase) Export(ctx context.Context, req dto.ExportRequest) (*dto.ExportResultDTO, error) {
	format := strings.ToLower(strings.TrimSpace(req.Format))
	if format == "" {
		format = FormatCSV
	}
	writer, ok := uc.writers[format]
	if !ok {
		return nil, fmt.Errorf("%w: formato de exportación %q", domain.ErrInvalidInput, req.Format)
	}

	uc.session.mu.Lock()
	defer uc.session.mu.Unlock()

	results := make(map[entity.Flow]computed, 2)
	for _, sel := range []struct {
		flow entity.Flow
		q    *dto.SummaryQuery
	}{
		{entity.FlowInbound, req.Inbound},
		{entity.FlowOutbound, req.Outbound},
	} {
		flow, q := sel.flow, sel.q
		st, err := uc.session.state(flow)
		if err != nil {
			return nil, err
		}
		c, err := uc.recompute(flow, st, q)
		if err != nil {
			return nil, fmt.Errorf("summary.Export %s: %w", flow, err)
		}
		results[flow] = c
	}

	in, out := results[entity.FlowInbound], results[entity.FlowOutbound]
	inRow, outRow, err := export.BuildRows(export.Input{
		InboundVolumes:  in.volumes,
		InboundProfile:  in.profile,
		OutboundVolumes: out.volumes,
		OutboundProfile: out.profile,
		InboundDC:       in.criteria.DimensionOrAll(entity.DimensionDC),
		OutboundDC:      out.criteria.DimensionOrAll(entity.DimensionDC),
		BusinessUnit:    out.criteria.DimensionOrAll(entity.DimensionBusinessUnit),
		Channel:         out.criteria.DimensionOrAll(entity.DimensionOrderType),
		Timestamp:       uc.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrExportFailed, err)
	}

	batchID := uuid.NewString()
	files, err := writer.Write(ctx, []export.Row{inRow, outRow})
	if err != nil {
		uc.log.Error().Err(err).Str("batch_id", batchID).Strs("written", files).Msg("exportación incompleta")
		return nil, fmt.Errorf("%w: %w", domain.ErrExportFailed, err)
	}

	uc.log.Info().Str("batch_id", batchID).Str("format", format).Strs("files", files).Msg("exportación completada")
	return &dto.ExportResultDTO{BatchID: batchID, Format: format, Files: files}, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// recompute aplica q sobre los filtros activos y calcula ambos mapeos. Cada
// mapeo filtra por separado; no se comparte el resultado filtrado.
func (uc *UseCase) recompute(flow entity.Flow, st *flowState, q *dto.SummaryQuery) (computed, error) {
	if st.loadErr != nil {
		return computed{}, st.loadErr
	}
	criteria, err := mergeCriteria(flow, st.active, q)
	if err != nil {
		return computed{}, err
	}

	rows, err := movement.ApplyFilters(st.records, criteria)
	if err != nil {
		return computed{}, err
	}
	volumes, raw := movement.VolumesFor(flow, rows)

	rows, err = movement.ApplyFilters(st.records, criteria)
	if err != nil {
		return computed{}, err
	}
	profile := movement.OrderProfileFor(flow, rows)

	if raw.NoData {
		uc.log.Debug().Str("flow", string(flow)).Msg("rango sin datos")
	}
	return computed{criteria: criteria, volumes: volumes, raw: raw, profile: profile}, nil
}

// mergeCriteria copia active y sobreescribe lo que trae q.
func mergeCriteria(flow entity.Flow, active entity.FilterCriteria, q *dto.SummaryQuery) (entity.FilterCriteria, error) {
	c := active.Clone()
	if q == nil {
		return c, nil
	}

	if q.StartDate != nil {
		d, err := parseDate("start_date", *q.StartDate)
		if err != nil {
			return c, err
		}
		c.StartDate = d
	}
	if q.EndDate != nil {
		d, err := parseDate("end_date", *q.EndDate)
		if err != nil {
			return c, err
		}
		c.EndDate = d
	}

	for dim, v := range map[entity.Dimension]*string{
		entity.DimensionDC:           q.DCName,
		entity.DimensionBusinessUnit: q.BusinessUnit,
		entity.DimensionOrderType:    q.OrderType,
	} {
		if v == nil {
			continue
		}
		value := strings.TrimSpace(*v)
		if value == "" {
			value = entity.AllValue
		}
		if value != entity.AllValue && !entity.SupportsDimension(flow, dim) {
			return c, fmt.Errorf("%w: %s no aplica a %s", domain.ErrInvalidInput, dim, flow)
		}
		c.Dimensions[dim] = value
	}
	return c, nil
}

// parseDate YYYY-MM-DD; vacío desactiva el extremo del rango.
func parseDate(field, s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dto.DateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s debe tener formato YYYY-MM-DD", domain.ErrInvalidInput, field)
	}
	return &t, nil
}

func criteriaDTO(flow entity.Flow, c entity.FilterCriteria) dto.CriteriaDTO {
	out := dto.CriteriaDTO{DCName: c.DimensionOrAll(entity.DimensionDC)}
	if c.StartDate != nil {
		out.StartDate = c.StartDate.Format(dto.DateLayout)
	}
	if c.EndDate != nil {
		out.EndDate = c.EndDate.Format(dto.DateLayout)
	}
	if flow == entity.FlowOutbound {
		out.BusinessUnit = c.DimensionOrAll(entity.DimensionBusinessUnit)
		out.OrderType = c.DimensionOrAll(entity.DimensionOrderType)
	}
	return out
}

func summaryDTO(flow entity.Flow, c computed, layout Layout) *dto.SummaryDTO {
	out := &dto.SummaryDTO{
		Flow:         string(flow),
		Criteria:     criteriaDTO(flow, c.criteria),
		NoData:       c.raw.NoData,
		Volumes:      c.volumes,
		OrderProfile: c.profile,
		Sections:     make([]dto.SectionDTO, 0, len(layout.Sections)),
		Cards:        make([]dto.CardDTO, 0, len(layout.Cards)),
	}
	for _, s := range layout.Sections {
		out.Sections = append(out.Sections, dto.SectionDTO{Title: s.Title, Row: s.Row, Column: s.Column, Span: s.Span})
	}
	for _, card := range layout.Cards {
		out.Cards = append(out.Cards, dto.CardDTO{Label: card.Label, Value: card.Value, Row: card.Row, Column: card.Column})
	}
	return out
}
