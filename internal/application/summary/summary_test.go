package summary_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dc-flow-dashboard/internal/application/dto"
	"github.com/jhoicas/dc-flow-dashboard/internal/application/export"
	"github.com/jhoicas/dc-flow-dashboard/internal/application/summary"
	"github.com/jhoicas/dc-flow-dashboard/internal/domain"
	"github.com/jhoicas/dc-flow-dashboard/internal/domain/entity"
	"github.com/jhoicas/dc-flow-dashboard/internal/domain/movement"
	"github.com/jhoicas/dc-flow-dashboard/pkg/logger"
)

// ── Fakes ─────────────────────────────────────────────────────────────────────

type fakeRepo struct {
	rows        map[entity.Flow][]entity.Movement
	loadErr     map[entity.Flow]error
	distinctErr error
	noBounds    bool
}

func (f *fakeRepo) Load(_ context.Context, flow entity.Flow) (*movement.RecordSet, error) {
	if err := f.loadErr[flow]; err != nil {
		return nil, err
	}
	rows := append([]entity.Movement(nil), f.rows[flow]...)
	return movement.NewRecordSet(flow, rows), nil
}

func (f *fakeRepo) DistinctValues(_ context.Context, flow entity.Flow, dim entity.Dimension) ([]string, error) {
	if f.distinctErr != nil {
		return nil, f.distinctErr
	}
	seen := map[string]bool{}
	var out []string
	for _, m := range f.rows[flow] {
		if v := m.Dimension(dim); v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeRepo) DateBounds(_ context.Context, flow entity.Flow) (time.Time, time.Time, bool, error) {
	rows := f.rows[flow]
	if f.noBounds || len(rows) == 0 {
		return time.Time{}, time.Time{}, false, nil
	}
	lo, hi := rows[0].Date, rows[0].Date
	for _, m := range rows {
		if m.Date.Before(lo) {
			lo = m.Date
		}
		if m.Date.After(hi) {
			hi = m.Date
		}
	}
	return lo, hi, true, nil
}

type fakeWriter struct {
	rows []export.Row
	err  error
}

func (w *fakeWriter) Write(_ context.Context, rows []export.Row) ([]string, error) {
	w.rows = append(w.rows, rows...)
	if w.err != nil {
		return []string{rows[0].FileName}, w.err
	}
	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = r.FileName
	}
	return names, nil
}

type fakePDF struct{ doc summary.Document }

func (p *fakePDF) Generate(doc summary.Document) ([]byte, error) {
	p.doc = doc
	return []byte("%PDF-fake"), nil
}

func day(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }

func qty(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func str(s string) *string { return &s }

func sampleRepo() *fakeRepo {
	return &fakeRepo{rows: map[entity.Flow][]entity.Movement{
		entity.FlowInbound: {
			{Date: day(1), LoadID: "1", OrderID: "100", SKU: "A", Quantity: qty(50), DCName: "X"},
			{Date: day(2), LoadID: "1", OrderID: "100", SKU: "B", Quantity: qty(30), DCName: "X"},
			{Date: day(5), LoadID: "2", OrderID: "101", SKU: "A", Quantity: qty(10), DCName: "Y"},
		},
		entity.FlowOutbound: {
			{Date: day(1), OrderID: "SO1", SKU: "A", Quantity: qty(1000), DCName: "X", BusinessUnit: "Retail", OrderType: "ECOM"},
			{Date: day(10), OrderID: "SO2", SKU: "B", Quantity: qty(1016), DCName: "X", BusinessUnit: "Wholesale", OrderType: "B2B"},
		},
	}}
}

func newUseCase(t *testing.T, repo *fakeRepo, w *fakeWriter, pdf summary.PDFGenerator) *summary.UseCase {
	t.Helper()
	session := summary.LoadSession(context.Background(), repo, logger.Nop())
	writers := map[string]export.RowWriter{summary.FormatCSV: w}
	clock := func() time.Time { return time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC) }
	return summary.NewSummaryUseCase(session, writers, pdf, logger.Nop()).WithClock(clock)
}

// ── Sesión y opciones ─────────────────────────────────────────────────────────

func TestFilterOptions_SembradasDesdeElOrigen(t *testing.T) {
	uc := newUseCase(t, sampleRepo(), &fakeWriter{}, nil)

	opts, err := uc.FilterOptions(entity.FlowOutbound)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", opts.MinDate)
	assert.Equal(t, "2024-01-10", opts.MaxDate)
	assert.Equal(t, []string{"All", "X"}, opts.Dimensions["dc_name"])
	assert.Equal(t, []string{"All", "Retail", "Wholesale"}, opts.Dimensions["business_unit"])
	assert.Equal(t, []string{"All", "ECOM", "B2B"}, opts.Dimensions["order_type"])
	assert.Equal(t, "All", opts.Active.DCName)
	assert.Equal(t, "2024-01-01", opts.Active.StartDate)

	in, err := uc.FilterOptions(entity.FlowInbound)
	require.NoError(t, err)
	assert.Len(t, in.Dimensions, 1, "inbound solo filtra por DC")
}

func TestFilterOptions_Degradadas(t *testing.T) {
	repo := sampleRepo()
	repo.distinctErr = errors.New("conexión rechazada")
	repo.noBounds = true
	uc := newUseCase(t, repo, &fakeWriter{}, nil)

	opts, err := uc.FilterOptions(entity.FlowInbound)
	require.NoError(t, err)
	assert.Equal(t, []string{"All"}, opts.Dimensions["dc_name"])
	assert.Equal(t, "2000-01-01", opts.MinDate)
	assert.Equal(t, "2100-01-01", opts.MaxDate)
}

func TestFilterOptions_FlujoDesconocido(t *testing.T) {
	uc := newUseCase(t, sampleRepo(), &fakeWriter{}, nil)
	_, err := uc.FilterOptions(entity.Flow("returns"))
	assert.ErrorIs(t, err, domain.ErrUnknownFlow)
}

// ── Resumen ───────────────────────────────────────────────────────────────────

func TestSummary_InboundConFiltros(t *testing.T) {
	uc := newUseCase(t, sampleRepo(), &fakeWriter{}, nil)
	ctx := context.Background()

	res, err := uc.Summary(ctx, entity.FlowInbound, dto.SummaryQuery{
		StartDate: str("2024-01-01"), EndDate: str("2024-01-02"), DCName: str("X"),
	})
	require.NoError(t, err)
	assert.False(t, res.NoData)
	assert.Equal(t, movement.InboundVolumeLabels, res.Volumes.Labels())

	days, _ := res.Volumes.Get(movement.LabelDaysOfData)
	assert.Equal(t, 1, days)
	units, _ := res.Volumes.Get(movement.LabelTotalUnits)
	assert.Equal(t, "80.00", units)
	perPO, _ := res.OrderProfile.Get(movement.LabelIBUnitsPerPO)
	assert.Equal(t, "80.00", perPO)
	assert.Len(t, res.Cards, 9)
	assert.Equal(t, "X", res.Criteria.DCName)

	// Caso 1: los campos omitidos conservan el filtro activo
	res, err = uc.Summary(ctx, entity.FlowInbound, dto.SummaryQuery{})
	require.NoError(t, err)
	assert.Equal(t, "X", res.Criteria.DCName)
	assert.Equal(t, "2024-01-02", res.Criteria.EndDate)

	// Caso 2: "All" quita la restricción
	res, err = uc.Summary(ctx, entity.FlowInbound, dto.SummaryQuery{DCName: str("All"), EndDate: str("2024-01-31")})
	require.NoError(t, err)
	lines, _ := res.Volumes.Get(movement.LabelTotalLines)
	assert.Equal(t, "3.00", lines)
}

func TestSummary_RangoVacio(t *testing.T) {
	uc := newUseCase(t, sampleRepo(), &fakeWriter{}, nil)

	res, err := uc.Summary(context.Background(), entity.FlowInbound, dto.SummaryQuery{
		StartDate: str("2023-01-01"), EndDate: str("2023-01-31"),
	})
	require.NoError(t, err)
	assert.True(t, res.NoData)
	days, _ := res.Volumes.Get(movement.LabelDaysOfData)
	assert.Equal(t, 0, days)
	for _, label := range movement.InboundProfileLabels {
		v, _ := res.OrderProfile.Get(label)
		assert.Equal(t, "0.00", v)
	}
}

func TestSummary_EntradaInvalidaNoCambiaLosFiltros(t *testing.T) {
	uc := newUseCase(t, sampleRepo(), &fakeWriter{}, nil)
	ctx := context.Background()

	_, err := uc.Summary(ctx, entity.FlowInbound, dto.SummaryQuery{StartDate: str("05/01/2024")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Summary(ctx, entity.FlowInbound, dto.SummaryQuery{BusinessUnit: str("Retail")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	opts, err := uc.FilterOptions(entity.FlowInbound)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", opts.Active.StartDate)
}

func TestSummary_EsquemaIncompleto(t *testing.T) {
	repo := sampleRepo()
	repo.loadErr = map[entity.Flow]error{
		entity.FlowOutbound: &domain.SchemaError{Flow: "outbound", Column: entity.ColumnOrderType},
	}
	uc := newUseCase(t, repo, &fakeWriter{}, nil)
	ctx := context.Background()

	_, err := uc.Summary(ctx, entity.FlowOutbound, dto.SummaryQuery{})
	var se *domain.SchemaError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, entity.ColumnOrderType, se.Column)

	_, err = uc.Summary(ctx, entity.FlowInbound, dto.SummaryQuery{})
	assert.NoError(t, err, "el otro flujo sigue operativo")
}

func TestSummaryPDF(t *testing.T) {
	pdf := &fakePDF{}
	uc := newUseCase(t, sampleRepo(), &fakeWriter{}, pdf)

	data, name, err := uc.SummaryPDF(context.Background(), entity.FlowOutbound, dto.SummaryQuery{BusinessUnit: str("Retail")})
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(data))
	assert.Equal(t, "outbound_data_summary_20240305_140709.pdf", name)
	assert.Equal(t, "Outbound Data Summary", pdf.doc.Title)
	assert.Equal(t, "Retail", pdf.doc.Criteria.BusinessUnit)
	assert.Len(t, pdf.doc.Layout.Cards, 8)
}

// ── Exportación ───────────────────────────────────────────────────────────────

func TestExport_RecalculaConLosFiltrosActivos(t *testing.T) {
	w := &fakeWriter{}
	uc := newUseCase(t, sampleRepo(), w, nil)
	ctx := context.Background()

	_, err := uc.Summary(ctx, entity.FlowInbound, dto.SummaryQuery{DCName: str("Y")})
	require.NoError(t, err)

	res, err := uc.Export(ctx, dto.ExportRequest{
		Outbound: &dto.SummaryQuery{OrderType: str("ECOM")},
	})
	require.NoError(t, err)
	_, err = uuid.Parse(res.BatchID)
	assert.NoError(t, err)
	assert.Equal(t, "csv", res.Format)
	assert.Equal(t, []string{
		"inbound_data_summary_Y_20240305_140709.csv",
		"outbound_data_summary_All_20240305_140709.csv",
	}, res.Files)

	require.Len(t, w.rows, 2)
	assert.Equal(t, entity.FlowInbound, w.rows[0].Flow)
	assert.Equal(t, "Y", w.rows[0].Values[0])
	assert.Equal(t, 10.0, w.rows[0].Values[5], "Total Units del DC Y")
	assert.Equal(t, []any{"All", "All", "ECOM"}, w.rows[1].Values[:3])
	assert.Equal(t, 1000.0, w.rows[1].Values[6])

	// Caso 1: la exportación no cambia los filtros activos del outbound
	opts, err := uc.FilterOptions(entity.FlowOutbound)
	require.NoError(t, err)
	assert.Equal(t, "All", opts.Active.OrderType)
}

func TestExport_FalloDeEscritura(t *testing.T) {
	w := &fakeWriter{err: errors.New("disco lleno")}
	uc := newUseCase(t, sampleRepo(), w, nil)

	_, err := uc.Export(context.Background(), dto.ExportRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExportFailed)
	assert.Contains(t, err.Error(), "disco lleno")
}

func TestExport_FormatoDesconocido(t *testing.T) {
	uc := newUseCase(t, sampleRepo(), &fakeWriter{}, nil)
	_, err := uc.Export(context.Background(), dto.ExportRequest{Format: "parquet"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Tarjetas ──────────────────────────────────────────────────────────────────

func TestBuildCards(t *testing.T) {
	rows := sampleRepo().rows[entity.FlowOutbound]
	volumes, _ := movement.OutboundVolumes(rows)
	profile := movement.OutboundOrderProfile(rows)

	layout, ok := summary.BuildCards(entity.FlowOutbound, volumes, profile)
	require.True(t, ok)
	require.Len(t, layout.Sections, 2)
	assert.Equal(t, "Outbound Volumes", layout.Sections[0].Title)
	assert.Equal(t, 6, layout.Sections[0].Span)
	assert.Equal(t, "Outbound Order Profile", layout.Sections[1].Title)
	assert.Equal(t, 6, layout.Sections[1].Column)

	require.Len(t, layout.Cards, 8)
	assert.Equal(t, 4, layout.Cards[4].Column, "último volumen outbound")
	assert.Equal(t, 6, layout.Cards[5].Column, "el perfil arranca en la columna 6")
	assert.Equal(t, "2.0 K", layout.Cards[3].Value)
	for _, c := range layout.Cards {
		assert.Equal(t, 1, c.Row)
	}

	_, ok = summary.BuildCards(entity.FlowInbound, volumes, nil)
	assert.False(t, ok)
}
