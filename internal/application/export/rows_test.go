package export_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dc-flow-dashboard/internal/application/export"
	"github.com/jhoicas/dc-flow-dashboard/internal/domain/entity"
	"github.com/jhoicas/dc-flow-dashboard/internal/domain/movement"
)

func sampleInput() export.Input {
	return export.Input{
		InboundVolumes: movement.Metrics{
			{Label: movement.LabelDaysOfData, Value: 4},
			{Label: movement.LabelTotalIBLoads, Value: "12.00"},
			{Label: movement.LabelTotalOrders, Value: "2.5 K"},
			{Label: movement.LabelTotalLines, Value: "3.0 K"},
			{Label: movement.LabelTotalUnits, Value: "1.50 M"},
			{Label: movement.LabelSKUsWithMovement, Value: "310.00"},
		},
		InboundProfile: movement.Metrics{
			{Label: movement.LabelIBUnitsPerLine, Value: "500.00"},
			{Label: movement.LabelIBLinesPerPO, Value: "1.20"},
			{Label: movement.LabelIBUnitsPerPO, Value: "1.2 K"},
		},
		OutboundVolumes: movement.Metrics{
			{Label: movement.LabelDaysOfData, Value: 9},
			{Label: movement.LabelTotalOrders, Value: "3.00"},
			{Label: movement.LabelTotalLines, Value: "4.00"},
			{Label: movement.LabelTotalUnits, Value: "2.0 K"},
			{Label: movement.LabelSKUsWithMovement, Value: "3.00"},
		},
		OutboundProfile: movement.Metrics{
			{Label: movement.LabelOBUnitsPerLine, Value: "504.00"},
			{Label: movement.LabelOBLinesPerPO, Value: "1.33"},
			{Label: movement.LabelOBUnitsPerPO, Value: "672.00"},
		},
		InboundDC:    "DC1",
		OutboundDC:   "All",
		BusinessUnit: "Retail",
		Channel:      "All",
		Timestamp:    time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC),
	}
}

func TestBuildRows_Inbound(t *testing.T) {
	in, _, err := export.BuildRows(sampleInput())
	require.NoError(t, err)

	assert.Equal(t, entity.FlowInbound, in.Flow)
	assert.Equal(t, "inbound_data_summary_DC1_20240305_140709.csv", in.FileName)
	assert.Equal(t, []string{
		"DC_NAME", "Days of Data", "Total IB Loads", "Total Orders", "Total Lines",
		"Total Units", "SKUs with Movement", "IB Units Per Line", "IB Lines Per PO", "IB Units Per PO",
	}, in.Columns)

	// Caso 1: "1.50 M" vuelve a 1500000.0
	assert.Equal(t, 1500000.0, in.Values[5])
	assert.Equal(t, "1500000.0", in.Strings()[5])

	// Caso 2: las razones por línea y por PO quedan formateadas
	assert.Equal(t, "500.00", in.Values[7])
	assert.Equal(t, "1.20", in.Values[8])

	// Caso 3: Units Per PO sí se expande
	assert.InDelta(t, 1200.0, in.Values[9], 1e-9)

	assert.Equal(t, 4, in.Values[1])
	assert.InDelta(t, 2500.0, in.Values[3], 1e-9)
}

func TestBuildRows_Outbound(t *testing.T) {
	_, out, err := export.BuildRows(sampleInput())
	require.NoError(t, err)

	assert.Equal(t, "outbound_data_summary_All_20240305_140709.csv", out.FileName)
	assert.Equal(t, []string{
		"DC_NAME", "BUSINESSUNIT", "ORDERTYPE", "Days of Data", "Total Orders", "Total Lines",
		"Total Units", "SKUs with Movement", "OB Units Per Line", "OB Lines Per PO", "OB Units Per PO",
	}, out.Columns)
	assert.Equal(t, []string{
		"All", "Retail", "All", "9", "3.0", "4.0", "2000.0", "3.0", "504.00", "1.33", "672.0",
	}, out.Strings())
}

func TestBuildRows_FaltaEtiqueta(t *testing.T) {
	in := sampleInput()
	in.OutboundProfile = in.OutboundProfile[:2]

	_, _, err := export.BuildRows(in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), movement.LabelOBUnitsPerPO)
}

func TestBuildRows_ValorNoNumerico(t *testing.T) {
	in := sampleInput()
	in.InboundVolumes[1].Value = "n/a"

	_, _, err := export.BuildRows(in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), movement.LabelTotalIBLoads)
}

func TestFileName_SeparadoresDeRuta(t *testing.T) {
	name := export.FileName(entity.FlowOutbound, `DC/Norte\1`, "20240101_000000")
	assert.Equal(t, "outbound_data_summary_DC_Norte_1_20240101_000000.csv", name)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "", export.FormatValue(nil))
	assert.Equal(t, "7", export.FormatValue(7))
	assert.Equal(t, "2.5", export.FormatValue(2.5))
	assert.Equal(t, "80.0", export.FormatValue(80.0))
	assert.Equal(t, "0.00", export.FormatValue("0.00"))
}
