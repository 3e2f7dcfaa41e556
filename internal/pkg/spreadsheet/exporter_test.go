package spreadsheet

import (
	"bytes"
	"encoding/base64"
	"strconv"
	"strings"
	"testing"

	"github.com/cmlabs-hris/agent-hours-go/internal/domain/report"
	"github.com/cmlabs-hris/agent-hours-go/internal/pkg/tabular"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func strPtr(s string) *string { return &s }

func sampleRows() []report.Row {
	return []report.Row{
		{
			Date: "2024-09-01", Manager: strPtr("Zoe"), Agent: "a1", TotalHours: 6.5,
			Alerts: 10, ManualAlerts: 0, Marked: 0, ProductivityScore: 1.0 / 6.5,
			Location: "Durban", LowProductivity: true,
		},
		{
			Date: "2024-09-02", Manager: nil, Agent: "a2", TotalHours: 2,
			Alerts: 10, ManualAlerts: 5, Marked: 6, ProductivityScore: 1.25,
			Location: "Cape Town",
		},
	}
}

func openWorkbook(t *testing.T, content []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestExport_HeaderAndRows(t *testing.T) {
	content, err := NewExporter().Export(sampleRows())
	require.NoError(t, err)

	f := openWorkbook(t, content)
	assert.Equal(t, SheetName, f.GetSheetName(0))

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, report.Columns, rows[0])
	assert.Equal(t, "a1", rows[1][2])
	assert.Equal(t, "Zoe", rows[1][1])
	assert.Equal(t, "", rows[2][1])
}

func TestExport_ConditionalFormatOnScoreColumn(t *testing.T) {
	content, err := NewExporter().Export(sampleRows())
	require.NoError(t, err)

	f := openWorkbook(t, content)
	formats, err := f.GetConditionalFormats(SheetName)
	require.NoError(t, err)

	opts, ok := formats["H2:H3"]
	require.True(t, ok, "expected conditional format on H2:H3, got %v", formats)
	require.Len(t, opts, 1)
	assert.Equal(t, "cell", opts[0].Type)
	assert.Equal(t, "0.8", opts[0].Value)
}

func TestExport_EmptyRowsHeaderOnly(t *testing.T) {
	content, err := NewExporter().Export(nil)
	require.NoError(t, err)

	f := openWorkbook(t, content)
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, report.Columns, rows[0])

	formats, err := f.GetConditionalFormats(SheetName)
	require.NoError(t, err)
	assert.Empty(t, formats)
}

func TestExport_RoundTrip(t *testing.T) {
	in := sampleRows()
	content, err := NewExporter().Export(in)
	require.NoError(t, err)

	table, err := tabular.Read(bytes.NewReader(content), ".xlsx")
	require.NoError(t, err)

	assert.Equal(t, report.Columns, table.Header)
	require.Len(t, table.Rows, len(in))
	for i, row := range in {
		got := table.Rows[i]
		assert.Equal(t, row.Date, got[0])
		if row.Manager != nil {
			assert.Equal(t, *row.Manager, got[1])
		} else {
			assert.Equal(t, "", got[1])
		}
		assert.Equal(t, row.Agent, got[2])
		assertFloatCell(t, row.TotalHours, got[3])
		assert.Equal(t, strconv.Itoa(row.Alerts), got[4])
		assert.Equal(t, strconv.Itoa(row.ManualAlerts), got[5])
		assert.Equal(t, strconv.Itoa(row.Marked), got[6])
		assertFloatCell(t, row.ProductivityScore, got[7])
		assert.Equal(t, row.Location, got[8])
	}
}

func TestExport_DeterministicContent(t *testing.T) {
	a, err := NewExporter().Export(sampleRows())
	require.NoError(t, err)
	b, err := NewExporter().Export(sampleRows())
	require.NoError(t, err)

	ta, err := tabular.Read(bytes.NewReader(a), ".xlsx")
	require.NoError(t, err)
	tb, err := tabular.Read(bytes.NewReader(b), ".xlsx")
	require.NoError(t, err)
	assert.Equal(t, ta, tb)
}

func TestDataURI(t *testing.T) {
	uri := DataURI([]byte("xlsx"))

	require.True(t, strings.HasPrefix(uri, "data:application/octet-stream;base64,"))
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:application/octet-stream;base64,"))
	require.NoError(t, err)
	assert.Equal(t, "xlsx", string(decoded))
}

func assertFloatCell(t *testing.T, want float64, cell string) {
	t.Helper()
	got, err := strconv.ParseFloat(cell, 64)
	require.NoError(t, err)
	assert.InDelta(t, want, got, 1e-9)
}
