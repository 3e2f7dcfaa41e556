package spreadsheet

import (
	"encoding/base64"
	"fmt"
	"strconv"

	"github.com/cmlabs-hris/agent-hours-go/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

const (
	SheetName = "Sheet1"

	// scoreColumn is the 1-based position of "Productivity Score" in report.Columns.
	scoreColumn = 8
)

type xlsxExporter struct{}

// NewExporter returns an exporter writing single-sheet .xlsx workbooks in memory.
func NewExporter() report.Exporter {
	return &xlsxExporter{}
}

// Export writes a header row and one row per report row. The productivity score column
// carries a conditional format highlighting values below the low-productivity threshold.
func (e *xlsxExporter) Export(rows []report.Row) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	header := make([]interface{}, len(report.Columns))
	for i, c := range report.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	lastCol, err := excelize.ColumnNumberToName(len(report.Columns))
	if err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 1}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := row.Values()
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if len(rows) > 0 {
		if err := applyLowProductivityFormat(f, len(rows)); err != nil {
			return nil, err
		}
	}

	if err := f.SetColWidth(SheetName, "A", lastCol, 16); err != nil {
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func applyLowProductivityFormat(f *excelize.File, rowCount int) error {
	format, err := f.NewConditionalStyle(&excelize.Style{
		Font: &excelize.Font{Color: report.LowProductivityFont},
		Fill: excelize.Fill{Type: "pattern", Color: []string{report.LowProductivityFill}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create conditional style: %w", err)
	}

	col, err := excelize.ColumnNumberToName(scoreColumn)
	if err != nil {
		return err
	}
	ref := fmt.Sprintf("%s2:%s%d", col, col, rowCount+1)

	err = f.SetConditionalFormat(SheetName, ref, []excelize.ConditionalFormatOptions{
		{
			Type:     "cell",
			Criteria: "<",
			Format:   &format,
			Value:    strconv.FormatFloat(report.LowProductivityThreshold, 'f', -1, 64),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to set conditional format on %s: %w", ref, err)
	}
	return nil
}

// DataURI encodes a workbook as a base64 data URI suitable for a download link.
func DataURI(content []byte) string {
	return "data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString(content)
}
