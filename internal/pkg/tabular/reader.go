package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cmlabs-hris/agent-hours-go/internal/domain/dataset"
	"github.com/xuri/excelize/v2"
)

const utf8BOM = "\ufeff"

// ReadFile loads the first worksheet of an .xlsx file, or a .csv file, into a Table.
func ReadFile(path string) (dataset.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return dataset.Table{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Read(bytes.NewReader(data), filepath.Ext(path))
}

// Read parses r according to ext (".xlsx" or ".csv"). Spreadsheet cells are read raw so
// date cells arrive as Excel serial numbers rather than locale-formatted text.
func Read(r io.Reader, ext string) (dataset.Table, error) {
	var (
		rows [][]string
		err  error
	)

	switch strings.ToLower(ext) {
	case ".xlsx", ".xlsm":
		rows, err = readWorkbook(r)
	case ".csv":
		rows, err = readCSV(r)
	default:
		return dataset.Table{}, fmt.Errorf("%w: %q", dataset.ErrUnsupportedFile, ext)
	}
	if err != nil {
		return dataset.Table{}, err
	}
	if len(rows) == 0 {
		return dataset.Table{}, dataset.ErrEmptyWorksheet
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, utf8BOM))
	}

	table := dataset.Table{Header: header}
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		padded := make([]string, len(header))
		copy(padded, row)
		table.Rows = append(table.Rows, padded)
	}
	return table, nil
}

func readWorkbook(r io.Reader) ([][]string, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no worksheet found")
	}

	rows, err := file.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet %s: %w", sheetName, err)
	}
	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	return rows, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
