package file

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/agent-hours-go/internal/domain/dataset"
	"github.com/cmlabs-hris/agent-hours-go/internal/pkg/tabular"
	"github.com/xuri/excelize/v2"
)

type datasetSourceImpl struct {
	assignmentsPath string
	activityPath    string
}

// NewDatasetSource reads both datasets from spreadsheet or csv files on disk.
func NewDatasetSource(assignmentsPath, activityPath string) dataset.Source {
	return &datasetSourceImpl{
		assignmentsPath: assignmentsPath,
		activityPath:    activityPath,
	}
}

func (s *datasetSourceImpl) LoadAssignments(ctx context.Context) ([]dataset.Assignment, error) {
	table, err := tabular.ReadFile(s.assignmentsPath)
	if err != nil {
		return nil, err
	}
	assignments, err := ParseAssignments(table)
	if err != nil {
		return nil, err
	}
	slog.Info("Assignments loaded", "path", s.assignmentsPath, "rows", len(assignments))
	return assignments, nil
}

func (s *datasetSourceImpl) LoadActivity(ctx context.Context) (dataset.ActivitySet, error) {
	table, err := tabular.ReadFile(s.activityPath)
	if err != nil {
		return dataset.ActivitySet{}, err
	}
	set, err := ParseActivity(table)
	if err != nil {
		return dataset.ActivitySet{}, err
	}
	slog.Info("Activity loaded", "path", s.activityPath, "rows", len(set.Records), "columns", set.Columns)
	return set, nil
}

// ParseAssignments maps a Manager/Agent table to assignment records. Rows without an agent are skipped.
func ParseAssignments(table dataset.Table) ([]dataset.Assignment, error) {
	if missing := table.MissingColumns(dataset.AssignmentColumns); len(missing) > 0 {
		return nil, &dataset.DataFormatError{Dataset: "assignment", Missing: missing}
	}

	idx := table.Index()
	assignments := make([]dataset.Assignment, 0, len(table.Rows))
	for _, row := range table.Rows {
		agent := strings.TrimSpace(row[idx[dataset.ColumnAgent]])
		if agent == "" {
			continue
		}
		assignments = append(assignments, dataset.Assignment{
			Manager: strings.TrimSpace(row[idx[dataset.ColumnManager]]),
			Agent:   agent,
		})
	}
	return assignments, nil
}

// ParseActivity maps the activity table to records. Dates that cannot be parsed are kept as
// zero dates so any date-range filter excludes them. Location is optional at load time; its
// absence is carried in the set's Columns.
func ParseActivity(table dataset.Table) (dataset.ActivitySet, error) {
	if missing := table.MissingColumns(dataset.ActivityColumns); len(missing) > 0 {
		return dataset.ActivitySet{}, &dataset.DataFormatError{Dataset: "activity", Missing: missing}
	}

	idx := table.Index()
	locIdx, hasLocation := idx[dataset.ColumnLocation]

	set := dataset.ActivitySet{
		Columns: append([]string(nil), table.Header...),
		Records: make([]dataset.Activity, 0, len(table.Rows)),
	}

	for i, row := range table.Rows {
		rowNum := i + 2 // header is row 1

		counts := make(map[string]int, 3)
		for _, col := range []string{dataset.ColumnAlerts, dataset.ColumnManualAlerts, dataset.ColumnMarked} {
			n, err := parseCount(row[idx[col]])
			if err != nil {
				return dataset.ActivitySet{}, &dataset.DataFormatError{
					Dataset: "activity",
					Row:     rowNum,
					Column:  col,
					Value:   row[idx[col]],
				}
			}
			counts[col] = n
		}

		rec := dataset.Activity{
			Date:         ParseDate(row[idx[dataset.ColumnDate]]),
			Agent:        strings.TrimSpace(row[idx[dataset.ColumnActivityID]]),
			Alerts:       counts[dataset.ColumnAlerts],
			ManualAlerts: counts[dataset.ColumnManualAlerts],
			Marked:       counts[dataset.ColumnMarked],
		}
		if hasLocation {
			rec.Location = strings.TrimSpace(row[locIdx])
		}
		set.Records = append(set.Records, rec)
	}
	return set, nil
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-06",
	"1/2/06",
}

// ParseDate accepts ISO-like text, US-style text and Excel serial numbers.
// It returns the zero time when nothing matches.
func ParseDate(raw string) time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}
		}
		return day(t)
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return day(t)
		}
	}
	return time.Time{}
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// parseCount reads an integer cell; blank cells count as zero.
func parseCount(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not an integer: %q", raw)
	}
	return int(f), nil
}
