package report

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/agent-hours-go/internal/domain/dataset"
	"github.com/cmlabs-hris/agent-hours-go/internal/domain/report"
	"github.com/cmlabs-hris/agent-hours-go/internal/domain/roster"
	"github.com/cmlabs-hris/agent-hours-go/internal/pkg/spreadsheet"
	"github.com/cmlabs-hris/agent-hours-go/internal/pkg/tabular"
	"github.com/cmlabs-hris/agent-hours-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingExporter struct{}

func (failingExporter) Export([]report.Row) ([]byte, error) {
	return nil, errors.New("disk on fire")
}

func newTestService(exporter report.Exporter) report.ReportService {
	set := activitySet(
		rec("2024-09-01", "a1", 10, 0, 0),
		rec("2024-09-02", "a1", 40, 10, 10),
		rec("2024-09-01", "a3", 5, 0, 0),
	)
	return NewReportService(set, testRoster, exporter)
}

func TestReportService_Generate(t *testing.T) {
	svc := newTestService(spreadsheet.NewExporter())

	got, err := svc.Generate(context.Background(), hoursMap{"a1": 6.5, "a2": 6.5}, report.GenerateReportRequest{
		Manager:   "Zoe",
		StartDate: "2024-09-01",
		EndDate:   "2024-09-30",
	})
	require.NoError(t, err)

	assert.Equal(t, "Zoe", got.Manager)
	assert.Equal(t, report.Columns, got.Columns)
	assert.Equal(t, report.DefaultHighlight, got.Highlight)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, 1, got.LowProductivityCount)
	assert.Equal(t, report.Filename, got.Download.Filename)

	const prefix = "data:application/octet-stream;base64,"
	require.True(t, strings.HasPrefix(got.Download.DataURI, prefix))
	content, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(got.Download.DataURI, prefix))
	require.NoError(t, err)

	table, err := tabular.Read(bytes.NewReader(content), ".xlsx")
	require.NoError(t, err)
	assert.Len(t, table.Rows, 2)
}

func TestReportService_Export(t *testing.T) {
	svc := newTestService(spreadsheet.NewExporter())

	file, err := svc.Export(context.Background(), hoursMap{"a3": 6.5}, report.GenerateReportRequest{
		Manager:   "Adam",
		StartDate: "2024-09-01",
		EndDate:   "2024-09-01",
	})
	require.NoError(t, err)

	assert.Equal(t, "agent_hours_report.xlsx", file.Filename)
	assert.Equal(t, report.ContentType, file.ContentType)
	assert.NotEmpty(t, file.Content)
}

func TestReportService_EmptyResult(t *testing.T) {
	svc := newTestService(spreadsheet.NewExporter())

	_, err := svc.Generate(context.Background(), hoursMap{"a1": 6.5}, report.GenerateReportRequest{
		Manager:   "Zoe",
		StartDate: "2023-01-01",
		EndDate:   "2023-01-31",
	})

	assert.ErrorIs(t, err, report.ErrEmptyResult)
}

func TestReportService_UnknownManager(t *testing.T) {
	svc := newTestService(spreadsheet.NewExporter())

	_, err := svc.Generate(context.Background(), hoursMap{}, report.GenerateReportRequest{
		Manager:   "Nobody",
		StartDate: "2024-09-01",
		EndDate:   "2024-09-02",
	})

	assert.ErrorIs(t, err, roster.ErrManagerNotFound)
}

func TestReportService_ValidationErrors(t *testing.T) {
	svc := newTestService(spreadsheet.NewExporter())

	_, err := svc.Generate(context.Background(), hoursMap{}, report.GenerateReportRequest{
		StartDate: "2019-12-31",
		EndDate:   "01/09/2024",
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "manager")
	assert.Contains(t, fields, "start_date")
	assert.Contains(t, fields, "end_date")
}

func TestReportService_DefaultRange(t *testing.T) {
	impl := newTestService(spreadsheet.NewExporter()).(*ReportServiceImpl)
	impl.now = func() time.Time { return time.Date(2024, 9, 3, 15, 0, 0, 0, time.UTC) }

	got, err := impl.Generate(context.Background(), hoursMap{"a1": 6.5}, report.GenerateReportRequest{Manager: "Zoe"})
	require.NoError(t, err)

	assert.Equal(t, "2024-08-26", got.StartDate)
	assert.Equal(t, "2024-09-02", got.EndDate)
	assert.Len(t, got.Rows, 2)
}

func TestReportService_ExporterFailure(t *testing.T) {
	svc := newTestService(failingExporter{})

	_, err := svc.Export(context.Background(), hoursMap{"a1": 6.5}, report.GenerateReportRequest{
		Manager:   "Zoe",
		StartDate: "2024-09-01",
		EndDate:   "2024-09-02",
	})

	assert.ErrorIs(t, err, report.ErrReportGenerationFailed)
}

func TestReportService_MissingLocation(t *testing.T) {
	set := dataset.ActivitySet{
		Records: []dataset.Activity{rec("2024-09-01", "a1", 10, 0, 0)},
		Columns: []string{"date", "agent", "alerts", "manual_alerts", "marked"},
	}
	svc := NewReportService(set, testRoster, spreadsheet.NewExporter())

	_, err := svc.Generate(context.Background(), hoursMap{"a1": 6.5}, report.GenerateReportRequest{
		Manager:   "Zoe",
		StartDate: "2024-09-01",
		EndDate:   "2024-09-01",
	})

	var missing *report.MissingColumnError
	assert.ErrorAs(t, err, &missing)
}

func TestReportService_ValidatesAgainstInjectedClock(t *testing.T) {
	impl := newTestService(spreadsheet.NewExporter()).(*ReportServiceImpl)
	future := time.Now().AddDate(1, 0, 0)
	impl.now = func() time.Time { return future }

	end := future.AddDate(0, 0, -1).Format("2006-01-02")
	got, err := impl.Generate(context.Background(), hoursMap{"a1": 6.5}, report.GenerateReportRequest{
		Manager:   "Zoe",
		StartDate: "2024-09-01",
		EndDate:   end,
	})
	require.NoError(t, err)
	assert.Equal(t, end, got.EndDate)

	impl.now = func() time.Time { return time.Date(2024, 9, 3, 0, 0, 0, 0, time.UTC) }
	_, err = impl.Generate(context.Background(), hoursMap{"a1": 6.5}, report.GenerateReportRequest{
		Manager:   "Zoe",
		StartDate: "2024-09-01",
		EndDate:   "2024-09-03",
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "end_date")
}
