package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/agent-hours-go/internal/domain/dataset"
	"github.com/cmlabs-hris/agent-hours-go/internal/domain/report"
	"github.com/cmlabs-hris/agent-hours-go/internal/domain/roster"
	"github.com/cmlabs-hris/agent-hours-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/agent-hours-go/internal/pkg/spreadsheet"
)

const (
	kindView   = "view"
	kindExport = "export"
)

type ReportServiceImpl struct {
	activity dataset.ActivitySet
	roster   roster.Service
	exporter report.Exporter
	now      func() time.Time
}

func NewReportService(activity dataset.ActivitySet, rosterService roster.Service, exporter report.Exporter) report.ReportService {
	return &ReportServiceImpl{
		activity: activity,
		roster:   rosterService,
		exporter: exporter,
		now:      time.Now,
	}
}

// build validates the request and runs the builder over the manager's agents.
func (s *ReportServiceImpl) build(hours report.HoursLookup, req *report.GenerateReportRequest) ([]report.Row, error) {
	today := s.now()
	req.ApplyDefaults(today)
	if err := req.Validate(today); err != nil {
		return nil, err
	}

	agents, err := s.roster.Agents(req.Manager)
	if err != nil {
		return nil, err
	}

	start, end := req.Range()
	return Build(s.activity, s.roster, hours, start, end, agents)
}

// Generate builds the on-screen report and attaches the workbook as a data URI.
func (s *ReportServiceImpl) Generate(ctx context.Context, hours report.HoursLookup, req report.GenerateReportRequest) (report.Report, error) {
	started := time.Now()

	rows, err := s.build(hours, &req)
	if err != nil {
		s.observe(kindView, started, err, 0)
		return report.Report{}, err
	}

	content, err := s.exporter.Export(rows)
	if err != nil {
		err = fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
		s.observe(kindView, started, err, 0)
		return report.Report{}, err
	}

	low := countLow(rows)
	s.observe(kindView, started, nil, low)
	slog.InfoContext(ctx, "Report generated",
		"manager", req.Manager,
		"start_date", req.StartDate,
		"end_date", req.EndDate,
		"rows", len(rows),
		"low_productivity", low,
	)

	return report.Report{
		Manager:              req.Manager,
		StartDate:            req.StartDate,
		EndDate:              req.EndDate,
		GeneratedAt:          s.now().Format(time.RFC3339),
		Columns:              report.Columns,
		Highlight:            report.DefaultHighlight,
		LowProductivityCount: low,
		Rows:                 rows,
		Download: report.Download{
			Filename: report.Filename,
			DataURI:  spreadsheet.DataURI(content),
		},
	}, nil
}

// Export builds the report and returns only the workbook bytes.
func (s *ReportServiceImpl) Export(ctx context.Context, hours report.HoursLookup, req report.GenerateReportRequest) (report.File, error) {
	started := time.Now()

	rows, err := s.build(hours, &req)
	if err != nil {
		s.observe(kindExport, started, err, 0)
		return report.File{}, err
	}

	content, err := s.exporter.Export(rows)
	if err != nil {
		err = fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
		s.observe(kindExport, started, err, 0)
		return report.File{}, err
	}

	low := countLow(rows)
	s.observe(kindExport, started, nil, low)
	slog.InfoContext(ctx, "Report exported", "manager", req.Manager, "rows", len(rows), "bytes", len(content))

	return report.File{
		Filename:    report.Filename,
		ContentType: report.ContentType,
		Content:     content,
	}, nil
}

func (s *ReportServiceImpl) observe(kind string, started time.Time, err error, low int) {
	outcome := metrics.OutcomeSuccess
	switch {
	case errors.Is(err, report.ErrEmptyResult):
		outcome = metrics.OutcomeEmpty
	case err != nil:
		outcome = metrics.OutcomeError
	}
	metrics.ObserveReport(kind, time.Since(started), outcome, low)
}

func countLow(rows []report.Row) int {
	n := 0
	for _, r := range rows {
		if r.LowProductivity {
			n++
		}
	}
	return n
}
