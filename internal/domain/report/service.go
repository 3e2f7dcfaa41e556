package report

import "context"

// HoursLookup resolves an agent's current total hours.
type HoursLookup interface {
	Get(agent string) (float64, bool)
}

// ManagerLookup resolves an agent's owning manager.
type ManagerLookup interface {
	ManagerOf(agent string) (string, bool)
}

// ReportService defines the interface for report generation
type ReportService interface {
	// Generate builds the report for the manager's agents and attaches the download link
	Generate(ctx context.Context, hours HoursLookup, req GenerateReportRequest) (Report, error)

	// Export builds the report and returns only the workbook
	Export(ctx context.Context, hours HoursLookup, req GenerateReportRequest) (File, error)
}

// Exporter serializes report rows into a spreadsheet.
type Exporter interface {
	Export(rows []Row) ([]byte, error)
}
