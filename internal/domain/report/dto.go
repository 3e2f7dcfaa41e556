package report

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/agent-hours-go/internal/pkg/validator"
)

const (
	// LowProductivityThreshold flags rows whose score is strictly below it.
	LowProductivityThreshold = 0.80

	// Highlight palette shared by the JSON rows and the exported workbook.
	LowProductivityFill = "#FFC7CE"
	LowProductivityFont = "#9C0006"

	Filename    = "agent_hours_report.xlsx"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	// DefaultRangeDays is how far back the default range starts from yesterday.
	DefaultRangeDays = 7
)

// EarliestDate is the lower bound of any selectable report range.
var EarliestDate = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

// Columns is the exact output column order of a report.
var Columns = []string{
	"date",
	"Manager",
	"agent",
	"Total Hours",
	"alerts",
	"manual_alerts",
	"marked",
	"Productivity Score",
	"Location",
}

// ========================================
// GENERATE REPORT
// ========================================

type GenerateReportRequest struct {
	Manager   string `json:"manager"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// ApplyDefaults fills an empty range with [yesterday-7d, yesterday] relative to today.
func (r *GenerateReportRequest) ApplyDefaults(today time.Time) {
	yesterday := validator.TruncateDay(today).AddDate(0, 0, -1)
	if r.EndDate == "" {
		r.EndDate = yesterday.Format(validator.DateLayout)
	}
	if r.StartDate == "" {
		r.StartDate = yesterday.AddDate(0, 0, -DefaultRangeDays).Format(validator.DateLayout)
	}
}

// Validate checks the request against the selectable window [2020-01-01, yesterday]
// where yesterday is relative to today.
// A start after the end is not rejected here: it simply selects no data.
func (r *GenerateReportRequest) Validate(today time.Time) error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Manager) {
		errs = append(errs, validator.ValidationError{
			Field:   "manager",
			Message: "manager is required",
		})
	}

	latest := validator.TruncateDay(today).AddDate(0, 0, -1)

	for _, f := range []struct {
		field string
		value string
	}{
		{"start_date", r.StartDate},
		{"end_date", r.EndDate},
	} {
		if f.value == "" {
			errs = append(errs, validator.ValidationError{
				Field:   f.field,
				Message: f.field + " is required",
			})
			continue
		}
		d, ok := validator.IsValidDate(f.value)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   f.field,
				Message: f.field + " must be in YYYY-MM-DD format",
			})
			continue
		}
		if !validator.IsDateWithin(d, EarliestDate, latest) {
			errs = append(errs, validator.ValidationError{
				Field: f.field,
				Message: fmt.Sprintf("%s must be between %s and %s", f.field,
					EarliestDate.Format(validator.DateLayout), latest.Format(validator.DateLayout)),
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Range returns the parsed, inclusive date range. Call after Validate.
func (r *GenerateReportRequest) Range() (time.Time, time.Time) {
	start, _ := validator.IsValidDate(r.StartDate)
	end, _ := validator.IsValidDate(r.EndDate)
	return start, end
}

// Row is one agent-day of the report. Rows are derived on every generation and never stored.
type Row struct {
	Date              string  `json:"date"`
	Manager           *string `json:"manager"`
	Agent             string  `json:"agent"`
	TotalHours        float64 `json:"total_hours"`
	Alerts            int     `json:"alerts"`
	ManualAlerts      int     `json:"manual_alerts"`
	Marked            int     `json:"marked"`
	ProductivityScore float64 `json:"productivity_score"`
	Location          string  `json:"location"`
	LowProductivity   bool    `json:"low_productivity"`
}

// Values returns the row's cells in Columns order. A missing manager is an empty cell.
func (r Row) Values() []interface{} {
	var manager interface{}
	if r.Manager != nil {
		manager = *r.Manager
	}
	return []interface{}{
		r.Date,
		manager,
		r.Agent,
		r.TotalHours,
		r.Alerts,
		r.ManualAlerts,
		r.Marked,
		r.ProductivityScore,
		r.Location,
	}
}

type Highlight struct {
	Threshold  float64 `json:"threshold"`
	Background string  `json:"background"`
	Foreground string  `json:"foreground"`
}

// DefaultHighlight is the on-screen rule matching the workbook's conditional format.
var DefaultHighlight = Highlight{
	Threshold:  LowProductivityThreshold,
	Background: LowProductivityFill,
	Foreground: LowProductivityFont,
}

type Download struct {
	Filename string `json:"filename"`
	DataURI  string `json:"data_uri"`
}

type Report struct {
	Manager              string    `json:"manager"`
	StartDate            string    `json:"start_date"`
	EndDate              string    `json:"end_date"`
	GeneratedAt          string    `json:"generated_at"`
	Columns              []string  `json:"columns"`
	Highlight            Highlight `json:"highlight"`
	LowProductivityCount int       `json:"low_productivity_count"`
	Rows                 []Row     `json:"rows"`
	Download             Download  `json:"download"`
}

// File is an exported workbook ready to be streamed to the caller.
type File struct {
	Filename    string
	ContentType string
	Content     []byte
}
