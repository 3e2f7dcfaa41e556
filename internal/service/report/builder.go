package report

import (
	"time"

	"github.com/cmlabs-hris/agent-hours-go/internal/domain/dataset"
	"github.com/cmlabs-hris/agent-hours-go/internal/domain/report"
	"github.com/cmlabs-hris/agent-hours-go/internal/pkg/validator"
)

// Minutes credited per qualifying action.
const (
	alertMinutes       = 6
	manualAlertMinutes = 6
	markedMinutes      = 10
)

// ProductivityScore converts actions to credited hours and divides by hours worked.
func ProductivityScore(alerts, manualAlerts, marked int, totalHours float64) float64 {
	credited := float64(alerts*alertMinutes)/60 +
		float64(manualAlerts*manualAlertMinutes)/60 +
		float64(marked*markedMinutes)/60
	return credited / totalHours
}

// IsLowProductivity applies the shared highlight threshold.
func IsLowProductivity(score float64) bool {
	return score < report.LowProductivityThreshold
}

// Build filters activity to [start, end] and the agent filter, joins each record with its
// manager and ledger hours, and scores it. Either every row is produced or an error is returned.
func Build(
	activity dataset.ActivitySet,
	managers report.ManagerLookup,
	hours report.HoursLookup,
	start, end time.Time,
	agents []string,
) ([]report.Row, error) {
	filter := make(map[string]struct{}, len(agents))
	for _, a := range agents {
		filter[a] = struct{}{}
	}

	var selected []dataset.Activity
	for _, rec := range activity.Records {
		if !rec.HasDate() || !validator.IsDateWithin(rec.Date, start, end) {
			continue
		}
		if _, ok := filter[rec.Agent]; !ok {
			continue
		}
		selected = append(selected, rec)
	}
	if len(selected) == 0 {
		return nil, report.ErrEmptyResult
	}

	var missingHours, zeroHours []string
	seenMissing := make(map[string]bool)
	seenZero := make(map[string]bool)

	rows := make([]report.Row, 0, len(selected))
	for _, rec := range selected {
		row := report.Row{
			Date:         rec.Date.Format(validator.DateLayout),
			Agent:        rec.Agent,
			Alerts:       rec.Alerts,
			ManualAlerts: rec.ManualAlerts,
			Marked:       rec.Marked,
			Location:     rec.Location,
		}
		if m, ok := managers.ManagerOf(rec.Agent); ok {
			manager := m
			row.Manager = &manager
		}

		total, ok := hours.Get(rec.Agent)
		switch {
		case !ok:
			if !seenMissing[rec.Agent] {
				seenMissing[rec.Agent] = true
				missingHours = append(missingHours, rec.Agent)
			}
			continue
		case total == 0:
			if !seenZero[rec.Agent] {
				seenZero[rec.Agent] = true
				zeroHours = append(zeroHours, rec.Agent)
			}
			continue
		}

		row.TotalHours = total
		row.ProductivityScore = ProductivityScore(rec.Alerts, rec.ManualAlerts, rec.Marked, total)
		row.LowProductivity = IsLowProductivity(row.ProductivityScore)
		rows = append(rows, row)
	}

	if len(missingHours) > 0 {
		return nil, &report.MissingHoursError{Agents: missingHours}
	}
	if len(zeroHours) > 0 {
		return nil, &report.ZeroHoursError{Agents: zeroHours}
	}
	if missing := missingColumns(activity); len(missing) > 0 {
		return nil, &report.MissingColumnError{Columns: missing}
	}

	return rows, nil
}

// missingColumns reports output columns the activity source could not provide. Manager and
// Total Hours come from the join and are always present.
func missingColumns(activity dataset.ActivitySet) []string {
	sourced := map[string]string{
		"date":          dataset.ColumnDate,
		"agent":         dataset.ColumnActivityID,
		"alerts":        dataset.ColumnAlerts,
		"manual_alerts": dataset.ColumnManualAlerts,
		"marked":        dataset.ColumnMarked,
		"Location":      dataset.ColumnLocation,
	}

	var missing []string
	for _, col := range report.Columns {
		src, ok := sourced[col]
		if !ok {
			continue
		}
		if !activity.HasColumn(src) {
			missing = append(missing, col)
		}
	}
	return missing
}
