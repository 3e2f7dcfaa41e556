package dataset

import "time"

// Column names as they appear in the source spreadsheets.
const (
	ColumnManager = "Manager"
	ColumnAgent   = "Agent"

	ColumnDate         = "date"
	ColumnActivityID   = "agent"
	ColumnAlerts       = "alerts"
	ColumnManualAlerts = "manual_alerts"
	ColumnMarked       = "marked"
	ColumnLocation     = "Location"
)

var (
	AssignmentColumns = []string{ColumnManager, ColumnAgent}
	ActivityColumns   = []string{ColumnDate, ColumnActivityID, ColumnAlerts, ColumnManualAlerts, ColumnMarked}
)

// Table is a raw, header-first view of a tabular file.
type Table struct {
	Header []string
	Rows   [][]string
}

// Index returns the position of each header cell, first occurrence wins.
func (t Table) Index() map[string]int {
	idx := make(map[string]int, len(t.Header))
	for i, h := range t.Header {
		if _, ok := idx[h]; !ok {
			idx[h] = i
		}
	}
	return idx
}

// MissingColumns lists the required columns absent from the header, in required order.
func (t Table) MissingColumns(required []string) []string {
	idx := t.Index()
	var missing []string
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}

// Assignment binds an agent to its owning manager.
type Assignment struct {
	Manager string `json:"manager"`
	Agent   string `json:"agent"`
}

// Activity is one agent's metrics for one day.
type Activity struct {
	// Date is zero when the source value could not be parsed.
	Date         time.Time `json:"date"`
	Agent        string    `json:"agent"`
	Alerts       int       `json:"alerts"`
	ManualAlerts int       `json:"manual_alerts"`
	Marked       int       `json:"marked"`
	Location     string    `json:"location"`
}

// HasDate reports whether the record carries a usable calendar date.
func (a Activity) HasDate() bool {
	return !a.Date.IsZero()
}

// ActivitySet is the loaded activity dataset together with the columns its source provided.
type ActivitySet struct {
	Records []Activity
	Columns []string
}

func (s ActivitySet) HasColumn(name string) bool {
	for _, c := range s.Columns {
		if c == name {
			return true
		}
	}
	return false
}
