package report

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyResult            = errors.New("no data found for the selected date range and agents")
	ErrReportGenerationFailed = errors.New("failed to generate report")
)

// MissingColumnError is returned when the joined data lacks output columns.
type MissingColumnError struct {
	Columns []string
}

func (e *MissingColumnError) Error() string {
	return "missing columns in filtered data: " + strings.Join(e.Columns, ", ")
}

// MissingHoursError lists agents with activity but no ledger entry.
type MissingHoursError struct {
	Agents []string
}

func (e *MissingHoursError) Error() string {
	return fmt.Sprintf("no total hours recorded for agents: %s", strings.Join(e.Agents, ", "))
}

// ZeroHoursError lists agents whose total hours are zero, which leaves the score undefined.
type ZeroHoursError struct {
	Agents []string
}

func (e *ZeroHoursError) Error() string {
	return fmt.Sprintf("total hours must not be zero for agents: %s", strings.Join(e.Agents, ", "))
}
