package validator

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the only date format accepted on the API surface.
const DateLayout = "2006-01-02"

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse(DateLayout, dateStr)
	return date, err == nil
}

// IsDateWithin reports whether d falls inside [min, max], comparing calendar days only.
func IsDateWithin(d, min, max time.Time) bool {
	day := TruncateDay(d)
	return !day.Before(TruncateDay(min)) && !day.After(TruncateDay(max))
}

// TruncateDay drops the clock part of t, keeping its calendar date in UTC.
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsFinite rejects NaN and ±Inf.
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// IsMultipleOf reports whether f is an exact multiple of step (within float tolerance).
func IsMultipleOf(f, step float64) bool {
	if step <= 0 {
		return false
	}
	q := f / step
	return math.Abs(q-math.Round(q)) < 1e-9
}

// IsValidUUID accepts any RFC 4122 UUID string.
func IsValidUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
