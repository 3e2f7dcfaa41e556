package response

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/cmlabs-hris/agent-hours-go/internal/domain/dataset"
	"github.com/cmlabs-hris/agent-hours-go/internal/domain/report"
	"github.com/cmlabs-hris/agent-hours-go/internal/domain/roster"
	"github.com/cmlabs-hris/agent-hours-go/internal/domain/session"
	"github.com/cmlabs-hris/agent-hours-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var (
		missingColumns *report.MissingColumnError
		missingHours   *report.MissingHoursError
		zeroHours      *report.ZeroHoursError
	)

	switch {
	// Report errors
	case errors.Is(err, report.ErrEmptyResult):
		NotFound(w, report.ErrEmptyResult.Error())
	case errors.As(err, &missingColumns):
		UnprocessableEntity(w, "MISSING_COLUMNS", err.Error(), map[string]string{
			"columns": strings.Join(missingColumns.Columns, ", "),
		})
	case errors.As(err, &missingHours):
		UnprocessableEntity(w, "MISSING_HOURS", err.Error(), map[string]string{
			"agents": strings.Join(missingHours.Agents, ", "),
		})
	case errors.As(err, &zeroHours):
		UnprocessableEntity(w, "ZERO_HOURS", err.Error(), map[string]string{
			"agents": strings.Join(zeroHours.Agents, ", "),
		})

	// Session errors
	case errors.Is(err, session.ErrSessionNotFound):
		NotFound(w, "Session not found")
	case errors.Is(err, session.ErrSessionExists):
		Conflict(w, "Session already exists")
	case errors.Is(err, session.ErrAgentNotTracked):
		NotFound(w, "Agent has no hours in this session")

	// Roster errors
	case errors.Is(err, roster.ErrManagerNotFound):
		NotFound(w, "Manager not found")
	case errors.Is(err, roster.ErrUnknownAgent):
		NotFound(w, "Agent not found")

	case errors.Is(err, dataset.ErrDataFormat):
		UnprocessableEntity(w, "DATA_FORMAT", err.Error(), nil)

	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
