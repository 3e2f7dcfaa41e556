package session

import (
	"fmt"

	"github.com/cmlabs-hris/agent-hours-go/internal/pkg/validator"
)

type CreateSessionResponse struct {
	SessionID    string  `json:"session_id"`
	DefaultHours float64 `json:"default_hours"`
	CreatedAt    string  `json:"created_at"`
}

type AgentHours struct {
	Agent      string  `json:"agent"`
	TotalHours float64 `json:"total_hours"`
}

type ManagerHoursResponse struct {
	Manager string       `json:"manager"`
	Agents  []AgentHours `json:"agents"`
}

type SetHoursRequest struct {
	TotalHours *float64 `json:"total_hours"`
}

func (r *SetHoursRequest) Validate() error {
	var errs validator.ValidationErrors

	switch {
	case r.TotalHours == nil:
		errs = append(errs, validator.ValidationError{
			Field:   "total_hours",
			Message: "total_hours is required",
		})
	case !validator.IsFinite(*r.TotalHours):
		errs = append(errs, validator.ValidationError{
			Field:   "total_hours",
			Message: "total_hours must be a finite number",
		})
	case !validator.IsMultipleOf(*r.TotalHours, HoursStep):
		errs = append(errs, validator.ValidationError{
			Field:   "total_hours",
			Message: fmt.Sprintf("total_hours must be a multiple of %.2f", HoursStep),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
