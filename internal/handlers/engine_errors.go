package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	domain "github.com/mentorbase/mentor-scheduler/internal/domain/session"
	"github.com/mentorbase/mentor-scheduler/internal/httperr"
)

// writeEngineError maps engine errors onto HTTP responses. Returns false
// when the error was not an expected engine error, so callers can fall
// through to a 500.
func writeEngineError(c *gin.Context, err error) bool {
	var (
		invalidRange    domain.InvalidRangeError
		invalidDuration domain.InvalidDurationError
		slotTaken       domain.SlotUnavailableError
		badTransition   domain.InvalidTransitionError
		unauthorized    domain.UnauthorizedActorError
		reasonRequired  domain.ReasonRequiredError
		business        httperr.BusinessError
	)

	switch {
	case errors.As(err, &invalidRange):
		httperr.BadRequest(c, "invalid_range", err.Error())
	case errors.As(err, &invalidDuration):
		httperr.BadRequest(c, "invalid_duration", err.Error())
	case errors.As(err, &slotTaken):
		httperr.Conflict(c, "slot_unavailable", err.Error())
	case errors.As(err, &badTransition):
		httperr.Conflict(c, "invalid_transition", err.Error())
	case errors.As(err, &unauthorized):
		httperr.Forbidden(c, "unauthorized_actor", err.Error())
	case errors.As(err, &reasonRequired):
		httperr.Unprocessable(c, "reason_required", err.Error())
	case errors.As(err, &business):
		httperr.BadRequest(c, business.Code, business.Code)
	default:
		return false
	}

	return true
}
