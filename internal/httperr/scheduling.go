package httperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/dentalcloud/clinic-scheduler/internal/domain/scheduling"
)

// exclusionViolation is the postgres SQLSTATE raised when a write trips an
// EXCLUDE constraint. The exclusion constraints on appointments are the last
// line of defense against double booking, so it surfaces as a 409 like any
// other conflict.
const exclusionViolation = "23P01"

func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == exclusionViolation
}

// WriteScheduling maps the engine's structured errors onto HTTP. A
// cross-tenant reference deliberately answers 404 with no detail: callers
// must not learn whether the entity exists in another clinic.
func WriteScheduling(c *gin.Context, err error) {
	var (
		validation *scheduling.ValidationError
		inactive   *scheduling.ResourceInactiveError
		tenant     *scheduling.CrossTenantViolation
		transition *scheduling.InvalidTransitionError
		conflict   *scheduling.ConflictError
	)

	switch {
	case errors.As(err, &tenant):
		NotFound(c, "not_found", "resource not found")

	case errors.As(err, &conflict):
		Write(c, http.StatusConflict, "schedule_conflict", fmt.Sprintf(
			"%s already booked from %s to %s",
			conflict.Resource,
			conflict.Start.Format("15:04"),
			conflict.End.Format("15:04"),
		))

	case errors.As(err, &transition):
		Conflict(c, "invalid_transition", transition.Error())

	case errors.As(err, &inactive):
		BadRequest(c, "inactive_"+inactive.Resource, inactive.Error())

	case errors.As(err, &validation):
		BadRequest(c, "invalid_"+validation.Field, validation.Message)

	case IsExclusionConflict(err):
		Conflict(c, "schedule_conflict", "the requested time was just taken")

	case errors.Is(err, gorm.ErrRecordNotFound):
		NotFound(c, "not_found", "resource not found")

	default:
		Internal(c, "internal_error", "unexpected error")
	}
}
