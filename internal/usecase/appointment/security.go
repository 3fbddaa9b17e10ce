package appointment

import (
	"context"
	"errors"
	"log"

	"github.com/dentalcloud/clinic-scheduler/internal/audit"
	"github.com/dentalcloud/clinic-scheduler/internal/domain/scheduling"
)

// auditSink is what the use cases need from the audit dispatcher.
type auditSink interface {
	Dispatch(ev audit.Event)
}

// resourceLocker is what the write paths need from the redis locker.
type resourceLocker interface {
	AcquireAll(ctx context.Context, keys ...string) (func(), error)
}

// reportCrossTenant records a request that referenced another clinic's
// records. The caller still answers a generic not-found; the trail lives in
// the server log and the audit table.
func reportCrossTenant(sink auditSink, clinicID uint, userID *uint, err error) {
	var violation *scheduling.CrossTenantViolation
	if !errors.As(err, &violation) {
		return
	}

	log.Printf("security: clinic %d referenced a foreign %s", clinicID, violation.Reference)

	sink.Dispatch(audit.Event{
		ClinicID: clinicID,
		UserID:   userID,
		Action:   "cross_tenant_violation",
		Entity:   violation.Reference,
	})
}
