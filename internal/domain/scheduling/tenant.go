package scheduling

import "github.com/dentalcloud/clinic-scheduler/internal/models"

// AssertSameClinic derives the owning clinic of every referenced entity and
// rejects the booking unless all of them resolve to the caller's clinic.
// Runs before any other validation so nothing about another clinic's
// schedule leaks through error messages.
func AssertSameClinic(clinicID uint, patient *models.Patient, dentist *models.Dentist, room *models.Room) error {
	if patient == nil || patient.ClinicID != clinicID {
		return &CrossTenantViolation{Reference: "patient"}
	}

	// A dentist must belong to exactly one branch for scheduling purposes.
	if dentist == nil || dentist.PrimaryBranchID == nil || dentist.PrimaryBranch == nil {
		return &CrossTenantViolation{Reference: "dentist"}
	}
	if dentist.PrimaryBranch.ClinicID != clinicID {
		return &CrossTenantViolation{Reference: "dentist"}
	}

	if room == nil || room.Branch.ClinicID != clinicID {
		return &CrossTenantViolation{Reference: "room"}
	}

	return nil
}
