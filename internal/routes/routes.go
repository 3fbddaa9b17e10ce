package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dentalcloud/clinic-scheduler/internal/audit"
	"github.com/dentalcloud/clinic-scheduler/internal/config"
	"github.com/dentalcloud/clinic-scheduler/internal/handlers"
	infraRepo "github.com/dentalcloud/clinic-scheduler/internal/infra/repository"
	"github.com/dentalcloud/clinic-scheduler/internal/lock"
	"github.com/dentalcloud/clinic-scheduler/internal/middleware"
	"github.com/dentalcloud/clinic-scheduler/internal/storage"
	ucAppointment "github.com/dentalcloud/clinic-scheduler/internal/usecase/appointment"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	locker *lock.Locker,
	objectStorage *storage.Client,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	schedulingRepo := infraRepo.NewSchedulingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	bookUC := ucAppointment.NewBookAppointment(
		schedulingRepo,
		locker,
		auditDispatcher,
	)

	rescheduleUC := ucAppointment.NewRescheduleAppointment(
		schedulingRepo,
		locker,
		auditDispatcher,
	)

	statusUC := ucAppointment.NewChangeStatus(
		schedulingRepo,
		auditDispatcher,
	)

	listUC := ucAppointment.NewListAppointments(schedulingRepo)

	checkAvailabilityUC := ucAppointment.NewCheckAvailability(schedulingRepo, auditDispatcher)
	daySlotsUC := ucAppointment.NewGetDaySlots(schedulingRepo, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	clinicHandler := handlers.NewClinicHandler(db, objectStorage)

	branchHandler := handlers.NewBranchHandler(db)
	roomHandler := handlers.NewRoomHandler(db)
	specialtyHandler := handlers.NewSpecialtyHandler(db)
	dentistHandler := handlers.NewDentistHandler(db)
	patientHandler := handlers.NewPatientHandler(db)

	scheduleHandler := handlers.NewScheduleHandler(db)
	dentistScheduleHandler := handlers.NewDentistScheduleHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		bookUC,
		rescheduleUC,
		statusUC,
		listUC,
	)

	availabilityHandler := handlers.NewAvailabilityHandler(
		db,
		checkAvailabilityUC,
		daySlotsUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/clinic", clinicHandler.GetMeClinic)
			secured.PATCH("/me/clinic", clinicHandler.UpdateMeClinic)
			secured.POST("/me/clinic/logo", clinicHandler.UploadLogo)

			// ------------------------------
			// DIRECTORY
			// ------------------------------
			secured.GET("/me/branches", branchHandler.List)
			secured.POST("/me/branches", branchHandler.Create)
			secured.PATCH("/me/branches/:id", branchHandler.Update)

			secured.GET("/me/branches/:id/schedule", scheduleHandler.Get)
			secured.PUT("/me/branches/:id/schedule", scheduleHandler.Update)

			secured.GET("/me/rooms", roomHandler.List)
			secured.POST("/me/rooms", roomHandler.Create)
			secured.PATCH("/me/rooms/:id", roomHandler.Update)

			secured.GET("/me/specialties", specialtyHandler.List)

			secured.GET("/me/dentists", dentistHandler.List)
			secured.POST("/me/dentists", dentistHandler.Create)
			secured.PATCH("/me/dentists/:id", dentistHandler.Update)

			secured.GET("/me/dentists/:id/availability", dentistScheduleHandler.GetAvailability)
			secured.PUT("/me/dentists/:id/availability", dentistScheduleHandler.UpdateAvailability)
			secured.GET("/me/dentists/:id/exceptions", dentistScheduleHandler.ListExceptions)
			secured.POST("/me/dentists/:id/exceptions", dentistScheduleHandler.CreateException)
			secured.DELETE("/me/dentists/:id/exceptions/:exceptionId", dentistScheduleHandler.DeleteException)

			secured.GET("/me/patients", patientHandler.List)
			secured.POST("/me/patients", patientHandler.Create)
			secured.PATCH("/me/patients/:id", patientHandler.Update)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.PUT("/me/appointments/:id", appointmentHandler.Update)
			secured.PATCH("/me/appointments/:id/status", appointmentHandler.ChangeStatus)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)
			secured.GET("/me/appointments/calendar", appointmentHandler.Calendar)

			secured.GET("/me/availability", availabilityHandler.Check)
			secured.GET("/me/availability/slots", availabilityHandler.Slots)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
