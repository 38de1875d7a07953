package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinicdesk/patient-booking/controllers/doctor"
	"github.com/clinicdesk/patient-booking/middleware"
	"github.com/clinicdesk/patient-booking/models"
)

// SetupDoctorRoutes configures the doctor-facing schedule management
func SetupDoctorRoutes(app *fiber.App) {
	group := app.Group("/doctor", middleware.Protected(), middleware.RequireRole(models.RoleDoctor))

	group.Get("/dashboard", doctor.Dashboard)
	group.Get("/appointments/today", doctor.TodayAppointments)
	group.Get("/appointments/week", doctor.WeeklySchedule)

	group.Post("/slots", doctor.GenerateSlots)
	group.Delete("/slots/:id", doctor.DeleteSlot)
	group.Post("/appointments/:id/complete", doctor.Complete)

	group.Get("/working-hours", doctor.ListWorkingHours)
	group.Post("/working-hours", doctor.CreateWorkingHour)
	group.Patch("/working-hours/:id", doctor.UpdateWorkingHour)
	group.Delete("/working-hours/:id", doctor.DeleteWorkingHour)
}
