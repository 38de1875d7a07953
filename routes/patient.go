package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinicdesk/patient-booking/controllers/patient"
	"github.com/clinicdesk/patient-booking/middleware"
	"github.com/clinicdesk/patient-booking/models"
)

// SetupPatientRoutes configures the patient-facing booking flow
func SetupPatientRoutes(app *fiber.App) {
	group := app.Group("/patient", middleware.Protected(), middleware.RequireRole(models.RolePatient))

	group.Get("/dashboard", patient.Dashboard)

	// Booking flow: specialty -> doctor -> slot
	group.Get("/specialties", patient.ListSpecialties)
	group.Get("/doctors", patient.DoctorsBySpecialty)
	group.Get("/doctors/:id/slots", patient.AvailableSlots)
	group.Post("/suggest", patient.SuggestSpecialties)

	group.Get("/appointments", patient.MyAppointments)
	group.Post("/appointments/:id/book", patient.Book)
	group.Post("/appointments/:id/cancel", patient.Cancel)
	group.Post("/appointments/:id/rate", patient.Rate)
}
