package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinicdesk/patient-booking/controllers/admin"
	"github.com/clinicdesk/patient-booking/middleware"
	"github.com/clinicdesk/patient-booking/models"
)

// SetupAdminRoutes configures doctor management and booking approval
func SetupAdminRoutes(app *fiber.App) {
	group := app.Group("/admin", middleware.Protected(), middleware.RequireRole(models.RoleAdmin))

	group.Get("/dashboard", admin.Dashboard)

	group.Get("/doctors", admin.ListDoctors)
	group.Post("/doctors", admin.CreateDoctor)
	group.Patch("/doctors/:id", admin.UpdateDoctor)
	group.Delete("/doctors/:id", admin.DeleteDoctor)

	group.Get("/slots/pending", admin.PendingSlots)
	group.Post("/slots/:id/approve", admin.ApproveSlot)
	group.Post("/slots/:id/reject", admin.RejectSlot)

	group.Get("/bookings/pending", admin.PendingBookings)
	group.Post("/bookings/:id/confirm", admin.ConfirmBooking)
	group.Post("/bookings/:id/reject", admin.RejectBooking)

	group.Get("/appointments", admin.ListAppointments)
	group.Post("/appointments/:id/cancel", admin.CancelAppointment)
	group.Get("/appointments/export", admin.ExportAppointments)
}
