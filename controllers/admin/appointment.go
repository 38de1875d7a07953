package admin

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/clinicdesk/patient-booking/db"
	"github.com/clinicdesk/patient-booking/models"
	"github.com/clinicdesk/patient-booking/utils"
)

// Dashboard returns the admin overview: doctors, all appointments and the
// specialty list.
func Dashboard(c *fiber.Ctx) error {
	var doctors []models.Doctor
	if err := db.DB.Preload("User").Find(&doctors).Error; err != nil {
		return utils.RenderError(c, err)
	}
	for i := range doctors {
		doctors[i].User.Password = ""
	}

	var appointments []models.Appointment
	if err := db.DB.
		Preload("Doctor").Preload("Doctor.User").Preload("Patient").
		Order("date desc").Order("time_slot desc").
		Find(&appointments).Error; err != nil {
		return utils.RenderError(c, err)
	}

	return c.JSON(fiber.Map{
		"doctors":      doctors,
		"appointments": appointments,
		"specialties":  models.Specialties(),
	})
}

// PendingSlots lists doctor-generated slots awaiting approval: Pending
// with no patient.
func PendingSlots(c *fiber.Ctx) error {
	var slots []models.Appointment
	if err := db.DB.
		Preload("Doctor").Preload("Doctor.User").
		Where("status = ? AND patient_id IS NULL", models.StatusPending).
		Order("date asc").Order("time_slot asc").
		Find(&slots).Error; err != nil {
		return utils.RenderError(c, err)
	}

	return c.JSON(fiber.Map{
		"slots": slots,
	})
}

// ApproveSlot publishes an unbooked pending slot as Available.
func ApproveSlot(c *fiber.Ctx) error {
	return updateSlotStatus(c, models.StatusAvailable)
}

// RejectSlot turns an unbooked pending slot down.
func RejectSlot(c *fiber.Ctx) error {
	return updateSlotStatus(c, models.StatusRejected)
}

func updateSlotStatus(c *fiber.Ctx, status models.AppointmentStatus) error {
	slotID, err := c.ParamsInt("id")
	if err != nil {
		return utils.RenderError(c, utils.Validation("invalid appointment ID"))
	}

	var slot models.Appointment
	if err := db.DB.Where("id = ? AND patient_id IS NULL", slotID).First(&slot).Error; err != nil {
		return utils.RenderError(c, utils.NotFound("Slot"))
	}

	if err := slot.CanTransition(models.RoleAdmin, status, time.Now(), 0); err != nil {
		return utils.RenderError(c, err)
	}

	result := db.DB.Model(&models.Appointment{}).
		Where("id = ? AND patient_id IS NULL AND status = ?", slotID, models.StatusPending).
		Update("status", status)
	if result.Error != nil {
		return utils.RenderError(c, result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.RenderError(c, utils.Conflict("Slot is no longer pending"))
	}

	return c.JSON(fiber.Map{"success": true})
}

// PendingBookings lists patient bookings awaiting confirmation: Pending
// with a patient attached.
func PendingBookings(c *fiber.Ctx) error {
	var bookings []models.Appointment
	if err := db.DB.
		Preload("Doctor").Preload("Doctor.User").Preload("Patient").
		Where("status = ? AND patient_id IS NOT NULL", models.StatusPending).
		Order("date asc").Order("time_slot asc").
		Find(&bookings).Error; err != nil {
		return utils.RenderError(c, err)
	}

	return c.JSON(fiber.Map{
		"bookings": bookings,
	})
}

// ConfirmBooking confirms a booked pending appointment and mails the
// patient. Mail failure is logged, never fatal.
func ConfirmBooking(c *fiber.Ctx) error {
	return updateBookingStatus(c, models.StatusConfirmed)
}

// RejectBooking rejects a booked pending appointment.
func RejectBooking(c *fiber.Ctx) error {
	return updateBookingStatus(c, models.StatusRejected)
}

// CancelAppointment cancels any non-terminal appointment outright, booked
// or not. A patient reference, if any, is kept for the record.
func CancelAppointment(c *fiber.Ctx) error {
	appointmentID, err := c.ParamsInt("id")
	if err != nil {
		return utils.RenderError(c, utils.Validation("invalid appointment ID"))
	}

	var appointment models.Appointment
	if err := db.DB.First(&appointment, appointmentID).Error; err != nil {
		return utils.RenderError(c, utils.NotFound("Appointment"))
	}

	if err := appointment.CanTransition(models.RoleAdmin, models.StatusCancelled, time.Now(), 0); err != nil {
		return utils.RenderError(c, err)
	}

	result := db.DB.Model(&models.Appointment{}).
		Where("id = ? AND status = ?", appointmentID, appointment.Status).
		Update("status", models.StatusCancelled)
	if result.Error != nil {
		return utils.RenderError(c, result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.RenderError(c, utils.Conflict("Appointment status changed concurrently"))
	}

	return c.JSON(fiber.Map{"success": true})
}

func updateBookingStatus(c *fiber.Ctx, status models.AppointmentStatus) error {
	bookingID, err := c.ParamsInt("id")
	if err != nil {
		return utils.RenderError(c, utils.Validation("invalid appointment ID"))
	}

	var booking models.Appointment
	if err := db.DB.
		Preload("Doctor").Preload("Doctor.User").Preload("Patient").
		Where("id = ? AND patient_id IS NOT NULL", bookingID).
		First(&booking).Error; err != nil {
		return utils.RenderError(c, utils.NotFound("Booking"))
	}

	if err := booking.CanTransition(models.RoleAdmin, status, time.Now(), 0); err != nil {
		return utils.RenderError(c, err)
	}

	result := db.DB.Model(&models.Appointment{}).
		Where("id = ? AND patient_id IS NOT NULL AND status = ?", bookingID, booking.Status).
		Update("status", status)
	if result.Error != nil {
		return utils.RenderError(c, result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.RenderError(c, utils.Conflict("Booking status changed concurrently"))
	}

	if status == models.StatusConfirmed && booking.Patient != nil {
		if err := sendConfirmationEmail(&booking); err != nil {
			log.Printf("Warning: failed to send confirmation email for appointment %d: %v", booking.ID, err)
		}
	}

	return c.JSON(fiber.Map{"success": true})
}

func sendConfirmationEmail(a *models.Appointment) error {
	subject := "Your appointment is confirmed"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your appointment has been confirmed.</p>
		<ul>
			<li><strong>Doctor:</strong> %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s</li>
		</ul>
		<p>If you need to cancel, please do so at least %s in advance.</p>
	`, a.Patient.Name, a.Doctor.User.Name, a.Date.Format("2006-01-02"), a.TimeSlot, utils.CancelLeadTime())

	return utils.SendEmail(a.Patient.Email, subject, body)
}

// ListAppointments returns all appointments, optionally filtered by
// status.
func ListAppointments(c *fiber.Ctx) error {
	query := db.DB.
		Preload("Doctor").Preload("Doctor.User").Preload("Patient").
		Order("date desc").Order("time_slot desc")

	if s := c.Query("status"); s != "" {
		status, ok := models.ParseStatus(s)
		if !ok {
			return utils.RenderError(c, utils.Validation("invalid status: %s", s))
		}
		query = query.Where("status = ?", status)
	}

	var appointments []models.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		return utils.RenderError(c, err)
	}

	return c.JSON(fiber.Map{
		"appointments": appointments,
		"count":        len(appointments),
	})
}

// ExportAppointments streams every appointment as a CSV download.
func ExportAppointments(c *fiber.Ctx) error {
	var appointments []models.Appointment
	if err := db.DB.
		Preload("Doctor").Preload("Doctor.User").Preload("Patient").
		Order("date asc").Order("time_slot asc").
		Find(&appointments).Error; err != nil {
		return utils.RenderError(c, err)
	}

	data, err := utils.AppointmentsCSV(appointments)
	if err != nil {
		return utils.RenderError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="appointments.csv"`)
	return c.Send(data)
}
