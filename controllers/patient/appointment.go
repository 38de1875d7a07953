package patient

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/clinicdesk/patient-booking/db"
	"github.com/clinicdesk/patient-booking/middleware"
	"github.com/clinicdesk/patient-booking/models"
	"github.com/clinicdesk/patient-booking/utils"
)

// Dashboard lists every Available future slot across doctors, paginated.
func Dashboard(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	today := utils.CalendarDay(time.Now())

	var total int64
	if err := db.DB.Model(&models.Appointment{}).
		Where("status = ? AND date >= ?", models.StatusAvailable, today).
		Count(&total).Error; err != nil {
		return utils.RenderError(c, err)
	}

	var appointments []models.Appointment
	if err := db.DB.
		Preload("Doctor").Preload("Doctor.User").
		Where("status = ? AND date >= ?", models.StatusAvailable, today).
		Order("date asc").Order("time_slot asc").
		Offset(offset).Limit(limit).
		Find(&appointments).Error; err != nil {
		return utils.RenderError(c, err)
	}

	return c.JSON(fiber.Map{
		"appointments": appointments,
		"total":        total,
		"page":         page,
		"limit":        limit,
		"pages":        (total + int64(limit) - 1) / int64(limit),
	})
}

// Book claims an Available slot for the calling patient. The status check
// happens inside the UPDATE itself so two racing patients resolve to one
// success and one conflict.
func Book(c *fiber.Ctx) error {
	patientID, _, ok := middleware.CurrentUser(c)
	if !ok {
		return utils.RenderError(c, utils.Unauthorized("Patient not found in context"))
	}

	appointmentID, err := c.ParamsInt("id")
	if err != nil {
		return utils.RenderError(c, utils.Validation("invalid appointment ID"))
	}

	var appointment models.Appointment
	if err := db.DB.First(&appointment, appointmentID).Error; err != nil {
		return utils.RenderError(c, utils.NotFound("Appointment"))
	}

	if err := appointment.CanTransition(models.RolePatient, models.StatusPending, time.Now(), 0); err != nil {
		return utils.RenderError(c, err)
	}

	result := db.DB.Model(&models.Appointment{}).
		Where("id = ? AND status = ? AND patient_id IS NULL", appointmentID, models.StatusAvailable).
		Updates(map[string]interface{}{
			"status":     models.StatusPending,
			"patient_id": patientID,
		})
	if result.Error != nil {
		return utils.RenderError(c, result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.RenderError(c, utils.Conflict("This appointment is no longer available"))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Booking request sent for " + appointment.Date.Format("2006-01-02") + " at " + appointment.TimeSlot,
	})
}

// MyAppointments lists the patient's own appointments, all statuses,
// newest first.
func MyAppointments(c *fiber.Ctx) error {
	patientID, _, ok := middleware.CurrentUser(c)
	if !ok {
		return utils.RenderError(c, utils.Unauthorized("Patient not found in context"))
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	var total int64
	if err := db.DB.Model(&models.Appointment{}).
		Where("patient_id = ?", patientID).
		Count(&total).Error; err != nil {
		return utils.RenderError(c, err)
	}

	var appointments []models.Appointment
	if err := db.DB.
		Preload("Doctor").Preload("Doctor.User").
		Where("patient_id = ?", patientID).
		Order("date desc").Order("time_slot desc").
		Offset(offset).Limit(limit).
		Find(&appointments).Error; err != nil {
		return utils.RenderError(c, err)
	}

	return c.JSON(fiber.Map{
		"appointments": appointments,
		"total":        total,
		"page":         page,
		"limit":        limit,
	})
}

// Cancel frees one of the patient's own bookings ahead of the lead time.
// The freed slot goes back to Available with no patient, so someone else
// can take it.
func Cancel(c *fiber.Ctx) error {
	patientID, _, ok := middleware.CurrentUser(c)
	if !ok {
		return utils.RenderError(c, utils.Unauthorized("Patient not found in context"))
	}

	appointmentID, err := c.ParamsInt("id")
	if err != nil {
		return utils.RenderError(c, utils.Validation("invalid appointment ID"))
	}

	var appointment models.Appointment
	if err := db.DB.
		Where("id = ? AND patient_id = ?", appointmentID, patientID).
		First(&appointment).Error; err != nil {
		return utils.RenderError(c, utils.NotFound("Appointment"))
	}

	if err := appointment.CanTransition(models.RolePatient, models.StatusAvailable, time.Now(), utils.CancelLeadTime()); err != nil {
		return utils.RenderError(c, err)
	}

	result := db.DB.Model(&models.Appointment{}).
		Where("id = ? AND patient_id = ? AND status IN ?", appointmentID, patientID,
			[]models.AppointmentStatus{models.StatusPending, models.StatusConfirmed}).
		Updates(map[string]interface{}{
			"status":     models.StatusAvailable,
			"patient_id": nil,
		})
	if result.Error != nil {
		return utils.RenderError(c, result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.RenderError(c, utils.Conflict("Appointment can no longer be cancelled"))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Appointment cancelled successfully",
	})
}
