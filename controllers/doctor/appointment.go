package doctor

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/clinicdesk/patient-booking/db"
	"github.com/clinicdesk/patient-booking/middleware"
	"github.com/clinicdesk/patient-booking/models"
	"github.com/clinicdesk/patient-booking/utils"
)

// Dashboard returns the doctor's profile with their appointments across
// all statuses, newest day first.
func Dashboard(c *fiber.Ctx) error {
	doctor, err := currentDoctor(c)
	if err != nil {
		return utils.RenderError(c, err)
	}

	var appointments []models.Appointment
	if err := db.DB.
		Preload("Patient").
		Where("doctor_id = ?", doctor.ID).
		Order("date desc").Order("time_slot asc").
		Find(&appointments).Error; err != nil {
		return utils.RenderError(c, err)
	}

	doctor.User.Password = ""

	return c.JSON(fiber.Map{
		"doctor":       doctor,
		"appointments": appointments,
	})
}

// TodayAppointments lists today's still-active (Pending or Confirmed)
// appointments in slot order.
func TodayAppointments(c *fiber.Ctx) error {
	doctor, err := currentDoctor(c)
	if err != nil {
		return utils.RenderError(c, err)
	}

	today := utils.CalendarDay(time.Now())

	var appointments []models.Appointment
	if err := db.DB.
		Preload("Patient").
		Where("doctor_id = ? AND date = ? AND status IN ?",
			doctor.ID, today,
			[]models.AppointmentStatus{models.StatusPending, models.StatusConfirmed}).
		Order("time_slot asc").
		Find(&appointments).Error; err != nil {
		return utils.RenderError(c, err)
	}

	return c.JSON(fiber.Map{
		"appointments": appointments,
		"date":         today.Format("2006-01-02"),
	})
}

// WeeklySchedule lists the current week's appointments, Sunday to
// Saturday.
func WeeklySchedule(c *fiber.Ctx) error {
	doctor, err := currentDoctor(c)
	if err != nil {
		return utils.RenderError(c, err)
	}

	today := utils.CalendarDay(time.Now())
	startOfWeek := today.AddDate(0, 0, -int(today.Weekday()))
	endOfWeek := startOfWeek.AddDate(0, 0, 7)

	var appointments []models.Appointment
	if err := db.DB.
		Preload("Patient").
		Where("doctor_id = ? AND date >= ? AND date < ?", doctor.ID, startOfWeek, endOfWeek).
		Order("date asc").Order("time_slot asc").
		Find(&appointments).Error; err != nil {
		return utils.RenderError(c, err)
	}

	return c.JSON(fiber.Map{
		"appointments":  appointments,
		"start_of_week": startOfWeek.Format("2006-01-02"),
		"end_of_week":   endOfWeek.Format("2006-01-02"),
	})
}

// Complete marks one of the doctor's confirmed appointments as done once
// its time has elapsed.
func Complete(c *fiber.Ctx) error {
	doctor, err := currentDoctor(c)
	if err != nil {
		return utils.RenderError(c, err)
	}

	_, role, _ := middleware.CurrentUser(c)

	appointmentID, err := c.ParamsInt("id")
	if err != nil {
		return utils.RenderError(c, utils.Validation("invalid appointment ID"))
	}

	var appointment models.Appointment
	if err := db.DB.
		Where("id = ? AND doctor_id = ?", appointmentID, doctor.ID).
		First(&appointment).Error; err != nil {
		return utils.RenderError(c, utils.NotFound("Appointment"))
	}

	if err := appointment.CanTransition(role, models.StatusCompleted, time.Now(), 0); err != nil {
		return utils.RenderError(c, err)
	}

	result := db.DB.Model(&models.Appointment{}).
		Where("id = ? AND doctor_id = ? AND status = ?", appointmentID, doctor.ID, models.StatusConfirmed).
		Update("status", models.StatusCompleted)
	if result.Error != nil {
		return utils.RenderError(c, result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.RenderError(c, utils.Conflict("Appointment is no longer confirmed"))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Appointment marked as completed",
	})
}
