package doctor

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/clinicdesk/patient-booking/db"
	"github.com/clinicdesk/patient-booking/models"
	"github.com/clinicdesk/patient-booking/utils"
)

// GenerateSlots expands a date and time range into 30-minute slots for
// the calling doctor. Times already taken by a non-cancelled appointment
// are skipped and counted; new slots start Pending (unbooked) until an
// admin approves them. Validation failure persists nothing.
func GenerateSlots(c *fiber.Ctx) error {
	doctor, err := currentDoctor(c)
	if err != nil {
		return utils.RenderError(c, err)
	}

	var input struct {
		Date      string `json:"date"`       // YYYY-MM-DD
		StartTime string `json:"start_time"` // HH:MM
		EndTime   string `json:"end_time"`   // HH:MM
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.RenderError(c, utils.Validation("cannot parse JSON"))
	}

	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		return utils.RenderError(c, utils.Validation("invalid date format, want YYYY-MM-DD"))
	}

	times, err := utils.SlotTimes(date, input.StartTime, input.EndTime, time.Now())
	if err != nil {
		return utils.RenderError(c, err)
	}

	// Working hours are a hint only; generation proceeds with a warning
	withinHours, err := utils.WithinWorkingHours(doctor.ID, date, input.StartTime, input.EndTime)
	if err != nil {
		return utils.RenderError(c, err)
	}

	day := utils.CalendarDay(date)
	var created []models.Appointment
	skipped := 0

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		for _, slot := range times {
			var count int64
			if err := tx.Model(&models.Appointment{}).
				Where("doctor_id = ? AND date = ? AND time_slot = ? AND status <> ?",
					doctor.ID, day, slot, models.StatusCancelled).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				skipped++
				continue
			}
			created = append(created, models.Appointment{
				DoctorID: doctor.ID,
				Date:     day,
				TimeSlot: slot,
				Status:   models.StatusPending,
			})
		}
		if len(created) == 0 {
			return nil
		}
		return tx.Create(&created).Error
	})
	if err != nil {
		return utils.RenderError(c, err)
	}

	message := "No new slots added (all selected slots already exist)."
	if len(created) > 0 {
		message = "Appointment slots added; they become bookable once approved."
	}

	response := fiber.Map{
		"message": message,
		"created": created,
		"count":   len(created),
		"skipped": skipped,
	}
	if !withinHours {
		response["warning"] = "The selected range is outside your declared working hours."
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

// DeleteSlot hard-deletes one of the doctor's own still-unbooked slots.
// Booked appointments are never deleted, only cancelled.
func DeleteSlot(c *fiber.Ctx) error {
	doctor, err := currentDoctor(c)
	if err != nil {
		return utils.RenderError(c, err)
	}

	slotID, err := c.ParamsInt("id")
	if err != nil {
		return utils.RenderError(c, utils.Validation("invalid appointment ID"))
	}

	result := db.DB.Unscoped().
		Where("id = ? AND doctor_id = ? AND patient_id IS NULL AND status IN ?",
			slotID, doctor.ID,
			[]models.AppointmentStatus{models.StatusAvailable, models.StatusPending}).
		Delete(&models.Appointment{})
	if result.Error != nil {
		return utils.RenderError(c, result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.RenderError(c, utils.NotFound("Deletable slot"))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Appointment deleted",
	})
}
