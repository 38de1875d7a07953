package doctor

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinicdesk/patient-booking/db"
	"github.com/clinicdesk/patient-booking/models"
	"github.com/clinicdesk/patient-booking/utils"
)

// ListWorkingHours returns the doctor's declared availability windows.
func ListWorkingHours(c *fiber.Ctx) error {
	doctor, err := currentDoctor(c)
	if err != nil {
		return utils.RenderError(c, err)
	}

	var hours []models.WorkingHour
	if err := db.DB.
		Where("doctor_id = ?", doctor.ID).
		Order("day_of_week asc").
		Find(&hours).Error; err != nil {
		return utils.RenderError(c, err)
	}

	return c.JSON(fiber.Map{
		"working_hours": hours,
	})
}

// CreateWorkingHour adds an availability window for one weekday.
func CreateWorkingHour(c *fiber.Ctx) error {
	doctor, err := currentDoctor(c)
	if err != nil {
		return utils.RenderError(c, err)
	}

	var hour models.WorkingHour
	if err := c.BodyParser(&hour); err != nil {
		return utils.RenderError(c, utils.Validation("cannot parse JSON"))
	}

	if err := validateWorkingHour(&hour); err != nil {
		return utils.RenderError(c, err)
	}

	hour.ID = 0
	hour.DoctorID = doctor.ID

	if err := db.DB.Create(&hour).Error; err != nil {
		return utils.RenderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(hour)
}

// UpdateWorkingHour edits one of the doctor's own windows.
func UpdateWorkingHour(c *fiber.Ctx) error {
	doctor, err := currentDoctor(c)
	if err != nil {
		return utils.RenderError(c, err)
	}

	hourID, err := c.ParamsInt("id")
	if err != nil {
		return utils.RenderError(c, utils.Validation("invalid working hour ID"))
	}

	var existing models.WorkingHour
	if err := db.DB.
		Where("id = ? AND doctor_id = ?", hourID, doctor.ID).
		First(&existing).Error; err != nil {
		return utils.RenderError(c, utils.NotFound("Working hour"))
	}

	var input models.WorkingHour
	if err := c.BodyParser(&input); err != nil {
		return utils.RenderError(c, utils.Validation("cannot parse JSON"))
	}

	if err := validateWorkingHour(&input); err != nil {
		return utils.RenderError(c, err)
	}

	existing.DayOfWeek = input.DayOfWeek
	existing.StartTime = input.StartTime
	existing.EndTime = input.EndTime

	if err := db.DB.Save(&existing).Error; err != nil {
		return utils.RenderError(c, err)
	}

	return c.JSON(existing)
}

// DeleteWorkingHour removes one of the doctor's own windows.
func DeleteWorkingHour(c *fiber.Ctx) error {
	doctor, err := currentDoctor(c)
	if err != nil {
		return utils.RenderError(c, err)
	}

	hourID, err := c.ParamsInt("id")
	if err != nil {
		return utils.RenderError(c, utils.Validation("invalid working hour ID"))
	}

	result := db.DB.
		Where("id = ? AND doctor_id = ?", hourID, doctor.ID).
		Delete(&models.WorkingHour{})
	if result.Error != nil {
		return utils.RenderError(c, result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.RenderError(c, utils.NotFound("Working hour"))
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func validateWorkingHour(hour *models.WorkingHour) error {
	if hour.DayOfWeek < models.Sunday || hour.DayOfWeek > models.Saturday {
		return utils.Validation("day_of_week must be between 0 (Sunday) and 6 (Saturday)")
	}
	start, err := models.ParseClock(hour.StartTime)
	if err != nil {
		return utils.Validation("invalid start time: %v", err)
	}
	end, err := models.ParseClock(hour.EndTime)
	if err != nil {
		return utils.Validation("invalid end time: %v", err)
	}
	if end <= start {
		return utils.Validation("end time must be after start time")
	}
	return nil
}
