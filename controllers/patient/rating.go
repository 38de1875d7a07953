package patient

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/clinicdesk/patient-booking/db"
	"github.com/clinicdesk/patient-booking/middleware"
	"github.com/clinicdesk/patient-booking/models"
	"github.com/clinicdesk/patient-booking/utils"
)

// Rate records a one-time rating on the patient's own completed
// appointment. The rated_at IS NULL guard in the UPDATE keeps a second
// attempt from overwriting the first.
func Rate(c *fiber.Ctx) error {
	patientID, _, ok := middleware.CurrentUser(c)
	if !ok {
		return utils.RenderError(c, utils.Unauthorized("Patient not found in context"))
	}

	appointmentID, err := c.ParamsInt("id")
	if err != nil {
		return utils.RenderError(c, utils.Validation("invalid appointment ID"))
	}

	var input struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.RenderError(c, utils.Validation("cannot parse JSON"))
	}

	var appointment models.Appointment
	if err := db.DB.
		Where("id = ? AND patient_id = ?", appointmentID, patientID).
		First(&appointment).Error; err != nil {
		return utils.RenderError(c, utils.NotFound("Appointment"))
	}

	now := time.Now()
	if err := appointment.Rate(input.Rating, input.Comment, now); err != nil {
		if _, ok := err.(*models.InvalidTransitionError); ok {
			return utils.RenderError(c, err)
		}
		return utils.RenderError(c, utils.Validation("%v", err))
	}

	result := db.DB.Model(&models.Appointment{}).
		Where("id = ? AND patient_id = ? AND status = ? AND rated_at IS NULL",
			appointmentID, patientID, models.StatusCompleted).
		Updates(map[string]interface{}{
			"rating":         appointment.Rating,
			"review_comment": appointment.ReviewComment,
			"rated_at":       appointment.RatedAt,
		})
	if result.Error != nil {
		return utils.RenderError(c, result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.RenderError(c, utils.Conflict("Appointment is already rated"))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Thank you for your feedback",
		"rating":  input.Rating,
	})
}
