package doctor

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinicdesk/patient-booking/db"
	"github.com/clinicdesk/patient-booking/middleware"
	"github.com/clinicdesk/patient-booking/models"
	"github.com/clinicdesk/patient-booking/utils"
)

// currentDoctor resolves the calling user's doctor record. Every handler
// in this package is scoped through it so one doctor can never touch
// another's rows.
func currentDoctor(c *fiber.Ctx) (*models.Doctor, error) {
	userID, _, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, utils.Unauthorized("Doctor not found in context")
	}

	var doctor models.Doctor
	if err := db.DB.Preload("User").Where("user_id = ?", userID).First(&doctor).Error; err != nil {
		return nil, utils.NotFound("Doctor profile")
	}
	return &doctor, nil
}
