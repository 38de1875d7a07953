package patient

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/clinicdesk/patient-booking/db"
	"github.com/clinicdesk/patient-booking/models"
	"github.com/clinicdesk/patient-booking/utils"
)

// ListSpecialties returns the specialty categories for the booking flow.
func ListSpecialties(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"specialties": models.Specialties(),
	})
}

// DoctorsBySpecialty lists doctors practicing the given specialty.
func DoctorsBySpecialty(c *fiber.Ctx) error {
	specialty, ok := models.ParseSpecialty(c.Query("specialty"))
	if !ok {
		return utils.RenderError(c, utils.Validation("invalid specialty: %s", c.Query("specialty")))
	}

	var doctors []models.Doctor
	if err := db.DB.Preload("User").Where("specialty = ?", specialty).Find(&doctors).Error; err != nil {
		return utils.RenderError(c, err)
	}

	results := make([]fiber.Map, 0, len(doctors))
	for _, d := range doctors {
		photo := d.Photo
		if photo == "" {
			photo = models.DefaultDoctorPhoto
		}
		results = append(results, fiber.Map{
			"doctor_id": d.ID,
			"name":      d.User.Name,
			"short_cv":  d.ShortCV,
			"photo":     photo,
			"specialty": d.Specialty,
		})
	}

	return c.JSON(fiber.Map{
		"doctors": results,
	})
}

// AvailableSlots lists a doctor's open slots for one day.
func AvailableSlots(c *fiber.Ctx) error {
	doctorID, err := c.ParamsInt("id")
	if err != nil || doctorID <= 0 {
		return utils.RenderError(c, utils.Validation("invalid doctor ID"))
	}

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		return utils.RenderError(c, utils.Validation("invalid date format, want YYYY-MM-DD"))
	}
	if utils.CalendarDay(date).Before(utils.CalendarDay(time.Now())) {
		return utils.RenderError(c, utils.Validation("cannot book appointments in the past"))
	}

	var slots []models.Appointment
	if err := db.DB.
		Where("doctor_id = ? AND date = ? AND status = ?", doctorID, utils.CalendarDay(date), models.StatusAvailable).
		Order("time_slot asc").
		Find(&slots).Error; err != nil {
		return utils.RenderError(c, err)
	}

	results := make([]fiber.Map, 0, len(slots))
	for _, s := range slots {
		results = append(results, fiber.Map{
			"appointment_id": s.ID,
			"time_slot":      s.TimeSlot,
			"date":           s.Date.Format("2006-01-02"),
		})
	}

	return c.JSON(fiber.Map{
		"slots": results,
	})
}
