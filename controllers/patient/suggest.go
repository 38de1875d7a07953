package patient

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/clinicdesk/patient-booking/ai"
	"github.com/clinicdesk/patient-booking/models"
	"github.com/clinicdesk/patient-booking/utils"
)

var suggester = ai.NewClient()

// SuggestSpecialties asks the local text-generation service which
// specialties match the described symptoms. The call is best-effort:
// failure degrades to a warning and the full specialty list so the
// patient can still pick by hand.
func SuggestSpecialties(c *fiber.Ctx) error {
	var input struct {
		Symptoms string `json:"symptoms"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.RenderError(c, utils.Validation("cannot parse JSON"))
	}
	if strings.TrimSpace(input.Symptoms) == "" {
		return utils.RenderError(c, utils.Validation("please describe your symptoms"))
	}

	suggested, raw, err := suggester.SuggestSpecialties(c.UserContext(), input.Symptoms)
	if err != nil {
		return utils.RenderError(c, err)
	}

	return c.JSON(fiber.Map{
		"symptoms":    input.Symptoms,
		"suggested":   suggested,
		"explanation": raw,
		"specialties": models.Specialties(),
	})
}
