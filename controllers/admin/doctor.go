package admin

import (
	"log"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/clinicdesk/patient-booking/db"
	"github.com/clinicdesk/patient-booking/models"
	"github.com/clinicdesk/patient-booking/utils"
)

// ListDoctors returns every doctor with their account details.
func ListDoctors(c *fiber.Ctx) error {
	var doctors []models.Doctor
	if err := db.DB.Preload("User").Find(&doctors).Error; err != nil {
		return utils.RenderError(c, err)
	}

	for i := range doctors {
		doctors[i].User.Password = ""
	}

	return c.JSON(fiber.Map{
		"doctors":     doctors,
		"specialties": models.Specialties(),
	})
}

// CreateDoctor provisions a doctor account: a User with the Doctor role
// plus the doctor profile, with an optional profile photo in the same
// multipart form.
func CreateDoctor(c *fiber.Ctx) error {
	name := c.FormValue("name")
	email := c.FormValue("email")
	password := c.FormValue("password")
	shortCV := c.FormValue("short_cv")

	if name == "" || email == "" || password == "" {
		return utils.RenderError(c, utils.Validation("name, email and password are required"))
	}

	specialty, ok := models.ParseSpecialty(c.FormValue("specialty"))
	if !ok {
		return utils.RenderError(c, utils.Validation("invalid specialty: %s", c.FormValue("specialty")))
	}

	var existing models.User
	if db.DB.Where("email = ?", email).First(&existing).RowsAffected > 0 {
		return utils.RenderError(c, utils.Conflict("Email already exists"))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return utils.RenderError(c, err)
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     models.RoleDoctor,
	}
	doctor := models.Doctor{
		Specialty: specialty,
		ShortCV:   shortCV,
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		doctor.UserID = user.ID
		if photo, err := savePhoto(c, user.ID); err != nil {
			return err
		} else if photo != "" {
			doctor.Photo = photo
		}
		return tx.Create(&doctor).Error
	})
	if err != nil {
		return utils.RenderError(c, err)
	}

	user.Password = ""
	doctor.User = user

	return c.Status(fiber.StatusCreated).JSON(doctor)
}

// UpdateDoctor edits a doctor's account, specialty, CV, password and
// photo. A replaced photo file is deleted unless it is the default image.
func UpdateDoctor(c *fiber.Ctx) error {
	doctorID, err := c.ParamsInt("id")
	if err != nil {
		return utils.RenderError(c, utils.Validation("invalid doctor ID"))
	}

	var doctor models.Doctor
	if err := db.DB.Preload("User").First(&doctor, doctorID).Error; err != nil {
		return utils.RenderError(c, utils.NotFound("Doctor"))
	}

	if name := c.FormValue("name"); name != "" {
		doctor.User.Name = name
	}
	if email := c.FormValue("email"); email != "" {
		doctor.User.Email = email
	}
	if password := c.FormValue("password"); password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return utils.RenderError(c, err)
		}
		doctor.User.Password = string(hashed)
	}
	if s := c.FormValue("specialty"); s != "" {
		specialty, ok := models.ParseSpecialty(s)
		if !ok {
			return utils.RenderError(c, utils.Validation("invalid specialty: %s", s))
		}
		doctor.Specialty = specialty
	}
	if cv := c.FormValue("short_cv"); cv != "" {
		doctor.ShortCV = cv
	}

	oldPhoto := doctor.Photo
	if photo, err := savePhoto(c, doctor.UserID); err != nil {
		return utils.RenderError(c, err)
	} else if photo != "" {
		doctor.Photo = photo
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&doctor.User).Error; err != nil {
			return err
		}
		return tx.Save(&doctor).Error
	})
	if err != nil {
		return utils.RenderError(c, err)
	}

	if doctor.Photo != oldPhoto {
		if err := utils.RemovePhoto(oldPhoto); err != nil {
			log.Printf("Warning: failed to remove old photo %s: %v", oldPhoto, err)
		}
	}

	doctor.User.Password = ""
	return c.JSON(doctor)
}

// DeleteDoctor removes the doctor's user account; the doctor profile and
// its appointments go with it via the cascade. The photo file is removed
// from disk unless it is the default image.
func DeleteDoctor(c *fiber.Ctx) error {
	doctorID, err := c.ParamsInt("id")
	if err != nil {
		return utils.RenderError(c, utils.Validation("invalid doctor ID"))
	}

	var doctor models.Doctor
	if err := db.DB.Preload("User").First(&doctor, doctorID).Error; err != nil {
		return utils.RenderError(c, utils.NotFound("Doctor"))
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("doctor_id = ?", doctor.ID).Delete(&models.Appointment{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("doctor_id = ?", doctor.ID).Delete(&models.WorkingHour{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Delete(&doctor).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, doctor.UserID).Error
	})
	if err != nil {
		return utils.RenderError(c, err)
	}

	if err := utils.RemovePhoto(doctor.Photo); err != nil {
		log.Printf("Warning: failed to remove photo %s: %v", doctor.Photo, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Doctor deleted",
	})
}

// savePhoto stores an uploaded "photo" form file under the doctor photo
// directory keyed by user id. Returns "" when the form has no photo.
func savePhoto(c *fiber.Ctx, userID uint) (string, error) {
	file, err := c.FormFile("photo")
	if err != nil {
		return "", nil
	}
	return storePhotoFile(c, file, userID)
}

func storePhotoFile(c *fiber.Ctx, file *multipart.FileHeader, userID uint) (string, error) {
	if err := utils.EnsurePhotoDir(); err != nil {
		return "", err
	}
	diskPath, urlPath := utils.DoctorPhotoPath(userID, file.Filename)
	if err := c.SaveFile(file, diskPath); err != nil {
		return "", err
	}
	return urlPath, nil
}
