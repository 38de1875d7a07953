package models

import (
	"strings"

	"gorm.io/gorm"
)

type Specialty string

const (
	SpecialtyGeneralPractice Specialty = "GeneralPractice"
	SpecialtyCardiology      Specialty = "Cardiology"
	SpecialtyDermatology     Specialty = "Dermatology"
	SpecialtyNeurology       Specialty = "Neurology"
	SpecialtyPediatrics      Specialty = "Pediatrics"
	SpecialtyOrthopedics     Specialty = "Orthopedics"
	SpecialtyOphthalmology   Specialty = "Ophthalmology"
	SpecialtyENT             Specialty = "ENT"
	SpecialtyPsychiatry      Specialty = "Psychiatry"
	SpecialtyUrology         Specialty = "Urology"
	SpecialtyGynecology      Specialty = "Gynecology"
)

// Specialties lists every bookable specialty in display order.
func Specialties() []Specialty {
	return []Specialty{
		SpecialtyGeneralPractice,
		SpecialtyCardiology,
		SpecialtyDermatology,
		SpecialtyNeurology,
		SpecialtyPediatrics,
		SpecialtyOrthopedics,
		SpecialtyOphthalmology,
		SpecialtyENT,
		SpecialtyPsychiatry,
		SpecialtyUrology,
		SpecialtyGynecology,
	}
}

// ParseSpecialty matches a specialty name case-insensitively.
func ParseSpecialty(s string) (Specialty, bool) {
	for _, sp := range Specialties() {
		if strings.EqualFold(string(sp), s) {
			return sp, true
		}
	}
	return "", false
}

// DefaultDoctorPhoto is the reserved placeholder image; it is never
// deleted when a doctor's photo is replaced or removed.
const DefaultDoctorPhoto = "/images/default-doctor.png"

type Doctor struct {
	gorm.Model
	UserID       uint          `json:"user_id" gorm:"uniqueIndex"`
	User         User          `json:"user" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Specialty    Specialty     `json:"specialty" gorm:"type:varchar(100)"`
	Photo        string        `json:"photo"`
	ShortCV      string        `json:"short_cv" gorm:"type:varchar(1000)"`
	WorkingHours []WorkingHour `json:"working_hours,omitempty" gorm:"foreignKey:DoctorID"`
	Appointments []Appointment `json:"appointments,omitempty" gorm:"foreignKey:DoctorID"`
}

func (d *Doctor) BeforeCreate(tx *gorm.DB) error {
	if d.Photo == "" {
		d.Photo = DefaultDoctorPhoto
	}
	return nil
}
