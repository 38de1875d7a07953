package models

import (
	"time"
)

type UserRole string

const (
	RolePatient UserRole = "Patient"
	RoleDoctor  UserRole = "Doctor"
	RoleAdmin   UserRole = "Admin"
)

// ParseRole maps a stored role string back to a UserRole.
func ParseRole(s string) (UserRole, bool) {
	switch UserRole(s) {
	case RolePatient, RoleDoctor, RoleAdmin:
		return UserRole(s), true
	}
	return "", false
}

// DashboardPath is where a freshly logged-in user of this role lands.
func (r UserRole) DashboardPath() string {
	switch r {
	case RoleAdmin:
		return "/admin/dashboard"
	case RoleDoctor:
		return "/doctor/dashboard"
	case RolePatient:
		return "/patient/dashboard"
	default:
		return "/auth/login"
	}
}

type User struct {
	ID            uint          `json:"id" gorm:"primaryKey"`
	Name          string        `json:"name"`
	Email         string        `json:"email" gorm:"unique"`
	Phone         string        `json:"phone,omitempty"`
	Password      string        `json:"password,omitempty"`
	Role          UserRole      `json:"role" gorm:"type:varchar(50)"`
	DoctorProfile *Doctor       `json:"doctor_profile,omitempty" gorm:"foreignKey:UserID"`
	Appointments  []Appointment `json:"appointments,omitempty" gorm:"foreignKey:PatientID"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
