package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusAvailable AppointmentStatus = "Available"
	StatusPending   AppointmentStatus = "Pending"
	StatusConfirmed AppointmentStatus = "Confirmed"
	StatusRejected  AppointmentStatus = "Rejected"
	StatusCancelled AppointmentStatus = "Cancelled"
	StatusCompleted AppointmentStatus = "Completed"
)

// ParseStatus maps a status string (case-sensitive, as stored) to the enum.
func ParseStatus(s string) (AppointmentStatus, bool) {
	switch AppointmentStatus(s) {
	case StatusAvailable, StatusPending, StatusConfirmed,
		StatusRejected, StatusCancelled, StatusCompleted:
		return AppointmentStatus(s), true
	}
	return "", false
}

// Terminal reports whether no further status change is allowed.
// Rating is a separate one-time sub-transition on Completed.
func (s AppointmentStatus) Terminal() bool {
	return s == StatusRejected || s == StatusCancelled || s == StatusCompleted
}

// InvalidTransitionError is returned when a status change is not in the
// transition table, or a precondition for it does not hold. The
// appointment is left unchanged.
type InvalidTransitionError struct {
	From   AppointmentStatus
	To     AppointmentStatus
	Reason string
}

func (e *InvalidTransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("cannot move appointment from %s to %s: %s", e.From, e.To, e.Reason)
	}
	return fmt.Sprintf("cannot move appointment from %s to %s", e.From, e.To)
}

// An Appointment is a single bookable (doctor, date, time) unit.
//
// A doctor-generated slot starts Pending with no patient and waits for
// admin approval to become Available. A patient booking an Available slot
// moves it back to Pending with the patient set; the two queues are told
// apart by PatientID. (DoctorID, Date, TimeSlot) is unique among
// non-cancelled rows; slot generation skips existing tuples.
type Appointment struct {
	gorm.Model
	DoctorID      uint              `json:"doctor_id"`
	Doctor        Doctor            `json:"doctor,omitempty" gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE"`
	PatientID     *uint             `json:"patient_id"`
	Patient       *User             `json:"patient,omitempty" gorm:"foreignKey:PatientID"`
	Date          time.Time         `json:"date" gorm:"type:date"`
	TimeSlot      string            `json:"time_slot" gorm:"type:varchar(5)"`
	Status        AppointmentStatus `json:"status" gorm:"type:varchar(20);default:'Pending'"`
	Rating        *int              `json:"rating,omitempty"`
	ReviewComment *string           `json:"review_comment,omitempty" gorm:"type:varchar(500)"`
	RatedAt       *time.Time        `json:"rated_at,omitempty"`
}

// ParseClock parses a "HH:MM" time-of-day into an offset from midnight.
func ParseClock(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, want HH:MM", s)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// FormatClock renders an offset from midnight as "HH:MM".
func FormatClock(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}

// wallClock re-expresses t's wall-clock reading in UTC. Date is a plain
// day column and TimeSlot a plain clock, so scheduled instants are always
// built in UTC; a now carrying the server's zone must pass through this
// before comparing against them.
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

// StartsAt combines Date and TimeSlot into the scheduled instant.
// A malformed TimeSlot yields midnight of Date.
func (a *Appointment) StartsAt() time.Time {
	day := time.Date(a.Date.Year(), a.Date.Month(), a.Date.Day(), 0, 0, 0, 0, time.UTC)
	clock, err := ParseClock(a.TimeSlot)
	if err != nil {
		return day
	}
	return day.Add(clock)
}

// IsPast reports whether the scheduled instant has elapsed.
func (a *Appointment) IsPast(now time.Time) bool {
	return !a.StartsAt().After(wallClock(now))
}

// Booked reports whether a patient holds this slot.
func (a *Appointment) Booked() bool {
	return a.PatientID != nil
}

// CanTransition checks the status change against the transition table for
// the acting role. now is the wall clock; lead is the minimum interval a
// patient must leave between cancelling and the slot itself.
//
// Patient cancellation targets StatusAvailable: a freed slot goes back on
// the board for rebooking. Admin cancellation targets StatusCancelled and
// is allowed from any non-terminal state.
func (a *Appointment) CanTransition(actor UserRole, to AppointmentStatus, now time.Time, lead time.Duration) error {
	fail := func(reason string) error {
		return &InvalidTransitionError{From: a.Status, To: to, Reason: reason}
	}

	switch to {
	case StatusPending:
		// Patient books an approved slot.
		if actor != RolePatient {
			return fail("only patients book slots")
		}
		if a.Status != StatusAvailable {
			return fail("slot is not available")
		}
		if a.Booked() {
			return fail("slot is already booked")
		}
		if a.IsPast(now) {
			return fail("slot time has passed")
		}
		return nil

	case StatusAvailable:
		// Admin approves an unbooked doctor slot, or a patient frees a
		// booking ahead of the cancellation lead time.
		switch actor {
		case RoleAdmin:
			if a.Status != StatusPending || a.Booked() {
				return fail("only unbooked pending slots can be approved")
			}
			return nil
		case RolePatient:
			if a.Status != StatusPending && a.Status != StatusConfirmed {
				return fail("appointment is not an active booking")
			}
			if !a.Booked() {
				return fail("appointment has no patient")
			}
			if wallClock(now).Add(lead).After(a.StartsAt()) {
				return fail(fmt.Sprintf("cancellations require at least %s notice", lead))
			}
			return nil
		}
		return fail("not allowed for this role")

	case StatusConfirmed:
		if actor != RoleAdmin {
			return fail("only admins confirm bookings")
		}
		if a.Status != StatusPending || !a.Booked() {
			return fail("only booked pending appointments can be confirmed")
		}
		return nil

	case StatusRejected:
		if actor != RoleAdmin {
			return fail("only admins reject")
		}
		if a.Status != StatusPending {
			return fail("only pending items can be rejected")
		}
		return nil

	case StatusCompleted:
		if actor != RoleDoctor && actor != RoleAdmin {
			return fail("only the doctor or an admin completes appointments")
		}
		if a.Status != StatusConfirmed {
			return fail("only confirmed appointments can be completed")
		}
		if !a.IsPast(now) {
			return fail("appointment time has not elapsed yet")
		}
		return nil

	case StatusCancelled:
		if actor != RoleAdmin {
			return fail("only admins cancel outright")
		}
		if a.Status.Terminal() {
			return fail("appointment is already closed")
		}
		return nil
	}

	return fail("unknown target status")
}

// MaxReviewLen bounds the free-text review comment.
const MaxReviewLen = 500

// Rate records a one-time post-completion rating on the struct. The
// caller persists the change; a conditional update on rated_at keeps a
// concurrent second attempt from overwriting the first.
func (a *Appointment) Rate(rating int, comment string, now time.Time) error {
	if a.Status != StatusCompleted {
		return &InvalidTransitionError{From: a.Status, To: a.Status, Reason: "only completed appointments can be rated"}
	}
	if a.RatedAt != nil {
		return &InvalidTransitionError{From: a.Status, To: a.Status, Reason: "appointment is already rated"}
	}
	if rating < 1 || rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}
	if len(comment) > MaxReviewLen {
		return fmt.Errorf("review comment must be at most %d characters", MaxReviewLen)
	}
	a.Rating = &rating
	if comment != "" {
		a.ReviewComment = &comment
	}
	a.RatedAt = &now
	return nil
}
