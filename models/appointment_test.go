package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 5, 30, 12, 0, 0, 0, time.UTC)

func slot(status AppointmentStatus, patientID *uint, date time.Time, timeSlot string) *Appointment {
	return &Appointment{
		DoctorID:  1,
		PatientID: patientID,
		Date:      date,
		TimeSlot:  timeSlot,
		Status:    status,
	}
}

func patient() *uint {
	id := uint(7)
	return &id
}

func TestParseClock(t *testing.T) {
	d, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 9*time.Hour+30*time.Minute, d)

	_, err = ParseClock("9am")
	assert.Error(t, err)

	_, err = ParseClock("25:00")
	assert.Error(t, err)
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "09:00", FormatClock(9*time.Hour))
	assert.Equal(t, "14:30", FormatClock(14*time.Hour+30*time.Minute))
	assert.Equal(t, "00:00", FormatClock(0))
}

func TestStartsAt(t *testing.T) {
	a := slot(StatusAvailable, nil, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), "09:30")
	assert.Equal(t, time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC), a.StartsAt())

	assert.False(t, a.IsPast(now))
	assert.True(t, a.IsPast(time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)))
}

func TestStartsAtIgnoresServerZone(t *testing.T) {
	// Date and TimeSlot are plain calendar values; the scheduled instant
	// and every comparison against now must read the same on a server in
	// any zone.
	a := slot(StatusConfirmed, patient(), time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), "14:00")

	hst := time.FixedZone("HST", -10*60*60)
	aest := time.FixedZone("AEST", 10*60*60)

	// 13:00 wall clock anywhere is before the 14:00 slot
	assert.False(t, a.IsPast(time.Date(2024, 6, 1, 13, 0, 0, 0, hst)))
	assert.False(t, a.IsPast(time.Date(2024, 6, 1, 13, 0, 0, 0, aest)))
	// 15:00 wall clock anywhere is after it
	assert.True(t, a.IsPast(time.Date(2024, 6, 1, 15, 0, 0, 0, hst)))
	assert.True(t, a.IsPast(time.Date(2024, 6, 1, 15, 0, 0, 0, aest)))

	// Lead-time check: 25h of wall-clock notice clears a 24h lead
	// regardless of the zone now is expressed in
	dayBefore := time.Date(2024, 5, 31, 13, 0, 0, 0, aest)
	assert.NoError(t, a.CanTransition(RolePatient, StatusAvailable, dayBefore, 24*time.Hour))
	tooLate := time.Date(2024, 5, 31, 15, 0, 0, 0, hst)
	assert.Error(t, a.CanTransition(RolePatient, StatusAvailable, tooLate, 24*time.Hour))
}

func TestPatientBooksAvailableSlot(t *testing.T) {
	tomorrow := now.AddDate(0, 0, 1)

	a := slot(StatusAvailable, nil, tomorrow, "09:00")
	assert.NoError(t, a.CanTransition(RolePatient, StatusPending, now, 0))

	// Past slot
	past := slot(StatusAvailable, nil, now.AddDate(0, 0, -1), "09:00")
	assert.Error(t, past.CanTransition(RolePatient, StatusPending, now, 0))

	// Already booked
	booked := slot(StatusAvailable, patient(), tomorrow, "09:00")
	assert.Error(t, booked.CanTransition(RolePatient, StatusPending, now, 0))

	// Wrong source state
	pending := slot(StatusPending, nil, tomorrow, "09:00")
	assert.Error(t, pending.CanTransition(RolePatient, StatusPending, now, 0))

	// Doctors and admins don't book
	assert.Error(t, a.CanTransition(RoleDoctor, StatusPending, now, 0))
	assert.Error(t, a.CanTransition(RoleAdmin, StatusPending, now, 0))
}

func TestAdminApprovesAndRejectsSlots(t *testing.T) {
	tomorrow := now.AddDate(0, 0, 1)

	unbooked := slot(StatusPending, nil, tomorrow, "10:00")
	assert.NoError(t, unbooked.CanTransition(RoleAdmin, StatusAvailable, now, 0))
	assert.NoError(t, unbooked.CanTransition(RoleAdmin, StatusRejected, now, 0))

	// A booked pending appointment is a booking, not an approvable slot
	booked := slot(StatusPending, patient(), tomorrow, "10:00")
	assert.Error(t, booked.CanTransition(RoleAdmin, StatusAvailable, now, 0))

	// Patients and doctors can't approve
	assert.Error(t, unbooked.CanTransition(RoleDoctor, StatusAvailable, now, 0))
}

func TestAdminConfirmsBookings(t *testing.T) {
	tomorrow := now.AddDate(0, 0, 1)

	booked := slot(StatusPending, patient(), tomorrow, "10:00")
	assert.NoError(t, booked.CanTransition(RoleAdmin, StatusConfirmed, now, 0))
	assert.NoError(t, booked.CanTransition(RoleAdmin, StatusRejected, now, 0))

	// Never straight to Completed from Pending
	assert.Error(t, booked.CanTransition(RoleAdmin, StatusCompleted, now, 0))

	// No patient, nothing to confirm
	unbooked := slot(StatusPending, nil, tomorrow, "10:00")
	assert.Error(t, unbooked.CanTransition(RoleAdmin, StatusConfirmed, now, 0))

	// Only pending confirms
	confirmed := slot(StatusConfirmed, patient(), tomorrow, "10:00")
	assert.Error(t, confirmed.CanTransition(RoleAdmin, StatusConfirmed, now, 0))
}

func TestPatientCancellationLeadTime(t *testing.T) {
	lead := 24 * time.Hour

	// 48h ahead: fine
	farOut := slot(StatusConfirmed, patient(), now.AddDate(0, 0, 2), "12:00")
	assert.NoError(t, farOut.CanTransition(RolePatient, StatusAvailable, now, lead))

	// 2h ahead: inside the lead window
	soon := slot(StatusConfirmed, patient(), now, "14:00")
	err := soon.CanTransition(RolePatient, StatusAvailable, now, lead)
	require.Error(t, err)
	var transition *InvalidTransitionError
	assert.ErrorAs(t, err, &transition)

	// Booked pending appointments can be freed too
	pendingBooked := slot(StatusPending, patient(), now.AddDate(0, 0, 2), "12:00")
	assert.NoError(t, pendingBooked.CanTransition(RolePatient, StatusAvailable, now, lead))

	// Nothing to free without a patient
	unbooked := slot(StatusConfirmed, nil, now.AddDate(0, 0, 2), "12:00")
	assert.Error(t, unbooked.CanTransition(RolePatient, StatusAvailable, now, lead))
}

func TestCompletionRequiresElapsedConfirmed(t *testing.T) {
	past := slot(StatusConfirmed, patient(), now.AddDate(0, 0, -1), "09:00")
	assert.NoError(t, past.CanTransition(RoleDoctor, StatusCompleted, now, 0))
	assert.NoError(t, past.CanTransition(RoleAdmin, StatusCompleted, now, 0))
	assert.Error(t, past.CanTransition(RolePatient, StatusCompleted, now, 0))

	future := slot(StatusConfirmed, patient(), now.AddDate(0, 0, 1), "09:00")
	assert.Error(t, future.CanTransition(RoleDoctor, StatusCompleted, now, 0))

	pending := slot(StatusPending, patient(), now.AddDate(0, 0, -1), "09:00")
	assert.Error(t, pending.CanTransition(RoleDoctor, StatusCompleted, now, 0))
}

func TestAdminCancelsAnyNonTerminal(t *testing.T) {
	tomorrow := now.AddDate(0, 0, 1)

	for _, status := range []AppointmentStatus{StatusAvailable, StatusPending, StatusConfirmed} {
		a := slot(status, patient(), tomorrow, "09:00")
		assert.NoError(t, a.CanTransition(RoleAdmin, StatusCancelled, now, 0), "from %s", status)
	}

	for _, status := range []AppointmentStatus{StatusRejected, StatusCancelled, StatusCompleted} {
		a := slot(status, patient(), tomorrow, "09:00")
		assert.Error(t, a.CanTransition(RoleAdmin, StatusCancelled, now, 0), "from %s", status)
	}

	// Cancelling outright is an admin move
	a := slot(StatusConfirmed, patient(), tomorrow, "09:00")
	assert.Error(t, a.CanTransition(RolePatient, StatusCancelled, now, 0))
	assert.Error(t, a.CanTransition(RoleDoctor, StatusCancelled, now, 0))
}

func TestTerminalStates(t *testing.T) {
	assert.True(t, StatusRejected.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.True(t, StatusCompleted.Terminal())
	assert.False(t, StatusAvailable.Terminal())
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusConfirmed.Terminal())
}

func TestRateOnce(t *testing.T) {
	a := slot(StatusCompleted, patient(), now.AddDate(0, 0, -1), "09:00")

	require.NoError(t, a.Rate(5, "Great", now))
	require.NotNil(t, a.Rating)
	assert.Equal(t, 5, *a.Rating)
	require.NotNil(t, a.ReviewComment)
	assert.Equal(t, "Great", *a.ReviewComment)
	require.NotNil(t, a.RatedAt)

	// Second attempt fails and leaves the original rating alone
	err := a.Rate(1, "changed my mind", now)
	require.Error(t, err)
	assert.Equal(t, 5, *a.Rating)
	assert.Equal(t, "Great", *a.ReviewComment)
}

func TestRateValidation(t *testing.T) {
	a := slot(StatusCompleted, patient(), now.AddDate(0, 0, -1), "09:00")

	assert.Error(t, a.Rate(0, "", now))
	assert.Error(t, a.Rate(6, "", now))
	assert.Nil(t, a.Rating)

	long := make([]byte, MaxReviewLen+1)
	for i := range long {
		long[i] = 'x'
	}
	assert.Error(t, a.Rate(4, string(long), now))
	assert.Nil(t, a.Rating)

	// No comment is fine
	assert.NoError(t, a.Rate(3, "", now))
	assert.Nil(t, a.ReviewComment)

	// Only completed appointments can be rated
	confirmed := slot(StatusConfirmed, patient(), now.AddDate(0, 0, -1), "09:00")
	assert.Error(t, confirmed.Rate(4, "", now))
}

func TestParseStatus(t *testing.T) {
	s, ok := ParseStatus("Confirmed")
	assert.True(t, ok)
	assert.Equal(t, StatusConfirmed, s)

	_, ok = ParseStatus("confirmed")
	assert.False(t, ok)

	_, ok = ParseStatus("Done")
	assert.False(t, ok)
}
