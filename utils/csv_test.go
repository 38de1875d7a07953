package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/patient-booking/models"
)

func TestAppointmentsCSV(t *testing.T) {
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	doctor := models.Doctor{User: models.User{Name: "Dr. Salma Hassan"}}

	appointments := []models.Appointment{
		{
			Doctor:   doctor,
			Patient:  &models.User{Name: "Omar Ali"},
			Date:     date,
			TimeSlot: "09:00",
			Status:   models.StatusConfirmed,
		},
		{
			Doctor:   doctor,
			Date:     date,
			TimeSlot: "09:30",
			Status:   models.StatusAvailable,
		},
	}

	data, err := AppointmentsCSV(appointments)
	require.NoError(t, err)

	want := "Date,Time,Doctor,Patient,Status\n" +
		"2024-06-01,09:00,Dr. Salma Hassan,Omar Ali,Confirmed\n" +
		"2024-06-01,09:30,Dr. Salma Hassan,,Available\n"
	assert.Equal(t, want, string(data))
}

func TestAppointmentsCSVEmpty(t *testing.T) {
	data, err := AppointmentsCSV(nil)
	require.NoError(t, err)
	assert.Equal(t, "Date,Time,Doctor,Patient,Status\n", string(data))
}

func TestAppointmentsCSVQuotesCommas(t *testing.T) {
	data, err := AppointmentsCSV([]models.Appointment{{
		Doctor:   models.Doctor{User: models.User{Name: "Hassan, Salma"}},
		Date:     time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		TimeSlot: "10:00",
		Status:   models.StatusPending,
	}})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Hassan, Salma"`)
}
