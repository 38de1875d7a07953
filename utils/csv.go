package utils

import (
	"bytes"
	"encoding/csv"

	"github.com/clinicdesk/patient-booking/models"
)

// AppointmentsCSV renders appointments as a CSV export with one row per
// appointment. Doctor and Patient associations must be preloaded; an
// unbooked slot gets an empty patient column.
func AppointmentsCSV(appointments []models.Appointment) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Date", "Time", "Doctor", "Patient", "Status"}); err != nil {
		return nil, err
	}

	for _, a := range appointments {
		patient := ""
		if a.Patient != nil {
			patient = a.Patient.Name
		}
		record := []string{
			a.Date.Format("2006-01-02"),
			a.TimeSlot,
			a.Doctor.User.Name,
			patient,
			string(a.Status),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
