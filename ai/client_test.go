package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/patient-booking/models"
	"github.com/clinicdesk/patient-booking/utils"
)

func testClient(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		Model:      "llama3",
		HTTPClient: &http.Client{Timeout: time.Second},
	}
}

func TestSuggestSpecialties(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3", req["model"])
		assert.Equal(t, false, req["stream"])
		assert.Contains(t, req["prompt"], "chest pain")

		json.NewEncoder(w).Encode(map[string]string{
			"response": "Based on the symptoms, Cardiology is the most relevant, possibly also General Practice.",
		})
	}))
	defer server.Close()

	suggested, raw, err := testClient(server.URL).SuggestSpecialties(context.Background(), "chest pain and shortness of breath")
	require.NoError(t, err)
	assert.Contains(t, raw, "Cardiology")
	assert.Contains(t, suggested, models.SpecialtyCardiology)
}

func TestSuggestSpecialtiesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, _, err := testClient(server.URL).SuggestSpecialties(context.Background(), "headache")
	require.Error(t, err)
	var external *utils.ExternalServiceError
	assert.ErrorAs(t, err, &external)
}

func TestSuggestSpecialtiesUnreachable(t *testing.T) {
	// Nothing listens here
	_, _, err := testClient("http://127.0.0.1:1").SuggestSpecialties(context.Background(), "headache")
	require.Error(t, err)
	var external *utils.ExternalServiceError
	assert.ErrorAs(t, err, &external)
}

func TestMatchSpecialties(t *testing.T) {
	matched := matchSpecialties("I would suggest DERMATOLOGY or neurology for this.")
	assert.Equal(t, []models.Specialty{models.SpecialtyDermatology, models.SpecialtyNeurology}, matched)

	// Multi-word specialties come back from the model with spaces
	matched = matchSpecialties("You should see a general practice physician first.")
	assert.Equal(t, []models.Specialty{models.SpecialtyGeneralPractice}, matched)

	// Whole words only: neurology is not a urology match, and short
	// names don't fire inside longer words
	assert.Equal(t, []models.Specialty{models.SpecialtyNeurology}, matchSpecialties("neurology"))
	assert.Empty(t, matchSpecialties("book an appointment for treatment"))

	assert.Empty(t, matchSpecialties("no medical terms here"))
}
