// Package ai wraps the local text-generation endpoint used for free-text
// specialty suggestions. The call is best-effort: when the endpoint is
// down the caller gets an ExternalServiceError and the booking flow
// carries on without suggestions.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/clinicdesk/patient-booking/models"
	"github.com/clinicdesk/patient-booking/utils"
)

type Client struct {
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

// NewClient reads AI_BASE_URL and AI_MODEL, defaulting to a local ollama
// instance with llama3.
func NewClient() *Client {
	baseURL := os.Getenv("AI_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	model := os.Getenv("AI_MODEL")
	if model == "" {
		model = "llama3"
	}
	return &Client{
		BaseURL:    baseURL,
		Model:      model,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// SuggestSpecialties asks the model which specialties fit the described
// symptoms. It returns the specialties it could match in the reply plus
// the raw reply text for display.
func (c *Client) SuggestSpecialties(ctx context.Context, symptoms string) ([]models.Specialty, string, error) {
	names := make([]string, 0, len(models.Specialties()))
	for _, s := range models.Specialties() {
		names = append(names, string(s))
	}

	prompt := fmt.Sprintf(
		"Given the following list of medical specialties: %s, and the patient's symptoms: '%s', suggest the most relevant specialties.",
		strings.Join(names, ", "), symptoms)

	body, err := json.Marshal(generateRequest{Model: c.Model, Prompt: prompt, Stream: false})
	if err != nil {
		return nil, "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, "", &utils.ExternalServiceError{Service: "AI suggestion service", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", &utils.ExternalServiceError{
			Service: "AI suggestion service",
			Err:     fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, "", &utils.ExternalServiceError{Service: "AI suggestion service", Err: err}
	}

	return matchSpecialties(out.Response), out.Response, nil
}

// matchSpecialties scans the model's free text for known specialty names.
// Matching ignores case and allows the camel-cased segments to appear as
// separate words, so "general practice" finds GeneralPractice. Word
// boundaries keep Urology from matching inside "neurology".
func matchSpecialties(text string) []models.Specialty {
	var matched []models.Specialty
	for _, s := range models.Specialties() {
		if specialtyPatterns[s].MatchString(text) {
			matched = append(matched, s)
		}
	}
	return matched
}

var specialtyPatterns = func() map[models.Specialty]*regexp.Regexp {
	segment := regexp.MustCompile(`[A-Z]+[a-z]*`)
	patterns := make(map[models.Specialty]*regexp.Regexp, len(models.Specialties()))
	for _, s := range models.Specialties() {
		words := segment.FindAllString(string(s), -1)
		patterns[s] = regexp.MustCompile(`(?i)\b` + strings.Join(words, `[\s-]*`) + `\b`)
	}
	return patterns
}()
