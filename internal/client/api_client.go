package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/akshat/campushub/internal/app/models"
)

// APIClient is the HTTP Fetcher used against a running server.
type APIClient struct {
	baseURL string
	http    *http.Client
}

// NewAPIClient creates a Fetcher for the server at baseURL, for example
// "http://localhost:8080".
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// envelope mirrors the server's success response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

func (c *APIClient) get(ctx context.Context, path string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if !env.Success {
		return fmt.Errorf("request to %s was not successful", path)
	}

	return json.Unmarshal(env.Data, dest)
}

// EventAttendance fetches the resolved roster for an event.
func (c *APIClient) EventAttendance(ctx context.Context, eventID int64) ([]models.AttendanceRecord, error) {
	var records []models.AttendanceRecord
	if err := c.get(ctx, fmt.Sprintf("/api/attendance/event/%d", eventID), &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Registrations fetches the full registration list.
func (c *APIClient) Registrations(ctx context.Context) ([]models.RegistrationInfo, error) {
	var infos []models.RegistrationInfo
	if err := c.get(ctx, "/api/registrations", &infos); err != nil {
		return nil, err
	}
	return infos, nil
}
