package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/kpiexport/gateway/internal/models"
	"github.com/kpiexport/gateway/pkg/config"
)

// GCalRepository is a minimal Google Calendar v3 client covering the two
// mutations the export needs. The bearer token travels as the
// access_token query parameter, matching the implicit-grant flow.
type GCalRepository struct {
	baseURL    string
	httpClient *http.Client
}

type createCalendarRequest struct {
	Summary  string `json:"summary"`
	Location string `json:"location"`
}

type createCalendarResponse struct {
	ID string `json:"id"`
}

// NewGCalRepository constructs the Google Calendar client.
func NewGCalRepository(cfg config.GoogleConfig) *GCalRepository {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &GCalRepository{
		baseURL:    cfg.CalendarBaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// CreateCalendar creates a new calendar and returns its identifier.
func (r *GCalRepository) CreateCalendar(ctx context.Context, token, summary, location string) (string, error) {
	u := fmt.Sprintf("%s/calendars/?access_token=%s", r.baseURL, url.QueryEscape(token))

	var res createCalendarResponse
	if err := r.postJSON(ctx, u, createCalendarRequest{Summary: summary, Location: location}, &res); err != nil {
		return "", err
	}
	if res.ID == "" {
		return "", fmt.Errorf("calendar create returned no id")
	}
	return res.ID, nil
}

// CreateEvent inserts one recurring event into the calendar. The created
// event resource is discarded, only success matters to the caller.
func (r *GCalRepository) CreateEvent(ctx context.Context, token, calendarID string, event models.CalendarEvent) error {
	u := fmt.Sprintf("%s/calendars/%s/events?access_token=%s",
		r.baseURL, url.PathEscape(calendarID), url.QueryEscape(token))

	return r.postJSON(ctx, u, event, nil)
}

func (r *GCalRepository) postJSON(ctx context.Context, rawURL string, body interface{}, dst interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := r.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("google calendar returned status %d: %s", res.StatusCode, string(snippet))
	}

	if dst != nil {
		if err := json.NewDecoder(res.Body).Decode(dst); err != nil {
			return fmt.Errorf("failed to decode google calendar response: %w", err)
		}
	}
	return nil
}
