package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/kpiexport/gateway/internal/models"
	"github.com/kpiexport/gateway/pkg/config"
)

// RozkladRepository talks to the schedule backend that serves the group
// list and per-group schedules.
type RozkladRepository struct {
	baseURL    string
	httpClient *http.Client
}

// NewRozkladRepository constructs the backend client.
func NewRozkladRepository(cfg config.BackendConfig) *RozkladRepository {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &RozkladRepository{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Groups returns the list of group names.
func (r *RozkladRepository) Groups(ctx context.Context) ([]string, error) {
	var groups []string
	if err := r.getJSON(ctx, r.baseURL+"/groups", &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// GroupSchedule returns the schedule of one group. A non-empty lastName
// selects per-student electives where the group supports them.
func (r *RozkladRepository) GroupSchedule(ctx context.Context, groupName, lastName string) (*models.GroupSchedule, error) {
	u := fmt.Sprintf("%s/groups/%s", r.baseURL, url.PathEscape(groupName))
	if lastName != "" {
		u += "?lastName=" + url.QueryEscape(lastName)
	}

	var schedule models.GroupSchedule
	if err := r.getJSON(ctx, u, &schedule); err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *RozkladRepository) getJSON(ctx context.Context, rawURL string, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}

	res, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code %d when fetching %s", res.StatusCode, rawURL)
	}

	if err := json.NewDecoder(res.Body).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", rawURL, err)
	}
	return nil
}
