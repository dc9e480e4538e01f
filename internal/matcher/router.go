package matcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/garudaops/rescue_orchestration_system/internal/models"
)

// Router is the optional routing collaborator. When absent the matcher
// degrades to straight-line distance.
type Router interface {
	DistanceAndETA(ctx context.Context, from, to models.Location) (meters float64, eta time.Duration, err error)
}

// HTTPRouter queries an external routing service for travel distance and ETA.
type HTTPRouter struct {
	url        string
	httpClient *http.Client
}

type routeRequest struct {
	From models.Location `json:"from"`
	To   models.Location `json:"to"`
}

type routeResponse struct {
	DistanceMeters float64 `json:"distance_meters"`
	ETAMinutes     float64 `json:"eta_minutes"`
}

func NewHTTPRouter(url string, timeout time.Duration) *HTTPRouter {
	return &HTTPRouter{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (r *HTTPRouter) DistanceAndETA(ctx context.Context, from, to models.Location) (float64, time.Duration, error) {
	payload, err := json.Marshal(routeRequest{From: from, To: to})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to marshal route request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewBuffer(payload))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to create route request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("routing service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, 0, fmt.Errorf("routing service returned status %d", resp.StatusCode)
	}

	var out routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, 0, fmt.Errorf("failed to decode route response: %w", err)
	}
	return out.DistanceMeters, time.Duration(out.ETAMinutes * float64(time.Minute)), nil
}
