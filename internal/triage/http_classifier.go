package triage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/garudaops/rescue_orchestration_system/internal/models"
	"github.com/sirupsen/logrus"
)

// HTTPClassifier calls an external severity-classification service.
type HTTPClassifier struct {
	url        string
	httpClient *http.Client
	logger     *logrus.Logger
}

type classifyResponse struct {
	Severity string `json:"severity"`
}

func NewHTTPClassifier(url string, timeout time.Duration, logger *logrus.Logger) *HTTPClassifier {
	return &HTTPClassifier{
		url:    url,
		logger: logger,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Classify posts the report to the classification service. Any transport
// failure or unrecognized verdict yields SeverityCritical so that a broken
// classifier can never downgrade a real emergency.
func (c *HTTPClassifier) Classify(ctx context.Context, report Report) (models.Severity, error) {
	log := c.logger.WithField("component", "triage")

	payload, err := json.Marshal(report)
	if err != nil {
		return models.SeverityCritical, fmt.Errorf("failed to marshal triage report: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBuffer(payload))
	if err != nil {
		return models.SeverityCritical, fmt.Errorf("failed to create triage request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return models.SeverityCritical, ctx.Err()
		}
		log.WithError(err).Warn("Triage service unreachable, defaulting to Critical")
		return models.SeverityCritical, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Warnf("Triage service returned status %d, defaulting to Critical", resp.StatusCode)
		return models.SeverityCritical, nil
	}

	var out classifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.WithError(err).Warn("Failed to decode triage response, defaulting to Critical")
		return models.SeverityCritical, nil
	}

	switch models.Severity(out.Severity) {
	case models.SeverityCritical, models.SeverityModerate, models.SeverityLow:
		return models.Severity(out.Severity), nil
	default:
		log.Warnf("Triage service returned unknown severity %q, defaulting to Critical", out.Severity)
		return models.SeverityCritical, nil
	}
}
