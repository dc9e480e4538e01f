package triage

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garudaops/rescue_orchestration_system/internal/models"
)

func TestKeywordClassifier(t *testing.T) {
	c := NewKeywordClassifier()
	ctx := context.Background()

	tests := []struct {
		name     string
		report   Report
		expected models.Severity
	}{
		{
			name:     "critical keyword in description",
			report:   Report{Description: "Driver is unconscious after the crash"},
			expected: models.SeverityCritical,
		},
		{
			name:     "critical keyword in injuries",
			report:   Report{Description: "two-car crash", Injuries: "severe bleeding from the leg"},
			expected: models.SeverityCritical,
		},
		{
			name:     "moderate keyword",
			report:   Report{Description: "cyclist fell", Injuries: "possible fracture"},
			expected: models.SeverityModerate,
		},
		{
			name:     "no keyword",
			report:   Report{Description: "minor scrape in the parking lot"},
			expected: models.SeverityLow,
		},
		{
			name:     "empty report fails safe",
			report:   Report{},
			expected: models.SeverityCritical,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			severity, err := c.Classify(ctx, tt.report)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, severity)
		})
	}
}

func TestKeywordClassifier_CancelledContext(t *testing.T) {
	c := NewKeywordClassifier()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	severity, err := c.Classify(ctx, Report{Description: "minor scrape"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, models.SeverityCritical, severity)
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	return logger
}

func TestHTTPClassifier_UsesServiceVerdict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"severity": "Moderate"}`))
	}))
	defer srv.Close()

	c := NewHTTPClassifier(srv.URL, 2*time.Second, testLogger())
	severity, err := c.Classify(context.Background(), Report{Description: "collision"})
	require.NoError(t, err)
	assert.Equal(t, models.SeverityModerate, severity)
}

func TestHTTPClassifier_ServerErrorFailsSafe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewHTTPClassifier(srv.URL, 2*time.Second, testLogger())
	severity, err := c.Classify(context.Background(), Report{Description: "collision"})
	require.NoError(t, err)
	assert.Equal(t, models.SeverityCritical, severity)
}

func TestHTTPClassifier_UnknownVerdictFailsSafe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"severity": "Catastrophic"}`))
	}))
	defer srv.Close()

	c := NewHTTPClassifier(srv.URL, 2*time.Second, testLogger())
	severity, err := c.Classify(context.Background(), Report{Description: "collision"})
	require.NoError(t, err)
	assert.Equal(t, models.SeverityCritical, severity)
}

func TestHTTPClassifier_UnreachableServiceFailsSafe(t *testing.T) {
	c := NewHTTPClassifier("http://127.0.0.1:1", time.Second, testLogger())
	severity, err := c.Classify(context.Background(), Report{Description: "collision"})
	require.NoError(t, err)
	assert.Equal(t, models.SeverityCritical, severity)
}
