package triage

import (
	"context"
	"strings"

	"github.com/garudaops/rescue_orchestration_system/internal/models"
)

// Report is the classification input assembled from intake data.
type Report struct {
	Location    models.Location `json:"location"`
	Description string          `json:"description"`
	Injuries    string          `json:"injuries"`
	MediaRefs   []string        `json:"media_refs,omitempty"`
}

// Classifier produces a severity verdict for an accident report. The call
// may be slow (external AI service); callers must not hold case locks while
// waiting. Implementations never return an "unknown" severity: when the
// underlying service cannot decide, they default to Critical. The fail-safe
// bias is part of the contract, not an error path.
type Classifier interface {
	Classify(ctx context.Context, report Report) (models.Severity, error)
}

// keyword groups for the built-in classifier, checked most severe first.
var (
	criticalKeywords = []string{
		"unconscious", "not breathing", "no pulse", "severe bleeding",
		"head injury", "chest", "trapped", "fire", "cardiac",
	}
	moderateKeywords = []string{
		"fracture", "broken", "bleeding", "dizzy", "collision", "burn",
	}
)

// KeywordClassifier is the local fallback used when no external classifier
// is configured. It scans the description and injury notes for severity
// markers.
type KeywordClassifier struct{}

func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{}
}

func (c *KeywordClassifier) Classify(ctx context.Context, report Report) (models.Severity, error) {
	if err := ctx.Err(); err != nil {
		return models.SeverityCritical, err
	}

	text := strings.ToLower(report.Description + " " + report.Injuries)
	for _, kw := range criticalKeywords {
		if strings.Contains(text, kw) {
			return models.SeverityCritical, nil
		}
	}
	for _, kw := range moderateKeywords {
		if strings.Contains(text, kw) {
			return models.SeverityModerate, nil
		}
	}
	if strings.TrimSpace(text) == "" {
		// Nothing to decide on: fail safe.
		return models.SeverityCritical, nil
	}
	return models.SeverityLow, nil
}
