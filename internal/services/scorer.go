package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"alfredoptarigan/resume-analyzer/internal/models"
)

//go:generate mockgen -source=scorer.go -destination=mocks/scorer.mock.go -package=mocks Scorer

// Scorer is an external scoring strategy. Implementations report every
// failure as a *ScoreError and must stop work once ctx is done; the caller
// stops waiting at the deadline either way.
type Scorer interface {
	Name() string
	Score(ctx context.Context, resumeText string) (*models.AssessmentResult, error)
}

type ScoreErrorKind string

const (
	ScoreErrConfig    ScoreErrorKind = "config"
	ScoreErrTransport ScoreErrorKind = "transport"
	ScoreErrTimeout   ScoreErrorKind = "timeout"
	ScoreErrStatus    ScoreErrorKind = "status"
	ScoreErrDecode    ScoreErrorKind = "decode"
	ScoreErrPanic     ScoreErrorKind = "panic"
)

type ScoreError struct {
	Kind ScoreErrorKind
	Err  error
}

func (e *ScoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *ScoreError) Unwrap() error {
	return e.Err
}

func newScoreError(kind ScoreErrorKind, format string, args ...any) *ScoreError {
	return &ScoreError{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// decodeAssessment parses model output that may be wrapped in markdown or
// surrounded by prose.
func decodeAssessment(text string) (*models.AssessmentResult, error) {
	var result models.AssessmentResult
	if err := json.Unmarshal([]byte(extractJSON(text)), &result); err != nil {
		return nil, newScoreError(ScoreErrDecode, "failed to unmarshal assessment: %w", err)
	}
	if err := validateAssessment(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

func validateAssessment(result *models.AssessmentResult) error {
	if result.OverallScore < minOverallScore || result.OverallScore > maxOverallScore {
		return newScoreError(ScoreErrDecode, "overall_score %d out of range", result.OverallScore)
	}
	if result.ATSScore < 0 || result.ATSScore > 100 {
		return newScoreError(ScoreErrDecode, "ats_score %d out of range", result.ATSScore)
	}
	return nil
}

// extractJSON tries to extract JSON from text that might contain markdown or other formatting
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end > start {
		return text[start : end+1]
	}

	return strings.TrimSpace(text)
}
