package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"alfredoptarigan/resume-analyzer/internal/models"
)

const DefaultScorerTimeout = 30 * time.Second

// AnalysisService produces an assessment for every input. The external
// scorer is tried once when configured; the heuristic analyzer answers
// whenever it is absent or fails.
type AnalysisService interface {
	Assess(ctx context.Context, resumeText string) models.AnalysisOutcome
}

type analysisService struct {
	scorer    Scorer
	heuristic HeuristicAnalyzer
	timeout   time.Duration
}

// NewAnalysisService accepts a nil scorer, which selects heuristic-only mode.
func NewAnalysisService(scorer Scorer, heuristic HeuristicAnalyzer, timeout time.Duration) AnalysisService {
	if heuristic == nil {
		heuristic = NewHeuristicAnalyzer()
	}
	if timeout <= 0 {
		timeout = DefaultScorerTimeout
	}
	return &analysisService{
		scorer:    scorer,
		heuristic: heuristic,
		timeout:   timeout,
	}
}

// Assess implements AnalysisService.
func (s *analysisService) Assess(ctx context.Context, resumeText string) models.AnalysisOutcome {
	if s.scorer != nil {
		result, err := s.scoreExternally(ctx, resumeText)
		if err == nil {
			analysesTotal.WithLabelValues(string(models.SourceExternalService)).Inc()
			return models.AnalysisOutcome{
				Success:  true,
				Source:   models.SourceExternalService,
				Analysis: *result,
			}
		}
		s.logFailure(err)
	}

	analysesTotal.WithLabelValues(string(models.SourceHeuristicFallback)).Inc()
	return models.AnalysisOutcome{
		Success:  true,
		Source:   models.SourceHeuristicFallback,
		Analysis: s.heuristic.Analyze(resumeText),
	}
}

type scoreReply struct {
	result *models.AssessmentResult
	err    error
}

// scoreExternally waits at most s.timeout even when the scorer ignores its
// context; a late reply is dropped.
func (s *analysisService) scoreExternally(ctx context.Context, resumeText string) (*models.AssessmentResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	defer func() {
		scorerDuration.WithLabelValues(s.scorer.Name()).Observe(time.Since(start).Seconds())
	}()

	replies := make(chan scoreReply, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				replies <- scoreReply{err: newScoreError(ScoreErrPanic, "scorer panicked: %v", rec)}
			}
		}()
		result, err := s.scorer.Score(ctx, resumeText)
		replies <- scoreReply{result: result, err: err}
	}()

	var reply scoreReply
	select {
	case reply = <-replies:
	case <-ctx.Done():
		return nil, &ScoreError{Kind: ScoreErrTimeout, Err: ctx.Err()}
	}

	result, err := reply.result, reply.err
	if err != nil {
		var scoreErr *ScoreError
		if !errors.As(err, &scoreErr) {
			kind := ScoreErrTransport
			if errors.Is(err, context.DeadlineExceeded) {
				kind = ScoreErrTimeout
			}
			err = &ScoreError{Kind: kind, Err: err}
		}
		return nil, err
	}
	if result == nil {
		return nil, newScoreError(ScoreErrDecode, "scorer returned no result")
	}

	// Lexical facts are always computed locally.
	f := s.heuristic.Features(resumeText)
	result.WordCount = f.WordCount
	result.SectionsFound = models.SectionsFound{
		Education:  f.HasEducation,
		Experience: f.HasExperience,
		Skills:     f.HasSkills,
	}
	return result, nil
}

func (s *analysisService) logFailure(err error) {
	kind := ScoreErrTransport
	var scoreErr *ScoreError
	if errors.As(err, &scoreErr) {
		kind = scoreErr.Kind
	}
	scorerFailuresTotal.WithLabelValues(s.scorer.Name(), string(kind)).Inc()
	log.Warnf("⚠️  %s scorer failed (%s), using heuristic analysis: %v", s.scorer.Name(), kind, err)
}

// Describe is used in startup logs.
func Describe(scorer Scorer) string {
	if scorer == nil {
		return "heuristic only"
	}
	return fmt.Sprintf("%s with heuristic fallback", scorer.Name())
}
