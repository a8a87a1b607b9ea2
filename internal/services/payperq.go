package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"alfredoptarigan/resume-analyzer/internal/models"
)

const (
	payPerQMaxTokens   = 1000
	payPerQTemperature = 0.3
)

type payPerQRequest struct {
	Input       string  `json:"input"`
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float32 `json:"temperature"`
}

type payPerQResponse struct {
	Analysis *models.AssessmentResult `json:"analysis"`
	Output   string                   `json:"output"`
}

type payPerQScorer struct {
	apiKey        string
	url           string
	model         string
	timeout       time.Duration
	promptBuilder *PromptBuilder
}

func NewPayPerQScorer(apiKey, url, model string, timeout time.Duration) Scorer {
	return &payPerQScorer{
		apiKey:        apiKey,
		url:           url,
		model:         model,
		timeout:       timeout,
		promptBuilder: NewPromptBuilder(),
	}
}

// Name implements Scorer.
func (p *payPerQScorer) Name() string {
	return "payperq"
}

// Score implements Scorer.
func (p *payPerQScorer) Score(ctx context.Context, resumeText string) (*models.AssessmentResult, error) {
	if p.apiKey == "" {
		return nil, newScoreError(ScoreErrConfig, "PayPerQ API key is not configured")
	}

	timeout := p.timeout
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, &ScoreError{Kind: ScoreErrTimeout, Err: context.DeadlineExceeded}
		}
		if timeout <= 0 || remaining < timeout {
			timeout = remaining
		}
	}

	agent := fiber.Post(p.url)
	agent.Set(fiber.HeaderAuthorization, "Bearer "+p.apiKey)
	agent.JSON(payPerQRequest{
		Input:       resumeText,
		Model:       p.model,
		Prompt:      p.promptBuilder.BuildAnalysisInstructions(),
		MaxTokens:   payPerQMaxTokens,
		Temperature: payPerQTemperature,
	})
	if timeout > 0 {
		agent.Timeout(timeout)
	}

	if err := agent.Parse(); err != nil {
		fiber.ReleaseAgent(agent)
		return nil, newScoreError(ScoreErrConfig, "invalid PayPerQ request: %w", err)
	}

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		err := errors.Join(errs...)
		if isTimeout(err) {
			return nil, &ScoreError{Kind: ScoreErrTimeout, Err: err}
		}
		return nil, &ScoreError{Kind: ScoreErrTransport, Err: err}
	}

	if code != fiber.StatusOK {
		return nil, newScoreError(ScoreErrStatus, "PayPerQ API error: %d - %s", code, truncate(string(body), 200))
	}

	return decodePayPerQBody(body)
}

// decodePayPerQBody accepts the assessment itself, an {"analysis": {...}}
// envelope, or {"output": "<text with JSON>"}.
func decodePayPerQBody(body []byte) (*models.AssessmentResult, error) {
	var envelope payPerQResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, newScoreError(ScoreErrDecode, "failed to unmarshal PayPerQ response: %w", err)
	}

	switch {
	case envelope.Analysis != nil:
		if err := validateAssessment(envelope.Analysis); err != nil {
			return nil, err
		}
		return envelope.Analysis, nil
	case strings.TrimSpace(envelope.Output) != "":
		return decodeAssessment(envelope.Output)
	default:
		return decodeAssessment(string(body))
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, fasthttp.ErrTimeout) ||
		errors.Is(err, fasthttp.ErrDialTimeout) ||
		errors.Is(err, fasthttp.ErrTLSHandshakeTimeout) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return fmt.Sprintf("%s...", s[:n])
}
