package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"google.golang.org/genai"

	"alfredoptarigan/resume-analyzer/internal/models"
)

const geminiTemperature float32 = 0.3

type geminiScorer struct {
	client        *genai.Client
	modelName     string
	promptBuilder *PromptBuilder
}

func NewGeminiScorer(ctx context.Context, apiKey, modelName string) (Scorer, error) {
	if apiKey == "" {
		return nil, newScoreError(ScoreErrConfig, "Gemini API key is not configured")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiScorer{
		client:        client,
		modelName:     modelName,
		promptBuilder: NewPromptBuilder(),
	}, nil
}

// Name implements Scorer.
func (g *geminiScorer) Name() string {
	return "gemini"
}

// Score implements Scorer.
func (g *geminiScorer) Score(ctx context.Context, resumeText string) (*models.AssessmentResult, error) {
	temperature := geminiTemperature
	config := &genai.GenerateContentConfig{
		Temperature:      &temperature,
		MaxOutputTokens:  4096,
		ResponseMIMEType: "application/json",
	}

	prompt := g.promptBuilder.BuildResumeAnalysisPrompt(resumeText)
	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &ScoreError{Kind: ScoreErrTimeout, Err: err}
		}
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return nil, newScoreError(ScoreErrStatus, "Gemini API error: %d - %s", apiErr.Code, apiErr.Message)
		}
		return nil, &ScoreError{Kind: ScoreErrTransport, Err: err}
	}

	if resp == nil {
		return nil, newScoreError(ScoreErrDecode, "no response generated (nil response)")
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return nil, newScoreError(ScoreErrDecode, "no text content in response")
	}

	log.Debugf("📊 Gemini response received: %d characters", len(text))

	return decodeAssessment(text)
}
