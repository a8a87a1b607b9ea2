package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2/log"

	"alfredoptarigan/resume-analyzer/internal/config"
	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

// Usage: go run ./scripts/analyze_resume.go [-heuristic] resume.pdf [more.pdf ...]
func main() {
	heuristicOnly := flag.Bool("heuristic", false, "skip the external scorer")
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		log.Fatal("❌ Usage: analyze_resume [-heuristic] <resume.pdf>...")
	}

	log.Info("🚀 Starting resume analysis...")

	cfg := config.Load()
	ctx := context.Background()

	var scorer services.Scorer
	if !*heuristicOnly && cfg.ScorerAPIKey() != "" {
		switch cfg.Scorer.Provider {
		case config.ProviderGemini:
			s, err := services.NewGeminiScorer(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
			if err != nil {
				log.Warnf("⚠️ Failed to initialize Gemini, continuing with heuristics: %v", err)
			} else {
				scorer = s
			}
		default:
			scorer = services.NewPayPerQScorer(cfg.PayPerQ.APIKey, cfg.PayPerQ.URL, cfg.PayPerQ.Model, cfg.Scorer.Timeout)
		}
	}

	analysisService := services.NewAnalysisService(scorer, services.NewHeuristicAnalyzer(), cfg.Scorer.Timeout)
	pdfParser := services.NewPDFParserService(cfg.Storage.MaxFileSize)
	log.Infof("✅ Analysis mode: %s", services.Describe(scorer))

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	successCount := 0
	failCount := 0

	for _, path := range paths {
		log.Infof("📄 Processing: %s", path)

		outcome, err := analyzeFile(ctx, analysisService, pdfParser, path)
		if err != nil {
			log.Errorf("   ❌ %v", err)
			failCount++
			continue
		}

		if err := encoder.Encode(models.UploadPDFResponse{
			Success:  true,
			Analysis: outcome,
			Filename: filepath.Base(path),
			Message:  "PDF analyzed successfully",
		}); err != nil {
			log.Errorf("   ❌ Failed to write result: %v", err)
			failCount++
			continue
		}

		log.Infof("   ✅ Score %d/10 (%s)", outcome.Analysis.OverallScore, outcome.Source)
		successCount++
	}

	log.Info(strings.Repeat("=", 60))
	log.Infof("📊 Summary: %d analyzed, %d failed", successCount, failCount)
	log.Info(strings.Repeat("=", 60))

	if failCount > 0 {
		os.Exit(1)
	}
}

func analyzeFile(
	ctx context.Context,
	analysisService services.AnalysisService,
	pdfParser services.PDFParserService,
	path string,
) (models.AnalysisOutcome, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return models.AnalysisOutcome{}, err
	}

	if err := pdfParser.Validate(content, filepath.Base(path)); err != nil {
		return models.AnalysisOutcome{}, err
	}

	text, err := pdfParser.ExtractText(content)
	if err != nil {
		if errors.Is(err, services.ErrNoExtractableText) {
			return models.AnalysisOutcome{}, errors.New("could not extract text from PDF")
		}
		return models.AnalysisOutcome{}, err
	}

	return analysisService.Assess(ctx, text), nil
}
