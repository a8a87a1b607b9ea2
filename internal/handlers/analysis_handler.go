package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

type AnalysisHandler struct {
	analysisService services.AnalysisService
	pdfParser       services.PDFParserService
}

func NewAnalysisHandler(
	analysisService services.AnalysisService,
	pdfParser services.PDFParserService,
) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
		pdfParser:       pdfParser,
	}
}

// HandleAnalyzeResume handles POST /analyze_resume
func (h *AnalysisHandler) HandleAnalyzeResume(c *fiber.Ctx) error {
	var req models.AnalyzeResumeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request payload")
	}

	if strings.TrimSpace(req.ResumeText) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Resume text is required")
	}

	outcome, err := h.assess(c.UserContext(), req.ResumeText)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, fmt.Sprintf("Analysis failed: %v", err))
	}

	return c.JSON(models.AnalyzeResumeResponse{
		Success:  true,
		Analysis: outcome,
		Message:  "Resume analyzed successfully",
	})
}

// HandleUploadPDF handles POST /upload_pdf
func (h *AnalysisHandler) HandleUploadPDF(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "File is required")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Failed to read uploaded file")
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Failed to read uploaded file")
	}

	if err := h.pdfParser.Validate(content, fileHeader.Filename); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	resumeText, err := h.pdfParser.ExtractText(content)
	if err != nil {
		// The document already validated, so a page that cannot be read is
		// the client's document, not a server fault.
		if !errors.Is(err, services.ErrNoExtractableText) {
			log.Warnf("⚠️ Text extraction failed for %s: %v", fileHeader.Filename, err)
		}
		return fiber.NewError(fiber.StatusBadRequest, "Could not extract text from PDF")
	}

	log.Infof("📄 Extracted %d characters from %s", len(resumeText), fileHeader.Filename)

	outcome, err := h.assess(c.UserContext(), resumeText)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, fmt.Sprintf("Analysis failed: %v", err))
	}

	return c.JSON(models.UploadPDFResponse{
		Success:       true,
		Analysis:      outcome,
		ExtractedText: resumeText,
		Filename:      fileHeader.Filename,
		Message:       "PDF analyzed successfully",
	})
}

// assess turns an unexpected panic during analysis into an error so the
// handler can answer with a 500 instead of dropping the connection.
func (h *AnalysisHandler) assess(ctx context.Context, resumeText string) (outcome models.AnalysisOutcome, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%v", rec)
		}
	}()

	return h.analysisService.Assess(ctx, resumeText), nil
}
