package services

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	DefaultMaxFileSize int64 = 10 * 1024 * 1024
	pdfExtension             = ".pdf"
)

// ErrNoExtractableText reports a structurally valid PDF without any text
// layer, e.g. a scanned document. It is an expected outcome, not a fault.
var ErrNoExtractableText = errors.New("no text content found in PDF")

// ValidationError carries the human-readable reason a document was rejected.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

type PDFParserService interface {
	Validate(content []byte, filename string) error
	ExtractText(content []byte) (string, error)
}

type pdfParserService struct {
	maxFileSize int64
}

func NewPDFParserService(maxFileSize int64) PDFParserService {
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	return &pdfParserService{maxFileSize: maxFileSize}
}

// Validate implements PDFParserService. Rules are checked in order and the
// first failing rule decides the reason.
func (p *pdfParserService) Validate(content []byte, filename string) error {
	if !strings.HasSuffix(strings.ToLower(filename), pdfExtension) {
		return &ValidationError{Reason: "File must be a PDF"}
	}

	if int64(len(content)) > p.maxFileSize {
		return &ValidationError{Reason: fmt.Sprintf("File size must be less than %s", formatSize(p.maxFileSize))}
	}

	if len(content) == 0 {
		return &ValidationError{Reason: "File is empty"}
	}

	r, err := openPDF(content)
	if err != nil {
		return &ValidationError{Reason: fmt.Sprintf("Invalid PDF file: %v", err)}
	}

	pages, err := numPages(r)
	if err != nil {
		return &ValidationError{Reason: fmt.Sprintf("Invalid PDF file: %v", err)}
	}
	if pages == 0 {
		return &ValidationError{Reason: "PDF file has no pages"}
	}

	return nil
}

// ExtractText implements PDFParserService.
func (p *pdfParserService) ExtractText(content []byte) (_ string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("malformed PDF: %v", rec)
		}
	}()

	r, err := openPDF(content)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	totalPage, err := numPages(r)
	if err != nil {
		return "", fmt.Errorf("failed to read page tree: %w", err)
	}

	var textBuilder strings.Builder
	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to extract text from page %d: %w", pageIndex, err)
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	text := strings.TrimSpace(textBuilder.String())
	if text == "" {
		return "", ErrNoExtractableText
	}

	return text, nil
}

// openPDF parses an in-memory document. The pdf package panics on some
// malformed inputs, so panics are turned into errors.
func openPDF(content []byte) (r *pdf.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r, err = nil, fmt.Errorf("malformed PDF: %v", rec)
		}
	}()

	return pdf.NewReader(bytes.NewReader(content), int64(len(content)))
}

func numPages(r *pdf.Reader) (n int, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			n, err = 0, fmt.Errorf("malformed page tree: %v", rec)
		}
	}()

	return r.NumPage(), nil
}

func formatSize(size int64) string {
	const mib = 1024 * 1024
	if size%mib == 0 {
		return fmt.Sprintf("%dMB", size/mib)
	}
	return fmt.Sprintf("%d bytes", size)
}
