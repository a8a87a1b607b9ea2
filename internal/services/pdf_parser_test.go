package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-analyzer/internal/testutil"
)

func reasonOf(t *testing.T, err error) string {
	t.Helper()
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr), "expected *ValidationError, got %v", err)
	return vErr.Reason
}

func TestPDFParser_Validate(t *testing.T) {
	parser := NewPDFParserService(DefaultMaxFileSize)
	valid := testutil.BuildPDF("Hello")

	testCases := []struct {
		name       string
		content    []byte
		filename   string
		wantReason string
		wantPrefix string
	}{
		{name: "wrong extension", content: valid, filename: "resume.docx", wantReason: "File must be a PDF"},
		{name: "no extension", content: valid, filename: "resume", wantReason: "File must be a PDF"},
		{name: "too large", content: make([]byte, DefaultMaxFileSize+1), filename: "resume.pdf", wantReason: "File size must be less than 10MB"},
		{name: "empty", content: []byte{}, filename: "resume.pdf", wantReason: "File is empty"},
		{name: "corrupt", content: []byte(strings.Repeat("definitely not a pdf document ", 10)), filename: "resume.pdf", wantPrefix: "Invalid PDF file: "},
		{name: "no pages", content: testutil.BuildPDF(), filename: "resume.pdf", wantReason: "PDF file has no pages"},
		{name: "wrong type wins over empty", content: nil, filename: "resume.txt", wantReason: "File must be a PDF"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := parser.Validate(tc.content, tc.filename)
			require.Error(t, err)
			reason := reasonOf(t, err)
			if tc.wantPrefix != "" {
				assert.True(t, strings.HasPrefix(reason, tc.wantPrefix), "reason %q", reason)
				return
			}
			assert.Equal(t, tc.wantReason, reason)
		})
	}
}

func TestPDFParser_ValidateAccepts(t *testing.T) {
	parser := NewPDFParserService(0)

	assert.NoError(t, parser.Validate(testutil.BuildPDF("Hello"), "resume.pdf"))
	assert.NoError(t, parser.Validate(testutil.BuildPDF("Hello", "World"), "RESUME.PDF"))
	assert.NoError(t, parser.Validate(testutil.BuildPDF(""), "scan.Pdf"))
}

func TestPDFParser_ExtractText(t *testing.T) {
	parser := NewPDFParserService(DefaultMaxFileSize)

	text, err := parser.ExtractText(testutil.BuildPDF("Hello", ""))
	require.NoError(t, err)
	assert.Equal(t, "Hello", text)

	text, err = parser.ExtractText(testutil.BuildPDF("Jane Doe", "Software Engineer"))
	require.NoError(t, err)
	first := strings.Index(text, "Jane Doe")
	second := strings.Index(text, "Software Engineer")
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	assert.Less(t, first, second)
	assert.Equal(t, strings.TrimSpace(text), text)
}

func TestPDFParser_ExtractTextAbsent(t *testing.T) {
	parser := NewPDFParserService(DefaultMaxFileSize)

	text, err := parser.ExtractText(testutil.BuildPDF("", ""))
	assert.ErrorIs(t, err, ErrNoExtractableText)
	assert.Empty(t, text)
}

func TestPDFParser_ExtractTextCorrupt(t *testing.T) {
	parser := NewPDFParserService(DefaultMaxFileSize)

	_, err := parser.ExtractText([]byte(strings.Repeat("garbage ", 20)))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoExtractableText))
}

func TestPDFParser_DoesNotMutateInput(t *testing.T) {
	parser := NewPDFParserService(DefaultMaxFileSize)
	content := testutil.BuildPDF("Hello")
	snapshot := append([]byte(nil), content...)

	require.NoError(t, parser.Validate(content, "resume.pdf"))
	_, err := parser.ExtractText(content)
	require.NoError(t, err)
	assert.Equal(t, snapshot, content)
}
