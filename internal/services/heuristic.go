package services

import (
	"strings"

	"alfredoptarigan/resume-analyzer/internal/models"
)

// Topic keyword sets. Matching is a case-insensitive substring test against
// the whole resume, so "Masters" matches "master".
var (
	EducationKeywords  = []string{"education", "degree", "university", "college", "bachelor", "master", "phd"}
	ExperienceKeywords = []string{"experience", "worked", "job", "position", "role", "employment"}
	SkillsKeywords     = []string{"skills", "programming", "technical", "software", "tools"}
)

const (
	minOverallScore = 1
	maxOverallScore = 10
	minATSScore     = 60
	maxATSScore     = 95
)

var (
	softSkills    = []string{"Communication", "Teamwork", "Problem-solving"}
	missingSkills = []string{"Industry-specific certifications", "Advanced technical skills"}

	recommendations = []string{
		"Add quantifiable achievements and metrics",
		"Include relevant keywords for ATS optimization",
		"Expand on leadership and project management experience",
		"Consider adding a professional summary section",
	}
)

// HeuristicAnalyzer scores a resume from lexical features only. It is total
// and deterministic, which makes it the fallback of last resort.
type HeuristicAnalyzer interface {
	Features(text string) models.LexicalFeatures
	Analyze(text string) models.AssessmentResult
}

type heuristicAnalyzer struct{}

func NewHeuristicAnalyzer() HeuristicAnalyzer {
	return &heuristicAnalyzer{}
}

// Features implements HeuristicAnalyzer.
func (h *heuristicAnalyzer) Features(text string) models.LexicalFeatures {
	lower := strings.ToLower(text)
	return models.LexicalFeatures{
		WordCount:     len(strings.Fields(text)),
		HasEducation:  containsAny(lower, EducationKeywords),
		HasExperience: containsAny(lower, ExperienceKeywords),
		HasSkills:     containsAny(lower, SkillsKeywords),
	}
}

// Analyze implements HeuristicAnalyzer.
func (h *heuristicAnalyzer) Analyze(text string) models.AssessmentResult {
	f := h.Features(text)
	score := OverallScore(f.WordCount)

	return models.AssessmentResult{
		OverallScore:        score,
		Strengths:           strengths(f),
		AreasForImprovement: improvements(f),
		SkillsAnalysis: models.SkillsAnalysis{
			TechnicalSkills: technicalSkills(f),
			SoftSkills:      cloneStrings(softSkills),
			MissingSkills:   cloneStrings(missingSkills),
		},
		ExperienceAssessment: models.ExperienceAssessment{
			Level:        experienceLevel(f.WordCount),
			Relevance:    relevance(f),
			Achievements: achievements(f.WordCount),
		},
		Recommendations: cloneStrings(recommendations),
		ATSScore:        ATSScore(score),
		WordCount:       f.WordCount,
		SectionsFound:   sectionsFound(f),
	}
}

// OverallScore is word_count/50 + 5 clamped to [1, 10].
func OverallScore(wordCount int) int {
	return clamp(wordCount/50+5, minOverallScore, maxOverallScore)
}

// ATSScore is overall*8 + 20 clamped to [60, 95].
func ATSScore(overallScore int) int {
	return clamp(overallScore*8+20, minATSScore, maxATSScore)
}

func strengths(f models.LexicalFeatures) []string {
	out := make([]string, 0, 3)

	if f.WordCount > 200 {
		out = append(out, "Well-structured content")
	} else {
		out = append(out, "Concise presentation")
	}

	if f.HasExperience {
		out = append(out, "Professional formatting")
	} else {
		out = append(out, "Clear organization")
	}

	switch {
	case f.HasExperience:
		out = append(out, "Relevant experience")
	case f.HasEducation:
		out = append(out, "Educational background")
	default:
		out = append(out, "Basic qualifications")
	}

	return out
}

func improvements(f models.LexicalFeatures) []string {
	out := make([]string, 0, 3)

	if f.WordCount < 300 {
		out = append(out, "Add more specific achievements")
	} else {
		out = append(out, "Include quantifiable results")
	}

	if !f.HasSkills {
		out = append(out, "Expand technical skills section")
	} else {
		out = append(out, "Add more soft skills")
	}

	if !f.HasEducation {
		out = append(out, "Include relevant certifications")
	} else {
		out = append(out, "Highlight leadership experience")
	}

	return out
}

func technicalSkills(f models.LexicalFeatures) []string {
	if f.HasSkills {
		return []string{"Basic technical skills detected"}
	}
	return []string{"Consider adding technical skills section"}
}

func experienceLevel(wordCount int) models.ExperienceLevel {
	switch {
	case wordCount < 400:
		return models.LevelEntry
	case wordCount < 800:
		return models.LevelMid
	default:
		return models.LevelSenior
	}
}

func relevance(f models.LexicalFeatures) models.Relevance {
	if f.HasExperience {
		return models.RelevanceGood
	}
	return models.RelevanceNeedsImprovement
}

func achievements(wordCount int) string {
	if wordCount > 200 {
		return "Basic achievements mentioned"
	}
	return "Consider adding specific achievements"
}

func sectionsFound(f models.LexicalFeatures) models.SectionsFound {
	return models.SectionsFound{
		Education:  f.HasEducation,
		Experience: f.HasExperience,
		Skills:     f.HasSkills,
	}
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
