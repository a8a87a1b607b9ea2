package services

import "fmt"

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildAnalysisInstructions is the instruction block sent alongside the
// resume to an external scorer.
func (pb *PromptBuilder) BuildAnalysisInstructions() string {
	return `You are an expert career coach and recruiter reviewing a resume.

Analyze this resume and provide a comprehensive assessment including:
1. Overall strength score (1-10)
2. Key strengths
3. Areas for improvement
4. Skills analysis
5. Experience assessment
6. Recommendations for enhancement

Return ONLY a JSON object in the following format:
{
  "overall_score": <integer 1-10>,
  "strengths": ["<strength>", "<strength>", "<strength>"],
  "areas_for_improvement": ["<gap>", "<gap>", "<gap>"],
  "skills_analysis": {
    "technical_skills": ["<skill>"],
    "soft_skills": ["<skill>"],
    "missing_skills": ["<skill>"]
  },
  "experience_assessment": {
    "level": "<Entry-level|Mid-level|Senior-level>",
    "relevance": "<Good|Needs improvement>",
    "achievements": "<one sentence>"
  },
  "recommendations": ["<recommendation>", "<recommendation>", "<recommendation>", "<recommendation>"],
  "ats_score": <integer 0-100>
}`
}

// BuildResumeAnalysisPrompt combines the instructions with the resume for
// providers that take a single prompt.
func (pb *PromptBuilder) BuildResumeAnalysisPrompt(resumeText string) string {
	return fmt.Sprintf("%s\n\nRESUME:\n%s", pb.BuildAnalysisInstructions(), resumeText)
}
