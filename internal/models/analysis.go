package models

type AnalysisSource string

const (
	SourceExternalService   AnalysisSource = "external_service"
	SourceHeuristicFallback AnalysisSource = "heuristic_fallback"
)

type ExperienceLevel string

const (
	LevelEntry  ExperienceLevel = "Entry-level"
	LevelMid    ExperienceLevel = "Mid-level"
	LevelSenior ExperienceLevel = "Senior-level"
)

type Relevance string

const (
	RelevanceGood             Relevance = "Good"
	RelevanceNeedsImprovement Relevance = "Needs improvement"
)

// LexicalFeatures are the raw signals the heuristic analyzer scores from.
type LexicalFeatures struct {
	WordCount     int
	HasEducation  bool
	HasExperience bool
	HasSkills     bool
}

type SkillsAnalysis struct {
	TechnicalSkills []string `json:"technical_skills"`
	SoftSkills      []string `json:"soft_skills"`
	MissingSkills   []string `json:"missing_skills"`
}

type ExperienceAssessment struct {
	Level        ExperienceLevel `json:"level"`
	Relevance    Relevance       `json:"relevance"`
	Achievements string          `json:"achievements"`
}

type SectionsFound struct {
	Education  bool `json:"education"`
	Experience bool `json:"experience"`
	Skills     bool `json:"skills"`
}

type AssessmentResult struct {
	OverallScore         int                  `json:"overall_score"`
	Strengths            []string             `json:"strengths"`
	AreasForImprovement  []string             `json:"areas_for_improvement"`
	SkillsAnalysis       SkillsAnalysis       `json:"skills_analysis"`
	ExperienceAssessment ExperienceAssessment `json:"experience_assessment"`
	Recommendations      []string             `json:"recommendations"`
	ATSScore             int                  `json:"ats_score"`
	WordCount            int                  `json:"word_count"`
	SectionsFound        SectionsFound        `json:"sections_found"`
}

// AnalysisOutcome tags an assessment with the path that produced it.
type AnalysisOutcome struct {
	Success  bool             `json:"success"`
	Source   AnalysisSource   `json:"source"`
	Analysis AssessmentResult `json:"analysis"`
}
