package models

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SessionResponse struct {
	Message      string `json:"message"`
	SessionToken string `json:"session_token"`
	Username     string `json:"username"`
}

type VerifySessionResponse struct {
	Valid    bool   `json:"valid"`
	Username string `json:"username"`
}

type LogoutRequest struct {
	SessionToken string `json:"session_token"`
}

type AnalyzeResumeRequest struct {
	ResumeText string `json:"resume_text"`
}

type AnalyzeResumeResponse struct {
	Success  bool            `json:"success"`
	Analysis AnalysisOutcome `json:"analysis"`
	Message  string          `json:"message"`
}

type UploadPDFResponse struct {
	Success       bool            `json:"success"`
	Analysis      AnalysisOutcome `json:"analysis"`
	ExtractedText string          `json:"extracted_text"`
	Filename      string          `json:"filename"`
	Message       string          `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
