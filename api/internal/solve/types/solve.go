package types

// SolveRequest is the POST /screen-solve body.
// ImageDataURL is a pointer so that an empty string is still "present" for binding.
type SolveRequest struct {
	ImageDataURL *string `json:"image_data_url" binding:"required"`
}

// SolveResult is the normalized model answer.
// Confidence is always within [0, 1].
type SolveResult struct {
	Answer     string  `json:"answer"`
	Confidence float64 `json:"confidence"`
	Rationale  string  `json:"rationale"`
}

// HealthResponse is the GET /health body.
type HealthResponse struct {
	Status              string `json:"status"`
	OpenAIKeyConfigured bool   `json:"openai_key_configured"`
}

// ErrorResponse carries a human readable failure description.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// ValidationIssue is one entry of a 422 detail list.
type ValidationIssue struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// ValidationErrorResponse is the 422 body.
type ValidationErrorResponse struct {
	Detail []ValidationIssue `json:"detail"`
}
