package dto

type GeminiAPIRequest struct {
	Contents         []Content         `json:"contents"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
	SafetySettings   []SafetySetting   `json:"safetySettings,omitempty"`
}

type GeminiAPIResponse struct {
	Candidates   []Candidate `json:"candidates"`
	ModelVersion string      `json:"modelVersion,omitempty"`
}

// Candidate is a candidate response from the Gemini API.
type Candidate struct {
	Content Content `json:"content"`
}

type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

type Part struct {
	Text string `json:"text"`
	// ThoughtSignature is an opaque reasoning-state token some models return.
	// It is passed through untouched, never parsed.
	ThoughtSignature string `json:"thoughtSignature,omitempty"`
}

type GenerationConfig struct {
	Temperature     *float64 `json:"temperature,omitempty"`
	MaxOutputTokens *int     `json:"maxOutputTokens,omitempty"`
	TopP            *float64 `json:"topP,omitempty"`
}

type SafetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

// GenerateResult is the normalized output of one generation call.
type GenerateResult struct {
	Response         string  `json:"response"`
	ThoughtSignature *string `json:"thought_signature,omitempty"`
	ModelUsed        string  `json:"model_used"`
}
