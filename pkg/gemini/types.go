package gemini

import "net/http"

// Request is a generation request.
type Request struct {
	SystemInstruction *Content
	Messages          []Content
	Temperature       float64
	MaxTokens         int
	StopSequences     []string
}

// Content is one message of the conversation. Role is "user" or "model".
type Content struct {
	Role  string
	Parts []Part
}

type Part struct {
	Text string
}

// Response is the first candidate of a generation call.
type Response struct {
	Content      Content
	FinishReason string
	Usage        *Usage
}

// Text joins the parts of the response content.
func (r *Response) Text() string {
	out := ""
	for _, p := range r.Content.Parts {
		out += p.Text
	}
	return out
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

type implClient struct {
	apiKey     string
	model      string
	apiURL     string
	httpClient *http.Client
}

// Wire types of the generateContent endpoint.
type apiRequest struct {
	SystemInstruction *apiContent          `json:"system_instruction,omitempty"`
	Contents          []apiContent         `json:"contents"`
	GenerationConfig  *apiGenerationConfig `json:"generationConfig,omitempty"`
}

type apiContent struct {
	Role  string    `json:"role,omitempty"`
	Parts []apiPart `json:"parts"`
}

type apiPart struct {
	Text string `json:"text,omitempty"`
}

type apiGenerationConfig struct {
	Temperature     float64  `json:"temperature,omitempty"`
	MaxOutputTokens int      `json:"maxOutputTokens,omitempty"`
	StopSequences   []string `json:"stopSequences,omitempty"`
}

type apiResponse struct {
	Candidates     []apiCandidate    `json:"candidates"`
	PromptFeedback *apiPromptFeedback `json:"promptFeedback,omitempty"`
	UsageMetadata  *apiUsageMetadata  `json:"usageMetadata,omitempty"`
}

type apiCandidate struct {
	Content      apiContent `json:"content"`
	FinishReason string     `json:"finishReason,omitempty"`
}

type apiPromptFeedback struct {
	BlockReason string `json:"blockReason,omitempty"`
}

type apiUsageMetadata struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}
