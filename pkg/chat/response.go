package chat

// CompletionResponse represents a chat completion response (OpenAI-compatible).
type CompletionResponse struct {
	ID      string   `json:"id"`      // Provider-assigned request identifier
	Model   string   `json:"model"`   // Model that generated the response
	Created int64    `json:"created"` // Unix timestamp
	Choices []Choice `json:"choices"` // Candidate completions (we only ever use the first)
	Usage   *Usage   `json:"usage,omitempty"`
}

// Choice is a single candidate completion.
type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason,omitempty"`
}

// Usage reports token accounting for the request.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Reply returns the first choice's message content, or "" when the
// provider returned no choices.
func (r *CompletionResponse) Reply() string {
	if len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Message.Content
}
