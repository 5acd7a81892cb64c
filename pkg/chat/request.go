package chat

// CompletionRequest represents a chat completion request (OpenAI-compatible).
type CompletionRequest struct {
	Model    string    `json:"model"`    // Model identifier
	Messages []Message `json:"messages"` // System prompt + conversation history
	Stream   bool      `json:"stream"`   // Always false here; the pipeline needs the full reply before synthesis

	// Sampling parameters
	Temperature       *float64 `json:"temperature,omitempty"`        // Creativity (0.0-2.0)
	TopP              *float64 `json:"top_p,omitempty"`              // Nucleus sampling threshold
	TopK              *int     `json:"top_k,omitempty"`              // Top-k sampling
	RepetitionPenalty *float64 `json:"repetition_penalty,omitempty"` // Penalty for repeating tokens

	// Length control
	MaxTokens *int `json:"max_tokens,omitempty"` // Max tokens to generate

	// Stop sequences
	Stop []string `json:"stop,omitempty"` // Stop generation at these sequences
}
