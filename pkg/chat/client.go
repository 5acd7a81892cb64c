package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL is the hosted completion provider's API root.
const DefaultBaseURL = "https://api.together.xyz"

// Config holds the client's credentials and the fixed generation
// parameters sent with every request.
type Config struct {
	BaseURL string // Provider API root; defaults to DefaultBaseURL
	APIKey  string // Bearer token
	Model   string // Model identifier

	// Fixed sampling parameters
	Temperature       float64
	TopP              float64
	TopK              int
	RepetitionPenalty float64
	MaxTokens         int
	Stop              string // Single stop sequence
}

// Client calls a hosted OpenAI-compatible chat-completion API.
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a completion client from config.
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			// Completions can be slow on long prompts
			Timeout: 2 * time.Minute,
		},
	}
}

// Complete requests a single non-streaming completion for the given
// messages. The system prompt is expected to already be the first message.
func (c *Client) Complete(ctx context.Context, messages []Message) (*CompletionResponse, error) {
	req := &CompletionRequest{
		Model:             c.config.Model,
		Messages:          messages,
		Stream:            false,
		Temperature:       &c.config.Temperature,
		TopP:              &c.config.TopP,
		TopK:              &c.config.TopK,
		RepetitionPenalty: &c.config.RepetitionPenalty,
		MaxTokens:         &c.config.MaxTokens,
	}
	if c.config.Stop != "" {
		req.Stop = []string{c.config.Stop}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := c.config.BaseURL + "/v1/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("completion API returned %d: %s", httpResp.StatusCode, string(respBody))
	}

	var resp CompletionResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	return &resp, nil
}
