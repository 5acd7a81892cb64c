package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL is the voice provider's API root.
const DefaultBaseURL = "https://api.elevenlabs.io"

// Config holds credentials and the fixed voice selection.
type Config struct {
	BaseURL string // Provider API root; defaults to DefaultBaseURL
	APIKey  string // xi-api-key value
	VoiceID string // Fixed voice identifier
	ModelID string // Fixed synthesis model (e.g. "eleven_turbo_v2_5")
}

// ElevenLabsClient synthesizes speech through ElevenLabs'
// /v1/text-to-speech/{voice_id} endpoint.
type ElevenLabsClient struct {
	config     Config
	httpClient *http.Client
}

// NewElevenLabsClient creates a synthesis client from config.
func NewElevenLabsClient(config Config) *ElevenLabsClient {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}

	return &ElevenLabsClient{
		config: config,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// speechRequest is the synthesis request body.
type speechRequest struct {
	Text    string `json:"text"`
	ModelID string `json:"model_id,omitempty"`
}

// Synthesize converts text to MPEG audio bytes.
func (c *ElevenLabsClient) Synthesize(ctx context.Context, text string) ([]byte, error) {
	body, err := json.Marshal(speechRequest{
		Text:    text,
		ModelID: c.config.ModelID,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := c.config.BaseURL + "/v1/text-to-speech/" + c.config.VoiceID
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "audio/mpeg")
	httpReq.Header.Set("xi-api-key", c.config.APIKey)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer httpResp.Body.Close()

	audio, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("voice API returned %d: %s", httpResp.StatusCode, string(audio))
	}

	return audio, nil
}
