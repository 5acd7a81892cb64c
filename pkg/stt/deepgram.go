package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the recognition provider's API root.
const DefaultBaseURL = "https://api.deepgram.com"

// Config holds credentials and recognition parameters for the Deepgram client.
type Config struct {
	BaseURL  string // Provider API root; defaults to DefaultBaseURL
	APIKey   string // Deepgram API key
	Model    string // Recognition model (e.g. "nova-2")
	Language string // BCP-47 language hint (e.g. "en")
}

// DeepgramClient transcribes pre-recorded audio through Deepgram's
// /v1/listen endpoint.
type DeepgramClient struct {
	config     Config
	httpClient *http.Client
}

// NewDeepgramClient creates a transcription client from config.
func NewDeepgramClient(config Config) *DeepgramClient {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}

	return &DeepgramClient{
		config: config,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// listenResponse mirrors the nested shape of Deepgram's transcription reply.
type listenResponse struct {
	Results struct {
		Channels []struct {
			Alternatives []struct {
				Transcript string  `json:"transcript"`
				Confidence float64 `json:"confidence"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}

// Transcribe uploads the clip and extracts the best transcript alternative.
func (c *DeepgramClient) Transcribe(ctx context.Context, audio []byte, mimeType string) (*Result, error) {
	query := url.Values{}
	if c.config.Model != "" {
		query.Set("model", c.config.Model)
	}
	if c.config.Language != "" {
		query.Set("language", c.config.Language)
	}

	endpoint := c.config.BaseURL + "/v1/listen"
	if encoded := query.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(audio))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Token "+c.config.APIKey)
	if mimeType != "" {
		httpReq.Header.Set("Content-Type", mimeType)
	}

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
		return nil, fmt.Errorf("recognition API returned %d: %s", httpResp.StatusCode, string(respBody))
	}

	var resp listenResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	if len(resp.Results.Channels) == 0 || len(resp.Results.Channels[0].Alternatives) == 0 {
		return nil, ErrNoSpeech
	}

	best := resp.Results.Channels[0].Alternatives[0]
	transcript := strings.TrimSpace(best.Transcript)
	if transcript == "" {
		return nil, ErrNoSpeech
	}

	return &Result{
		Transcript: transcript,
		Confidence: best.Confidence,
	}, nil
}
