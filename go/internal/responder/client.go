package responder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mcdev12/sparring/go/internal/models"
	"github.com/rs/zerolog/log"
)

// Client calls the counter-argument service: one request, one response, may
// fail. Failures are returned to the controller, never retried here.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient creates a responder client.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

type generateRequest struct {
	UserInput string `json:"userInput"`
	Stance    string `json:"stance"`
}

type generateResponse struct {
	AIResponse string `json:"aiResponse"`
}

// Generate requests a counter-argument for the given argument and stance.
func (c *Client) Generate(ctx context.Context, userInput string, stance models.Stance) (string, error) {
	payload, err := json.Marshal(generateRequest{
		UserInput: userInput,
		Stance:    string(stance),
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("responder returned status code: %d, response: %s", resp.StatusCode, string(body))
	}

	var out generateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if out.AIResponse == "" {
		return "", fmt.Errorf("responder returned empty response")
	}

	log.Debug().Int("response_len", len(out.AIResponse)).Msg("counter-argument generated")
	return out.AIResponse, nil
}
