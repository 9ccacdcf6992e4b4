package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/bankline/bankline/pkg/config"
	"github.com/bankline/bankline/pkg/domain"
)

// CompletionClient calls an OpenAI-style chat-completion endpoint with a
// bearer key.
type CompletionClient struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewCompletionClient creates a client from config.
func NewCompletionClient(cfg config.Assistant) *CompletionClient {
	return &CompletionClient{
		baseURL:    cfg.ApiUrl,
		apiKey:     cfg.ApiKey,
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
	}
}

// Configured reports whether a usable (non-placeholder) API key is set.
func (c *CompletionClient) Configured() bool {
	return c.apiKey != "" && c.apiKey != placeholderKey
}

type completionRequest struct {
	Model    string              `json:"model"`
	Messages []completionMessage `json:"messages"`
}

type completionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message completionMessage `json:"message"`
	} `json:"choices"`
}

// Complete sends the user message and returns the first choice.
func (c *CompletionClient) Complete(ctx context.Context, message string) (domain.AssistantReply, error) {
	payload, err := json.Marshal(completionRequest{
		Model: c.model,
		Messages: []completionMessage{
			{Role: "system", Content: "You are a helpful financial assistant for a mobile banking app."},
			{Role: "user", Content: message},
		},
	})
	if err != nil {
		return domain.AssistantReply{}, fmt.Errorf("failed to encode completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return domain.AssistantReply{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.AssistantReply{}, fmt.Errorf("failed to reach completion API: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.AssistantReply{}, fmt.Errorf("completion API returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return domain.AssistantReply{}, fmt.Errorf("failed to decode completion response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return domain.AssistantReply{}, fmt.Errorf("completion API returned no choices")
	}
	return domain.AssistantReply{
		Text:  parsed.Choices[0].Message.Content,
		Model: parsed.Model,
	}, nil
}
