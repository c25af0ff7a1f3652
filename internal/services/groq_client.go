package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/notemind/notemind-backend/internal/apierr"
	"github.com/notemind/notemind-backend/internal/config"
	"github.com/notemind/notemind-backend/internal/logger"
)

const chatCompletionsPath = "/openai/v1/chat/completions"

// CompletionOptions tune one completion call. A zero Temperature is omitted
// from the request so the upstream default applies.
type CompletionOptions struct {
	Temperature float64
	JSONMode    bool
}

// GroqClient is a thin wrapper around the Groq chat-completions endpoint.
// One call is one user-role prompt and one reply; there is no retry and no
// streaming. The transport timeout comes from config.
type GroqClient interface {
	Complete(ctx context.Context, prompt string, opts CompletionOptions) (string, error)
}

type groqClient struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewGroqClient(cfg config.GroqConfig, log *logger.Logger) (GroqClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("missing GROQ_API_KEY")
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = "https://api.groq.com"
	}
	return &groqClient{
		log:        log.With("service", "GroqClient"),
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *groqClient) Complete(ctx context.Context, prompt string, opts CompletionOptions) (string, error) {
	reqBody := chatCompletionRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: opts.Temperature,
	}
	if opts.JSONMode {
		reqBody.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(reqBody); err != nil {
		return "", apierr.Upstream(fmt.Errorf("Failed to encode completion request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+chatCompletionsPath, &buf)
	if err != nil {
		return "", apierr.Upstream(fmt.Errorf("Failed to build completion request: %w", err))
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apierr.Upstream(fmt.Errorf("Completion request failed: %w", err))
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return "", apierr.Upstream(fmt.Errorf("Failed to read completion response: %w", readErr))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn("Completion endpoint returned non-success status", "status", resp.StatusCode, "body", string(raw))
		return "", apierr.Upstream(fmt.Errorf("completion http %d", resp.StatusCode))
	}

	var parsed chatCompletionResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", apierr.Upstream(fmt.Errorf("Failed to decode completion response: %w", err))
	}
	if len(parsed.Choices) == 0 {
		return "", apierr.Upstream(fmt.Errorf("completion response has no choices"))
	}
	return parsed.Choices[0].Message.Content, nil
}
