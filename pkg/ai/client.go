package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Config holds the chat-completions client configuration.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// ChatClient is the minimal completion surface the gateway needs: one system
// message, one user message, sampling temperature and an output-length cap.
type ChatClient interface {
	ChatCompletion(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error)
}

// Disabled returns a client whose calls always fail. It stands in when no API
// key is configured, so enrichment degrades to error records instead of nil
// panics.
func Disabled() ChatClient {
	return disabledClient{}
}

type disabledClient struct{}

func (disabledClient) ChatCompletion(context.Context, string, string, float64, int) (string, error) {
	return "", fmt.Errorf("ai client not configured")
}

type openAIClient struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

func NewChatClient(cfg Config) (ChatClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("missing OpenAI API key")
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	model := cfg.Model
	if model == "" {
		model = "gpt-4"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &openAIClient{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		model:   model,
		// Bounded client timeout: a hung gateway call must not hang the
		// request indefinitely.
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

func (c *openAIClient) ChatCompletion(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error) {
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	type msg struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	type reqBody struct {
		Model       string  `json:"model"`
		Messages    []msg   `json:"messages"`
		Temperature float64 `json:"temperature,omitempty"`
		MaxTokens   int     `json:"max_tokens,omitempty"`
	}
	body := reqBody{
		Model: c.model,
		Messages: []msg{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := c.baseURL + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}
	defer resp.Body.Close()

	respRaw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("openai http %d: %s", resp.StatusCode, string(respRaw))
	}

	type choice struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	}
	type respBody struct {
		Choices []choice `json:"choices"`
	}
	var decoded respBody
	if err := json.Unmarshal(respRaw, &decoded); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("openai response missing choices")
	}
	return decoded.Choices[0].Message.Content, nil
}
