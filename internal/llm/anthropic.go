package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	anthropicBaseURL      = "https://api.anthropic.com"
	anthropicAPIVersion   = "2023-06-01"
	anthropicDefaultModel = "claude-3-5-haiku-latest"
)

// AnthropicProvider writes briefs through the Messages API
type AnthropicProvider struct {
	config  Config
	baseURL string
	client  *http.Client
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	System      string             `json:"system,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Model string `json:"model"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// NewAnthropicProvider creates an Anthropic provider
func NewAnthropicProvider(config Config) (*AnthropicProvider, error) {
	if config.APIKey == "" {
		return nil, errors.New("Anthropic API key is required")
	}
	baseURL := strings.TrimRight(firstNonEmpty(config.BaseURL, anthropicBaseURL), "/")
	return &AnthropicProvider{
		config:  config,
		baseURL: baseURL,
		client:  newHTTPClient(config, 30*time.Second),
	}, nil
}

func (p *AnthropicProvider) Name() string {
	return "anthropic"
}

func (p *AnthropicProvider) headers() map[string]string {
	return map[string]string{
		"x-api-key":         p.config.APIKey,
		"anthropic-version": anthropicAPIVersion,
	}
}

// Ping lists models, which needs a valid key but spends no tokens
func (p *AnthropicProvider) Ping(ctx context.Context) error {
	err := doJSON(ctx, p.client, http.MethodGet, p.baseURL+"/v1/models", p.headers(), nil, nil, anthropicError)
	if err != nil {
		return fmt.Errorf("anthropic: %w", err)
	}
	return nil
}

func (p *AnthropicProvider) Brief(ctx context.Context, req BriefRequest) (*BriefResponse, error) {
	s := p.config.settings(req, anthropicDefaultModel)

	var resp anthropicResponse
	err := doJSON(ctx, p.client, http.MethodPost, p.baseURL+"/v1/messages", p.headers(), anthropicRequest{
		Model:       s.model,
		System:      systemPrompt,
		Messages:    []anthropicMessage{{Role: "user", Content: s.prompt}},
		MaxTokens:   s.maxTokens,
		Temperature: briefTemperature,
	}, &resp, anthropicError)
	if err != nil {
		return nil, fmt.Errorf("anthropic messages: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return nil, errors.New("anthropic returned no text content")
	}

	return finishBrief(text.String(), firstNonEmpty(resp.Model, s.model), resp.Usage.InputTokens+resp.Usage.OutputTokens), nil
}

// anthropicError reads {"type":"error","error":{"type":...,"message":...}}
func anthropicError(body []byte) string {
	var e struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &e) != nil || e.Error.Message == "" {
		return ""
	}
	if e.Error.Type != "" {
		return e.Error.Type + ": " + e.Error.Message
	}
	return e.Error.Message
}
