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
	ollamaBaseURL      = "http://localhost:11434"
	ollamaDefaultModel = "llama3.2"
)

// OllamaProvider writes briefs with a local Ollama server
type OllamaProvider struct {
	config  Config
	baseURL string
	client  *http.Client
}

type ollamaChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaChatRequest struct {
	Model    string              `json:"model"`
	Messages []ollamaChatMessage `json:"messages"`
	Stream   bool                `json:"stream"`
	Options  ollamaOptions       `json:"options"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaChatResponse struct {
	Model           string            `json:"model"`
	Message         ollamaChatMessage `json:"message"`
	Done            bool              `json:"done"`
	PromptEvalCount int               `json:"prompt_eval_count"`
	EvalCount       int               `json:"eval_count"`
}

type ollamaTags struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// NewOllamaProvider creates an Ollama provider. No API key is needed.
func NewOllamaProvider(config Config) (*OllamaProvider, error) {
	baseURL := strings.TrimRight(firstNonEmpty(config.BaseURL, ollamaBaseURL), "/")
	return &OllamaProvider{
		config:  config,
		baseURL: baseURL,
		// local models are slow on first load
		client: newHTTPClient(config, 120*time.Second),
	}, nil
}

func (p *OllamaProvider) Name() string {
	return "ollama"
}

// Ping checks the server answers and has the configured model pulled
func (p *OllamaProvider) Ping(ctx context.Context) error {
	var tags ollamaTags
	if err := doJSON(ctx, p.client, http.MethodGet, p.baseURL+"/api/tags", nil, nil, &tags, ollamaError); err != nil {
		return fmt.Errorf("ollama at %s: %w", p.baseURL, err)
	}

	want := firstNonEmpty(p.config.Model, ollamaDefaultModel)
	for _, m := range tags.Models {
		if m.Name == want || strings.TrimSuffix(m.Name, ":latest") == want {
			return nil
		}
	}
	return fmt.Errorf("ollama at %s: model %q not pulled", p.baseURL, want)
}

func (p *OllamaProvider) Brief(ctx context.Context, req BriefRequest) (*BriefResponse, error) {
	s := p.config.settings(req, ollamaDefaultModel)

	var resp ollamaChatResponse
	err := doJSON(ctx, p.client, http.MethodPost, p.baseURL+"/api/chat", nil, ollamaChatRequest{
		Model: s.model,
		Messages: []ollamaChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: s.prompt},
		},
		Options: ollamaOptions{Temperature: briefTemperature, NumPredict: s.maxTokens},
	}, &resp, ollamaError)
	if err != nil {
		return nil, fmt.Errorf("ollama chat: %w", err)
	}
	if strings.TrimSpace(resp.Message.Content) == "" {
		return nil, errors.New("ollama returned an empty message")
	}

	return finishBrief(resp.Message.Content, firstNonEmpty(resp.Model, s.model), resp.PromptEvalCount+resp.EvalCount), nil
}

// ollamaError reads {"error": "..."}
func ollamaError(body []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &e) != nil {
		return ""
	}
	return e.Error
}
