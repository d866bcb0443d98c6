package llm

import (
	"context"
	"time"

	"github.com/ppiankov/campaignkit/internal/model"
)

// Provider writes operator briefs with one LLM backend
type Provider interface {
	// Name returns the provider name
	Name() string

	// Brief writes an operator brief for a report
	Brief(ctx context.Context, req BriefRequest) (*BriefResponse, error)

	// Ping checks the backend is reachable and the configured model usable
	Ping(ctx context.Context) error
}

// BriefRequest is the input for one operator brief
type BriefRequest struct {
	Report model.Report

	// AllowedFigures are the only money amounts the brief may quote
	AllowedFigures []string

	// Prompt replaces the default prompt when set
	Prompt string

	Model     string
	MaxTokens int
}

// BriefResponse is a generated brief
type BriefResponse struct {
	Summary string

	// Figures are the money amounts the brief quoted, normalized by extractFigures
	Figures []string

	Model      string
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	Model     string
	APIKey    string
	BaseURL   string
	Timeout   int // seconds
	MaxTokens int

	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns the disabled default
func DefaultConfig() Config {
	return Config{
		Timeout:   30,
		MaxTokens: 600,
	}
}

const (
	defaultMaxTokens = 600
	briefTemperature = 0.2
)

// briefSettings are the per-call values after request, config and provider
// defaults are applied, in that order
type briefSettings struct {
	prompt    string
	model     string
	maxTokens int
}

func (c Config) settings(req BriefRequest, defaultModel string) briefSettings {
	s := briefSettings{
		prompt:    req.Prompt,
		model:     firstNonEmpty(req.Model, c.Model, defaultModel),
		maxTokens: req.MaxTokens,
	}
	if s.prompt == "" {
		s.prompt = BuildPrompt(req.Report, req.AllowedFigures)
	}
	if s.maxTokens == 0 {
		s.maxTokens = c.MaxTokens
	}
	if s.maxTokens == 0 {
		s.maxTokens = defaultMaxTokens
	}
	return s
}

// timeout returns the configured request timeout or fallback
func (c Config) timeout(fallback time.Duration) time.Duration {
	if c.Timeout > 0 {
		return time.Duration(c.Timeout) * time.Second
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
