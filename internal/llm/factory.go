package llm

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ppiankov/campaignkit/internal/model"
)

type constructor func(Config) (Provider, error)

var constructors = map[string]constructor{
	"openai": func(c Config) (Provider, error) {
		p, err := NewOpenAIProvider(c)
		if err != nil {
			return nil, err
		}
		return p, nil
	},
	"anthropic": func(c Config) (Provider, error) {
		p, err := NewAnthropicProvider(c)
		if err != nil {
			return nil, err
		}
		return p, nil
	},
	"ollama": func(c Config) (Provider, error) {
		p, err := NewOllamaProvider(c)
		if err != nil {
			return nil, err
		}
		return p, nil
	},
}

// aliases map accepted spellings to a constructor name
var aliases = map[string]string{
	"claude": "anthropic",
	"local":  "ollama",
}

// NewProvider returns the provider named by config.Provider, or nil when
// it is empty
func NewProvider(config Config) (Provider, error) {
	name := strings.ToLower(strings.TrimSpace(config.Provider))
	if name == "" {
		return nil, nil
	}
	if alias, ok := aliases[name]; ok {
		name = alias
	}

	build, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: %s)", config.Provider, strings.Join(ProviderNames(), ", "))
	}
	return build(config)
}

// ProviderNames lists the supported provider names, sorted
func ProviderNames() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ConfigFromModel merges the LLM section with the HTTP proxy settings
func ConfigFromModel(llmConfig model.LLMConfig, httpConfig model.HTTPConfig) Config {
	return Config{
		Provider:   llmConfig.Provider,
		Model:      llmConfig.Model,
		APIKey:     llmConfig.APIKey,
		BaseURL:    llmConfig.BaseURL,
		Timeout:    llmConfig.Timeout,
		MaxTokens:  llmConfig.MaxTokens,
		HTTPProxy:  httpConfig.HTTPProxy,
		HTTPSProxy: httpConfig.HTTPSProxy,
		NoProxy:    httpConfig.NoProxy,
	}
}
