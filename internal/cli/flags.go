package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/ppiankov/campaignkit/internal/budget"
	"github.com/ppiankov/campaignkit/internal/model"
	"github.com/spf13/cobra"
)

// Flags shared by draft and batch
var (
	timeout     time.Duration
	userAgent   string
	maxBytes    int64
	noRobots    bool
	noFooter    bool
	insecureTLS bool
	httpProxy   string
	httpsProxy  string
	currency    string
	platforms   string
	overrides   []string
	llmEnabled  bool
	llmProvider string
	llmModel    string
)

func addEngineFlags(cmd *cobra.Command) {
	defaults := model.DefaultConfig()

	cmd.Flags().DurationVar(&timeout, "fetch-timeout", defaults.HTTP.Timeout, "timeout for fetching a remote submission")
	cmd.Flags().StringVar(&userAgent, "ua", defaults.HTTP.UserAgent, "HTTP User-Agent")
	cmd.Flags().Int64Var(&maxBytes, "max-bytes", defaults.HTTP.MaxBodyBytes, "max submission bytes to read")
	cmd.Flags().BoolVar(&noRobots, "no-robots", false, "ignore robots.txt when fetching URLs")
	cmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification (use for self-signed certs)")
	cmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	cmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
	cmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	cmd.Flags().StringVar(&currency, "currency", defaults.Engine.DefaultCurrency, "currency assumed when the form names none")

	cmd.Flags().StringVar(&platforms, "platforms", "", "comma-separated platforms to draft (default: every requested platform)")
	cmd.Flags().StringArrayVar(&overrides, "set", nil, "override a draft field, e.g. --set meta.name=\"Spring\" or --set budget=500 for all platforms")

	cmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM operator brief")
	cmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	cmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

// applyEngineFlags overlays explicitly set flags onto cfg
func applyEngineFlags(cmd *cobra.Command, cfg *model.Config) error {
	flags := cmd.Flags()
	if flags.Changed("fetch-timeout") {
		cfg.HTTP.Timeout = timeout
	}
	if flags.Changed("ua") {
		cfg.HTTP.UserAgent = userAgent
	}
	if flags.Changed("max-bytes") {
		cfg.HTTP.MaxBodyBytes = maxBytes
	}
	if noRobots {
		cfg.HTTP.RespectRobots = false
	}
	if insecureTLS {
		cfg.HTTP.InsecureTLS = true
	}
	if httpProxy != "" {
		cfg.HTTP.HTTPProxy = httpProxy
	}
	if httpsProxy != "" {
		cfg.HTTP.HTTPSProxy = httpsProxy
	}
	if noFooter {
		cfg.Output.IncludeFooter = false
	}
	if flags.Changed("currency") {
		code, ok := budget.NormalizeCode(currency)
		if !ok {
			return fmt.Errorf("invalid currency code %q", currency)
		}
		cfg.Engine.DefaultCurrency = code
	}
	cfg.Output.Verbose = verbose

	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel
	}
	return resolveAPIKey(&cfg.LLM)
}

// buildSelection turns --platforms and --set into a draft selection
func buildSelection(platformList string, sets []string) (model.Selection, error) {
	var sel model.Selection

	ps, err := model.ParsePlatformList(platformList)
	if err != nil {
		return sel, err
	}
	sel.Platforms = ps

	ov, err := parseOverrides(sets)
	if err != nil {
		return sel, err
	}
	sel.Overrides = ov
	return sel, nil
}

// parseOverrides reads "platform.field=value" entries. A bare "field=value"
// applies to every platform.
func parseOverrides(sets []string) (map[model.Platform]model.Overrides, error) {
	if len(sets) == 0 {
		return nil, nil
	}

	out := make(map[model.Platform]model.Overrides)
	put := func(p model.Platform, f model.Field, v string) {
		if out[p] == nil {
			out[p] = model.Overrides{}
		}
		out[p][f] = v
	}

	for _, s := range sets {
		key, value, ok := strings.Cut(s, "=")
		if !ok {
			return nil, fmt.Errorf("invalid override %q: expected field=value", s)
		}

		targets := model.AllPlatforms
		fieldName := key
		if p, f, scoped := strings.Cut(key, "."); scoped {
			platform, ok := model.ParsePlatform(p)
			if !ok {
				return nil, fmt.Errorf("invalid override %q: unknown platform %q", s, p)
			}
			targets = []model.Platform{platform}
			fieldName = f
		}

		field, ok := model.ParseField(fieldName)
		if !ok {
			return nil, fmt.Errorf("invalid override %q: unknown field %q", s, fieldName)
		}
		for _, p := range targets {
			put(p, field, value)
		}
	}
	return out, nil
}
