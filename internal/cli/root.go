package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/campaignkit/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is set at build time with -ldflags "-X .../internal/cli.Version=..."
var Version = "v0.3.0"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "campaignkit",
	Short: "campaignkit - turn intake form submissions into ad campaign drafts",
	Long: `campaignkit reads a campaign intake form submission (an emailed HTML
table, a fixed-width text export or "Question: Answer" lines) and turns it
into draft campaigns for Google Ads, Meta, LinkedIn and TikTok.

It extracts the answers, detects which platforms were requested, splits the
budget between them, checks platform minimum spends and target-language
locales, and scores how ready the drafts are.

Drafts are proposals. campaignkit never submits anything to an ad platform.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "campaignkit %s\n", Version)
	},
}

// envKeys are the config keys readable from CAMPAIGNKIT_* variables,
// e.g. CAMPAIGNKIT_HTTP_TIMEOUT for http.timeout
var envKeys = []string{
	"engine.default_currency",
	"http.timeout",
	"http.user_agent",
	"http.max_body_bytes",
	"http.insecure_tls",
	"http.respect_robots",
	"http.http_proxy",
	"http.https_proxy",
	"http.no_proxy",
	"cache.enabled",
	"cache.ttl",
	"cache.max_entries",
	"concurrency.workers",
	"rate_limiting.requests_per_second",
	"rate_limiting.burst_size",
	"server.addr",
	"server.max_body_bytes",
	"server.read_timeout",
	"server.log_level",
	"output.include_footer",
	"llm.provider",
	"llm.model",
	"llm.api_key",
	"llm.base_url",
	"llm.timeout",
	"llm.max_tokens",
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.campaignkit/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home + "/.campaignkit")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("CAMPAIGNKIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range envKeys {
		_ = viper.BindEnv(key)
	}

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig overlays the config file and environment onto the defaults
func loadConfig(v *viper.Viper) (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// resolveAPIKey fills the LLM key from the provider's conventional variable
func resolveAPIKey(cfg *model.LLMConfig) error {
	if cfg.Provider == "" || cfg.APIKey != "" {
		return nil
	}

	switch strings.ToLower(cfg.Provider) {
	case "openai":
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama", "local":
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" && cfg.BaseURL == "" {
			cfg.BaseURL = baseURL
		}
	}
	return nil
}
