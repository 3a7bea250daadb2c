// Package cmd implements the catalog-browser CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	apiclient "github.com/donaldgifford/catalog-browser/internal/api/client"
	"github.com/donaldgifford/catalog-browser/internal/catalog"
	"github.com/donaldgifford/catalog-browser/internal/config"
)

const defaultConfigFile = "config.yaml"

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "catalog-browser",
		Short: "Browse a remote product catalog with infinite scroll",
		Long: "catalog-browser serves a product grid that loads the next page of a\n" +
			"remote catalog whenever the end of the list scrolls into view, and\n" +
			"offers the same incremental browsing from the terminal.",
		SilenceUsage: true,
	}
)

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", defaultConfigFile, "config file path")
	rootCmd.PersistentFlags().
		String("catalog-url", catalog.DefaultBaseURL, "catalog base URL")
	rootCmd.PersistentFlags().
		Int("page-size", 0, "products per page (default from config)")
	rootCmd.PersistentFlags().
		String("output", "table", "output format (table, json)")
	rootCmd.PersistentFlags().
		String("server", "http://localhost:8080", "API server URL for session commands")

	cobra.CheckErr(viper.BindPFlag("catalog-url", rootCmd.PersistentFlags().Lookup("catalog-url")))
	cobra.CheckErr(viper.BindPFlag("page-size", rootCmd.PersistentFlags().Lookup("page-size")))
	cobra.CheckErr(viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output")))
	cobra.CheckErr(viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server")))

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(browseCmd())
	rootCmd.AddCommand(sessionsCmd())
	rootCmd.AddCommand(versionCmd())
}

func initConfig() {
	viper.SetEnvPrefix("CB")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// loadConfig reads the config file, falling back to defaults when the
// default file is absent, then applies flag and CB_* environment overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist) && !rootCmd.PersistentFlags().Changed("config"):
		cfg = config.Default()
	default:
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if viper.IsSet("catalog-url") {
		cfg.Catalog.BaseURL = viper.GetString("catalog-url")
	}
	if n := viper.GetInt("page-size"); n > 0 {
		cfg.Catalog.PageSize = n
	}

	return cfg, nil
}

func newCatalogClient(cfg *config.Config) *catalog.HTTPClient {
	return catalog.NewHTTPClient(
		catalog.WithBaseURL(cfg.Catalog.BaseURL),
		catalog.WithUserAgent(cfg.Catalog.UserAgent+"/"+Version),
		catalog.WithTimeout(cfg.Catalog.Timeout),
		catalog.WithRateLimiter(catalog.NewRateLimiter(
			cfg.Catalog.RateLimit.PerSecond,
			cfg.Catalog.RateLimit.Burst,
		)),
	)
}

func newAPIClient() *apiclient.Client {
	return apiclient.New(viper.GetString("server"))
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}
