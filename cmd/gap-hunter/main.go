// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the gap-hunter CLI.
package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/gap-hunter/internal/secrets"
	"github.com/pdiddy/gap-hunter/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the gap-hunter CLI.
var rootCmd = &cobra.Command{
	Use:   "gap-hunter",
	Short: "Hunt research gaps in recent academic literature",
	Long: `gap-hunter queries academic APIs (Semantic Scholar, CORE, Crossref) for
recent papers on a topic, then suggests candidate research gaps with a
heuristic novelty score, expanded search keywords, and next-step ideas.

Run "gap-hunter hunt <topic>" for a one-shot hunt, "gap-hunter hunt" with
no arguments for an interactive session, or "gap-hunter serve" for the
browser surface.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./gap-hunter.yaml or ~/.config/gap-hunter/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("gap-hunter")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "gap-hunter"))
		}
	}

	viper.SetEnvPrefix("GAP_HUNTER")
	viper.AutomaticEnv()

	viper.SetDefault("http.timeout", 10*time.Second)
	viper.SetDefault("http.user_agent", "gap-hunter/"+version)
	viper.SetDefault("search.max_per_source", 5)
	viper.SetDefault("search.inter_backend_delay", time.Second)
	viper.SetDefault("heuristic.recency_window_years", 5)
	viper.SetDefault("heuristic.max_records", 5)
	viper.SetDefault("server.addr", ":8080")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// buildConfig assembles the pipeline configuration from viper settings
// and loaded secrets. Environment variables win over secret files.
func buildConfig() types.PipelineConfig {
	return types.PipelineConfig{
		Search: types.SearchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("http.timeout"),
				UserAgent: viper.GetString("http.user_agent"),
			},
			MaxPerSource:          viper.GetInt("search.max_per_source"),
			InterBackendDelay:     viper.GetDuration("search.inter_backend_delay"),
			SemanticScholarAPIKey: secrets.Get(loadedSecrets, "s2-api-key"),
			COREAPIKey:            secrets.Get(loadedSecrets, "core-api-key"),
			GoogleAPIKey:          secrets.Get(loadedSecrets, "google-api-key"),
			GoogleCSEID:           secrets.Get(loadedSecrets, "google-cse-id"),
			ContactEmail:          secrets.Get(loadedSecrets, "contact-email"),
		},
		Heuristic: types.HeuristicConfig{
			RecencyWindowYears: viper.GetInt("heuristic.recency_window_years"),
			MaxRecords:         viper.GetInt("heuristic.max_records"),
			Seed:               viper.GetInt64("heuristic.seed"),
		},
		Server: types.ServerConfig{
			Addr: viper.GetString("server.addr"),
		},
	}
}

// httpClient builds the shared HTTP client from the config timeout.
func httpClient(cfg types.PipelineConfig) *http.Client {
	return &http.Client{Timeout: cfg.Search.Timeout}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
