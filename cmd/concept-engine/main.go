// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the concept-engine CLI. It wires
// the semantic index, the embedding client, and the explanation engine
// behind explain, serve, and index subcommands.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hkrish/concept-engine/internal/embed"
	"github.com/hkrish/concept-engine/internal/explain"
	"github.com/hkrish/concept-engine/internal/index"
	"github.com/hkrish/concept-engine/internal/secrets"
	"github.com/hkrish/concept-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback when set, otherwise the secret value
// stored under key, otherwise "".
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the concept-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "concept-engine",
	Short: "Time-aware concept explainer over a semantic chunk index",
	Long: `concept-engine answers a free-text topic query with a structured,
stage-ordered explanation sized to the requested study time, plus a ranked
list of related topics for further exploration.

The answer is assembled from nearest-neighbor matches over a pre-built
semantic index of classified, summarized content chunks. Use explain for
one-off queries, serve for the HTTP API, and index to inspect or load the
chunk index.`,
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

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./concept-engine.yaml or ~/.config/concept-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("concept-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "concept-engine"))
		}
	}

	viper.SetEnvPrefix("CONCEPT_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// engineConfig assembles the typed configuration from viper with defaults
// suitable for a local ollama setup.
func engineConfig() types.Config {
	cfg := types.Config{
		Index: types.IndexConfig{
			Backend:    types.IndexBackend(viper.GetString("index.backend")),
			Path:       viper.GetString("index.path"),
			Collection: viper.GetString("index.collection"),
			InMemory:   viper.GetBool("index.in_memory"),
		},
		Embedding: types.EmbeddingConfig{
			Provider: types.EmbeddingProvider(viper.GetString("embedding.provider")),
			BaseURL:  viper.GetString("embedding.base_url"),
			Model:    viper.GetString("embedding.model"),
			APIKey:   viper.GetString("embedding.api_key"),
		},
		Server: types.ServerConfig{
			Addr:           viper.GetString("server.addr"),
			AllowedOrigins: viper.GetStringSlice("server.allowed_origins"),
		},
	}

	if cfg.Index.Backend == "" {
		cfg.Index.Backend = types.BackendChromem
	}
	if cfg.Index.Path == "" {
		if cfg.Index.Backend == types.BackendSQLite {
			cfg.Index.Path = filepath.Join("db", "concepts.db")
		} else {
			cfg.Index.Path = filepath.Join("db", "chromem")
		}
	}
	if cfg.Embedding.Provider == "" {
		cfg.Embedding.Provider = types.ProviderOllama
	}
	if cfg.Embedding.Model == "" {
		cfg.Embedding.Model = "all-minilm"
	}
	cfg.Embedding.APIKey = secretDefault("openai-api-key",
		secretDefault("openrouter-api-key", cfg.Embedding.APIKey))
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	return cfg
}

// openIndex opens the configured index backend.
func openIndex(cfg types.IndexConfig) (index.Store, error) {
	switch cfg.Backend {
	case types.BackendChromem:
		return index.NewChromemIndex(cfg)
	case types.BackendSQLite:
		return index.NewSQLiteIndex(cfg)
	default:
		return nil, fmt.Errorf("unknown index backend %q: use chromem or sqlite", cfg.Backend)
	}
}

// newEngine builds the explanation engine and returns a cleanup func for
// the index connection.
func newEngine(cfg types.Config) (*explain.Engine, func() error, error) {
	idx, err := openIndex(cfg.Index)
	if err != nil {
		return nil, nil, err
	}

	embedder, err := embed.NewEmbedder(cfg.Embedding)
	if err != nil {
		idx.Close()
		return nil, nil, err
	}

	return explain.New(idx, embedder), idx.Close, nil
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
