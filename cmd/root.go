package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/sharvarianand/intervuex/internal/ai"
	"github.com/sharvarianand/intervuex/internal/ai/gemini"
	"github.com/sharvarianand/intervuex/internal/secrets"
	"github.com/sharvarianand/intervuex/internal/storage"
)

const (
	app = "intervuex"
)

type Config struct {
	Listen   string    `mapstructure:"listen"`
	Database string    `mapstructure:"database"`
	AI       *AIConfig `mapstructure:"ai"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
	MaxRetries int    `mapstructure:"max-retries"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "intervuex runs adaptive AI-driven mock interviews",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is intervuex.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)

		// We can't proceed if an explicitly requested config file is broken.
		if err := viper.ReadInConfig(); err != nil {
			log.Fatal(err)
		}
		return
	}

	viper.AddConfigPath(".")
	viper.SetConfigName(app + ".yaml")

	// The default config file is optional; every setting has a usable default.
	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}

// buildGenerator wires the Gemini content generator when configured. A nil
// generator is a valid result: the session loop runs on local pools and
// heuristics without one.
func buildGenerator(ctx context.Context, config *Config, logger *zap.Logger) ai.Generator {
	if config == nil || config.AI == nil || !config.AI.Enabled || config.AI.Gemini == nil {
		logger.Info("ai generation disabled, using local question pools")
		return nil
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: config.AI.Gemini.APIKeyFile,
	})
	if err != nil {
		logger.Warn("gemini api key unavailable, using local question pools",
			zap.Error(err),
			zap.String("hint", "set ai.gemini.api-key-file or GEMINI_API_KEY_FILE"))
		return nil
	}

	genLogger := logger.With(zap.Int("ai_retry_attempts", config.AI.Gemini.MaxRetries))

	generator, err := gemini.NewGenerator(ctx, apiKey, config.AI.Gemini.Model, config.AI.Gemini.MaxRetries, genLogger)
	if err != nil {
		logger.Warn("gemini client unavailable, using local question pools", zap.Error(err))
		return nil
	}
	return generator
}

// buildStore opens the configured SQLite database, degrading to the no-op
// store when none is configured or the open fails.
func buildStore(config *Config, logger *zap.Logger) storage.Store {
	if config == nil || config.Database == "" {
		logger.Info("no database configured, running non-durable")
		return storage.Noop{}
	}

	store, err := storage.NewSQLite(config.Database)
	if err != nil {
		logger.Warn("database unavailable, running non-durable",
			zap.String("database", config.Database),
			zap.Error(err))
		return storage.Noop{}
	}

	logger.Info("session persistence enabled", zap.String("database", config.Database))
	return store
}
