// Package main is the entry point of the absa CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/siherrmann/absa/model"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command of the absa CLI.
var rootCmd = &cobra.Command{
	Use:   "absa",
	Short: "Aspect based sentiment analysis",
	Long: `absa extracts aspects and the opinions attached to them from text, scores
the sentiment around every aspect and of the whole document, and renders a
markdown report and HTML charts.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./absa.yaml or ~/.config/absa/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
}

func initConfig() {
	// .env is optional
	_ = godotenv.Load()

	defaults := model.DefaultConfig()
	viper.SetDefault("model_dir", defaults.ModelDir)
	viper.SetDefault("pos_model", defaults.POSModel)
	viper.SetDefault("pos_model_file", defaults.POSModelFile)
	viper.SetDefault("embedding_model", defaults.EmbeddingModel)
	viper.SetDefault("embedding_model_file", defaults.EmbeddingModelFile)
	viper.SetDefault("classifier_model", defaults.ClassifierModel)
	viper.SetDefault("classifier_model_file", defaults.ClassifierModelFile)
	viper.SetDefault("parser", defaults.Parser)
	viper.SetDefault("embedder", defaults.Embedder)
	viper.SetDefault("openai_model", defaults.OpenAIModel)
	viper.SetDefault("requests_per_second", defaults.RequestsPerSecond)
	viper.SetDefault("opinion_scoring", defaults.OpinionScoring)
	viper.SetDefault("concurrency", defaults.Concurrency)

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("absa")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "absa"))
		}
	}

	viper.SetEnvPrefix("ABSA")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig returns the analyzer configuration from defaults, config file and environment
func loadConfig() (model.Config, error) {
	var config model.Config
	if err := viper.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("reading config: %w", err)
	}
	return config, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
