package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
	logger  *slog.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fithero",
	Short: "FitHero - Health Recommendation Safety Engine",
	Long: `FitHero evaluates health and fitness recommendations against a CEL-based
medical safety rule catalog, computes personalized hydration needs, resolves
conflicts between sport, nutrition, sleep and hydration advice, and audits
the whole pipeline for demographic bias.

Examples:
  # Evaluate a subject in current weather conditions
  fithero evaluate --age 64 --weight 78 --sex M --condition heart_failure --lat 43.6 --lon 1.44

  # Evaluate with explicit environment
  fithero evaluate --age 30 --weight 70 --sex F --temperature 35 --humidity 80 --activity intense_training

  # Validate a custom safety rule catalog
  fithero rules validate ./custom-rules/

  # Run the fairness audit over the built-in population suites
  fithero audit`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initializeLogger()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Ensure logger is initialized before using it
		if logger == nil {
			initializeLogger()
		}
		logger.Error("Command execution failed", "error", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.fithero/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")
	rootCmd.PersistentFlags().StringSlice("rules-path", nil, "paths to additional safety rule directories or files")
	rootCmd.PersistentFlags().String("output", "table", "output format (table, json, yaml)")
	rootCmd.PersistentFlags().String("output-file", "", "output file path")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	rootCmd.PersistentFlags().Int("workers", 4, "maximum number of concurrent evaluations")
	rootCmd.PersistentFlags().String("timeout", "30s", "timeout for operations")

	// Bind flags to viper
	bindFlags := []string{
		"verbose",
		"log-level",
		"log-format",
		"rules-path",
		"output",
		"output-file",
		"no-color",
		"workers",
		"timeout",
	}

	for _, name := range bindFlags {
		if err := viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			cobra.CheckErr(fmt.Errorf("failed to bind flag %s: %w", name, err))
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in ~/.fithero and the working directory.
		viper.AddConfigPath(home + "/.fithero")
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Environment variables
	viper.SetEnvPrefix("FITHERO")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// initializeLogger sets up the logger based on configuration
func initializeLogger() {
	levelStr := viper.GetString("log-level")
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if viper.GetString("log-format") == "json" {
		handler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, handlerOpts)
	}

	logger = slog.New(handler)

	// Set as default logger
	slog.SetDefault(logger)
}

// GetLogger returns the configured logger instance
func GetLogger() *slog.Logger {
	if logger == nil {
		initializeLogger()
	}
	return logger
}
