package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	pkgconfig "github.com/Toulouse790/myfitherov3-sub000/pkg/config"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management commands",
	Long: `Configuration management commands for FitHero.

Examples:
  # Initialize ~/.fithero/config.yaml with defaults
  fithero config init

  # Overwrite an existing configuration
  fithero config init --force

  # Show the effective configuration
  fithero config show`,
}

// configInitCmd creates the configuration file and directory layout.
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the ~/.fithero configuration",
	Long: `Create ~/.fithero/config.yaml with documented defaults, plus the custom
rules and audit suites directories.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigInit(cmd)
	},
}

// configShowCmd prints the effective configuration.
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShow()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	configInitCmd.Flags().Bool("force", false, "force overwrite existing configuration file")
}

func runConfigInit(cmd *cobra.Command) error {
	configPath, err := pkgconfig.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}

	if _, err := os.Stat(configPath); err == nil {
		force, _ := cmd.Flags().GetBool("force")
		if !force {
			return fmt.Errorf("configuration file already exists at %s, use --force to overwrite", configPath)
		}
	}

	if err := pkgconfig.EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to create configuration directories: %w", err)
	}
	if err := pkgconfig.SaveConfig(pkgconfig.DefaultConfig()); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	fmt.Printf("Configuration file created at: %s\n", configPath)
	fmt.Println("\nCustom safety rules go in the rules directory, audit suites in suites.")
	fmt.Println("Run 'fithero evaluate --help' to get started.")
	return nil
}

func runConfigShow() error {
	cfg, err := pkgconfig.LoadConfig()
	if err != nil {
		logger.Warn("Falling back to default configuration", "error", err)
		cfg = pkgconfig.DefaultConfig()
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to render configuration: %w", err)
	}
	fmt.Print(string(data))
	return nil
}
