package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Toulouse790/myfitherov3-sub000/pkg/version"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long: `Print detailed version information about the fithero binary.

Examples:
  # Print full version information
  fithero version

  # Print only the version number
  fithero version --short

  # Print version information as JSON
  fithero version --output json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVersion(cmd)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().Bool("short", false, "print only the version number")
	versionCmd.Flags().String("output", "text", "output format (text, json, yaml)")
}

func runVersion(cmd *cobra.Command) error {
	info := version.Get()

	short, _ := cmd.Flags().GetBool("short")
	if short {
		fmt.Println(info.Short())
		return nil
	}

	format, _ := cmd.Flags().GetString("output")
	switch format {
	case "json":
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal version info: %w", err)
		}
		fmt.Println(string(data))
	case "yaml":
		data, err := yaml.Marshal(info)
		if err != nil {
			return fmt.Errorf("failed to marshal version info: %w", err)
		}
		fmt.Print(string(data))
	default:
		fmt.Println(info.String())
		if version.IsDevBuild() {
			fmt.Println("\nThis is a development build.")
		}
	}
	return nil
}
