package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Toulouse790/myfitherov3-sub000/pkg/export"
	"github.com/Toulouse790/myfitherov3-sub000/pkg/medical"
	"github.com/Toulouse790/myfitherov3-sub000/pkg/models"
	"github.com/Toulouse790/myfitherov3-sub000/pkg/parser"
	"github.com/Toulouse790/myfitherov3-sub000/pkg/runner"
)

// rulesCmd represents the rules command
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Safety rule catalog management",
	Long: `Manage the medical safety rule catalog.

Subcommands:
- list: show the built-in and custom rules
- validate: validate a rule catalog and run its fixtures
- export: render the catalog as portable policy bundles

Examples:
  # List the built-in catalog
  fithero rules list

  # Validate a custom catalog with fixture tests
  fithero rules validate ./custom-rules/

  # Export policies grouped by category
  fithero rules export --group-by category`,
}

// rulesListCmd lists the rules in the catalog.
var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List safety rules in the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRulesList(cmd)
	},
}

// rulesValidateCmd validates a rule catalog directory.
var rulesValidateCmd = &cobra.Command{
	Use:   "validate <path>",
	Short: "Validate a safety rule catalog",
	Long: `Validate every rule file under the given path: schema conformance, guard
expression compilation and, when present, the rule's fixture suite
(<rule>-test.yaml next to the rule file).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRulesValidate(cmd, args[0])
	},
}

// rulesExportCmd exports the catalog as policy bundles.
var rulesExportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Export the rule catalog as policy bundles",
	Long: `Export safety rules as portable policy bundles for external enforcement.
Without a path the built-in catalog is exported.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) > 0 {
			path = args[0]
		}
		return runRulesExport(cmd, path)
	},
}

// rulesInitCmd scaffolds a custom rule with its fixture suite.
var rulesInitCmd = &cobra.Command{
	Use:   "init <name>",
	Short: "Scaffold a custom safety rule with a fixture suite",
	Long: `Create a custom safety rule template plus its fixture suite
(<rule>-test.yaml) in the given directory, ready to edit and validate.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRulesInit(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesValidateCmd)
	rulesCmd.AddCommand(rulesExportCmd)
	rulesCmd.AddCommand(rulesInitCmd)

	rulesValidateCmd.Flags().Bool("skip-fixtures", false, "skip fixture test suites")

	rulesInitCmd.Flags().String("dir", ".", "directory for the generated files")
	rulesInitCmd.Flags().String("category", "general", "rule category label")
	rulesInitCmd.Flags().String("risk", "medium", "rule risk level (low, medium, high, critical)")

	rulesExportCmd.Flags().String("group-by", "", "group policies into bundles (category, risk)")
	rulesExportCmd.Flags().String("name-prefix", "", "prefix for exported policy names")
}

func runRulesList(cmd *cobra.Command) error {
	ctx := cmd.Context()

	rules, err := medical.BuiltinRules(ctx)
	if err != nil {
		return err
	}

	custom, err := loadCustomRules(ctx)
	if err != nil {
		return err
	}
	rules = append(rules, custom...)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tRISK\tCATEGORY\tTITLE")
	for _, rule := range rules {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			rule.GetID(), rule.GetRisk(), rule.GetCategory(), rule.GetTitle())
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\n%d rules\n", len(rules))
	return nil
}

func runRulesValidate(cmd *cobra.Command, path string) error {
	ctx := cmd.Context()

	skipFixtures, _ := cmd.Flags().GetBool("skip-fixtures")
	report, err := runner.RunValidation(ctx, path, !skipFixtures)
	if err != nil {
		return err
	}

	format := viper.GetString("output")
	outputFile := viper.GetString("output-file")
	if err := runner.WriteReport(report, format, outputFile, viper.GetBool("verbose")); err != nil {
		return err
	}

	if code := runner.ExitCode(report); code != 0 {
		os.Exit(code)
	}
	return nil
}

func runRulesExport(cmd *cobra.Command, path string) error {
	ctx := cmd.Context()

	var rules []*models.SafetyRule
	var err error
	if path == "" {
		rules, err = medical.BuiltinRules(ctx)
	} else {
		rules, err = parser.NewYAMLParser(true).ParseRulesFromDirectory(ctx, path)
	}
	if err != nil {
		return err
	}

	groupBy, _ := cmd.Flags().GetString("group-by")
	namePrefix, _ := cmd.Flags().GetString("name-prefix")

	options := &export.Options{NamePrefix: namePrefix}
	switch groupBy {
	case "":
	case "category":
		options.GroupByCategory = true
	case "risk":
		options.GroupByRisk = true
	default:
		return fmt.Errorf("unknown group-by value: %s (expected category or risk)", groupBy)
	}

	result, err := export.ExportRules(rules, options)
	if err != nil {
		return err
	}
	for _, exportErr := range result.Errors {
		logger.Warn("Rule skipped during export", "error", exportErr)
	}

	data, err := result.YAML()
	if err != nil {
		return err
	}

	if outputFile := viper.GetString("output-file"); outputFile != "" {
		if err := os.WriteFile(outputFile, data, 0644); err != nil {
			return fmt.Errorf("failed to write export file: %w", err)
		}
		fmt.Printf("Exported %d bundles to %s\n", len(result.Bundles), outputFile)
		return nil
	}
	_, err = os.Stdout.Write(data)
	return err
}

func runRulesInit(cmd *cobra.Command, name string) error {
	dir, _ := cmd.Flags().GetString("dir")
	category, _ := cmd.Flags().GetString("category")
	risk, _ := cmd.Flags().GetString("risk")

	if !models.RiskLevel(risk).IsValid() {
		return fmt.Errorf("unknown risk level: %s", risk)
	}

	name = normalizeRuleName(name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	rulePath := filepath.Join(dir, name+".yaml")
	fixturePath := filepath.Join(dir, name+"-test.yaml")
	for _, path := range []string{rulePath, fixturePath} {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}

	title := cases.Title(language.Und).String(strings.ReplaceAll(strings.TrimSuffix(strings.TrimPrefix(name, "safety-"), "-001"), "-", " "))

	rule := fmt.Sprintf(`apiVersion: safety.myfithero.dev/v1
kind: SafetyRule
metadata:
  name: %s
  labels:
    safety.myfithero.dev/risk: %s
    safety.myfithero.dev/category: %s
  annotations:
    safety.myfithero.dev/title: "%s"
    safety.myfithero.dev/version: "1.0.0"
    safety.myfithero.dev/description: "Describe the hazardous situation this rule guards against"
spec:
  # Guard expression over profile, environment and amount (ml/day).
  # Helpers: has_condition(profile, 'heart_failure'), takes_medication(profile, 'diuretic')
  cel: "amount > 4000.0"
  effect:
    risk: %s
    ceilingMl: 4000
    warning: "Explain what the subject should do when this rule triggers"
`, name, risk, category, title, risk)

	fixture := fmt.Sprintf(`rule: %s
cases:
  - name: triggers above the ceiling
    profile:
      age: 30
      weight: 70
      sex: M
      fitnessLevel: moderate
    environment:
      temperature: 25
      humidity: 50
    amount: 4500
    trigger: true
  - name: stays quiet within limits
    profile:
      age: 30
      weight: 70
      sex: M
      fitnessLevel: moderate
    environment:
      temperature: 25
      humidity: 50
    amount: 2500
    trigger: false
`, name)

	if err := os.WriteFile(rulePath, []byte(rule), 0644); err != nil {
		return fmt.Errorf("failed to write rule: %w", err)
	}
	if err := os.WriteFile(fixturePath, []byte(fixture), 0644); err != nil {
		return fmt.Errorf("failed to write fixture suite: %w", err)
	}

	fmt.Printf("Created %s and %s\n", rulePath, fixturePath)
	fmt.Printf("Edit the guard, then run: fithero rules validate %s\n", dir)
	return nil
}

// normalizeRuleName coerces free text into the catalog naming scheme:
// safety-<slug>-NNN.
func normalizeRuleName(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "-")
	name = strings.ReplaceAll(name, "_", "-")
	if !strings.HasPrefix(name, "safety-") {
		name = "safety-" + name
	}
	if !regexp.MustCompile(`-\d{3}$`).MatchString(name) {
		name += "-001"
	}
	return name
}

// loadCustomRules parses every rules-path entry, directories and single
// files alike.
func loadCustomRules(ctx context.Context) ([]*models.SafetyRule, error) {
	paths := viper.GetStringSlice("rules-path")

	var rules []*models.SafetyRule
	p := parser.NewYAMLParser(true)
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("rules path %s: %w", path, err)
		}
		if info.IsDir() {
			parsed, err := p.ParseRulesFromDirectory(ctx, path)
			if err != nil {
				return nil, err
			}
			rules = append(rules, parsed...)
		} else {
			rule, err := p.ParseRuleFromFile(ctx, path)
			if err != nil {
				return nil, err
			}
			rules = append(rules, rule)
		}
	}
	return rules, nil
}
