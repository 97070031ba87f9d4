package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Toulouse790/myfitherov3-sub000/pkg/bias"
	"github.com/Toulouse790/myfitherov3-sub000/pkg/config"
	"github.com/Toulouse790/myfitherov3-sub000/pkg/hydration"
	"github.com/Toulouse790/myfitherov3-sub000/pkg/medical"
	"github.com/Toulouse790/myfitherov3-sub000/pkg/models"
	"github.com/Toulouse790/myfitherov3-sub000/pkg/parser"
	"github.com/Toulouse790/myfitherov3-sub000/pkg/progress"
	"github.com/Toulouse790/myfitherov3-sub000/pkg/reporter"
)

// auditCmd represents the audit command
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Run the fairness audit over population test suites",
	Long: `Run paired control/test profiles through the real recommendation pipeline
and flag demographic bias: under-protection of vulnerable groups, unjustified
output differences across sex, culture or medical status.

The built-in population suites cover vulnerable, intersectional, cultural and
medical cohorts. Custom suites can be added via --suite or the configuration
file.

Examples:
  # Audit with the built-in suites
  fithero audit

  # Add a custom population suite
  fithero audit --suite ./suites/regional.yaml

  # Machine-readable output for CI
  fithero audit --output json --output-file audit.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAudit(cmd)
	},
}

func init() {
	rootCmd.AddCommand(auditCmd)

	auditCmd.Flags().StringSlice("suite", nil, "custom population suite files (repeatable)")
	auditCmd.Flags().Bool("fail-on-critical", true, "exit non-zero when critical bias is detected")
	auditCmd.Flags().Bool("no-progress", false, "disable the progress bar")
}

func runAudit(cmd *cobra.Command) error {
	start := time.Now()
	ctx := cmd.Context()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Warn("Falling back to default configuration", "error", err)
		cfg = config.DefaultConfig()
	}

	suite, err := loadSuites(ctx, cmd, cfg)
	if err != nil {
		return err
	}
	cases := suite.All()
	logger.Info("Starting fairness audit", "cases", len(cases))

	validator, err := medical.NewDefaultValidator(ctx)
	if err != nil {
		return err
	}
	calculator := hydration.NewCalculator(validator)

	var engine bias.RecommendationEngine = bias.NewHydrationEngineAdapter(calculator, validator)

	noProgress, _ := cmd.Flags().GetBool("no-progress")
	var bar *progress.ProgressBar
	if !noProgress {
		// Two engine evaluations per paired case.
		bar = progress.NewProgressBar(2*len(cases), "Auditing")
		engine = &progressEngine{inner: engine, bar: bar}
	}

	harness := bias.NewHarness(engine, cfg.Audit.Workers)
	results, err := harness.Run(ctx, suite)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return fmt.Errorf("fairness audit failed: %w", err)
	}

	report := &models.AuditReport{
		Summary:   bias.Aggregate(results),
		Results:   results,
		Timestamp: start,
		Duration:  time.Since(start),
	}

	if err := writeAuditReport(ctx, report); err != nil {
		return err
	}

	failOnCritical, _ := cmd.Flags().GetBool("fail-on-critical")
	if (failOnCritical || cfg.Audit.FailOnCritical) && report.Summary.Critical > 0 {
		logger.Error("Critical bias detected", "critical", report.Summary.Critical)
		os.Exit(1)
	}
	return nil
}

// loadSuites merges the built-in population suites with any custom suite
// files from flags or configuration.
func loadSuites(ctx context.Context, cmd *cobra.Command, cfg *config.FitHeroConfig) (*models.PopulationSuite, error) {
	suite, err := bias.BuiltinSuite(ctx)
	if err != nil {
		return nil, err
	}

	paths, _ := cmd.Flags().GetStringSlice("suite")
	paths = append(paths, cfg.Audit.SuitePaths...)

	p := parser.NewYAMLParser(true)
	for _, path := range paths {
		custom, err := p.ParseSuiteFromFile(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("failed to load suite %s: %w", path, err)
		}
		suite.Vulnerable = append(suite.Vulnerable, custom.Vulnerable...)
		suite.Intersectional = append(suite.Intersectional, custom.Intersectional...)
		suite.Cultural = append(suite.Cultural, custom.Cultural...)
		suite.Medical = append(suite.Medical, custom.Medical...)
	}
	return suite, nil
}

// progressEngine advances the progress bar on every engine evaluation.
type progressEngine struct {
	inner bias.RecommendationEngine
	bar   *progress.ProgressBar
}

func (e *progressEngine) Evaluate(ctx context.Context, profile models.TestProfile) (models.EngineOutput, error) {
	out, err := e.inner.Evaluate(ctx, profile)
	e.bar.Increment()
	return out, err
}

func writeAuditReport(ctx context.Context, report *models.AuditReport) error {
	rep, err := reporter.NewFactory().CreateReporterWithOptions(
		viper.GetString("output"), viper.GetBool("no-color"), viper.GetBool("verbose"))
	if err != nil {
		return err
	}

	if outputFile := viper.GetString("output-file"); outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				logger.Warn("Failed to close output file", "error", err)
			}
		}()
		return rep.WriteAuditReport(ctx, report, f)
	}
	return rep.WriteAuditReport(ctx, report, os.Stdout)
}
