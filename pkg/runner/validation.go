// Package runner orchestrates rule catalog validation for the CLI: it walks
// rule files, validates each document and optionally runs the fixture suite
// sitting next to it.
package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Toulouse790/myfitherov3-sub000/pkg/parser"
	rtesting "github.com/Toulouse790/myfitherov3-sub000/pkg/testing"
	"github.com/Toulouse790/myfitherov3-sub000/pkg/utils"
	"github.com/Toulouse790/myfitherov3-sub000/pkg/validation"
)

var logger = slog.Default()

// FileReport is the validation outcome for one rule file.
type FileReport struct {
	Path      string                           `json:"path"`
	Valid     bool                             `json:"valid"`
	RuleCount int                              `json:"ruleCount"`
	LoadError string                           `json:"loadError,omitempty"`
	Rules     map[string]*RuleReport           `json:"rules,omitempty"`
	Fixtures  map[string]*rtesting.SuiteResult `json:"fixtures,omitempty"`
}

// RuleReport carries per-rule validation errors.
type RuleReport struct {
	Valid  bool                         `json:"valid"`
	Errors []validation.ValidationError `json:"errors,omitempty"`
}

// ValidationReport aggregates file reports for a whole path.
type ValidationReport struct {
	Path        string        `json:"path"`
	Valid       bool          `json:"valid"`
	FilesTotal  int           `json:"filesTotal"`
	RulesTotal  int           `json:"rulesTotal"`
	TestsRun    int           `json:"testsRun"`
	TestsFailed int           `json:"testsFailed"`
	Files       []*FileReport `json:"files"`
}

// RunValidation validates every rule file under path. With runFixtures set,
// each rule's <rule>-test.yaml suite is executed as well.
func RunValidation(ctx context.Context, path string, runFixtures bool) (*ValidationReport, error) {
	files, err := utils.CollectFiles(path, utils.RuleFileOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to collect rule files from %s: %w", path, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no rule files found under %s", path)
	}

	report := &ValidationReport{Path: path, Valid: true, FilesTotal: len(files)}

	yamlParser := parser.NewYAMLParser(false)
	var runner *rtesting.RuleTestRunner
	if runFixtures {
		runner, err = rtesting.NewRuleTestRunner()
		if err != nil {
			return nil, err
		}
	}

	for _, file := range files {
		fileReport := validateFile(ctx, yamlParser, runner, file)
		report.RulesTotal += fileReport.RuleCount
		for _, suite := range fileReport.Fixtures {
			report.TestsRun += suite.Total
			report.TestsFailed += suite.Failed
		}
		if !fileReport.Valid {
			report.Valid = false
		}
		report.Files = append(report.Files, fileReport)
	}

	return report, nil
}

func validateFile(ctx context.Context, yamlParser *parser.YAMLParser, runner *rtesting.RuleTestRunner, path string) *FileReport {
	fileReport := &FileReport{Path: path, Valid: true}

	f, err := os.Open(path)
	if err != nil {
		fileReport.Valid = false
		fileReport.LoadError = err.Error()
		return fileReport
	}
	rules, err := yamlParser.ParseRules(ctx, f)
	if cerr := f.Close(); cerr != nil {
		logger.Warn("Failed to close rule file", "path", path, "error", cerr)
	}
	if err != nil {
		fileReport.Valid = false
		fileReport.LoadError = err.Error()
		return fileReport
	}

	fileReport.RuleCount = len(rules)
	fileReport.Rules = make(map[string]*RuleReport, len(rules))

	for key, result := range validation.ValidateSafetyRules(rules) {
		fileReport.Rules[key] = &RuleReport{Valid: result.Valid, Errors: result.Errors}
		if !result.Valid {
			fileReport.Valid = false
		}
	}

	if runner == nil {
		return fileReport
	}

	fixturePath, ok := utils.FixtureFileFor(path)
	if !ok {
		return fileReport
	}
	suite, err := rtesting.LoadFixtureSuite(fixturePath)
	if err != nil {
		fileReport.Valid = false
		fileReport.LoadError = err.Error()
		return fileReport
	}

	fileReport.Fixtures = make(map[string]*rtesting.SuiteResult)
	for _, rule := range rules {
		if suite.Rule != "" && suite.Rule != rule.GetID() {
			continue
		}
		result, err := runner.RunSuite(ctx, rule, suite)
		if err != nil {
			fileReport.Valid = false
			fileReport.LoadError = err.Error()
			continue
		}
		fileReport.Fixtures[rule.GetID()] = result
		if result.Failed > 0 {
			fileReport.Valid = false
		}
	}
	return fileReport
}

// OutputJSON writes the report as indented JSON.
func OutputJSON(report *ValidationReport, w io.Writer) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal validation report: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// OutputText writes a human-readable summary of the report.
func OutputText(report *ValidationReport, w io.Writer, verbose bool) error {
	for _, file := range report.Files {
		status := "OK"
		if !file.Valid {
			status = "INVALID"
		}
		fmt.Fprintf(w, "%-8s %s (%d rules)\n", status, file.Path, file.RuleCount)

		if file.LoadError != "" {
			fmt.Fprintf(w, "         load error: %s\n", file.LoadError)
		}
		for name, rule := range file.Rules {
			if rule.Valid && !verbose {
				continue
			}
			for _, e := range rule.Errors {
				fmt.Fprintf(w, "         %s: %s\n", name, e.Error())
			}
		}
		for ruleID, suite := range file.Fixtures {
			fmt.Fprintf(w, "         fixtures %s: %d/%d passed\n", ruleID, suite.Passed, suite.Total)
			for _, c := range suite.Cases {
				if c.Passed && !verbose {
					continue
				}
				fmt.Fprintf(w, "           %s: %s\n", c.Name, caseStatus(c))
			}
		}
	}

	fmt.Fprintf(w, "\n%d files, %d rules", report.FilesTotal, report.RulesTotal)
	if report.TestsRun > 0 {
		fmt.Fprintf(w, ", %d fixture cases (%d failed)", report.TestsRun, report.TestsFailed)
	}
	if report.Valid {
		fmt.Fprintln(w, " — all valid")
	} else {
		fmt.Fprintln(w, " — validation FAILED")
	}
	return nil
}

func caseStatus(c rtesting.CaseResult) string {
	if c.Passed {
		return "passed"
	}
	if c.Error != "" {
		return c.Error
	}
	return "failed"
}

// ExitCode maps a report to a process exit code.
func ExitCode(report *ValidationReport) int {
	if report == nil || !report.Valid {
		return 1
	}
	return 0
}

// WriteReport renders the report in the requested format to stdout or a file.
func WriteReport(report *ValidationReport, format, outputFile string, verbose bool) error {
	var w io.Writer = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil {
				logger.Warn("Failed to close output file", "path", outputFile, "error", cerr)
			}
		}()
		w = f
	}

	switch format {
	case "json":
		return OutputJSON(report, w)
	default:
		return OutputText(report, w, verbose)
	}
}
