// Package testing runs fixture suites against safety rules. A fixture file
// sits next to its rule as <rule>-test.yaml and lists profile/environment
// cases with the expected trigger outcome.
package testing

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Toulouse790/myfitherov3-sub000/pkg/engine"
	"github.com/Toulouse790/myfitherov3-sub000/pkg/models"
)

// FixtureCase is one scenario evaluated against a rule's guard.
type FixtureCase struct {
	Name        string                   `yaml:"name"`
	Profile     models.BiometricProfile  `yaml:"profile"`
	Environment models.EnvironmentalData `yaml:"environment"`
	Amount      float64                  `yaml:"amount"`
	Trigger     bool                     `yaml:"trigger"`
}

// FixtureSuite binds fixture cases to the rule they exercise.
type FixtureSuite struct {
	Rule  string        `yaml:"rule"`
	Cases []FixtureCase `yaml:"cases"`
}

// CaseResult records the outcome of a single fixture case.
type CaseResult struct {
	Name     string        `json:"name"`
	Passed   bool          `json:"passed"`
	Expected bool          `json:"expected"`
	Actual   bool          `json:"actual"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`
}

// SuiteResult aggregates the outcomes of one fixture suite.
type SuiteResult struct {
	RuleID   string        `json:"ruleId"`
	Total    int           `json:"total"`
	Passed   int           `json:"passed"`
	Failed   int           `json:"failed"`
	Cases    []CaseResult  `json:"cases"`
	Duration time.Duration `json:"duration"`
}

// RuleTestRunner evaluates fixture suites with a shared CEL engine so a
// rule's guard is compiled once for the whole suite.
type RuleTestRunner struct {
	engine *engine.CELEngine
}

// NewRuleTestRunner creates a runner with a fresh evaluation engine.
func NewRuleTestRunner() (*RuleTestRunner, error) {
	eng, err := engine.NewCELEngine()
	if err != nil {
		return nil, fmt.Errorf("failed to create evaluation engine: %w", err)
	}
	return &RuleTestRunner{engine: eng}, nil
}

// LoadFixtureSuite reads a fixture suite from a YAML file.
func LoadFixtureSuite(path string) (*FixtureSuite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file %s: %w", path, err)
	}

	var suite FixtureSuite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("failed to parse fixture file %s: %w", path, err)
	}
	if len(suite.Cases) == 0 {
		return nil, fmt.Errorf("fixture file %s contains no cases", path)
	}
	return &suite, nil
}

// RunSuite evaluates every fixture case against the rule. The guard is
// compiled once up front; a compile failure fails the whole suite.
func (r *RuleTestRunner) RunSuite(ctx context.Context, rule *models.SafetyRule, suite *FixtureSuite) (*SuiteResult, error) {
	if rule == nil {
		return nil, fmt.Errorf("rule is nil")
	}
	if suite.Rule != "" && suite.Rule != rule.GetID() {
		return nil, fmt.Errorf("fixture suite targets rule %q, got %q", suite.Rule, rule.GetID())
	}

	if err := r.engine.CompileRule(ctx, rule); err != nil {
		return nil, err
	}

	start := time.Now()
	result := &SuiteResult{
		RuleID: rule.GetID(),
		Total:  len(suite.Cases),
		Cases:  make([]CaseResult, 0, len(suite.Cases)),
	}

	for _, tc := range suite.Cases {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		caseResult := r.runCase(ctx, rule, tc)
		if caseResult.Passed {
			result.Passed++
		} else {
			result.Failed++
		}
		result.Cases = append(result.Cases, caseResult)
	}

	result.Duration = time.Since(start)
	return result, nil
}

func (r *RuleTestRunner) runCase(ctx context.Context, rule *models.SafetyRule, tc FixtureCase) CaseResult {
	start := time.Now()
	result := CaseResult{Name: tc.Name, Expected: tc.Trigger}

	evaluation, err := r.engine.EvaluateRule(ctx, rule, engine.Input{
		Profile:     tc.Profile,
		Environment: tc.Environment,
		Amount:      tc.Amount,
	})
	result.Duration = time.Since(start)

	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.Actual = evaluation.Triggered
	result.Passed = result.Actual == result.Expected
	if !result.Passed {
		result.Error = fmt.Sprintf("expected trigger=%v, got %v", result.Expected, result.Actual)
	}
	return result
}
