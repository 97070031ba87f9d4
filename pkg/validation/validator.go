// Package validation performs structural and semantic validation of safety
// rule documents before they enter a catalog.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/ext"

	"github.com/Toulouse790/myfitherov3-sub000/pkg/models"
)

// ValidationError represents a single validation error with field context.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationResult holds the outcome of validating one rule document.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

func (r *ValidationResult) addError(field, message string) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: message})
}

// ruleNamePattern enforces the catalog naming scheme: a safety- prefix,
// lowercase words and a three-digit sequence number.
var ruleNamePattern = regexp.MustCompile(`^safety-[a-z]+(-[a-z]+)*-\d{3}$`)

// ValidateSafetyRule validates a rule document field by field. All problems
// are collected rather than failing on the first, so an author sees every
// issue in one pass.
func ValidateSafetyRule(rule *models.SafetyRule) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if rule == nil {
		result.addError("rule", "rule document is nil")
		return result
	}

	validateHeader(rule, result)
	validateMetadata(rule, result)
	validateEffect(rule, result)
	validateExpression(rule, result)

	return result
}

func validateHeader(rule *models.SafetyRule, result *ValidationResult) {
	if rule.APIVersion == "" {
		result.addError("apiVersion", "apiVersion is required")
	} else if rule.APIVersion != models.SafetyRuleAPIVersion {
		result.addError("apiVersion", fmt.Sprintf("apiVersion must be %q, got %q", models.SafetyRuleAPIVersion, rule.APIVersion))
	}

	if rule.Kind == "" {
		result.addError("kind", "kind is required")
	} else if rule.Kind != models.SafetyRuleKind {
		result.addError("kind", fmt.Sprintf("kind must be %q, got %q", models.SafetyRuleKind, rule.Kind))
	}
}

func validateMetadata(rule *models.SafetyRule, result *ValidationResult) {
	name := rule.Metadata.Name
	if name == "" {
		result.addError("metadata.name", "name is required")
	} else if !ruleNamePattern.MatchString(name) {
		result.addError("metadata.name", fmt.Sprintf("name %q must match %s", name, ruleNamePattern.String()))
	}

	if rule.GetTitle() == "" {
		result.addError("metadata.annotations", "title annotation is required")
	}
	if rule.GetDescription() == "" {
		result.addError("metadata.annotations", "description annotation is required")
	}

	if risk := rule.GetRisk(); risk == "" {
		result.addError("metadata.labels", "risk label is required")
	} else if !risk.IsValid() {
		result.addError("metadata.labels", fmt.Sprintf("unknown risk level %q", risk))
	}
}

// validateEffect checks that a triggered rule would actually contribute
// something to the combined verdict.
func validateEffect(rule *models.SafetyRule, result *ValidationResult) {
	effect := rule.Spec.Effect

	if effect.CeilingML < 0 {
		result.addError("spec.effect.ceilingMl", "ceiling must not be negative")
	}
	if effect.FloorML < 0 {
		result.addError("spec.effect.floorMl", "floor must not be negative")
	}
	if effect.CeilingML > 0 && effect.FloorML > effect.CeilingML {
		result.addError("spec.effect", fmt.Sprintf("floor %d ml exceeds ceiling %d ml", effect.FloorML, effect.CeilingML))
	}
	if effect.Risk != "" && !effect.Risk.IsValid() {
		result.addError("spec.effect.risk", fmt.Sprintf("unknown risk level %q", effect.Risk))
	}

	if isEmptyEffect(effect) {
		result.addError("spec.effect", "effect contributes nothing: set a risk, ceiling, floor, message or flag")
	}
}

func isEmptyEffect(effect models.RuleEffect) bool {
	return effect.Risk == "" &&
		!effect.Invalidate &&
		effect.CeilingML == 0 &&
		effect.FloorML == 0 &&
		effect.Contraindication == "" &&
		effect.Alert == "" &&
		effect.Warning == "" &&
		effect.Action == "" &&
		!effect.Supervision
}

// validateExpression compiles the CEL guard in a throwaway environment so
// authoring mistakes surface before the rule ever reaches an engine.
func validateExpression(rule *models.SafetyRule, result *ValidationResult) {
	expression := strings.TrimSpace(rule.Spec.CEL)
	if expression == "" {
		result.addError("spec.cel", "CEL guard expression is required")
		return
	}

	env, err := cel.NewEnv(
		cel.Variable("profile", cel.DynType),
		cel.Variable("environment", cel.DynType),
		cel.Variable("amount", cel.DoubleType),
		ext.Strings(),
		ext.Math(),
		ext.Lists(),
		ext.Sets(),
		cel.Function("has_condition",
			cel.Overload("has_condition_dyn_string",
				[]*cel.Type{cel.DynType, cel.StringType}, cel.BoolType),
		),
		cel.Function("takes_medication",
			cel.Overload("takes_medication_dyn_string",
				[]*cel.Type{cel.DynType, cel.StringType}, cel.BoolType),
		),
	)
	if err != nil {
		result.addError("spec.cel", fmt.Sprintf("failed to create CEL environment: %v", err))
		return
	}

	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		result.addError("spec.cel", fmt.Sprintf("CEL compilation failed: %v", issues.Err()))
		return
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		result.addError("spec.cel", fmt.Sprintf("guard must return a boolean, got %s", ast.OutputType()))
	}
}

// ValidateSafetyRules validates a batch and reports results keyed by rule
// name. Unnamed rules are keyed by their position.
func ValidateSafetyRules(rules []*models.SafetyRule) map[string]*ValidationResult {
	results := make(map[string]*ValidationResult, len(rules))
	for i, rule := range rules {
		key := fmt.Sprintf("rule[%d]", i)
		if rule != nil && rule.Metadata.Name != "" {
			key = rule.Metadata.Name
		}
		results[key] = ValidateSafetyRule(rule)
	}
	return results
}
