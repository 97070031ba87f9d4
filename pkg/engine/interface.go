package engine

import (
	"context"

	"github.com/Toulouse790/myfitherov3-sub000/pkg/models"
)

// Input is the variable set a safety rule is evaluated against. It is built
// fresh per evaluation from caller-owned values; the engine never retains or
// mutates it.
type Input struct {
	Profile     models.BiometricProfile
	Environment models.EnvironmentalData
	Amount      float64 // proposed daily intake, ml
}

// Vars flattens the input into the CEL variable bindings `profile`,
// `environment` and `amount`.
func (in Input) Vars() map[string]interface{} {
	conditions := make([]string, 0, len(in.Profile.MedicalConditions))
	severities := make(map[string]string, len(in.Profile.MedicalConditions))
	for _, c := range in.Profile.MedicalConditions {
		conditions = append(conditions, string(c.Condition))
		severities[string(c.Condition)] = string(c.Severity)
	}

	return map[string]interface{}{
		"profile": map[string]interface{}{
			"age":          in.Profile.Age,
			"weight":       in.Profile.Weight,
			"height":       in.Profile.Height,
			"sex":          string(in.Profile.Sex),
			"fitnessLevel": string(in.Profile.FitnessLevel),
			"conditions":   conditions,
			"severities":   severities,
			"medications":  in.Profile.Medications(),
		},
		"environment": map[string]interface{}{
			"temperature": in.Environment.Temperature,
			"humidity":    in.Environment.Humidity,
			"uvIndex":     in.Environment.UVIndex,
			"windSpeed":   in.Environment.WindSpeed,
			"heatIndex":   in.Environment.HeatIndex,
		},
		"amount": in.Amount,
	}
}

// EvaluationEngine defines the interface for evaluating safety rules
// against an evaluation input.
type EvaluationEngine interface {
	// EvaluateRule evaluates a single rule; the returned evaluation records
	// whether the guard fired and the effect to apply.
	EvaluateRule(ctx context.Context, rule *models.SafetyRule, input Input) (*models.RuleEvaluation, error)

	// EvaluateRules evaluates multiple rules in order against one input.
	EvaluateRules(ctx context.Context, rules []*models.SafetyRule, input Input) ([]models.RuleEvaluation, error)

	// CompileRule pre-compiles a rule's CEL expression.
	CompileRule(ctx context.Context, rule *models.SafetyRule) error

	// ValidateExpression validates a CEL expression without executing it.
	ValidateExpression(ctx context.Context, expression string) error
}
