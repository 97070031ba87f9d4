package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/google/cel-go/ext"

	"github.com/Toulouse790/myfitherov3-sub000/pkg/models"
)

// CELEngine implements EvaluationEngine using Google's CEL (Common
// Expression Language). Compiled programs are cached per rule ID, so a
// shared engine evaluates the fixed catalog without recompilation.
type CELEngine struct {
	env *cel.Env

	mu       sync.RWMutex
	programs map[string]cel.Program
}

// NewCELEngine creates a new CEL evaluation engine with the safety-rule
// variable set and helper functions.
func NewCELEngine() (*CELEngine, error) {
	env, err := cel.NewEnv(
		// Core variables every safety rule is evaluated against
		cel.Variable("profile", cel.DynType),     // biometric snapshot
		cel.Variable("environment", cel.DynType), // weather context
		cel.Variable("amount", cel.DoubleType),   // proposed intake, ml

		// Standard CEL extensions
		ext.Strings(),
		ext.Math(),
		ext.Lists(),
		ext.Sets(),

		cel.Lib(&safetyLib{}),

		cel.HomogeneousAggregateLiterals(),
		cel.EagerlyValidateDeclarations(true),
		cel.DefaultUTCTimeZone(true),
		cel.OptionalTypes(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	return &CELEngine{
		env:      env,
		programs: make(map[string]cel.Program),
	}, nil
}

// CompileRule compiles a rule's CEL expression and caches the program.
func (e *CELEngine) CompileRule(ctx context.Context, rule *models.SafetyRule) error {
	ast, issues := e.env.Compile(rule.GetCELExpression())
	if issues != nil && issues.Err() != nil {
		return fmt.Errorf("failed to compile rule %s: %w", rule.GetID(), issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return fmt.Errorf("rule %s: CEL expression must return a boolean, got %s", rule.GetID(), ast.OutputType())
	}

	program, err := e.env.Program(ast)
	if err != nil {
		return fmt.Errorf("failed to create CEL program for rule %s: %w", rule.GetID(), err)
	}

	e.mu.Lock()
	e.programs[rule.GetID()] = program
	e.mu.Unlock()
	return nil
}

// ValidateExpression validates a CEL expression without executing it.
func (e *CELEngine) ValidateExpression(ctx context.Context, expression string) error {
	ast, issues := e.env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return fmt.Errorf("CEL compilation error: %w", issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return fmt.Errorf("CEL expression must return a boolean, got %s", ast.OutputType())
	}
	return nil
}

// EvaluateRule evaluates a single safety rule against the input. The
// evaluation records whether the guard fired; a CEL runtime error marks the
// rule as triggered with the error message, so an unevaluable rule fails
// conservative rather than silent.
func (e *CELEngine) EvaluateRule(ctx context.Context, rule *models.SafetyRule, input Input) (*models.RuleEvaluation, error) {
	result := &models.RuleEvaluation{
		RuleID:   rule.GetID(),
		RuleName: rule.GetTitle(),
		Effect:   rule.Spec.Effect,
	}

	program, err := e.compiled(ctx, rule)
	if err != nil {
		return nil, err
	}

	eval, _, err := program.Eval(input.Vars())
	if err != nil {
		result.Triggered = true
		result.Message = fmt.Sprintf("CEL evaluation error: %v", err)
		return result, nil
	}

	fired, ok := eval.Value().(bool)
	if !ok {
		result.Triggered = true
		result.Message = fmt.Sprintf("CEL expression must return a boolean value, got %T", eval.Value())
		return result, nil
	}

	result.Triggered = fired
	if fired {
		result.Message = rule.GetDescription()
	}
	return result, nil
}

// EvaluateRules evaluates multiple rules in catalog order against one
// input.
func (e *CELEngine) EvaluateRules(ctx context.Context, rules []*models.SafetyRule, input Input) ([]models.RuleEvaluation, error) {
	results := make([]models.RuleEvaluation, 0, len(rules))
	for _, rule := range rules {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		result, err := e.EvaluateRule(ctx, rule, input)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate rule %s: %w", rule.GetID(), err)
		}
		results = append(results, *result)
	}
	return results, nil
}

func (e *CELEngine) compiled(ctx context.Context, rule *models.SafetyRule) (cel.Program, error) {
	e.mu.RLock()
	program, ok := e.programs[rule.GetID()]
	e.mu.RUnlock()
	if ok {
		return program, nil
	}

	if err := e.CompileRule(ctx, rule); err != nil {
		return nil, err
	}

	e.mu.RLock()
	program, ok = e.programs[rule.GetID()]
	e.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("failed to retrieve compiled program for rule %s after compilation", rule.GetID())
	}
	return program, nil
}

// safetyLib provides additional CEL functions for safety rules.
type safetyLib struct{}

func (s *safetyLib) CompileOptions() []cel.EnvOption {
	return []cel.EnvOption{
		cel.Function("has_condition",
			cel.Overload("has_condition_dyn_string",
				[]*cel.Type{cel.DynType, cel.StringType},
				cel.BoolType,
				cel.BinaryBinding(hasCondition),
			),
		),
		cel.Function("takes_medication",
			cel.Overload("takes_medication_dyn_string",
				[]*cel.Type{cel.DynType, cel.StringType},
				cel.BoolType,
				cel.BinaryBinding(takesMedication),
			),
		),
	}
}

func (s *safetyLib) ProgramOptions() []cel.ProgramOption {
	return []cel.ProgramOption{}
}

// hasCondition checks if a profile declares a condition kind.
func hasCondition(lhs, rhs ref.Val) ref.Val {
	profile, ok := lhs.Value().(map[string]interface{})
	if !ok {
		return types.False
	}
	kind, ok := rhs.Value().(string)
	if !ok {
		return types.False
	}
	conditions, ok := profile["conditions"].([]string)
	if !ok {
		return types.False
	}
	for _, c := range conditions {
		if c == kind {
			return types.True
		}
	}
	return types.False
}

// takesMedication checks if a profile lists a medication.
func takesMedication(lhs, rhs ref.Val) ref.Val {
	profile, ok := lhs.Value().(map[string]interface{})
	if !ok {
		return types.False
	}
	name, ok := rhs.Value().(string)
	if !ok {
		return types.False
	}
	medications, ok := profile["medications"].([]string)
	if !ok {
		return types.False
	}
	for _, m := range medications {
		if m == name {
			return types.True
		}
	}
	return types.False
}
