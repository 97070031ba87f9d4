package medical

import (
	"context"
	"fmt"

	"github.com/Toulouse790/myfitherov3-sub000/internal"
	"github.com/Toulouse790/myfitherov3-sub000/pkg/engine"
	"github.com/Toulouse790/myfitherov3-sub000/pkg/models"
	"github.com/Toulouse790/myfitherov3-sub000/pkg/parser"
)

// BuiltinRules loads the safety rule catalog embedded in the binary.
func BuiltinRules(ctx context.Context) ([]*models.SafetyRule, error) {
	p := parser.NewYAMLParser(true)
	rules, err := p.ParseRulesFromFS(ctx, internal.GetBuiltinFS(), "builtin/medical")
	if err != nil {
		return nil, fmt.Errorf("failed to load built-in safety rules: %w", err)
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("built-in safety rule catalog is empty")
	}
	return rules, nil
}

// NewDefaultValidator builds a validator over the built-in catalog with a
// fresh CEL engine, pre-compiling every rule.
func NewDefaultValidator(ctx context.Context) (*Validator, error) {
	rules, err := BuiltinRules(ctx)
	if err != nil {
		return nil, err
	}

	eng, err := engine.NewCELEngine()
	if err != nil {
		return nil, fmt.Errorf("failed to create evaluation engine: %w", err)
	}

	for _, rule := range rules {
		if err := eng.CompileRule(ctx, rule); err != nil {
			return nil, err
		}
	}

	return NewValidator(eng, rules), nil
}
