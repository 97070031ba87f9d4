// Package export renders the safety rule catalog as a portable policy
// bundle, so external systems can enforce the same guards without linking
// the engine.
package export

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Toulouse790/myfitherov3-sub000/pkg/models"
	"github.com/Toulouse790/myfitherov3-sub000/pkg/version"
)

// Policy is one exported guard in the bundle. The expression is the rule's
// CEL guard verbatim; consumers evaluate it over the same profile,
// environment and amount variables.
type Policy struct {
	Name       string            `yaml:"name" json:"name"`
	Expression string            `yaml:"expression" json:"expression"`
	Message    string            `yaml:"message" json:"message"`
	Risk       string            `yaml:"risk" json:"risk"`
	Category   string            `yaml:"category,omitempty" json:"category,omitempty"`
	Effect     models.RuleEffect `yaml:"effect" json:"effect"`
	Metadata   map[string]string `yaml:"metadata,omitempty" json:"metadata,omitempty"`
}

// Bundle is a self-describing set of exported policies.
type Bundle struct {
	APIVersion string   `yaml:"apiVersion" json:"apiVersion"`
	Generator  string   `yaml:"generator" json:"generator"`
	GroupKey   string   `yaml:"groupKey,omitempty" json:"groupKey,omitempty"`
	Policies   []Policy `yaml:"policies" json:"policies"`
}

// Options controls export behavior.
type Options struct {
	// NamePrefix prepends a deployment-specific prefix to policy names.
	NamePrefix string
	// GroupByCategory emits one bundle per rule category.
	GroupByCategory bool
	// GroupByRisk emits one bundle per risk level.
	GroupByRisk bool
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{}
}

// Result holds exported bundles plus per-rule errors. A rule that cannot be
// exported never aborts the rest of the catalog.
type Result struct {
	Bundles []Bundle
	Errors  []error
}

// ExportRules converts a rule catalog into policy bundles.
func ExportRules(rules []*models.SafetyRule, options *Options) (*Result, error) {
	if len(rules) == 0 {
		return nil, fmt.Errorf("no rules to export")
	}
	if options == nil {
		options = DefaultOptions()
	}

	result := &Result{}
	groups := make(map[string][]Policy)

	for _, rule := range rules {
		policy, err := exportRule(rule, options)
		if err != nil {
			result.Errors = append(result.Errors, err)
			continue
		}
		groups[groupKey(rule, options)] = append(groups[groupKey(rule, options)], policy)
	}

	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		result.Bundles = append(result.Bundles, Bundle{
			APIVersion: models.SafetyRuleAPIVersion,
			Generator:  "fithero " + version.GetVersion(),
			GroupKey:   key,
			Policies:   groups[key],
		})
	}
	return result, nil
}

func exportRule(rule *models.SafetyRule, options *Options) (Policy, error) {
	if rule == nil {
		return Policy{}, fmt.Errorf("rule is nil")
	}
	if strings.TrimSpace(rule.Spec.CEL) == "" {
		return Policy{}, fmt.Errorf("rule %s has no guard expression", rule.GetID())
	}

	name := strings.ToLower(rule.GetID())
	if options.NamePrefix != "" {
		name = options.NamePrefix + "-" + name
	}

	policy := Policy{
		Name:       name,
		Expression: rule.GetCELExpression(),
		Message:    exportMessage(rule),
		Risk:       string(rule.GetRisk()),
		Category:   rule.GetCategory(),
		Effect:     rule.Spec.Effect,
		Metadata: map[string]string{
			"safety.myfithero.dev/rule-id": rule.GetID(),
			"safety.myfithero.dev/title":   rule.GetTitle(),
		},
	}
	if v := rule.GetVersion(); v != "" {
		policy.Metadata["safety.myfithero.dev/version"] = v
	}
	return policy, nil
}

func exportMessage(rule *models.SafetyRule) string {
	if description := rule.GetDescription(); description != "" {
		return description
	}
	title := rule.GetTitle()
	if title == "" {
		title = rule.GetID()
	}
	return fmt.Sprintf("Safety rule '%s' triggered", title)
}

func groupKey(rule *models.SafetyRule, options *Options) string {
	switch {
	case options.GroupByCategory:
		if category := rule.GetCategory(); category != "" {
			return category
		}
		return "default"
	case options.GroupByRisk:
		if risk := rule.GetRisk(); risk != "" {
			return string(risk)
		}
		return "default"
	default:
		return ""
	}
}

// YAML renders bundles as a multi-document YAML stream.
func (r *Result) YAML() ([]byte, error) {
	var output strings.Builder
	for i, bundle := range r.Bundles {
		if i > 0 {
			output.WriteString("---\n")
		}
		data, err := yaml.Marshal(bundle)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal bundle %q: %w", bundle.GroupKey, err)
		}
		output.Write(data)
	}
	return []byte(output.String()), nil
}
