package models

// SafetyRule is one declarative medical safety rule. The guard is a CEL
// expression over the variables `profile`, `environment` and `amount`; when
// it evaluates to true the rule's effect is applied. The built-in catalog is
// embedded in the binary and forms a fixed, deterministic vocabulary —
// evaluation performs no I/O.
type SafetyRule struct {
	APIVersion string       `yaml:"apiVersion" json:"apiVersion"`
	Kind       string       `yaml:"kind" json:"kind"`
	Metadata   RuleMetadata `yaml:"metadata" json:"metadata"`
	Spec       RuleSpec     `yaml:"spec" json:"spec"`
}

// RuleMetadata contains naming, labels and annotations for a safety rule.
type RuleMetadata struct {
	Name        string            `yaml:"name" json:"name"`
	Labels      map[string]string `yaml:"labels,omitempty" json:"labels,omitempty"`
	Annotations map[string]string `yaml:"annotations,omitempty" json:"annotations,omitempty"`
}

// RuleSpec contains the guard expression and the effect applied when it
// fires.
type RuleSpec struct {
	CEL    string     `yaml:"cel" json:"cel"`
	Effect RuleEffect `yaml:"effect" json:"effect"`
}

// RuleEffect is what a triggered rule contributes to the validation verdict.
// Contributions from independently triggered rules are combined by the
// most-restrictive-wins combinator: ceilings are minimized, floors
// maximized, risk maximized, invalidation OR-ed.
type RuleEffect struct {
	Risk             RiskLevel `yaml:"risk,omitempty" json:"risk,omitempty"`
	Invalidate       bool      `yaml:"invalidate,omitempty" json:"invalidate,omitempty"`
	CeilingML        int       `yaml:"ceilingMl,omitempty" json:"ceilingMl,omitempty"`
	FloorML          int       `yaml:"floorMl,omitempty" json:"floorMl,omitempty"`
	Contraindication string    `yaml:"contraindication,omitempty" json:"contraindication,omitempty"`
	Alert            string    `yaml:"alert,omitempty" json:"alert,omitempty"`
	Warning          string    `yaml:"warning,omitempty" json:"warning,omitempty"`
	Action           string    `yaml:"action,omitempty" json:"action,omitempty"`
	Supervision      bool      `yaml:"supervision,omitempty" json:"supervision,omitempty"`
}

// SafetyRuleAPIVersion is the only accepted apiVersion for rule documents.
const SafetyRuleAPIVersion = "safety.myfithero.dev/v1"

// SafetyRuleKind is the only accepted kind for rule documents.
const SafetyRuleKind = "SafetyRule"

const (
	annotationTitle       = "safety.myfithero.dev/title"
	annotationVersion     = "safety.myfithero.dev/version"
	annotationDescription = "safety.myfithero.dev/description"
	labelRisk             = "safety.myfithero.dev/risk"
	labelCategory         = "safety.myfithero.dev/category"
)

// GetID returns the rule ID from metadata name.
func (r *SafetyRule) GetID() string {
	return r.Metadata.Name
}

// GetTitle returns the rule title from annotations.
func (r *SafetyRule) GetTitle() string {
	if r.Metadata.Annotations != nil {
		return r.Metadata.Annotations[annotationTitle]
	}
	return ""
}

// GetVersion returns the rule version from annotations.
func (r *SafetyRule) GetVersion() string {
	if r.Metadata.Annotations != nil {
		return r.Metadata.Annotations[annotationVersion]
	}
	return ""
}

// GetDescription returns the rule description from annotations.
func (r *SafetyRule) GetDescription() string {
	if r.Metadata.Annotations != nil {
		return r.Metadata.Annotations[annotationDescription]
	}
	return ""
}

// GetRisk returns the labelled risk level of the rule.
func (r *SafetyRule) GetRisk() RiskLevel {
	if r.Metadata.Labels != nil {
		return RiskLevel(r.Metadata.Labels[labelRisk])
	}
	return ""
}

// GetCategory returns the category from labels.
func (r *SafetyRule) GetCategory() string {
	if r.Metadata.Labels != nil {
		return r.Metadata.Labels[labelCategory]
	}
	return ""
}

// GetCELExpression returns the CEL guard expression.
func (r *SafetyRule) GetCELExpression() string {
	return r.Spec.CEL
}

// RuleEvaluation records one triggered rule during a validation pass.
type RuleEvaluation struct {
	RuleID    string     `json:"ruleId"`
	RuleName  string     `json:"ruleName"`
	Triggered bool       `json:"triggered"`
	Effect    RuleEffect `json:"effect"`
	Message   string     `json:"message,omitempty"`
}
