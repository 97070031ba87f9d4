package export

import (
	"strings"
	"testing"

	"github.com/Toulouse790/myfitherov3-sub000/pkg/models"
)

func exportRuleFixture(name, category, risk string) *models.SafetyRule {
	return &models.SafetyRule{
		APIVersion: models.SafetyRuleAPIVersion,
		Kind:       models.SafetyRuleKind,
		Metadata: models.RuleMetadata{
			Name: name,
			Labels: map[string]string{
				"safety.myfithero.dev/risk":     risk,
				"safety.myfithero.dev/category": category,
			},
			Annotations: map[string]string{
				"safety.myfithero.dev/title":       "Title for " + name,
				"safety.myfithero.dev/description": "Description for " + name,
			},
		},
		Spec: models.RuleSpec{
			CEL:    `amount > 2000.0`,
			Effect: models.RuleEffect{Risk: models.RiskLevel(risk), CeilingML: 2000},
		},
	}
}

func TestExportRulesSingleBundle(t *testing.T) {
	rules := []*models.SafetyRule{
		exportRuleFixture("safety-heart-failure-001", "cardiac", "critical"),
		exportRuleFixture("safety-kidney-disease-001", "renal", "critical"),
	}

	result, err := ExportRules(rules, nil)
	if err != nil {
		t.Fatalf("ExportRules() error = %v", err)
	}
	if len(result.Bundles) != 1 {
		t.Fatalf("bundles = %d, want 1", len(result.Bundles))
	}
	bundle := result.Bundles[0]
	if bundle.APIVersion != models.SafetyRuleAPIVersion || len(bundle.Policies) != 2 {
		t.Errorf("bundle = %+v, want 2 policies under %s", bundle, models.SafetyRuleAPIVersion)
	}
	if bundle.Policies[0].Expression != "amount > 2000.0" {
		t.Errorf("expression = %q, want guard carried verbatim", bundle.Policies[0].Expression)
	}
}

func TestExportRulesGroupByCategory(t *testing.T) {
	rules := []*models.SafetyRule{
		exportRuleFixture("safety-heart-failure-001", "cardiac", "critical"),
		exportRuleFixture("safety-kidney-disease-001", "renal", "critical"),
		exportRuleFixture("safety-heat-wave-001", "", "high"),
	}

	result, err := ExportRules(rules, &Options{GroupByCategory: true})
	if err != nil {
		t.Fatalf("ExportRules() error = %v", err)
	}
	if len(result.Bundles) != 3 {
		t.Fatalf("bundles = %d, want 3 (cardiac, default, renal)", len(result.Bundles))
	}
	// Sorted group order
	if result.Bundles[0].GroupKey != "cardiac" || result.Bundles[1].GroupKey != "default" {
		t.Errorf("group order = %s, %s; want cardiac, default", result.Bundles[0].GroupKey, result.Bundles[1].GroupKey)
	}
}

func TestExportRulesNamePrefix(t *testing.T) {
	rules := []*models.SafetyRule{exportRuleFixture("safety-heart-failure-001", "cardiac", "critical")}
	result, err := ExportRules(rules, &Options{NamePrefix: "prod"})
	if err != nil {
		t.Fatalf("ExportRules() error = %v", err)
	}
	if got := result.Bundles[0].Policies[0].Name; got != "prod-safety-heart-failure-001" {
		t.Errorf("name = %s, want prefix applied", got)
	}
}

func TestExportRulesCollectsErrors(t *testing.T) {
	broken := exportRuleFixture("safety-broken-001", "", "low")
	broken.Spec.CEL = "  "
	rules := []*models.SafetyRule{broken, exportRuleFixture("safety-heart-failure-001", "cardiac", "critical")}

	result, err := ExportRules(rules, nil)
	if err != nil {
		t.Fatalf("ExportRules() error = %v", err)
	}
	if len(result.Errors) != 1 || len(result.Bundles[0].Policies) != 1 {
		t.Errorf("errors = %v, policies = %d; want broken rule skipped", result.Errors, len(result.Bundles[0].Policies))
	}
}

func TestYAMLMultiDocument(t *testing.T) {
	rules := []*models.SafetyRule{
		exportRuleFixture("safety-heart-failure-001", "cardiac", "critical"),
		exportRuleFixture("safety-kidney-disease-001", "renal", "critical"),
	}
	result, err := ExportRules(rules, &Options{GroupByCategory: true})
	if err != nil {
		t.Fatalf("ExportRules() error = %v", err)
	}

	data, err := result.YAML()
	if err != nil {
		t.Fatalf("YAML() error = %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "---") {
		t.Error("two bundles must render as separate YAML documents")
	}
	if !strings.Contains(out, "safety-heart-failure-001") {
		t.Errorf("missing policy in output: %s", out)
	}
}
