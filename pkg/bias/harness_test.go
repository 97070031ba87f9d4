package bias

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Toulouse790/myfitherov3-sub000/pkg/hydration"
	"github.com/Toulouse790/myfitherov3-sub000/pkg/medical"
	"github.com/Toulouse790/myfitherov3-sub000/pkg/models"
)

// staticEngine ignores the profile and always returns the same output. Used
// to verify that demographic-blind engines are flagged.
type staticEngine struct {
	out models.EngineOutput
}

func (e staticEngine) Evaluate(_ context.Context, _ models.TestProfile) (models.EngineOutput, error) {
	return e.out, nil
}

type failingEngine struct{}

func (failingEngine) Evaluate(_ context.Context, _ models.TestProfile) (models.EngineOutput, error) {
	return models.EngineOutput{}, errors.New("model unavailable")
}

type panickingEngine struct{}

func (panickingEngine) Evaluate(_ context.Context, _ models.TestProfile) (models.EngineOutput, error) {
	panic("nil map write")
}

func elderlyTestCase() models.BiasTestCase {
	base := models.TestProfile{
		Demographics: models.Demographics{Age: 30, Gender: "M"},
		Medical:      models.MedicalContext{FitnessLevel: "moderate", BMI: 22},
		Environmental: models.EnvironmentalData{
			Temperature: 35, Humidity: 60, UVIndex: 8, WindSpeed: 5, HeatIndex: 38,
		},
		Activity: models.ActivityData{
			Type: models.ActivityModerateExercise, Duration: 60, Intensity: 5,
			Location: models.LocationOutdoor,
		},
	}

	elderly := base
	elderly.Demographics.Age = 75

	return models.BiasTestCase{
		TestID:          "ELDERLY_HYDRATION_001",
		Category:        models.CategoryAge,
		Description:     "senior contre adulte par forte chaleur",
		ControlGroup:    base,
		TestGroup:       elderly,
		ExpectedOutcome: models.OutcomeControlledDifference,
		Criticality:     models.TierCritical,
	}
}

func TestRunFlagsAgeBlindEngine(t *testing.T) {
	engine := staticEngine{out: models.EngineOutput{
		TotalDailyNeed:  3000,
		AlertLevel:      models.AlertCaution,
		Recommendations: []string{"Buvez régulièrement", "Évitez les heures chaudes"},
	}}

	suite := &models.PopulationSuite{Vulnerable: []models.BiasTestCase{elderlyTestCase()}}

	results, err := NewHarness(engine, 2).Run(context.Background(), suite)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Run() returned %d results, want 1", len(results))
	}

	r := results[0]
	if !r.BiasDetected {
		t.Fatal("identical outputs for elderly vs control should be flagged")
	}
	if r.Passed {
		t.Error("flagged case must not pass")
	}

	found := false
	for _, bt := range r.BiasTypes {
		if bt.Type == models.BiasUnderProtection {
			found = true
		}
	}
	if !found {
		t.Errorf("BiasTypes = %v, want systematic_under_protection", r.BiasTypes)
	}

	if r.Severity != models.BiasSeverityCritical {
		t.Errorf("Severity = %s, want critical for a critical-tier directional hit", r.Severity)
	}
	if !r.CorrectionRequired {
		t.Error("critical-tier flagged case must require correction")
	}
}

func TestRunEngineErrorIsInconclusive(t *testing.T) {
	suite := &models.PopulationSuite{Vulnerable: []models.BiasTestCase{elderlyTestCase()}}

	results, err := NewHarness(failingEngine{}, 1).Run(context.Background(), suite)
	if err != nil {
		t.Fatalf("Run() error = %v, engine failures must not abort the suite", err)
	}

	r := results[0]
	if r.Error == "" {
		t.Fatal("failed evaluation must carry an error")
	}
	if r.Passed {
		t.Error("inconclusive case must not count as passed")
	}
	if r.BiasDetected {
		t.Error("inconclusive case must not count as flagged")
	}

	summary := Aggregate(results)
	if summary.Inconclusive != 1 {
		t.Errorf("Inconclusive = %d, want 1", summary.Inconclusive)
	}
	if summary.Flagged != 0 {
		t.Errorf("Flagged = %d, want 0", summary.Flagged)
	}
}

func TestRunContainsEnginePanics(t *testing.T) {
	suite := &models.PopulationSuite{Vulnerable: []models.BiasTestCase{elderlyTestCase()}}

	results, err := NewHarness(panickingEngine{}, 1).Run(context.Background(), suite)
	if err != nil {
		t.Fatalf("Run() error = %v, panics must not abort the suite", err)
	}
	if !strings.Contains(results[0].Error, "panicked") {
		t.Errorf("Error = %q, want panic record", results[0].Error)
	}
}

func TestRunEmptySuite(t *testing.T) {
	_, err := NewHarness(staticEngine{}, 1).Run(context.Background(), &models.PopulationSuite{})
	if err == nil {
		t.Fatal("empty suite must be rejected")
	}
}

func TestAggregateCountsAndCorrections(t *testing.T) {
	results := []models.BiasTestResult{
		{TestID: "A", Passed: true},
		{TestID: "B", BiasDetected: true, Severity: models.BiasSeverityModerate},
		{
			TestID:       "C",
			BiasDetected: true,
			Severity:     models.BiasSeverityCritical,
			BiasTypes: []models.BiasType{{
				Type:               models.BiasUnderProtection,
				Description:        "Sous-protection des seniors",
				AffectedPopulation: "Seniors 65+",
			}},
		},
		{TestID: "D", Error: "engine timeout"},
	}

	summary := Aggregate(results)
	if summary.TotalTests != 4 {
		t.Errorf("TotalTests = %d, want 4", summary.TotalTests)
	}
	if summary.Flagged != 2 {
		t.Errorf("Flagged = %d, want 2", summary.Flagged)
	}
	if summary.Critical != 1 {
		t.Errorf("Critical = %d, want 1", summary.Critical)
	}
	if summary.Inconclusive != 1 {
		t.Errorf("Inconclusive = %d, want 1", summary.Inconclusive)
	}
	if summary.RunID == "" {
		t.Error("RunID must be set")
	}

	if len(summary.Corrections) == 0 {
		t.Fatal("critical flagged result must generate corrections")
	}
	if !strings.Contains(summary.Corrections[0], "CORRECTION URGENTE : C") {
		t.Errorf("Corrections[0] = %q, want urgent directive for C", summary.Corrections[0])
	}
}

func TestBuiltinSuiteLoads(t *testing.T) {
	suite, err := BuiltinSuite(context.Background())
	if err != nil {
		t.Fatalf("BuiltinSuite() error = %v", err)
	}

	cases := suite.All()
	if len(cases) != 7 {
		t.Fatalf("builtin suite has %d cases, want 7", len(cases))
	}

	seen := make(map[string]bool)
	for _, tc := range cases {
		if seen[tc.TestID] {
			t.Errorf("duplicate testId %s", tc.TestID)
		}
		seen[tc.TestID] = true
		if !tc.Criticality.IsValid() {
			t.Errorf("test %s: invalid criticality %s", tc.TestID, tc.Criticality)
		}
	}
	if !seen["ELDERLY_HYDRATION_001"] {
		t.Error("builtin suite must include the elderly hydration case")
	}
}

func TestHydrationAdapterFullSuite(t *testing.T) {
	validator, err := medical.NewDefaultValidator(context.Background())
	if err != nil {
		t.Fatalf("NewDefaultValidator() error = %v", err)
	}
	engine := NewHydrationEngineAdapter(hydration.NewCalculator(validator), validator)

	suite, err := BuiltinSuite(context.Background())
	if err != nil {
		t.Fatalf("BuiltinSuite() error = %v", err)
	}

	results, err := NewHarness(engine, 4).Run(context.Background(), suite)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(results) != len(suite.All()) {
		t.Fatalf("Run() returned %d results, want %d", len(results), len(suite.All()))
	}

	for _, r := range results {
		if r.Error != "" {
			t.Errorf("test %s: unexpected evaluation error %q", r.TestID, r.Error)
		}
	}
}

// The calculated need for an elderly profile must never fall below that of an
// otherwise identical younger control.
func TestAuditNonRegressionElderly(t *testing.T) {
	tc := elderlyTestCase()
	calc := hydration.NewCalculator(nil)

	control := calc.Calculate(biometricFromTestProfile(tc.ControlGroup), tc.ControlGroup.Environmental, tc.ControlGroup.Activity)
	test := calc.Calculate(biometricFromTestProfile(tc.TestGroup), tc.TestGroup.Environmental, tc.TestGroup.Activity)

	if test.TotalDailyNeed < control.TotalDailyNeed {
		t.Errorf("elderly need = %d ml below control = %d ml", test.TotalDailyNeed, control.TotalDailyNeed)
	}
}
