package generators

import (
	"context"
	"testing"
	"time"

	"github.com/Toulouse790/myfitherov3-sub000/pkg/hydration"
	"github.com/Toulouse790/myfitherov3-sub000/pkg/models"
)

func fixedClock() time.Time {
	return time.Date(2026, 7, 10, 10, 0, 0, 0, time.UTC)
}

func baseInput() Input {
	return Input{
		Profile: models.UserProfile{Age: 30, FitnessLevel: models.FitnessModerate},
		Biometric: models.BiometricProfile{
			Age: 30, Weight: 70, Height: 175,
			Sex: models.SexMale, FitnessLevel: models.FitnessModerate,
		},
		Environment: models.EnvironmentalData{Temperature: 22, Humidity: 50, UVIndex: 4, HeatIndex: 22},
		Activity: models.ActivityData{
			Type: models.ActivityModerateExercise, Duration: 60, Intensity: 5,
			Location: models.LocationOutdoor,
		},
		SleepHours: 7.5,
		Clock:      fixedClock,
	}
}

func TestSportGeneratorTiers(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Input)
		wantTier models.IntensityTier
		wantRisk models.AlertLevel
	}{
		{
			"moderate session in mild weather",
			func(*Input) {},
			models.IntensityTierModerate, models.AlertSafe,
		},
		{
			"intense training",
			func(in *Input) { in.Activity.Type = models.ActivityIntenseTraining; in.Activity.Intensity = 8 },
			models.IntensityTierHigh, models.AlertCaution,
		},
		{
			"rest day",
			func(in *Input) { in.Activity.Type = models.ActivityRest; in.Activity.Intensity = 1 },
			models.IntensityTierLight, models.AlertSafe,
		},
		{
			"dangerous heat forces light tier",
			func(in *Input) {
				in.Environment = models.EnvironmentalData{Temperature: 41, Humidity: 60, HeatIndex: 45}
			},
			models.IntensityTierLight, models.AlertCritical,
		},
		{
			"hot humid day reduces intensity",
			func(in *Input) {
				in.Environment = models.EnvironmentalData{Temperature: 33, Humidity: 80, HeatIndex: 35.8}
				in.Activity.Type = models.ActivityIntenseTraining
			},
			models.IntensityTierModerate, models.AlertWarning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := baseInput()
			tt.mutate(&in)

			rec, err := SportGenerator{}.Generate(context.Background(), in)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			if rec.Source != models.DomainSport {
				t.Errorf("Source = %s, want sport", rec.Source)
			}
			if rec.IntensityTier != tt.wantTier {
				t.Errorf("IntensityTier = %s, want %s", rec.IntensityTier, tt.wantTier)
			}
			if rec.RiskLevel != tt.wantRisk {
				t.Errorf("RiskLevel = %s, want %s", rec.RiskLevel, tt.wantRisk)
			}
			if rec.Recommendation == "" {
				t.Error("Recommendation text must not be empty")
			}
		})
	}
}

func TestSportGeneratorTimeframe(t *testing.T) {
	in := baseInput()
	rec, err := SportGenerator{}.Generate(context.Background(), in)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if rec.Timeframe.Duration != 60 {
		t.Errorf("Duration = %d, want 60", rec.Timeframe.Duration)
	}
	if !rec.Timeframe.End.Equal(rec.Timeframe.Start.Add(60 * time.Minute)) {
		t.Error("Timeframe end must be start plus duration")
	}
}

func TestNutritionGeneratorDiabetesAlert(t *testing.T) {
	in := baseInput()
	in.Profile.MedicalConditions = []models.ConditionKind{models.ConditionDiabetes}
	in.Activity.Type = models.ActivityIntenseTraining

	rec, err := NutritionGenerator{}.Generate(context.Background(), in)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if rec.DietaryTier == models.DietaryTierFasting {
		t.Error("diabetic profile must never receive a fasting recommendation")
	}
	if len(rec.MedicalAlerts) == 0 {
		t.Error("diabetic profile must receive a glycemic alert")
	}
}

func TestNutritionGeneratorHeat(t *testing.T) {
	in := baseInput()
	in.Environment.Temperature = 34
	in.Activity.Type = models.ActivityRest

	rec, err := NutritionGenerator{}.Generate(context.Background(), in)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if rec.DietaryTier != models.DietaryTierLight {
		t.Errorf("DietaryTier = %s, want light in heat", rec.DietaryTier)
	}
	if rec.RiskLevel != models.AlertCaution {
		t.Errorf("RiskLevel = %s, want caution", rec.RiskLevel)
	}
}

func TestSleepGeneratorRiskLevels(t *testing.T) {
	tests := []struct {
		hours float64
		want  models.AlertLevel
	}{
		{3, models.AlertCritical},
		{5, models.AlertWarning},
		{7.5, models.AlertSafe},
		{0, models.AlertSafe},
	}

	for _, tt := range tests {
		in := baseInput()
		in.SleepHours = tt.hours

		rec, err := SleepGenerator{}.Generate(context.Background(), in)
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if rec.RiskLevel != tt.want {
			t.Errorf("SleepHours=%v: RiskLevel = %s, want %s", tt.hours, rec.RiskLevel, tt.want)
		}
	}
}

func TestHydrationGeneratorWrapsCalculator(t *testing.T) {
	in := baseInput()
	g := NewHydrationGenerator(hydration.NewCalculator(nil))

	rec, err := g.Generate(context.Background(), in)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if rec.Source != models.DomainHydration {
		t.Errorf("Source = %s, want hydration", rec.Source)
	}
	if rec.Type != models.TypeIntake {
		t.Errorf("Type = %s, want intake", rec.Type)
	}
	if rec.Recommendation == "" {
		t.Error("Recommendation text must not be empty")
	}
	if rec.Confidence != 90 {
		t.Errorf("Confidence = %d, want 90", rec.Confidence)
	}
}

func TestGenerateAllProducesEveryDomain(t *testing.T) {
	in := baseInput()
	gens := DefaultGenerators(hydration.NewCalculator(nil))

	recs, err := GenerateAll(context.Background(), in, gens)
	if err != nil {
		t.Fatalf("GenerateAll() error = %v", err)
	}
	if len(recs) != 4 {
		t.Fatalf("GenerateAll() returned %d recommendations, want 4", len(recs))
	}

	seen := make(map[models.Domain]bool)
	for _, rec := range recs {
		seen[rec.Source] = true
	}
	for _, d := range []models.Domain{models.DomainSport, models.DomainHydration, models.DomainNutrition, models.DomainSleep} {
		if !seen[d] {
			t.Errorf("missing recommendation for domain %s", d)
		}
	}
}

func TestScoreRecommendationsOrdering(t *testing.T) {
	recs := []models.AIRecommendation{
		{Source: models.DomainSleep, RiskLevel: models.AlertSafe, Priority: models.PriorityLow},
		{Source: models.DomainHydration, RiskLevel: models.AlertEmergency, Priority: models.PriorityEmergency},
		{Source: models.DomainSport, RiskLevel: models.AlertWarning, Priority: models.PriorityMedium},
	}

	risk, scored := ScoreRecommendations(recs)
	if risk <= 0 || risk > 100 {
		t.Errorf("risk = %v, want within (0, 100]", risk)
	}
	if scored[0].Source != models.DomainHydration {
		t.Errorf("top scored = %s, want hydration", scored[0].Source)
	}
	if scored[len(scored)-1].Source != models.DomainSleep {
		t.Errorf("lowest scored = %s, want sleep", scored[len(scored)-1].Source)
	}
}
