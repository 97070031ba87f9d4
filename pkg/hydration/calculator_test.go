package hydration

import (
	"math"
	"testing"

	"github.com/Toulouse790/myfitherov3-sub000/pkg/models"
)

func baselineProfile() models.BiometricProfile {
	return models.BiometricProfile{
		Age:          30,
		Weight:       70,
		Height:       175,
		Sex:          models.SexMale,
		FitnessLevel: models.FitnessModerate,
	}
}

func mildEnvironment() models.EnvironmentalData {
	return models.EnvironmentalData{
		Temperature: 20,
		Humidity:    50,
		UVIndex:     3,
		WindSpeed:   5,
		HeatIndex:   20,
	}
}

func restActivity() models.ActivityData {
	return models.ActivityData{
		Type:      models.ActivityRest,
		Duration:  0,
		Intensity: 1,
		Location:  models.LocationIndoor,
	}
}

func TestCalculateBaselineRest(t *testing.T) {
	calc := NewCalculator(nil)
	rec := calc.Calculate(baselineProfile(), mildEnvironment(), restActivity())

	// base 3700 (age band beats 70*35=2450), no adjustments, *1.15
	if rec.TotalDailyNeed != 4255 {
		t.Errorf("TotalDailyNeed = %d, want 4255", rec.TotalDailyNeed)
	}
	if rec.AlertLevel != models.AlertSafe {
		t.Errorf("AlertLevel = %s, want safe", rec.AlertLevel)
	}
	if rec.PreActivityNeed != 0 || rec.DuringActivityNeed != 0 || rec.PostActivityNeed != 0 {
		t.Errorf("rest activity must yield zero sub-targets, got pre=%d during=%d post=%d",
			rec.PreActivityNeed, rec.DuringActivityNeed, rec.PostActivityNeed)
	}
	if len(rec.Recommendations) == 0 {
		t.Error("expected baseline recommendations")
	}
}

func TestCalculateHeatCompetition(t *testing.T) {
	calc := NewCalculator(nil)
	env := models.EnvironmentalData{
		Temperature: 38,
		Humidity:    85,
		UVIndex:     5,
		WindSpeed:   5,
		HeatIndex:   38,
	}
	activity := models.ActivityData{
		Type:      models.ActivityCompetition,
		Duration:  120,
		Intensity: 9,
		Location:  models.LocationOutdoor,
	}

	rec := calc.Calculate(baselineProfile(), env, activity)

	// raw need is far above the ceiling; must be clamped to 70ml/kg
	if rec.TotalDailyNeed != 4900 {
		t.Errorf("TotalDailyNeed = %d, want ceiling 4900", rec.TotalDailyNeed)
	}
	if rec.AlertLevel != models.AlertEmergency {
		t.Errorf("AlertLevel = %s, want emergency", rec.AlertLevel)
	}
	if rec.PreActivityNeed != 1000 {
		t.Errorf("PreActivityNeed = %d, want 1000", rec.PreActivityNeed)
	}
	// 150 + 13*10 = 280, * competition 1.8
	if rec.DuringActivityNeed != 504 {
		t.Errorf("DuringActivityNeed = %d, want 504", rec.DuringActivityNeed)
	}
	// sweat 1500 * 2.3 * 2h = 6900, * 1.5
	if rec.PostActivityNeed != 10350 {
		t.Errorf("PostActivityNeed = %d, want 10350", rec.PostActivityNeed)
	}
}

func TestCalculateAlertLevels(t *testing.T) {
	tests := []struct {
		name     string
		env      models.EnvironmentalData
		activity models.ActivityData
		profile  models.BiometricProfile
		want     models.AlertLevel
	}{
		{
			name:     "mild conditions",
			env:      mildEnvironment(),
			activity: restActivity(),
			profile:  baselineProfile(),
			want:     models.AlertSafe,
		},
		{
			name: "warm outdoor training",
			env:  models.EnvironmentalData{Temperature: 31, Humidity: 60, UVIndex: 4, HeatIndex: 31},
			activity: models.ActivityData{
				Type: models.ActivityIntenseTraining, Duration: 60, Intensity: 7, Location: models.LocationOutdoor,
			},
			profile: baselineProfile(),
			want:    models.AlertWarning, // temp 2 + training 1 + outdoor 1
		},
		{
			name:     "elderly cardiac at rest",
			env:      mildEnvironment(),
			activity: restActivity(),
			profile: models.BiometricProfile{
				Age: 80, Weight: 60, Height: 165, Sex: models.SexFemale,
				FitnessLevel: models.FitnessLight,
				MedicalConditions: []models.MedicalCondition{
					{Condition: models.ConditionHeartFailure, Severity: models.SeverityModerate},
				},
			},
			want: models.AlertWarning, // age 2 + condition 3
		},
	}

	calc := NewCalculator(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := calc.Calculate(tt.profile, tt.env, tt.activity)
			if rec.AlertLevel != tt.want {
				t.Errorf("AlertLevel = %s, want %s", rec.AlertLevel, tt.want)
			}
		})
	}
}

func TestCalculateTemperatureMonotonicity(t *testing.T) {
	calc := NewCalculator(nil)
	profile := baselineProfile()
	activity := models.ActivityData{
		Type: models.ActivityModerateExercise, Duration: 60, Intensity: 5, Location: models.LocationOutdoor,
	}

	prev := -1
	for temp := 15.0; temp <= 40; temp++ {
		env := models.EnvironmentalData{Temperature: temp, Humidity: 50, UVIndex: 3, HeatIndex: temp}
		rec := calc.Calculate(profile, env, activity)
		if rec.TotalDailyNeed < prev {
			t.Fatalf("need decreased from %d to %d at %.0f°C", prev, rec.TotalDailyNeed, temp)
		}
		prev = rec.TotalDailyNeed
	}
}

func TestCalculateClampInvariant(t *testing.T) {
	calc := NewCalculator(nil)
	weights := []float64{40, 55, 70, 90, 120}
	envs := []models.EnvironmentalData{
		mildEnvironment(),
		{Temperature: 42, Humidity: 95, UVIndex: 11, HeatIndex: 50},
	}
	activities := []models.ActivityData{
		restActivity(),
		{Type: models.ActivityCompetition, Duration: 240, Intensity: 10, Location: models.LocationOutdoor},
	}

	for _, w := range weights {
		profile := baselineProfile()
		profile.Weight = w
		lo := int(math.Max(1200, 20*w))
		hi := int(math.Min(6000, 70*w))
		for _, env := range envs {
			for _, activity := range activities {
				rec := calc.Calculate(profile, env, activity)
				if rec.TotalDailyNeed < lo || rec.TotalDailyNeed > hi {
					t.Errorf("weight %.0f: TotalDailyNeed = %d outside [%d, %d]", w, rec.TotalDailyNeed, lo, hi)
				}
			}
		}
	}
}

func TestCalculateConservativeDefaults(t *testing.T) {
	calc := NewCalculator(nil)

	profile := models.BiometricProfile{Age: -3, Weight: math.NaN(), Sex: "X"}
	env := models.EnvironmentalData{Temperature: math.NaN(), Humidity: -10, UVIndex: math.Inf(1)}
	activity := models.ActivityData{Type: "skydiving", Duration: -5, Intensity: 42}

	rec := calc.Calculate(profile, env, activity)
	if rec.TotalDailyNeed <= 0 {
		t.Fatalf("TotalDailyNeed = %d, want positive value for degenerate inputs", rec.TotalDailyNeed)
	}
	// unknown activity type falls back to rest
	if rec.PreActivityNeed != 0 {
		t.Errorf("PreActivityNeed = %d, want 0 for unknown activity type", rec.PreActivityNeed)
	}
}

func TestCalculateIdempotence(t *testing.T) {
	calc := NewCalculator(nil)
	env := models.EnvironmentalData{Temperature: 33, Humidity: 75, UVIndex: 8, HeatIndex: 36}
	activity := models.ActivityData{
		Type: models.ActivityIntenseTraining, Duration: 90, Intensity: 8, Location: models.LocationOutdoor,
	}

	a := calc.Calculate(baselineProfile(), env, activity)
	b := calc.Calculate(baselineProfile(), env, activity)
	if a.TotalDailyNeed != b.TotalDailyNeed || a.AlertLevel != b.AlertLevel ||
		a.PreActivityNeed != b.PreActivityNeed || a.DuringActivityNeed != b.DuringActivityNeed ||
		a.PostActivityNeed != b.PostActivityNeed {
		t.Error("identical inputs produced different outputs")
	}
}

func TestIntakeAlert(t *testing.T) {
	hotEnv := models.EnvironmentalData{Temperature: 34, Humidity: 60}
	mildEnv := mildEnvironment()

	tests := []struct {
		name        string
		current     int
		recommended int
		env         models.EnvironmentalData
		wantLevel   string
		wantMedical bool
	}{
		{"severe deficit under heat", 1000, 3000, hotEnv, "emergency", true},
		{"severe deficit mild weather", 1500, 3000, mildEnv, "critical", false},
		{"moderate deficit", 2100, 3000, mildEnv, "warning", false},
		{"on track", 2900, 3000, mildEnv, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alert := IntakeAlert(tt.current, tt.recommended, tt.env)
			if tt.wantLevel == "" {
				if alert != nil {
					t.Fatalf("expected no alert, got %s", alert.Level)
				}
				return
			}
			if alert == nil {
				t.Fatal("expected an alert, got nil")
			}
			if alert.Level != tt.wantLevel {
				t.Errorf("Level = %s, want %s", alert.Level, tt.wantLevel)
			}
			if alert.SeekMedicalAttention != tt.wantMedical {
				t.Errorf("SeekMedicalAttention = %v, want %v", alert.SeekMedicalAttention, tt.wantMedical)
			}
		})
	}
}
