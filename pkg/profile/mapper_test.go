package profile

import (
	"testing"
	"time"

	"github.com/Toulouse790/myfitherov3-sub000/pkg/models"
)

func TestMapCondition(t *testing.T) {
	tests := []struct {
		text string
		want models.ConditionKind
		ok   bool
	}{
		{"heart_failure", models.ConditionHeartFailure, true},
		{"Insuffisance cardiaque", models.ConditionHeartFailure, true},
		{"chronic kidney disease", models.ConditionKidneyDisease, true},
		{"maladie rénale", models.ConditionKidneyDisease, true},
		{"Diabète de type 2", models.ConditionDiabetes, true},
		{"hypertension artérielle", models.ConditionHypertension, true},
		{"Femme enceinte", models.ConditionPregnancy, true},
		{"PREGNANCY", models.ConditionPregnancy, true},
		{"asthme", "", false},
		{"", "", false},
		{"   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := MapCondition(tt.text)
			if ok != tt.ok || got != tt.want {
				t.Errorf("MapCondition(%q) = (%s, %v), want (%s, %v)", tt.text, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestMapConditionsDropsAndDeduplicates(t *testing.T) {
	got := MapConditions([]string{
		"insuffisance cardiaque",
		"problème cardiaque",
		"migraine",
		"diabète",
	})

	want := []models.ConditionKind{models.ConditionHeartFailure, models.ConditionDiabetes}
	if len(got) != len(want) {
		t.Fatalf("MapConditions() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("MapConditions()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestAge(t *testing.T) {
	at := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		birth time.Time
		want  int
	}{
		{"birthday passed this year", time.Date(1990, 3, 15, 0, 0, 0, 0, time.UTC), 36},
		{"birthday later this year", time.Date(1990, 11, 2, 0, 0, 0, 0, time.UTC), 35},
		{"birthday today", time.Date(2000, 8, 29, 0, 0, 0, 0, time.UTC), 26},
		{"future birth date", time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Age(tt.birth, at); got != tt.want {
				t.Errorf("Age() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestToUserProfile(t *testing.T) {
	bio := models.BiometricProfile{
		Age:          62,
		FitnessLevel: models.FitnessLight,
		MedicalConditions: []models.MedicalCondition{
			{Condition: models.ConditionHeartFailure, Severity: models.SeverityModerate, Medications: []string{"beta_blockers", "diuretics"}},
			{Condition: models.ConditionDiabetes, Severity: models.SeverityMild, Medications: []string{"metformin", "diuretics"}},
		},
	}

	user := ToUserProfile(bio)
	if user.Age != 62 {
		t.Errorf("Age = %d, want 62", user.Age)
	}
	if !user.HasCondition(models.ConditionHeartFailure) || !user.HasCondition(models.ConditionDiabetes) {
		t.Errorf("conditions = %v, want heart_failure and diabetes", user.MedicalConditions)
	}
	if len(user.CurrentMedications) != 3 {
		t.Errorf("medications = %v, want 3 deduplicated entries", user.CurrentMedications)
	}
	if !user.TakesMedication("beta_blockers") {
		t.Error("beta_blockers must be carried over")
	}
}
