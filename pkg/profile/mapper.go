// Package profile normalizes caller-supplied profile data into the closed
// vocabularies the safety engine evaluates against.
package profile

import (
	"log/slog"
	"strings"
	"time"

	"github.com/Toulouse790/myfitherov3-sub000/pkg/models"
)

var logger = slog.Default()

// conditionKeywords maps free-text fragments to the closed condition set.
// Matching is case-insensitive substring; first match wins per input string.
var conditionKeywords = []struct {
	fragments []string
	kind      models.ConditionKind
}{
	{[]string{"heart_failure", "cardiaque", "cardiac", "heart", "coeur", "cœur"}, models.ConditionHeartFailure},
	{[]string{"kidney_disease", "kidney", "renal", "rénal", "rein", "néphro"}, models.ConditionKidneyDisease},
	{[]string{"diabetes", "diabet", "diabèt"}, models.ConditionDiabetes},
	{[]string{"hypertension", "tension artérielle", "blood pressure"}, models.ConditionHypertension},
	{[]string{"pregnancy", "grossesse", "enceinte", "pregnan"}, models.ConditionPregnancy},
}

// MapCondition maps one free-text condition to the closed vocabulary.
// Unrecognized text returns false; the caller decides whether to drop it.
func MapCondition(text string) (models.ConditionKind, bool) {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return "", false
	}

	for _, entry := range conditionKeywords {
		for _, fragment := range entry.fragments {
			if strings.Contains(lower, fragment) {
				return entry.kind, true
			}
		}
	}
	return "", false
}

// MapConditions maps a list of free-text conditions, dropping anything
// unrecognized. Duplicates collapse to one entry.
func MapConditions(texts []string) []models.ConditionKind {
	var kinds []models.ConditionKind
	seen := make(map[models.ConditionKind]bool)

	for _, text := range texts {
		kind, ok := MapCondition(text)
		if !ok {
			logger.Debug("Dropping unrecognized condition", "text", text)
			continue
		}
		if seen[kind] {
			continue
		}
		seen[kind] = true
		kinds = append(kinds, kind)
	}
	return kinds
}

// Age computes full years between a birth date and the reference instant.
func Age(birthDate, at time.Time) int {
	if birthDate.After(at) {
		return 0
	}

	years := at.Year() - birthDate.Year()
	anniversary := birthDate.AddDate(years, 0, 0)
	if anniversary.After(at) {
		years--
	}
	return years
}

// ToUserProfile projects a biometric profile onto the resolver's view,
// flattening condition kinds and collecting medications.
func ToUserProfile(bio models.BiometricProfile) models.UserProfile {
	user := models.UserProfile{
		Age:          bio.Age,
		FitnessLevel: bio.FitnessLevel,
	}

	seenMedication := make(map[string]bool)
	for _, condition := range bio.MedicalConditions {
		user.MedicalConditions = append(user.MedicalConditions, condition.Condition)
		for _, medication := range condition.Medications {
			if seenMedication[medication] {
				continue
			}
			seenMedication[medication] = true
			user.CurrentMedications = append(user.CurrentMedications, medication)
		}
	}

	return user
}
