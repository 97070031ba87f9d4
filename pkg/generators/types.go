// Package generators produces the per-domain recommendation envelopes that
// feed cross-domain conflict resolution. Every generator is deterministic:
// same input, same recommendation.
package generators

import (
	"context"
	"time"

	"github.com/Toulouse790/myfitherov3-sub000/pkg/models"
)

// Input is the shared context all domain generators read from.
type Input struct {
	Profile     models.UserProfile
	Biometric   models.BiometricProfile
	Environment models.EnvironmentalData
	Activity    models.ActivityData

	// SleepHours is the user's sleep total over the last night, 0 when
	// unknown.
	SleepHours float64

	// Clock anchors recommendation timeframes; nil means time.Now.
	Clock func() time.Time
}

func (in Input) now() time.Time {
	if in.Clock != nil {
		return in.Clock()
	}
	return time.Now()
}

// window builds a timeframe starting now and lasting the given minutes.
func (in Input) window(minutes int) models.Timeframe {
	start := in.now()
	return models.Timeframe{
		Start:    start,
		End:      start.Add(time.Duration(minutes) * time.Minute),
		Duration: minutes,
	}
}

// Generator emits one domain recommendation for the given context.
type Generator interface {
	Domain() models.Domain
	Generate(ctx context.Context, in Input) (models.AIRecommendation, error)
}
