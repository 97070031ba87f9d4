package weather

import (
	"context"
	"math"
	"time"

	"github.com/Toulouse790/myfitherov3-sub000/pkg/models"
)

// Estimator is an offline Provider producing plausible conditions from the
// calendar and local hour alone. Deterministic for a given instant, so
// repeated evaluations within the same hour agree.
type Estimator struct {
	now func() time.Time
}

// NewEstimator creates an offline weather estimator
func NewEstimator() *Estimator {
	return &Estimator{now: time.Now}
}

// Current returns estimated conditions for the location. Latitude selects the
// hemisphere for the seasonal cycle; longitude is ignored.
func (e *Estimator) Current(_ context.Context, latitude, _ float64) (models.EnvironmentalData, error) {
	t := e.now()
	day := float64(t.YearDay())
	hour := t.Hour()

	// Seasonal sinusoid peaking around mid-July (day 196) in the northern
	// hemisphere, shifted half a year south of the equator.
	phase := (day - 196) / 365 * 2 * math.Pi
	if latitude < 0 {
		phase += math.Pi
	}
	seasonal := 12 * math.Cos(phase)

	// Diurnal swing peaking around 15h
	diurnal := 5 * math.Cos(float64(hour-15)/24*2*math.Pi)

	temperature := math.Round((16+seasonal+diurnal)*10) / 10
	humidity := math.Round(math.Min(95, math.Max(30, 75-seasonal)))

	env := models.EnvironmentalData{
		Temperature: temperature,
		Humidity:    humidity,
		WindSpeed:   10,
		UVIndex:     EstimateUVIndex(SkyClear, hour),
	}
	env.HeatIndex = HeatIndex(env.Temperature, env.Humidity)

	return env, nil
}
