package weather

import (
	"context"

	"github.com/Toulouse790/myfitherov3-sub000/pkg/models"
)

// Provider supplies current environmental conditions for a location. The
// safety pipeline only ever reads through this interface so the API client,
// the offline estimator and the caching layer are interchangeable.
type Provider interface {
	Current(ctx context.Context, latitude, longitude float64) (models.EnvironmentalData, error)
}
