package generators

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Toulouse790/myfitherov3-sub000/pkg/hydration"
	"github.com/Toulouse790/myfitherov3-sub000/pkg/models"
)

var logger = slog.Default()

// DefaultGenerators returns the full domain set wired to the given
// calculator.
func DefaultGenerators(calculator *hydration.Calculator) []Generator {
	return []Generator{
		SportGenerator{},
		NewHydrationGenerator(calculator),
		NutritionGenerator{},
		SleepGenerator{},
	}
}

// GenerateAll runs every generator over the input. A single failing
// generator is logged and skipped; the call fails only when no domain
// produced a recommendation.
func GenerateAll(ctx context.Context, in Input, gens []Generator) ([]models.AIRecommendation, error) {
	recs := make([]models.AIRecommendation, 0, len(gens))

	for _, g := range gens {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		rec, err := g.Generate(ctx, in)
		if err != nil {
			logger.Warn("Domain generator failed", "domain", g.Domain(), "error", err)
			continue
		}
		recs = append(recs, rec)
	}

	if len(recs) == 0 {
		return nil, fmt.Errorf("no domain generator produced a recommendation")
	}

	return recs, nil
}
