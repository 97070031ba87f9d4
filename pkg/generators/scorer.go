package generators

import (
	"math"
	"sort"

	"github.com/Toulouse790/myfitherov3-sub000/pkg/models"
)

// ScoredRecommendation ranks one recommendation for reporting.
type ScoredRecommendation struct {
	Source   models.Domain
	Risk     models.AlertLevel
	Priority models.Priority
	Score    float64
}

func riskWeight(level models.AlertLevel) float64 {
	switch level {
	case models.AlertEmergency:
		return 8
	case models.AlertCritical:
		return 5
	case models.AlertWarning:
		return 3
	case models.AlertCaution:
		return 1.5
	default:
		return 0.5
	}
}

// ScoreRecommendations computes per-domain scores and an overall risk on a
// 0-100 scale, most pressing domains first.
func ScoreRecommendations(recs []models.AIRecommendation) (float64, []ScoredRecommendation) {
	var scored []ScoredRecommendation
	var total float64

	for _, rec := range recs {
		s := riskWeight(rec.RiskLevel) * (1 + float64(rec.Priority.Rank())*0.5)
		if len(rec.Contraindications) > 0 {
			s += 1
		}
		scored = append(scored, ScoredRecommendation{
			Source:   rec.Source,
			Risk:     rec.RiskLevel,
			Priority: rec.Priority,
			Score:    s,
		})
		total += s
	}

	// Normalize to 0..100 using a soft cap
	risk := 100 * (1 - math.Exp(-total/20))

	sort.Slice(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	return risk, scored
}
