package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Toulouse790/myfitherov3-sub000/pkg/conflict"
	"github.com/Toulouse790/myfitherov3-sub000/pkg/generators"
	"github.com/Toulouse790/myfitherov3-sub000/pkg/hydration"
	"github.com/Toulouse790/myfitherov3-sub000/pkg/medical"
	"github.com/Toulouse790/myfitherov3-sub000/pkg/models"
	"github.com/Toulouse790/myfitherov3-sub000/pkg/profile"
)

// Pipeline chains the full evaluation for one subject: hydration needs,
// medical validation and clamping, per-domain recommendation generation and
// cross-domain conflict resolution.
type Pipeline struct {
	validator  *medical.Validator
	calculator *hydration.Calculator
	resolver   *conflict.Resolver
	generators []generators.Generator

	// now anchors report timestamps; nil means time.Now.
	now func() time.Time
}

// NewPipeline assembles a pipeline around the given validator. The hydration
// calculator uses the validator as its advisor.
func NewPipeline(validator *medical.Validator) *Pipeline {
	calculator := hydration.NewCalculator(validator)
	return &Pipeline{
		validator:  validator,
		calculator: calculator,
		resolver:   conflict.NewResolver(),
		generators: generators.DefaultGenerators(calculator),
	}
}

// EvaluateRequest carries one subject through the pipeline.
type EvaluateRequest struct {
	Profile     models.BiometricProfile
	Environment models.EnvironmentalData
	Activity    models.ActivityData
	SleepHours  float64
}

// Evaluate runs the pipeline. A validator failure never aborts the run: the
// report falls back to a conservative verdict so the caller always gets a
// safe recommendation.
func (p *Pipeline) Evaluate(ctx context.Context, req EvaluateRequest) (*models.EvaluationReport, error) {
	start := p.clock()

	rec := p.calculator.Calculate(req.Profile, req.Environment, req.Activity)

	verdict, err := p.validator.Validate(ctx, req.Profile, req.Environment, float64(rec.TotalDailyNeed))
	if err != nil {
		logger.Error("Medical validation unavailable, applying conservative fallback", "error", err)
		verdict = conservativeVerdict(req.Profile)
	}
	rec = p.validator.Clamp(rec, verdict)

	user := profile.ToUserProfile(req.Profile)
	input := generators.Input{
		Profile:     user,
		Biometric:   req.Profile,
		Environment: req.Environment,
		Activity:    req.Activity,
		SleepHours:  req.SleepHours,
		Clock:       p.now,
	}
	recs, err := generators.GenerateAll(ctx, input, p.generators)
	if err != nil {
		return nil, fmt.Errorf("recommendation generation failed: %w", err)
	}

	riskScore, _ := generators.ScoreRecommendations(recs)
	resolution := p.resolver.Validate(recs, req.Environment, user)

	return &models.EvaluationReport{
		RunID:       uuid.NewString(),
		Timestamp:   start,
		Duration:    p.clock().Sub(start),
		Profile:     req.Profile,
		Environment: req.Environment,
		Activity:    req.Activity,
		Hydration:   rec,
		Medical:     *verdict,
		Resolution:  resolution,
		RiskScore:   riskScore,
	}, nil
}

func (p *Pipeline) clock() time.Time {
	if p.now != nil {
		return p.now()
	}
	return time.Now()
}

// conservativeVerdict is the fallback when the rule catalog cannot be
// evaluated: invalid, high risk, restrictive ceiling, supervision required.
func conservativeVerdict(subject models.BiometricProfile) *models.MedicalValidationResult {
	ceiling := 2500
	if weightCeiling := int(subject.Weight * 35); weightCeiling > 0 && weightCeiling < ceiling {
		ceiling = weightCeiling
	}
	return &models.MedicalValidationResult{
		IsValid:       false,
		RiskLevel:     models.RiskHigh,
		MaxSafeAmount: ceiling,
		Warnings: []string{
			"Validation médicale indisponible, recommandation conservatrice appliquée",
		},
		RequiredActions: []string{
			"Consultez un professionnel de santé avant d'augmenter votre hydratation",
		},
		MedicalSupervisionRequired: true,
	}
}
