// Package bias is the fairness audit harness: it drives a recommendation
// engine with paired control/test profiles differing in one demographic axis,
// measures output deltas and classifies discrimination patterns. Cases are
// mutually independent and fan out across a worker pool.
package bias

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/google/uuid"

	"github.com/Toulouse790/myfitherov3-sub000/pkg/models"
)

var logger = slog.Default()

// Harness runs a population suite against a recommendation engine.
type Harness struct {
	engine  RecommendationEngine
	workers int
}

// NewHarness creates a harness. workers <= 0 selects one worker per CPU.
func NewHarness(engine RecommendationEngine, workers int) *Harness {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Harness{engine: engine, workers: workers}
}

// Run evaluates every case in the suite. A failing engine evaluation never
// aborts the suite; the case is recorded as inconclusive and the run
// continues. Result order follows the suite order.
func (h *Harness) Run(ctx context.Context, suite *models.PopulationSuite) ([]models.BiasTestResult, error) {
	cases := suite.All()
	if len(cases) == 0 {
		return nil, fmt.Errorf("population suite contains no test cases")
	}

	type indexed struct {
		index int
		tc    models.BiasTestCase
	}

	jobs := make(chan indexed, len(cases))
	results := make([]models.BiasTestResult, len(cases))

	var wg sync.WaitGroup
	for w := 0; w < h.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				select {
				case <-ctx.Done():
					results[job.index] = inconclusive(job.tc, ctx.Err())
					continue
				default:
				}
				results[job.index] = h.runCase(ctx, job.tc)
			}
		}()
	}

	for i, tc := range cases {
		jobs <- indexed{index: i, tc: tc}
	}
	close(jobs)
	wg.Wait()

	return results, nil
}

// runCase evaluates one paired case. Panics from the engine under test are
// contained here so one bad case cannot take down the run.
func (h *Harness) runCase(ctx context.Context, tc models.BiasTestCase) (result models.BiasTestResult) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("bias test case panicked", "testId", tc.TestID, "panic", r)
			result = inconclusive(tc, fmt.Errorf("engine panicked: %v", r))
		}
	}()

	control, err := h.engine.Evaluate(ctx, tc.ControlGroup)
	if err != nil {
		return inconclusive(tc, fmt.Errorf("control evaluation: %w", err))
	}

	test, err := h.engine.Evaluate(ctx, tc.TestGroup)
	if err != nil {
		return inconclusive(tc, fmt.Errorf("test evaluation: %w", err))
	}

	diff := analyzeDifferences(control, test)
	detected := exceedsTierThresholds(diff, tc.Criticality)
	severity := biasSeverity(diff)

	biasTypes := directionalCheck(tc, control, test, diff)
	if len(biasTypes) > 0 {
		detected = true
		severity = escalate(severity, tc)
	}

	return models.BiasTestResult{
		TestID:             tc.TestID,
		Passed:             !detected,
		BiasDetected:       detected,
		BiasTypes:          biasTypes,
		Severity:           severity,
		ControlOutput:      control,
		TestOutput:         test,
		Differences:        diff,
		EthicalConcerns:    ethicalConcerns(diff),
		CorrectionRequired: detected && tc.Criticality != models.TierLow,
		Recommendations:    correctionRecommendations(diff),
	}
}

// escalate raises the reported severity when a directional check fired on a
// high-criticality case.
func escalate(current models.BiasSeverity, tc models.BiasTestCase) models.BiasSeverity {
	switch tc.Criticality {
	case models.TierCritical, models.TierLifeThreatening:
		return models.BiasSeverityCritical
	case models.TierHigh:
		if current == models.BiasSeverityNone || current == models.BiasSeverityMinor || current == models.BiasSeverityModerate {
			return models.BiasSeveritySevere
		}
	}
	return current
}

func inconclusive(tc models.BiasTestCase, err error) models.BiasTestResult {
	return models.BiasTestResult{
		TestID:   tc.TestID,
		Passed:   false,
		Severity: models.BiasSeverityNone,
		Error:    err.Error(),
	}
}

// Aggregate summarizes a full run and generates correction directives for
// every critical, flagged result.
func Aggregate(results []models.BiasTestResult) models.AuditSummary {
	summary := models.AuditSummary{
		RunID:      uuid.NewString(),
		TotalTests: len(results),
	}

	for _, r := range results {
		if r.Error != "" {
			summary.Inconclusive++
			continue
		}
		if r.BiasDetected {
			summary.Flagged++
		}
		if r.Severity == models.BiasSeverityCritical {
			summary.Critical++
		}
	}

	summary.Corrections = Corrections(results)
	return summary
}
