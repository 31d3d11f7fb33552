// Package analysis provides the high-level orchestration for one quote
// analysis run: the quality/risk report branch and the pricing benchmark
// branch, computed independently and merged into a single record.
package analysis

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dshearer1/quoteshield-webdev-sub000/internal/benchmark"
	"github.com/dshearer1/quoteshield-webdev-sub000/internal/findings"
	"github.com/dshearer1/quoteshield-webdev-sub000/internal/scoring"
	"github.com/dshearer1/quoteshield-webdev-sub000/internal/signals"
	"github.com/dshearer1/quoteshield-webdev-sub000/internal/types"
	"github.com/dshearer1/quoteshield-webdev-sub000/internal/units"
)

// ProgressEvent represents a progress update during an analysis run
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
}

// ProgressCallback is called when analysis progress occurs. The two branches
// run concurrently, so the callback must be safe for concurrent use.
type ProgressCallback func(event ProgressEvent)

// Step names reported through the progress callback.
const (
	StepScoreInputs  = "score_inputs"
	StepScoreReport  = "score_report"
	StepFindings     = "preview_findings"
	StepUnitEstimate = "unit_estimate"
	StepBenchmark    = "benchmark"
)

// RunOptions holds everything one analysis run consumes. RangeStore may be
// nil, in which case the pricing branch classifies against an empty range.
type RunOptions struct {
	AiResult     *types.AiResult
	LineItems    []types.LineItemRow
	Prior        *types.PriorAnalysis
	Trade        string
	Subtrade     string
	RegionKey    string
	ProjectValue *float64

	Weights     *scoring.Weights
	MaxFindings int
	RangeStore  benchmark.RangeStore
	OnProgress  ProgressCallback
}

// Result bundles the outputs of both branches.
type Result struct {
	Report          *types.ScoreReport
	PreviewFindings []types.PreviewFinding
	UnitEstimate    *types.UnitEstimate
	Benchmark       *types.BenchmarkRange
	Pricing         *types.PricingClassification
}

// Run executes both analysis branches concurrently and merges their outputs.
// The quality/risk branch is pure computation and cannot fail; the pricing
// branch can only fail on a benchmark contract violation. A timed-out or
// canceled benchmark fetch degrades to an empty range rather than failing
// the run.
func Run(ctx context.Context, opts RunOptions) (*Result, error) {
	result := &Result{}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		report, preview := runScoreBranch(opts)
		result.Report = report
		result.PreviewFindings = preview
		return nil
	})

	g.Go(func() error {
		est, rng, pricing, err := runPricingBranch(gCtx, opts)
		if err != nil {
			return fmt.Errorf("pricing branch failed: %w", err)
		}
		result.UnitEstimate = est
		result.Benchmark = rng
		result.Pricing = pricing
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// runScoreBranch computes the quality/risk report: adapter, engine, then the
// preview classifier over both finding sources.
func runScoreBranch(opts RunOptions) (*types.ScoreReport, []types.PreviewFinding) {
	inputs := signals.FromAiResult(opts.AiResult, len(opts.LineItems))
	emit(opts, StepScoreInputs, fmt.Sprintf("adapted signals: %d scope, %d pricing, %d warranty, %d timeline",
		inputs.MissingScopeSignals, inputs.PricingOutlierSignals, inputs.WarrantySignals, inputs.TimelineSignals))

	weights := scoring.DefaultWeights()
	if opts.Weights != nil {
		weights = *opts.Weights
	}
	report := scoring.Score(inputs, weights)
	emit(opts, StepScoreReport, fmt.Sprintf("scored %d/100 (%s)", report.OverallScore, report.OverallRating))

	var depositPercent *float64
	var aiFindings []string
	if opts.AiResult != nil {
		depositPercent = opts.AiResult.DepositPercent
		aiFindings = opts.AiResult.Findings
	}
	preview := findings.Classify(depositPercent, aiFindings, report.PreviewFindings, opts.MaxFindings)
	emit(opts, StepFindings, fmt.Sprintf("classified %d preview findings", len(preview)))

	return &report, preview
}

// runPricingBranch computes the unit estimate and benchmark classification.
func runPricingBranch(ctx context.Context, opts RunOptions) (*types.UnitEstimate, *types.BenchmarkRange, *types.PricingClassification, error) {
	est := units.EstimateRoofing(units.Inputs{
		LineItems:    opts.LineItems,
		Prior:        opts.Prior,
		AiResult:     opts.AiResult,
		ProjectValue: opts.ProjectValue,
	})
	emit(opts, StepUnitEstimate, fmt.Sprintf("unit estimate confidence %.2f", est.Confidence))

	var rng types.BenchmarkRange
	if opts.RangeStore != nil && est.JobUnits != nil {
		key := benchmark.RangeKey{
			Trade:     opts.Trade,
			Subtrade:  opts.Subtrade,
			RegionKey: opts.RegionKey,
			UnitBasis: types.UnitBasisSquare,
		}
		fetched, err := benchmark.FetchRange(ctx, opts.RangeStore, key)
		switch {
		case err == nil:
			rng = fetched
		case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
			// Benchmark unavailable is a degraded outcome, not a failure.
			emit(opts, StepBenchmark, "benchmark fetch timed out; classifying without data")
		default:
			return nil, nil, nil, err
		}
	}

	pricing := benchmark.Classify(est, rng)
	emit(opts, StepBenchmark, fmt.Sprintf("pricing position: %s (confidence %.2f)",
		pricing.PricingPositionLabel, pricing.PricingConfidence))

	return &est, &rng, &pricing, nil
}

// Merge assembles the persisted analysis record from a run result, carrying
// the normalizer snapshot forward so the next run can take the reuse path.
func Merge(submissionID uuid.UUID, result *Result) *types.Analysis {
	analysis := &types.Analysis{
		SubmissionID:    submissionID,
		Report:          result.Report,
		PreviewFindings: result.PreviewFindings,
		Pricing:         result.Pricing,
		UnitEstimate:    result.UnitEstimate,
		Benchmark:       result.Benchmark,
	}
	if result.UnitEstimate != nil && result.UnitEstimate.JobUnits != nil {
		analysis.UnitBasis = types.UnitBasisSquare
		analysis.NormalizedQuantity = result.UnitEstimate.JobUnits
	}
	return analysis
}

// emit calls the progress callback if configured
func emit(opts RunOptions, step, message string) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{Step: step, Message: message})
	}
}
