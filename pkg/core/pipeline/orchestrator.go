// Package pipeline wires the computation stages end to end:
// assumptions -> revenue projection -> cash simulation -> annual aggregation
// -> scenario comparison, with optional persistence of the finished run.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"creator_forecast/pkg/core/annual"
	"creator_forecast/pkg/core/assumption"
	"creator_forecast/pkg/core/cashflow"
	"creator_forecast/pkg/core/revenue"
	"creator_forecast/pkg/core/scenario"
	"creator_forecast/pkg/core/store"
	"creator_forecast/pkg/core/valuation"
	"creator_forecast/pkg/models"
)

// Result bundles everything one run computes. All fields are valid even when
// persistence or export later fail.
type Result struct {
	RunID       string
	Assumptions *assumption.AssumptionSet
	Revenue     []models.MonthlyRevenueRecord
	Cash        []models.MonthlyCashRecord
	Summary     models.CashSummary
	Statements  *models.AnnualStatementSet
	Comparisons []scenario.Comparison
}

// Orchestrator manages the end-to-end flow for one baseline AssumptionSet.
type Orchestrator struct {
	assumptions *assumption.AssumptionSet
	multiple    float64
	repo        store.RunRepository
	log         *logrus.Logger
}

// NewOrchestrator creates an orchestrator with the default revenue multiple
// and no persistence. Inject a repository with SetRepository.
func NewOrchestrator(as *assumption.AssumptionSet, log *logrus.Logger) *Orchestrator {
	return &Orchestrator{
		assumptions: as,
		multiple:    valuation.DefaultRevenueMultiple,
		log:         log,
	}
}

// SetRepository enables persistence of finished runs (e.g. for testing or
// when DATABASE_URL is configured).
func (o *Orchestrator) SetRepository(repo store.RunRepository) {
	o.repo = repo
}

// SetMultiple overrides the valuation multiple.
func (o *Orchestrator) SetMultiple(multiple float64) {
	o.multiple = multiple
}

// Run executes the full pipeline plus the given scenarios. Configuration
// errors fail fast before any projection begins; a repository save failure is
// logged and does not invalidate the result.
func (o *Orchestrator) Run(ctx context.Context, scenarios []scenario.Definition) (*Result, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := o.log.WithFields(logrus.Fields{"run_id": runID, "label": o.assumptions.Label()})

	if err := o.assumptions.Validate(); err != nil {
		return nil, fmt.Errorf("invalid assumptions: %w", err)
	}
	months, err := o.assumptions.DurationMonths()
	if err != nil {
		return nil, err
	}
	log.Infof("starting %d-month forecast", months)

	// 1. Revenue build
	revSeries, err := revenue.Project(o.assumptions, months)
	if err != nil {
		return nil, fmt.Errorf("revenue projection failed: %w", err)
	}
	log.Infof("revenue build complete: %d months", len(revSeries))

	// 2. Cash budget
	cfParams, err := cashflow.FromAssumptions(o.assumptions)
	if err != nil {
		return nil, err
	}
	cashSeries, err := cashflow.Simulate(revSeries, cfParams)
	if err != nil {
		return nil, fmt.Errorf("cash simulation failed: %w", err)
	}
	summary := cashflow.Summarize(cashSeries, cfParams)
	if summary.FinancingGap > 0 {
		log.Warnf("financing gap of %.2f at month %d", summary.FinancingGap, summary.FinancingGapMonth)
	}

	// 3. Annual statements
	annParams, err := annual.FromAssumptions(o.assumptions)
	if err != nil {
		return nil, err
	}
	statements, err := annual.Aggregate(revSeries, cashSeries, annParams)
	if err != nil {
		return nil, fmt.Errorf("annual aggregation failed: %w", err)
	}
	log.Infof("annual statements complete: %d years", len(statements.Income))

	// 4. Scenarios
	var comparisons []scenario.Comparison
	if len(scenarios) > 0 {
		runner, err := scenario.NewRunner(o.assumptions, o.multiple)
		if err != nil {
			return nil, fmt.Errorf("scenario runner init failed: %w", err)
		}
		for _, def := range scenarios {
			cmp, err := runner.Run(def)
			if err != nil {
				return nil, err
			}
			comparisons = append(comparisons, *cmp)
			log.Infof("scenario '%s': revenue %+.2f%%, valuation %+.2f%%", cmp.Name, cmp.RevenueDeltaPct, cmp.ValuationDeltaPct)
		}
	}

	result := &Result{
		RunID:       runID,
		Assumptions: o.assumptions,
		Revenue:     revSeries,
		Cash:        cashSeries,
		Summary:     summary,
		Statements:  statements,
		Comparisons: comparisons,
	}

	// 5. Optional persistence. The computed series stay valid if this fails.
	if o.repo != nil {
		archive := &store.RunArchive{
			RunID:       result.RunID,
			Label:       o.assumptions.Label(),
			Revenue:     revSeries,
			Cash:        cashSeries,
			Summary:     summary,
			Statements:  statements,
			Comparisons: comparisons,
		}
		if err := o.repo.Save(ctx, archive); err != nil {
			log.WithError(err).Warn("failed to archive run; results remain usable")
		} else {
			log.Info("run archived")
		}
	}

	log.Infof("pipeline completed in %v", time.Since(start))
	return result, nil
}
