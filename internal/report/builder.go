package report

import (
	"errors"
	"fmt"
	"math"
	"time"

	"SalesRadar/internal/funnel"
	"SalesRadar/internal/funnelcfg"
	"SalesRadar/internal/gap"
	"SalesRadar/internal/model"
	"SalesRadar/internal/period"
	"SalesRadar/internal/realized"
)

// ErrInvalidGoal reports a goal configuration a report can never be built
// from. Callers translating to HTTP treat it as a request error rather than
// an upstream failure.
var ErrInvalidGoal = errors.New("revenue goal must be non-negative")

// Builder orchestrates one performance report: period bounds, active
// template, inverted funnel, realized aggregation, gaps, and focus
// priorities. It holds no per-request state and is safe for concurrent use.
type Builder struct {
	Fetcher    Fetcher
	Templates  funnelcfg.Resolver
	Aggregator *realized.Aggregator
	FocusMax   int
}

// NewBuilder wires a builder with the immutable category table.
func NewBuilder(f Fetcher, r funnelcfg.Resolver, focusMax int) *Builder {
	if focusMax <= 0 {
		focusMax = gap.DefaultFocusMax
	}
	return &Builder{
		Fetcher:    f,
		Templates:  r,
		Aggregator: realized.New(funnelcfg.CategoryMap()),
		FocusMax:   focusMax,
	}
}

// Build assembles the report for one agent and period as of now. paceMode
// scales the required counts by the period's elapsed fraction.
func (b *Builder) Build(orgID, agentID, agentName string, key model.PeriodKey, now time.Time, paceMode bool) (*model.PerformanceReport, error) {
	bounds, err := period.Resolve(key, now)
	if err != nil {
		return nil, fmt.Errorf("resolve period: %w", err)
	}

	// The template that governs the computation is the one effective for the
	// period being reported on, not necessarily the newest.
	tpl := b.Templates.ActiveTemplate(orgID, bounds.Start)

	activity, err := b.Fetcher.FetchActivity(orgID, agentID, key)
	if err != nil {
		return nil, fmt.Errorf("fetch activity: %w", err)
	}
	goal, err := b.Fetcher.FetchGoal(orgID)
	if err != nil {
		return nil, fmt.Errorf("fetch goal: %w", err)
	}
	if goal.RevenueGoal < 0 {
		return nil, fmt.Errorf("%w, got %v", ErrInvalidGoal, goal.RevenueGoal)
	}

	necessary := funnel.Necessary(goal.RevenueGoal, tpl, bounds, paceMode)
	realizedRows := b.Aggregator.Aggregate(activity.CategoryCounts, tpl)
	gaps := gap.Compute(necessary, realizedRows, tpl)
	focus := gap.FocusPriorities(gaps, b.FocusMax)

	// Simple percentage-of-goal figure; this one never goes through the
	// funnel engine.
	var goalPct float64
	if goal.RevenueGoal > 0 {
		goalPct = math.Round(goal.RealizedToDate/goal.RevenueGoal*1000) / 1000
	}

	return &model.PerformanceReport{
		OrganizationID:  orgID,
		AgentID:         agentID,
		AgentName:       agentName,
		Period:          key,
		Bounds:          bounds,
		TemplateID:      tpl.ID,
		TemplateVersion: tpl.Version,
		PaceMode:        paceMode,
		Necessary:       necessary,
		Realized:        realizedRows,
		Gaps:            gaps,
		Focus:           focus,
		TasksCompleted:  activity.TasksCompleted,
		EventHours:      activity.EventHours,
		Interactions:    activity.Interactions,
		Revenue:         activity.Revenue,
		RevenueGoal:     goal.RevenueGoal,
		GoalPct:         goalPct,
	}, nil
}
