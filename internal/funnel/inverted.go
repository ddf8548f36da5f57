package funnel

import (
	"math"

	"SalesRadar/internal/model"
)

// Necessary propagates a revenue target backward through the template's
// funnel and returns the required unit count at every stage, top of funnel
// first. With paceMode on, the target is scaled by the period's elapsed
// fraction to answer "how much should I have done by now".
//
// The computation is total: a zero target still yields one fully-named entry
// per stage, and a template that cannot be monetized degrades to a
// revenue-only result instead of failing.
func Necessary(target float64, tpl model.FunnelTemplate, bounds model.PeriodBounds, paceMode bool) []model.NecessaryStage {
	if len(tpl.StageOrder) == 0 {
		return []model.NecessaryStage{}
	}

	ticket, ok := tpl.TicketValue()
	if !ok && target > 0 {
		// We know the money target but cannot decompose it into units.
		terminal := tpl.StageOrder[len(tpl.StageOrder)-1]
		return []model.NecessaryStage{{
			StageID:   terminal,
			StageName: stageName(tpl, terminal),
			Units:     0,
			Revenue:   round2(target),
		}}
	}

	var units float64
	if ticket > 0 {
		units = target / ticket
	}
	if paceMode && bounds.Elapsed > 0 {
		units *= bounds.Elapsed
	}

	// Walk from the terminal stage back to the top. Each stage's ratio is the
	// fraction of the upstream stage's volume that converts into it, so the
	// upstream requirement is the current one divided by that ratio. The
	// unrounded chain propagates; rounding applies per recorded figure only.
	n := len(tpl.StageOrder)
	required := make([]float64, n)
	required[n-1] = units
	for i := n - 1; i > 0; i-- {
		required[i-1] = required[i] / conversion(tpl, tpl.StageOrder[i])
	}

	out := make([]model.NecessaryStage, n)
	for i, id := range tpl.StageOrder {
		out[i] = model.NecessaryStage{
			StageID:   id,
			StageName: stageName(tpl, id),
			Units:     round2(required[i]),
		}
	}
	out[n-1].Revenue = round2(units * ticket)
	return out
}

// conversion returns the stage's ratio normalized to (0,1]. A missing or
// out-of-range ratio means no attrition is assumed.
func conversion(tpl model.FunnelTemplate, id string) float64 {
	s, ok := tpl.Stage(id)
	if !ok || s.Conversion <= 0 || s.Conversion > 1 {
		return 1
	}
	return s.Conversion
}

func stageName(tpl model.FunnelTemplate, id string) string {
	if s, ok := tpl.Stage(id); ok {
		return s.Name
	}
	return id
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
