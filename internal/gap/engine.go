package gap

import (
	"fmt"
	"math"
	"sort"

	"SalesRadar/internal/model"
)

// DefaultFocusMax is how many focus priorities surface when the caller does
// not say otherwise.
const DefaultFocusMax = 3

// Compute compares required against realized per stage. Output length and
// order match the necessary slice; realized values are matched by stage id
// and default to 0 when absent. The percentage gap is undefined (nil) when
// nothing was required.
func Compute(necessary []model.NecessaryStage, realized []model.RealizedStage, tpl model.FunnelTemplate) []model.StageGap {
	byStage := make(map[string]float64, len(realized))
	for _, r := range realized {
		byStage[r.StageID] = r.Value
	}

	out := make([]model.StageGap, 0, len(necessary))
	for _, n := range necessary {
		achieved := byStage[n.StageID]
		g := model.StageGap{
			StageID:   n.StageID,
			StageName: n.StageName,
			Necessary: n.Units,
			Realized:  achieved,
			Gap:       achieved - n.Units,
			Weight:    tpl.StageWeight(n.StageID),
		}
		if n.Units != 0 {
			pct := round3(achieved / n.Units)
			g.GapPct = &pct
		}
		out = append(out, g)
	}
	return out
}

// FocusPriorities ranks the stages most worth acting on next. Only genuine
// shortfalls qualify: a stage with nothing required has nothing to diagnose,
// and a stage at or above target scores zero and never surfaces. Severity is
// the diagnostic weight times the size of the shortfall.
func FocusPriorities(gaps []model.StageGap, max int) []model.FocusPriority {
	if max <= 0 {
		max = DefaultFocusMax
	}

	type scored struct {
		gap   model.StageGap
		score float64
	}
	var candidates []scored
	for _, g := range gaps {
		if g.Necessary == 0 {
			continue
		}
		score := g.Weight * math.Max(0, -g.Gap)
		if score <= 0 {
			continue
		}
		candidates = append(candidates, scored{gap: g, score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > max {
		candidates = candidates[:max]
	}

	out := make([]model.FocusPriority, 0, len(candidates))
	for _, c := range candidates {
		g := c.gap
		out = append(out, model.FocusPriority{
			StageID:   g.StageID,
			StageName: g.StageName,
			Message: fmt.Sprintf("%s: realizado %.0f de %.0f necessários, faltam %.0f",
				g.StageName, g.Realized, g.Necessary, -g.Gap),
			Gap:    g.Gap,
			GapPct: g.GapPct,
		})
	}
	return out
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
