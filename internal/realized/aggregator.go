package realized

import "SalesRadar/internal/model"

// Aggregator maps raw CRM category counts onto the stage identifiers of the
// active template. The category table is fixed at construction; category
// labels and stage ids evolve independently, so the mapping is hand
// maintained in funnelcfg and injected here rather than read from package
// state.
type Aggregator struct {
	categories map[string]string // legacy category label → stage id
}

// New builds an aggregator over an immutable copy of the given table.
func New(categories map[string]string) *Aggregator {
	m := make(map[string]string, len(categories))
	for k, v := range categories {
		m[k] = v
	}
	return &Aggregator{categories: m}
}

// Aggregate emits one entry per template stage, in template order, tracking
// stages included. A stage with no mapped category (or no counts) reports 0;
// downstream gap computation relies on this completeness, never on set
// membership.
func (a *Aggregator) Aggregate(counts map[string]float64, tpl model.FunnelTemplate) []model.RealizedStage {
	byStage := make(map[string]float64, len(tpl.Stages))
	for category, value := range counts {
		if stageID, ok := a.categories[category]; ok {
			byStage[stageID] += value
		}
	}

	out := make([]model.RealizedStage, 0, len(tpl.Stages))
	for _, s := range tpl.Stages {
		out = append(out, model.RealizedStage{
			StageID:   s.ID,
			StageName: s.Name,
			Value:     byStage[s.ID],
		})
	}
	return out
}
