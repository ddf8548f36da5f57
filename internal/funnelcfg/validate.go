package funnelcfg

import (
	"time"

	"SalesRadar/internal/model"
)

// Validate is the single parse-or-default boundary for raw template records.
// A template is usable only when it has stages, a non-empty stage order whose
// every id resolves to a stage definition, and an effective date not after
// asOf. Anything else falls back to the built-in default; downstream code
// never sees a malformed template.
func Validate(raw model.FunnelTemplate, asOf time.Time) (model.FunnelTemplate, bool) {
	if len(raw.Stages) == 0 || len(raw.StageOrder) == 0 {
		return Default(), false
	}
	if raw.EffectiveFrom.After(asOf) {
		return Default(), false
	}
	for _, id := range raw.StageOrder {
		if _, ok := raw.Stage(id); !ok {
			return Default(), false
		}
	}
	return raw, true
}
