package model

import "time"

// MetricKind categorizes a metric definition.
type MetricKind string

const (
	MetricCount    MetricKind = "count"
	MetricSum      MetricKind = "sum"
	MetricDuration MetricKind = "duration"
	MetricCurrency MetricKind = "currency"
)

// MetricDefinition is a named counter configured outside the engine. Once a
// historical computation references one, edits must produce a new definition
// rather than mutate this one.
type MetricDefinition struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Kind   MetricKind `json:"kind"`
	Value  float64    `json:"value"`
	Active bool       `json:"active"`
	Order  int        `json:"order"`
}

// StageKind distinguishes real funnel stages from synthetic tracking metrics.
type StageKind string

const (
	KindStage  StageKind = "stage"
	KindMetric StageKind = "metric"
)

// FunnelStage is one node of the funnel. Conversion is the fraction of the
// upstream stage's volume that converts into this stage, valid in (0,1];
// zero means no conversion rule is configured. Weight biases focus ranking
// only; zero means the default weight of 1.
type FunnelStage struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Kind       StageKind `json:"kind"`
	Conversion float64   `json:"conversion,omitempty"`
	Weight     float64   `json:"weight,omitempty"`
}

// FunnelRule describes how the terminal stage is monetized: either a flat
// average ticket value, or a reference to a currency metric definition.
type FunnelRule struct {
	AverageTicket   float64 `json:"average_ticket,omitempty"`
	RevenueMetricID string  `json:"revenue_metric_id,omitempty"`
}

// FunnelTemplate is a versioned, effective-dated funnel snapshot. Templates
// are append-only: the template for a computation is the one with the latest
// EffectiveFrom not after the date the computation concerns. StageOrder runs
// from the top of the funnel to the revenue-generating stage; stages outside
// it (tracking stages) participate in realized reporting only.
type FunnelTemplate struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Version       string             `json:"version"`
	EffectiveFrom time.Time          `json:"effective_from"`
	StageOrder    []string           `json:"stage_order"`
	Stages        []FunnelStage      `json:"stages"`
	Rule          FunnelRule         `json:"rule"`
	Metrics       []MetricDefinition `json:"metrics,omitempty"`
}

// Stage returns the stage definition for the given id.
func (t *FunnelTemplate) Stage(id string) (FunnelStage, bool) {
	for _, s := range t.Stages {
		if s.ID == id {
			return s, true
		}
	}
	return FunnelStage{}, false
}

// StageWeight returns the diagnostic weight for a stage, defaulting to 1.
func (t *FunnelTemplate) StageWeight(id string) float64 {
	if s, ok := t.Stage(id); ok && s.Weight > 0 {
		return s.Weight
	}
	return 1
}

// TicketValue resolves the currency value of one terminal-stage unit. It
// reports false when neither the average ticket nor a usable currency metric
// is configured.
func (t *FunnelTemplate) TicketValue() (float64, bool) {
	if t.Rule.AverageTicket > 0 {
		return t.Rule.AverageTicket, true
	}
	if t.Rule.RevenueMetricID != "" {
		for _, m := range t.Metrics {
			if m.ID == t.Rule.RevenueMetricID && m.Kind == MetricCurrency && m.Active && m.Value > 0 {
				return m.Value, true
			}
		}
	}
	return 0, false
}
