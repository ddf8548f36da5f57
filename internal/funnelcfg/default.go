package funnelcfg

import (
	"time"

	"SalesRadar/internal/model"
)

// stageSeed is the single source of truth for the default funnel: stage
// definitions, inversion order, and the legacy CRM category each stage maps
// to. Both Default() and CategoryMap() are built from it so the two can never
// drift apart.
var stageSeed = []struct {
	ID         string
	Name       string
	Kind       model.StageKind
	Category   string
	Conversion float64
	Inverted   bool
}{
	{"topo_funil", "Topo de Funil", model.KindStage, "sem_contato", 0.15, true},
	{"qualificado", "Qualificado", model.KindStage, "em_qualificacao", 0.25, true},
	{"apresentacao", "Apresentação", model.KindStage, "em_apresentacao", 0.30, true},
	{"reuniao_agendada", "Reunião Agendada", model.KindStage, "reuniao_marcada", 0.35, true},
	{"negociacao", "Negociação", model.KindStage, "em_negociacao", 0.40, true},
	{"follow_up", "Follow-up", model.KindMetric, "acompanhamento", 0, false},
	{"reciclagem", "Reciclagem de Leads", model.KindMetric, "reciclado", 0, false},
}

// defaultTicket is a typical average property ticket in BRL.
const defaultTicket = 400000

// Default returns the built-in funnel template used whenever an organization
// has no usable configuration of its own.
func Default() model.FunnelTemplate {
	tpl := model.FunnelTemplate{
		ID:            "default",
		Name:          "Funil Padrão Imobiliário",
		Version:       "builtin-1",
		EffectiveFrom: time.Time{},
		Rule:          model.FunnelRule{AverageTicket: defaultTicket},
	}
	for _, s := range stageSeed {
		tpl.Stages = append(tpl.Stages, model.FunnelStage{
			ID:         s.ID,
			Name:       s.Name,
			Kind:       s.Kind,
			Conversion: s.Conversion,
		})
		if s.Inverted {
			tpl.StageOrder = append(tpl.StageOrder, s.ID)
		}
	}
	return tpl
}

// CategoryMap returns the legacy category label → stage id lookup used by the
// realized-metrics aggregator. The map is freshly built per call so callers
// cannot mutate shared state.
func CategoryMap() map[string]string {
	m := make(map[string]string, len(stageSeed))
	for _, s := range stageSeed {
		m[s.Category] = s.ID
	}
	return m
}
