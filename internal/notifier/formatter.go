package notifier

import (
	"fmt"
	"strings"
	"time"

	"SalesRadar/internal/model"
)

var periodLabels = map[model.PeriodKey]string{
	model.PeriodDay:      "Hoje",
	model.PeriodWeek:     "Semana",
	model.PeriodMonth:    "Mês",
	model.PeriodQuarter:  "Trimestre",
	model.PeriodHalfYear: "Semestre",
	model.PeriodYear:     "Ano",
}

func periodLabel(key model.PeriodKey) string {
	if l, ok := periodLabels[key]; ok {
		return l
	}
	return string(key)
}

// FormatReport formats the full performance report into a Telegram message.
func FormatReport(r *model.PerformanceReport) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>SalesRadar</b> | %s | %s\n", r.AgentName, periodLabel(r.Period)))
	b.WriteString(fmt.Sprintf("%s — %s\n\n", r.Bounds.Start.Format("02/01"), r.Bounds.End.Format("02/01/2006")))

	b.WriteString(fmt.Sprintf("🎯 Meta: R$ %.0f | Realizado: R$ %.0f (%.0f%%)\n", r.RevenueGoal, r.Revenue, r.GoalPct*100))
	if r.PaceMode {
		b.WriteString(fmt.Sprintf("⏱ Ritmo: %.0f%% do período decorrido\n", r.Bounds.Elapsed*100))
	}
	b.WriteString("\n📈 <b>Funil invertido (necessário × realizado):</b>\n")
	for _, g := range r.Gaps {
		pct := "—"
		if g.GapPct != nil {
			pct = fmt.Sprintf("%.0f%%", *g.GapPct*100)
		}
		b.WriteString(fmt.Sprintf("  %s: %.0f / %.2f (%s)\n", g.StageName, g.Realized, g.Necessary, pct))
	}

	if len(r.Focus) > 0 {
		b.WriteString("\n🔎 <b>Prioridades de foco:</b>\n")
		for i, f := range r.Focus {
			b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, f.Message))
		}
	} else {
		b.WriteString("\n✅ Nenhum gargalo no funil neste período\n")
	}

	b.WriteString(fmt.Sprintf("\n📋 Tarefas: %d | Interações: %d | Horas em eventos: %.1f\n",
		r.TasksCompleted, r.Interactions, r.EventHours))

	return b.String()
}

// FormatFocusDigest formats only the focus priorities, used by the daily
// pace check when shortfalls exist.
func FormatFocusDigest(r *model.PerformanceReport) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🔎 <b>Foco do dia</b> | %s | %s\n\n", r.AgentName, time.Now().Format("02/01/2006")))
	for i, f := range r.Focus {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, f.Message))
	}
	return b.String()
}

// FormatGoalStatus formats the simple percentage-of-goal view.
func FormatGoalStatus(r *model.PerformanceReport) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🎯 <b>Meta de receita</b> | %s\n\n", periodLabel(r.Period)))
	b.WriteString(fmt.Sprintf("Meta: R$ %.0f\n", r.RevenueGoal))
	b.WriteString(fmt.Sprintf("Realizado: R$ %.0f\n", r.Revenue))
	b.WriteString(fmt.Sprintf("Atingido: %.1f%%\n", r.GoalPct*100))
	return b.String()
}
