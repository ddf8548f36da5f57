package report

import (
	"errors"
	"testing"
	"time"

	"SalesRadar/internal/funnelcfg"
	"SalesRadar/internal/model"
	"SalesRadar/internal/period"
)

func testFetcher() *MockFetcher {
	return &MockFetcher{
		Activity: model.ActivityReport{
			CategoryCounts: map[string]float64{
				"sem_contato":     300,
				"em_qualificacao": 90,
				"em_apresentacao": 30,
				"reuniao_marcada": 12,
				"em_negociacao":   4,
			},
			TasksCompleted: 18,
			EventHours:     22.5,
			Interactions:   140,
			Revenue:        1600000,
		},
		Goal: model.GoalConfig{RevenueGoal: 4000000, RealizedToDate: 1600000},
	}
}

func TestBuild_AssemblesFullReport(t *testing.T) {
	b := NewBuilder(testFetcher(), funnelcfg.NewStaticResolver(), 3)
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	r, err := b.Build("org-1", "agent-7", "Ana", model.PeriodMonth, now, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(r.Necessary) != 5 {
		t.Errorf("necessary: expected 5 stages, got %d", len(r.Necessary))
	}
	if len(r.Realized) != 7 {
		t.Errorf("realized: expected all 7 template stages, got %d", len(r.Realized))
	}
	if len(r.Gaps) != len(r.Necessary) {
		t.Errorf("gaps length %d must match necessary length %d", len(r.Gaps), len(r.Necessary))
	}
	if len(r.Focus) == 0 || len(r.Focus) > 3 {
		t.Errorf("focus: got %d entries", len(r.Focus))
	}
	if r.GoalPct != 0.4 {
		t.Errorf("goal pct: got %v, want 0.4", r.GoalPct)
	}
	if r.TasksCompleted != 18 || r.Interactions != 140 || r.EventHours != 22.5 {
		t.Error("side-channel metrics must pass through unchanged")
	}
	if r.TemplateID != "default" {
		t.Errorf("template id: got %q", r.TemplateID)
	}
	if r.Bounds.End.After(now) {
		t.Errorf("bounds end %v after now %v", r.Bounds.End, now)
	}
}

func TestBuild_TopShortfallRanksFirst(t *testing.T) {
	// Against a 4M goal the default funnel needs 952 contacts at the top;
	// 300 realized is by far the heaviest absolute shortfall.
	b := NewBuilder(testFetcher(), funnelcfg.NewStaticResolver(), 3)
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	r, err := b.Build("org-1", "agent-7", "Ana", model.PeriodMonth, now, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Focus[0].StageID != "topo_funil" {
		t.Errorf("expected topo_funil as top focus, got %s", r.Focus[0].StageID)
	}
}

func TestBuild_RejectsNegativeGoal(t *testing.T) {
	f := testFetcher()
	f.Goal.RevenueGoal = -1
	b := NewBuilder(f, funnelcfg.NewStaticResolver(), 3)

	_, err := b.Build("org-1", "agent-7", "Ana", model.PeriodMonth, time.Now(), false)
	if err == nil {
		t.Fatal("expected negative goal to be rejected at the boundary")
	}
	if !errors.Is(err, ErrInvalidGoal) {
		t.Errorf("expected ErrInvalidGoal, got %v", err)
	}
}

func TestBuild_UnknownPeriodFails(t *testing.T) {
	b := NewBuilder(testFetcher(), funnelcfg.NewStaticResolver(), 3)
	_, err := b.Build("org-1", "agent-7", "Ana", model.PeriodKey("decade"), time.Now(), false)
	if err == nil {
		t.Fatal("expected unknown period key to fail fast")
	}
	if !errors.Is(err, period.ErrUnknownPeriod) {
		t.Errorf("expected ErrUnknownPeriod, got %v", err)
	}
}

func TestBuild_PaceModeShrinksRequirements(t *testing.T) {
	b := NewBuilder(testFetcher(), funnelcfg.NewStaticResolver(), 3)
	// Mid-month: elapsed fraction well below 1.
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	full, err := b.Build("org-1", "agent-7", "Ana", model.PeriodMonth, now, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	paced, err := b.Build("org-1", "agent-7", "Ana", model.PeriodMonth, now, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range paced.Necessary {
		if paced.Necessary[i].Units > full.Necessary[i].Units {
			t.Errorf("%s: paced requirement %v exceeds full %v",
				paced.Necessary[i].StageID, paced.Necessary[i].Units, full.Necessary[i].Units)
		}
	}
}
