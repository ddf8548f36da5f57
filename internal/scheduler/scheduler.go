package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"SalesRadar/internal/model"
	"SalesRadar/internal/notifier"
	"SalesRadar/internal/recorder"
	"SalesRadar/internal/report"

	"github.com/robfig/cron/v3"
)

// Agent identifies the agent the scheduled evaluations run for.
type Agent struct {
	OrganizationID string
	ID             string
	Name           string
}

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron     *cron.Cron
	Builder  *report.Builder
	Agent    Agent
	Notifier *notifier.TelegramNotifier
	Recorder recorder.Recorder
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, b *report.Builder, agent Agent, tn *notifier.TelegramNotifier, rec recorder.Recorder) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Builder:  b,
		Agent:    agent,
		Notifier: tn,
		Recorder: rec,
		Ctx:      ctx,
	}
}

// RegisterAll registers the daily pace check, weekly digest, and monthly
// goal review.
func (s *Scheduler) RegisterAll(dailyCron, weeklyCron, monthlyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyPaceCheck); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	if _, err := s.Cron.AddFunc(weeklyCron, s.weeklyDigest); err != nil {
		return fmt.Errorf("register weekly task: %w", err)
	}
	if _, err := s.Cron.AddFunc(monthlyCron, s.monthlyReview); err != nil {
		return fmt.Errorf("register monthly task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunWeeklyNow executes the weekly digest immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunWeeklyNow() {
	s.weeklyDigest()
}

// dailyPaceCheck evaluates the month target at today's pace and notifies
// only when shortfalls exist.
func (s *Scheduler) dailyPaceCheck() {
	log.Println("[INFO] running daily pace check")
	r, err := s.build(model.PeriodMonth, true)
	if err != nil {
		log.Printf("[ERROR] daily pace check: %v", err)
		return
	}

	if err := s.Recorder.RecordReport(r); err != nil {
		log.Printf("[ERROR] record daily report: %v", err)
	}
	if len(r.Focus) == 0 {
		log.Println("[INFO] on pace, no focus priorities today")
		return
	}
	if err := s.Recorder.RecordFocus(r); err != nil {
		log.Printf("[ERROR] record focus events: %v", err)
	}
	s.trySend(notifier.FormatFocusDigest(r))
}

func (s *Scheduler) weeklyDigest() {
	log.Println("[INFO] running weekly digest")
	r, err := s.build(model.PeriodWeek, false)
	if err != nil {
		log.Printf("[ERROR] weekly digest: %v", err)
		s.trySend(fmt.Sprintf("❌ Falha ao montar o relatório semanal: %v", err))
		return
	}

	s.trySend(notifier.FormatReport(r))
	if err := s.Recorder.RecordReport(r); err != nil {
		log.Printf("[ERROR] record weekly report: %v", err)
	}
	if err := s.Recorder.RecordFocus(r); err != nil {
		log.Printf("[ERROR] record focus events: %v", err)
	}
}

func (s *Scheduler) monthlyReview() {
	log.Println("[INFO] running monthly goal review")
	r, err := s.build(model.PeriodMonth, false)
	if err != nil {
		log.Printf("[ERROR] monthly review: %v", err)
		return
	}

	s.trySend(notifier.FormatReport(r))
	if err := s.Recorder.RecordReport(r); err != nil {
		log.Printf("[ERROR] record monthly report: %v", err)
	}
	if err := s.Recorder.RecordFocus(r); err != nil {
		log.Printf("[ERROR] record focus events: %v", err)
	}
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/report":
		s.weeklyDigest()
		return ""
	case "/goal":
		r, err := s.build(model.PeriodMonth, false)
		if err != nil {
			return fmt.Sprintf("❌ Falha ao consultar a meta: %v", err)
		}
		return notifier.FormatGoalStatus(r)
	case "/focus":
		r, err := s.build(model.PeriodMonth, true)
		if err != nil {
			return fmt.Sprintf("❌ Falha ao calcular prioridades: %v", err)
		}
		if len(r.Focus) == 0 {
			return "✅ Nenhum gargalo no funil hoje"
		}
		return notifier.FormatFocusDigest(r)
	default:
		return "Comandos disponíveis:\n• /report — relatório semanal\n• /goal — status da meta\n• /focus — prioridades de foco"
	}
}

func (s *Scheduler) build(key model.PeriodKey, pace bool) (*model.PerformanceReport, error) {
	return s.Builder.Build(s.Agent.OrganizationID, s.Agent.ID, s.Agent.Name, key, time.Now(), pace)
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendReport(s.Ctx, text); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
