package model

// NecessaryStage is the required volume at one funnel stage to hit the
// revenue target. Revenue is populated only for the terminal stage.
type NecessaryStage struct {
	StageID   string  `json:"stage_id"`
	StageName string  `json:"stage_name"`
	Units     float64 `json:"units"`
	Revenue   float64 `json:"revenue,omitempty"`
}

// RealizedStage is the achieved volume at one template stage for the period,
// aligned one-to-one with the template's stage list.
type RealizedStage struct {
	StageID   string  `json:"stage_id"`
	StageName string  `json:"stage_name"`
	Value     float64 `json:"value"`
}

// StageGap compares required against realized for one stage. Gap is
// realized minus necessary, so a shortfall is negative. GapPct is nil when
// nothing was required.
type StageGap struct {
	StageID   string   `json:"stage_id"`
	StageName string   `json:"stage_name"`
	Necessary float64  `json:"necessary"`
	Realized  float64  `json:"realized"`
	Gap       float64  `json:"gap"`
	GapPct    *float64 `json:"gap_pct"`
	Weight    float64  `json:"weight"`
}

// FocusPriority is a display-ready recommendation for the stage whose
// shortfall most deserves attention.
type FocusPriority struct {
	StageID   string   `json:"stage_id"`
	StageName string   `json:"stage_name"`
	Message   string   `json:"message"`
	Gap       float64  `json:"gap"`
	GapPct    *float64 `json:"gap_pct"`
}

// ActivityReport carries the period-scoped raw figures fetched from the CRM.
// Prev fields exist for trend display outside this engine and pass through
// untouched.
type ActivityReport struct {
	CategoryCounts map[string]float64 `json:"category_counts"`
	TasksCompleted int                `json:"tasks_completed"`
	TasksPrev      int                `json:"tasks_prev"`
	EventHours     float64            `json:"event_hours"`
	Interactions   int                `json:"interactions"`
	Revenue        float64            `json:"revenue"`
	RevenuePrev    float64            `json:"revenue_prev"`
}

// GoalConfig is the organization's revenue goal record.
type GoalConfig struct {
	RevenueGoal    float64 `json:"revenue_goal"`
	RealizedToDate float64 `json:"realized_to_date"`
}

// PerformanceReport is the assembled output for one agent and period: plain
// immutable data with no behavior.
type PerformanceReport struct {
	OrganizationID  string           `json:"organization_id"`
	AgentID         string           `json:"agent_id"`
	AgentName       string           `json:"agent_name"`
	Period          PeriodKey        `json:"period"`
	Bounds          PeriodBounds     `json:"bounds"`
	TemplateID      string           `json:"template_id"`
	TemplateVersion string           `json:"template_version"`
	PaceMode        bool             `json:"pace_mode"`
	Necessary       []NecessaryStage `json:"necessary"`
	Realized        []RealizedStage  `json:"realized"`
	Gaps            []StageGap       `json:"gaps"`
	Focus           []FocusPriority  `json:"focus"`
	TasksCompleted  int              `json:"tasks_completed"`
	EventHours      float64          `json:"event_hours"`
	Interactions    int              `json:"interactions"`
	Revenue         float64          `json:"revenue"`
	RevenueGoal     float64          `json:"revenue_goal"`
	GoalPct         float64          `json:"goal_pct"`
}
