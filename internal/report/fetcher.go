package report

import "SalesRadar/internal/model"

// Fetcher supplies the externally-owned inputs of a report: the period-scoped
// activity figures and the organization's goal record. How they are produced
// (and with what concurrency) is the collaborator's business; the engine only
// needs them internally consistent at call time.
type Fetcher interface {
	FetchActivity(orgID, agentID string, period model.PeriodKey) (*model.ActivityReport, error)
	FetchGoal(orgID string) (*model.GoalConfig, error)
	Name() string
}

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Activity model.ActivityReport
	Goal     model.GoalConfig
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchActivity(_, _ string, _ model.PeriodKey) (*model.ActivityReport, error) {
	act := m.Activity
	if act.CategoryCounts == nil {
		act.CategoryCounts = map[string]float64{}
	}
	return &act, nil
}

func (m *MockFetcher) FetchGoal(_ string) (*model.GoalConfig, error) {
	goal := m.Goal
	return &goal, nil
}
