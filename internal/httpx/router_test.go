package httpx

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"SalesRadar/internal/funnelcfg"
	"SalesRadar/internal/model"
	"SalesRadar/internal/report"
	"SalesRadar/internal/scheduler"
)

type downFetcher struct{}

func (d *downFetcher) Name() string { return "down" }

func (d *downFetcher) FetchActivity(_, _ string, _ model.PeriodKey) (*model.ActivityReport, error) {
	return nil, errors.New("crm unavailable")
}

func (d *downFetcher) FetchGoal(_ string) (*model.GoalConfig, error) {
	return nil, errors.New("crm unavailable")
}

func testRouter(f report.Fetcher) http.Handler {
	b := report.NewBuilder(f, funnelcfg.NewStaticResolver(), 3)
	agent := scheduler.Agent{OrganizationID: "org-1", ID: "agent-1", Name: "Ana"}
	return NewRouter(b, nil, funnelcfg.NewStaticResolver(), agent)
}

func serve(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestReportEndpointStatusCodes(t *testing.T) {
	healthy := testRouter(&report.MockFetcher{
		Activity: model.ActivityReport{CategoryCounts: map[string]float64{"em_negociacao": 4}},
		Goal:     model.GoalConfig{RevenueGoal: 4000000},
	})

	if rec := serve(t, healthy, "/api/v1/report?period=month"); rec.Code != http.StatusOK {
		t.Errorf("valid request: got %d, want 200; body %q", rec.Code, rec.Body.String())
	}

	// caller mistakes are 400s, not gateway failures
	if rec := serve(t, healthy, "/api/v1/report?period=decade"); rec.Code != http.StatusBadRequest {
		t.Errorf("unknown period: got %d, want 400; body %q", rec.Code, rec.Body.String())
	}

	badGoal := testRouter(&report.MockFetcher{
		Goal: model.GoalConfig{RevenueGoal: -1},
	})
	if rec := serve(t, badGoal, "/api/v1/report"); rec.Code != http.StatusBadRequest {
		t.Errorf("negative goal: got %d, want 400; body %q", rec.Code, rec.Body.String())
	}

	// upstream outages keep answering 502
	down := testRouter(&downFetcher{})
	if rec := serve(t, down, "/api/v1/report"); rec.Code != http.StatusBadGateway {
		t.Errorf("crm outage: got %d, want 502; body %q", rec.Code, rec.Body.String())
	}
}
