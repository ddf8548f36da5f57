package report

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"SalesRadar/internal/model"
)

// CRMFetcher implements Fetcher against the hosted CRM's REST API.
type CRMFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewCRMFetcher creates a fetcher with optional proxy support.
func NewCRMFetcher(baseURL, apiKey, proxyURL string) *CRMFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &CRMFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *CRMFetcher) Name() string { return "crm" }

// activityPayload is the expected JSON shape of the CRM activity report.
type activityPayload struct {
	Categories     map[string]float64 `json:"categories"`
	TasksCompleted int                `json:"tasks_completed"`
	TasksPrev      int                `json:"tasks_completed_prev"`
	EventHours     float64            `json:"event_hours"`
	Interactions   int                `json:"interactions"`
	Revenue        float64            `json:"revenue"`
	RevenuePrev    float64            `json:"revenue_prev"`
}

func (f *CRMFetcher) FetchActivity(orgID, agentID string, period model.PeriodKey) (*model.ActivityReport, error) {
	endpoint := fmt.Sprintf("%s/api/v1/reports/activity?org=%s&agent=%s&period=%s",
		f.BaseURL, url.QueryEscape(orgID), url.QueryEscape(agentID), url.QueryEscape(string(period)))

	var payload activityPayload
	if err := f.getJSON(endpoint, &payload); err != nil {
		return nil, fmt.Errorf("fetch activity report: %w", err)
	}
	if payload.Categories == nil {
		payload.Categories = map[string]float64{}
	}
	return &model.ActivityReport{
		CategoryCounts: payload.Categories,
		TasksCompleted: payload.TasksCompleted,
		TasksPrev:      payload.TasksPrev,
		EventHours:     payload.EventHours,
		Interactions:   payload.Interactions,
		Revenue:        payload.Revenue,
		RevenuePrev:    payload.RevenuePrev,
	}, nil
}

func (f *CRMFetcher) FetchGoal(orgID string) (*model.GoalConfig, error) {
	endpoint := fmt.Sprintf("%s/api/v1/organizations/%s/goal", f.BaseURL, url.PathEscape(orgID))

	var goal model.GoalConfig
	if err := f.getJSON(endpoint, &goal); err != nil {
		return nil, fmt.Errorf("fetch goal config: %w", err)
	}
	return &goal, nil
}

func (f *CRMFetcher) getJSON(endpoint string, out any) error {
	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return err
	}
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
