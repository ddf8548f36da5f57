package httpx

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"SalesRadar/internal/funnel"
	"SalesRadar/internal/funnelcfg"
	"SalesRadar/internal/model"
	"SalesRadar/internal/period"
	"SalesRadar/internal/report"
	"SalesRadar/internal/scheduler"
)

// NewRouter builds the HTTP API. templates may be nil when no template
// database is configured; the append endpoint then answers 503.
func NewRouter(b *report.Builder, templates *funnelcfg.Store, resolver funnelcfg.Resolver, defaultAgent scheduler.Agent) http.Handler {
	mux := chi.NewRouter()
	mux.Use(instrument)

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) })
	mux.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ready")) })
	mux.Handle("/metrics", promhttp.Handler())

	mux.Get("/api/v1/report", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		orgID := orDefault(q.Get("org"), defaultAgent.OrganizationID)
		agentID := orDefault(q.Get("agent"), defaultAgent.ID)
		agentName := orDefault(q.Get("name"), defaultAgent.Name)
		key := model.PeriodKey(orDefault(q.Get("period"), string(model.PeriodMonth)))
		pace := q.Get("pace") == "true"

		rep, err := b.Build(orgID, agentID, agentName, key, time.Now(), pace)
		if err != nil {
			// bad period keys and unusable goals are the caller's problem;
			// only upstream fetch failures are a gateway error
			status := http.StatusBadGateway
			if errors.Is(err, period.ErrUnknownPeriod) || errors.Is(err, report.ErrInvalidGoal) {
				status = http.StatusBadRequest
			}
			http.Error(w, err.Error(), status)
			return
		}
		writeJSON(w, rep)
	})

	// Ad-hoc decomposition of an arbitrary revenue target, no CRM fetch.
	mux.Get("/api/v1/funnel", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		target, err := strconv.ParseFloat(q.Get("target"), 64)
		if err != nil {
			http.Error(w, "target required (number)", http.StatusBadRequest)
			return
		}
		if target < 0 {
			http.Error(w, "target must be non-negative", http.StatusBadRequest)
			return
		}
		key := model.PeriodKey(orDefault(q.Get("period"), string(model.PeriodMonth)))
		bounds, err := period.Resolve(key, time.Now())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		orgID := orDefault(q.Get("org"), defaultAgent.OrganizationID)
		tpl := resolver.ActiveTemplate(orgID, bounds.Start)
		pace := q.Get("pace") == "true"

		writeJSON(w, map[string]any{
			"bounds":    bounds,
			"template":  tpl.ID,
			"version":   tpl.Version,
			"necessary": funnel.Necessary(target, tpl, bounds, pace),
		})
	})

	mux.Get("/api/v1/templates/active", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		orgID := orDefault(q.Get("org"), defaultAgent.OrganizationID)
		asOf := time.Now()
		if v := q.Get("as_of"); v != "" {
			t, err := time.Parse("2006-01-02", v)
			if err != nil {
				http.Error(w, "bad as_of date (YYYY-MM-DD)", http.StatusBadRequest)
				return
			}
			asOf = t
		}
		writeJSON(w, resolver.ActiveTemplate(orgID, asOf))
	})

	mux.Post("/api/v1/templates", func(w http.ResponseWriter, r *http.Request) {
		if templates == nil {
			http.Error(w, "template store not configured", http.StatusServiceUnavailable)
			return
		}
		orgID := orDefault(r.URL.Query().Get("org"), defaultAgent.OrganizationID)

		var tpl model.FunnelTemplate
		if err := json.NewDecoder(r.Body).Decode(&tpl); err != nil {
			http.Error(w, "bad template payload: "+err.Error(), http.StatusBadRequest)
			return
		}
		if err := templates.Append(orgID, tpl); err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		log.Printf("[INFO] template %s/%s appended for %s", tpl.ID, tpl.Version, orgID)
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, map[string]string{"id": tpl.ID, "version": tpl.Version})
	})

	return mux
}

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	enc.Encode(v)
}
