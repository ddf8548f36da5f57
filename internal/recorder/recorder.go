package recorder

import "SalesRadar/internal/model"

// Recorder persists computed reports for later analysis (a Grafana dashboard
// reads the SQLite file while the service writes).
type Recorder interface {
	RecordReport(r *model.PerformanceReport) error
	RecordFocus(r *model.PerformanceReport) error
	Close() error
}
