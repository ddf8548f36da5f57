package recorder

import "SalesRadar/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordReport(_ *model.PerformanceReport) error { return nil }
func (n *NoopRecorder) RecordFocus(_ *model.PerformanceReport) error  { return nil }
func (n *NoopRecorder) Close() error                                  { return nil }
