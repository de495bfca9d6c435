package recorder

import "StockTracker/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordReport(_ *model.Report, _ string) (string, error) { return "", nil }
func (n *NoopRecorder) Close() error                                         { return nil }
