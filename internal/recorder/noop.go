package recorder

import "macrodash/internal/snapshot"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordSnapshot(_ int, _ *snapshot.Snapshot) error { return nil }
func (n *NoopRecorder) Close() error                                     { return nil }
