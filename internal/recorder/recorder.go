package recorder

import "macrodash/internal/snapshot"

// Recorder persists refreshed snapshots for history.
type Recorder interface {
	RecordSnapshot(years int, snap *snapshot.Snapshot) error
	Close() error
}
