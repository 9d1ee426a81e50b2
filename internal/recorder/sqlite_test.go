package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"macrodash/internal/snapshot"
)

func TestSQLiteRecorder_RecordSnapshot(t *testing.T) {
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open recorder: %v", err)
	}
	defer r.Close()

	snap := &snapshot.Snapshot{
		TakenAt: time.Now(),
		Rows: []snapshot.MetricRow{
			{Label: "Equities", Symbol: "EQ", Latest: 5800.5, Delta: 12.25, Available: true},
			{Label: "Vol", Symbol: "VX", Available: false, Reason: "provider_unavailable"},
		},
	}
	if err := r.RecordSnapshot(2, snap); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := r.RecordSnapshot(2, snap); err != nil {
		t.Fatalf("second record: %v", err)
	}

	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM snapshot_rows`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 4 {
		t.Errorf("expected 4 rows, got %d", count)
	}

	var reason string
	var available int
	err = r.db.QueryRow(`SELECT reason, available FROM snapshot_rows WHERE label = 'Vol' LIMIT 1`).
		Scan(&reason, &available)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if available != 0 || reason != "provider_unavailable" {
		t.Errorf("unexpected row: available=%d reason=%q", available, reason)
	}
}
