package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"macrodash/internal/dashboard"
	"macrodash/internal/recorder"
)

// Scheduler keeps the default-lookback cache entry warm so the first
// browser hit after expiry does not pay full provider latency.
type Scheduler struct {
	Cron     *cron.Cron
	Service  *dashboard.Service
	Recorder recorder.Recorder
	Years    int
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler refreshing the given lookback window.
func NewScheduler(ctx context.Context, svc *dashboard.Service, rec recorder.Recorder, years int) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Service:  svc,
		Recorder: rec,
		Years:    years,
		Ctx:      ctx,
	}
}

// Register registers the periodic refresh task.
func (s *Scheduler) Register(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the refresh task immediately (for RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.refreshTask()
}

func (s *Scheduler) refreshTask() {
	log.Println("[INFO] running scheduled snapshot refresh")
	snap := s.Service.Refresh(s.Ctx, s.Years)
	if snap.Outage {
		log.Println("[ERROR] scheduled refresh: every instrument failed")
	}
	if err := s.Recorder.RecordSnapshot(s.Years, &snap); err != nil {
		log.Printf("[ERROR] record snapshot: %v", err)
	}
}
