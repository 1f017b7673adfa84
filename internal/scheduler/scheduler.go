package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"

	"MarketDashboard/internal/dashboard"

	"github.com/robfig/cron/v3"
)

// Refresher warms the dashboard data.
type Refresher interface {
	Refresh(ctx context.Context) (dashboard.RefreshResult, error)
}

// Scheduler runs the periodic refresh job.
type Scheduler struct {
	Cron      *cron.Cron
	Refresher Refresher
	Ctx       context.Context

	mu      sync.Mutex
	running bool
	last    dashboard.RefreshResult
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, r Refresher) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Refresher: r,
		Ctx:       ctx,
	}
}

// Register adds the refresh job on refreshCron (six fields, with seconds).
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

// Stop stops the cron scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the refresh job immediately (for manual trigger / RUN_ON_START).
// It returns false if a refresh was already in progress.
func (s *Scheduler) RunNow() (dashboard.RefreshResult, bool) {
	return s.run()
}

// Last returns the result of the most recent completed refresh.
func (s *Scheduler) Last() dashboard.RefreshResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

func (s *Scheduler) refreshTask() {
	log.Println("[INFO] running refresh task")
	if _, ok := s.run(); !ok {
		log.Println("[WARN] refresh already running, skipped")
	}
}

func (s *Scheduler) run() (dashboard.RefreshResult, bool) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return dashboard.RefreshResult{}, false
	}
	s.running = true
	s.mu.Unlock()

	res, err := s.Refresher.Refresh(s.Ctx)
	if err != nil {
		log.Printf("[ERROR] refresh: %v", err)
	}

	s.mu.Lock()
	s.running = false
	s.last = res
	s.mu.Unlock()
	return res, true
}
