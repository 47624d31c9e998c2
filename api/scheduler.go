/*
scheduler.go - Automated month recomputation scheduler

PURPOSE:
  Periodically recomputes the current month's compensation for every
  employee so that dashboards stay close to punched reality without
  manual recompute requests.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Non-forced recompute: manually overridden days are preserved
  - Per-employee failures are logged and do not stop the sweep

CONFIGURATION:
  - CheckInterval: How often to sweep (default: 1 hour)
  - Enabled: Whether scheduler is active (default: true)

USAGE:
  scheduler := NewRecomputeScheduler(store, processor, logger)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - handlers.go: RecomputeMonth endpoint (manual recompute)
  - compensation/processor.go: Month batch engine
*/
package api

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/warp/attendance-engine/compensation"
	"github.com/warp/attendance-engine/store/sqlite"
)

// RecomputeScheduler keeps current-month compensation fresh.
type RecomputeScheduler struct {
	Store         *sqlite.Store
	Processor     *compensation.Processor
	Logger        *slog.Logger
	CheckInterval time.Duration
	Enabled       bool

	ticker *time.Ticker
	stop   chan bool
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewRecomputeScheduler creates a new scheduler.
func NewRecomputeScheduler(store *sqlite.Store, processor *compensation.Processor, logger *slog.Logger) *RecomputeScheduler {
	return &RecomputeScheduler{
		Store:         store,
		Processor:     processor,
		Logger:        logger,
		CheckInterval: 1 * time.Hour,
		Enabled:       true,
		stop:          make(chan bool),
	}
}

// Start begins the scheduler.
func (rs *RecomputeScheduler) Start() {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if !rs.Enabled {
		rs.Logger.Info("scheduler disabled, not starting")
		return
	}

	rs.ticker = time.NewTicker(rs.CheckInterval)
	rs.wg.Add(1)

	go rs.run()

	rs.Logger.Info("scheduler started", "interval", rs.CheckInterval)
}

// Stop stops the scheduler.
func (rs *RecomputeScheduler) Stop() {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.ticker != nil {
		rs.ticker.Stop()
		close(rs.stop)
		rs.wg.Wait()
		rs.Logger.Info("scheduler stopped")
	}
}

func (rs *RecomputeScheduler) run() {
	defer rs.wg.Done()

	// Run immediately on start
	rs.sweep()

	for {
		select {
		case <-rs.ticker.C:
			rs.sweep()
		case <-rs.stop:
			return
		}
	}
}

func (rs *RecomputeScheduler) sweep() {
	ctx := context.Background()
	now := time.Now()
	year, month := now.Year(), now.Month()

	employees, err := rs.Store.ListEmployees(ctx)
	if err != nil {
		rs.Logger.Error("scheduler: list employees", "error", err)
		return
	}

	computed := 0
	failed := 0
	for _, emp := range employees {
		result, err := rs.Processor.ProcessMonth(ctx, emp, year, month, false)
		if err != nil {
			rs.Logger.Error("scheduler: recompute month",
				"employee", emp.ID, "year", year, "month", int(month), "error", err)
			failed++
			continue
		}
		computed += result.Computed
		for _, f := range result.Failures {
			rs.Logger.Warn("scheduler: day failed",
				"employee", emp.ID, "day", f.Day, "error", f.Err)
		}
	}

	if computed > 0 || failed > 0 {
		rs.Logger.Info("scheduler sweep completed",
			"employees", len(employees), "computed", computed, "failed", failed)
	}
}

// RunNow triggers an immediate sweep (for testing/admin).
func (rs *RecomputeScheduler) RunNow() {
	rs.sweep()
}

// NextRunTime returns when the next scheduled sweep will occur.
func (rs *RecomputeScheduler) NextRunTime() time.Time {
	return time.Now().Add(rs.CheckInterval)
}
