// Package scheduler provides unified scheduler management using gocron v2.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"subtrack/internal/shared/biztime"
	"subtrack/internal/shared/logger"
)

// BatchJob defines the interface for a scheduled batch processing job.
// Each Execute call processes a batch and returns the number of items processed.
type BatchJob interface {
	Execute(ctx context.Context) (int, error)
}

// SchedulerManager manages all scheduled jobs on a single gocron v2 instance.
type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	started   bool
	startedMu sync.RWMutex
}

// NewSchedulerManager creates a new SchedulerManager instance.
func NewSchedulerManager(log logger.Interface) (*SchedulerManager, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
	)
	if err != nil {
		return nil, err
	}

	return &SchedulerManager{
		scheduler: scheduler,
		logger:    log,
	}, nil
}

// RegisterExpirationJob registers the expiration sweep. Singleton mode with
// reschedule limiting guarantees at most one sweep in flight; a run that
// overlaps the next tick simply absorbs it.
func (m *SchedulerManager) RegisterExpirationJob(sweepJob BatchJob, interval time.Duration) error {
	_, err := m.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			defer cancel()
			m.runSweep(ctx, sweepJob)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("subscription", "expire"),
		gocron.WithName("expiration-sweep"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered expiration sweep job", "interval", interval)
	return nil
}

func (m *SchedulerManager) runSweep(ctx context.Context, sweepJob BatchJob) {
	m.logger.Debugw("expiration sweep started")

	startTime := biztime.NowUTC()

	expiredCount, err := sweepJob.Execute(ctx)
	if err != nil {
		m.logger.Errorw("expiration sweep failed",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	if expiredCount > 0 {
		m.logger.Infow("subscriptions expired",
			"count", expiredCount,
			"duration", time.Since(startTime),
		)
	} else {
		m.logger.Debugw("no subscriptions due for expiration",
			"duration", time.Since(startTime),
		)
	}
}

// RegisterReconciliationJob registers the expiration index repair pass.
func (m *SchedulerManager) RegisterReconciliationJob(reconcileJob BatchJob, interval time.Duration) error {
	_, err := m.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
			defer cancel()
			m.runReconciliation(ctx, reconcileJob)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("subscription", "reconcile"),
		gocron.WithName("index-reconciliation"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered index reconciliation job", "interval", interval)
	return nil
}

func (m *SchedulerManager) runReconciliation(ctx context.Context, reconcileJob BatchJob) {
	m.logger.Debugw("index reconciliation started")

	startTime := biztime.NowUTC()

	repairs, err := reconcileJob.Execute(ctx)
	if err != nil {
		m.logger.Errorw("index reconciliation failed",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	if repairs > 0 {
		m.logger.Infow("expiration index repaired",
			"repairs", repairs,
			"duration", time.Since(startTime),
		)
	} else {
		m.logger.Debugw("expiration index already converged",
			"duration", time.Since(startTime),
		)
	}
}

// Start starts the scheduler and all registered jobs.
func (m *SchedulerManager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if m.started {
		return
	}

	m.scheduler.Start()
	m.started = true
	m.logger.Infow("scheduler manager started", "job_count", len(m.scheduler.Jobs()))
}

// Stop gracefully stops the scheduler.
// It waits for all running jobs to complete before returning.
func (m *SchedulerManager) Stop() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return nil
	}

	m.logger.Infow("stopping scheduler manager")

	err := m.scheduler.Shutdown()
	m.started = false

	if err != nil {
		m.logger.Errorw("scheduler manager shutdown with error", "error", err)
		return err
	}

	m.logger.Infow("scheduler manager stopped")
	return nil
}

// IsStarted returns whether the scheduler is running.
func (m *SchedulerManager) IsStarted() bool {
	m.startedMu.RLock()
	defer m.startedMu.RUnlock()
	return m.started
}

// Jobs returns all registered jobs for inspection.
func (m *SchedulerManager) Jobs() []gocron.Job {
	return m.scheduler.Jobs()
}
