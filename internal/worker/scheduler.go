package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/pratik-mahalle/streamvault/internal/pkg/logger"
)

// Job is a unit of background work run on a cron schedule
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

type entry struct {
	id       cron.EntryID
	job      Job
	schedule string
}

// Scheduler runs registered jobs on their cron schedules. A job still running
// when its next tick arrives is skipped for that tick.
type Scheduler struct {
	cron   *cron.Cron
	logger *logger.Logger

	mu      sync.RWMutex
	entries map[string]entry
	running bool
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewScheduler creates a scheduler accepting standard five-field expressions
// and descriptors such as @daily or @every 1h
func NewScheduler(log *logger.Logger) *Scheduler {
	cl := cronLogger{log: log}
	return &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(cl),
			cron.SkipIfStillRunning(cl),
		)),
		logger:  log,
		entries: make(map[string]entry),
		ctx:     context.Background(),
	}
}

// Add registers job under schedule. Names must be unique.
func (s *Scheduler) Add(schedule string, job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[job.Name()]; ok {
		return fmt.Errorf("job %q is already scheduled", job.Name())
	}

	id, err := s.cron.AddFunc(schedule, func() {
		s.execute(s.baseContext(), job)
	})
	if err != nil {
		return fmt.Errorf("invalid cron schedule %q for job %s: %w", schedule, job.Name(), err)
	}

	s.entries[job.Name()] = entry{id: id, job: job, schedule: schedule}

	s.logger.WithFields(map[string]interface{}{
		"job":      job.Name(),
		"schedule": schedule,
	}).Info("Job scheduled")

	return nil
}

// Start begins running scheduled jobs. Jobs see a context that is cancelled
// when ctx is done or Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler is already running")
	}

	s.ctx, s.cancel = context.WithCancel(ctx)
	s.cron.Start()
	s.running = true

	s.logger.WithFields(map[string]interface{}{
		"jobs_loaded": len(s.entries),
	}).Info("Job scheduler started")

	return nil
}

// Stop stops the scheduler and waits for running jobs to return
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.cancel()
	s.mu.Unlock()

	<-s.cron.Stop().Done()
	s.logger.Info("Job scheduler stopped")
}

// IsRunning returns whether the scheduler is running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// RunNow runs the named job synchronously, outside its schedule
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	s.mu.RLock()
	e, ok := s.entries[name]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("job %q is not scheduled", name)
	}
	return s.execute(ctx, e.job)
}

// Next returns the next activation time of the named job, zero if unknown
func (s *Scheduler) Next(name string) time.Time {
	s.mu.RLock()
	e, ok := s.entries[name]
	s.mu.RUnlock()
	if !ok {
		return time.Time{}
	}
	return s.cron.Entry(e.id).Next
}

func (s *Scheduler) baseContext() context.Context {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ctx
}

func (s *Scheduler) execute(ctx context.Context, job Job) error {
	started := time.Now()
	log := s.logger.WithFields(map[string]interface{}{
		"job":          job.Name(),
		"execution_id": uuid.New().String(),
	})

	log.Debug("Job execution started")

	err := job.Run(ctx)
	duration := time.Since(started)

	if err != nil {
		log.With("duration_ms", duration.Milliseconds()).ErrorWithErr(err, "Job execution failed")
		return err
	}

	log.With("duration_ms", duration.Milliseconds()).Info("Job execution completed")
	return nil
}

// cronLogger adapts the application logger to cron's logging interface
type cronLogger struct {
	log *logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.WithFields(pairs(keysAndValues)).Debug(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.WithFields(pairs(keysAndValues)).ErrorWithErr(err, msg)
}

func pairs(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return fields
}
