package scheduler

import (
	"errors"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog/log"
)

var errAlreadyStarted = errors.New("scheduler already started")

// Scheduler runs one job at a fixed interval. A run that is still in
// progress when the next one is due causes that next run to be skipped.
type Scheduler struct {
	mu        sync.Mutex
	scheduler *gocron.Scheduler
	interval  time.Duration
	started   bool
}

// New creates a Scheduler firing every interval.
func New(interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Second
	}
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		interval:  interval,
	}
}

// Interval returns the firing period.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Start schedules job and starts the underlying scheduler. The first run
// happens one interval after Start.
func (s *Scheduler) Start(job func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return errAlreadyStarted
	}

	_, err := s.scheduler.Every(s.interval).WaitForSchedule().Do(job)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.started = true
	log.Debug().Dur("interval", s.interval).Msg("scheduler started")
	return nil
}

// Stop stops the scheduler and cancels any future runs.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scheduler != nil && s.started {
		s.scheduler.Stop()
		s.started = false
	}
}
