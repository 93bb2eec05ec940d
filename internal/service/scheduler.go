package service

import (
	"context"
	"log"
	"sync"
	"time"

	"mathsolver/internal/domain"
)

// SchedulerConfig holds settings for the polling scheduler.
type SchedulerConfig struct {
	Interval   time.Duration
	RunOnStart bool
}

// Scheduler triggers processing runs on a fixed interval. Overlapping runs
// are skipped, never queued: a tick that fires while a run is still in
// flight is dropped.
type Scheduler struct {
	processor *Processor
	cfg       SchedulerConfig

	mu      sync.Mutex
	running bool
	wg      sync.WaitGroup
}

// NewScheduler creates a Scheduler around the processor.
func NewScheduler(processor *Processor, cfg SchedulerConfig) *Scheduler {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Minute
	}
	return &Scheduler{processor: processor, cfg: cfg}
}

// Start runs the polling loop until ctx is canceled. It blocks until any
// in-flight run has finished.
func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	log.Printf("scheduler: started (interval=%s)", s.cfg.Interval)

	if s.cfg.RunOnStart {
		s.dispatch("schedule")
	}

	for {
		select {
		case <-ctx.Done():
			log.Printf("scheduler: shutting down, waiting for in-flight run...")
			s.wg.Wait()
			log.Printf("scheduler: shutdown complete")
			return
		case <-ticker.C:
			s.dispatch("schedule")
		}
	}
}

// Trigger starts a manual run immediately. It returns domain.ErrRunInProgress
// when a run is already executing.
func (s *Scheduler) Trigger(ctx context.Context) (*domain.Run, error) {
	if !s.tryAcquire() {
		return nil, domain.ErrRunInProgress
	}
	defer s.release()
	return s.processor.ProcessAll(ctx, "manual")
}

// Running reports whether a run is currently executing.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Scheduler) dispatch(trigger string) {
	if !s.tryAcquire() {
		log.Printf("scheduler: previous run still in flight, skipping tick")
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.release()

		// Run on a context independent of the tick loop so an in-flight
		// run completes during shutdown.
		runCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Interval)
		defer cancel()

		if _, err := s.processor.ProcessAll(runCtx, trigger); err != nil {
			log.Printf("scheduler: run failed: %v", err)
		}
	}()
}

func (s *Scheduler) tryAcquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return false
	}
	s.running = true
	return true
}

func (s *Scheduler) release() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}
