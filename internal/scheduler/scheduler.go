// Package scheduler runs the periodic background jobs. The job table is
// assembled once at process start; nothing registers or mutates jobs at
// runtime.
package scheduler

import (
	"context"
	"log"
	"sync"
	"time"
)

// Job is one entry in the static job table.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

type Scheduler struct {
	jobs   []Job
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(jobs ...Job) *Scheduler {
	return &Scheduler{jobs: jobs}
}

// Start launches one goroutine per job. Each tick runs to completion before
// the next is considered; a run that overlaps its own interval simply delays
// the following tick.
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.runLoop(ctx, job)
	}
}

func (s *Scheduler) runLoop(ctx context.Context, job Job) {
	defer s.wg.Done()

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	log.Printf("scheduler: job %q started (interval %s)", job.Name, job.Interval)
	for {
		select {
		case <-ctx.Done():
			log.Printf("scheduler: job %q stopped", job.Name)
			return
		case <-ticker.C:
			if err := job.Run(ctx); err != nil {
				log.Printf("scheduler: job %q failed: %v", job.Name, err)
			}
		}
	}
}

// Stop cancels all job loops and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}
