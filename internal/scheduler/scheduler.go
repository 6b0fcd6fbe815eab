// Package scheduler runs background jobs on cron schedules, such as the
// periodic market quote refresh.
package scheduler

import (
	"log"

	"github.com/robfig/cron/v3"
)

// Job is a named unit of background work.
type Job interface {
	Run() error
	Name() string
}

// Scheduler manages background jobs.
type Scheduler struct {
	cron *cron.Cron
}

// New creates a new scheduler using the standard five-field cron format.
func New() *Scheduler {
	return &Scheduler{
		cron: cron.New(),
	}
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Println("INFO scheduler started")
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("INFO scheduler stopped")
}

// AddJob registers a job with a cron schedule, e.g. "*/15 10-18 * * 1-5".
// Job failures are logged, never fatal.
func (s *Scheduler) AddJob(schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		if err := job.Run(); err != nil {
			log.Printf("ERROR scheduler: job %s failed: %v", job.Name(), err)
		}
	})
	if err != nil {
		return err
	}

	log.Printf("INFO scheduler: registered job %s with schedule %q", job.Name(), schedule)
	return nil
}

// QuoteRefresher refreshes every cached quote for assets with a position.
type QuoteRefresher struct {
	Refresh func() (int, error)
}

// Name implements Job.
func (j *QuoteRefresher) Name() string { return "quote-refresh" }

// Run implements Job.
func (j *QuoteRefresher) Run() error {
	updated, err := j.Refresh()
	if err != nil {
		return err
	}
	log.Printf("INFO scheduler: refreshed %d quotes", updated)
	return nil
}
