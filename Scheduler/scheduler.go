package Scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/robfig/cron/v3"

	"slack-mood-reporter/Config"
	"slack-mood-reporter/Logging"
)

// Job is one registered task and when it fires next.
type Job struct {
	Name     string
	NextRun  time.Time
	LastRun  time.Time
	RunCount int64

	schedule cron.Schedule
	run      func(ctx context.Context)
}

// Scheduler is a polling job registry. Jobs run one at a time on the
// goroutine that calls Run or RunPending.
type Scheduler struct {
	clock    clockwork.Clock
	interval time.Duration
	jobs     []*Job
	log      *Logging.Logger
}

func New(clock clockwork.Clock, interval time.Duration, log *Logging.Logger) *Scheduler {
	return &Scheduler{
		clock:    clock,
		interval: interval,
		log:      log.With("component", "scheduler"),
	}
}

// Daily registers fn to run every day at "HH:MM" in the clock's location.
func (s *Scheduler) Daily(name string, at string, fn func(ctx context.Context)) (*Job, error) {
	hour, minute, parseTimeError := Config.ParseTimeOfDay(at)
	if parseTimeError != nil {
		return nil, parseTimeError
	}

	// "HH:MM" every day is the standard cron line "MM HH * * *"
	schedule, parseScheduleError := cron.ParseStandard(fmt.Sprintf("%d %d * * *", minute, hour))
	if parseScheduleError != nil {
		return nil, fmt.Errorf("parse schedule for %s: %w", name, parseScheduleError)
	}

	// the first fire is the next occurrence strictly after now
	job := &Job{
		Name:     name,
		schedule: schedule,
		run:      fn,
		NextRun:  schedule.Next(s.clock.Now()),
	}
	s.jobs = append(s.jobs, job)
	s.log.Infow("Registered job", "job", name, "at", at, "next_run", job.NextRun)
	return job, nil
}

// RunPending runs every job whose fire time has passed. The next fire time
// is computed from the current time, so fires missed while the process was
// busy or down are dropped rather than replayed.
func (s *Scheduler) RunPending(ctx context.Context) {
	for _, job := range s.jobs {
		now := s.clock.Now()
		if now.Before(job.NextRun) {
			continue
		}

		// the job blocks the loop until it is done
		s.log.Infow("Running job", "job", job.Name, "scheduled_for", job.NextRun)
		job.run(ctx)

		// schedule from the time the job finished, not from the missed slot
		job.LastRun = now
		job.RunCount++
		job.NextRun = job.schedule.Next(s.clock.Now())
		s.log.Infow("Job finished", "job", job.Name, "next_run", job.NextRun)
	}
}

// Run polls the registry every interval until ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		s.RunPending(ctx)

		// sleep one interval unless we are asked to stop
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.clock.After(s.interval):
		}
	}
}
