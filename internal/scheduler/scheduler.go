// Package scheduler runs the background jobs of `ventureboard serve` on cron
// schedules.
package scheduler

import (
	"github.com/charmbracelet/log"
	"github.com/robfig/cron/v3"

	"github.com/julianstephens/ventureboard/internal/logger"
)

// Job represents a scheduled job
type Job interface {
	Run() error
	Name() string
}

type Scheduler struct {
	cron *cron.Cron
	log  *log.Logger
}

// New creates a scheduler. Overlapping runs of the same job are skipped.
func New() *Scheduler {
	l := logger.Named("scheduler")
	return &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(cronLogger{l}),
			cron.SkipIfStillRunning(cronLogger{l}),
		)),
		log: l,
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("Scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("Scheduler stopped")
}

// AddJob registers job on a standard five-field cron spec or a descriptor
// such as "@hourly" or "@every 30m".
func (s *Scheduler) AddJob(schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		s.log.Debug("Running job", "job", job.Name())
		if err := job.Run(); err != nil {
			s.log.Error("Job failed", "job", job.Name(), "error", err)
			return
		}
		s.log.Debug("Job completed", "job", job.Name())
	})
	if err != nil {
		return err
	}
	s.log.Info("Job registered", "job", job.Name(), "schedule", schedule)
	return nil
}

// RunNow executes a job immediately, outside its schedule.
func (s *Scheduler) RunNow(job Job) error {
	s.log.Info("Running job immediately", "job", job.Name())
	return job.Run()
}

// cronLogger adapts the application logger to cron.Logger.
type cronLogger struct {
	l *log.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debug(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Error(msg, append(keysAndValues, "error", err)...)
}
