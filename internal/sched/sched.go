// Package sched runs recurring background jobs on cron schedules.
package sched

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Job is a named unit of scheduled work.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// Scheduler wraps a cron runner with logged, panic-recovered jobs.
type Scheduler struct {
	cron *cron.Cron
}

// New returns a stopped Scheduler.
func New() *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger))),
	}
}

// Add schedules job on the given cron expression.
func (s *Scheduler) Add(spec string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		log := zap.L().With(zap.String("job", job.Name()))
		log.Info("job started")
		if err := job.Run(context.Background()); err != nil {
			log.Error("job failed", zap.Error(err))
			return
		}
		log.Info("job finished")
	})
	if err != nil {
		return eris.Wrapf(err, "sched: add job %s", job.Name())
	}
	return nil
}

// Start begins running scheduled jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
