// Package scheduler runs the bot's periodic jobs on a cron backend.
package scheduler

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/robfig/cron/v3"

	"oengusbot/internal/logx"
)

type job struct {
	name  string
	every time.Duration
	run   func(ctx context.Context) error
}

// Service wraps robfig/cron with panic recovery and per-run logging.
// Jobs are registered before Start; each also fires once immediately at
// startup so a fresh deploy announces without waiting a full interval.
// A failed run is logged and never stops the schedule.
type Service struct {
	log  logx.Logger
	c    *cron.Cron
	jobs []job

	runCtx context.Context
}

func New(log logx.Logger) *Service {
	return &Service{log: log, c: cron.New()}
}

// AddEvery registers a job at a fixed interval. Must be called before Start.
func (s *Service) AddEvery(name string, every time.Duration, run func(ctx context.Context) error) error {
	if every <= 0 {
		return fmt.Errorf("scheduler: job %q: interval must be > 0", name)
	}
	j := job{name: name, every: every, run: run}
	s.jobs = append(s.jobs, j)
	_, err := s.c.AddFunc("@every "+every.String(), func() { s.runJob(j) })
	return err
}

func (s *Service) Start(ctx context.Context) {
	s.runCtx = ctx
	// Kickoff pass before the interval schedule takes over.
	go func() {
		for _, j := range s.jobs {
			s.runJob(j)
		}
	}()
	s.c.Start()
}

// Stop halts the schedule and waits for any in-flight cron-triggered run.
func (s *Service) Stop() {
	<-s.c.Stop().Done()
}

func (s *Service) runJob(j job) {
	ctx := s.runCtx
	if ctx == nil {
		ctx = context.Background()
	}
	if ctx.Err() != nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			s.log.Error("panic in job",
				logx.String("job", j.name),
				logx.Any("panic", r),
				logx.String("stack", string(debug.Stack())))
		}
	}()

	start := time.Now()
	if err := j.run(ctx); err != nil {
		s.log.Error("job failed", logx.String("job", j.name), logx.Err(err), logx.Duration("took", time.Since(start)))
		return
	}
	s.log.Debug("job done", logx.String("job", j.name), logx.Duration("took", time.Since(start)))
}
