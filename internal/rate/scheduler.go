package rate

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/sirupsen/logrus"
)

// RefreshRunner is what the scheduler needs from the service.
type RefreshRunner interface {
	RefreshNow(ctx context.Context) (RefreshResult, error)
}

type Scheduler struct {
	runner   RefreshRunner
	interval time.Duration
	// -----
	sched gocron.Scheduler
}

func NewScheduler(runner RefreshRunner, interval time.Duration) *Scheduler {
	return &Scheduler{runner: runner, interval: interval}
}

func (s *Scheduler) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	s.sched = scheduler

	job := func(jobCtx context.Context) {
		if _, refreshErr := s.runner.RefreshNow(jobCtx); refreshErr != nil {
			logrus.Errorf("Scheduled rate refresh failed: %v", refreshErr)
		}
	}

	// Singleton mode: a slow cycle is rescheduled rather than doubled up.
	_, err = scheduler.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(job),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	scheduler.Start()

	// Stop scheduler when the provided context is canceled.
	go func() {
		<-ctx.Done()
		if sdErr := s.Shutdown(); sdErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", sdErr)
		}
	}()
	return nil
}

func (s *Scheduler) Shutdown() error {
	if s.sched == nil {
		return nil
	}
	err := s.sched.Shutdown()
	s.sched = nil
	return err
}
