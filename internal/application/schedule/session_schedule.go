package schedule

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"weather-widget/pkg/log"
	"weather-widget/pkg/msg"
)

// SessionSweeper closes idle widget sessions and reports how many it closed.
type SessionSweeper interface {
	Sweep() int
}

type SessionScheduler struct {
	cron     *cron.Cron
	sessions SessionSweeper
	spec     string
}

func NewSessionScheduler(sessions SessionSweeper, spec string) *SessionScheduler {
	return &SessionScheduler{cron: cron.New(), sessions: sessions, spec: spec}
}

// InitSessionScheduleTasks registers the idle session sweep and starts the scheduler
func (scheduler *SessionScheduler) InitSessionScheduleTasks() error {
	if _, err := scheduler.cron.AddFunc(scheduler.spec, scheduler.SweepIdleSessions); err != nil {
		return err
	}

	scheduler.cron.Start()
	return nil
}

// Stop stops the scheduler; the returned context is done once a running sweep finishes
func (scheduler *SessionScheduler) Stop() context.Context {
	return scheduler.cron.Stop()
}

func (scheduler *SessionScheduler) SweepIdleSessions() {
	removed := scheduler.sessions.Sweep()
	if removed == 0 {
		return
	}

	log.Info(msg.GetMessage("widget.sweep-end", removed), zap.Int("removed", removed))
}
