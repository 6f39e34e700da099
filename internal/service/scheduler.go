package service

import (
	"context"
	"sync"

	"sentinel/internal/storage"
	"sentinel/internal/utils"

	"github.com/robfig/cron/v3"
)

type Scheduler struct {
	Cron     *cron.Cron
	Storage  *storage.Storage
	Watch    *WatchService
	Schedule string
}

func NewScheduler(s *storage.Storage, engine Evaluator, schedule string) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(),
		Storage:  s,
		Watch:    NewWatchService(s, engine),
		Schedule: schedule,
	}
}

// Start registers the watch job and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.Cron.AddFunc(s.Schedule, s.RunWatchJob); err != nil {
		return err
	}
	s.Cron.Start()
	utils.Log.Info("scheduler started", utils.Field("schedule", s.Schedule))
	return nil
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
}

// RunWatchJob re-scans every watched domain. Each scan is independent.
func (s *Scheduler) RunWatchJob() {
	ctx := context.Background()
	items, err := s.Storage.GetWatchedDomains(ctx)
	if err != nil {
		utils.Log.Error("scheduler error getting items", utils.Field("error", err.Error()))
		return
	}

	var wg sync.WaitGroup
	for _, item := range items {
		wg.Add(1)
		go func(d string) {
			defer wg.Done()
			s.Watch.RunCheck(ctx, d)
		}(item)
	}
	wg.Wait()
}
