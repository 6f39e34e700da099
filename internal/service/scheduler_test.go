package service

import (
	"context"
	"sort"
	"testing"

	"sentinel/internal/model"
	"sentinel/internal/storage"

	"github.com/redis/go-redis/v9"
)

func TestNewScheduler(t *testing.T) {
	s := storage.NewStorage("localhost", "6379")
	sched := NewScheduler(s, &fakeEngine{}, "@every 1h")
	if sched == nil || sched.Watch == nil {
		t.Fatal("Failed to create scheduler")
	}
}

func TestScheduler_StartStop(t *testing.T) {
	sched := NewScheduler(nil, &fakeEngine{}, "@every 1h")
	if err := sched.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if len(sched.Cron.Entries()) != 1 {
		t.Errorf("Expected 1 cron entry, got %d", len(sched.Cron.Entries()))
	}
	sched.Stop()
}

func TestScheduler_InvalidSchedule(t *testing.T) {
	sched := NewScheduler(nil, &fakeEngine{}, "whenever")
	if err := sched.Start(); err == nil {
		t.Error("Expected error for invalid schedule")
	}
}

func TestScheduler_RunWatchJob(t *testing.T) {
	s := setupMiniredis(t)
	engine := &fakeEngine{statuses: map[string]model.Status{}}
	sched := NewScheduler(s, engine, "@every 1h")
	ctx := context.Background()

	// Empty watch list
	sched.RunWatchJob()
	if len(engine.calls) != 0 {
		t.Errorf("Expected no scans, got %v", engine.calls)
	}

	_ = s.AddWatchedDomain(ctx, "shop.ng")
	_ = s.AddWatchedDomain(ctx, "example.com")
	sched.RunWatchJob()

	calls := append([]string(nil), engine.calls...)
	sort.Strings(calls)
	if len(calls) != 2 || calls[0] != "example.com" || calls[1] != "shop.ng" {
		t.Errorf("Unexpected scans %v", calls)
	}

	history, _ := s.GetScanHistory(ctx, "example.com")
	if len(history) != 1 {
		t.Errorf("Expected history for example.com, got %d", len(history))
	}
}

func TestScheduler_RunWatchJob_StorageError(t *testing.T) {
	badStorage := &storage.Storage{Client: redis.NewClient(&redis.Options{Addr: "localhost:1"})}
	engine := &fakeEngine{statuses: map[string]model.Status{}}
	sched := NewScheduler(badStorage, engine, "@every 1h")
	sched.RunWatchJob()
	if len(engine.calls) != 0 {
		t.Error("Expected no scans when the watch list cannot be read")
	}
}
