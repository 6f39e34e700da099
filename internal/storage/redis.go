package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"sentinel/internal/model"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
	"github.com/redis/go-redis/v9"
)

const (
	watchKey         = "watched_domains"
	historyKeyPrefix = "scan_history:"
	historyLimit     = 100
)

type Storage struct {
	Client *redis.Client
}

func NewStorage(host, port string) *Storage {
	rdb := redis.NewClient(&redis.Options{
		Addr: host + ":" + port,
		DB:   0,
	})
	return &Storage{Client: rdb}
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx).Err()
}

func (s *Storage) GetWatchedDomains(ctx context.Context) ([]string, error) {
	return s.Client.LRange(ctx, watchKey, 0, -1).Result()
}

// AddWatchedDomain appends domain unless it is already watched.
func (s *Storage) AddWatchedDomain(ctx context.Context, domain string) error {
	items, err := s.GetWatchedDomains(ctx)
	if err != nil {
		return err
	}
	for _, d := range items {
		if d == domain {
			return nil
		}
	}
	return s.Client.RPush(ctx, watchKey, domain).Err()
}

func (s *Storage) RemoveWatchedDomain(ctx context.Context, domain string) error {
	return s.Client.LRem(ctx, watchKey, 0, domain).Err()
}

// GetScanHistory returns stored verdicts for domain, newest first.
func (s *Storage) GetScanHistory(ctx context.Context, domain string) ([]model.HistoryEntry, error) {
	val, err := s.Client.LRange(ctx, historyKeyPrefix+domain, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	var entries []model.HistoryEntry
	for _, v := range val {
		var entry model.HistoryEntry
		if err := json.Unmarshal([]byte(v), &entry); err == nil {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// AddScanHistory records result unless it matches the latest stored verdict.
// The list is capped at historyLimit entries.
func (s *Storage) AddScanHistory(ctx context.Context, result model.ScanResult) error {
	resBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode scan result: %w", err)
	}
	resStr := string(resBytes)
	key := historyKeyPrefix + result.Domain

	lastEntryJSON, err := s.Client.LIndex(ctx, key, 0).Result()
	switch {
	case err == nil:
		var lastEntry model.HistoryEntry
		if json.Unmarshal([]byte(lastEntryJSON), &lastEntry) == nil && lastEntry.Result == resStr {
			return nil
		}
	case err != redis.Nil:
		return err
	}

	entry := model.HistoryEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Result:    resStr,
	}
	entryBytes, _ := json.Marshal(entry)

	pipe := s.Client.Pipeline()
	pipe.LPush(ctx, key, string(entryBytes))
	pipe.LTrim(ctx, key, 0, historyLimit-1)
	_, err = pipe.Exec(ctx)
	return err
}

// GetHistoryWithDiffs returns the history plus one unified diff per adjacent
// pair: diffs[i] goes from entries[i+1] (older) to entries[i] (newer).
func (s *Storage) GetHistoryWithDiffs(ctx context.Context, domain string) ([]model.HistoryEntry, []string, error) {
	entries, err := s.GetScanHistory(ctx, domain)
	if err != nil {
		return nil, nil, err
	}

	diffs := make([]string, 0, len(entries))
	for i := 0; i+1 < len(entries); i++ {
		older, newer := entries[i+1], entries[i]
		edits := myers.ComputeEdits(span.URIFromPath(domain), older.Result+"\n", newer.Result+"\n")
		diffs = append(diffs, fmt.Sprint(gotextdiff.ToUnified(older.Timestamp, newer.Timestamp, older.Result+"\n", edits)))
	}
	return entries, diffs, nil
}
