package service

import (
	"context"
	"encoding/json"

	"sentinel/internal/model"
	"sentinel/internal/scanner"
	"sentinel/internal/storage"
	"sentinel/internal/utils"
)

// Evaluator is the part of the scanner engine the watch service needs.
type Evaluator interface {
	Evaluate(ctx context.Context, raw string, online bool) model.ScanResult
}

// WatchService re-evaluates watched domains and records verdict changes.
type WatchService struct {
	Storage *storage.Storage
	Engine  Evaluator
}

func NewWatchService(s *storage.Storage, engine Evaluator) *WatchService {
	return &WatchService{
		Storage: s,
		Engine:  engine,
	}
}

// RunCheck evaluates item online and appends the verdict to its history.
func (m *WatchService) RunCheck(ctx context.Context, item string) (model.ScanResult, bool) {
	domain := scanner.Normalize(item)
	if !utils.IsValidTarget(domain) {
		utils.Log.Warn("invalid target for scheduled check", utils.Field("item", item))
		return model.ScanResult{}, false
	}
	utils.Log.Info("running scheduled check", utils.Field("domain", domain))

	res := m.Engine.Evaluate(ctx, domain, true)

	if prev, ok := m.latestStatus(ctx, domain); ok && prev != res.Status {
		utils.Log.Warn("verdict changed",
			utils.Field("domain", domain),
			utils.Field("from", prev),
			utils.Field("to", res.Status))
	}

	if err := m.Storage.AddScanHistory(ctx, res); err != nil {
		utils.Log.Error("failed to store scan history",
			utils.Field("domain", domain),
			utils.Field("error", err.Error()))
	}

	utils.Log.Info("finished check", utils.Field("domain", domain), utils.Field("status", res.Status))
	return res, true
}

func (m *WatchService) latestStatus(ctx context.Context, domain string) (model.Status, bool) {
	entries, err := m.Storage.GetScanHistory(ctx, domain)
	if err != nil || len(entries) == 0 {
		return "", false
	}
	var last model.ScanResult
	if err := json.Unmarshal([]byte(entries[0].Result), &last); err != nil {
		return "", false
	}
	return last.Status, true
}
