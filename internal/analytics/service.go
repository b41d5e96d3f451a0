package analytics

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"eggmart/internal/models"
	"eggmart/internal/repositories"
	"eggmart/internal/storage"
)

const metricsCacheKey = "eggmart:metrics:distributors"

// DefaultCacheTTL bounds how stale served metrics can be.
const DefaultCacheTTL = 5 * time.Minute

// DistributorMetrics are derived from the record list; they hold no state of
// their own.
type DistributorMetrics struct {
	Total       int                   `json:"total"`
	DailySales  int                   `json:"dailySales"`
	ByModule    map[models.Module]int `json:"byModule"`
	GeneratedAt time.Time             `json:"generatedAt"`
}

// Service computes distributor metrics and caches them in the KV backend.
type Service struct {
	store    repositories.RecordStore
	cache    storage.KV
	cacheTTL time.Duration
}

func NewService(store repositories.RecordStore, cache storage.KV, cacheTTL time.Duration) *Service {
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}
	return &Service{store: store, cache: cache, cacheTTL: cacheTTL}
}

// Compute derives metrics from a record list: total count, count of
// dailySales accounts, and the per-module breakdown.
func Compute(records []*models.DistributorRecord) *DistributorMetrics {
	metrics := &DistributorMetrics{
		Total:       len(records),
		ByModule:    make(map[models.Module]int),
		GeneratedAt: time.Now().UTC(),
	}
	for _, rec := range records {
		metrics.ByModule[rec.Module]++
	}
	metrics.DailySales = metrics.ByModule[models.ModuleDailySales]
	return metrics
}

// DistributorMetrics serves cached metrics when fresh, recomputing and
// re-caching otherwise. Cache failures degrade to direct computation.
func (s *Service) DistributorMetrics(ctx context.Context) (*DistributorMetrics, error) {
	if data, err := s.cache.Get(ctx, metricsCacheKey); err == nil {
		var cached DistributorMetrics
		unmarshalErr := json.Unmarshal(data, &cached)
		if unmarshalErr == nil {
			return &cached, nil
		}
		log.Printf("WARN: unparsable cached metrics, recomputing: %v", unmarshalErr)
	}
	return s.Refresh(ctx)
}

// Refresh recomputes metrics from the store and re-caches them.
func (s *Service) Refresh(ctx context.Context) (*DistributorMetrics, error) {
	metrics := Compute(s.store.List(ctx))

	data, err := json.Marshal(metrics)
	if err != nil {
		return metrics, nil
	}
	if err := s.cache.Set(ctx, metricsCacheKey, data, s.cacheTTL); err != nil {
		log.Printf("WARN: failed to cache distributor metrics: %v", err)
	}
	return metrics, nil
}

// Invalidate drops the cached metrics so the next read recomputes.
func (s *Service) Invalidate(ctx context.Context) error {
	return s.cache.Delete(ctx, metricsCacheKey)
}
