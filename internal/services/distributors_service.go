package services

import (
	"context"
	"log"
	"time"

	"eggmart/internal/analytics"
	"eggmart/internal/forms"
	"eggmart/internal/models"
	"eggmart/internal/repositories"
)

// DistributorService sits between the HTTP surface and the record store: it
// runs submissions through the form controller and keeps the cached metrics
// coherent across mutations.
type DistributorService interface {
	Submit(ctx context.Context, in forms.Input) (*models.DistributorRecord, forms.FieldErrors)
	List(ctx context.Context) []*models.DistributorRecord
	Remove(ctx context.Context, id int64) bool
}

type distributorService struct {
	store      repositories.RecordStore
	analytics  *analytics.Service
	resetDelay time.Duration
}

func NewDistributorService(store repositories.RecordStore, analyticsSvc *analytics.Service, resetDelay time.Duration) DistributorService {
	return &distributorService{
		store:      store,
		analytics:  analyticsSvc,
		resetDelay: resetDelay,
	}
}

func (s *distributorService) Submit(ctx context.Context, in forms.Input) (*models.DistributorRecord, forms.FieldErrors) {
	ctrl := forms.NewController(s.store, s.resetDelay)
	ctrl.SetInput(in)

	rec, ferrs := ctrl.Submit(ctx)
	if len(ferrs) > 0 {
		return nil, ferrs
	}

	s.invalidateMetrics(ctx)
	return rec, nil
}

func (s *distributorService) List(ctx context.Context) []*models.DistributorRecord {
	return s.store.List(ctx)
}

func (s *distributorService) Remove(ctx context.Context, id int64) bool {
	removed := s.store.Remove(ctx, id)
	if removed {
		s.invalidateMetrics(ctx)
	}
	return removed
}

func (s *distributorService) invalidateMetrics(ctx context.Context) {
	if s.analytics == nil {
		return
	}
	if err := s.analytics.Invalidate(ctx); err != nil {
		log.Printf("WARN: failed to invalidate distributor metrics cache: %v", err)
	}
}
