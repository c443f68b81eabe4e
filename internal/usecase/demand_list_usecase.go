package usecase

import (
	"context"
	"errors"
	"strings"

	"tutor-board/internal/domain/demand"
	"tutor-board/internal/repository"

	"go.uber.org/zap"
)

type DemandListUsecase interface {
	ListDemands(ctx context.Context) ([]demand.Demand, error)
	GetDemand(ctx context.Context, id string) (demand.Demand, error)
	InvalidateCache(ctx context.Context) error
}

type DemandList struct {
	demands repository.DemandRepository
	cache   DemandCache
	limit   int
	logger  *zap.Logger
}

// NewDemandListUsecase serves the demand feed. A nil repository means no
// database is configured and every read reports ErrUnavailable.
func NewDemandListUsecase(demands repository.DemandRepository, cache DemandCache, logger *zap.Logger) *DemandList {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DemandList{demands: demands, cache: cache, limit: 500, logger: logger}
}

func (u *DemandList) ListDemands(ctx context.Context) ([]demand.Demand, error) {
	if u == nil || u.demands == nil {
		return nil, ErrUnavailable
	}

	if u.cache != nil {
		var cached []demand.Demand
		hit, err := u.cache.GetJSON(ctx, DemandsCacheKey, &cached)
		if err == nil && hit {
			u.logger.Debug("demand cache hit", zap.String("key", DemandsCacheKey))
			return cached, nil
		}
		u.logger.Debug("demand cache miss", zap.String("key", DemandsCacheKey))
	}

	items, err := u.demands.ListDemands(ctx, u.limit)
	if err != nil {
		u.logger.Error("list demands failed", zap.Error(err))
		return nil, ErrInternal
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, DemandsCacheKey, items, 0); err != nil {
			u.logger.Warn("demand cache write failed", zap.Error(err))
		}
	}
	return items, nil
}

func (u *DemandList) GetDemand(ctx context.Context, id string) (demand.Demand, error) {
	if u == nil || u.demands == nil {
		return demand.Demand{}, ErrUnavailable
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return demand.Demand{}, ErrInvalidInput
	}

	d, err := u.demands.FindByID(ctx, id)
	if errors.Is(err, repository.ErrDemandNotFound) {
		return demand.Demand{}, ErrNotFound
	}
	if err != nil {
		u.logger.Error("find demand failed", zap.String("id", id), zap.Error(err))
		return demand.Demand{}, ErrInternal
	}
	return d, nil
}

func (u *DemandList) InvalidateCache(ctx context.Context) error {
	if u == nil || u.cache == nil {
		return nil
	}
	return u.cache.Delete(ctx, DemandsCacheKey)
}
