package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/alexhcferreira/toolcare-backend/internal/apierror"
	"github.com/alexhcferreira/toolcare-backend/internal/dto"
	"github.com/alexhcferreira/toolcare-backend/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	dashboardKeyPrefix = "dashboard:"
	dashboardTTL       = 60 * time.Second
)

type DashboardService interface {
	Obter(ctx context.Context, filial string) (*dto.DashboardResponse, error)
	// Invalidate drops every cached dashboard snapshot. Called after any
	// successful write to the API.
	Invalidate(ctx context.Context)
}

type dashboardService struct {
	repo repository.DashboardRepository
	rdb  *redis.Client
}

// NewDashboardService builds the dashboard service. rdb may be nil, which
// disables caching (unit tests, or redis down at startup).
func NewDashboardService(repo repository.DashboardRepository, rdb *redis.Client) DashboardService {
	return &dashboardService{repo: repo, rdb: rdb}
}

func (s *dashboardService) Obter(ctx context.Context, filial string) (*dto.DashboardResponse, error) {
	key := dashboardKeyPrefix + "global"
	if filial != "" {
		key = dashboardKeyPrefix + filial
	}

	if s.rdb != nil {
		raw, err := s.rdb.Get(ctx, key).Bytes()
		if err == nil {
			var cached dto.DashboardResponse
			if json.Unmarshal(raw, &cached) == nil {
				return &cached, nil
			}
		} else if err != redis.Nil {
			log.Warn().Err(err).Str("key", key).Msg("dashboard cache read failed")
		}
	}

	out, err := s.repo.Aggregate(ctx, filial)
	if err != nil {
		return nil, apierror.From(err)
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(out); err == nil {
			if err := s.rdb.Set(ctx, key, raw, dashboardTTL).Err(); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("dashboard cache write failed")
			}
		}
	}
	return out, nil
}

func (s *dashboardService) Invalidate(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	iter := s.rdb.Scan(ctx, 0, dashboardKeyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Warn().Err(err).Msg("dashboard cache scan failed")
		return
	}
	if len(keys) > 0 {
		if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
			log.Warn().Err(err).Msg("dashboard cache invalidation failed")
		}
	}
}
