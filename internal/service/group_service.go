package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kpiexport/gateway/internal/models"
	appErrors "github.com/kpiexport/gateway/pkg/errors"
)

const groupsCacheKey = "kpiexport:groups"

type groupSource interface {
	Groups(ctx context.Context) ([]string, error)
	GroupSchedule(ctx context.Context, groupName, lastName string) (*models.GroupSchedule, error)
}

// GroupService serves the group list and group schedules, caching the
// group list because it changes once a semester at most.
type GroupService struct {
	source  groupSource
	cache   *redis.Client
	ttl     time.Duration
	metrics *MetricsService
	logger  *zap.Logger
}

// NewGroupService constructs the service. A nil cache disables caching.
func NewGroupService(source groupSource, cache *redis.Client, ttl time.Duration, metrics *MetricsService, logger *zap.Logger) *GroupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &GroupService{source: source, cache: cache, ttl: ttl, metrics: metrics, logger: logger}
}

// List returns group names, optionally narrowed to those completing the
// query (transliteration-aware, so "ip-82" finds "ІП-82").
func (s *GroupService) List(ctx context.Context, query string) ([]string, error) {
	s.metrics.IncGroupsRequests()

	groups, err := s.cachedGroups(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrScheduleFetchFailed.Code, appErrors.ErrScheduleFetchFailed.Status, "failed to fetch the group list")
	}

	if query == "" {
		return groups, nil
	}

	filtered := make([]string, 0, len(groups))
	for _, group := range groups {
		if matchesGroup(group, query) {
			filtered = append(filtered, group)
		}
	}
	return filtered, nil
}

// Schedule returns one group's schedule from the backend.
func (s *GroupService) Schedule(ctx context.Context, groupName, lastName string) (*models.GroupSchedule, error) {
	s.metrics.IncScheduleRequests()

	schedule, err := s.source.GroupSchedule(ctx, groupName, lastName)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrScheduleFetchFailed.Code, appErrors.ErrScheduleFetchFailed.Status, appErrors.ErrScheduleFetchFailed.Message)
	}
	return schedule, nil
}

func (s *GroupService) cachedGroups(ctx context.Context) ([]string, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, groupsCacheKey).Bytes()
		if err == nil {
			var groups []string
			if err := json.Unmarshal(raw, &groups); err == nil {
				return groups, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("group cache read failed", zap.Error(err))
		}
	}

	groups, err := s.source.Groups(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(groups); err == nil {
			if err := s.cache.Set(ctx, groupsCacheKey, raw, s.ttl).Err(); err != nil {
				s.logger.Warn("group cache write failed", zap.Error(err))
			}
		}
	}
	return groups, nil
}
