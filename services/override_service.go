package services

import (
	"context"
	"errors"
	"sort"
	"time"

	apperrors "fupa/errors"
	"fupa/models"
	"fupa/services/logger"
	"fupa/validator"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const overridesCacheKey = "overrides:all"

// OverrideService stores override rules. The full list is cached in redis
// when a client is configured and dropped on every write.
type OverrideService struct {
	db     *gorm.DB
	redis  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewOverrideService(db *gorm.DB, rdb *redis.Client, log logger.Logger) *OverrideService {
	if log == nil {
		log = logger.Nop{}
	}
	return &OverrideService{db: db, redis: rdb, ttl: 10 * time.Minute, logger: log}
}

func (s *OverrideService) Create(ctx context.Context, rule models.OverrideRule) (*models.OverrideRule, error) {
	if err := validator.ValidateOverride(&rule); err != nil {
		return nil, err
	}
	rule.ID = uuid.NewString()
	if err := s.db.WithContext(ctx).Create(&rule).Error; err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to create override", err)
	}
	s.invalidate(ctx)
	return &rule, nil
}

func (s *OverrideService) List(ctx context.Context) ([]models.OverrideRule, error) {
	var rules []models.OverrideRule
	if s.redis != nil {
		hit, err := GetFromRedis(ctx, s.redis, overridesCacheKey, &rules)
		if err != nil {
			s.logger.Error("overrides cache read: %v", err)
		} else if hit {
			return rules, nil
		}
	}

	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&rules).Error; err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to list overrides", err)
	}
	if s.redis != nil {
		if err := SetToRedis(ctx, s.redis, overridesCacheKey, rules, s.ttl); err != nil {
			s.logger.Error("overrides cache write: %v", err)
		}
	}
	return rules, nil
}

// ForDate returns the override in force on date, or nil.
func (s *OverrideService) ForDate(ctx context.Context, date string) (*models.OverrideRule, error) {
	if err := validator.ValidateDate("date", date); err != nil {
		return nil, err
	}
	rules, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return ResolveOverride(rules, date), nil
}

// ResolveOverride picks, among the rules covering date, the most recently
// created one. Ties go to the larger id so the answer is stable.
func ResolveOverride(rules []models.OverrideRule, date string) *models.OverrideRule {
	var covering []models.OverrideRule
	for _, r := range rules {
		if r.Covers(date) {
			covering = append(covering, r)
		}
	}
	if len(covering) == 0 {
		return nil
	}
	sort.Slice(covering, func(i, j int) bool {
		if !covering[i].CreatedAt.Equal(covering[j].CreatedAt) {
			return covering[i].CreatedAt.After(covering[j].CreatedAt)
		}
		return covering[i].ID > covering[j].ID
	})
	return &covering[0]
}

func (s *OverrideService) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.OverrideRule{})
	if err := rowsOrNotFound(res, "Failed to delete override", "Override not found"); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *OverrideService) invalidate(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := DeleteFromRedis(ctx, s.redis, overridesCacheKey); err != nil && !errors.Is(err, redis.Nil) {
		s.logger.Error("overrides cache invalidate: %v", err)
	}
}
