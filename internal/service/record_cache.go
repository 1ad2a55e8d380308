package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"quizcraft/internal/cache"
	"quizcraft/internal/domain"
	"quizcraft/internal/logger"
)

const defaultRecordCacheTTL = 24 * time.Hour

// RecordCacheService is a read-through cache for generated quiz records,
// keyed by the (owner, content) idempotency pair. It fronts the database
// lookup; the database stays the source of truth. All cache failures are
// logged and swallowed.
type RecordCacheService interface {
	GetQuizRecord(ctx context.Context, ownerID, contentID string) *domain.QuizRecord
	PutQuizRecord(ctx context.Context, record *domain.QuizRecord)
}

type recordCacheServiceImpl struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewRecordCacheService creates a new RecordCacheService. A nil cache
// disables caching; every lookup becomes a miss.
func NewRecordCacheService(c domain.Cache, ttl time.Duration) RecordCacheService {
	if ttl <= 0 {
		ttl = defaultRecordCacheTTL
	}
	return &recordCacheServiceImpl{cache: c, ttl: ttl}
}

func (s *recordCacheServiceImpl) GetQuizRecord(ctx context.Context, ownerID, contentID string) *domain.QuizRecord {
	if s.cache == nil {
		return nil
	}

	key := cache.QuizRecordKey(ownerID, contentID)
	value, err := s.cache.Get(ctx, key)
	if err != nil {
		if err != domain.ErrCacheMiss {
			logger.Get().Warn("Quiz record cache lookup failed",
				zap.String("key", key), zap.Error(err))
		}
		return nil
	}

	var record domain.QuizRecord
	if err := json.Unmarshal([]byte(value), &record); err != nil {
		logger.Get().Warn("Quiz record cache entry is corrupt, ignoring",
			zap.String("key", key), zap.Error(err))
		return nil
	}
	return &record
}

func (s *recordCacheServiceImpl) PutQuizRecord(ctx context.Context, record *domain.QuizRecord) {
	if s.cache == nil || record == nil {
		return
	}

	data, err := json.Marshal(record)
	if err != nil {
		logger.Get().Warn("Failed to marshal quiz record for cache", zap.Error(err))
		return
	}

	key := cache.QuizRecordKey(record.OwnerID, record.ContentID)
	if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
		logger.Get().Warn("Failed to cache quiz record",
			zap.String("key", key), zap.Error(err))
	}
}
