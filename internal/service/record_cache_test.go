package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"quizcraft/internal/domain"
)

// fakeCache is an in-memory domain.Cache for service tests.
type fakeCache struct {
	data    map[string]string
	failing bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	if f.failing {
		return "", errors.New("redis down")
	}
	value, ok := f.data[key]
	if !ok {
		return "", domain.ErrCacheMiss
	}
	return value, nil
}

func (f *fakeCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if f.failing {
		return errors.New("redis down")
	}
	f.data[key] = value
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	delete(f.data, key)
	return nil
}

func TestRecordCacheService_RoundTrip(t *testing.T) {
	c := newFakeCache()
	svc := NewRecordCacheService(c, time.Hour)

	record := &domain.QuizRecord{
		ID:        "quiz1",
		OwnerID:   "owner1",
		ContentID: "content1",
		Questions: []domain.QuizQuestion{{Question: "Q", Answer: "A"}},
	}
	svc.PutQuizRecord(context.Background(), record)

	got := svc.GetQuizRecord(context.Background(), "owner1", "content1")
	assert.NotNil(t, got)
	assert.Equal(t, "quiz1", got.ID)
	assert.Equal(t, "Q", got.Questions[0].Question)
}

func TestRecordCacheService_MissReturnsNil(t *testing.T) {
	svc := NewRecordCacheService(newFakeCache(), time.Hour)
	assert.Nil(t, svc.GetQuizRecord(context.Background(), "owner1", "content1"))
}

func TestRecordCacheService_NilCacheIsSafe(t *testing.T) {
	svc := NewRecordCacheService(nil, time.Hour)
	svc.PutQuizRecord(context.Background(), &domain.QuizRecord{ID: "quiz1"})
	assert.Nil(t, svc.GetQuizRecord(context.Background(), "owner1", "content1"))
}

func TestRecordCacheService_FailuresAreSwallowed(t *testing.T) {
	c := newFakeCache()
	c.failing = true
	svc := NewRecordCacheService(c, time.Hour)

	svc.PutQuizRecord(context.Background(), &domain.QuizRecord{ID: "quiz1", OwnerID: "o", ContentID: "c"})
	assert.Nil(t, svc.GetQuizRecord(context.Background(), "o", "c"))
}

func TestRecordCacheService_CorruptEntryIgnored(t *testing.T) {
	c := newFakeCache()
	svc := NewRecordCacheService(c, time.Hour)
	c.data["quizcraft:quiz:record:o:c"] = "{not json"

	assert.Nil(t, svc.GetQuizRecord(context.Background(), "o", "c"))
}
