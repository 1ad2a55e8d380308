package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCacheKey(t *testing.T) {
	key := GenerateCacheKey("quiz", "record", "owner1", "content1")
	assert.Equal(t, "quizcraft:quiz:record:owner1:content1", key)
}

func TestQuizRecordKey(t *testing.T) {
	assert.Equal(t, "quizcraft:quiz:record:o:c", QuizRecordKey("o", "c"))
}

func TestRefreshTokenKey(t *testing.T) {
	assert.Equal(t, "quizcraft:auth:refresh_token:learner1", RefreshTokenKey("learner1"))
}
