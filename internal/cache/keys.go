package cache

import "strings"

const keyPrefix = "quizcraft"

// GenerateCacheKey builds a namespaced cache key:
// quizcraft:<service>:<object>:<parts...>
func GenerateCacheKey(service, object string, parts ...string) string {
	elements := append([]string{keyPrefix, service, object}, parts...)
	return strings.Join(elements, ":")
}

// QuizRecordKey is the idempotency lookup key for a generated quiz.
func QuizRecordKey(ownerID, contentID string) string {
	return GenerateCacheKey("quiz", "record", ownerID, contentID)
}

// RefreshTokenKey stores a learner's active refresh token.
func RefreshTokenKey(learnerID string) string {
	return GenerateCacheKey("auth", "refresh_token", learnerID)
}
