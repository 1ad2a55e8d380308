package domain

import "context"

// QuizRecordRepository persists generated quizzes. Create must enforce the
// (OwnerID, ContentID) uniqueness and return ErrDuplicateQuizRecord when a
// concurrent insert won the race.
type QuizRecordRepository interface {
	GetByID(ctx context.Context, id string) (*QuizRecord, error)
	GetByOwnerAndContent(ctx context.Context, ownerID, contentID string) (*QuizRecord, error)
	Create(ctx context.Context, record *QuizRecord) error
}

// ChallengeRepository reads challenges and transitions their status.
type ChallengeRepository interface {
	GetByID(ctx context.Context, id string) (*Challenge, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// ScoreRecordRepository persists scoring results.
type ScoreRecordRepository interface {
	Create(ctx context.Context, record *ScoreRecord) error
	GetByID(ctx context.Context, id string) (*ScoreRecord, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*ScoreRecord, error)
}

// ProgressRepository upserts per-content progress rows.
type ProgressRepository interface {
	Upsert(ctx context.Context, record *ProgressRecord) error
}

// ContentRepository reads learning content documents.
type ContentRepository interface {
	GetByID(ctx context.Context, id string) (*LearningContent, error)
}

// LearnerRepository persists authenticated users.
type LearnerRepository interface {
	GetByID(ctx context.Context, id string) (*Learner, error)
	GetByGoogleID(ctx context.Context, googleID string) (*Learner, error)
	Create(ctx context.Context, learner *Learner) error
	Update(ctx context.Context, learner *Learner) error
}

// TextExtractor turns a structured content document into plain text.
type TextExtractor interface {
	Extract(body string) (string, error)
}
