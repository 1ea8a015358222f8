package quiz

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const defaultListLimit = 10

// Catalog creates quizzes and serves their sanitized view. It is the only
// writer of the QuizStore.
type Catalog struct {
	quizzes QuizStore
	events  EventPublisher
	logger  *slog.Logger

	newID func() string
	now   func() time.Time
}

func NewCatalog(quizzes QuizStore, events EventPublisher, logger *slog.Logger) *Catalog {
	if events == nil {
		events = discardPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{
		quizzes: quizzes,
		events:  events,
		logger:  logger,
		newID:   uuid.NewString,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Create stores a new quiz under a fresh identifier. Questions are stored as
// given; range and uniqueness checks happen before the core is invoked.
func (c *Catalog) Create(ctx context.Context, title string, questions []Question) (Quiz, error) {
	created := Quiz{
		ID:        c.newID(),
		Title:     title,
		Questions: make([]Question, 0, len(questions)),
		CreatedAt: c.now(),
	}
	for _, question := range questions {
		created.Questions = append(created.Questions, question.Clone())
	}

	if err := c.quizzes.PutQuiz(ctx, created); err != nil {
		return Quiz{}, err
	}
	c.logger.Info("quiz created", "quiz_id", created.ID, "questions", len(created.Questions))

	if err := c.events.Publish(ctx, Event{
		Type:       EventQuizCreated,
		QuizID:     created.ID,
		OccurredAt: created.CreatedAt,
	}); err != nil {
		c.logger.Error("publish quiz event failed", "quiz_id", created.ID, "err", err)
	}

	return created, nil
}

func (c *Catalog) FetchSanitized(ctx context.Context, quizID string) (PublicQuiz, error) {
	stored, err := c.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return PublicQuiz{}, err
	}
	return stored.Public(), nil
}

func (c *Catalog) List(ctx context.Context, limit int) ([]QuizSummary, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	return c.quizzes.ListQuizzes(ctx, limit)
}
