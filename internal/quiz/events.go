package quiz

import (
	"context"
	"time"
)

const (
	EventQuizCreated    = "quiz.created"
	EventAnswerRecorded = "answer.recorded"
)

// Event is emitted after a state change has been stored. Publishing is best
// effort: a failed publish never undoes or fails the operation.
type Event struct {
	Type       string    `json:"type"`
	QuizID     string    `json:"quiz_id"`
	UserID     string    `json:"user_id,omitempty"`
	QuestionID string    `json:"question_id,omitempty"`
	IsCorrect  *bool     `json:"is_correct,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

type discardPublisher struct{}

func (discardPublisher) Publish(context.Context, Event) error { return nil }
