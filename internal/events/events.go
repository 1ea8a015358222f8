// Package events delivers quiz domain events to logs and to a RabbitMQ topic
// exchange.
package events

import (
	"context"
	"errors"
	"log/slog"

	"quiz-service/internal/quiz"
)

// LogPublisher writes every event as a structured log line.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, event quiz.Event) error {
	attrs := []any{
		"type", event.Type,
		"quiz_id", event.QuizID,
	}
	if event.UserID != "" {
		attrs = append(attrs, "user_id", event.UserID)
	}
	if event.QuestionID != "" {
		attrs = append(attrs, "question_id", event.QuestionID)
	}
	if event.IsCorrect != nil {
		attrs = append(attrs, "is_correct", *event.IsCorrect)
	}
	p.logger.InfoContext(ctx, "event", attrs...)
	return nil
}

// Fanout publishes to every publisher and joins their errors.
type Fanout []quiz.EventPublisher

func (f Fanout) Publish(ctx context.Context, event quiz.Event) error {
	var errs []error
	for _, publisher := range f {
		if publisher == nil {
			continue
		}
		if err := publisher.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
