package quiz

import (
	"context"
	"errors"
	"log/slog"
)

// Aggregator scores a user's recorded answers against the quiz definition.
type Aggregator struct {
	quizzes QuizStore
	answers AnswerStore
	logger  *slog.Logger
}

func NewAggregator(quizzes QuizStore, answers AnswerStore, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{
		quizzes: quizzes,
		answers: answers,
		logger:  logger,
	}
}

// Compute returns the score and a per-answer summary in recording order.
// Correct options are read from the quiz, not from the recorded answers.
func (a *Aggregator) Compute(ctx context.Context, quizID, userID string) (Result, error) {
	set, err := a.answers.GetAnswerSet(ctx, userID, quizID)
	if err != nil {
		return Result{}, err
	}

	stored, err := a.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		if errors.Is(err, ErrQuizNotFound) {
			a.logger.Error("answers recorded for missing quiz", "quiz_id", quizID, "user_id", userID)
			return Result{}, inconsistentState("answers recorded for missing quiz %q", quizID)
		}
		return Result{}, err
	}

	result := Result{
		UserID:  userID,
		QuizID:  quizID,
		Summary: make([]SummaryEntry, 0, len(set.Answers)),
	}
	for _, answer := range set.Answers {
		question, ok := stored.findQuestion(answer.QuestionID)
		if !ok {
			a.logger.Error("answer references unknown question", "quiz_id", quizID, "question_id", answer.QuestionID)
			return Result{}, inconsistentState("question %q not found in quiz %q", answer.QuestionID, quizID)
		}
		if answer.IsCorrect {
			result.Score++
		}
		result.Summary = append(result.Summary, SummaryEntry{
			QuestionID:    answer.QuestionID,
			IsCorrect:     answer.IsCorrect,
			CorrectOption: question.CorrectOption,
		})
	}

	return result, nil
}
