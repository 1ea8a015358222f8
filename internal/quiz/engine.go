package quiz

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Engine records answer submissions. Each (user, quiz, question) moves from
// unanswered to answered exactly once; it is the only writer of the
// AnswerStore.
type Engine struct {
	quizzes QuizStore
	answers AnswerStore
	events  EventPublisher
	logger  *slog.Logger
	locks   *keyLock[setKey]

	now func() time.Time
}

func NewEngine(quizzes QuizStore, answers AnswerStore, events EventPublisher, logger *slog.Logger) *Engine {
	if events == nil {
		events = discardPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		quizzes: quizzes,
		answers: answers,
		events:  events,
		logger:  logger,
		locks:   newKeyLock[setKey](),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (e *Engine) Submit(ctx context.Context, userID, quizID, questionID string, selectedOption int) (Verdict, error) {
	stored, err := e.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return Verdict{}, err
	}

	question, ok := stored.findQuestion(questionID)
	if !ok {
		return Verdict{}, ErrQuestionNotFound
	}

	if selectedOption < 1 || selectedOption > len(question.Options) {
		return Verdict{}, ErrInvalidOption
	}

	answer := Answer{
		UserID:         userID,
		QuizID:         quizID,
		QuestionID:     questionID,
		SelectedOption: selectedOption,
		IsCorrect:      selectedOption == question.CorrectOption,
	}

	if err := e.record(ctx, answer); err != nil {
		return Verdict{}, err
	}

	isCorrect := answer.IsCorrect
	if err := e.events.Publish(ctx, Event{
		Type:       EventAnswerRecorded,
		QuizID:     quizID,
		UserID:     userID,
		QuestionID: questionID,
		IsCorrect:  &isCorrect,
		OccurredAt: e.now(),
	}); err != nil {
		e.logger.Error("publish answer event failed", "quiz_id", quizID, "question_id", questionID, "err", err)
	}

	verdict := Verdict{
		QuestionID: questionID,
		IsCorrect:  answer.IsCorrect,
	}
	if !answer.IsCorrect {
		correctOption := question.CorrectOption
		verdict.CorrectOption = &correctOption
	}
	return verdict, nil
}

// record performs the duplicate check and the append under the (user, quiz)
// lock so two submissions for the same question cannot both pass the check.
func (e *Engine) record(ctx context.Context, answer Answer) error {
	unlock := e.locks.Lock(answerSetKey(answer.UserID, answer.QuizID))
	defer unlock()

	existing, err := e.answers.GetAnswerSet(ctx, answer.UserID, answer.QuizID)
	switch {
	case errors.Is(err, ErrNoAnswersFound):
		e.logger.Debug("first answer for user in quiz", "user_id", answer.UserID, "quiz_id", answer.QuizID)
		existing = AnswerSet{UserID: answer.UserID, QuizID: answer.QuizID}
	case err != nil:
		return err
	}

	if existing.Has(answer.QuestionID) {
		return ErrAlreadyAnswered
	}

	answer.SubmittedAt = e.now()
	return e.answers.AppendAnswer(ctx, answer)
}

type setKey struct {
	userID string
	quizID string
}

func answerSetKey(userID, quizID string) setKey {
	return setKey{userID: userID, quizID: quizID}
}
