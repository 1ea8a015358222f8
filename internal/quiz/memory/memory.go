// Package memory keeps quizzes and answers in process memory. It is the
// default backend and loses all state on restart.
package memory

import (
	"context"
	"sort"
	"sync"

	"quiz-service/internal/quiz"
)

type QuizStore struct {
	mu      sync.RWMutex
	quizzes map[string]quiz.Quiz
}

func NewQuizStore() *QuizStore {
	return &QuizStore{quizzes: make(map[string]quiz.Quiz)}
}

func (s *QuizStore) PutQuiz(_ context.Context, item quiz.Quiz) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quizzes[item.ID] = item.Clone()
	return nil
}

func (s *QuizStore) GetQuiz(_ context.Context, quizID string) (quiz.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.quizzes[quizID]
	if !ok {
		return quiz.Quiz{}, quiz.ErrQuizNotFound
	}
	return item.Clone(), nil
}

// ListQuizzes returns the newest quizzes first.
func (s *QuizStore) ListQuizzes(_ context.Context, limit int) ([]quiz.QuizSummary, error) {
	s.mu.RLock()
	out := make([]quiz.QuizSummary, 0, len(s.quizzes))
	for _, item := range s.quizzes {
		out = append(out, item.Summary())
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

type answerKey struct {
	userID string
	quizID string
}

type AnswerStore struct {
	mu   sync.RWMutex
	sets map[answerKey]*quiz.AnswerSet
}

func NewAnswerStore() *AnswerStore {
	return &AnswerStore{sets: make(map[answerKey]*quiz.AnswerSet)}
}

func (s *AnswerStore) GetAnswerSet(_ context.Context, userID, quizID string) (quiz.AnswerSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set, ok := s.sets[answerKey{userID: userID, quizID: quizID}]
	if !ok {
		return quiz.AnswerSet{}, quiz.ErrNoAnswersFound
	}
	return set.Clone(), nil
}

func (s *AnswerStore) AppendAnswer(_ context.Context, answer quiz.Answer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := answerKey{userID: answer.UserID, quizID: answer.QuizID}
	set, ok := s.sets[key]
	if !ok {
		set = &quiz.AnswerSet{UserID: answer.UserID, QuizID: answer.QuizID}
		s.sets[key] = set
	}
	if set.Has(answer.QuestionID) {
		return quiz.ErrAlreadyAnswered
	}
	set.Answers = append(set.Answers, answer)
	return nil
}
