package quiz

import (
	"context"
	"time"
)

type PublicQuestion struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// Question is the authoring view of a question. CorrectOption is a 1-based
// index into Options.
type Question struct {
	PublicQuestion
	CorrectOption int `json:"correct_option"`
}

type Quiz struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
	CreatedAt time.Time  `json:"created_at"`
}

// PublicQuiz is the only quiz representation handed to quiz takers.
type PublicQuiz struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Questions []PublicQuestion `json:"questions"`
}

type QuizSummary struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	QuestionCount int       `json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
}

type Answer struct {
	UserID         string    `json:"user_id"`
	QuizID         string    `json:"quiz_id"`
	QuestionID     string    `json:"question_id"`
	SelectedOption int       `json:"selected_option"`
	IsCorrect      bool      `json:"is_correct"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

// AnswerSet is one user's recorded answers for one quiz, in recording order.
type AnswerSet struct {
	UserID  string   `json:"user_id"`
	QuizID  string   `json:"quiz_id"`
	Answers []Answer `json:"answers"`
}

func (s AnswerSet) Has(questionID string) bool {
	for _, answer := range s.Answers {
		if answer.QuestionID == questionID {
			return true
		}
	}
	return false
}

// Verdict is returned for a single submission. CorrectOption is only set when
// the submitted option was wrong.
type Verdict struct {
	QuestionID    string `json:"question_id"`
	IsCorrect     bool   `json:"is_correct"`
	CorrectOption *int   `json:"correct_option,omitempty"`
}

type SummaryEntry struct {
	QuestionID    string `json:"question_id"`
	IsCorrect     bool   `json:"is_correct"`
	CorrectOption int    `json:"correct_option"`
}

type Result struct {
	UserID  string         `json:"user_id"`
	QuizID  string         `json:"quiz_id"`
	Score   int            `json:"score"`
	Summary []SummaryEntry `json:"summary"`
}

// QuizStore owns quizzes for the lifetime of the process. Implementations
// must return copies that callers may modify freely.
type QuizStore interface {
	PutQuiz(ctx context.Context, quiz Quiz) error
	GetQuiz(ctx context.Context, quizID string) (Quiz, error)
	ListQuizzes(ctx context.Context, limit int) ([]QuizSummary, error)
}

// AnswerStore owns answer sets keyed by (user, quiz).
//
// AppendAnswer must reject a second answer for the same
// (user, quiz, question) with ErrAlreadyAnswered, atomically with respect to
// other appends. GetAnswerSet returns ErrNoAnswersFound when the user has not
// answered anything in the quiz.
type AnswerStore interface {
	GetAnswerSet(ctx context.Context, userID, quizID string) (AnswerSet, error)
	AppendAnswer(ctx context.Context, answer Answer) error
}

func (q Quiz) Summary() QuizSummary {
	return QuizSummary{
		ID:            q.ID,
		Title:         q.Title,
		QuestionCount: len(q.Questions),
		CreatedAt:     q.CreatedAt,
	}
}

// Clone returns a deep copy of the quiz.
func (q Quiz) Clone() Quiz {
	out := q
	out.Questions = make([]Question, len(q.Questions))
	for idx, question := range q.Questions {
		out.Questions[idx] = question.Clone()
	}
	return out
}

func (q Question) Clone() Question {
	out := q
	out.Options = append([]string(nil), q.Options...)
	return out
}

// Public strips every correct option from the quiz. The returned value shares
// no memory with q.
func (q Quiz) Public() PublicQuiz {
	public := PublicQuiz{
		ID:        q.ID,
		Title:     q.Title,
		Questions: make([]PublicQuestion, 0, len(q.Questions)),
	}
	for _, question := range q.Questions {
		public.Questions = append(public.Questions, PublicQuestion{
			ID:      question.ID,
			Text:    question.Text,
			Options: append([]string(nil), question.Options...),
		})
	}
	return public
}

func (q Quiz) findQuestion(questionID string) (Question, bool) {
	for _, question := range q.Questions {
		if question.ID == questionID {
			return question, true
		}
	}
	return Question{}, false
}

func (s AnswerSet) Clone() AnswerSet {
	out := s
	out.Answers = append([]Answer(nil), s.Answers...)
	return out
}
