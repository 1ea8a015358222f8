package httpapi

import (
	"quiz-service/internal/quiz"
)

type createQuizRequest struct {
	Title     string            `json:"title" validate:"required"`
	Questions []questionRequest `json:"questions" validate:"required,min=1,unique=ID,dive"`
}

type questionRequest struct {
	ID            string   `json:"id" validate:"required"`
	Text          string   `json:"text" validate:"required"`
	Options       []string `json:"options" validate:"required,dive,required"`
	CorrectOption *int     `json:"correct_option" validate:"required"`
}

type submitAnswerRequest struct {
	UserID         string `json:"user_id" validate:"required"`
	QuizID         string `json:"quiz_id" validate:"required"`
	QuestionID     string `json:"question_id" validate:"required"`
	SelectedOption *int   `json:"selected_option" validate:"required,min=1"`
}

type resultQuery struct {
	QuizID string `json:"quiz_id" validate:"required"`
	UserID string `json:"user_id" validate:"required"`
}

type importQuizRequest struct {
	Title  string `json:"title" validate:"omitempty,max=200"`
	Amount int    `json:"amount" validate:"required,min=1,max=50"`
}

// envelope is the common response shape: success flag and message, plus one
// payload field depending on the endpoint.
type envelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`

	QuizID string           `json:"quiz_id,omitempty"`
	Quiz   *quiz.PublicQuiz `json:"quiz,omitempty"`
	Result any              `json:"result,omitempty"`
}

type quizListResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Quizzes []quiz.QuizSummary `json:"quizzes"`
}

type healthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store,omitempty"`
}

func (r createQuizRequest) toQuestions() []quiz.Question {
	questions := make([]quiz.Question, 0, len(r.Questions))
	for _, item := range r.Questions {
		questions = append(questions, quiz.Question{
			PublicQuestion: quiz.PublicQuestion{
				ID:      item.ID,
				Text:    item.Text,
				Options: item.Options,
			},
			CorrectOption: *item.CorrectOption,
		})
	}
	return questions
}
