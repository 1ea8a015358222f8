package httpapi

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

const defaultListLimit = 10

func (a *API) HandleCreateQuiz(w http.ResponseWriter, r *http.Request) {
	var request createQuizRequest
	if !decodeJSON(w, r, &request) {
		return
	}
	if err := a.validate.Struct(request); err != nil {
		writeValidationError(w, err)
		return
	}

	created, err := a.service.CreateQuiz(r.Context(), request.Title, request.toQuestions())
	if err != nil {
		writeServiceError(w, r, a.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, envelope{
		Success: true,
		Message: "Quiz created successfully",
		QuizID:  created.ID,
	})
}

func (a *API) HandleGetQuiz(w http.ResponseWriter, r *http.Request) {
	quizID := strings.TrimSpace(chi.URLParam(r, "id"))

	public, err := a.service.FetchQuiz(r.Context(), quizID)
	if err != nil {
		writeServiceError(w, r, a.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "Quiz fetched successfully",
		Quiz:    &public,
	})
}

func (a *API) HandleListQuizzes(w http.ResponseWriter, r *http.Request) {
	limit, err := parseIntParam(r, "limit", defaultListLimit)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, envelope{Success: false, Message: err.Error(), Errors: []string{err.Error()}})
		return
	}

	summaries, err := a.service.ListQuizzes(r.Context(), limit)
	if err != nil {
		writeServiceError(w, r, a.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, quizListResponse{
		Success: true,
		Message: "Quizzes fetched successfully",
		Quizzes: summaries,
	})
}

func (a *API) HandleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var request submitAnswerRequest
	if !decodeJSON(w, r, &request) {
		return
	}
	if err := a.validate.Struct(request); err != nil {
		writeValidationError(w, err)
		return
	}

	verdict, err := a.service.SubmitAnswer(r.Context(), request.UserID, request.QuizID, request.QuestionID, *request.SelectedOption)
	if err != nil {
		writeServiceError(w, r, a.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "Answer submitted successfully",
		Result:  verdict,
	})
}

func (a *API) HandleGetResult(w http.ResponseWriter, r *http.Request) {
	query := resultQuery{
		QuizID: strings.TrimSpace(r.URL.Query().Get("quiz_id")),
		UserID: strings.TrimSpace(r.URL.Query().Get("user_id")),
	}
	if err := a.validate.Struct(query); err != nil {
		writeValidationError(w, err)
		return
	}

	result, err := a.service.GetResult(r.Context(), query.QuizID, query.UserID)
	if err != nil {
		writeServiceError(w, r, a.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "Result fetched successfully",
		Result:  result,
	})
}

func (a *API) HandleImportQuiz(w http.ResponseWriter, r *http.Request) {
	var request importQuizRequest
	if !decodeJSON(w, r, &request) {
		return
	}
	if err := a.validate.Struct(request); err != nil {
		writeValidationError(w, err)
		return
	}

	created, err := a.service.ImportQuiz(r.Context(), request.Title, request.Amount)
	if err != nil {
		writeServiceError(w, r, a.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, envelope{
		Success: true,
		Message: "Quiz imported successfully",
		QuizID:  created.ID,
	})
}
