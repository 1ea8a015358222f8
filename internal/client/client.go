package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"quiz-service/internal/quiz"
)

const DefaultBaseURL = "http://127.0.0.1:8080"

var ErrServiceUnavailable = errors.New("quiz service unavailable")

// APIError is a non-2xx response. Message and Details come from the response
// envelope when the server sent one.
type APIError struct {
	StatusCode int
	Message    string
	Details    []string
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	if len(e.Details) == 0 || (len(e.Details) == 1 && e.Details[0] == e.Message) {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Details, "; ")
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Errors  []string        `json:"errors"`
	QuizID  string          `json:"quiz_id"`
	Quiz    json.RawMessage `json:"quiz"`
	Result  json.RawMessage `json:"result"`
	Quizzes json.RawMessage `json:"quizzes"`
}

type CreateQuestion struct {
	ID            string   `json:"id"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correct_option"`
}

type createQuizRequest struct {
	Title     string           `json:"title"`
	Questions []CreateQuestion `json:"questions"`
}

type importQuizRequest struct {
	Title  string `json:"title,omitempty"`
	Amount int    `json:"amount"`
}

type submitAnswerRequest struct {
	UserID         string `json:"user_id"`
	QuizID         string `json:"quiz_id"`
	QuestionID     string `json:"question_id"`
	SelectedOption int    `json:"selected_option"`
}

func New(baseURL string, httpClient *http.Client) *Client {
	baseURL = strings.TrimSpace(baseURL)
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) ListQuizzes(ctx context.Context, limit int) ([]quiz.QuizSummary, error) {
	path := "/api/quiz/"
	if limit > 0 {
		query := url.Values{}
		query.Set("limit", strconv.Itoa(limit))
		path += "?" + query.Encode()
	}

	payload, err := c.doJSON(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var summaries []quiz.QuizSummary
	if err := decodeRaw(payload.Quizzes, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}

func (c *Client) GetQuiz(ctx context.Context, quizID string) (quiz.PublicQuiz, error) {
	if strings.TrimSpace(quizID) == "" {
		return quiz.PublicQuiz{}, errors.New("quiz_id is required")
	}

	payload, err := c.doJSON(ctx, http.MethodGet, "/api/quiz/id/"+url.PathEscape(quizID), nil)
	if err != nil {
		return quiz.PublicQuiz{}, err
	}

	var public quiz.PublicQuiz
	if err := decodeRaw(payload.Quiz, &public); err != nil {
		return quiz.PublicQuiz{}, err
	}
	return public, nil
}

// CreateQuiz returns the identifier of the new quiz.
func (c *Client) CreateQuiz(ctx context.Context, title string, questions []CreateQuestion) (string, error) {
	payload, err := c.doJSON(ctx, http.MethodPost, "/api/quiz/create", createQuizRequest{Title: title, Questions: questions})
	if err != nil {
		return "", err
	}
	return payload.QuizID, nil
}

func (c *Client) ImportQuiz(ctx context.Context, title string, amount int) (string, error) {
	payload, err := c.doJSON(ctx, http.MethodPost, "/api/quiz/import", importQuizRequest{Title: title, Amount: amount})
	if err != nil {
		return "", err
	}
	return payload.QuizID, nil
}

func (c *Client) SubmitAnswer(ctx context.Context, userID, quizID, questionID string, selectedOption int) (quiz.Verdict, error) {
	request := submitAnswerRequest{
		UserID:         userID,
		QuizID:         quizID,
		QuestionID:     questionID,
		SelectedOption: selectedOption,
	}

	payload, err := c.doJSON(ctx, http.MethodPost, "/api/quiz/submit/answer", request)
	if err != nil {
		return quiz.Verdict{}, err
	}

	var verdict quiz.Verdict
	if err := decodeRaw(payload.Result, &verdict); err != nil {
		return quiz.Verdict{}, err
	}
	return verdict, nil
}

func (c *Client) GetResult(ctx context.Context, quizID, userID string) (quiz.Result, error) {
	query := url.Values{}
	query.Set("quiz_id", quizID)
	query.Set("user_id", userID)

	payload, err := c.doJSON(ctx, http.MethodGet, "/api/quiz/result?"+query.Encode(), nil)
	if err != nil {
		return quiz.Result{}, err
	}

	var result quiz.Result
	if err := decodeRaw(payload.Result, &result); err != nil {
		return quiz.Result{}, err
	}
	return result, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, requestBody any) (envelope, error) {
	fullURL := c.baseURL + path

	var body io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return envelope{}, err
		}
		body = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return envelope{}, err
	}
	request.Header.Set("Accept", "application/json")
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return envelope{}, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer response.Body.Close()

	var payload envelope
	decodeErr := json.NewDecoder(response.Body).Decode(&payload)

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		apiErr := APIError{StatusCode: response.StatusCode}
		if decodeErr == nil {
			apiErr.Message = payload.Message
			apiErr.Details = payload.Errors
		}
		if strings.TrimSpace(apiErr.Message) == "" {
			apiErr.Message = response.Status
		}
		return envelope{}, &apiErr
	}
	if decodeErr != nil {
		return envelope{}, fmt.Errorf("decode response: %w", decodeErr)
	}
	return payload, nil
}

func decodeRaw(raw json.RawMessage, target any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return errors.New("response is missing its payload")
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, statusCode int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == statusCode
}
