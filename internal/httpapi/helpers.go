package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"quiz-service/internal/quiz"
)

const maxBodyBytes = 1 << 20

const internalErrorMessage = "internal server error"

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, envelope{Success: false, Message: message})
}

func writeValidationError(w http.ResponseWriter, err error) {
	messages := validationMessages(err)
	writeJSON(w, http.StatusUnprocessableEntity, envelope{
		Success: false,
		Message: messages[0],
		Errors:  messages,
	})
}

// writeServiceError maps core failures onto HTTP statuses. Unexpected
// failures are logged with their detail and reported with a generic message.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, quiz.ErrImporterNotEnabled):
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	case errors.Is(err, quiz.ErrQuestionSource):
		logger.WarnContext(r.Context(), "question import failed", "err", err)
		writeError(w, http.StatusBadGateway, "failed to fetch questions")
		return
	}

	var coreErr *quiz.Error
	message := internalErrorMessage
	if errors.As(err, &coreErr) {
		message = coreErr.Message
	}

	switch quiz.KindOf(err) {
	case quiz.KindNotFound, quiz.KindQuestionNotFound, quiz.KindNoAnswersFound:
		writeError(w, http.StatusNotFound, message)
	case quiz.KindInvalidOption, quiz.KindAlreadyAnswered:
		writeError(w, http.StatusBadRequest, message)
	default:
		logger.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		writeError(w, http.StatusInternalServerError, internalErrorMessage)
	}
}

// decodeJSON reads a single JSON object from the body. It reports false after
// writing the response: 400 when the body is not valid JSON, 422 when a field
// carries a value of the wrong type.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	defer r.Body.Close()

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := decoder.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			message := describeTypeError(typeErr)
			writeJSON(w, http.StatusUnprocessableEntity, envelope{
				Success: false,
				Message: message,
				Errors:  []string{message},
			})
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// describeTypeError names the offending field the way validation messages
// do. Non-integer numbers sent for integer fields land here too.
func describeTypeError(err *json.UnmarshalTypeError) string {
	if err.Field == "" {
		return "request body must be a JSON object"
	}

	var expected string
	switch err.Type.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		expected = "an integer"
	case reflect.Float32, reflect.Float64:
		expected = "a number"
	case reflect.String:
		expected = "a string"
	case reflect.Bool:
		expected = "a boolean"
	case reflect.Slice, reflect.Array:
		expected = "an array"
	case reflect.Struct, reflect.Map:
		expected = "an object"
	default:
		return fmt.Sprintf("%q has an invalid type", err.Field)
	}
	return fmt.Sprintf("%q must be %s", err.Field, expected)
}

func parseIntParam(r *http.Request, key string, defaultValue int) (int, error) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, errors.New(key + " must be a positive integer")
	}
	return parsed, nil
}
