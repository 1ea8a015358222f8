package httpapi

import (
	"log/slog"

	"github.com/go-playground/validator/v10"

	"quiz-service/internal/quiz"
)

type API struct {
	service  *quiz.Service
	logger   *slog.Logger
	validate *validator.Validate
}

func NewAPI(service *quiz.Service, logger *slog.Logger) *API {
	if logger == nil {
		logger = slog.Default()
	}
	return &API{
		service:  service,
		logger:   logger,
		validate: newValidator(service.OptionCount()),
	}
}
