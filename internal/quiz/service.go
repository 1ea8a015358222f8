package quiz

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"quiz-service/internal/opentdb"
)

type QuestionsFetcher func(ctx context.Context, amount int) ([]opentdb.RawQuestion, error)

type Options struct {
	Events      EventPublisher
	Fetcher     QuestionsFetcher
	OptionCount int
	Logger      *slog.Logger
}

// Service is the entry point used by transports. It wires the catalog, the
// answer engine and the aggregator over the same pair of stores.
type Service struct {
	catalog     *Catalog
	engine      *Engine
	aggregator  *Aggregator
	fetcher     QuestionsFetcher
	optionCount int
	logger      *slog.Logger
}

func NewService(quizzes QuizStore, answers AnswerStore, opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	optionCount := opts.OptionCount
	if optionCount <= 0 {
		optionCount = DefaultOptionCount
	}

	return &Service{
		catalog:     NewCatalog(quizzes, opts.Events, logger.With("component", "catalog")),
		engine:      NewEngine(quizzes, answers, opts.Events, logger.With("component", "engine")),
		aggregator:  NewAggregator(quizzes, answers, logger.With("component", "aggregator")),
		fetcher:     opts.Fetcher,
		optionCount: optionCount,
		logger:      logger,
	}
}

func (s *Service) OptionCount() int {
	return s.optionCount
}

func (s *Service) CreateQuiz(ctx context.Context, title string, questions []Question) (Quiz, error) {
	return s.catalog.Create(ctx, title, questions)
}

func (s *Service) FetchQuiz(ctx context.Context, quizID string) (PublicQuiz, error) {
	return s.catalog.FetchSanitized(ctx, quizID)
}

func (s *Service) ListQuizzes(ctx context.Context, limit int) ([]QuizSummary, error) {
	return s.catalog.List(ctx, limit)
}

func (s *Service) SubmitAnswer(ctx context.Context, userID, quizID, questionID string, selectedOption int) (Verdict, error) {
	return s.engine.Submit(ctx, userID, quizID, questionID, selectedOption)
}

func (s *Service) GetResult(ctx context.Context, quizID, userID string) (Result, error) {
	return s.aggregator.Compute(ctx, quizID, userID)
}

// ImportQuiz creates a quiz from questions pulled through the configured
// fetcher.
func (s *Service) ImportQuiz(ctx context.Context, title string, amount int) (Quiz, error) {
	if s.fetcher == nil {
		return Quiz{}, ErrImporterNotEnabled
	}

	raw, err := s.fetcher(ctx, amount)
	if err != nil {
		return Quiz{}, fmt.Errorf("%w: %w", ErrQuestionSource, err)
	}

	questions := BuildQuestions(raw, s.optionCount)
	if len(questions) == 0 {
		return Quiz{}, fmt.Errorf("%w: no usable questions returned", ErrQuestionSource)
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = fmt.Sprintf("Trivia (%d questions)", len(questions))
	}

	return s.catalog.Create(ctx, title, questions)
}
