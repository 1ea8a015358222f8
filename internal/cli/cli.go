package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"quiz-service/internal/client"
	"quiz-service/internal/quiz"
)

const (
	defaultListLimit         = 10
	defaultImportAmount      = 10
	defaultHTTPTimeout       = 5 * time.Second
	defaultMaxInvalidAnswers = 3
)

type Config struct {
	ServerURL         string
	UserID            string
	ListLimit         int
	MaxInvalidAnswers int
	HTTPTimeout       time.Duration
}

type session struct {
	client            *client.Client
	reader            *bufio.Reader
	out               io.Writer
	userID            string
	listLimit         int
	maxInvalidAnswers int
}

func Run(ctx context.Context, in io.Reader, out io.Writer, cfg Config) error {
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	s := &session{
		client:            client.New(cfg.ServerURL, &http.Client{Timeout: timeout}),
		reader:            bufio.NewReader(in),
		out:               out,
		userID:            strings.TrimSpace(cfg.UserID),
		listLimit:         cfg.ListLimit,
		maxInvalidAnswers: cfg.MaxInvalidAnswers,
	}
	if s.listLimit <= 0 {
		s.listLimit = defaultListLimit
	}
	if s.maxInvalidAnswers <= 0 {
		s.maxInvalidAnswers = defaultMaxInvalidAnswers
	}

	fmt.Fprintf(out, "quiz-cli\nserver=%s\n", s.client.BaseURL())
	if s.userID != "" {
		fmt.Fprintf(out, "user=%s\n", s.userID)
	}
	fmt.Fprintln(out)
	printHelp(out)

	for {
		fmt.Fprint(out, "\n> ")
		line, err := s.reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(out)
				return nil
			}
			return err
		}

		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}

		var cmdErr error
		switch strings.ToLower(args[0]) {
		case "help":
			printHelp(out)
		case "exit", "quit":
			return nil
		case "quizzes":
			limit, parseErr := parsePositive(args, 1, s.listLimit)
			if parseErr != nil {
				fmt.Fprintf(out, "invalid quizzes limit: %v\n", parseErr)
				continue
			}
			cmdErr = s.runList(ctx, limit)
		case "show":
			if len(args) != 2 {
				fmt.Fprintln(out, "usage: show <quiz_id>")
				continue
			}
			cmdErr = s.runShow(ctx, args[1])
		case "play":
			if len(args) != 2 {
				fmt.Fprintln(out, "usage: play <quiz_id>")
				continue
			}
			cmdErr = s.runPlay(ctx, args[1])
		case "result":
			if len(args) < 2 || len(args) > 3 {
				fmt.Fprintln(out, "usage: result <quiz_id> [user_id]")
				continue
			}
			userID := s.userID
			if len(args) == 3 {
				userID = args[2]
			}
			cmdErr = s.runResult(ctx, args[1], userID)
		case "import":
			amount, parseErr := parsePositive(args, 1, defaultImportAmount)
			if parseErr != nil {
				fmt.Fprintf(out, "invalid import amount: %v\n", parseErr)
				continue
			}
			cmdErr = s.runImport(ctx, amount, strings.Join(args[min(2, len(args)):], " "))
		default:
			fmt.Fprintln(out, "unknown command. type 'help' for usage.")
		}
		if cmdErr != nil {
			fmt.Fprintf(out, "error: %v\n", describeClientError(cmdErr, s.client.BaseURL()))
		}
	}
}

func (s *session) runList(ctx context.Context, limit int) error {
	summaries, err := s.client.ListQuizzes(ctx, limit)
	if err != nil {
		return err
	}

	if len(summaries) == 0 {
		fmt.Fprintln(s.out, "No quizzes yet.")
		return nil
	}

	fmt.Fprintln(s.out, "Quizzes:")
	for idx, item := range summaries {
		fmt.Fprintf(s.out, "%d. %s  %s (%d questions, created %s)\n",
			idx+1,
			item.ID,
			item.Title,
			item.QuestionCount,
			item.CreatedAt.Format(time.RFC3339),
		)
	}
	return nil
}

func (s *session) runShow(ctx context.Context, quizID string) error {
	public, err := s.client.GetQuiz(ctx, quizID)
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "%s (%s)\n", public.Title, public.ID)
	for idx, question := range public.Questions {
		printQuestion(s.out, idx+1, question)
	}
	return nil
}

func (s *session) runPlay(ctx context.Context, quizID string) error {
	userID, err := s.ensureUser()
	if err != nil {
		return err
	}

	public, err := s.client.GetQuiz(ctx, quizID)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Playing %q as %s\n", public.Title, userID)

	for idx, question := range public.Questions {
		printQuestion(s.out, idx+1, question)

		selected, ok := s.readAnswer(len(question.Options))
		if !ok {
			fmt.Fprintln(s.out, "Skipping question after multiple invalid responses.")
			continue
		}

		verdict, err := s.client.SubmitAnswer(ctx, userID, public.ID, question.ID, selected)
		if err != nil {
			if client.IsStatus(err, http.StatusBadRequest) {
				fmt.Fprintf(s.out, "Not recorded: %v\n", err)
				continue
			}
			return err
		}

		if verdict.IsCorrect {
			fmt.Fprintln(s.out, "Correct!")
		} else {
			fmt.Fprintf(s.out, "Wrong. Correct answer was %s\n", correctAnswerDisplay(question, verdict.CorrectOption))
		}
	}

	fmt.Fprintln(s.out)
	return s.runResult(ctx, public.ID, userID)
}

func (s *session) runResult(ctx context.Context, quizID, userID string) error {
	if strings.TrimSpace(userID) == "" {
		var err error
		if userID, err = s.ensureUser(); err != nil {
			return err
		}
	}

	result, err := s.client.GetResult(ctx, quizID, userID)
	if err != nil {
		if client.IsStatus(err, http.StatusNotFound) {
			fmt.Fprintf(s.out, "No result for %s in quiz %s: %v\n", userID, quizID, err)
			return nil
		}
		return err
	}

	fmt.Fprintf(s.out, "Score: %d/%d\n", result.Score, len(result.Summary))
	for _, entry := range result.Summary {
		mark := "wrong"
		if entry.IsCorrect {
			mark = "correct"
		}
		fmt.Fprintf(s.out, "  %s: %s (correct option %d)\n", entry.QuestionID, mark, entry.CorrectOption)
	}
	return nil
}

func (s *session) runImport(ctx context.Context, amount int, title string) error {
	quizID, err := s.client.ImportQuiz(ctx, title, amount)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Imported quiz %s\n", quizID)
	return nil
}

// ensureUser asks for a user id once and remembers it for the session.
func (s *session) ensureUser() (string, error) {
	if s.userID != "" {
		return s.userID, nil
	}

	fmt.Fprint(s.out, "User id: ")
	line, err := s.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	userID := strings.TrimSpace(line)
	if userID == "" {
		return "", errors.New("user id is required")
	}
	s.userID = userID
	return userID, nil
}

func (s *session) readAnswer(optionCount int) (int, bool) {
	for attempt := 1; attempt <= s.maxInvalidAnswers; attempt++ {
		selected, ok, eof := promptAnswer(s.reader, s.out, optionCount)
		if ok {
			return selected, true
		}
		if eof {
			return 0, false
		}
		if attempt < s.maxInvalidAnswers {
			fmt.Fprintf(s.out, "Invalid input. Attempts remaining: %d\n", s.maxInvalidAnswers-attempt)
		}
	}
	return 0, false
}

func printQuestion(out io.Writer, number int, question quiz.PublicQuestion) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Q%d: %s\n\n", number, question.Text)
	for idx, option := range question.Options {
		fmt.Fprintf(out, "%d. %s\n", idx+1, option)
	}
	fmt.Fprintln(out)
}
