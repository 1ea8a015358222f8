package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"quiz-service/internal/client"
	"quiz-service/internal/quiz"
)

// promptAnswer reads one 1-based option. Letters are accepted too, A being 1.
func promptAnswer(reader *bufio.Reader, out io.Writer, optionCount int) (selected int, ok bool, eof bool) {
	if optionCount < 1 {
		return 0, false, false
	}

	fmt.Fprintf(out, "Your answer (1-%d): ", optionCount)

	line, err := reader.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(line) == "") {
		return 0, false, true
	}

	answer := strings.ToUpper(strings.TrimSpace(line))
	if value, convErr := strconv.Atoi(answer); convErr == nil {
		if value < 1 || value > optionCount {
			return 0, false, false
		}
		return value, true, false
	}
	if len(answer) == 1 && answer[0] >= 'A' && int(answer[0]-'A') < optionCount {
		return int(answer[0]-'A') + 1, true, false
	}
	return 0, false, false
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  help")
	fmt.Fprintln(out, "  quizzes [limit]")
	fmt.Fprintln(out, "  show <quiz_id>")
	fmt.Fprintln(out, "  play <quiz_id>")
	fmt.Fprintln(out, "  result <quiz_id> [user_id]")
	fmt.Fprintln(out, "  import [amount] [title]")
	fmt.Fprintln(out, "  exit")
}

func parsePositive(args []string, index int, defaultValue int) (int, error) {
	if len(args) <= index {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(args[index])
	if err != nil || value <= 0 {
		return 0, errors.New("must be a positive integer")
	}
	return value, nil
}

func describeClientError(err error, serverURL string) error {
	if errors.Is(err, client.ErrServiceUnavailable) {
		return fmt.Errorf("quiz service unavailable at %s", serverURL)
	}
	return err
}

func correctAnswerDisplay(question quiz.PublicQuestion, correctOption *int) string {
	if correctOption == nil || *correctOption < 1 || *correctOption > len(question.Options) {
		return "unknown"
	}
	return fmt.Sprintf("%d. %s", *correctOption, question.Options[*correctOption-1])
}
