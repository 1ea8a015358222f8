package quiz

import (
	"crypto/sha1"
	"encoding/hex"
	"html"
	"math/rand"
	"strings"

	"quiz-service/internal/opentdb"
)

// DefaultOptionCount is the number of options every question carries in the
// reference configuration.
const DefaultOptionCount = 4

// BuildQuestions turns trivia payloads into quiz questions with shuffled
// options and a 1-based correct option. Items that do not produce exactly
// optionCount options are skipped.
func BuildQuestions(raw []opentdb.RawQuestion, optionCount int) []Question {
	if optionCount <= 0 {
		optionCount = DefaultOptionCount
	}

	questions := make([]Question, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, item := range raw {
		if len(item.IncorrectAnswers)+1 != optionCount {
			continue
		}
		question := buildQuestion(item)
		question.ID = MakeQuestionID(question)
		if _, dup := seen[question.ID]; dup {
			continue
		}
		seen[question.ID] = struct{}{}
		questions = append(questions, question)
	}
	return questions
}

// MakeQuestionID derives a stable identifier from the question text and the
// options in their presented order.
func MakeQuestionID(question Question) string {
	var keyBuilder strings.Builder
	keyBuilder.WriteString(question.Text)
	for _, option := range question.Options {
		keyBuilder.WriteString("|")
		keyBuilder.WriteString(option)
	}

	hash := sha1.Sum([]byte(keyBuilder.String()))
	return "q_" + hex.EncodeToString(hash[:])[:12]
}

func buildQuestion(raw opentdb.RawQuestion) Question {
	type choice struct {
		text      string
		isCorrect bool
	}

	choices := make([]choice, 0, len(raw.IncorrectAnswers)+1)
	for _, incorrect := range raw.IncorrectAnswers {
		choices = append(choices, choice{
			text:      html.UnescapeString(incorrect),
			isCorrect: false,
		})
	}

	choices = append(choices, choice{
		text:      html.UnescapeString(raw.CorrectAnswer),
		isCorrect: true,
	})

	rand.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})

	options := make([]string, len(choices))
	correctOption := 0
	for idx, candidate := range choices {
		options[idx] = candidate.text
		if candidate.isCorrect {
			correctOption = idx + 1
		}
	}

	return Question{
		PublicQuestion: PublicQuestion{
			Text:    html.UnescapeString(raw.Question),
			Options: options,
		},
		CorrectOption: correctOption,
	}
}
