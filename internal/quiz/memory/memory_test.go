package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"quiz-service/internal/quiz"
)

func sampleQuiz(id string, createdAt time.Time) quiz.Quiz {
	return quiz.Quiz{
		ID:    id,
		Title: "Sample " + id,
		Questions: []quiz.Question{
			{
				PublicQuestion: quiz.PublicQuestion{
					ID:      "q1",
					Text:    "2+2?",
					Options: []string{"3", "4", "5", "6"},
				},
				CorrectOption: 2,
			},
		},
		CreatedAt: createdAt,
	}
}

func TestQuizStoreReturnsCopies(t *testing.T) {
	store := NewQuizStore()
	ctx := context.Background()

	input := sampleQuiz("quiz-1", time.Unix(1, 0).UTC())
	if err := store.PutQuiz(ctx, input); err != nil {
		t.Fatalf("PutQuiz failed: %v", err)
	}
	input.Questions[0].Options[0] = "mutated by caller"

	got, err := store.GetQuiz(ctx, "quiz-1")
	if err != nil {
		t.Fatalf("GetQuiz failed: %v", err)
	}
	if got.Questions[0].Options[0] != "3" {
		t.Fatalf("store shares memory with caller input: %q", got.Questions[0].Options[0])
	}

	got.Questions[0].CorrectOption = 4
	again, err := store.GetQuiz(ctx, "quiz-1")
	if err != nil {
		t.Fatalf("second GetQuiz failed: %v", err)
	}
	if again.Questions[0].CorrectOption != 2 {
		t.Fatalf("store shares memory with returned value: correct option %d", again.Questions[0].CorrectOption)
	}
}

func TestQuizStoreMissingQuiz(t *testing.T) {
	store := NewQuizStore()
	if _, err := store.GetQuiz(context.Background(), "missing"); !errors.Is(err, quiz.ErrQuizNotFound) {
		t.Fatalf("GetQuiz(missing) error = %v, want ErrQuizNotFound", err)
	}
}

func TestQuizStoreListNewestFirstWithLimit(t *testing.T) {
	store := NewQuizStore()
	ctx := context.Background()
	for idx, id := range []string{"a", "b", "c"} {
		if err := store.PutQuiz(ctx, sampleQuiz(id, time.Unix(int64(idx+1), 0).UTC())); err != nil {
			t.Fatalf("PutQuiz(%s) failed: %v", id, err)
		}
	}

	items, err := store.ListQuizzes(ctx, 2)
	if err != nil {
		t.Fatalf("ListQuizzes failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != "c" || items[1].ID != "b" {
		t.Fatalf("unexpected order: %+v", items)
	}
	if items[0].QuestionCount != 1 {
		t.Fatalf("question count = %d, want 1", items[0].QuestionCount)
	}
}

func TestAnswerStoreAppendAndDuplicate(t *testing.T) {
	store := NewAnswerStore()
	ctx := context.Background()

	if _, err := store.GetAnswerSet(ctx, "u1", "quiz-1"); !errors.Is(err, quiz.ErrNoAnswersFound) {
		t.Fatalf("GetAnswerSet before answers error = %v, want ErrNoAnswersFound", err)
	}

	first := quiz.Answer{UserID: "u1", QuizID: "quiz-1", QuestionID: "q1", SelectedOption: 2, IsCorrect: true}
	if err := store.AppendAnswer(ctx, first); err != nil {
		t.Fatalf("AppendAnswer failed: %v", err)
	}

	duplicate := first
	duplicate.SelectedOption = 3
	if err := store.AppendAnswer(ctx, duplicate); !errors.Is(err, quiz.ErrAlreadyAnswered) {
		t.Fatalf("duplicate AppendAnswer error = %v, want ErrAlreadyAnswered", err)
	}

	second := quiz.Answer{UserID: "u1", QuizID: "quiz-1", QuestionID: "q2", SelectedOption: 1}
	if err := store.AppendAnswer(ctx, second); err != nil {
		t.Fatalf("AppendAnswer(q2) failed: %v", err)
	}

	set, err := store.GetAnswerSet(ctx, "u1", "quiz-1")
	if err != nil {
		t.Fatalf("GetAnswerSet failed: %v", err)
	}
	if len(set.Answers) != 2 {
		t.Fatalf("expected 2 answers, got %d", len(set.Answers))
	}
	if set.Answers[0].QuestionID != "q1" || set.Answers[0].SelectedOption != 2 {
		t.Fatalf("first answer overwritten or reordered: %+v", set.Answers[0])
	}
	if set.Answers[1].QuestionID != "q2" {
		t.Fatalf("unexpected second answer: %+v", set.Answers[1])
	}

	if _, err := store.GetAnswerSet(ctx, "u2", "quiz-1"); !errors.Is(err, quiz.ErrNoAnswersFound) {
		t.Fatalf("answer sets leak across users: %v", err)
	}
}
