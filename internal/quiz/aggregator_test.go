package quiz

import (
	"context"
	"errors"
	"testing"
)

func TestAggregatorComputeScoresAndSummarizes(t *testing.T) {
	quizzes := newFakeQuizStore()
	quizzes.quizzes["quiz-1"] = Quiz{ID: "quiz-1", Questions: sampleQuestions()}
	answers := newFakeAnswerStore()
	engine := NewEngine(quizzes, answers, nil, discardLogger())
	aggregator := NewAggregator(quizzes, answers, discardLogger())
	ctx := context.Background()

	// q2 first so the summary order follows recording order, not quiz order.
	if _, err := engine.Submit(ctx, "u1", "quiz-1", "q2", 4); err != nil {
		t.Fatalf("Submit(q2) failed: %v", err)
	}
	if _, err := engine.Submit(ctx, "u1", "quiz-1", "q1", 2); err != nil {
		t.Fatalf("Submit(q1) failed: %v", err)
	}

	result, err := aggregator.Compute(ctx, "quiz-1", "u1")
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if result.Score != 1 {
		t.Fatalf("score = %d, want 1", result.Score)
	}
	want := []SummaryEntry{
		{QuestionID: "q2", IsCorrect: false, CorrectOption: 3},
		{QuestionID: "q1", IsCorrect: true, CorrectOption: 2},
	}
	if len(result.Summary) != len(want) {
		t.Fatalf("summary length = %d, want %d", len(result.Summary), len(want))
	}
	for idx := range want {
		if result.Summary[idx] != want[idx] {
			t.Fatalf("summary[%d] = %+v, want %+v", idx, result.Summary[idx], want[idx])
		}
	}
}

func TestAggregatorComputeReadsCorrectOptionFromQuiz(t *testing.T) {
	quizzes := newFakeQuizStore()
	quizzes.quizzes["quiz-1"] = Quiz{ID: "quiz-1", Questions: sampleQuestions()}
	answers := newFakeAnswerStore()
	answers.sets[answerSetKey("u1", "quiz-1")] = AnswerSet{
		UserID: "u1",
		QuizID: "quiz-1",
		Answers: []Answer{
			{UserID: "u1", QuizID: "quiz-1", QuestionID: "q2", SelectedOption: 3, IsCorrect: true},
		},
	}

	result, err := NewAggregator(quizzes, answers, discardLogger()).Compute(context.Background(), "quiz-1", "u1")
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if result.Summary[0].CorrectOption != 3 {
		t.Fatalf("correct option = %d, want 3", result.Summary[0].CorrectOption)
	}
}

func TestAggregatorComputeWithoutAnswers(t *testing.T) {
	quizzes := newFakeQuizStore()
	quizzes.quizzes["quiz-1"] = Quiz{ID: "quiz-1", Questions: sampleQuestions()}
	aggregator := NewAggregator(quizzes, newFakeAnswerStore(), discardLogger())

	_, err := aggregator.Compute(context.Background(), "quiz-1", "never-answered")
	if !errors.Is(err, ErrNoAnswersFound) {
		t.Fatalf("Compute error = %v, want ErrNoAnswersFound", err)
	}
	if KindOf(err) != KindNoAnswersFound {
		t.Fatalf("KindOf = %v, want %v", KindOf(err), KindNoAnswersFound)
	}

	_, err = aggregator.Compute(context.Background(), "missing-quiz", "never-answered")
	if !errors.Is(err, ErrNoAnswersFound) {
		t.Fatalf("Compute(missing quiz) error = %v, want ErrNoAnswersFound", err)
	}
}

func TestAggregatorComputeInconsistentState(t *testing.T) {
	tests := []struct {
		name   string
		quizID string
		stored bool
	}{
		{name: "question missing from quiz", quizID: "quiz-1", stored: true},
		{name: "quiz missing", quizID: "quiz-gone", stored: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			quizzes := newFakeQuizStore()
			if tc.stored {
				quizzes.quizzes[tc.quizID] = Quiz{ID: tc.quizID, Questions: sampleQuestions()}
			}
			answers := newFakeAnswerStore()
			answers.sets[answerSetKey("u1", tc.quizID)] = AnswerSet{
				UserID:  "u1",
				QuizID:  tc.quizID,
				Answers: []Answer{{UserID: "u1", QuizID: tc.quizID, QuestionID: "ghost", SelectedOption: 1}},
			}

			_, err := NewAggregator(quizzes, answers, discardLogger()).Compute(context.Background(), tc.quizID, "u1")
			if !errors.Is(err, ErrInconsistentState) {
				t.Fatalf("Compute error = %v, want ErrInconsistentState", err)
			}
			if KindOf(err) != KindInconsistentState {
				t.Fatalf("KindOf = %v, want %v", KindOf(err), KindInconsistentState)
			}
		})
	}
}

func TestAggregatorComputePropagatesStoreFailure(t *testing.T) {
	quizzes := newFakeQuizStore()
	quizzes.getErr = errors.New("connection reset")
	answers := newFakeAnswerStore()
	answers.sets[answerSetKey("u1", "quiz-1")] = AnswerSet{UserID: "u1", QuizID: "quiz-1", Answers: []Answer{{QuestionID: "q1"}}}

	_, err := NewAggregator(quizzes, answers, discardLogger()).Compute(context.Background(), "quiz-1", "u1")
	if !errors.Is(err, quizzes.getErr) {
		t.Fatalf("Compute error = %v, want store error", err)
	}
	if KindOf(err) != KindInternal {
		t.Fatalf("KindOf = %v, want internal", KindOf(err))
	}
}
