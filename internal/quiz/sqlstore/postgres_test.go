package sqlstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"quiz-service/internal/quiz"
	"quiz-service/internal/testutil"
)

func TestPostgresStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	dsn := testutil.StartPostgres(ctx, t)

	store, err := Open(ctx, DriverPostgres, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	createdAt := time.Unix(1700000000, 0).UTC()
	require.NoError(t, store.PutQuiz(ctx, sampleQuiz("quiz-pg", createdAt)))

	got, err := store.GetQuiz(ctx, "quiz-pg")
	require.NoError(t, err)
	require.Len(t, got.Questions, 2)
	require.Equal(t, 3, got.Questions[1].CorrectOption)
	require.True(t, got.CreatedAt.Equal(createdAt))

	items, err := store.ListQuizzes(ctx, 5)
	require.NoError(t, err)
	require.Len(t, items, 1)

	answer := quiz.Answer{UserID: "u1", QuizID: "quiz-pg", QuestionID: "q1", SelectedOption: 2, IsCorrect: true, SubmittedAt: createdAt}
	require.NoError(t, store.AppendAnswer(ctx, answer))
	require.ErrorIs(t, store.AppendAnswer(ctx, answer), quiz.ErrAlreadyAnswered)

	set, err := store.GetAnswerSet(ctx, "u1", "quiz-pg")
	require.NoError(t, err)
	require.Len(t, set.Answers, 1)
	require.True(t, set.Answers[0].IsCorrect)

	_, err = store.GetAnswerSet(ctx, "u2", "quiz-pg")
	require.ErrorIs(t, err, quiz.ErrNoAnswersFound)

	for _, questionID := range []string{"q2", "q1"} {
		require.NoError(t, store.AppendAnswer(ctx, quiz.Answer{UserID: "u3", QuizID: "quiz-pg", QuestionID: questionID, SelectedOption: 1, SubmittedAt: createdAt}))
	}
	set, err = store.GetAnswerSet(ctx, "u3", "quiz-pg")
	require.NoError(t, err)
	require.Len(t, set.Answers, 2)
	require.Equal(t, "q2", set.Answers[0].QuestionID)
	require.Equal(t, "q1", set.Answers[1].QuestionID)
}
