package redisstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"quiz-service/internal/quiz"
	"quiz-service/internal/testutil"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()
	addr := testutil.StartRedis(ctx, t)

	store, err := New(ctx, Config{Addr: addr, DialTimeout: 5 * time.Second, Timeout: 5 * time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleQuiz(id string, createdAt time.Time) quiz.Quiz {
	return quiz.Quiz{
		ID:    id,
		Title: "Sample " + id,
		Questions: []quiz.Question{
			{
				PublicQuestion: quiz.PublicQuestion{ID: "q1", Text: "2+2?", Options: []string{"3", "4", "5", "6"}},
				CorrectOption:  2,
			},
			{
				PublicQuestion: quiz.PublicQuestion{ID: "q2", Text: "Sky color?", Options: []string{"Green", "Red", "Blue", "Black"}},
				CorrectOption:  3,
			},
		},
		CreatedAt: createdAt,
	}
}

func TestRedisStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("quizzes", func(t *testing.T) {
		for idx, id := range []string{"a", "b", "c"} {
			require.NoError(t, store.PutQuiz(ctx, sampleQuiz(id, time.Unix(int64(idx+1), 0).UTC())))
		}
		require.Error(t, store.PutQuiz(ctx, sampleQuiz("a", time.Unix(9, 0))))

		got, err := store.GetQuiz(ctx, "b")
		require.NoError(t, err)
		require.Equal(t, "Sample b", got.Title)
		require.Len(t, got.Questions, 2)
		require.Equal(t, 3, got.Questions[1].CorrectOption)

		_, err = store.GetQuiz(ctx, "missing")
		require.ErrorIs(t, err, quiz.ErrQuizNotFound)

		items, err := store.ListQuizzes(ctx, 2)
		require.NoError(t, err)
		require.Len(t, items, 2)
		require.Equal(t, "c", items[0].ID)
		require.Equal(t, "b", items[1].ID)
		require.Equal(t, 2, items[0].QuestionCount)

		// The rejected duplicate must not touch the listing entry of "a".
		items, err = store.ListQuizzes(ctx, 3)
		require.NoError(t, err)
		require.Len(t, items, 3)
		require.Equal(t, "a", items[2].ID)
		score, err := store.client.ZScore(ctx, createdIndexKey, "a").Result()
		require.NoError(t, err)
		require.Equal(t, float64(1000), score)
	})

	t.Run("answers", func(t *testing.T) {
		_, err := store.GetAnswerSet(ctx, "u1", "a")
		require.ErrorIs(t, err, quiz.ErrNoAnswersFound)

		first := quiz.Answer{UserID: "u1", QuizID: "a", QuestionID: "q2", SelectedOption: 1}
		require.NoError(t, store.AppendAnswer(ctx, first))

		duplicate := first
		duplicate.SelectedOption = 3
		require.ErrorIs(t, store.AppendAnswer(ctx, duplicate), quiz.ErrAlreadyAnswered)

		require.NoError(t, store.AppendAnswer(ctx, quiz.Answer{UserID: "u1", QuizID: "a", QuestionID: "q1", SelectedOption: 2, IsCorrect: true}))

		set, err := store.GetAnswerSet(ctx, "u1", "a")
		require.NoError(t, err)
		require.Len(t, set.Answers, 2)
		require.Equal(t, "q2", set.Answers[0].QuestionID)
		require.Equal(t, 1, set.Answers[0].SelectedOption)
		require.True(t, set.Answers[1].IsCorrect)
	})

	t.Run("concurrent duplicates", func(t *testing.T) {
		var (
			wg       sync.WaitGroup
			mu       sync.Mutex
			accepted int
		)
		for idx := 0; idx < 16; idx++ {
			wg.Add(1)
			go func(option int) {
				defer wg.Done()
				err := store.AppendAnswer(ctx, quiz.Answer{UserID: "u9", QuizID: "b", QuestionID: "q1", SelectedOption: option})
				if err == nil {
					mu.Lock()
					accepted++
					mu.Unlock()
				}
			}(idx%4 + 1)
		}
		wg.Wait()

		require.Equal(t, 1, accepted)
		set, err := store.GetAnswerSet(ctx, "u9", "b")
		require.NoError(t, err)
		require.Len(t, set.Answers, 1)
	})
}
