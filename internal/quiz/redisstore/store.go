// Package redisstore keeps quizzes and answer sets in Redis.
//
// Layout:
//
//	quiz:<id>                  JSON-encoded quiz.Quiz
//	quizzes:created            sorted set of quiz ids scored by creation time
//	answers:<quiz>:<user>      list of JSON-encoded answers in recording order
//	answers:<quiz>:<user>:idx  hash of answered question ids
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"quiz-service/internal/quiz"
)

const createdIndexKey = "quizzes:created"

// appendScript records an answer only when the question id is new for the
// (quiz, user) pair. Both keys are touched inside one script so the check and
// the append are atomic on the server.
var appendScript = redis.NewScript(`
if redis.call("HSETNX", KEYS[1], ARGV[1], 1) == 0 then
	return 0
end
redis.call("RPUSH", KEYS[2], ARGV[2])
return 1
`)

// putQuizScript stores the quiz payload and its listing entry together, and
// only when the id is new.
var putQuizScript = redis.NewScript(`
if not redis.call("SET", KEYS[1], ARGV[1], "NX") then
	return 0
end
redis.call("ZADD", KEYS[2], ARGV[2], ARGV[3])
return 1
`)

type Config struct {
	Addr        string
	Password    string
	DB          int
	DialTimeout time.Duration
	Timeout     time.Duration
}

type Store struct {
	client *redis.Client
}

func New(ctx context.Context, cfg Config) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", cfg.Addr, err)
	}
	return &Store{client: client}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) String() string {
	return "redis"
}

func quizKey(quizID string) string {
	return "quiz:" + quizID
}

func answersKey(quizID, userID string) string {
	return "answers:" + quizID + ":" + userID
}

func answersIndexKey(quizID, userID string) string {
	return answersKey(quizID, userID) + ":idx"
}

func (s *Store) PutQuiz(ctx context.Context, item quiz.Quiz) error {
	if item.ID == "" {
		return errors.New("quiz id is required")
	}

	payload, err := json.Marshal(item)
	if err != nil {
		return err
	}

	created, err := putQuizScript.Run(
		ctx,
		s.client,
		[]string{quizKey(item.ID), createdIndexKey},
		payload,
		item.CreatedAt.UnixMilli(),
		item.ID,
	).Int()
	if err != nil {
		return err
	}
	if created == 0 {
		return fmt.Errorf("quiz %q already exists", item.ID)
	}
	return nil
}

func (s *Store) GetQuiz(ctx context.Context, quizID string) (quiz.Quiz, error) {
	raw, err := s.client.Get(ctx, quizKey(quizID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return quiz.Quiz{}, quiz.ErrQuizNotFound
	}
	if err != nil {
		return quiz.Quiz{}, err
	}

	var item quiz.Quiz
	if err := json.Unmarshal(raw, &item); err != nil {
		return quiz.Quiz{}, fmt.Errorf("decode quiz %q: %w", quizID, err)
	}
	return item, nil
}

func (s *Store) ListQuizzes(ctx context.Context, limit int) ([]quiz.QuizSummary, error) {
	if limit <= 0 {
		limit = 10
	}

	ids, err := s.client.ZRevRange(ctx, createdIndexKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	summaries := make([]quiz.QuizSummary, 0, len(ids))
	if len(ids) == 0 {
		return summaries, nil
	}

	keys := make([]string, len(ids))
	for idx, id := range ids {
		keys[idx] = quizKey(id)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	for idx, value := range values {
		raw, ok := value.(string)
		if !ok {
			// Index entry without a payload; skip rather than fail the listing.
			continue
		}
		var item quiz.Quiz
		if err := json.Unmarshal([]byte(raw), &item); err != nil {
			return nil, fmt.Errorf("decode quiz %q: %w", ids[idx], err)
		}
		summaries = append(summaries, item.Summary())
	}
	return summaries, nil
}

func (s *Store) AppendAnswer(ctx context.Context, answer quiz.Answer) error {
	if answer.SubmittedAt.IsZero() {
		answer.SubmittedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(answer)
	if err != nil {
		return err
	}

	inserted, err := appendScript.Run(
		ctx,
		s.client,
		[]string{answersIndexKey(answer.QuizID, answer.UserID), answersKey(answer.QuizID, answer.UserID)},
		answer.QuestionID,
		payload,
	).Int()
	if err != nil {
		return err
	}
	if inserted == 0 {
		return quiz.ErrAlreadyAnswered
	}
	return nil
}

func (s *Store) GetAnswerSet(ctx context.Context, userID, quizID string) (quiz.AnswerSet, error) {
	values, err := s.client.LRange(ctx, answersKey(quizID, userID), 0, -1).Result()
	if err != nil {
		return quiz.AnswerSet{}, err
	}
	if len(values) == 0 {
		return quiz.AnswerSet{}, quiz.ErrNoAnswersFound
	}

	set := quiz.AnswerSet{
		UserID:  userID,
		QuizID:  quizID,
		Answers: make([]quiz.Answer, 0, len(values)),
	}
	for _, raw := range values {
		var answer quiz.Answer
		if err := json.Unmarshal([]byte(raw), &answer); err != nil {
			return quiz.AnswerSet{}, fmt.Errorf("decode answer: %w", err)
		}
		set.Answers = append(set.Answers, answer)
	}
	return set, nil
}
