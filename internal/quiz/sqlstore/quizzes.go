package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"quiz-service/internal/quiz"
)

func (s *Store) PutQuiz(ctx context.Context, item quiz.Quiz) error {
	if item.ID == "" {
		return errors.New("quiz id is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Quizzes are immutable once created, so a plain insert is enough; a
	// duplicate id surfaces as a constraint error.
	if _, err := tx.ExecContext(
		ctx,
		s.rebind(`INSERT INTO quizzes (quiz_id, title, question_count, created_at_unix) VALUES (?, ?, ?, ?)`),
		item.ID,
		item.Title,
		len(item.Questions),
		item.CreatedAt.UnixNano(),
	); err != nil {
		return err
	}

	for idx, question := range item.Questions {
		optionsJSON, err := json.Marshal(question.Options)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(
			ctx,
			s.rebind(`INSERT INTO quiz_questions (quiz_id, position, question_id, prompt, options_json, correct_option)
			 VALUES (?, ?, ?, ?, ?, ?)`),
			item.ID,
			idx,
			question.ID,
			question.Text,
			string(optionsJSON),
			question.CorrectOption,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *Store) GetQuiz(ctx context.Context, quizID string) (quiz.Quiz, error) {
	var (
		item          quiz.Quiz
		createdAtUnix int64
	)
	err := s.db.QueryRowContext(
		ctx,
		s.rebind(`SELECT quiz_id, title, created_at_unix FROM quizzes WHERE quiz_id = ?`),
		quizID,
	).Scan(&item.ID, &item.Title, &createdAtUnix)
	if errors.Is(err, sql.ErrNoRows) {
		return quiz.Quiz{}, quiz.ErrQuizNotFound
	}
	if err != nil {
		return quiz.Quiz{}, err
	}
	item.CreatedAt = time.Unix(0, createdAtUnix).UTC()

	rows, err := s.db.QueryContext(
		ctx,
		s.rebind(`SELECT question_id, prompt, options_json, correct_option
		 FROM quiz_questions
		 WHERE quiz_id = ?
		 ORDER BY position ASC`),
		quizID,
	)
	if err != nil {
		return quiz.Quiz{}, err
	}
	defer rows.Close()

	item.Questions = make([]quiz.Question, 0)
	for rows.Next() {
		var (
			question    quiz.Question
			optionsJSON string
		)
		if err := rows.Scan(&question.ID, &question.Text, &optionsJSON, &question.CorrectOption); err != nil {
			return quiz.Quiz{}, err
		}
		if err := json.Unmarshal([]byte(optionsJSON), &question.Options); err != nil {
			return quiz.Quiz{}, err
		}
		item.Questions = append(item.Questions, question)
	}
	if err := rows.Err(); err != nil {
		return quiz.Quiz{}, err
	}

	return item, nil
}

func (s *Store) ListQuizzes(ctx context.Context, limit int) ([]quiz.QuizSummary, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(
		ctx,
		s.rebind(`SELECT quiz_id, title, question_count, created_at_unix
		 FROM quizzes
		 ORDER BY created_at_unix DESC, quiz_id ASC
		 LIMIT ?`),
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]quiz.QuizSummary, 0)
	for rows.Next() {
		var (
			item          quiz.QuizSummary
			createdAtUnix int64
		)
		if err := rows.Scan(&item.ID, &item.Title, &item.QuestionCount, &createdAtUnix); err != nil {
			return nil, err
		}
		item.CreatedAt = time.Unix(0, createdAtUnix).UTC()
		summaries = append(summaries, item)
	}

	return summaries, rows.Err()
}
