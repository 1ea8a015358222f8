package sqlstore

import (
	"context"
)

func (s *Store) initSchema(ctx context.Context) error {
	// Column types are the common subset of sqlite and postgres so one set of
	// statements serves both drivers.
	statements := []string{
		`CREATE TABLE IF NOT EXISTS quizzes (
			quiz_id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			question_count INTEGER NOT NULL,
			created_at_unix BIGINT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS quiz_questions (
			quiz_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			question_id TEXT NOT NULL,
			prompt TEXT NOT NULL,
			options_json TEXT NOT NULL,
			correct_option INTEGER NOT NULL,
			PRIMARY KEY (quiz_id, position),
			UNIQUE (quiz_id, question_id)
		);`,
		`CREATE TABLE IF NOT EXISTS answers (
			quiz_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			question_id TEXT NOT NULL,
			selected_option INTEGER NOT NULL,
			is_correct INTEGER NOT NULL,
			submitted_at_unix BIGINT NOT NULL,
			seq BIGINT NOT NULL DEFAULT 0,
			PRIMARY KEY (quiz_id, user_id, question_id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_quizzes_created_at ON quizzes(created_at_unix DESC);`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	// Databases created before answers carried a sequence number.
	if err := s.ensureAnswerSeq(ctx); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_answers_quiz_user_seq ON answers(quiz_id, user_id, seq);`)
	return err
}

func (s *Store) ensureAnswerSeq(ctx context.Context) error {
	if s.driver == DriverPostgres {
		_, err := s.db.ExecContext(ctx, `ALTER TABLE answers ADD COLUMN IF NOT EXISTS seq BIGINT NOT NULL DEFAULT 0;`)
		return err
	}

	var present int
	if err := s.db.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM pragma_table_info('answers') WHERE name = 'seq'`,
	).Scan(&present); err != nil {
		return err
	}
	if present > 0 {
		return nil
	}
	_, err := s.db.ExecContext(ctx, `ALTER TABLE answers ADD COLUMN seq BIGINT NOT NULL DEFAULT 0;`)
	return err
}
