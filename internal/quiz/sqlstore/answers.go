package sqlstore

import (
	"context"
	"time"

	"quiz-service/internal/quiz"
)

// AppendAnswer inserts the answer unless (quiz_id, user_id, question_id) is
// already present. The primary key plus ON CONFLICT DO NOTHING resolves
// concurrent writers even across processes; an existing row is never
// overwritten. seq numbers the answers of one (quiz, user) pair in recording
// order.
func (s *Store) AppendAnswer(ctx context.Context, answer quiz.Answer) error {
	submittedAt := answer.SubmittedAt
	if submittedAt.IsZero() {
		submittedAt = time.Now().UTC()
	}

	isCorrect := 0
	if answer.IsCorrect {
		isCorrect = 1
	}

	result, err := s.db.ExecContext(
		ctx,
		s.rebind(`INSERT INTO answers (quiz_id, user_id, question_id, selected_option, is_correct, submitted_at_unix, seq)
		 VALUES (?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM answers WHERE quiz_id = ? AND user_id = ?))
		 ON CONFLICT (quiz_id, user_id, question_id) DO NOTHING`),
		answer.QuizID,
		answer.UserID,
		answer.QuestionID,
		answer.SelectedOption,
		isCorrect,
		submittedAt.UnixNano(),
		answer.QuizID,
		answer.UserID,
	)
	if err != nil {
		return err
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if inserted == 0 {
		return quiz.ErrAlreadyAnswered
	}
	return nil
}

func (s *Store) GetAnswerSet(ctx context.Context, userID, quizID string) (quiz.AnswerSet, error) {
	rows, err := s.db.QueryContext(
		ctx,
		s.rebind(`SELECT question_id, selected_option, is_correct, submitted_at_unix
		 FROM answers
		 WHERE quiz_id = ? AND user_id = ?
		 ORDER BY seq ASC, submitted_at_unix ASC, question_id ASC`),
		quizID,
		userID,
	)
	if err != nil {
		return quiz.AnswerSet{}, err
	}
	defer rows.Close()

	set := quiz.AnswerSet{UserID: userID, QuizID: quizID}
	for rows.Next() {
		var (
			answer          quiz.Answer
			isCorrect       int
			submittedAtUnix int64
		)
		if err := rows.Scan(&answer.QuestionID, &answer.SelectedOption, &isCorrect, &submittedAtUnix); err != nil {
			return quiz.AnswerSet{}, err
		}
		answer.UserID = userID
		answer.QuizID = quizID
		answer.IsCorrect = isCorrect == 1
		answer.SubmittedAt = time.Unix(0, submittedAtUnix).UTC()
		set.Answers = append(set.Answers, answer)
	}
	if err := rows.Err(); err != nil {
		return quiz.AnswerSet{}, err
	}

	if len(set.Answers) == 0 {
		return quiz.AnswerSet{}, quiz.ErrNoAnswersFound
	}
	return set, nil
}
