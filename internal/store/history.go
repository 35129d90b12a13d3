package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/lexdrill/internal/model"
)

// InsertSession stores a drill session and its result log. A record without
// an id gets a new UUID, which is returned.
func (s *Store) InsertSession(ctx context.Context, rec model.SessionRecord, results []model.TrainingResult) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO sessions (id, dictionary_id, group_name, dictionary_name, direction, mode, style, started_at, ended_at, correct, total, complete)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.ID,
			rec.Dictionary.ID,
			rec.Dictionary.Group,
			rec.Dictionary.Name,
			string(rec.Config.Direction),
			string(rec.Config.Mode),
			string(rec.Config.Style),
			rec.StartedAt.Format(time.RFC3339Nano),
			rec.EndedAt.Format(time.RFC3339Nano),
			rec.Correct,
			rec.Total,
			rec.Complete,
		); err != nil {
			return err
		}
		if len(results) == 0 {
			return nil
		}
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO session_results (session_id, seq, question, user_answer, correct_answer, is_correct)
			 VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for i, r := range results {
			if _, err := stmt.ExecContext(ctx, rec.ID, i, r.Question, r.UserAnswer, r.CorrectAnswer, r.Correct); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

// ListSessions returns session aggregates filtered by stats config, oldest
// first.
func (s *Store) ListSessions(ctx context.Context, cfg model.StatsConfig) ([]model.SessionAggregate, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Group != "" {
		clauses = append(clauses, "s.group_name = ?")
		args = append(args, cfg.Group)
	}
	if cfg.Dictionary != "" {
		clauses = append(clauses, "s.dictionary_name = ?")
		args = append(args, cfg.Dictionary)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "s.ended_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT s.id, s.dictionary_name, s.mode, s.started_at, s.ended_at, s.correct, s.total,
			COALESCE(SUM(CASE WHEN r.is_correct = 0 THEN 1 ELSE 0 END), 0) AS incorrect
		FROM sessions s
		LEFT JOIN session_results r ON r.session_id = s.id
		WHERE %s
		GROUP BY s.id
		ORDER BY s.ended_at ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	var sessions []model.SessionAggregate
	for rows.Next() {
		var agg model.SessionAggregate
		var mode, startedAt, endedAt string
		if err := rows.Scan(&agg.SessionID, &agg.Dictionary, &mode, &startedAt, &endedAt, &agg.Correct, &agg.Total, &agg.Incorrect); err != nil {
			return nil, err
		}
		started, err := time.Parse(time.RFC3339Nano, startedAt)
		if err != nil {
			return nil, err
		}
		ended, err := time.Parse(time.RFC3339Nano, endedAt)
		if err != nil {
			return nil, err
		}
		agg.Mode = model.Mode(mode)
		agg.EndedAt = ended
		agg.DurationMs = ended.Sub(started).Milliseconds()
		sessions = append(sessions, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// ListResults returns the result log of one session in question order.
func (s *Store) ListResults(ctx context.Context, sessionID string) ([]model.TrainingResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT question, user_answer, correct_answer, is_correct
		 FROM session_results
		 WHERE session_id = ?
		 ORDER BY seq`, sessionID)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	var results []model.TrainingResult
	for rows.Next() {
		var r model.TrainingResult
		if err := rows.Scan(&r.Question, &r.UserAnswer, &r.CorrectAnswer, &r.Correct); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// ListWordAggregates aggregates first-attempt outcomes per expected answer
// across sessions.
func (s *Store) ListWordAggregates(ctx context.Context, sessionIDs []string) ([]model.WordAggregate, error) {
	if len(sessionIDs) == 0 {
		return nil, nil
	}
	args := make([]any, len(sessionIDs))
	for i, id := range sessionIDs {
		args[i] = id
	}
	query := fmt.Sprintf(`SELECT correct_answer,
			SUM(CASE WHEN is_correct = 1 THEN 1 ELSE 0 END) AS correct,
			SUM(CASE WHEN is_correct = 0 THEN 1 ELSE 0 END) AS incorrect
		FROM session_results
		WHERE session_id IN (%s)
		GROUP BY correct_answer`, placeholders(len(sessionIDs)))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	var result []model.WordAggregate
	for rows.Next() {
		var agg model.WordAggregate
		if err := rows.Scan(&agg.Word, &agg.Correct, &agg.Incorrect); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
