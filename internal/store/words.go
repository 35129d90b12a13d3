package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/verte-zerg/lexdrill/internal/model"
)

func cleanPair(native, foreign string) (string, string, error) {
	native = strings.TrimSpace(native)
	foreign = strings.TrimSpace(foreign)
	if native == "" || foreign == "" {
		return "", "", ErrEmptyWord
	}
	return native, foreign, nil
}

// AddWord appends a word pair to a dictionary.
func (s *Store) AddWord(ctx context.Context, dictionaryID int64, native, foreign string) (model.WordPair, error) {
	words, err := s.ImportWords(ctx, dictionaryID, []model.WordPair{{Native: native, Foreign: foreign}})
	if err != nil {
		return model.WordPair{}, err
	}
	return words[0], nil
}

// ImportWords appends word pairs to a dictionary in one transaction and
// returns them with their ids.
func (s *Store) ImportWords(ctx context.Context, dictionaryID int64, pairs []model.WordPair) ([]model.WordPair, error) {
	cleaned := make([]model.WordPair, 0, len(pairs))
	for _, p := range pairs {
		native, foreign, err := cleanPair(p.Native, p.Foreign)
		if err != nil {
			return nil, err
		}
		cleaned = append(cleaned, model.WordPair{Native: native, Foreign: foreign, Learned: p.Learned})
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var exists int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM dictionaries WHERE id = ?`, dictionaryID).Scan(&exists); err != nil {
			return err
		}
		if exists == 0 {
			return fmt.Errorf("dictionary %d: %w", dictionaryID, ErrNotFound)
		}
		var next int
		if err := tx.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(position), -1) + 1 FROM words WHERE dictionary_id = ?`, dictionaryID).Scan(&next); err != nil {
			return err
		}
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO words (dictionary_id, position, native_word, foreign_word, learned) VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for i := range cleaned {
			res, err := stmt.ExecContext(ctx, dictionaryID, next+i, cleaned[i].Native, cleaned[i].Foreign, cleaned[i].Learned)
			if err != nil {
				return err
			}
			if cleaned[i].ID, err = res.LastInsertId(); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cleaned, nil
}

// LoadWords returns the words of a dictionary in insertion order.
func (s *Store) LoadWords(ctx context.Context, dictionaryID int64) ([]model.WordPair, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, native_word, foreign_word, learned FROM words
		 WHERE dictionary_id = ?
		 ORDER BY position, id`, dictionaryID)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	var words []model.WordPair
	for rows.Next() {
		var w model.WordPair
		if err := rows.Scan(&w.ID, &w.Native, &w.Foreign, &w.Learned); err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// UpdateWord rewrites both sides of a word pair.
func (s *Store) UpdateWord(ctx context.Context, id int64, native, foreign string) error {
	native, foreign, err := cleanPair(native, foreign)
	if err != nil {
		return err
	}
	return s.execOne(ctx, id, `UPDATE words SET native_word = ?, foreign_word = ? WHERE id = ?`, native, foreign, id)
}

// SetLearned persists the learned flag of a word.
func (s *Store) SetLearned(ctx context.Context, id int64, learned bool) error {
	return s.execOne(ctx, id, `UPDATE words SET learned = ? WHERE id = ?`, learned, id)
}

// DeleteWord removes a word pair.
func (s *Store) DeleteWord(ctx context.Context, id int64) error {
	return s.execOne(ctx, id, `DELETE FROM words WHERE id = ?`, id)
}

func (s *Store) execOne(ctx context.Context, id int64, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("word %d: %w", id, ErrNotFound)
	}
	return nil
}
