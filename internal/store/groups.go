package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/verte-zerg/lexdrill/internal/model"
)

// CreateGroup adds a group with a unique, non-blank name.
func (s *Store) CreateGroup(ctx context.Context, name string) (model.Group, error) {
	name, err := cleanName(name)
	if err != nil {
		return model.Group{}, err
	}
	res, err := s.db.ExecContext(ctx, `INSERT INTO groups (name) VALUES (?)`, name)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Group{}, fmt.Errorf("group %q: %w", name, ErrExists)
		}
		return model.Group{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Group{}, err
	}
	return model.Group{ID: id, Name: name}, nil
}

// ListGroups returns all groups ordered by name.
func (s *Store) ListGroups(ctx context.Context) ([]model.Group, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM groups ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	var groups []model.Group
	for rows.Next() {
		var g model.Group
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return groups, nil
}

// GetGroup looks a group up by name.
func (s *Store) GetGroup(ctx context.Context, name string) (model.Group, error) {
	var g model.Group
	err := s.db.QueryRowContext(ctx, `SELECT id, name FROM groups WHERE name = ?`, name).Scan(&g.ID, &g.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Group{}, notFound("group", name)
	}
	if err != nil {
		return model.Group{}, err
	}
	return g, nil
}

// RenameGroup renames a group. Renaming to an existing name fails.
func (s *Store) RenameGroup(ctx context.Context, oldName, newName string) error {
	newName, err := cleanName(newName)
	if err != nil {
		return err
	}
	if oldName == newName {
		return fmt.Errorf("group %q: %w", newName, ErrExists)
	}
	res, err := s.db.ExecContext(ctx, `UPDATE groups SET name = ? WHERE name = ?`, newName, oldName)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("group %q: %w", newName, ErrExists)
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound("group", oldName)
	}
	return nil
}

// DeleteGroup removes a group with all of its dictionaries and words.
func (s *Store) DeleteGroup(ctx context.Context, name string) error {
	g, err := s.GetGroup(ctx, name)
	if err != nil {
		return err
	}
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM words WHERE dictionary_id IN (SELECT id FROM dictionaries WHERE group_id = ?)`, g.ID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM dictionaries WHERE group_id = ?`, g.ID); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM groups WHERE id = ?`, g.ID)
		return err
	})
}
