package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/verte-zerg/lexdrill/internal/model"
)

// CreateDictionary adds a dictionary to a group. Names are unique per group.
func (s *Store) CreateDictionary(ctx context.Context, group, name string) (model.Dictionary, error) {
	name, err := cleanName(name)
	if err != nil {
		return model.Dictionary{}, err
	}
	g, err := s.GetGroup(ctx, group)
	if err != nil {
		return model.Dictionary{}, err
	}
	res, err := s.db.ExecContext(ctx, `INSERT INTO dictionaries (group_id, name) VALUES (?, ?)`, g.ID, name)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Dictionary{}, fmt.Errorf("dictionary %q in group %q: %w", name, group, ErrExists)
		}
		return model.Dictionary{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Dictionary{}, err
	}
	return model.Dictionary{ID: id, GroupID: g.ID, Group: g.Name, Name: name}, nil
}

// ListDictionaries returns the dictionaries of a group ordered by name.
func (s *Store) ListDictionaries(ctx context.Context, group string) ([]model.Dictionary, error) {
	g, err := s.GetGroup(ctx, group)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name FROM dictionaries WHERE group_id = ? ORDER BY name`, g.ID)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	var dicts []model.Dictionary
	for rows.Next() {
		d := model.Dictionary{GroupID: g.ID, Group: g.Name}
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, err
		}
		dicts = append(dicts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return dicts, nil
}

// GetDictionary looks a dictionary up by group and name.
func (s *Store) GetDictionary(ctx context.Context, group, name string) (model.Dictionary, error) {
	var d model.Dictionary
	err := s.db.QueryRowContext(ctx,
		`SELECT d.id, d.group_id, g.name, d.name
		 FROM dictionaries d
		 JOIN groups g ON g.id = d.group_id
		 WHERE g.name = ? AND d.name = ?`, group, name).Scan(&d.ID, &d.GroupID, &d.Group, &d.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Dictionary{}, notFound("dictionary", group+"/"+name)
	}
	if err != nil {
		return model.Dictionary{}, err
	}
	return d, nil
}

// RenameDictionary renames a dictionary within its group.
func (s *Store) RenameDictionary(ctx context.Context, group, oldName, newName string) error {
	newName, err := cleanName(newName)
	if err != nil {
		return err
	}
	d, err := s.GetDictionary(ctx, group, oldName)
	if err != nil {
		return err
	}
	if d.Name == newName {
		return fmt.Errorf("dictionary %q in group %q: %w", newName, group, ErrExists)
	}
	if _, err := s.db.ExecContext(ctx, `UPDATE dictionaries SET name = ? WHERE id = ?`, newName, d.ID); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("dictionary %q in group %q: %w", newName, group, ErrExists)
		}
		return err
	}
	return nil
}

// DeleteDictionary removes a dictionary and its words. Drill history is kept.
func (s *Store) DeleteDictionary(ctx context.Context, group, name string) error {
	d, err := s.GetDictionary(ctx, group, name)
	if err != nil {
		return err
	}
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM words WHERE dictionary_id = ?`, d.ID); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM dictionaries WHERE id = ?`, d.ID)
		return err
	})
}
