// internal/store/mutations.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"studyabroad-workers/internal/models"
)

// SaveProfile creates or replaces the profile for userID. A new user starts
// in the BuildingProfile stage.
func (s *Store) SaveProfile(ctx context.Context, userID string, profile models.UserProfile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO profiles (user_id, profile) VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET profile = EXCLUDED.profile, updated_at = now()`,
		userID, raw)
	if err != nil {
		return fmt.Errorf("%w: save profile: %v", ErrQueryFailed, err)
	}
	s.invalidate(ctx, userID)
	return nil
}

// Shortlist adds universityID to the user's shortlist. It reports false when
// the university was already there. Shortlisting moves a user who is still
// building a profile or discovering universities to the finalizing stage.
func (s *Store) Shortlist(ctx context.Context, userID, universityID string) (bool, error) {
	var added bool
	err := s.tx(ctx, func(tx *sql.Tx) error {
		if err := requireProfile(ctx, tx, userID); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `
			INSERT INTO shortlists (user_id, university_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING`, userID, universityID)
		if err != nil {
			return fmt.Errorf("%w: shortlist: %v", ErrQueryFailed, err)
		}
		n, _ := res.RowsAffected()
		added = n > 0
		return advanceStage(ctx, tx, userID, models.StageFinalizingUniversities)
	})
	if err != nil {
		return false, err
	}
	s.invalidate(ctx, userID)
	return added, nil
}

// Unshortlist removes universityID from the shortlist. Locked universities
// cannot be removed.
func (s *Store) Unshortlist(ctx context.Context, userID, universityID string) error {
	err := s.tx(ctx, func(tx *sql.Tx) error {
		locked, err := exists(ctx, tx,
			`SELECT EXISTS (SELECT 1 FROM locked_universities WHERE user_id = $1 AND university_id = $2)`,
			userID, universityID)
		if err != nil {
			return err
		}
		if locked {
			return fmt.Errorf("%w: %s", ErrAlreadyLocked, universityID)
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM shortlists WHERE user_id = $1 AND university_id = $2`, userID, universityID); err != nil {
			return fmt.Errorf("%w: unshortlist: %v", ErrQueryFailed, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

// Lock commits the user to a shortlisted university and moves them to the
// preparing-applications stage. It reports false when the university was
// already locked.
func (s *Store) Lock(ctx context.Context, userID, universityID string) (bool, error) {
	var added bool
	err := s.tx(ctx, func(tx *sql.Tx) error {
		shortlisted, err := exists(ctx, tx,
			`SELECT EXISTS (SELECT 1 FROM shortlists WHERE user_id = $1 AND university_id = $2)`,
			userID, universityID)
		if err != nil {
			return err
		}
		if !shortlisted {
			return fmt.Errorf("%w: %s", ErrNotShortlisted, universityID)
		}
		res, err := tx.ExecContext(ctx, `
			INSERT INTO locked_universities (user_id, university_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING`, userID, universityID)
		if err != nil {
			return fmt.Errorf("%w: lock: %v", ErrQueryFailed, err)
		}
		n, _ := res.RowsAffected()
		added = n > 0
		return advanceStage(ctx, tx, userID, models.StagePreparingApplications)
	})
	if err != nil {
		return false, err
	}
	s.invalidate(ctx, userID)
	return added, nil
}

// AddTodos appends tasks to the user's to-do list, assigning ids to items
// that have none.
func (s *Store) AddTodos(ctx context.Context, userID string, items []models.ToDoItem) ([]models.ToDoItem, error) {
	out := make([]models.ToDoItem, 0, len(items))
	for _, item := range items {
		if !item.Category.Valid() {
			return nil, fmt.Errorf("%w: %s", ErrInvalidTaskCategory, item.Category)
		}
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		out = append(out, item)
	}

	err := s.tx(ctx, func(tx *sql.Tx) error {
		if err := requireProfile(ctx, tx, userID); err != nil {
			return err
		}
		for _, item := range out {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO todos (id, user_id, task, completed, category) VALUES ($1, $2, $3, $4, $5)`,
				item.ID, userID, item.Task, item.Completed, string(item.Category)); err != nil {
				return fmt.Errorf("%w: add todo: %v", ErrQueryFailed, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, userID)
	return out, nil
}

// AddTodo appends a single task.
func (s *Store) AddTodo(ctx context.Context, userID, task string, category models.TaskCategory) (models.ToDoItem, error) {
	items, err := s.AddTodos(ctx, userID, []models.ToDoItem{{Task: task, Category: category}})
	if err != nil {
		return models.ToDoItem{}, err
	}
	return items[0], nil
}

// ToggleTodo flips the completed flag of one task.
func (s *Store) ToggleTodo(ctx context.Context, userID, todoID string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE todos SET completed = NOT completed WHERE id = $1 AND user_id = $2`, todoID, userID)
	if err != nil {
		return fmt.Errorf("%w: toggle todo: %v", ErrQueryFailed, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: todo %s", ErrTodoNotFound, todoID)
	}
	s.invalidate(ctx, userID)
	return nil
}

// SetStage sets the stage explicitly.
func (s *Store) SetStage(ctx context.Context, userID string, stage models.AppStage) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE profiles SET current_stage = $2, updated_at = now() WHERE user_id = $1`, userID, int(stage))
	if err != nil {
		return fmt.Errorf("%w: set stage: %v", ErrQueryFailed, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, userID)
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *Store) tx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ErrQueryFailed, err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", ErrQueryFailed, err)
	}
	return nil
}

func exists(ctx context.Context, tx *sql.Tx, query string, args ...interface{}) (bool, error) {
	var ok bool
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&ok); err != nil {
		return false, fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}
	return ok, nil
}

func requireProfile(ctx context.Context, tx *sql.Tx, userID string) error {
	ok, err := exists(ctx, tx, `SELECT EXISTS (SELECT 1 FROM profiles WHERE user_id = $1)`, userID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, userID)
	}
	return nil
}

// advanceStage moves the user forward to stage; it never moves backwards.
func advanceStage(ctx context.Context, tx *sql.Tx, userID string, stage models.AppStage) error {
	if _, err := tx.ExecContext(ctx, `
		UPDATE profiles SET current_stage = GREATEST(current_stage, $2), updated_at = now()
		WHERE user_id = $1`, userID, int(stage)); err != nil {
		return fmt.Errorf("%w: advance stage: %v", ErrQueryFailed, err)
	}
	return nil
}
