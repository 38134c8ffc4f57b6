// Package store persists per-user application state: the profile, the
// shortlist, locked universities, to-dos and the current stage. Postgres is
// the source of truth; assembled states are cached in Redis.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"studyabroad-workers/internal/models"
)

var (
	ErrProfileNotFound     = errors.New("PROFILE_NOT_FOUND")
	ErrNotShortlisted      = errors.New("NOT_SHORTLISTED")
	ErrAlreadyLocked       = errors.New("ALREADY_LOCKED")
	ErrInvalidTaskCategory = errors.New("INVALID_TASK_CATEGORY")
	ErrTodoNotFound        = errors.New("TODO_NOT_FOUND")
	ErrQueryFailed         = errors.New("QUERY_EXECUTION_FAILED")
)

const Schema = `
CREATE TABLE IF NOT EXISTS profiles (
	user_id       TEXT PRIMARY KEY,
	email         TEXT NOT NULL DEFAULT '',
	phone         TEXT NOT NULL DEFAULT '',
	profile       JSONB NOT NULL,
	current_stage INT NOT NULL DEFAULT 0,
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS shortlists (
	user_id       TEXT NOT NULL REFERENCES profiles(user_id),
	university_id TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (user_id, university_id)
);
CREATE TABLE IF NOT EXISTS locked_universities (
	user_id       TEXT NOT NULL REFERENCES profiles(user_id),
	university_id TEXT NOT NULL,
	locked_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (user_id, university_id)
);
CREATE TABLE IF NOT EXISTS todos (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL REFERENCES profiles(user_id),
	task       TEXT NOT NULL,
	completed  BOOLEAN NOT NULL DEFAULT false,
	category   TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`

// Store is the Postgres-backed profile store.
type Store struct {
	db    *sql.DB
	redis *redis.Client
	ttl   time.Duration
}

// New returns a Store. rdb may be nil to disable caching.
func New(db *sql.DB, rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{db: db, redis: rdb, ttl: ttl}
}

// Migrate creates the tables if they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("%w: migrate: %v", ErrQueryFailed, err)
	}
	return nil
}

func stateKey(userID string) string {
	return "state:" + userID
}

// LoadState assembles the full application state for userID.
func (s *Store) LoadState(ctx context.Context, userID string) (*models.AppState, error) {
	if s.redis != nil {
		if val, err := s.redis.Get(ctx, stateKey(userID)).Result(); err == nil {
			var state models.AppState
			if err := json.Unmarshal([]byte(val), &state); err == nil {
				return &state, nil
			}
		}
	}

	state := &models.AppState{
		UserID:                  userID,
		ShortlistedUniversities: []string{},
		LockedUniversityIDs:     []string{},
		ToDos:                   []models.ToDoItem{},
	}

	var rawProfile []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT profile, current_stage FROM profiles WHERE user_id = $1`, userID,
	).Scan(&rawProfile, &state.CurrentStage)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: load profile: %v", ErrQueryFailed, err)
	}
	if err := json.Unmarshal(rawProfile, &state.Profile); err != nil {
		return nil, fmt.Errorf("%w: decode profile: %v", ErrQueryFailed, err)
	}

	if state.ShortlistedUniversities, err = s.ids(ctx,
		`SELECT university_id FROM shortlists WHERE user_id = $1 ORDER BY created_at, university_id`, userID); err != nil {
		return nil, err
	}
	if state.LockedUniversityIDs, err = s.ids(ctx,
		`SELECT university_id FROM locked_universities WHERE user_id = $1 ORDER BY locked_at, university_id`, userID); err != nil {
		return nil, err
	}
	if state.ToDos, err = s.todos(ctx, userID); err != nil {
		return nil, err
	}

	s.cache(ctx, state)
	return state, nil
}

// LoadProfile returns only the profile part of the state.
func (s *Store) LoadProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	state, err := s.LoadState(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &state.Profile, nil
}

// Contact returns the email address and phone number on file for userID.
func (s *Store) Contact(ctx context.Context, userID string) (string, string, error) {
	var email, phone string
	err := s.db.QueryRowContext(ctx,
		`SELECT email, phone FROM profiles WHERE user_id = $1`, userID,
	).Scan(&email, &phone)
	if errors.Is(err, sql.ErrNoRows) {
		return "", "", fmt.Errorf("%w: %s", ErrProfileNotFound, userID)
	}
	if err != nil {
		return "", "", fmt.Errorf("%w: load contact: %v", ErrQueryFailed, err)
	}
	return email, phone, nil
}

func (s *Store) ids(ctx context.Context, query, userID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrQueryFailed, err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}
	return out, nil
}

func (s *Store) todos(ctx context.Context, userID string) ([]models.ToDoItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, task, completed, category FROM todos WHERE user_id = $1 ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}
	defer rows.Close()

	out := []models.ToDoItem{}
	for rows.Next() {
		var item models.ToDoItem
		if err := rows.Scan(&item.ID, &item.Task, &item.Completed, &item.Category); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrQueryFailed, err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}
	return out, nil
}

func (s *Store) cache(ctx context.Context, state *models.AppState) {
	if s.redis == nil {
		return
	}
	if data, err := json.Marshal(state); err == nil {
		s.redis.Set(ctx, stateKey(state.UserID), data, s.ttl)
	}
}

func (s *Store) invalidate(ctx context.Context, userID string) {
	if s.redis != nil {
		s.redis.Del(ctx, stateKey(userID))
	}
}
