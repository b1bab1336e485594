// Package memory provides an in-process implementation of the
// [github.com/jotpad/jot/pkg/store.Store] interface backed by maps.
//
// It exists for unit tests and throwaway local runs: no external database,
// no persistence across restarts. It honors the full store contract,
// including username uniqueness and insertion-ordered listings, so handler
// tests exercise the same semantics the database backends provide.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jotpad/jot/pkg/models"
	"github.com/jotpad/jot/pkg/store"
)

// Store is an in-memory store.Store. The zero value is not usable; use [New].
//
// A single RWMutex serializes conflicting writes, standing in for the
// serialization a real database performs.
type Store struct {
	mu sync.RWMutex

	users     map[models.UserID]*models.User
	notes     map[models.NoteID]*models.Note
	userOrder []models.UserID
	noteOrder []models.NoteID
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		users: make(map[models.UserID]*models.User),
		notes: make(map[models.NoteID]*models.Note),
	}
}

// Migrate is a no-op; there is no schema to prepare.
func (s *Store) Migrate(ctx context.Context) error { return nil }

// Close is a no-op.
func (s *Store) Close() error { return nil }

// User operations

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if err := user.Validate(); err != nil {
		return store.Invalid(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == user.Username {
			return store.ErrDuplicateUsername
		}
	}

	if user.ID.IsZero() {
		user.ID = models.NewUserID()
	}
	if user.Notes == nil {
		user.Notes = models.NoteIDs{}
	}
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	cp := *user
	s.users[user.ID] = &cp
	s.userOrder = append(s.userOrder, user.ID)
	return nil
}

func (s *Store) GetUser(ctx context.Context, id models.UserID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return copyUser(u), nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.userOrder {
		if u := s.users[id]; u.Username == username {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

func (s *Store) UpdateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return store.ErrNotFound
	}
	user.UpdatedAt = time.Now()
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *Store) ListUsers(ctx context.Context) ([]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*models.User, 0, len(s.userOrder))
	for _, id := range s.userOrder {
		users = append(users, copyUser(s.users[id]))
	}
	return users, nil
}

// Note operations

func (s *Store) CreateNote(ctx context.Context, note *models.Note) error {
	if err := note.Validate(); err != nil {
		return store.Invalid(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if note.ID.IsZero() {
		note.ID = models.NewNoteID()
	}
	now := time.Now()
	if note.CreatedAt.IsZero() {
		note.CreatedAt = now
	}
	note.UpdatedAt = now

	cp := *note
	s.notes[note.ID] = &cp
	s.noteOrder = append(s.noteOrder, note.ID)
	return nil
}

func (s *Store) GetNote(ctx context.Context, id models.NoteID) (*models.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.notes[id]
	if !ok {
		return nil, nil
	}
	cp := *n
	return &cp, nil
}

func (s *Store) UpdateNote(ctx context.Context, id models.NoteID, patch models.NotePatch) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notes[id]
	if !ok {
		return nil, store.ErrNotFound
	}

	updated := *n
	patch.Apply(&updated)
	if err := updated.Validate(); err != nil {
		return nil, store.Invalid(err)
	}
	updated.UpdatedAt = time.Now()
	s.notes[id] = &updated

	cp := updated
	return &cp, nil
}

func (s *Store) DeleteNote(ctx context.Context, id models.NoteID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notes[id]; !ok {
		return nil // idempotent
	}
	delete(s.notes, id)
	for i, nid := range s.noteOrder {
		if nid == id {
			s.noteOrder = append(s.noteOrder[:i], s.noteOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) ListNotes(ctx context.Context) ([]*models.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notes := make([]*models.Note, 0, len(s.noteOrder))
	for _, id := range s.noteOrder {
		cp := *s.notes[id]
		notes = append(notes, &cp)
	}
	return notes, nil
}

// copyUser returns a deep enough copy that callers cannot mutate stored
// state through the returned pointer.
func copyUser(u *models.User) *models.User {
	cp := *u
	cp.Notes = append(models.NoteIDs{}, u.Notes...)
	return &cp
}
