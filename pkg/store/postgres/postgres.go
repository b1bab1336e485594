// Package postgres provides the PostgreSQL implementation of the
// [github.com/jotpad/jot/pkg/store.Store] interface using GORM.
//
// It exists for deployments that already run PostgreSQL and do not want a
// second database for a notes service. The schema maps the shared
// [github.com/jotpad/jot/pkg/models] entities directly: users and notes
// tables with a unique index on users.username and the note back-reference
// list stored as a JSONB array of id strings.
//
// Username uniqueness is enforced by the unique index; CreateUser translates
// the duplicate-key error into
// [github.com/jotpad/jot/pkg/store.ErrDuplicateUsername]. GORM wraps each
// operation in its own transaction, so individual writes are atomic, matching
// the contract the other backends provide.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/jotpad/jot/pkg/models"
	"github.com/jotpad/jot/pkg/store"
)

// Store implements store.Store using PostgreSQL with GORM.
type Store struct {
	db *gorm.DB
}

// New creates a new PostgreSQL store.
func New(dsn string) (store.Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Store{db: db}, nil
}

// Migrate creates or updates the schema via GORM AutoMigrate. AutoMigrate
// only adds schema elements, so it is safe to run on every start.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&models.User{}, &models.Note{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// isUniqueViolation detects the unique index violation on users.username.
// Matches both GORM's translated error and the raw Postgres 23505 message.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "duplicate key")
}

// User operations

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if err := user.Validate(); err != nil {
		return store.Invalid(err)
	}
	if user.Notes == nil {
		user.Notes = models.NoteIDs{}
	}

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return store.ErrDuplicateUsername
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *Store) GetUser(ctx context.Context, id models.UserID) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (s *Store) UpdateUser(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Save(user).Error
}

func (s *Store) ListUsers(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	err := s.db.WithContext(ctx).Order("created_at ASC").Find(&users).Error
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []*models.User{}
	}
	return users, nil
}

// Note operations

func (s *Store) CreateNote(ctx context.Context, note *models.Note) error {
	if err := note.Validate(); err != nil {
		return store.Invalid(err)
	}
	return s.db.WithContext(ctx).Create(note).Error
}

func (s *Store) GetNote(ctx context.Context, id models.NoteID) (*models.Note, error) {
	var note models.Note
	err := s.db.WithContext(ctx).First(&note, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &note, nil
}

func (s *Store) UpdateNote(ctx context.Context, id models.NoteID, patch models.NotePatch) (*models.Note, error) {
	note, err := s.GetNote(ctx, id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, store.ErrNotFound
	}

	patch.Apply(note)
	if err := note.Validate(); err != nil {
		return nil, store.Invalid(err)
	}
	note.UpdatedAt = time.Now()

	if err := s.db.WithContext(ctx).Save(note).Error; err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}
	return note, nil
}

func (s *Store) DeleteNote(ctx context.Context, id models.NoteID) error {
	// Deleting an absent row affects zero rows, which keeps this idempotent.
	return s.db.WithContext(ctx).Delete(&models.Note{}, "id = ?", id).Error
}

func (s *Store) ListNotes(ctx context.Context) ([]*models.Note, error) {
	var notes []*models.Note
	err := s.db.WithContext(ctx).Order("created_at ASC").Find(&notes).Error
	if err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []*models.Note{}
	}
	return notes, nil
}
