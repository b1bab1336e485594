// Package store provides the data persistence layer abstraction for the jot
// application.
//
// The [Store] interface implements the repository pattern over the note and
// user collections. Three implementations exist:
//
//   - [github.com/jotpad/jot/pkg/store/surreal.Store]: the primary backend,
//     SurrealDB via native SurrealQL and the surrealcbor codec
//   - [github.com/jotpad/jot/pkg/store/postgres.Store]: relational backend
//     using GORM for deployments that already run PostgreSQL
//   - [github.com/jotpad/jot/pkg/store/memory.Store]: in-process backend for
//     unit tests and throwaway local runs
//
// # Conventions
//
// All implementations follow the same contract:
//
//   - Get methods return (nil, nil) for a well-formed id that matches no
//     record; the caller decides whether that is an error. Update and Delete
//     use [ErrNotFound] where absence matters.
//   - Create methods validate their entity and return a [*ValidationError]
//     on malformed input, before touching the backend.
//   - CreateUser returns [ErrDuplicateUsername] when the username is taken.
//     Uniqueness is enforced by the backend (unique index), not by
//     application-level locking; concurrent conflicting writes are serialized
//     by the database.
//   - List methods return records in insertion order and never return nil
//     slices.
//   - DeleteNote is idempotent: deleting an absent id is not an error.
//
// Every operation takes a context so the caller's request deadline bounds the
// storage round trip. Operations are individually atomic but the interface
// offers no cross-operation transactions; the note-create plus owner-update
// sequence in the HTTP layer is documented as eventually consistent.
package store

import (
	"context"

	"github.com/jotpad/jot/pkg/models"
)

// Store defines the persistence interface for users and notes.
type Store interface {
	// Migrate prepares backend schema and constraints (tables, unique
	// indexes). Safe to call repeatedly.
	Migrate(ctx context.Context) error
	// Close releases the underlying connection. The store is unusable
	// afterwards.
	Close() error

	// User operations.

	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id models.UserID) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	ListUsers(ctx context.Context) ([]*models.User, error)

	// Note operations.

	CreateNote(ctx context.Context, note *models.Note) error
	GetNote(ctx context.Context, id models.NoteID) (*models.Note, error)
	UpdateNote(ctx context.Context, id models.NoteID, patch models.NotePatch) (*models.Note, error)
	DeleteNote(ctx context.Context, id models.NoteID) error
	ListNotes(ctx context.Context) ([]*models.Note, error)
}
