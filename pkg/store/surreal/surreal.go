// Package surreal provides the SurrealDB implementation of the
// [github.com/jotpad/jot/pkg/store.Store] interface using native SurrealQL.
//
// # CBOR Marshaling Strategy
//
// SurrealDB speaks CBOR internally, so the connection is configured with the
// surrealcbor codec rather than default Go marshaling. With the codec in
// place the [github.com/jotpad/jot/pkg/models] structs are stored directly:
// typed IDs marshal to RecordIDs (CBOR tag 8), time.Time uses SurrealDB's
// native datetime format, and the note back-reference list on users becomes
// an array of RecordIDs.
//
// # Uniqueness
//
// Username uniqueness is enforced by the database, not the application:
// [Store.Migrate] defines a UNIQUE index on users.username, and CreateUser
// translates the index violation into
// [github.com/jotpad/jot/pkg/store.ErrDuplicateUsername]. Concurrent
// conflicting writes are therefore serialized by SurrealDB itself.
//
// # Query Safety
//
// All queries are parameterized ($param syntax); user-provided values are
// never interpolated into query strings.
package surreal

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/connection"
	"github.com/surrealdb/surrealdb.go/pkg/connection/gorillaws"
	"github.com/surrealdb/surrealdb.go/surrealcbor"

	"github.com/jotpad/jot/pkg/models"
	"github.com/jotpad/jot/pkg/store"
)

// Store implements store.Store on SurrealDB with proper CBOR handling.
type Store struct {
	db       *surrealdb.DB
	ns       string
	database string
}

// New connects to SurrealDB over WebSocket and returns a ready store.
//
// The connection is configured manually (rather than FromEndpointURLString)
// so the surrealcbor codec can be installed; without it time.Time values and
// RecordIDs are marshaled in formats SurrealDB rejects.
func New(wsURL, namespace, database, username, password string) (store.Store, error) {
	ctx := context.Background()

	u, err := url.Parse(wsURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	conf := connection.NewConfig(u)

	codec := surrealcbor.New()
	conf.Marshaler = codec
	conf.Unmarshaler = codec

	conn := gorillaws.New(conf)

	db, err := surrealdb.FromConnection(ctx, conn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SurrealDB: %w", err)
	}

	if username != "" && password != "" {
		if _, err := db.SignIn(ctx, map[string]any{
			"user": username,
			"pass": password,
		}); err != nil {
			return nil, fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	if err := db.Use(ctx, namespace, database); err != nil {
		return nil, fmt.Errorf("failed to use namespace/database: %w", err)
	}

	return &Store{
		db:       db,
		ns:       namespace,
		database: database,
	}, nil
}

// Migrate defines the constraints the application relies on. Tables
// themselves are created implicitly on first insert; only the username
// uniqueness invariant needs an explicit definition.
func (s *Store) Migrate(ctx context.Context) error {
	q := "DEFINE INDEX IF NOT EXISTS unique_username ON TABLE users COLUMNS username UNIQUE"
	if _, err := surrealdb.Query[any](ctx, s.db, q, map[string]any{}); err != nil {
		return fmt.Errorf("failed to define username index: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close(context.Background())
}

// handleNotFound maps the driver's "no result" errors to a plain nil so
// callers get the (nil, nil) absent-record convention.
func handleNotFound(err error) error {
	if err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "Expected a single or multiple results but got 0") ||
			strings.Contains(errStr, "cannot unmarshal array into Go value") {
			return nil
		}
	}
	return err
}

// isUniqueViolation detects a UNIQUE index violation raised by SurrealDB.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "already contains")
}

// User operations

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if err := user.Validate(); err != nil {
		return store.Invalid(err)
	}

	if user.ID.IsZero() {
		user.ID = models.NewUserID()
	}
	if user.Notes == nil {
		user.Notes = models.NoteIDs{}
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = time.Now()
	}

	_, err := surrealdb.Create[models.User](ctx, s.db, "users", user)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrDuplicateUsername
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *Store) GetUser(ctx context.Context, id models.UserID) (*models.User, error) {
	rid := id.RecordID()
	user, err := surrealdb.Select[models.User](ctx, s.db, rid)
	if err != nil {
		if handleNotFound(err) == nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := "SELECT * FROM users WHERE username = $username"
	params := map[string]any{
		"username": username,
	}

	result, err := surrealdb.Query[[]models.User](ctx, s.db, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to query user by username: %w", err)
	}

	if result == nil || len(*result) == 0 || len((*result)[0].Result) == 0 {
		return nil, nil
	}
	user := (*result)[0].Result[0]
	return &user, nil
}

func (s *Store) UpdateUser(ctx context.Context, user *models.User) error {
	rid := user.ID.RecordID()
	user.UpdatedAt = time.Now()

	_, err := surrealdb.Update[models.User](ctx, s.db, rid, user)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

func (s *Store) ListUsers(ctx context.Context) ([]*models.User, error) {
	query := "SELECT * FROM users ORDER BY createdAt ASC"
	result, err := surrealdb.Query[[]models.User](ctx, s.db, query, map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := []*models.User{}
	if result != nil && len(*result) > 0 {
		for i := range (*result)[0].Result {
			users = append(users, &(*result)[0].Result[i])
		}
	}
	return users, nil
}

// Note operations

func (s *Store) CreateNote(ctx context.Context, note *models.Note) error {
	if err := note.Validate(); err != nil {
		return store.Invalid(err)
	}

	if note.ID.IsZero() {
		note.ID = models.NewNoteID()
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now()
	}
	if note.UpdatedAt.IsZero() {
		note.UpdatedAt = time.Now()
	}

	// The UserID field is stored as a RecordID thanks to UserID's
	// MarshalCBOR, so owner lookups stay parameterized graph-style queries.
	_, err := surrealdb.Create[models.Note](ctx, s.db, "notes", note)
	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}
	return nil
}

func (s *Store) GetNote(ctx context.Context, id models.NoteID) (*models.Note, error) {
	rid := id.RecordID()
	note, err := surrealdb.Select[models.Note](ctx, s.db, rid)
	if err != nil {
		if handleNotFound(err) == nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	return note, nil
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

	updated, err := surrealdb.Update[models.Note](ctx, s.db, id.RecordID(), note)
	if err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}
	return updated, nil
}

func (s *Store) DeleteNote(ctx context.Context, id models.NoteID) error {
	rid := id.RecordID()
	// SurrealDB DELETE on an absent record is a no-op, which matches the
	// idempotency contract.
	_, err := surrealdb.Delete[models.Note](ctx, s.db, rid)
	return err
}

func (s *Store) ListNotes(ctx context.Context) ([]*models.Note, error) {
	query := "SELECT * FROM notes ORDER BY createdAt ASC"
	result, err := surrealdb.Query[[]models.Note](ctx, s.db, query, map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	notes := []*models.Note{}
	if result != nil && len(*result) > 0 {
		for i := range (*result)[0].Result {
			notes = append(notes, &(*result)[0].Result[i])
		}
	}
	return notes, nil
}
