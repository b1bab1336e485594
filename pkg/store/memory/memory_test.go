package memory

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jotpad/jot/pkg/models"
	"github.com/jotpad/jot/pkg/store"
)

func newUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Name: "Test User"}
	require.NoError(t, user.SetPassword("sekret"))
	return user
}

func TestCreateUser(t *testing.T) {
	s := New()
	ctx := context.Background()

	user := newUser(t, "root")
	require.NoError(t, s.CreateUser(ctx, user))
	assert.False(t, user.ID.IsZero())
	assert.NotNil(t, user.Notes)
	assert.False(t, user.CreatedAt.IsZero())

	got, err := s.GetUser(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "root", got.Username)
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, newUser(t, "root")))

	err := s.CreateUser(ctx, newUser(t, "root"))
	require.ErrorIs(t, err, store.ErrDuplicateUsername)
	assert.Contains(t, err.Error(), "unique")

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestCreateUser_Invalid(t *testing.T) {
	s := New()

	err := s.CreateUser(context.Background(), &models.User{Username: "ab"})
	assert.True(t, store.IsValidation(err))
}

func TestGetUser_Absent(t *testing.T) {
	s := New()

	user, err := s.GetUser(context.Background(), models.NewUserID())
	require.NoError(t, err)
	assert.Nil(t, user, "absent user is (nil, nil), not an error")
}

func TestGetUserByUsername(t *testing.T) {
	s := New()
	ctx := context.Background()

	created := newUser(t, "root")
	require.NoError(t, s.CreateUser(ctx, created))

	got, err := s.GetUserByUsername(ctx, "root")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)

	missing, err := s.GetUserByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestReturnedUserIsACopy(t *testing.T) {
	s := New()
	ctx := context.Background()

	user := newUser(t, "root")
	require.NoError(t, s.CreateUser(ctx, user))

	got, err := s.GetUser(ctx, user.ID)
	require.NoError(t, err)
	got.Username = "mutated"
	got.Notes = append(got.Notes, models.NewNoteID())

	fresh, err := s.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "root", fresh.Username)
	assert.Empty(t, fresh.Notes)
}

func seedNote(t *testing.T, s *Store, owner models.UserID, content string) *models.Note {
	t.Helper()
	note := &models.Note{Content: content, UserID: owner}
	require.NoError(t, s.CreateNote(context.Background(), note))
	return note
}

func TestNoteLifecycle(t *testing.T) {
	s := New()
	ctx := context.Background()
	owner := models.NewUserID()

	note := seedNote(t, s, owner, "HTML IS easy")
	assert.False(t, note.ID.IsZero())

	got, err := s.GetNote(ctx, note.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "HTML IS easy", got.Content)

	content := "HTML is actually hard"
	important := true
	updated, err := s.UpdateNote(ctx, note.ID, models.NotePatch{Content: &content, Important: &important})
	require.NoError(t, err)
	assert.Equal(t, content, updated.Content)
	assert.True(t, updated.Important)
	assert.Equal(t, owner, updated.UserID, "patch cannot change ownership")

	require.NoError(t, s.DeleteNote(ctx, note.ID))

	gone, err := s.GetNote(ctx, note.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestUpdateNote_Absent(t *testing.T) {
	s := New()
	content := "anything"

	_, err := s.UpdateNote(context.Background(), models.NewNoteID(), models.NotePatch{Content: &content})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateNote_EmptyContentRejected(t *testing.T) {
	s := New()
	ctx := context.Background()

	note := seedNote(t, s, models.NewUserID(), "original")

	empty := ""
	_, err := s.UpdateNote(ctx, note.ID, models.NotePatch{Content: &empty})
	assert.True(t, store.IsValidation(err))

	// The stored note is unchanged.
	got, err := s.GetNote(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", got.Content)
}

func TestDeleteNote_Idempotent(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.DeleteNote(ctx, models.NewNoteID()))

	note := seedNote(t, s, models.NewUserID(), "to be deleted")
	require.NoError(t, s.DeleteNote(ctx, note.ID))
	require.NoError(t, s.DeleteNote(ctx, note.ID))
}

func TestListNotes_InsertionOrder(t *testing.T) {
	s := New()
	ctx := context.Background()
	owner := models.NewUserID()

	for i := 0; i < 5; i++ {
		seedNote(t, s, owner, fmt.Sprintf("note %d", i))
	}

	notes, err := s.ListNotes(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 5)
	for i, n := range notes {
		assert.Equal(t, fmt.Sprintf("note %d", i), n.Content)
	}

	// Deleting from the middle preserves the order of the rest.
	require.NoError(t, s.DeleteNote(ctx, notes[2].ID))
	notes, err = s.ListNotes(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 4)
	assert.Equal(t, "note 0", notes[0].Content)
	assert.Equal(t, "note 1", notes[1].Content)
	assert.Equal(t, "note 3", notes[2].Content)
	assert.Equal(t, "note 4", notes[3].Content)
}

func TestListNotes_EmptyIsNotNil(t *testing.T) {
	s := New()

	notes, err := s.ListNotes(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, notes)
	assert.Empty(t, notes)
}

func TestReadOnlyWrapper(t *testing.T) {
	readOnly := false
	wrapped := store.NewReadOnlyStore(New(), func() bool { return readOnly })
	ctx := context.Background()

	user := newUser(t, "root")
	require.NoError(t, wrapped.CreateUser(ctx, user))

	readOnly = true

	err := wrapped.CreateNote(ctx, &models.Note{Content: "blocked", UserID: user.ID})
	assert.ErrorIs(t, err, store.ErrReadOnly)

	// Reads pass through.
	got, err := wrapped.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.NotNil(t, got)

	readOnly = false
	assert.NoError(t, wrapped.CreateNote(ctx, &models.Note{Content: "allowed", UserID: user.ID}))
}
