//go:build e2e

// End-to-end test against a running jot server.
//
// The test drives the public API through the typed client: registration,
// login, the full note lifecycle, and the error contract for malformed and
// absent ids. It needs a live server and store:
//
//	jot -memory run &
//	JOT_BASE_URL=http://localhost:8080 go test -tags e2e .
package jot_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jotpad/jot/pkg/client"
	"github.com/jotpad/jot/pkg/models"
)

func baseURL(t *testing.T) string {
	t.Helper()
	url := os.Getenv("JOT_BASE_URL")
	if url == "" {
		t.Skip("JOT_BASE_URL not set")
	}
	return url
}

func TestE2E_NoteLifecycle(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c := client.NewClient(baseURL(t))

	_, err := c.Health(ctx)
	require.NoError(t, err, "server must be reachable")

	// Register a throwaway account. Usernames are unique, so derive one
	// from the clock to keep reruns against the same store working.
	username := fmt.Sprintf("e2e-%d", time.Now().UnixNano())
	user, err := c.CreateUser(ctx, username, "E2E Tester", "sekret")
	require.NoError(t, err)
	require.Equal(t, username, user.Username)

	_, err = c.Login(ctx, username, "sekret")
	require.NoError(t, err)

	before, err := c.ListNotes(ctx)
	require.NoError(t, err)

	created, err := c.CreateNote(ctx, "async/await simplifies making async calls", true)
	require.NoError(t, err)
	require.False(t, created.ID.IsZero())
	require.Equal(t, user.ID, created.UserID)

	fetched, err := c.GetNote(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, fetched.ID)
	require.Equal(t, created.Content, fetched.Content)

	after, err := c.ListNotes(ctx)
	require.NoError(t, err)
	require.Len(t, after, len(before)+1)

	content := "updated content"
	updated, err := c.UpdateNote(ctx, created.ID, models.NotePatch{Content: &content})
	require.NoError(t, err)
	require.Equal(t, content, updated.Content)
	require.True(t, updated.Important, "unset patch fields must be preserved")

	require.NoError(t, c.DeleteNote(ctx, created.ID))
	// Idempotent: deleting again still succeeds.
	require.NoError(t, c.DeleteNote(ctx, created.ID))

	_, err = c.GetNote(ctx, created.ID)
	require.Error(t, err, "deleted note must be gone")
}

func TestE2E_AuthRequired(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c := client.NewClient(baseURL(t))

	_, err := c.CreateNote(ctx, "should be rejected", false)
	require.Error(t, err, "creating a note without a token must fail")

	_, err = c.Login(ctx, "no-such-user", "wrong")
	require.Error(t, err)
}
