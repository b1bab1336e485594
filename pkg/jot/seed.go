package jot

import (
	"context"
	"fmt"

	"github.com/jotpad/jot/pkg/models"
)

// Seed inserts the default development fixtures: the root account and two
// example notes it owns. Migrations run first so the unique username index
// exists before the account is created.
func (a *App) Seed(ctx context.Context, cmd *SeedCommand) error {
	if err := a.store.Migrate(ctx); err != nil {
		return fmt.Errorf("migration before seed failed: %w", err)
	}

	user := &models.User{
		Username: "root",
		Name:     "Superuser",
	}
	if err := user.SetPassword("sekret"); err != nil {
		return err
	}
	if err := a.store.CreateUser(ctx, user); err != nil {
		return fmt.Errorf("failed to seed user: %w", err)
	}

	seedNotes := []*models.Note{
		{Content: "HTML IS easy", Important: false, UserID: user.ID},
		{Content: "Browser can execute only JavaScript", Important: true, UserID: user.ID},
	}

	for _, note := range seedNotes {
		if err := a.store.CreateNote(ctx, note); err != nil {
			return fmt.Errorf("failed to seed note: %w", err)
		}
		user.Notes = append(user.Notes, note.ID)
	}
	if err := a.store.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("failed to update seeded user's note list: %w", err)
	}

	a.log.Info().Int("notes", len(seedNotes)).Msg("seeded store")
	return nil
}
