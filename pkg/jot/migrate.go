package jot

import (
	"context"
	"fmt"
)

// Migrate applies schema definitions to the active store. For SurrealDB this
// defines the unique username index; for PostgreSQL it creates the users and
// notes tables with their indexes. Idempotent.
func (a *App) Migrate(ctx context.Context, cmd *MigrateCommand) error {
	a.log.Info().Msg("running migrations")
	if err := a.store.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	a.log.Info().Msg("migrations complete")
	return nil
}
