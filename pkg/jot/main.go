package jot

import (
	"context"
	"fmt"
)

// Main is the entry point for the jot application. It parses args into a
// command and configuration, builds the application, and dispatches. Taking
// a context and args makes the whole binary drivable from tests.
//
// # Environment Variables
//
//	JOT_ADDR         - server port override
//	POSTGRES_DSN     - PostgreSQL connection string
//	SURREALDB_URL    - SurrealDB WebSocket URL (default: ws://localhost:8000/rpc)
//	SURREALDB_NS     - SurrealDB namespace (default: jot)
//	SURREALDB_DB     - SurrealDB database (default: jot)
//	SURREALDB_USER   - SurrealDB username (default: root)
//	SURREALDB_PASS   - SurrealDB password (default: root)
func Main(ctx context.Context, args []string) error {
	cmd, config, err := Parse(args)
	if err != nil {
		return fmt.Errorf("failed to parse configuration: %w", err)
	}

	app, err := New(config)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	defer app.Close()

	switch c := cmd.(type) {
	case *RunCommand:
		if err := app.Run(ctx, c); err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case *MigrateCommand:
		if err := app.Migrate(ctx, c); err != nil {
			return err
		}
	case *SeedCommand:
		if err := app.Seed(ctx, c); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown command type: %T", cmd)
	}

	return nil
}
