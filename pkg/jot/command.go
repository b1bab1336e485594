package jot

// Command represents a discrete application operation. Each implementation
// carries the options specific to its operation; shared configuration lives
// in [Config]. Commands are produced by [Parse] and dispatched by [Main].
type Command interface {
	// Name returns the command identifier matching the CLI sub-command.
	Name() string
}

// RunCommand starts the HTTP server. All of its configuration comes from the
// application Config, so the struct is currently empty.
type RunCommand struct{}

func (c *RunCommand) Name() string { return "run" }

// MigrateCommand applies schema definitions to the active store: the unique
// username index on SurrealDB, tables and indexes via AutoMigrate on
// PostgreSQL. Safe to run repeatedly; it only creates what is missing.
type MigrateCommand struct{}

func (c *MigrateCommand) Name() string { return "migrate" }

// SeedCommand inserts the default development fixtures: a root account and
// two example notes. Seeding an already-seeded store is an error on the
// duplicate username, which keeps accidental double-seeding visible.
type SeedCommand struct{}

func (c *SeedCommand) Name() string { return "seed" }
