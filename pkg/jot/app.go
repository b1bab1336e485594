package jot

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/jotpad/jot/pkg/logger"
	"github.com/jotpad/jot/pkg/store"
	"github.com/jotpad/jot/pkg/store/memory"
	"github.com/jotpad/jot/pkg/store/postgres"
	"github.com/jotpad/jot/pkg/store/surreal"
)

// Config holds application configuration shared across all commands.
type Config struct {
	// Database configuration. SurrealDB is the default backend; PostgresDSN
	// is only used when UsePostgres is set.
	SurrealDBURL  string
	SurrealDBNS   string
	SurrealDBDB   string
	SurrealDBUser string
	SurrealDBPass string
	PostgresDSN   string

	// Backend selection.
	UsePostgres bool
	UseMemory   bool

	// ReadOnly starts the application in read-only maintenance mode. All
	// write operations are rejected until SetReadOnly(false) is called.
	ReadOnly bool

	// StrictOwnership makes note updates and deletions fail with 403 when
	// the authenticated user is not the note's owner. When false, any
	// authenticated user may mutate any note.
	StrictOwnership bool

	// Server configuration.
	ServerPort string
	TokenTTL   time.Duration
}

// App holds the application state: the active store, the session table, and
// the logger. A single App instance serves all requests.
type App struct {
	store    store.Store
	config   *Config
	log      zerolog.Logger
	sessions *Sessions
	readOnly bool
}

// New creates an application instance, connecting to the configured backend.
// The returned App owns the store connection; call Close when done.
func New(config *Config) (*App, error) {
	var appStore store.Store
	var err error

	logs, err := logger.New().ToWriter(os.Stderr).Level(zerolog.InfoLevel).Make()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	log := logs.Logger

	switch {
	case config.UseMemory:
		appStore = memory.New()
		log.Info().Msg("using in-memory store")
	case config.UsePostgres:
		appStore, err = postgres.New(config.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		log.Info().Msg("connected to PostgreSQL")
	default:
		appStore, err = surreal.New(
			config.SurrealDBURL,
			config.SurrealDBNS,
			config.SurrealDBDB,
			config.SurrealDBUser,
			config.SurrealDBPass,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to SurrealDB: %w", err)
		}
		log.Info().Str("url", config.SurrealDBURL).Msg("connected to SurrealDB")
	}

	return newApp(appStore, config, log), nil
}

// NewWithStore creates an application around an existing store. Used by the
// test suites to run the full HTTP stack against the in-memory backend.
func NewWithStore(s store.Store, config *Config) *App {
	return newApp(s, config, zerolog.Nop())
}

func newApp(s store.Store, config *Config, log zerolog.Logger) *App {
	if config.TokenTTL <= 0 {
		config.TokenTTL = time.Hour
	}

	app := &App{
		config:   config,
		log:      log,
		sessions: NewSessions(config.TokenTTL),
		readOnly: config.ReadOnly,
	}

	// The read-only wrapper consults the app on every write, so the mode
	// can be toggled at runtime without swapping the store.
	app.store = store.NewReadOnlyStore(s, app.IsReadOnly)

	return app
}

// Close closes the application and its store connection.
func (a *App) Close() error {
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}

// Store returns the active store. Useful for seeding in tests.
func (a *App) Store() store.Store {
	return a.store
}

// SetReadOnly toggles read-only maintenance mode at runtime. While enabled,
// every write operation is rejected with [store.ErrReadOnly]; reads continue
// to function.
func (a *App) SetReadOnly(readOnly bool) {
	a.readOnly = readOnly
	a.log.Info().Bool("readOnly", readOnly).Msg("read-only mode changed")
}

// IsReadOnly reports whether the application is in read-only mode. Called by
// the store wrapper on every write, so it must stay cheap.
func (a *App) IsReadOnly() bool {
	return a.readOnly
}

// getEnv retrieves an environment variable with a fallback default. Empty
// values are treated the same as unset ones.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
