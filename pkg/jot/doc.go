// Package jot implements the jot note-taking service: a REST API for notes
// and user accounts backed by a pluggable document store.
//
// The package wires together the HTTP surface, token-based authentication,
// and the [github.com/jotpad/jot/pkg/store.Store] implementations. The
// application is driven through [Main], which parses the command line into a
// [Command] and a [Config], builds an [App], and dispatches to the matching
// App method. Commands:
//
//   - run: start the HTTP server
//   - migrate: apply schema definitions (indexes, tables) to the active store
//   - seed: insert the default development fixtures
//
// # Store selection
//
// The default backend is SurrealDB. The -postgres flag switches to
// PostgreSQL via GORM, and -memory selects the in-process store used by the
// test suites. All three implement the same contract, so the HTTP layer is
// backend-agnostic.
//
// # Authentication
//
// Mutating endpoints require a bearer token obtained from POST /api/login.
// Tokens are opaque random values held in an in-memory session table with a
// configurable TTL; see [Sessions]. Read endpoints are public.
package jot
