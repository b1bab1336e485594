// Package jot is a minimal note-taking backend: a REST API for notes and
// user accounts stored in a document database, with token-based
// authentication for note mutation.
//
// # Features
//
//   - Notes: create, list, fetch, partially update, and delete notes with a
//     content body and an importance flag
//   - Users: open registration with bcrypt-hashed passwords and a unique
//     username enforced by the database
//   - Authentication: POST /api/login issues opaque bearer tokens with a
//     configurable TTL; all note mutations require one
//   - Pluggable storage: SurrealDB by default, PostgreSQL via GORM, or an
//     in-memory store for tests
//
// # Layout
//
//   - [github.com/jotpad/jot/pkg/models]: shared entities and typed ids
//   - [github.com/jotpad/jot/pkg/store]: the storage contract plus the
//     surreal, postgres, and memory backends
//   - [github.com/jotpad/jot/pkg/jot]: the application — HTTP surface,
//     sessions, commands, configuration
//   - [github.com/jotpad/jot/pkg/client]: typed HTTP client for the API
//   - [github.com/jotpad/jot/pkg/jottesting]: shared test fixtures
//   - cmd/jot: the binary
//
// # Quick start
//
//	jot migrate                # define indexes on the active store
//	jot seed                   # insert the example account and notes
//	jot run                    # serve on :8080
//
// See [github.com/jotpad/jot/pkg/jot.Main] for flags and environment
// variables.
package jot
