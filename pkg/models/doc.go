// Package models defines the domain entities of the jot note-taking service:
// [User] accounts and the [Note] records they own.
//
// The same structs are persisted by every store backend. Typed IDs ([UserID],
// [NoteID]) adapt the identifier format per backend: UUID strings in JSON and
// PostgreSQL, RecordIDs (CBOR tag 8) in SurrealDB. Keeping one model across
// backends avoids translation layers in the stores; see the store packages
// for how each backend consumes the gorm, json, and cbor struct tags.
//
// Two ownership representations coexist by design:
//
//   - Note.UserID is the authoritative owner reference, set once at creation.
//   - User.Notes is a denormalized, ordered back-reference appended to when a
//     note is created. It is a convenience index only; it is rebuildable from
//     the notes table and is never consulted for authorization.
package models
