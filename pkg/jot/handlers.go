package jot

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/jotpad/jot/pkg/client"
	"github.com/jotpad/jot/pkg/models"
	"github.com/jotpad/jot/pkg/store"
)

// respondJSON writes payload as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, payload any) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_, _ = w.Write(response)
	}
}

// respondError sends a JSON error body: {"error": "message"}.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondStoreError translates store contract errors into HTTP statuses.
// Validation failures and the username uniqueness violation are client
// errors; read-only mode is a temporary service condition.
func respondStoreError(w http.ResponseWriter, err error) {
	switch {
	case store.IsValidation(err):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrDuplicateUsername):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, "note not found")
	case errors.Is(err, store.ErrReadOnly):
		respondError(w, http.StatusServiceUnavailable, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

// Note handlers

// handleListNotes returns every note in insertion order. Public.
//
// GET /api/notes
func (a *App) handleListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := a.store.ListNotes(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, notes)
}

// handleGetNote returns one note. A malformed id is a 400 before any store
// call; a well-formed id with no record is a 404.
//
// GET /api/notes/{id}
func (a *App) handleGetNote(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseNoteID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "malformed note id")
		return
	}

	note, err := a.store.GetNote(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if note == nil {
		respondError(w, http.StatusNotFound, "note not found")
		return
	}
	respondJSON(w, http.StatusOK, note)
}

// handleCreateNote creates a note owned by the authenticated user.
//
// POST /api/notes (Bearer)
//
// The write happens in two phases: the note record is created first, then
// the owner's note list is updated as a secondary index. There is no
// cross-record transaction, so a crash between the phases leaves the index
// stale. Note.UserID is the authoritative relation; the index can be rebuilt
// from the notes table, so the request still succeeds when only the second
// phase fails.
func (a *App) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	var req client.NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	note := &models.Note{
		Content:   req.Content,
		Important: req.Important,
		UserID:    user.ID,
	}

	if err := a.store.CreateNote(r.Context(), note); err != nil {
		respondStoreError(w, err)
		return
	}

	user.Notes = append(user.Notes, note.ID)
	if err := a.store.UpdateUser(r.Context(), user); err != nil {
		a.log.Warn().Err(err).
			Str("note", note.ID.String()).
			Str("user", user.Username).
			Msg("note created but owner's note list not updated")
	}

	respondJSON(w, http.StatusCreated, note)
}

// handleUpdateNote applies a partial update to a note.
//
// PUT /api/notes/{id} (Bearer)
//
// In strict ownership mode only the note's owner may update it; otherwise
// any authenticated user may.
func (a *App) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseNoteID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "malformed note id")
		return
	}

	var patch models.NotePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if a.config.StrictOwnership {
		if ok := a.authorizeOwner(w, r, id); !ok {
			return
		}
	}

	note, err := a.store.UpdateNote(r.Context(), id, patch)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, note)
}

// handleDeleteNote deletes a note. Deletion is idempotent: a well-formed id
// that matches nothing still yields 204.
//
// DELETE /api/notes/{id} (Bearer)
func (a *App) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseNoteID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "malformed note id")
		return
	}

	if a.config.StrictOwnership {
		if ok := a.authorizeOwner(w, r, id); !ok {
			return
		}
	}

	if err := a.store.DeleteNote(r.Context(), id); err != nil {
		respondStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// authorizeOwner enforces strict ownership for a note mutation. It writes
// the error response and returns false when the caller is not the owner.
// An absent note passes: the mutation itself decides between 404 and the
// idempotent 204.
func (a *App) authorizeOwner(w http.ResponseWriter, r *http.Request, id models.NoteID) bool {
	note, err := a.store.GetNote(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return false
	}
	if note == nil {
		return true
	}

	user := userFrom(r.Context())
	if note.UserID != user.ID {
		respondError(w, http.StatusForbidden, "note belongs to another user")
		return false
	}
	return true
}

// handleHealth reports service status. Served on /health and /api/health so
// both load balancers and API clients can probe it.
func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":   "healthy",
		"readOnly": a.IsReadOnly(),
		"time":     time.Now().Unix(),
	})
}
