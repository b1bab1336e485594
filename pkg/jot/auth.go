package jot

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jotpad/jot/pkg/client"
	"github.com/jotpad/jot/pkg/models"
)

// contextKey is a private type for request context values.
type contextKey int

const userContextKey contextKey = iota

// userFrom returns the authenticated user stored by requireUser.
func userFrom(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey).(*models.User)
	return user
}

// bearerToken extracts the token from the Authorization header. Returns ""
// unless the header uses the Bearer scheme.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) > len(prefix) && strings.EqualFold(auth[:len(prefix)], prefix) {
		return auth[len(prefix):]
	}
	return ""
}

// requireUser wraps a handler with bearer-token authentication. The token
// must be present, known, and unexpired, and its subject must still exist in
// the store; otherwise the request is rejected with 401 before the handler
// runs. The resolved user is placed on the request context.
func (a *App) requireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			respondError(w, http.StatusUnauthorized, "token missing or invalid")
			return
		}

		userID, ok := a.sessions.Resolve(token)
		if !ok {
			respondError(w, http.StatusUnauthorized, "token missing or invalid")
			return
		}

		user, err := a.store.GetUser(r.Context(), userID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if user == nil {
			// The account was deleted after the token was issued.
			a.sessions.Revoke(token)
			respondError(w, http.StatusUnauthorized, "token missing or invalid")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next(w, r.WithContext(ctx))
	}
}

// handleLogin authenticates a username/password pair and issues a bearer
// token.
//
// POST /api/login
//
// Responses:
//   - 200: {token, username, name}
//   - 401: unknown username or wrong password (indistinguishable on purpose)
func (a *App) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req client.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	user, err := a.store.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if user == nil || !user.CheckPassword(req.Password) {
		respondError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	token, err := a.sessions.Issue(user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	a.log.Info().Str("username", user.Username).Msg("user logged in")

	respondJSON(w, http.StatusOK, client.LoginResponse{
		Token:    token,
		Username: user.Username,
		Name:     user.Name,
	})
}

// handleCreateUser registers a new account. Registration is open; no token
// is required.
//
// POST /api/users
//
// Responses:
//   - 201: created user (password hash never serialized)
//   - 400: validation failure, short password, or duplicate username
func (a *App) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req client.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	user := &models.User{
		Username: req.Username,
		Name:     req.Name,
	}
	if err := user.SetPassword(req.Password); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.store.CreateUser(r.Context(), user); err != nil {
		respondStoreError(w, err)
		return
	}

	a.log.Info().Str("username", user.Username).Msg("user created")

	respondJSON(w, http.StatusCreated, user)
}

// handleListUsers returns all accounts. Credential material is excluded by
// the model's JSON tags.
//
// GET /api/users
func (a *App) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := a.store.ListUsers(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, users)
}
