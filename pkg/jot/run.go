package jot

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// Router builds the HTTP handler with all API routes. Exposed separately
// from Run so the test suites can drive the full stack through
// httptest.Server without binding a real port.
//
// Routes:
//
//	GET    /health              - service health status
//	GET    /api/health          - same, under the API prefix
//	POST   /api/login           - authenticate, returns a bearer token
//	POST   /api/users           - register an account
//	GET    /api/users           - list accounts
//	GET    /api/notes           - list notes
//	POST   /api/notes           - create a note (Bearer)
//	GET    /api/notes/{id}      - get a note
//	PUT    /api/notes/{id}      - update a note (Bearer)
//	DELETE /api/notes/{id}      - delete a note (Bearer)
func (a *App) Router() http.Handler {
	router := mux.NewRouter()

	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", a.handleHealth).Methods("GET")
	api.HandleFunc("/login", a.handleLogin).Methods("POST")

	api.HandleFunc("/users", a.handleCreateUser).Methods("POST")
	api.HandleFunc("/users", a.handleListUsers).Methods("GET")

	api.HandleFunc("/notes", a.handleListNotes).Methods("GET")
	api.HandleFunc("/notes", a.requireUser(a.handleCreateNote)).Methods("POST")
	api.HandleFunc("/notes/{id}", a.handleGetNote).Methods("GET")
	api.HandleFunc("/notes/{id}", a.requireUser(a.handleUpdateNote)).Methods("PUT")
	api.HandleFunc("/notes/{id}", a.requireUser(a.handleDeleteNote)).Methods("DELETE")

	// Health check route outside the /api prefix, for load balancers.
	router.HandleFunc("/health", a.handleHealth).Methods("GET")

	router.Use(a.logRequests)

	return router
}

// logRequests emits one structured log line per request.
func (a *App) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		a.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

// Run starts the HTTP server and blocks until the context is cancelled or a
// fatal server error occurs. On cancellation the server drains in-flight
// requests for up to 5 seconds before shutting down.
func (a *App) Run(ctx context.Context, cmd *RunCommand) error {
	addr := fmt.Sprintf(":%s", a.config.ServerPort)
	a.log.Info().Str("addr", addr).Msg("starting jot server")

	server := &http.Server{
		Addr:    addr,
		Handler: a.Router(),
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.log.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-serverErr:
		return err
	}
}
