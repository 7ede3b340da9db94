package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/chris/star-tournaments/pkg/cache"
	"github.com/chris/star-tournaments/pkg/registration"
	"github.com/chris/star-tournaments/pkg/storage"
	"github.com/chris/star-tournaments/pkg/websockets"
	"github.com/go-chi/chi/v5"
)

// ApiHandler holds the application's dependencies for the HTTP surface.
// Reads go through the cache; the registration service owns the mutating
// register/unregister path.
type ApiHandler struct {
	Store         storage.ApiStore
	Cache         cache.Cache
	Registrations *registration.Service
	Publisher     websockets.Publisher
}

// NewApiHandler creates a new ApiHandler.
func NewApiHandler(store storage.ApiStore, c cache.Cache, registrations *registration.Service, publisher websockets.Publisher) *ApiHandler {
	return &ApiHandler{
		Store:         store,
		Cache:         c,
		Registrations: registrations,
		Publisher:     publisher,
	}
}

// Routes mounts all API routes on a fresh router.
func (h *ApiHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/tournaments", func(r chi.Router) {
		r.Get("/", h.ListTournaments)
		r.Post("/", h.CreateTournament)
		r.Route("/{tournamentId}", func(r chi.Router) {
			r.Get("/", h.GetTournamentById)
			r.Patch("/", h.UpdateTournament)
			r.Delete("/", h.DeleteTournament)
			r.Post("/register", h.Register)
			r.Post("/unregister", h.Unregister)
		})
	})

	r.Route("/users/{userId}", func(r chi.Router) {
		r.Get("/", h.GetUserById)
		r.Post("/balance", h.AdjustBalance)
	})

	return r
}

// respondJSON writes v as the JSON body with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

const notifyTimeout = 5 * time.Second

// notify publishes a notification best effort. It runs detached from the
// request: the mutation already committed, so a slow fan-out or a client
// disconnect must not hold up or cancel the publish. Failures are logged,
// never surfaced.
func (h *ApiHandler) notify(msg websockets.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	go func() {
		defer cancel()
		if err := h.Publisher.Publish(ctx, msg); err != nil {
			slog.Error("failed to publish notification", "type", msg.Type, "error", err)
		}
	}()
}

// invalidateTournamentCaches drops the single-tournament entry and every
// cached list variant after a tournament mutation.
func (h *ApiHandler) invalidateTournamentCaches(r *http.Request, tournamentID string) {
	ctx := r.Context()
	if err := h.Cache.Invalidate(ctx, cache.TournamentKey(tournamentID)); err != nil {
		slog.Error("failed to invalidate tournament cache", "tournamentId", tournamentID, "error", err)
	}
	if err := h.Cache.InvalidatePrefix(ctx, cache.TournamentListPrefix); err != nil {
		slog.Error("failed to invalidate tournament list cache", "error", err)
	}
}
