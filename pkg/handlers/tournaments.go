package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/chris/star-tournaments/pkg/api"
	"github.com/chris/star-tournaments/pkg/cache"
	"github.com/chris/star-tournaments/pkg/mapping"
	"github.com/chris/star-tournaments/pkg/models"
	"github.com/chris/star-tournaments/pkg/storage"
	"github.com/chris/star-tournaments/pkg/websockets"
	"github.com/go-chi/chi/v5"
)

// CreateTournament handles the logic for creating a new tournament.
func (h *ApiHandler) CreateTournament(w http.ResponseWriter, r *http.Request) {
	var req api.NewTournament
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if err := validateNewTournament(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.Store.CreateTournament(r.Context(), mapping.ToDomainNewTournament(&req))
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to create tournament: %v", err), http.StatusInternalServerError)
		return
	}

	h.invalidateTournamentCaches(r, created.ID)
	h.notify(websockets.Message{
		Type:         websockets.MessageTypeCreated,
		Tournament:   created,
		TournamentID: created.ID,
	})

	respondJSON(w, http.StatusCreated, mapping.ToApiTournament(created))
}

// ListTournaments handles the logic for retrieving all tournaments, served
// through the read cache.
func (h *ApiHandler) ListTournaments(w http.ResponseWriter, r *http.Request) {
	body, err := h.Cache.GetOrLoad(r.Context(), cache.TournamentListKey, cache.DefaultTTL, func(ctx context.Context) ([]byte, error) {
		tournaments, err := h.Store.ListTournaments(ctx)
		if err != nil {
			return nil, err
		}
		apiTournaments := make([]*api.Tournament, len(tournaments))
		for i := range tournaments {
			apiTournaments[i] = mapping.ToApiTournament(&tournaments[i])
		}
		return json.Marshal(apiTournaments)
	})
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve tournaments: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// GetTournamentById handles the logic for retrieving a tournament by its ID,
// served through the read cache.
func (h *ApiHandler) GetTournamentById(w http.ResponseWriter, r *http.Request) {
	tournamentID := chi.URLParam(r, "tournamentId")

	body, err := h.Cache.GetOrLoad(r.Context(), cache.TournamentKey(tournamentID), cache.DefaultTTL, func(ctx context.Context) ([]byte, error) {
		t, err := h.Store.GetTournament(ctx, tournamentID)
		if err != nil {
			return nil, err
		}
		return json.Marshal(mapping.ToApiTournament(t))
	})
	if err != nil {
		if errors.Is(err, storage.ErrTournamentNotFound) {
			http.Error(w, "Tournament not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve tournament: %v", err), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// UpdateTournament handles the logic for updating a tournament. Fee,
// capacity and schedule changes are only allowed while the tournament is
// still upcoming; descriptive fields may change at any time.
func (h *ApiHandler) UpdateTournament(w http.ResponseWriter, r *http.Request) {
	tournamentID := chi.URLParam(r, "tournamentId")

	var req api.UpdateTournament
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	current, err := h.Store.GetTournament(r.Context(), tournamentID)
	if err != nil {
		if errors.Is(err, storage.ErrTournamentNotFound) {
			http.Error(w, "Tournament not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve tournament: %v", err), http.StatusInternalServerError)
		}
		return
	}

	restricted := mapping.ApplyTournamentUpdate(current, &req)
	if restricted && current.Status != models.StatusUpcoming {
		http.Error(w, "Fee, capacity and schedule are frozen once a tournament leaves upcoming", http.StatusConflict)
		return
	}
	if err := validateTournamentFields(current.EntryFee, current.Prize, current.MaxParticipants); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if current.MaxParticipants < len(current.Participants) {
		http.Error(w, "max_participants cannot drop below the current roster size", http.StatusBadRequest)
		return
	}

	updated, err := h.Store.UpdateTournament(r.Context(), current)
	if err != nil {
		if errors.Is(err, storage.ErrTransactionConflict) {
			http.Error(w, "Tournament changed concurrently, retry", http.StatusConflict)
		} else {
			http.Error(w, fmt.Sprintf("Failed to update tournament: %v", err), http.StatusInternalServerError)
		}
		return
	}

	h.invalidateTournamentCaches(r, updated.ID)
	h.notify(websockets.Message{
		Type:         websockets.MessageTypeUpdated,
		Tournament:   updated,
		TournamentID: updated.ID,
	})

	respondJSON(w, http.StatusOK, mapping.ToApiTournament(updated))
}

// DeleteTournament handles the logic for deleting a tournament.
func (h *ApiHandler) DeleteTournament(w http.ResponseWriter, r *http.Request) {
	tournamentID := chi.URLParam(r, "tournamentId")

	if err := h.Store.DeleteTournament(r.Context(), tournamentID); err != nil {
		switch {
		case errors.Is(err, storage.ErrTournamentNotFound):
			http.Error(w, "Tournament not found", http.StatusNotFound)
		case errors.Is(err, storage.ErrInvalidStatus):
			http.Error(w, "Only upcoming tournaments with an empty roster can be deleted", http.StatusConflict)
		default:
			http.Error(w, fmt.Sprintf("Failed to delete tournament: %v", err), http.StatusInternalServerError)
		}
		return
	}

	h.invalidateTournamentCaches(r, tournamentID)
	h.notify(websockets.Message{
		Type:         websockets.MessageTypeDeleted,
		TournamentID: tournamentID,
	})

	w.WriteHeader(http.StatusNoContent)
}

func validateNewTournament(req *api.NewTournament) error {
	if req.Title == "" {
		return errors.New("title is required")
	}
	if req.StartTime.IsZero() {
		return errors.New("start_time is required")
	}
	if !req.EndTime.IsZero() && !req.EndTime.After(req.StartTime) {
		return errors.New("end_time must be after start_time")
	}
	return validateTournamentFields(req.EntryFee, req.Prize, req.MaxParticipants)
}

func validateTournamentFields(entryFee, prize int64, maxParticipants int) error {
	if entryFee < 0 {
		return errors.New("entry_fee must be non-negative")
	}
	if prize < 0 {
		return errors.New("prize must be non-negative")
	}
	if maxParticipants <= 0 {
		return errors.New("max_participants must be positive")
	}
	return nil
}
