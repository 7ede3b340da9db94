package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/chris/star-tournaments/pkg/api"
	"github.com/chris/star-tournaments/pkg/mapping"
	"github.com/chris/star-tournaments/pkg/models"
	"github.com/chris/star-tournaments/pkg/storage"
	"github.com/go-chi/chi/v5"
)

type registrationRequest struct {
	UserID string `json:"user_id"`
}

// Register handles a user's attempt to claim a slot in a tournament.
func (h *ApiHandler) Register(w http.ResponseWriter, r *http.Request) {
	tournamentID := chi.URLParam(r, "tournamentId")

	var req registrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	outcome, err := h.Registrations.Register(r.Context(), tournamentID, req.UserID)
	if err != nil {
		writeRegistrationError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, registrationSuccess(outcome))
}

// Unregister handles a user withdrawing from a tournament.
func (h *ApiHandler) Unregister(w http.ResponseWriter, r *http.Request) {
	tournamentID := chi.URLParam(r, "tournamentId")

	var req registrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	outcome, err := h.Registrations.Unregister(r.Context(), tournamentID, req.UserID)
	if err != nil {
		writeRegistrationError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, registrationSuccess(outcome))
}

func registrationSuccess(outcome *models.RegistrationOutcome) api.RegistrationResult {
	return api.RegistrationResult{
		Ok:         true,
		Tournament: mapping.ToApiTournament(outcome.Tournament),
		User:       mapping.ToApiUser(outcome.User),
	}
}

// writeRegistrationError maps the storage error taxonomy onto HTTP statuses
// and the machine readable error kinds clients key off.
func writeRegistrationError(w http.ResponseWriter, err error) {
	var kind string
	var status int

	switch {
	case errors.Is(err, storage.ErrTournamentNotFound), errors.Is(err, storage.ErrUserNotFound):
		kind, status = api.ErrorKindNotFound, http.StatusNotFound
	case errors.Is(err, storage.ErrInvalidStatus):
		kind, status = api.ErrorKindInvalidStatus, http.StatusConflict
	case errors.Is(err, storage.ErrAlreadyRegistered):
		kind, status = api.ErrorKindAlreadyRegistered, http.StatusConflict
	case errors.Is(err, storage.ErrNotRegistered):
		kind, status = api.ErrorKindNotRegistered, http.StatusConflict
	case errors.Is(err, storage.ErrCapacityExceeded):
		kind, status = api.ErrorKindCapacityExceeded, http.StatusConflict
	case errors.Is(err, storage.ErrInsufficientBalance):
		kind, status = api.ErrorKindInsufficientBalance, http.StatusUnprocessableEntity
	case errors.Is(err, storage.ErrValidation):
		kind, status = api.ErrorKindValidation, http.StatusBadRequest
	case errors.Is(err, storage.ErrTransactionConflict):
		kind, status = api.ErrorKindPersistence, http.StatusServiceUnavailable
	default:
		kind, status = api.ErrorKindPersistence, http.StatusInternalServerError
	}

	respondJSON(w, status, api.RegistrationResult{
		Ok:        false,
		ErrorKind: kind,
		Message:   err.Error(),
	})
}
