package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/chris/star-tournaments/pkg/api"
	"github.com/chris/star-tournaments/pkg/mapping"
	"github.com/chris/star-tournaments/pkg/storage"
	"github.com/go-chi/chi/v5"
)

// DefaultStartingBalance is the stars granted when a user record is lazily
// created on first access.
const DefaultStartingBalance = 1000

// GetUserById handles the logic for retrieving a user, lazily creating them
// with the starting balance on first access.
func (h *ApiHandler) GetUserById(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	user, err := h.Store.GetOrCreateUser(r.Context(), userID, DefaultStartingBalance)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve user: %v", err), http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, mapping.ToApiUser(user))
}

// AdjustBalance handles awarding or deducting stars outside of the
// registration flow, e.g. purchases and prize payouts.
func (h *ApiHandler) AdjustBalance(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	var req api.BalanceAdjustment
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.Amount <= 0 {
		http.Error(w, "amount must be positive", http.StatusBadRequest)
		return
	}

	var delta int64
	switch req.Op {
	case "award":
		delta = req.Amount
	case "deduct":
		delta = -req.Amount
	default:
		http.Error(w, `op must be "award" or "deduct"`, http.StatusBadRequest)
		return
	}

	user, err := h.Store.AdjustUserBalance(r.Context(), userID, delta)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrUserNotFound):
			http.Error(w, "User not found", http.StatusNotFound)
		case errors.Is(err, storage.ErrInsufficientBalance):
			http.Error(w, "Insufficient balance", http.StatusUnprocessableEntity)
		default:
			http.Error(w, fmt.Sprintf("Failed to adjust balance: %v", err), http.StatusInternalServerError)
		}
		return
	}

	respondJSON(w, http.StatusOK, mapping.ToApiUser(user))
}
