package storage

import (
	"context"

	"github.com/chris/star-tournaments/pkg/models"
)

// UserStore defines the interface for managing users and their star balances.
type UserStore interface {
	// GetUser retrieves a user by their ID.
	GetUser(ctx context.Context, userID string) (*models.User, error)

	// GetOrCreateUser retrieves a user, lazily creating them with the given
	// starting balance on first access. The identity layer has already
	// verified the ID, so creation needs no further checks.
	GetOrCreateUser(ctx context.Context, userID string, startingBalance int64) (*models.User, error)

	// AdjustUserBalance awards (positive delta) or deducts (negative delta)
	// stars. The balance never goes negative; a deduction past zero fails
	// with ErrInsufficientBalance.
	AdjustUserBalance(ctx context.Context, userID string, delta int64) (*models.User, error)
}
