package storage

import (
	"context"

	"github.com/chris/star-tournaments/pkg/models"
)

// RegistrationStore defines the privileged interface for the atomic
// register/unregister protocol. It is the only path that may mutate a user's
// balance and a tournament's roster together; both rows change in one
// transaction or not at all.
//
// Implementations must serialize concurrent operations touching the same
// tournament or user, and must re-validate every precondition at commit time.
// A lost race surfaces as ErrTransactionConflict; callers retry from scratch.
type RegistrationStore interface {
	// RegisterUser debits the entry fee, appends the user to the roster and
	// records the enrollment, atomically. The user is lazily created with
	// startingBalance if they do not exist yet.
	RegisterUser(ctx context.Context, tournamentID, userID string, startingBalance int64) (*models.RegistrationOutcome, error)

	// UnregisterUser refunds the entry fee and removes the user from the
	// roster and their enrollment set, atomically.
	UnregisterUser(ctx context.Context, tournamentID, userID string) (*models.RegistrationOutcome, error)
}
