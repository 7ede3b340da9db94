// Package registration owns the business rules for moving a user between
// not-enrolled and enrolled. It is the only component allowed to mutate a
// user's balance and a tournament's roster together, and it never reads
// through the cache on the mutating path — the store is the source of truth.
package registration

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chris/star-tournaments/pkg/cache"
	"github.com/chris/star-tournaments/pkg/models"
	"github.com/chris/star-tournaments/pkg/storage"
	"github.com/chris/star-tournaments/pkg/websockets"
)

const (
	maxAttempts       = 3
	initialRetryDelay = 50 * time.Millisecond
	notifyTimeout     = 5 * time.Second
)

// Service implements the register/unregister protocol on top of a
// RegistrationStore.
type Service struct {
	store           storage.RegistrationStore
	cache           cache.Cache
	publisher       websockets.Publisher
	startingBalance int64
}

// New creates a Service. startingBalance is the stars a user receives when
// lazily created on their first registration attempt.
func New(store storage.RegistrationStore, c cache.Cache, publisher websockets.Publisher, startingBalance int64) *Service {
	return &Service{
		store:           store,
		cache:           c,
		publisher:       publisher,
		startingBalance: startingBalance,
	}
}

// Register reserves a participant slot for the user, debiting the entry fee.
// Returns the post-commit snapshots of both entities, or a typed error from
// the storage taxonomy.
func (s *Service) Register(ctx context.Context, tournamentID, userID string) (*models.RegistrationOutcome, error) {
	if tournamentID == "" || userID == "" {
		return nil, fmt.Errorf("%w: tournament ID and user ID are required", storage.ErrValidation)
	}

	outcome, err := s.withRetry(ctx, func(ctx context.Context) (*models.RegistrationOutcome, error) {
		return s.store.RegisterUser(ctx, tournamentID, userID, s.startingBalance)
	})
	if err != nil {
		return nil, err
	}

	s.afterCommit(outcome, websockets.MessageTypeRegistration)
	return outcome, nil
}

// Unregister releases the user's slot and refunds the entry fee.
func (s *Service) Unregister(ctx context.Context, tournamentID, userID string) (*models.RegistrationOutcome, error) {
	if tournamentID == "" || userID == "" {
		return nil, fmt.Errorf("%w: tournament ID and user ID are required", storage.ErrValidation)
	}

	outcome, err := s.withRetry(ctx, func(ctx context.Context) (*models.RegistrationOutcome, error) {
		return s.store.UnregisterUser(ctx, tournamentID, userID)
	})
	if err != nil {
		return nil, err
	}

	s.afterCommit(outcome, websockets.MessageTypeUnregistration)
	return outcome, nil
}

// withRetry re-runs the operation on transaction conflicts with a doubling
// delay. Each attempt starts from a fresh read inside the store, so the
// preconditions are re-evaluated rather than assumed still true.
func (s *Service) withRetry(ctx context.Context, op func(ctx context.Context) (*models.RegistrationOutcome, error)) (*models.RegistrationOutcome, error) {
	delay := initialRetryDelay
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		outcome, err := op(ctx)
		if err == nil {
			return outcome, nil
		}
		if !storage.IsRetryable(err) {
			return nil, err
		}
		lastErr = err
		if err := sleepWithContext(ctx, delay); err != nil {
			return nil, err
		}
		delay *= 2
	}
	return nil, lastErr
}

// afterCommit invalidates the read caches and dispatches the notification.
// Both happen strictly after the commit; the notification is fire-and-forget
// so a slow websocket fan-out never holds up the caller.
func (s *Service) afterCommit(outcome *models.RegistrationOutcome, msgType websockets.MessageType) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)

	if err := s.cache.Invalidate(ctx, cache.TournamentKey(outcome.Tournament.ID)); err != nil {
		slog.Error("failed to invalidate tournament cache", "tournamentId", outcome.Tournament.ID, "error", err)
	}
	if err := s.cache.InvalidatePrefix(ctx, cache.TournamentListPrefix); err != nil {
		slog.Error("failed to invalidate tournament list cache", "error", err)
	}

	go func() {
		defer cancel()
		if err := s.publisher.Publish(ctx, websockets.RegistrationMessage(msgType, outcome)); err != nil {
			slog.Error("failed to publish registration notification",
				"type", msgType, "tournamentId", outcome.Tournament.ID, "userId", outcome.User.ID, "error", err)
		}
	}()
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
