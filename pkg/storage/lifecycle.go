package storage

import (
	"context"
	"time"

	"github.com/chris/star-tournaments/pkg/models"
)

// LifecycleStore defines the privileged interface for driving tournament
// status transitions. Transitions are monotonic (upcoming -> active ->
// completed); the registration engine never moves a status itself, it only
// rejects roster changes against non-upcoming tournaments.
type LifecycleStore interface {
	// TransitionTournamentStatus moves a tournament from one status to its
	// successor. The move only applies if the tournament is still in the
	// `from` status; a tournament that already moved on is not an error for
	// the caller to act on, so it is reported as ErrInvalidStatus.
	TransitionTournamentStatus(ctx context.Context, tournamentID string, from, to models.TournamentStatus) (*models.Tournament, error)

	// GetOverdueTournaments retrieves tournaments whose scheduled transition
	// time has passed but whose status has not moved yet: upcoming past
	// start_time, or active past end_time.
	GetOverdueTournaments(ctx context.Context, now time.Time) ([]models.Tournament, error)
}
