package storage

import (
	"context"

	"github.com/chris/star-tournaments/pkg/models"
)

// TournamentReader defines the interface for reading tournament data.
type TournamentReader interface {
	// GetTournament retrieves a tournament by its ID.
	GetTournament(ctx context.Context, tournamentID string) (*models.Tournament, error)

	// ListTournaments retrieves all tournaments.
	ListTournaments(ctx context.Context) ([]models.Tournament, error)
}

// TournamentManager defines the interface for administrative tournament CRUD.
type TournamentManager interface {
	// CreateTournament stores a new tournament and returns it.
	CreateTournament(ctx context.Context, t *models.Tournament) (*models.Tournament, error)

	// UpdateTournament applies descriptive and capacity/fee changes. Fee and
	// capacity may only change while the tournament is upcoming.
	UpdateTournament(ctx context.Context, t *models.Tournament) (*models.Tournament, error)

	// DeleteTournament removes an upcoming tournament with an empty roster.
	DeleteTournament(ctx context.Context, tournamentID string) error
}

// TournamentStore combines the reader and manager interfaces.
type TournamentStore interface {
	TournamentReader
	TournamentManager
}
