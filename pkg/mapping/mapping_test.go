package mapping

import (
	"testing"
	"time"

	"github.com/chris/star-tournaments/pkg/api"
	"github.com/chris/star-tournaments/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestToDomainNewTournament(t *testing.T) {
	start := time.Now().Add(time.Hour)
	tournament := ToDomainNewTournament(&api.NewTournament{
		Title:           "Cup",
		EntryFee:        100,
		MaxParticipants: 8,
		StartTime:       start,
	})

	assert.NotEmpty(t, tournament.ID)
	assert.Equal(t, models.StatusUpcoming, tournament.Status)
	assert.Equal(t, int64(1), tournament.Version)
	assert.NotNil(t, tournament.Participants)
	assert.Empty(t, tournament.Participants)
}

func TestApplyTournamentUpdate(t *testing.T) {
	base := func() *models.Tournament {
		return &models.Tournament{
			Title:           "Cup",
			EntryFee:        100,
			MaxParticipants: 8,
			Status:          models.StatusUpcoming,
			StartTime:       time.Now().Add(time.Hour),
		}
	}

	t.Run("Descriptive Only", func(t *testing.T) {
		tournament := base()
		title := "Renamed"
		restricted := ApplyTournamentUpdate(tournament, &api.UpdateTournament{Title: &title})

		assert.False(t, restricted)
		assert.Equal(t, "Renamed", tournament.Title)
	})

	t.Run("Fee Change Is Restricted", func(t *testing.T) {
		tournament := base()
		fee := int64(250)
		restricted := ApplyTournamentUpdate(tournament, &api.UpdateTournament{EntryFee: &fee})

		assert.True(t, restricted)
		assert.Equal(t, int64(250), tournament.EntryFee)
	})

	t.Run("Unchanged Value Is Not Restricted", func(t *testing.T) {
		tournament := base()
		fee := tournament.EntryFee
		restricted := ApplyTournamentUpdate(tournament, &api.UpdateTournament{EntryFee: &fee})

		assert.False(t, restricted)
	})
}

func TestToApiUserNormalizesNilSlices(t *testing.T) {
	user := ToApiUser(&models.User{ID: "u-1", Balance: 100})
	assert.NotNil(t, user.Enrolled)
	assert.Empty(t, user.Enrolled)
}
