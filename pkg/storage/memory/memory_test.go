package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/chris/star-tournaments/pkg/models"
	"github.com/chris/star-tournaments/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTournament(id string, fee int64, max int) *models.Tournament {
	now := time.Now()
	return &models.Tournament{
		ID:              id,
		Title:           "Test Cup",
		EntryFee:        fee,
		MaxParticipants: max,
		Participants:    []string{},
		Status:          models.StatusUpcoming,
		StartTime:       now.Add(time.Hour),
		Version:         1,
		CreatedAt:       now,
	}
}

func TestRegisterUnregisterRoundTrip(t *testing.T) {
	store := New()
	ctx := context.Background()

	_, err := store.CreateTournament(ctx, newTournament("t-1", 100, 4))
	require.NoError(t, err)

	outcome, err := store.RegisterUser(ctx, "t-1", "u-1", 1000)
	require.NoError(t, err)
	assert.Equal(t, int64(900), outcome.User.Balance)
	assert.Equal(t, []string{"u-1"}, outcome.Tournament.Participants)
	assert.Equal(t, []string{"t-1"}, outcome.User.Enrolled)

	outcome, err = store.UnregisterUser(ctx, "t-1", "u-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), outcome.User.Balance)
	assert.Empty(t, outcome.Tournament.Participants)
	assert.Empty(t, outcome.User.Enrolled)
}

func TestRegisterPreconditions(t *testing.T) {
	ctx := context.Background()

	t.Run("Double Registration", func(t *testing.T) {
		store := New()
		store.CreateTournament(ctx, newTournament("t-1", 100, 4))

		_, err := store.RegisterUser(ctx, "t-1", "u-1", 1000)
		require.NoError(t, err)

		_, err = store.RegisterUser(ctx, "t-1", "u-1", 1000)
		assert.ErrorIs(t, err, storage.ErrAlreadyRegistered)

		// Only one debit happened.
		user, err := store.GetUser(ctx, "u-1")
		require.NoError(t, err)
		assert.Equal(t, int64(900), user.Balance)
	})

	t.Run("Insufficient Balance", func(t *testing.T) {
		store := New()
		store.CreateTournament(ctx, newTournament("t-1", 100, 4))

		_, err := store.RegisterUser(ctx, "t-1", "u-poor", 50)
		assert.ErrorIs(t, err, storage.ErrInsufficientBalance)

		user, err := store.GetUser(ctx, "u-poor")
		require.NoError(t, err)
		assert.Equal(t, int64(50), user.Balance)
		assert.Empty(t, user.Enrolled)
	})

	t.Run("Status Gate", func(t *testing.T) {
		store := New()
		store.CreateTournament(ctx, newTournament("t-1", 100, 4))
		_, err := store.TransitionTournamentStatus(ctx, "t-1", models.StatusUpcoming, models.StatusActive)
		require.NoError(t, err)

		_, err = store.RegisterUser(ctx, "t-1", "u-1", 1000)
		assert.ErrorIs(t, err, storage.ErrInvalidStatus)
	})

	t.Run("Unregister Frozen After Start", func(t *testing.T) {
		store := New()
		store.CreateTournament(ctx, newTournament("t-1", 100, 4))
		_, err := store.RegisterUser(ctx, "t-1", "u-1", 1000)
		require.NoError(t, err)

		_, err = store.TransitionTournamentStatus(ctx, "t-1", models.StatusUpcoming, models.StatusActive)
		require.NoError(t, err)

		// The fee stays committed once the tournament starts.
		_, err = store.UnregisterUser(ctx, "t-1", "u-1")
		assert.ErrorIs(t, err, storage.ErrInvalidStatus)

		user, _ := store.GetUser(ctx, "u-1")
		assert.Equal(t, int64(900), user.Balance)
	})

	t.Run("Unregister Not Registered", func(t *testing.T) {
		store := New()
		store.CreateTournament(ctx, newTournament("t-1", 100, 4))
		store.GetOrCreateUser(ctx, "u-1", 1000)

		_, err := store.UnregisterUser(ctx, "t-1", "u-1")
		assert.ErrorIs(t, err, storage.ErrNotRegistered)
	})
}

func TestConcurrentRegistrationCapacity(t *testing.T) {
	ctx := context.Background()
	const slots = 3
	const racers = 20

	store := New()
	_, err := store.CreateTournament(ctx, newTournament("t-race", 100, slots))
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = store.RegisterUser(ctx, "t-race", fmt.Sprintf("u-%d", i), 1000)
		}(i)
	}
	wg.Wait()

	var wins, capacityLosses int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, storage.ErrCapacityExceeded):
			capacityLosses++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, slots, wins)
	assert.Equal(t, racers-slots, capacityLosses)

	tournament, err := store.GetTournament(ctx, "t-race")
	require.NoError(t, err)
	assert.Len(t, tournament.Participants, slots)

	// Exactly the winners were debited.
	for i := 0; i < racers; i++ {
		user, err := store.GetUser(ctx, fmt.Sprintf("u-%d", i))
		require.NoError(t, err)
		if tournament.HasParticipant(user.ID) {
			assert.Equal(t, int64(900), user.Balance)
			assert.Equal(t, []string{"t-race"}, user.Enrolled)
		} else {
			assert.Equal(t, int64(1000), user.Balance)
			assert.Empty(t, user.Enrolled)
		}
	}
}

func TestConcurrentSingleSlot(t *testing.T) {
	// Two users race for the last slot; exactly one wins and only the winner
	// pays.
	ctx := context.Background()
	store := New()
	_, err := store.CreateTournament(ctx, newTournament("t-final", 100, 1))
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = store.RegisterUser(ctx, "t-final", fmt.Sprintf("racer-%d", i), 200)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, storage.ErrCapacityExceeded)
		}
	}
	assert.Equal(t, 1, winners)

	total := int64(0)
	for i := 0; i < 2; i++ {
		user, err := store.GetUser(ctx, fmt.Sprintf("racer-%d", i))
		require.NoError(t, err)
		total += user.Balance
	}
	// One fee debited across both balances.
	assert.Equal(t, int64(300), total)
}

func TestConcurrentSharedUserAndTournaments(t *testing.T) {
	// One user races into many tournaments while other users hit the same
	// tournaments. Exercises the tournament-then-user lock order from both
	// directions; a deadlock here hangs the test.
	ctx := context.Background()
	store := New()

	const tournaments = 8
	for i := 0; i < tournaments; i++ {
		_, err := store.CreateTournament(ctx, newTournament(fmt.Sprintf("t-%d", i), 10, 100))
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	for i := 0; i < tournaments; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_, err := store.RegisterUser(ctx, fmt.Sprintf("t-%d", i), "shared-user", 1000)
			assert.NoError(t, err)
		}(i)
		go func(i int) {
			defer wg.Done()
			_, err := store.RegisterUser(ctx, fmt.Sprintf("t-%d", i), fmt.Sprintf("other-%d", i), 1000)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	user, err := store.GetUser(ctx, "shared-user")
	require.NoError(t, err)
	assert.Len(t, user.Enrolled, tournaments)
	assert.Equal(t, int64(1000-10*tournaments), user.Balance)
}

func TestDeleteTournament(t *testing.T) {
	ctx := context.Background()

	t.Run("Refuses Populated Roster", func(t *testing.T) {
		store := New()
		store.CreateTournament(ctx, newTournament("t-1", 100, 4))
		_, err := store.RegisterUser(ctx, "t-1", "u-1", 1000)
		require.NoError(t, err)

		err = store.DeleteTournament(ctx, "t-1")
		assert.ErrorIs(t, err, storage.ErrInvalidStatus)
	})

	t.Run("Register After Delete", func(t *testing.T) {
		store := New()
		store.CreateTournament(ctx, newTournament("t-1", 100, 4))

		err := store.DeleteTournament(ctx, "t-1")
		require.NoError(t, err)

		_, err = store.RegisterUser(ctx, "t-1", "u-1", 1000)
		assert.ErrorIs(t, err, storage.ErrTournamentNotFound)
	})
}

func TestUpdateTournamentVersioning(t *testing.T) {
	ctx := context.Background()
	store := New()
	created, err := store.CreateTournament(ctx, newTournament("t-1", 100, 4))
	require.NoError(t, err)

	first := *created
	first.Title = "Renamed"
	updated, err := store.UpdateTournament(ctx, &first)
	require.NoError(t, err)
	assert.Equal(t, created.Version+1, updated.Version)

	// Writing from the stale snapshot loses.
	stale := *created
	stale.Title = "Stale Rename"
	_, err = store.UpdateTournament(ctx, &stale)
	assert.ErrorIs(t, err, storage.ErrTransactionConflict)
}

func TestGetOverdueTournaments(t *testing.T) {
	ctx := context.Background()
	store := New()

	past := newTournament("t-overdue", 100, 4)
	past.StartTime = time.Now().Add(-time.Hour)
	store.CreateTournament(ctx, past)

	future := newTournament("t-future", 100, 4)
	store.CreateTournament(ctx, future)

	overdue, err := store.GetOverdueTournaments(ctx, time.Now())
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, "t-overdue", overdue[0].ID)
}

func TestAdjustUserBalance(t *testing.T) {
	ctx := context.Background()
	store := New()
	store.GetOrCreateUser(ctx, "u-1", 100)

	user, err := store.AdjustUserBalance(ctx, "u-1", 50)
	require.NoError(t, err)
	assert.Equal(t, int64(150), user.Balance)

	_, err = store.AdjustUserBalance(ctx, "u-1", -200)
	assert.ErrorIs(t, err, storage.ErrInsufficientBalance)

	user, err = store.GetUser(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, int64(150), user.Balance)
}

func TestConnections(t *testing.T) {
	ctx := context.Background()
	store := New()

	require.NoError(t, store.AddConnection(ctx, "conn-1"))
	require.NoError(t, store.AddConnection(ctx, "conn-2"))
	require.NoError(t, store.RemoveConnection(ctx, "conn-1"))

	conns, err := store.GetAllConnections(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"conn-2"}, conns)
}
