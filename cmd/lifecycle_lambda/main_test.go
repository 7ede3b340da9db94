package main

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/chris/star-tournaments/pkg/models"
	"github.com/chris/star-tournaments/pkg/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingScheduler struct {
	transitions []models.StatusTransition
	delays      []time.Duration
}

func (s *recordingScheduler) ScheduleTransition(ctx context.Context, transition models.StatusTransition, delay time.Duration) error {
	s.transitions = append(s.transitions, transition)
	s.delays = append(s.delays, delay)
	return nil
}

func newTestHandler() (*handler, *memory.Store, *recordingScheduler) {
	store := memory.New()
	sched := &recordingScheduler{}
	return &handler{store: store, sched: sched}, store, sched
}

func seedTournament(t *testing.T, store *memory.Store, id string, status models.TournamentStatus) {
	t.Helper()
	_, err := store.CreateTournament(context.Background(), &models.Tournament{
		ID:              id,
		Title:           "Weekend Cup",
		EntryFee:        100,
		MaxParticipants: 8,
		Status:          status,
		StartTime:       time.Now().Add(-time.Minute),
		Version:         1,
	})
	require.NoError(t, err)
}

func transitionMessage(t *testing.T, transition models.StatusTransition) events.SQSMessage {
	t.Helper()
	body, err := json.Marshal(transition)
	require.NoError(t, err)
	return events.SQSMessage{MessageId: "m-" + transition.TournamentID, Body: string(body)}
}

func TestHandleRequest(t *testing.T) {
	t.Run("Applies Due Transition", func(t *testing.T) {
		h, store, _ := newTestHandler()
		seedTournament(t, store, "t-1", models.StatusUpcoming)

		err := h.HandleRequest(context.Background(), events.SQSEvent{Records: []events.SQSMessage{
			transitionMessage(t, models.StatusTransition{
				TournamentID: "t-1",
				From:         models.StatusUpcoming,
				To:           models.StatusActive,
				Due:          time.Now().Add(-time.Minute),
			}),
		}})

		assert.NoError(t, err)
		updated, err := store.GetTournament(context.Background(), "t-1")
		require.NoError(t, err)
		assert.Equal(t, models.StatusActive, updated.Status)
	})

	t.Run("Re-Enqueues Early Arrival", func(t *testing.T) {
		h, store, sched := newTestHandler()
		seedTournament(t, store, "t-1", models.StatusUpcoming)

		err := h.HandleRequest(context.Background(), events.SQSEvent{Records: []events.SQSMessage{
			transitionMessage(t, models.StatusTransition{
				TournamentID: "t-1",
				From:         models.StatusUpcoming,
				To:           models.StatusActive,
				Due:          time.Now().Add(time.Hour),
			}),
		}})

		assert.NoError(t, err)
		require.Len(t, sched.transitions, 1)
		assert.Equal(t, "t-1", sched.transitions[0].TournamentID)
		assert.Greater(t, sched.delays[0], 55*time.Minute)
		untouched, err := store.GetTournament(context.Background(), "t-1")
		require.NoError(t, err)
		assert.Equal(t, models.StatusUpcoming, untouched.Status)
	})

	t.Run("Drops Unreadable Message", func(t *testing.T) {
		h, store, _ := newTestHandler()
		seedTournament(t, store, "t-1", models.StatusUpcoming)

		// The garbage record must not block the valid one behind it, and
		// must not be returned for redelivery.
		err := h.HandleRequest(context.Background(), events.SQSEvent{Records: []events.SQSMessage{
			{MessageId: "m-garbage", Body: "not json"},
			transitionMessage(t, models.StatusTransition{
				TournamentID: "t-1",
				From:         models.StatusUpcoming,
				To:           models.StatusActive,
				Due:          time.Now().Add(-time.Minute),
			}),
		}})

		assert.NoError(t, err)
		updated, err := store.GetTournament(context.Background(), "t-1")
		require.NoError(t, err)
		assert.Equal(t, models.StatusActive, updated.Status)
	})

	t.Run("Drops Illegal Status Pair", func(t *testing.T) {
		h, store, _ := newTestHandler()
		seedTournament(t, store, "t-1", models.StatusUpcoming)

		err := h.HandleRequest(context.Background(), events.SQSEvent{Records: []events.SQSMessage{
			transitionMessage(t, models.StatusTransition{
				TournamentID: "t-1",
				From:         models.StatusUpcoming,
				To:           models.StatusCompleted,
				Due:          time.Now().Add(-time.Minute),
			}),
		}})

		assert.NoError(t, err)
		untouched, err := store.GetTournament(context.Background(), "t-1")
		require.NoError(t, err)
		assert.Equal(t, models.StatusUpcoming, untouched.Status)
	})

	t.Run("Tolerates Already Applied Transition", func(t *testing.T) {
		h, store, _ := newTestHandler()
		seedTournament(t, store, "t-1", models.StatusActive)

		err := h.HandleRequest(context.Background(), events.SQSEvent{Records: []events.SQSMessage{
			transitionMessage(t, models.StatusTransition{
				TournamentID: "t-1",
				From:         models.StatusUpcoming,
				To:           models.StatusActive,
				Due:          time.Now().Add(-time.Minute),
			}),
		}})

		assert.NoError(t, err)
	})

	t.Run("Tolerates Deleted Tournament", func(t *testing.T) {
		h, _, _ := newTestHandler()

		err := h.HandleRequest(context.Background(), events.SQSEvent{Records: []events.SQSMessage{
			transitionMessage(t, models.StatusTransition{
				TournamentID: "t-gone",
				From:         models.StatusUpcoming,
				To:           models.StatusActive,
				Due:          time.Now().Add(-time.Minute),
			}),
		}})

		assert.NoError(t, err)
	})
}
