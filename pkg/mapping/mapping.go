// Package mapping converts between the API wire types and the internal
// domain models.
package mapping

import (
	"time"

	"github.com/chris/star-tournaments/pkg/api"
	"github.com/chris/star-tournaments/pkg/models"
	"github.com/google/uuid"
)

// ToApiTournament maps a domain tournament to its API representation.
func ToApiTournament(t *models.Tournament) *api.Tournament {
	participants := t.Participants
	if participants == nil {
		participants = []string{}
	}
	return &api.Tournament{
		Id:              t.ID,
		Title:           t.Title,
		Description:     t.Description,
		EntryFee:        t.EntryFee,
		Prize:           t.Prize,
		MaxParticipants: t.MaxParticipants,
		Participants:    participants,
		Status:          string(t.Status),
		StartTime:       t.StartTime,
		EndTime:         t.EndTime,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

// ToApiUser maps a domain user to its API representation.
func ToApiUser(u *models.User) *api.User {
	enrolled := u.Enrolled
	if enrolled == nil {
		enrolled = []string{}
	}
	return &api.User{
		Id:        u.ID,
		Balance:   u.Balance,
		Enrolled:  enrolled,
		CreatedAt: u.CreatedAt,
	}
}

// ToDomainNewTournament builds a fresh domain tournament from a create
// request, assigning the server-side fields.
func ToDomainNewTournament(req *api.NewTournament) *models.Tournament {
	now := time.Now()
	return &models.Tournament{
		ID:              uuid.New().String(),
		Title:           req.Title,
		Description:     req.Description,
		EntryFee:        req.EntryFee,
		Prize:           req.Prize,
		MaxParticipants: req.MaxParticipants,
		Participants:    []string{},
		Status:          models.StatusUpcoming,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Version:         1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// ApplyTournamentUpdate copies the non-nil request fields onto the domain
// tournament. It reports whether any of the fee/capacity/schedule fields
// changed, which are only editable while the tournament is upcoming.
func ApplyTournamentUpdate(t *models.Tournament, req *api.UpdateTournament) bool {
	restricted := false
	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.EntryFee != nil && *req.EntryFee != t.EntryFee {
		t.EntryFee = *req.EntryFee
		restricted = true
	}
	if req.Prize != nil {
		t.Prize = *req.Prize
	}
	if req.MaxParticipants != nil && *req.MaxParticipants != t.MaxParticipants {
		t.MaxParticipants = *req.MaxParticipants
		restricted = true
	}
	if req.StartTime != nil && !req.StartTime.Equal(t.StartTime) {
		t.StartTime = *req.StartTime
		restricted = true
	}
	if req.EndTime != nil && !req.EndTime.Equal(t.EndTime) {
		t.EndTime = *req.EndTime
		restricted = true
	}
	return restricted
}
