package models

import (
	"time"
)

// TournamentStatus defines the lifecycle states of a tournament.
type TournamentStatus string

const (
	StatusUpcoming  TournamentStatus = "upcoming"
	StatusActive    TournamentStatus = "active"
	StatusCompleted TournamentStatus = "completed"
)

// NextStatus returns the only legal successor state, or "" if the status is
// terminal. Transitions are monotonic: upcoming -> active -> completed.
func (s TournamentStatus) NextStatus() TournamentStatus {
	switch s {
	case StatusUpcoming:
		return StatusActive
	case StatusActive:
		return StatusCompleted
	}
	return ""
}

// Tournament represents the internal domain model for a tournament.
// It includes dynamodbav tags for marshalling.
type Tournament struct {
	ID              string           `json:"id" dynamodbav:"id"`
	Title           string           `json:"title" dynamodbav:"title"`
	Description     string           `json:"description,omitempty" dynamodbav:"description"`
	EntryFee        int64            `json:"entry_fee" dynamodbav:"entry_fee"`
	Prize           int64            `json:"prize" dynamodbav:"prize"`
	MaxParticipants int              `json:"max_participants" dynamodbav:"max_participants"`
	Participants    []string         `json:"participants" dynamodbav:"participants"`
	Status          TournamentStatus `json:"status" dynamodbav:"status"`
	StartTime       time.Time        `json:"start_time" dynamodbav:"start_time"`
	EndTime         time.Time        `json:"end_time" dynamodbav:"end_time"`
	Version         int64            `json:"-" dynamodbav:"version"`
	CreatedAt       time.Time        `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at" dynamodbav:"updated_at"`
}

// HasParticipant reports whether the user is on the tournament's roster.
func (t *Tournament) HasParticipant(userID string) bool {
	for _, id := range t.Participants {
		if id == userID {
			return true
		}
	}
	return false
}

// IsFull reports whether every participant slot is taken.
func (t *Tournament) IsFull() bool {
	return len(t.Participants) >= t.MaxParticipants
}

// User represents the internal domain model for a user and their star balance.
type User struct {
	ID        string    `json:"id" dynamodbav:"id"`
	Balance   int64     `json:"balance" dynamodbav:"balance"`
	Enrolled  []string  `json:"enrolled" dynamodbav:"enrolled"`
	Version   int64     `json:"-" dynamodbav:"version"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
}

// IsEnrolled reports whether the user is enrolled in the tournament.
func (u *User) IsEnrolled(tournamentID string) bool {
	for _, id := range u.Enrolled {
		if id == tournamentID {
			return true
		}
	}
	return false
}

// RegistrationOutcome carries the post-commit snapshots of both entities
// touched by a successful register/unregister operation.
type RegistrationOutcome struct {
	Tournament *Tournament
	User       *User
}

// StatusTransition is the message enqueued for a deferred tournament status
// change, consumed by the lifecycle lambda.
type StatusTransition struct {
	TournamentID string           `json:"tournament_id"`
	From         TournamentStatus `json:"from"`
	To           TournamentStatus `json:"to"`
	Due          time.Time        `json:"due"`
}
