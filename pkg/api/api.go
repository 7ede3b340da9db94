// Package api holds the wire types exposed over HTTP. They are kept separate
// from the domain models so storage-only fields (versions) never leak into
// responses and request shapes can evolve independently.
package api

import "time"

// Tournament is the API representation of a tournament.
type Tournament struct {
	Id              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	EntryFee        int64     `json:"entry_fee"`
	Prize           int64     `json:"prize"`
	MaxParticipants int       `json:"max_participants"`
	Participants    []string  `json:"participants"`
	Status          string    `json:"status"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewTournament is the request body for creating a tournament.
type NewTournament struct {
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	EntryFee        int64     `json:"entry_fee"`
	Prize           int64     `json:"prize"`
	MaxParticipants int       `json:"max_participants"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time,omitempty"`
}

// UpdateTournament is the request body for updating a tournament. Nil fields
// are left unchanged.
type UpdateTournament struct {
	Title           *string    `json:"title,omitempty"`
	Description     *string    `json:"description,omitempty"`
	EntryFee        *int64     `json:"entry_fee,omitempty"`
	Prize           *int64     `json:"prize,omitempty"`
	MaxParticipants *int       `json:"max_participants,omitempty"`
	StartTime       *time.Time `json:"start_time,omitempty"`
	EndTime         *time.Time `json:"end_time,omitempty"`
}

// User is the API representation of a user.
type User struct {
	Id        string    `json:"id"`
	Balance   int64     `json:"balance"`
	Enrolled  []string  `json:"enrolled"`
	CreatedAt time.Time `json:"created_at"`
}

// BalanceAdjustment is the request body for awarding or deducting stars.
type BalanceAdjustment struct {
	Op     string `json:"op"` // "award" or "deduct"
	Amount int64  `json:"amount"`
}

// RegistrationResult is the discriminated result of a register/unregister
// call: either ok with both post-commit snapshots, or not ok with a machine
// readable error kind and a human readable message.
type RegistrationResult struct {
	Ok         bool        `json:"ok"`
	Tournament *Tournament `json:"tournament,omitempty"`
	User       *User       `json:"user,omitempty"`
	ErrorKind  string      `json:"error_kind,omitempty"`
	Message    string      `json:"message,omitempty"`
}

// Error kinds carried by RegistrationResult.
const (
	ErrorKindNotFound            = "NotFound"
	ErrorKindInvalidStatus       = "InvalidStatus"
	ErrorKindAlreadyRegistered   = "AlreadyRegistered"
	ErrorKindNotRegistered       = "NotRegistered"
	ErrorKindCapacityExceeded    = "CapacityExceeded"
	ErrorKindInsufficientBalance = "InsufficientBalance"
	ErrorKindValidation          = "ValidationError"
	ErrorKindPersistence         = "PersistenceError"
)
