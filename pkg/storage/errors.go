package storage

import "errors"

// Business-rule violations. These are returned as typed values so the HTTP
// layer can map each to a response; none of them indicates a storage fault.
var (
	// ErrTournamentNotFound is returned when the referenced tournament does not exist.
	ErrTournamentNotFound = errors.New("tournament not found")

	// ErrUserNotFound is returned when the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidStatus is returned when a roster change is attempted against a
	// tournament that is no longer upcoming.
	ErrInvalidStatus = errors.New("tournament is not open for registration changes")

	// ErrAlreadyRegistered is returned when the user already holds a slot.
	ErrAlreadyRegistered = errors.New("user is already registered")

	// ErrNotRegistered is returned when unregistering a user who holds no slot.
	ErrNotRegistered = errors.New("user is not registered")

	// ErrCapacityExceeded is returned when every participant slot is taken.
	ErrCapacityExceeded = errors.New("tournament is full")

	// ErrInsufficientBalance is returned when the user cannot cover the entry fee.
	ErrInsufficientBalance = errors.New("insufficient star balance")

	// ErrValidation is returned for malformed input, e.g. a negative amount.
	ErrValidation = errors.New("validation failed")
)

// Storage-level conditions.
var (
	// ErrTransactionConflict is returned when a commit lost a race with a
	// concurrent writer (version mismatch). The operation may be retried from
	// scratch; preconditions must be re-evaluated, not assumed still true.
	ErrTransactionConflict = errors.New("transaction conflict, retry")

	// ErrTournamentExists is returned when creating a tournament whose ID is taken.
	ErrTournamentExists = errors.New("tournament already exists")
)

// IsRetryable reports whether the error is transient and the whole operation
// can be re-run against fresh state.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTransactionConflict)
}
