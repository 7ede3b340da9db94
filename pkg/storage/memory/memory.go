// Package memory implements the storage interfaces with plain maps and
// per-row mutexes. It backs local development and the concurrency tests,
// where it stands in for DynamoDB without changing any semantics: the same
// preconditions are re-validated after the row holds are taken.
//
// Lock ordering: every multi-row operation locks the tournament row before
// the user row. All writers keep that order, so two operations referencing
// the same pair can never deadlock.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/chris/star-tournaments/pkg/models"
	"github.com/chris/star-tournaments/pkg/storage"
)

type tournamentRow struct {
	mu      sync.Mutex
	t       models.Tournament
	deleted bool
}

type userRow struct {
	mu sync.Mutex
	u  models.User
}

// Store implements the Storage interface in memory.
type Store struct {
	mu          sync.RWMutex
	tournaments map[string]*tournamentRow
	users       map[string]*userRow

	connMu      sync.Mutex
	connections map[string]struct{}
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		tournaments: make(map[string]*tournamentRow),
		users:       make(map[string]*userRow),
		connections: make(map[string]struct{}),
	}
}

// Make sure we conform to the interfaces
var (
	_ storage.Storage          = (*Store)(nil)
	_ storage.WebSocketManager = (*Store)(nil)
)

func (s *Store) tournamentRow(id string) (*tournamentRow, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, ok := s.tournaments[id]
	return row, ok
}

func (s *Store) userRow(id string) (*userRow, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, ok := s.users[id]
	return row, ok
}

func cloneTournament(t *models.Tournament) *models.Tournament {
	out := *t
	out.Participants = append([]string{}, t.Participants...)
	return &out
}

func cloneUser(u *models.User) *models.User {
	out := *u
	out.Enrolled = append([]string{}, u.Enrolled...)
	return &out
}

// GetTournament retrieves a tournament by its ID.
func (s *Store) GetTournament(ctx context.Context, tournamentID string) (*models.Tournament, error) {
	row, ok := s.tournamentRow(tournamentID)
	if !ok {
		return nil, storage.ErrTournamentNotFound
	}
	row.mu.Lock()
	defer row.mu.Unlock()
	if row.deleted {
		return nil, storage.ErrTournamentNotFound
	}
	return cloneTournament(&row.t), nil
}

// ListTournaments retrieves all tournaments, ordered by creation time.
func (s *Store) ListTournaments(ctx context.Context) ([]models.Tournament, error) {
	s.mu.RLock()
	rows := make([]*tournamentRow, 0, len(s.tournaments))
	for _, row := range s.tournaments {
		rows = append(rows, row)
	}
	s.mu.RUnlock()

	out := make([]models.Tournament, 0, len(rows))
	for _, row := range rows {
		row.mu.Lock()
		if !row.deleted {
			out = append(out, *cloneTournament(&row.t))
		}
		row.mu.Unlock()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// CreateTournament stores a new tournament.
func (s *Store) CreateTournament(ctx context.Context, t *models.Tournament) (*models.Tournament, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.tournaments[t.ID]; exists {
		return nil, storage.ErrTournamentExists
	}
	stored := cloneTournament(t)
	if stored.Participants == nil {
		stored.Participants = []string{}
	}
	s.tournaments[t.ID] = &tournamentRow{t: *stored}
	return cloneTournament(stored), nil
}

// UpdateTournament replaces the stored row if the caller's version matches.
func (s *Store) UpdateTournament(ctx context.Context, t *models.Tournament) (*models.Tournament, error) {
	row, ok := s.tournamentRow(t.ID)
	if !ok {
		return nil, storage.ErrTournamentNotFound
	}
	row.mu.Lock()
	defer row.mu.Unlock()
	if row.deleted {
		return nil, storage.ErrTournamentNotFound
	}
	if row.t.Version != t.Version {
		return nil, storage.ErrTransactionConflict
	}
	updated := cloneTournament(t)
	updated.Version++
	updated.UpdatedAt = time.Now()
	row.t = *updated
	return cloneTournament(updated), nil
}

// DeleteTournament removes an upcoming tournament with an empty roster.
func (s *Store) DeleteTournament(ctx context.Context, tournamentID string) error {
	row, ok := s.tournamentRow(tournamentID)
	if !ok {
		return storage.ErrTournamentNotFound
	}
	row.mu.Lock()
	defer row.mu.Unlock()
	if row.deleted {
		return storage.ErrTournamentNotFound
	}
	if row.t.Status != models.StatusUpcoming || len(row.t.Participants) > 0 {
		return storage.ErrInvalidStatus
	}
	// Mark before unmapping so a writer already waiting on this row's lock
	// sees the delete instead of mutating an orphan.
	row.deleted = true
	s.mu.Lock()
	delete(s.tournaments, tournamentID)
	s.mu.Unlock()
	return nil
}

// GetUser retrieves a user by their ID.
func (s *Store) GetUser(ctx context.Context, userID string) (*models.User, error) {
	row, ok := s.userRow(userID)
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	row.mu.Lock()
	defer row.mu.Unlock()
	return cloneUser(&row.u), nil
}

// GetOrCreateUser retrieves a user, creating them with the starting balance
// on first access.
func (s *Store) GetOrCreateUser(ctx context.Context, userID string, startingBalance int64) (*models.User, error) {
	s.mu.Lock()
	row, ok := s.users[userID]
	if !ok {
		row = &userRow{u: models.User{
			ID:        userID,
			Balance:   startingBalance,
			Enrolled:  []string{},
			Version:   1,
			CreatedAt: time.Now(),
		}}
		s.users[userID] = row
	}
	s.mu.Unlock()

	row.mu.Lock()
	defer row.mu.Unlock()
	return cloneUser(&row.u), nil
}

// AdjustUserBalance awards or deducts stars, refusing to take the balance
// negative.
func (s *Store) AdjustUserBalance(ctx context.Context, userID string, delta int64) (*models.User, error) {
	row, ok := s.userRow(userID)
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	row.mu.Lock()
	defer row.mu.Unlock()
	if row.u.Balance+delta < 0 {
		return nil, storage.ErrInsufficientBalance
	}
	row.u.Balance += delta
	row.u.Version++
	return cloneUser(&row.u), nil
}

// RegisterUser debits the entry fee and appends the user to the roster under
// both row locks, tournament first. Preconditions are evaluated only after
// both holds are taken; an earlier non-locking read would be free to lie.
func (s *Store) RegisterUser(ctx context.Context, tournamentID, userID string, startingBalance int64) (*models.RegistrationOutcome, error) {
	tRow, ok := s.tournamentRow(tournamentID)
	if !ok {
		return nil, storage.ErrTournamentNotFound
	}
	if _, err := s.GetOrCreateUser(ctx, userID, startingBalance); err != nil {
		return nil, err
	}
	uRow, _ := s.userRow(userID)

	tRow.mu.Lock()
	defer tRow.mu.Unlock()
	uRow.mu.Lock()
	defer uRow.mu.Unlock()

	if tRow.deleted {
		return nil, storage.ErrTournamentNotFound
	}
	t, u := &tRow.t, &uRow.u

	if t.Status != models.StatusUpcoming {
		return nil, storage.ErrInvalidStatus
	}
	if t.HasParticipant(userID) {
		return nil, storage.ErrAlreadyRegistered
	}
	if t.IsFull() {
		return nil, storage.ErrCapacityExceeded
	}
	if u.Balance < t.EntryFee {
		return nil, storage.ErrInsufficientBalance
	}

	t.Participants = append(t.Participants, userID)
	t.Version++
	t.UpdatedAt = time.Now()
	u.Balance -= t.EntryFee
	u.Enrolled = append(u.Enrolled, tournamentID)
	u.Version++

	return &models.RegistrationOutcome{Tournament: cloneTournament(t), User: cloneUser(u)}, nil
}

// UnregisterUser refunds the entry fee and removes the user from the roster
// under both row locks, tournament first.
func (s *Store) UnregisterUser(ctx context.Context, tournamentID, userID string) (*models.RegistrationOutcome, error) {
	tRow, ok := s.tournamentRow(tournamentID)
	if !ok {
		return nil, storage.ErrTournamentNotFound
	}
	uRow, ok := s.userRow(userID)
	if !ok {
		return nil, storage.ErrUserNotFound
	}

	tRow.mu.Lock()
	defer tRow.mu.Unlock()
	uRow.mu.Lock()
	defer uRow.mu.Unlock()

	if tRow.deleted {
		return nil, storage.ErrTournamentNotFound
	}
	t, u := &tRow.t, &uRow.u

	if t.Status != models.StatusUpcoming {
		return nil, storage.ErrInvalidStatus
	}
	idx := -1
	for i, id := range t.Participants {
		if id == userID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, storage.ErrNotRegistered
	}

	t.Participants = append(t.Participants[:idx], t.Participants[idx+1:]...)
	t.Version++
	t.UpdatedAt = time.Now()
	u.Balance += t.EntryFee
	for i, id := range u.Enrolled {
		if id == tournamentID {
			u.Enrolled = append(u.Enrolled[:i], u.Enrolled[i+1:]...)
			break
		}
	}
	u.Version++

	return &models.RegistrationOutcome{Tournament: cloneTournament(t), User: cloneUser(u)}, nil
}

// TransitionTournamentStatus moves a tournament to its successor status.
func (s *Store) TransitionTournamentStatus(ctx context.Context, tournamentID string, from, to models.TournamentStatus) (*models.Tournament, error) {
	if from.NextStatus() != to {
		return nil, fmt.Errorf("%w: illegal transition %s -> %s", storage.ErrValidation, from, to)
	}
	row, ok := s.tournamentRow(tournamentID)
	if !ok {
		return nil, storage.ErrTournamentNotFound
	}
	row.mu.Lock()
	defer row.mu.Unlock()
	if row.deleted {
		return nil, storage.ErrTournamentNotFound
	}
	if row.t.Status != from {
		return nil, storage.ErrInvalidStatus
	}
	row.t.Status = to
	row.t.Version++
	row.t.UpdatedAt = time.Now()
	return cloneTournament(&row.t), nil
}

// GetOverdueTournaments retrieves tournaments whose transition time has
// passed but whose status has not moved.
func (s *Store) GetOverdueTournaments(ctx context.Context, now time.Time) ([]models.Tournament, error) {
	all, err := s.ListTournaments(ctx)
	if err != nil {
		return nil, err
	}
	var overdue []models.Tournament
	for _, t := range all {
		switch {
		case t.Status == models.StatusUpcoming && t.StartTime.Before(now):
			overdue = append(overdue, t)
		case t.Status == models.StatusActive && !t.EndTime.IsZero() && t.EndTime.Before(now):
			overdue = append(overdue, t)
		}
	}
	return overdue, nil
}

// AddConnection saves a websocket connection ID.
func (s *Store) AddConnection(ctx context.Context, connectionID string) error {
	s.connMu.Lock()
	defer s.connMu.Unlock()
	s.connections[connectionID] = struct{}{}
	return nil
}

// RemoveConnection deletes a websocket connection ID.
func (s *Store) RemoveConnection(ctx context.Context, connectionID string) error {
	s.connMu.Lock()
	defer s.connMu.Unlock()
	delete(s.connections, connectionID)
	return nil
}

// GetAllConnections retrieves every active websocket connection ID.
func (s *Store) GetAllConnections(ctx context.Context) ([]string, error) {
	s.connMu.Lock()
	defer s.connMu.Unlock()
	ids := make([]string, 0, len(s.connections))
	for id := range s.connections {
		ids = append(ids, id)
	}
	return ids, nil
}
