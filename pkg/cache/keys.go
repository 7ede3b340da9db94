package cache

// Key layout shared by everything that reads or invalidates tournament
// entries. List variants all live under TournamentListPrefix so one prefix
// invalidation drops them together.
const (
	TournamentListPrefix = "tournaments:"
	TournamentListKey    = TournamentListPrefix + "all"
)

// TournamentKey returns the cache key for a single tournament lookup.
func TournamentKey(tournamentID string) string {
	return "tournament:" + tournamentID
}
