package types

import "context"

// RosterSource loads rosters keyed by their group identifier.
//
// Sources are the only place where raw tabular records are interpreted:
// everything they return is already validated.
type RosterSource interface {
	// ListRosters returns every roster the source knows about.
	//
	// Parameters:
	//   - ctx: Context for cancellation
	//
	// Returns:
	//   - map[string]Roster: Rosters keyed by group identifier
	//   - error: Read or validation error
	ListRosters(ctx context.Context) (map[string]Roster, error)
}
