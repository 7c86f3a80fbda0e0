package teamsplit

import "github.com/arloliu/teamsplit/types"

// Type aliases for the public API.
type (
	Individual         = types.Individual
	Container          = types.Container
	Partition          = types.Partition
	Roster             = types.Roster
	Result             = types.Result
	SearchStats        = types.SearchStats
	Logger             = types.Logger
	MetricsCollector   = types.MetricsCollector
	AssignmentStrategy = types.AssignmentStrategy
	RosterSource       = types.RosterSource
	Hooks              = types.Hooks
)
