// Package types provides the core data model and interfaces of teamsplit.
//
// The types live in their own package so that strategies, scoring and sources
// can share them without importing the root package.
//
// Key types:
//   - Individual: A roster member with advantage, leader flag and polarity
//   - Container: A named group with fixed capacity
//   - Partition: An ordered set of containers
//   - Roster: The individuals of one source group
//   - Result: A populated partition with its scores
//   - Hooks: Planner event callbacks
//   - AssignmentStrategy, RosterSource, Logger, MetricsCollector: Extension points
package types
