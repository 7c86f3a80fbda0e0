// Package testing provides test utilities for the teamsplit library.
//
// It follows Go's convention of providing testing utilities in a dedicated
// package (similar to net/http/httptest).
//
// Key utilities:
//   - NewTestLogger: Logger writing through t.Logf
//   - Scenario, Crowded: Small fixture rosters with known optimal splits
//   - RandomRoster: Reproducible generated rosters
//   - WriteCSV: Writes rosters to a spreadsheet-compatible CSV file
//
// Example usage:
//
//	import (
//	    "testing"
//	    splittest "github.com/arloliu/teamsplit/testing"
//	)
//
//	func TestMyComponent(t *testing.T) {
//	    path := splittest.WriteCSV(t, t.TempDir(), splittest.Scenario())
//	    // Use path as --input
//	}
package testing
