package source

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arloliu/teamsplit/types"
)

// Open picks a roster source from the file extension.
//
// Parameters:
//   - path: .csv, .xlsx/.xlsm or .yaml/.yml file
//   - sheet: Spreadsheet sheet (ignored for other formats)
//
// Returns:
//   - types.RosterSource: Source for the file
//   - error: Unsupported extension
func Open(path, sheet string) (types.RosterSource, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return NewCSV(path), nil
	case ".xlsx", ".xlsm":
		return NewXLSX(path, sheet), nil
	case ".yaml", ".yml":
		return NewYAML(path), nil
	default:
		return nil, fmt.Errorf("unsupported roster file %q: want .csv, .xlsx or .yaml", path)
	}
}

// Lookup loads the roster called name from src.
//
// Returns:
//   - types.Roster: The roster
//   - error: ErrRosterNotFound listing the available names, or the source error
func Lookup(ctx context.Context, src types.RosterSource, name string) (types.Roster, error) {
	rosters, err := src.ListRosters(ctx)
	if err != nil {
		return types.Roster{}, err
	}

	r, ok := rosters[name]
	if !ok {
		return types.Roster{}, fmt.Errorf("%w: %q (available: %s)", types.ErrRosterNotFound, name, strings.Join(Names(rosters), ", "))
	}

	return r, nil
}
