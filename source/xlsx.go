package source

import (
	"context"
	"fmt"
	"slices"

	"github.com/xuri/excelize/v2"

	"github.com/arloliu/teamsplit/types"
)

// DefaultSheet is preferred when no sheet is named explicitly.
const DefaultSheet = "Liste S3"

// XLSX implements a roster source over a spreadsheet.
type XLSX struct {
	path  string
	sheet string
}

var _ types.RosterSource = (*XLSX)(nil)

// NewXLSX creates a spreadsheet roster source.
//
// Parameters:
//   - path: Workbook path
//   - sheet: Sheet to read; empty selects DefaultSheet when present, else the first sheet
//
// Returns:
//   - *XLSX: Source reading the workbook on every ListRosters call
func NewXLSX(path, sheet string) *XLSX {
	return &XLSX{path: path, sheet: sheet}
}

// ListRosters opens the workbook and parses the selected sheet.
func (x *XLSX) ListRosters(ctx context.Context) (map[string]types.Roster, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(x.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet, err := selectSheet(f.GetSheetList(), x.sheet)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", x.path, err)
	}

	cells, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%s: read sheet %q: %w", x.path, sheet, err)
	}

	return buildRosters(x.path+"/"+sheet, cells)
}

func selectSheet(sheets []string, want string) (string, error) {
	if want != "" {
		if !slices.Contains(sheets, want) {
			return "", fmt.Errorf("sheet %q not found (have %v)", want, sheets)
		}

		return want, nil
	}
	if slices.Contains(sheets, DefaultSheet) {
		return DefaultSheet, nil
	}
	if len(sheets) == 0 {
		return "", fmt.Errorf("workbook has no sheets")
	}

	return sheets[0], nil
}
