package source

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/arloliu/teamsplit/types"
)

// Column headers as they appear in rosters, before normalization.
const (
	ColumnGroup     = "Groupe"
	ColumnSurname   = "Nom"
	ColumnGivenName = "Prénom"
	ColumnAdvantage = "Avantage compté"
	ColumnLeader    = "« chef »"
	ColumnLeaderAlt = "chef"
	ColumnPolarity  = "À séparer"
)

var truthy = map[string]bool{"1": true, "true": true, "oui": true, "yes": true, "y": true}

// header maps normalized column names to their position.
type header map[string]int

func newHeader(cells []string) header {
	h := make(header, len(cells))
	for i, c := range cells {
		key := NormalizeHeader(c)
		if _, dup := h[key]; !dup && key != "" {
			h[key] = i
		}
	}

	return h
}

func (h header) has(column string) bool {
	_, ok := h[NormalizeHeader(column)]

	return ok
}

// get returns the trimmed cell under column, "" when the column or cell is absent.
func (h header) get(row []string, column string) string {
	i, ok := h[NormalizeHeader(column)]
	if !ok || i >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[i])
}

// ParseLeader reports whether s is one of the accepted truthy spellings.
func ParseLeader(s string) bool {
	return truthy[strings.ToLower(strings.TrimSpace(s))]
}

// ParsePolarity returns nil for "", "-" or anything that is not an integer.
// Integral decimals such as "2.0" are accepted; values beyond the int32
// range are not polarities.
func ParsePolarity(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return &n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && math.Abs(f) <= math.MaxInt32 && f == math.Trunc(f) {
		n := int(f)

		return &n
	}

	return nil
}

// ParseAdvantage returns 0 for an empty or unparsable cell. A decimal comma is accepted.
func ParseAdvantage(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}

	return f
}

// SplitName derives surname and given name.
//
// When surname is empty the last word of full becomes the surname and the
// rest the given name. A single word is used as both.
func SplitName(full, surname string) (string, string) {
	full = strings.TrimSpace(full)
	surname = strings.TrimSpace(surname)
	if surname == "" {
		fields := strings.Fields(full)
		if len(fields) == 0 {
			return "", ""
		}
		surname = fields[len(fields)-1]
	}

	given := full
	if n, m := len(full), len(surname); n > m {
		switch {
		case full[n-m-1] == ' ' && strings.EqualFold(full[n-m:], surname):
			given = strings.TrimSpace(full[:n-m])
		case full[m] == ' ' && strings.EqualFold(full[:m], surname):
			given = strings.TrimSpace(full[m:])
		}
	}

	return surname, given
}

// buildRosters turns a header row and data rows into validated rosters.
//
// origin names the file in error messages. Row numbers in errors are 1-based
// and count the header row.
func buildRosters(origin string, cells [][]string) (map[string]types.Roster, error) {
	if len(cells) == 0 {
		return nil, fmt.Errorf("%s: %w: empty table", origin, types.ErrMissingColumn)
	}

	h := newHeader(cells[0])
	if !h.has(ColumnGroup) {
		return nil, fmt.Errorf("%s: %w: %q", origin, types.ErrMissingColumn, ColumnGroup)
	}
	if !h.has(ColumnGivenName) && !h.has(ColumnSurname) {
		return nil, fmt.Errorf("%s: %w: %q or %q", origin, types.ErrMissingColumn, ColumnGivenName, ColumnSurname)
	}

	rosters := make(map[string]types.Roster)
	for n, row := range cells[1:] {
		group := h.get(row, ColumnGroup)
		if group == "" {
			continue
		}

		surname, given := SplitName(h.get(row, ColumnGivenName), h.get(row, ColumnSurname))
		leaderCell := h.get(row, ColumnLeader)
		if leaderCell == "" {
			leaderCell = h.get(row, ColumnLeaderAlt)
		}
		ind := types.Individual{
			Surname:   surname,
			GivenName: given,
			Advantage: ParseAdvantage(h.get(row, ColumnAdvantage)),
			Leader:    ParseLeader(leaderCell),
			Polarity:  ParsePolarity(h.get(row, ColumnPolarity)),
		}
		if err := ind.Validate(); err != nil {
			return nil, fmt.Errorf("%s, row %d: %w", origin, n+2, err)
		}

		r := rosters[group]
		r.Name = group
		r.Individuals = append(r.Individuals, ind)
		rosters[group] = r
	}

	return rosters, nil
}
