package source

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/arloliu/teamsplit/types"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSV implements a roster source over a delimited text file with a header row.
type CSV struct {
	path  string
	comma rune
}

var _ types.RosterSource = (*CSV)(nil)

// CSVOption configures a CSV source.
type CSVOption func(*CSV)

// NewCSV creates a CSV roster source.
//
// Without WithComma the delimiter is detected from the header line: ';' when
// it holds more semicolons than commas, ',' otherwise.
//
// Example:
//
//	src := source.NewCSV("groupes.csv")
//	rosters, err := src.ListRosters(ctx)
func NewCSV(path string, opts ...CSVOption) *CSV {
	c := &CSV{path: path}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c
}

// WithComma sets the field delimiter.
func WithComma(r rune) CSVOption {
	return func(c *CSV) {
		c.comma = r
	}
}

// ListRosters reads and parses the file.
func (c *CSV) ListRosters(ctx context.Context) (map[string]types.Roster, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("read roster file: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = c.comma
	if r.Comma == 0 {
		r.Comma = sniffComma(data)
	}
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	cells, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: parse csv: %w", c.path, err)
	}

	return buildRosters(c.path, cells)
}

func sniffComma(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	if bytes.Count(line, []byte{';'}) > bytes.Count(line, []byte{','}) {
		return ';'
	}

	return ','
}
