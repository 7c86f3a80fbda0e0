package source

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/teamsplit/types"
)

// YAML implements a roster source over a YAML document of the form:
//
//	rosters:
//	  - name: 1A
//	    individuals:
//	      - surname: Martin
//	        givenName: Alice
//	        advantage: 5
//	        leader: true
//	      - surname: Durand
//	        givenName: Paul
//	        advantage: 2
//	        polarity: 1
type YAML struct {
	path string
}

var _ types.RosterSource = (*YAML)(nil)

type yamlDocument struct {
	Rosters []types.Roster `yaml:"rosters"`
}

// NewYAML creates a YAML roster source.
func NewYAML(path string) *YAML {
	return &YAML{path: path}
}

// ListRosters reads and parses the file.
func (y *YAML) ListRosters(ctx context.Context) (map[string]types.Roster, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(y.path)
	if err != nil {
		return nil, fmt.Errorf("read roster file: %w", err)
	}

	return ParseYAML(data)
}

// ParseYAML decodes rosters from YAML. Rosters sharing a name are concatenated.
func ParseYAML(data []byte) (map[string]types.Roster, error) {
	var doc yamlDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse roster yaml: %w", err)
	}

	rosters := make(map[string]types.Roster, len(doc.Rosters))
	for _, r := range doc.Rosters {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		merged := rosters[r.Name]
		merged.Name = r.Name
		merged.Individuals = append(merged.Individuals, r.Individuals...)
		rosters[r.Name] = merged
	}

	return rosters, nil
}
