package types

import (
	"fmt"
	"math"
	"strings"
)

// Individual is a single member of a roster.
//
// Individuals are values: once loaded from a roster source they are copied into
// containers and never modified.
type Individual struct {
	// Surname is the family name.
	Surname string `json:"surname" yaml:"surname"`

	// GivenName is the first name.
	GivenName string `json:"givenName" yaml:"givenName"`

	// Advantage is the non-negative workload/skill weight balanced across groups.
	Advantage float64 `json:"advantage" yaml:"advantage"`

	// Leader marks an individual that can head a group. Every group needs one.
	Leader bool `json:"leader" yaml:"leader"`

	// Polarity tags individuals that must never share a group with another
	// individual carrying the same tag. Nil means no constraint.
	Polarity *int `json:"polarity,omitempty" yaml:"polarity,omitempty"`
}

// Pol returns a polarity pointer for use in Individual literals.
//
// Example:
//
//	c := types.Individual{Surname: "C", Advantage: 4, Polarity: types.Pol(1)}
func Pol(p int) *int {
	return &p
}

// HasPolarity reports whether the individual carries a polarity tag.
func (i Individual) HasPolarity() bool {
	return i.Polarity != nil
}

// FullName returns "GivenName Surname", trimmed.
func (i Individual) FullName() string {
	return strings.TrimSpace(i.GivenName + " " + i.Surname)
}

// Key returns a stable identity string for hashing and logging.
//
// Returns:
//   - string: "surname|givenName"
func (i Individual) Key() string {
	return i.Surname + "|" + i.GivenName
}

// Validate checks the individual's fields.
//
// Returns:
//   - error: ErrInvalidIndividual when the advantage is negative, NaN or infinite
func (i Individual) Validate() error {
	if math.IsNaN(i.Advantage) || math.IsInf(i.Advantage, 0) || i.Advantage < 0 {
		return fmt.Errorf("%w: %q has advantage %v", ErrInvalidIndividual, i.FullName(), i.Advantage)
	}

	return nil
}

// String renders the individual the way reports list members.
func (i Individual) String() string {
	var b strings.Builder
	b.WriteString(i.FullName())
	if i.Leader {
		b.WriteString(" (L)")
	}
	if i.Polarity != nil {
		fmt.Fprintf(&b, " [p%d]", *i.Polarity)
	}
	fmt.Fprintf(&b, " (adv=%g)", i.Advantage)

	return b.String()
}
