package testing

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/arloliu/teamsplit/types"
)

// Scenario returns roster "1A": two leaders and two members sharing polarity 1.
//
// Split into two groups, the only fair valid placement is
// G1 = {Alice A, David D} and G2 = {Bob B, Chloé C}, both totalling 7.
func Scenario() types.Roster {
	return types.Roster{
		Name: "1A",
		Individuals: []types.Individual{
			{Surname: "A", GivenName: "Alice", Advantage: 5, Leader: true},
			{Surname: "B", GivenName: "Bob", Advantage: 3, Leader: true},
			{Surname: "C", GivenName: "Chloé", Advantage: 4, Polarity: types.Pol(1)},
			{Surname: "D", GivenName: "David", Advantage: 2, Polarity: types.Pol(1)},
		},
	}
}

// Crowded returns roster "1B": three members of polarity 1, so two groups
// cannot keep them apart.
func Crowded() types.Roster {
	return types.Roster{
		Name: "1B",
		Individuals: []types.Individual{
			{Surname: "A", GivenName: "Anna", Advantage: 1, Leader: true, Polarity: types.Pol(1)},
			{Surname: "B", GivenName: "Basile", Advantage: 1, Leader: true},
			{Surname: "C", GivenName: "Clara", Advantage: 1, Polarity: types.Pol(1)},
			{Surname: "D", GivenName: "Dylan", Advantage: 1, Polarity: types.Pol(1)},
		},
	}
}

// RandomRoster generates n individuals with integer advantages in [0, 10).
// The first leaders individuals are leaders; about a third of the others
// carry polarity 1 or 2.
func RandomRoster(rng *rand.Rand, name string, n, leaders int) types.Roster {
	r := types.Roster{Name: name, Individuals: make([]types.Individual, n)}
	for i := range n {
		ind := types.Individual{
			Surname:   name + "-" + strconv.Itoa(i),
			GivenName: "P" + strconv.Itoa(i),
			Advantage: float64(rng.IntN(10)),
			Leader:    i < leaders,
		}
		if i >= leaders && rng.IntN(3) == 0 {
			ind.Polarity = types.Pol(1 + rng.IntN(2))
		}
		r.Individuals[i] = ind
	}

	return r
}

// WriteCSV writes rosters to dir/rosters.csv with the spreadsheet column
// headers and returns the path.
func WriteCSV(t testing.TB, dir string, rosters ...types.Roster) string {
	t.Helper()

	var b strings.Builder
	b.WriteString("Groupe;Nom;Prénom;Avantage compté;« chef »;À séparer\n")
	for _, r := range rosters {
		for _, ind := range r.Individuals {
			leader, polarity := "", ""
			if ind.Leader {
				leader = "oui"
			}
			if ind.Polarity != nil {
				polarity = strconv.Itoa(*ind.Polarity)
			}
			b.WriteString(strings.Join([]string{
				r.Name,
				ind.Surname,
				ind.GivenName,
				strconv.FormatFloat(ind.Advantage, 'f', -1, 64),
				leader,
				polarity,
			}, ";"))
			b.WriteByte('\n')
		}
	}

	path := filepath.Join(dir, "rosters.csv")
	if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
		t.Fatalf("write rosters: %v", err)
	}

	return path
}
