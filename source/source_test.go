package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/arloliu/teamsplit/types"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestStatic_ListRosters(t *testing.T) {
	t.Run("returns all rosters", func(t *testing.T) {
		a := types.Roster{Name: "1A", Individuals: []types.Individual{{Surname: "A", Leader: true}}}
		b := types.Roster{Name: "1B", Individuals: []types.Individual{{Surname: "B"}}}
		src := NewStatic(a, b)

		result, err := src.ListRosters(context.Background())

		require.NoError(t, err)
		require.Equal(t, map[string]types.Roster{"1A": a, "1B": b}, result)
	})

	t.Run("does not expose internal state", func(t *testing.T) {
		src := NewStatic(types.Roster{Name: "1A", Individuals: []types.Individual{{Surname: "A", Advantage: 1}}})

		result, err := src.ListRosters(context.Background())
		require.NoError(t, err)
		result["1A"].Individuals[0].Advantage = 99

		again, err := src.ListRosters(context.Background())
		require.NoError(t, err)
		require.InDelta(t, 1.0, again["1A"].Individuals[0].Advantage, 1e-9)
	})

	t.Run("update replaces rosters", func(t *testing.T) {
		src := NewStatic(types.Roster{Name: "1A"})
		src.Update(types.Roster{Name: "2B"})

		result, err := src.ListRosters(context.Background())
		require.NoError(t, err)
		require.Equal(t, []string{"2B"}, Names(result))
	})

	t.Run("invalid individual", func(t *testing.T) {
		src := NewStatic(types.Roster{Name: "1A", Individuals: []types.Individual{{Surname: "A", Advantage: -1}}})

		_, err := src.ListRosters(context.Background())
		require.ErrorIs(t, err, types.ErrInvalidIndividual)
	})
}

func TestCSV_ListRosters(t *testing.T) {
	t.Run("semicolon with byte order mark", func(t *testing.T) {
		path := writeFile(t, "roster.csv", "\ufeffGroupe;Nom;Prénom;Avantage compté;« chef »;À séparer\n"+
			"1A;Martin;Alice;5;oui;\n"+
			"1A;Durand;Paul;2,5;;1\n"+
			"1B;Petit;Zoé;3;yes;-\n")

		rosters, err := NewCSV(path).ListRosters(context.Background())

		require.NoError(t, err)
		require.Equal(t, []string{"1A", "1B"}, Names(rosters))
		require.Equal(t, types.Individual{Surname: "Durand", GivenName: "Paul", Advantage: 2.5, Polarity: types.Pol(1)},
			rosters["1A"].Individuals[1])
		require.True(t, rosters["1B"].Individuals[0].Leader)
	})

	t.Run("comma with quoted fields", func(t *testing.T) {
		path := writeFile(t, "roster.csv", "Groupe,Prénom,chef\n"+
			"1A,\"Jean Pierre Dupont\",1\n")

		rosters, err := NewCSV(path).ListRosters(context.Background())

		require.NoError(t, err)
		require.Equal(t, "Dupont", rosters["1A"].Individuals[0].Surname)
		require.Equal(t, "Jean Pierre", rosters["1A"].Individuals[0].GivenName)
	})

	t.Run("explicit delimiter", func(t *testing.T) {
		path := writeFile(t, "roster.csv", "Groupe\tPrénom\n1A\tAlice Martin\n")

		rosters, err := NewCSV(path, WithComma('\t')).ListRosters(context.Background())

		require.NoError(t, err)
		require.Len(t, rosters["1A"].Individuals, 1)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewCSV(filepath.Join(t.TempDir(), "none.csv")).ListRosters(context.Background())
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func writeWorkbook(t *testing.T, sheets map[string][][]any, order []string) string {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, name := range order {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range sheets[name] {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}

	path := filepath.Join(t.TempDir(), "roster.xlsx")
	require.NoError(t, f.SaveAs(path))

	return path
}

func TestXLSX_ListRosters(t *testing.T) {
	roster := [][]any{
		{"Groupe", "Prénom", "Avantage compté", "« chef »", "À séparer"},
		{"1A", "Alice Martin", 5, "oui", nil},
		{"1A", "Paul Durand", 2.5, nil, 1},
	}
	other := [][]any{
		{"Groupe", "Prénom"},
		{"9Z", "Other Person"},
	}

	t.Run("prefers the default sheet", func(t *testing.T) {
		path := writeWorkbook(t, map[string][][]any{"Notes": other, DefaultSheet: roster}, []string{"Notes", DefaultSheet})

		rosters, err := NewXLSX(path, "").ListRosters(context.Background())

		require.NoError(t, err)
		require.Equal(t, []string{"1A"}, Names(rosters))
		require.Equal(t, []types.Individual{
			{Surname: "Martin", GivenName: "Alice", Advantage: 5, Leader: true},
			{Surname: "Durand", GivenName: "Paul", Advantage: 2.5, Polarity: types.Pol(1)},
		}, rosters["1A"].Individuals)
	})

	t.Run("falls back to the first sheet", func(t *testing.T) {
		path := writeWorkbook(t, map[string][][]any{"Notes": other, "Data": roster}, []string{"Notes", "Data"})

		rosters, err := NewXLSX(path, "").ListRosters(context.Background())

		require.NoError(t, err)
		require.Equal(t, []string{"9Z"}, Names(rosters))
	})

	t.Run("explicit sheet", func(t *testing.T) {
		path := writeWorkbook(t, map[string][][]any{"Notes": other, "Data": roster}, []string{"Notes", "Data"})

		rosters, err := NewXLSX(path, "Data").ListRosters(context.Background())
		require.NoError(t, err)
		require.Equal(t, []string{"1A"}, Names(rosters))

		_, err = NewXLSX(path, "Missing").ListRosters(context.Background())
		require.ErrorContains(t, err, "Missing")
	})
}

func TestYAML_ListRosters(t *testing.T) {
	t.Run("parses typed rosters", func(t *testing.T) {
		path := writeFile(t, "roster.yaml", `
rosters:
  - name: 1A
    individuals:
      - surname: Martin
        givenName: Alice
        advantage: 5
        leader: true
      - surname: Durand
        givenName: Paul
        advantage: 2
        polarity: 1
  - name: 1A
    individuals:
      - surname: Petit
        givenName: Zoe
`)

		rosters, err := NewYAML(path).ListRosters(context.Background())

		require.NoError(t, err)
		require.Len(t, rosters["1A"].Individuals, 3)
		require.Equal(t, types.Pol(1), rosters["1A"].Individuals[1].Polarity)
		require.Nil(t, rosters["1A"].Individuals[2].Polarity)
	})

	t.Run("rejects negative advantage", func(t *testing.T) {
		_, err := ParseYAML([]byte("rosters:\n  - name: x\n    individuals:\n      - surname: A\n        advantage: -1\n"))
		require.ErrorIs(t, err, types.ErrInvalidIndividual)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := ParseYAML([]byte("rosters: [\n"))
		require.Error(t, err)
	})
}

func TestOpenAndLookup(t *testing.T) {
	t.Run("by extension", func(t *testing.T) {
		for ext, want := range map[string]any{
			"a.csv": &CSV{}, "a.CSV": &CSV{}, "a.xlsx": &XLSX{}, "a.xlsm": &XLSX{}, "a.yml": &YAML{}, "a.yaml": &YAML{},
		} {
			src, err := Open(ext, "")
			require.NoError(t, err)
			require.IsType(t, want, src)
		}

		_, err := Open("a.txt", "")
		require.Error(t, err)
	})

	t.Run("lookup", func(t *testing.T) {
		src := NewStatic(types.Roster{Name: "1A"}, types.Roster{Name: "1B"})

		r, err := Lookup(context.Background(), src, "1B")
		require.NoError(t, err)
		require.Equal(t, "1B", r.Name)

		_, err = Lookup(context.Background(), src, "2C")
		require.ErrorIs(t, err, types.ErrRosterNotFound)
		require.ErrorContains(t, err, "1A, 1B")
	})
}
