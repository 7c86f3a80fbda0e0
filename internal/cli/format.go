package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ryanuber/columnize"

	"github.com/arloliu/teamsplit/scoring"
	"github.com/arloliu/teamsplit/types"
)

// formatList takes a set of strings and formats them into properly
// aligned output, replacing any blank fields with a placeholder
// for awk-ability.
func formatList(in []string) string {
	columnConf := columnize.DefaultConfig()
	columnConf.Empty = "<none>"

	return columnize.Format(in, columnConf)
}

func formatAdvantage(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// memberLabel renders one member: "* " marks a leader, "[pN]" a polarity.
func memberLabel(ind types.Individual) string {
	var b strings.Builder
	if ind.Leader {
		b.WriteString("* ")
	}
	b.WriteString(ind.FullName())
	if ind.Polarity != nil {
		fmt.Fprintf(&b, " [p%d]", *ind.Polarity)
	}

	return b.String()
}

// writeResult renders one assignment as a table followed by its scores.
func writeResult(w io.Writer, roster string, res *types.Result) error {
	rows := []string{"Group|Capacity|Advantage|Members"}
	for i, line := range scoring.Evaluate(res.Partition).Containers {
		members := res.Partition.At(i).Members()
		labels := make([]string, 0, len(members))
		for _, m := range members {
			labels = append(labels, memberLabel(m))
		}
		rows = append(rows, fmt.Sprintf("%s|%d|%s|%s",
			line.Name, line.Capacity, formatAdvantage(line.TotalAdvantage), strings.Join(labels, ", ")))
	}

	valid := "yes"
	if !res.Valid {
		valid = fmt.Sprintf("no (%d conflicting groups)", res.Conflicts)
	}

	_, err := fmt.Fprintf(w, "== %s (%s, %d groups)\n%s\n\nFairness (max-min) = %s\nValid (leaders & polarities): %s\n",
		roster, res.Strategy, res.Partition.Len(), formatList(rows), formatAdvantage(res.Fairness), valid)
	if err != nil {
		return err
	}

	if len(res.InfeasiblePolarities) > 0 {
		_, err = fmt.Fprintf(w, "Polarities outnumbering groups: %v\n", res.InfeasiblePolarities)
	}

	return err
}

type jsonMember struct {
	Surname   string  `json:"surname"`
	GivenName string  `json:"givenName,omitempty"`
	Advantage float64 `json:"advantage"`
	Leader    bool    `json:"leader,omitempty"`
	Polarity  *int    `json:"polarity,omitempty"`
}

type jsonGroup struct {
	Name      string       `json:"name"`
	Capacity  int          `json:"capacity"`
	Advantage float64      `json:"advantage"`
	Members   []jsonMember `json:"members"`
}

type jsonResult struct {
	Roster string `json:"roster"`
	*types.Result
	Groups      []jsonGroup `json:"groups"`
	DurationSec float64     `json:"duration_s"`
}

func toJSONResult(roster string, res *types.Result) jsonResult {
	out := jsonResult{Roster: roster, Result: res, DurationSec: res.Duration.Seconds()}
	for _, c := range res.Partition.Containers() {
		g := jsonGroup{Name: c.Name(), Capacity: c.Capacity(), Advantage: c.TotalAdvantage()}
		for _, m := range c.Members() {
			g.Members = append(g.Members, jsonMember{
				Surname:   m.Surname,
				GivenName: m.GivenName,
				Advantage: m.Advantage,
				Leader:    m.Leader,
				Polarity:  m.Polarity,
			})
		}
		out.Groups = append(out.Groups, g)
	}

	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	return enc.Encode(v)
}
