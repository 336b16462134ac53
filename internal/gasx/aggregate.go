package gasx

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"licorplot/pkg/domain"
)

type cellKey struct {
	obs   float64
	group string
}

type cellValues struct {
	gsw, relGsw, a, wue []float64
}

// Aggregate reduces the combined table to one summary per
// (observation index, group label) cell: mean, sample standard deviation,
// and standard error for each of the four quantities. Output rows follow
// the caller's group order first and ascending observation index within a
// group; records tagged with a group outside the list are ignored.
//
// Single-replicate cells yield NaN for sd and se (a sample of one has no
// spread), which the renderer treats as "no bar".
func Aggregate(recs []domain.Record, groups []string) []domain.Summary {
	cells := make(map[cellKey]*cellValues)
	for _, r := range recs {
		k := cellKey{obs: r.Obs, group: r.Group}
		c := cells[k]
		if c == nil {
			c = &cellValues{}
			cells[k] = c
		}
		c.gsw = append(c.gsw, r.Gsw)
		c.relGsw = append(c.relGsw, r.RelGsw)
		c.a = append(c.a, r.A)
		c.wue = append(c.wue, r.WUE)
	}

	var out []domain.Summary
	for _, g := range groups {
		var obsValues []float64
		for k := range cells {
			if k.group == g {
				obsValues = append(obsValues, k.obs)
			}
		}
		sort.Float64s(obsValues)

		for _, obs := range obsValues {
			c := cells[cellKey{obs: obs, group: g}]
			n := len(c.gsw)
			out = append(out, domain.Summary{
				Obs:    obs,
				Group:  g,
				N:      n,
				Gsw:    summarize(c.gsw),
				RelGsw: summarize(c.relGsw),
				A:      summarize(c.a),
				WUE:    summarize(c.wue),
			})
		}
	}
	return out
}

// summarize computes mean, sample sd, and se = sd / sqrt(n) over the
// non-missing values of one cell.
func summarize(vals []float64) domain.Stat {
	mean, sd := stat.MeanStdDev(vals, nil)
	return domain.Stat{
		Mean: mean,
		SD:   sd,
		SE:   sd / math.Sqrt(float64(len(vals))),
	}
}
