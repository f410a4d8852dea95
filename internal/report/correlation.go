package report

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/peekknuf/studentqa/internal/dataset"
)

type CorrEntry struct {
	Column string  `yaml:"column"`
	R      float64 `yaml:"r"`
}

// Correlation holds the Pearson correlation of every numeric column against
// the final grade, sorted descending. The target correlates with itself as
// exactly 1.0 and therefore leads the list.
type Correlation struct {
	Target  string      `yaml:"target"`
	Entries []CorrEntry `yaml:"entries"`
}

func buildCorrelation(ds *dataset.Dataset) *Correlation {
	target, ok := ds.Schema.FinalGrade()
	if !ok {
		return nil
	}
	out := &Correlation{Target: target}
	targetVals := ds.FloatColumn(target)

	for _, col := range ds.Schema.Numerics {
		if col == target {
			out.Entries = append(out.Entries, CorrEntry{Column: col, R: 1.0})
			continue
		}
		r, ok := pearson(ds.FloatColumn(col), targetVals)
		if !ok {
			continue
		}
		out.Entries = append(out.Entries, CorrEntry{Column: col, R: r})
	}
	sort.SliceStable(out.Entries, func(i, j int) bool {
		if out.Entries[i].R != out.Entries[j].R {
			return out.Entries[i].R > out.Entries[j].R
		}
		return out.Entries[i].Column < out.Entries[j].Column
	})
	return out
}

// pearson computes Pearson r over pairwise-complete observations. Columns
// with fewer than two complete pairs or zero variance yield no coefficient.
func pearson(xs, ys []float64) (float64, bool) {
	var px, py []float64
	for i := range xs {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		px = append(px, xs[i])
		py = append(py, ys[i])
	}
	if len(px) < 2 {
		return 0, false
	}
	r := stat.Correlation(px, py, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, false
	}
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r, true
}
