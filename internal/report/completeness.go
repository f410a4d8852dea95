package report

import (
	"sort"

	"github.com/peekknuf/studentqa/internal/dataset"
)

type MissingColumn struct {
	Column  string  `yaml:"column"`
	Count   int     `yaml:"count"`
	Percent float64 `yaml:"percent"`
}

// Completeness reports missing values per column, sorted by count
// descending (ties broken by column name for stable output).
type Completeness struct {
	Columns      []MissingColumn `yaml:"columns"`
	TotalMissing int             `yaml:"total_missing"`
}

func buildCompleteness(ds *dataset.Dataset) *Completeness {
	rows := ds.DF.Nrow()
	out := &Completeness{}
	for _, name := range ds.Schema.Names {
		count := 0
		for _, missing := range ds.MissingMask(name) {
			if missing {
				count++
			}
		}
		pct := 0.0
		if rows > 0 {
			pct = round2(100 * float64(count) / float64(rows))
		}
		out.Columns = append(out.Columns, MissingColumn{Column: name, Count: count, Percent: pct})
		out.TotalMissing += count
	}
	sort.SliceStable(out.Columns, func(i, j int) bool {
		if out.Columns[i].Count != out.Columns[j].Count {
			return out.Columns[i].Count > out.Columns[j].Count
		}
		return out.Columns[i].Column < out.Columns[j].Column
	})
	return out
}
