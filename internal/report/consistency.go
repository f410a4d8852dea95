package report

import (
	"sort"
	"strings"

	"github.com/peekknuf/studentqa/internal/dataset"
)

// MissingBucket is the label under which missing entries appear in
// categorical frequency tables.
const MissingBucket = "<missing>"

type ValueCount struct {
	Value string `yaml:"value"`
	Count int    `yaml:"count"`
}

type FrequencyTable struct {
	Column string       `yaml:"column"`
	Values []ValueCount `yaml:"values"`
}

// Consistency reports categorical code frequencies (missing included as its
// own bucket) and duplicate rows: exact duplicates over the full tuple, and
// possible duplicates over the identity-like column subset.
type Consistency struct {
	Categorical        []FrequencyTable `yaml:"categorical"`
	ExactDuplicates    int              `yaml:"exact_duplicates"`
	IdentityColumns    []string         `yaml:"identity_columns,omitempty"`
	IdentityDuplicates int              `yaml:"identity_duplicates"`
}

func buildConsistency(ds *dataset.Dataset) *Consistency {
	out := &Consistency{}

	for _, col := range ds.Schema.Categoricals {
		out.Categorical = append(out.Categorical, frequencyTable(ds, col))
	}

	out.ExactDuplicates = duplicateCount(ds.Records())

	// Only report the identity subset when the projection worked; listing
	// the columns next to a count that was never computed would read as
	// "zero duplicates".
	if len(ds.Schema.Identity) > 0 {
		if rows, err := ds.Project(ds.Schema.Identity); err == nil {
			out.IdentityColumns = ds.Schema.Identity
			out.IdentityDuplicates = duplicateCount(rows)
		}
	}
	return out
}

// frequencyTable mirrors value_counts(dropna=False): every code plus a
// missing bucket, sorted by count descending then value.
func frequencyTable(ds *dataset.Dataset, col string) FrequencyTable {
	counts := make(map[string]int)
	mask := ds.MissingMask(col)
	for i, rec := range ds.DF.Col(col).Records() {
		if mask[i] {
			counts[MissingBucket]++
			continue
		}
		counts[strings.TrimSpace(rec)]++
	}

	ft := FrequencyTable{Column: col}
	for v, c := range counts {
		ft.Values = append(ft.Values, ValueCount{Value: v, Count: c})
	}
	sort.SliceStable(ft.Values, func(i, j int) bool {
		if ft.Values[i].Count != ft.Values[j].Count {
			return ft.Values[i].Count > ft.Values[j].Count
		}
		return ft.Values[i].Value < ft.Values[j].Value
	})
	return ft
}

// duplicateCount counts rows whose full tuple was already seen, i.e. every
// occurrence after the first. A single fully repeated row counts as 1.
func duplicateCount(rows [][]string) int {
	seen := make(map[string]struct{}, len(rows))
	dups := 0
	for _, row := range rows {
		key := strings.Join(row, "\x1f")
		if _, ok := seen[key]; ok {
			dups++
			continue
		}
		seen[key] = struct{}{}
	}
	return dups
}
