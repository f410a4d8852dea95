package report

import (
	"math"
	"sort"
	"strconv"

	"github.com/peekknuf/studentqa/internal/dataset"
)

type DistEntry struct {
	Value   string  `yaml:"value"`
	Count   int     `yaml:"count"`
	Percent float64 `yaml:"percent"`
}

type Distribution struct {
	Column string      `yaml:"column"`
	Values []DistEntry `yaml:"values"`
}

// Bias reports demographic distributions as a sampling-bias signal, plus the
// class balance of the derived pass/fail label. Percentages are over
// non-missing values, like value_counts(normalize=True).
type Bias struct {
	School          *Distribution  `yaml:"school,omitempty"`
	Sex             *Distribution  `yaml:"sex,omitempty"`
	Age             *Distribution  `yaml:"age,omitempty"`
	ParentEducation []Distribution `yaml:"parent_education,omitempty"`
	PassFail        *Distribution  `yaml:"pass_fail,omitempty"`
	PassFailSource  string         `yaml:"pass_fail_source,omitempty"`
}

func buildBias(ds *dataset.Dataset) *Bias {
	out := &Bias{}
	if ds.Schema.Has("school") {
		out.School = categoricalDistribution(ds, "school")
	}
	if ds.Schema.Has("sex") {
		out.Sex = categoricalDistribution(ds, "sex")
	}
	if ds.Schema.Has("age") {
		out.Age = numericDistribution(ds, "age")
	}
	for _, col := range []string{"Medu", "Fedu"} {
		if ds.Schema.Has(col) {
			out.ParentEducation = append(out.ParentEducation, *numericDistribution(ds, col))
		}
	}
	if grade, err := ds.DerivePassFail(); err == nil {
		out.PassFailSource = grade
		out.PassFail = numericDistribution(ds, dataset.PassFailColumn)
		// Class balance reads best largest-first.
		sort.SliceStable(out.PassFail.Values, func(i, j int) bool {
			return out.PassFail.Values[i].Count > out.PassFail.Values[j].Count
		})
	}
	return out
}

// categoricalDistribution: normalized frequencies sorted by share descending.
func categoricalDistribution(ds *dataset.Dataset, col string) *Distribution {
	counts := make(map[string]int)
	total := 0
	mask := ds.MissingMask(col)
	for i, rec := range ds.DF.Col(col).Records() {
		if mask[i] {
			continue
		}
		counts[rec]++
		total++
	}
	d := &Distribution{Column: col}
	for v, c := range counts {
		d.Values = append(d.Values, distEntry(v, c, total))
	}
	sort.SliceStable(d.Values, func(i, j int) bool {
		if d.Values[i].Count != d.Values[j].Count {
			return d.Values[i].Count > d.Values[j].Count
		}
		return d.Values[i].Value < d.Values[j].Value
	})
	return d
}

// numericDistribution: normalized frequencies of a discrete numeric column
// (age, education level, pass/fail) sorted by value ascending.
func numericDistribution(ds *dataset.Dataset, col string) *Distribution {
	counts := make(map[float64]int)
	total := 0
	for _, v := range ds.NumericValues(col) {
		counts[v]++
		total++
	}
	keys := make([]float64, 0, len(counts))
	for v := range counts {
		keys = append(keys, v)
	}
	sort.Float64s(keys)

	d := &Distribution{Column: col}
	for _, v := range keys {
		d.Values = append(d.Values, distEntry(formatLevel(v), counts[v], total))
	}
	return d
}

func distEntry(value string, count, total int) DistEntry {
	pct := 0.0
	if total > 0 {
		pct = round2(100 * float64(count) / float64(total))
	}
	return DistEntry{Value: value, Count: count, Percent: pct}
}

func formatLevel(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
