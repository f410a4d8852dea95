package report

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/peekknuf/studentqa/internal/dataset"
)

// Grade domain bounds. Hard-coded, not inferred from data: the analysis
// exists to find values outside them.
const (
	gradeMin = 0.0
	gradeMax = 20.0
)

// DescribeRow holds descriptive statistics for one numeric column over its
// non-missing values.
type DescribeRow struct {
	Column string  `yaml:"column"`
	Count  int     `yaml:"count"`
	Mean   float64 `yaml:"mean"`
	Std    float64 `yaml:"std"`
	Min    float64 `yaml:"min"`
	Q25    float64 `yaml:"q25"`
	Median float64 `yaml:"median"`
	Q75    float64 `yaml:"q75"`
	Max    float64 `yaml:"max"`
}

type GradeBounds struct {
	Column   string `yaml:"column"`
	BelowMin int    `yaml:"below_min"`
	AboveMax int    `yaml:"above_max"`
}

type Validity struct {
	Describe []DescribeRow `yaml:"describe"`
	Grades   []GradeBounds `yaml:"grades,omitempty"`
	Absences *DescribeRow  `yaml:"absences,omitempty"`
}

func buildValidity(ds *dataset.Dataset) *Validity {
	out := &Validity{}
	for _, col := range ds.Schema.Numerics {
		out.Describe = append(out.Describe, describe(col, ds.NumericValues(col)))
	}
	for _, col := range ds.Schema.Grades {
		gb := GradeBounds{Column: col}
		for _, v := range ds.NumericValues(col) {
			switch {
			case v < gradeMin:
				gb.BelowMin++
			case v > gradeMax:
				gb.AboveMax++
			}
		}
		out.Grades = append(out.Grades, gb)
	}
	if ds.Schema.Has("absences") {
		row := describe("absences", ds.NumericValues("absences"))
		out.Absences = &row
	}
	return out
}

// describe computes count/mean/std/min/quartiles/max with linearly
// interpolated quantiles.
func describe(col string, vals []float64) DescribeRow {
	row := DescribeRow{Column: col, Count: len(vals)}
	if len(vals) == 0 {
		return row
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	row.Mean, row.Std = stat.MeanStdDev(vals, nil)
	if len(vals) == 1 {
		row.Std = 0
	}
	row.Min = sorted[0]
	row.Max = sorted[len(sorted)-1]
	row.Q25 = stat.Quantile(0.25, stat.LinInterp, sorted, nil)
	row.Median = stat.Quantile(0.5, stat.LinInterp, sorted, nil)
	row.Q75 = stat.Quantile(0.75, stat.LinInterp, sorted, nil)
	return row
}
