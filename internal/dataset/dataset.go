package dataset

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// ErrEmptyDataset is returned when a file parses but contains no data rows.
var ErrEmptyDataset = errors.New("empty dataset")

// PassFailColumn is the derived label appended by DerivePassFail.
const PassFailColumn = "pass_fail"

// passThreshold: final grade >= 10 counts as a pass.
const passThreshold = 10.0

// Dataset is a student performance table loaded from CSV, with its schema
// resolved once at load time. The only mutation after load is appending the
// derived pass_fail column.
type Dataset struct {
	Path   string
	DF     dataframe.DataFrame
	Schema *Resolved

	passFailDerived bool
}

// Load reads a delimited CSV into a typed dataframe. Columns declared in
// StudentSchema are force-typed (grades and numerics as Float so that blank
// cells become NaN instead of flipping the column to String); unknown extra
// columns fall back to type detection.
func Load(path string, delimiter rune) (*Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	// gota rejects a header-only table with a generic error; detect the
	// empty dataset up front so callers get the sentinel.
	if dataLines(raw) <= 1 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyDataset)
	}

	df := dataframe.ReadCSV(bytes.NewReader(raw),
		dataframe.WithDelimiter(delimiter),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.DefaultType(series.String),
		dataframe.WithTypes(schemaTypes()),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("read csv %s: %w", path, df.Err)
	}
	if df.Nrow() == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyDataset)
	}

	return &Dataset{Path: path, DF: df, Schema: resolve(df)}, nil
}

func dataLines(raw []byte) int {
	n := 0
	for _, line := range strings.Split(string(raw), "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}

func resolve(df dataframe.DataFrame) *Resolved {
	declared := make(map[string]Role, len(StudentSchema))
	for _, c := range StudentSchema {
		declared[c.Name] = c.Role
	}
	r := &Resolved{present: make(map[string]bool)}
	names := df.Names()
	types := df.Types()
	for i, name := range names {
		r.present[name] = true
		r.Names = append(r.Names, name)
		if role, ok := declared[name]; ok {
			switch role {
			case Categorical:
				r.Categoricals = append(r.Categoricals, name)
			default:
				r.Numerics = append(r.Numerics, name)
			}
			continue
		}
		// Extra column: classify by detected type.
		switch types[i] {
		case series.Int, series.Float:
			r.Numerics = append(r.Numerics, name)
		default:
			r.Categoricals = append(r.Categoricals, name)
		}
	}
	for _, g := range gradeOrder {
		if r.present[g] {
			r.Grades = append(r.Grades, g)
		}
	}
	for _, c := range identityColumns {
		if r.present[c] {
			r.Identity = append(r.Identity, c)
		}
	}
	return r
}

// isMissingToken reports whether a raw cell value denotes a missing entry.
func isMissingToken(v string) bool {
	switch strings.TrimSpace(v) {
	case "", "NA", "NaN":
		return true
	}
	return false
}

// MissingMask returns, per row, whether the column value is missing.
func (d *Dataset) MissingMask(col string) []bool {
	s := d.DF.Col(col)
	mask := s.IsNaN()
	for i, rec := range s.Records() {
		if isMissingToken(rec) {
			mask[i] = true
		}
	}
	return mask
}

// FloatColumn returns every value of a numeric column, NaN where missing.
func (d *Dataset) FloatColumn(col string) []float64 {
	return d.DF.Col(col).Float()
}

// NumericValues returns the non-missing values of a numeric column.
func (d *Dataset) NumericValues(col string) []float64 {
	all := d.FloatColumn(col)
	out := make([]float64, 0, len(all))
	for _, v := range all {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// Records returns the data rows (header stripped) of the full table.
func (d *Dataset) Records() [][]string {
	recs := d.DF.Records()
	if len(recs) <= 1 {
		return nil
	}
	return recs[1:]
}

// Project returns the data rows restricted to the given columns.
func (d *Dataset) Project(cols []string) ([][]string, error) {
	sub := d.DF.Select(cols)
	if sub.Err != nil {
		return nil, fmt.Errorf("select %v: %w", cols, sub.Err)
	}
	recs := sub.Records()
	if len(recs) <= 1 {
		return nil, nil
	}
	return recs[1:], nil
}

// DerivePassFail appends the pass_fail column (1 if the final grade is at
// least 10, 0 otherwise, missing where the grade is missing) and returns the
// grade column it was derived from. Calling it twice is a no-op.
func (d *Dataset) DerivePassFail() (string, error) {
	grade, ok := d.Schema.FinalGrade()
	if !ok {
		return "", errors.New("no grade column present")
	}
	if d.passFailDerived {
		return grade, nil
	}

	vals := d.FloatColumn(grade)
	recs := make([]string, len(vals))
	for i, v := range vals {
		switch {
		case math.IsNaN(v):
			recs[i] = "NaN"
		case v >= passThreshold:
			recs[i] = "1"
		default:
			recs[i] = "0"
		}
	}
	df := d.DF.Mutate(series.New(recs, series.Int, PassFailColumn))
	if df.Err != nil {
		return "", fmt.Errorf("append %s: %w", PassFailColumn, df.Err)
	}
	d.DF = df
	d.passFailDerived = true
	return grade, nil
}
