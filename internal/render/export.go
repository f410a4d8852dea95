package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/peekknuf/studentqa/internal/report"
)

// Tables writes the summary tables (missing values, school/sex/pass-fail
// distributions, correlation with the final grade) as CSV files under
// outDir and returns the written paths. Sections absent from the report are
// skipped.
func Tables(rep *report.Report, outDir string) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var written []string
	write := func(name string, recs [][]string) error {
		path := filepath.Join(outDir, name)
		if err := writeCSV(path, recs); err != nil {
			return err
		}
		written = append(written, path)
		return nil
	}

	if c := rep.Completeness; c != nil {
		recs := [][]string{{"column", "missing_count", "missing_percent"}}
		for _, col := range c.Columns {
			recs = append(recs, []string{col.Column, strconv.Itoa(col.Count), fmt.Sprintf("%.2f", col.Percent)})
		}
		if err := write("missing_summary.csv", recs); err != nil {
			return written, err
		}
	}
	if b := rep.Bias; b != nil {
		for name, d := range map[string]*report.Distribution{
			"school_distribution.csv":    b.School,
			"sex_distribution.csv":       b.Sex,
			"pass_fail_distribution.csv": b.PassFail,
		} {
			if d == nil {
				continue
			}
			if err := write(name, distributionRecords(d)); err != nil {
				return written, err
			}
		}
	}
	if c := rep.Correlation; c != nil {
		recs := [][]string{{"column", "r"}}
		for _, e := range c.Entries {
			recs = append(recs, []string{e.Column, fmt.Sprintf("%.6f", e.R)})
		}
		if err := write("correlation_final_grade.csv", recs); err != nil {
			return written, err
		}
	}
	return written, nil
}

func distributionRecords(d *report.Distribution) [][]string {
	recs := [][]string{{"value", "count", "percent"}}
	for _, e := range d.Values {
		recs = append(recs, []string{e.Value, strconv.Itoa(e.Count), fmt.Sprintf("%.2f", e.Percent)})
	}
	return recs
}

func writeCSV(path string, recs [][]string) error {
	df := dataframe.LoadRecords(recs,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return fmt.Errorf("build table %s: %w", filepath.Base(path), df.Err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := df.WriteCSV(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
