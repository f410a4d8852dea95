package render

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/peekknuf/studentqa/internal/dataset"
)

// Columns whose categorical balance is worth a bar chart.
var barChartColumns = []string{"school", "sex", "internet", "guardian"}

// SavePlots writes PNG histograms for the grade columns, absences and age,
// and bar charts for the key categorical columns, returning written paths.
func SavePlots(ds *dataset.Dataset, outDir string) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var written []string
	for _, col := range ds.Schema.Grades {
		path := filepath.Join(outDir, "hist_"+col+".png")
		vals := ds.NumericValues(col)
		if len(vals) == 0 {
			continue
		}
		if err := saveHistogram(path, "Histogram of "+col, col, vals, 15); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	if ds.Schema.Has("absences") {
		if vals := ds.NumericValues("absences"); len(vals) > 0 {
			path := filepath.Join(outDir, "hist_absences.png")
			if err := saveHistogram(path, "Absences Distribution", "absences", vals, 30); err != nil {
				return written, err
			}
			written = append(written, path)
		}
	}
	if ds.Schema.Has("age") {
		if vals := ds.NumericValues("age"); len(vals) > 0 {
			path := filepath.Join(outDir, "hist_age.png")
			if err := saveHistogram(path, "Age Distribution", "age", vals, ageBins(vals)); err != nil {
				return written, err
			}
			written = append(written, path)
		}
	}
	for _, col := range barChartColumns {
		if !ds.Schema.Has(col) {
			continue
		}
		labels, counts := valueCounts(ds, col)
		if len(labels) == 0 {
			continue
		}
		path := filepath.Join(outDir, "bar_"+col+".png")
		if err := saveBarChart(path, "Distribution of "+col, labels, counts); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

// ShowHistograms renders ASCII histograms to w, the terminal stand-in for
// interactive plot display.
func ShowHistograms(w io.Writer, ds *dataset.Dataset) {
	for _, col := range ds.Schema.Grades {
		asciiHistogram(w, "Histogram of "+col, ds.NumericValues(col), 15)
	}
	if ds.Schema.Has("absences") {
		asciiHistogram(w, "Absences Distribution", ds.NumericValues("absences"), 30)
	}
	if ds.Schema.Has("age") {
		if vals := ds.NumericValues("age"); len(vals) > 0 {
			asciiHistogram(w, "Age Distribution", vals, ageBins(vals))
		}
	}
}

// ageBins gives one bin per year of age.
func ageBins(vals []float64) int {
	if len(vals) == 0 {
		return 1
	}
	lo, hi := vals[0], vals[0]
	for _, v := range vals {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	bins := int(hi-lo) + 1
	if bins < 1 {
		bins = 1
	}
	return bins
}

func valueCounts(ds *dataset.Dataset, col string) ([]string, []float64) {
	counts := make(map[string]int)
	mask := ds.MissingMask(col)
	for i, rec := range ds.DF.Col(col).Records() {
		if mask[i] {
			continue
		}
		counts[rec]++
	}
	labels := make([]string, 0, len(counts))
	for v := range counts {
		labels = append(labels, v)
	}
	sort.SliceStable(labels, func(i, j int) bool {
		if counts[labels[i]] != counts[labels[j]] {
			return counts[labels[i]] > counts[labels[j]]
		}
		return labels[i] < labels[j]
	})
	vals := make([]float64, len(labels))
	for i, l := range labels {
		vals[i] = float64(counts[l])
	}
	return labels, vals
}

func saveHistogram(path, title, xlabel string, vals []float64, bins int) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = "Count"
	h, err := plotter.NewHist(plotter.Values(vals), bins)
	if err != nil {
		return fmt.Errorf("histogram %s: %w", xlabel, err)
	}
	p.Add(h)
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func saveBarChart(path, title string, labels []string, counts []float64) error {
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = "Count"
	bars, err := plotter.NewBarChart(plotter.Values(counts), vg.Points(30))
	if err != nil {
		return fmt.Errorf("bar chart %s: %w", title, err)
	}
	p.Add(bars)
	p.NominalX(labels...)
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func asciiHistogram(w io.Writer, title string, vals []float64, bins int) {
	if len(vals) == 0 || bins < 1 {
		return
	}
	lo, hi := vals[0], vals[0]
	for _, v := range vals {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		fmt.Fprintf(w, "%s\n%8.1f %s %d\n\n", title, lo, strings.Repeat("#", 40), len(vals))
		return
	}
	counts := make([]int, bins)
	width := (hi - lo) / float64(bins)
	for _, v := range vals {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}
	maxCount := 0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}
	fmt.Fprintln(w, title)
	for i, c := range counts {
		binLo := lo + float64(i)*width
		binHi := binLo + width
		barLen := 0
		if maxCount > 0 {
			barLen = c * 40 / maxCount
		}
		fmt.Fprintf(w, "%8.1f - %8.1f | %-40s %d\n", binLo, binHi, strings.Repeat("#", barLen), c)
	}
	fmt.Fprintln(w)
}
