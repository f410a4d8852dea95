package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/peekknuf/studentqa/internal/dataset"
	"github.com/peekknuf/studentqa/internal/report"
)

const sampleCSV = `school;sex;age;address;famsize;Pstatus;G1;G2;G3;absences
GP;F;17;U;GT3;A;10;11;12;4
GP;M;16;U;LE3;T;8;9;9;2
MS;F;18;R;GT3;T;14;15;16;0
GP;F;17;U;GT3;A;10;11;12;4
MS;M;19;R;LE3;A;12;13;25;10`

func loadSample(t *testing.T) (*dataset.Dataset, *report.Report) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatalf("write test csv: %v", err)
	}
	ds, err := dataset.Load(path, ';')
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	return ds, report.Run(ds)
}

func TestTextRenderSections(t *testing.T) {
	_, rep := loadSample(t)

	var buf bytes.Buffer
	Text(&buf, rep)
	out := buf.String()

	for _, want := range []string{
		"Missing Values (Completeness)",
		"Categorical Values & Duplicates (Consistency)",
		"Validity Checks (Ranges / Outliers)",
		"Sampling / Demographic Bias",
		"Correlation with G3",
		"Completely duplicated rows: 1",
		"pass/fail label (G3 >= 10)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Text output missing %q", want)
		}
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	_, rep := loadSample(t)

	var buf bytes.Buffer
	if err := YAML(&buf, rep); err != nil {
		t.Fatalf("YAML() failed: %v", err)
	}

	var decoded report.Report
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded.Rows != rep.Rows {
		t.Errorf("Expected %d rows after round trip, got %d", rep.Rows, decoded.Rows)
	}
	if decoded.Consistency.ExactDuplicates != 1 {
		t.Errorf("Expected 1 exact duplicate after round trip, got %d",
			decoded.Consistency.ExactDuplicates)
	}
	if decoded.Correlation == nil || decoded.Correlation.Target != "G3" {
		t.Error("Correlation section lost in round trip")
	}
}

func TestTablesExport(t *testing.T) {
	_, rep := loadSample(t)
	outDir := t.TempDir()

	written, err := Tables(rep, outDir)
	if err != nil {
		t.Fatalf("Tables() failed: %v", err)
	}

	want := []string{
		"missing_summary.csv",
		"school_distribution.csv",
		"sex_distribution.csv",
		"pass_fail_distribution.csv",
		"correlation_final_grade.csv",
	}
	if len(written) != len(want) {
		t.Errorf("Expected %d files, got %d: %v", len(want), len(written), written)
	}
	for _, name := range want {
		path := filepath.Join(outDir, name)
		b, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("Expected %s to be written: %v", name, err)
		}
		if len(b) == 0 {
			t.Errorf("%s is empty", name)
		}
	}

	b, _ := os.ReadFile(filepath.Join(outDir, "missing_summary.csv"))
	if !strings.Contains(string(b), "missing_count") {
		t.Errorf("missing_summary.csv lacks header: %q", string(b))
	}
}

func TestSavePlots(t *testing.T) {
	ds, _ := loadSample(t)
	outDir := t.TempDir()

	written, err := SavePlots(ds, outDir)
	if err != nil {
		t.Fatalf("SavePlots() failed: %v", err)
	}
	// G1/G2/G3 histograms, absences, age, school and sex bar charts.
	if len(written) != 7 {
		t.Errorf("Expected 7 plot files, got %d: %v", len(written), written)
	}
	for _, path := range written {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("Expected plot %s: %v", path, err)
		}
		if info.Size() == 0 {
			t.Errorf("Plot %s is empty", path)
		}
	}
}

func TestShowHistogramsAllMissingAge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.csv")
	csv := "school;age;G3\nGP;;12\nMS;;9"
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatalf("write test csv: %v", err)
	}
	ds, err := dataset.Load(path, ';')
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	var buf bytes.Buffer
	ShowHistograms(&buf, ds)
	out := buf.String()

	if !strings.Contains(out, "Histogram of G3") {
		t.Errorf("Expected G3 histogram, got %q", out)
	}
	if strings.Contains(out, "Age Distribution") {
		t.Errorf("Expected no age histogram when every age is missing, got %q", out)
	}
}

func TestAgeBinsEmpty(t *testing.T) {
	if bins := ageBins(nil); bins != 1 {
		t.Errorf("Expected 1 bin for no values, got %d", bins)
	}
}

func TestASCIIHistogram(t *testing.T) {
	var buf bytes.Buffer
	asciiHistogram(&buf, "Histogram of G3", []float64{9, 12, 12, 16, 25}, 4)
	out := buf.String()

	if !strings.Contains(out, "Histogram of G3") {
		t.Errorf("ASCII histogram missing title: %q", out)
	}
	if lines := strings.Count(out, "\n"); lines < 5 {
		t.Errorf("Expected a line per bin plus title, got %q", out)
	}
	if !strings.Contains(out, "#") {
		t.Errorf("ASCII histogram has no bars: %q", out)
	}
}
