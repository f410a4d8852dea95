package dataset

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writeTestCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write test csv: %v", err)
	}
	return path
}

const sampleCSV = `school;sex;age;address;famsize;Pstatus;G1;G2;G3;absences
GP;F;17;U;GT3;A;10;11;12;4
GP;M;16;U;LE3;T;8;9;9;2
MS;F;18;R;GT3;T;14;15;16;0
GP;F;17;U;GT3;A;10;11;12;4
MS;M;19;R;LE3;A;12;13;25;10`

func TestLoad(t *testing.T) {
	ds, err := Load(writeTestCSV(t, sampleCSV), ';')
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if ds.DF.Nrow() != 5 {
		t.Errorf("Expected 5 rows, got %d", ds.DF.Nrow())
	}
	if ds.DF.Ncol() != 10 {
		t.Errorf("Expected 10 columns, got %d", ds.DF.Ncol())
	}

	if got := ds.Schema.Grades; len(got) != 3 {
		t.Errorf("Expected 3 grade columns, got %v", got)
	}
	final, ok := ds.Schema.FinalGrade()
	if !ok || final != "G3" {
		t.Errorf("Expected final grade G3, got %q (ok=%v)", final, ok)
	}

	wantIdentity := []string{"school", "sex", "age", "address", "famsize", "Pstatus"}
	if len(ds.Schema.Identity) != len(wantIdentity) {
		t.Errorf("Expected identity subset %v, got %v", wantIdentity, ds.Schema.Identity)
	}

	wantNumerics := []string{"age", "G1", "G2", "G3", "absences"}
	if len(ds.Schema.Numerics) != len(wantNumerics) {
		t.Fatalf("Expected numerics %v, got %v", wantNumerics, ds.Schema.Numerics)
	}
	for i, name := range wantNumerics {
		if ds.Schema.Numerics[i] != name {
			t.Errorf("Numerics[%d]: expected %s, got %s", i, name, ds.Schema.Numerics[i])
		}
	}
}

func TestLoadEmptyDataset(t *testing.T) {
	path := writeTestCSV(t, "school;sex;age\n")
	_, err := Load(path, ';')
	if err == nil {
		t.Fatal("Expected error for empty dataset, got nil")
	}
	if !errors.Is(err, ErrEmptyDataset) {
		t.Errorf("Expected ErrEmptyDataset, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.csv"), ';'); err == nil {
		t.Fatal("Expected error for missing file, got nil")
	}
}

func TestMissingMask(t *testing.T) {
	csv := `school;sex;age;G3
GP;F;17;12
GP;M;;9
;F;18;16`
	ds, err := Load(writeTestCSV(t, csv), ';')
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	ageMask := ds.MissingMask("age")
	if !ageMask[1] || ageMask[0] || ageMask[2] {
		t.Errorf("Expected age mask [false true false], got %v", ageMask)
	}
	schoolMask := ds.MissingMask("school")
	if !schoolMask[2] || schoolMask[0] || schoolMask[1] {
		t.Errorf("Expected school mask [false false true], got %v", schoolMask)
	}

	if vals := ds.NumericValues("age"); len(vals) != 2 {
		t.Errorf("Expected 2 non-missing ages, got %v", vals)
	}
}

func TestDerivePassFail(t *testing.T) {
	csv := `school;G3
GP;12
GP;9
MS;10
MS;`
	ds, err := Load(writeTestCSV(t, csv), ';')
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	grade, err := ds.DerivePassFail()
	if err != nil {
		t.Fatalf("DerivePassFail() failed: %v", err)
	}
	if grade != "G3" {
		t.Errorf("Expected derivation from G3, got %s", grade)
	}

	vals := ds.FloatColumn(PassFailColumn)
	want := []float64{1, 0, 1, math.NaN()}
	for i, w := range want {
		if math.IsNaN(w) {
			if !math.IsNaN(vals[i]) {
				t.Errorf("Row %d: expected missing pass_fail, got %v", i, vals[i])
			}
			continue
		}
		if vals[i] != w {
			t.Errorf("Row %d: expected pass_fail %v, got %v", i, w, vals[i])
		}
	}

	// Idempotent: a second call must not duplicate the column.
	cols := ds.DF.Ncol()
	if _, err := ds.DerivePassFail(); err != nil {
		t.Fatalf("Second DerivePassFail() failed: %v", err)
	}
	if ds.DF.Ncol() != cols {
		t.Errorf("Expected %d columns after repeat derivation, got %d", cols, ds.DF.Ncol())
	}
}

func TestDerivePassFailNoGrades(t *testing.T) {
	ds, err := Load(writeTestCSV(t, "school;sex\nGP;F\n"), ';')
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if _, err := ds.DerivePassFail(); err == nil {
		t.Fatal("Expected error when no grade column is present, got nil")
	}
}
