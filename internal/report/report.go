// Package report computes the data quality and bias report over a loaded
// student performance dataset. Each section is an independent record; a
// section whose required columns are absent is simply skipped, never an
// error. Only the bias and correlation sections depend on the derived
// pass_fail / final grade column.
package report

import (
	"math"
	"path/filepath"

	"github.com/peekknuf/studentqa/internal/dataset"
)

type Report struct {
	File    string `yaml:"file"`
	Rows    int    `yaml:"rows"`
	Columns int    `yaml:"columns"`

	Completeness *Completeness `yaml:"completeness"`
	Consistency  *Consistency  `yaml:"consistency"`
	Validity     *Validity     `yaml:"validity"`
	Bias         *Bias         `yaml:"bias,omitempty"`
	Correlation  *Correlation  `yaml:"correlation,omitempty"`
}

// Run computes every report section in order. The numeric column set used
// for validity and correlation is the one resolved at load time, so the
// derived pass_fail column never feeds back into them.
func Run(ds *dataset.Dataset) *Report {
	rep := &Report{
		File:    filepath.Base(ds.Path),
		Rows:    ds.DF.Nrow(),
		Columns: ds.DF.Ncol(),
	}
	rep.Completeness = buildCompleteness(ds)
	rep.Consistency = buildConsistency(ds)
	rep.Validity = buildValidity(ds)
	rep.Bias = buildBias(ds)
	rep.Correlation = buildCorrelation(ds)
	return rep
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
