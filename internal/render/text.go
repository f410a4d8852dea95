package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/peekknuf/studentqa/internal/report"
)

// Text renders the full report to w as colored section headers with tables,
// in the order the sections were computed.
func Text(w io.Writer, rep *report.Report) {
	header(w, "Dataset")
	fmt.Fprintf(w, "File: %s\n", rep.File)
	fmt.Fprintf(w, "Rows: %s | Columns: %d\n\n", humanize.Comma(int64(rep.Rows)), rep.Columns)

	writeCompleteness(w, rep.Completeness)
	writeConsistency(w, rep.Consistency)
	writeValidity(w, rep.Validity)
	writeBias(w, rep.Bias)
	writeCorrelation(w, rep.Correlation)
}

func header(w io.Writer, title string) {
	color.New(color.FgCyan, color.Bold).Fprintf(w, "=== %s ===\n", title)
}

func subheader(w io.Writer, title string) {
	color.New(color.FgYellow).Fprintf(w, "--- %s ---\n", title)
}

func writeCompleteness(w io.Writer, c *report.Completeness) {
	if c == nil {
		return
	}
	header(w, "Missing Values (Completeness)")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Column", "Missing", "Percent"})
	for _, col := range c.Columns {
		table.Append([]string{col.Column, strconv.Itoa(col.Count), fmt.Sprintf("%.2f%%", col.Percent)})
	}
	table.Render()
	fmt.Fprintf(w, "Total missing values: %d\n\n", c.TotalMissing)
}

func writeConsistency(w io.Writer, c *report.Consistency) {
	if c == nil {
		return
	}
	header(w, "Categorical Values & Duplicates (Consistency)")
	for _, ft := range c.Categorical {
		subheader(w, ft.Column)
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"Value", "Count"})
		for _, vc := range ft.Values {
			table.Append([]string{vc.Value, strconv.Itoa(vc.Count)})
		}
		table.Render()
	}
	fmt.Fprintf(w, "Completely duplicated rows: %d\n", c.ExactDuplicates)
	if len(c.IdentityColumns) > 0 {
		fmt.Fprintf(w, "Possible duplicates based on %v: %d\n", c.IdentityColumns, c.IdentityDuplicates)
	}
	fmt.Fprintln(w)
}

func writeValidity(w io.Writer, v *report.Validity) {
	if v == nil {
		return
	}
	header(w, "Validity Checks (Ranges / Outliers)")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Column", "Count", "Mean", "Std", "Min", "25%", "50%", "75%", "Max"})
	for _, row := range v.Describe {
		table.Append(describeRow(row))
	}
	table.Render()

	for _, gb := range v.Grades {
		subheader(w, gb.Column+" validity")
		fmt.Fprintf(w, "Values < 0: %d\n", gb.BelowMin)
		fmt.Fprintf(w, "Values > 20: %d\n", gb.AboveMax)
	}
	if v.Absences != nil {
		subheader(w, "absences distribution")
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"Column", "Count", "Mean", "Std", "Min", "25%", "50%", "75%", "Max"})
		table.Append(describeRow(*v.Absences))
		table.Render()
	}
	fmt.Fprintln(w)
}

func describeRow(row report.DescribeRow) []string {
	return []string{
		row.Column,
		strconv.Itoa(row.Count),
		fmt.Sprintf("%.2f", row.Mean),
		fmt.Sprintf("%.2f", row.Std),
		fmt.Sprintf("%.2f", row.Min),
		fmt.Sprintf("%.2f", row.Q25),
		fmt.Sprintf("%.2f", row.Median),
		fmt.Sprintf("%.2f", row.Q75),
		fmt.Sprintf("%.2f", row.Max),
	}
}

func writeBias(w io.Writer, b *report.Bias) {
	if b == nil {
		return
	}
	header(w, "Sampling / Demographic Bias")
	writeDistribution(w, b.School)
	writeDistribution(w, b.Sex)
	writeDistribution(w, b.Age)
	for i := range b.ParentEducation {
		writeDistribution(w, &b.ParentEducation[i])
	}
	if b.PassFail != nil {
		subheader(w, fmt.Sprintf("pass/fail label (%s >= 10)", b.PassFailSource))
		distributionTable(w, b.PassFail)
	}
	fmt.Fprintln(w)
}

func writeDistribution(w io.Writer, d *report.Distribution) {
	if d == nil {
		return
	}
	subheader(w, d.Column+" distribution")
	distributionTable(w, d)
}

func distributionTable(w io.Writer, d *report.Distribution) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Value", "Count", "Percent"})
	for _, e := range d.Values {
		table.Append([]string{e.Value, strconv.Itoa(e.Count), fmt.Sprintf("%.2f%%", e.Percent)})
	}
	table.Render()
}

func writeCorrelation(w io.Writer, c *report.Correlation) {
	if c == nil {
		return
	}
	header(w, fmt.Sprintf("Correlation with %s (Feature Quality)", c.Target))
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Column", "r"})
	for _, e := range c.Entries {
		table.Append([]string{e.Column, fmt.Sprintf("%.3f", e.R)})
	}
	table.Render()
	fmt.Fprintln(w)
}
