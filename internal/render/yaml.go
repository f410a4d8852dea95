package render

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/peekknuf/studentqa/internal/report"
)

// YAML writes the whole report as a YAML document, for programmatic
// consumption of the same records the text renderer prints.
func YAML(w io.Writer, rep *report.Report) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}
