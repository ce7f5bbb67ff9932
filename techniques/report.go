package techniques

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	heavyRule = strings.Repeat("=", 80)
	lightRule = strings.Repeat("-", 80)
	errorText = color.New(color.FgRed)
)

// WriteReports prints reports in the playbook's banner layout. With all set
// every report is framed by a heavy rule and followed by a blank line;
// otherwise the single report is printed without the heavy rule.
func WriteReports(w io.Writer, reports []Report, all bool) error {
	for _, r := range reports {
		var b strings.Builder
		if all {
			b.WriteString(heavyRule + "\n")
		}
		fmt.Fprintf(&b, "%d) %s\n", r.ID, r.Name)
		b.WriteString(lightRule + "\n")
		if r.Failed() {
			b.WriteString(errorText.Sprint(r.Text()))
		} else {
			b.WriteString(r.Text())
		}
		b.WriteString("\n")
		if all {
			b.WriteString("\n")
		}
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}
