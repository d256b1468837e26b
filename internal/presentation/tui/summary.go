package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/muesli/termenv"

	gensvc "github.com/cgspeck/gen-systemd-svcs"
)

// PrintSummary writes one line per instance of the run plus a totals line.
// Colors follow the terminal's profile and degrade to plain text.
func PrintSummary(w io.Writer, report *gensvc.Report) {
	p := termenv.ColorProfile()
	ok := termenv.String("✓").Foreground(p.Color("#22c55e"))
	bad := termenv.String("✗").Foreground(p.Color("#ef4444"))

	for _, u := range report.Units {
		if u.Err != nil {
			fmt.Fprintf(w, "%s %s: %v\n", bad, u.Name, u.Err)
			continue
		}
		fmt.Fprintf(w, "%s %s → %s\n", ok, u.Name, u.Location)
	}

	written, failed := len(report.Written()), len(report.Failed())
	totals := termenv.String(fmt.Sprintf("%d written, %d failed", written, failed)).Bold()
	if failed > 0 {
		totals = totals.Foreground(p.Color("#ef4444"))
	}
	fmt.Fprintf(w, "\n%s (%s)\n", totals, report.Duration.Round(time.Microsecond))
}
