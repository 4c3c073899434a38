// Package observability provides logging setup and formatted summaries for
// the command line tool.
package observability

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/tabcheck/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

// pad right-pads s with spaces to n runes.
func pad(s string, n int) string {
	if c := utf8.RuneCountInString(s); c < n {
		return s + strings.Repeat(" ", n-c)
	}
	return s
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, boxWidth-4), boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintReport outputs the result of checking one file. Passing files get a
// single-line box.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintReport(report *types.Report) {
	if report == nil {
		return
	}

	name := filepath.Base(report.File)
	if report.Passed {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate("✅ "+name, boxWidth-4), boxWidth-4))
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	if report.Stage != "" {
		sb.WriteString(fmt.Sprintf("Stopped at: %s\n", report.Stage))
	}
	sb.WriteString(fmt.Sprintf("Found %d problems:\n\n", len(report.Messages)))

	count := min(len(report.Messages), maxItemsToShow)
	for i := 0; i < count; i++ {
		m := report.Messages[i]
		sb.WriteString(fmt.Sprintf("⚠ %s\n", m.Check))
		sb.WriteString(fmt.Sprintf("  %s\n", m.Text))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}
	if len(report.Messages) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more", len(report.Messages)-maxItemsToShow))
	}

	p.printBox("❌ "+name, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSummary outputs the totals of a batch run followed by the failing
// files.
func (p *Printer) PrintSummary(reports *types.Reports) {
	if reports == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run:      %s\n", reports.RunID))
	if reports.Profile != "" {
		sb.WriteString(fmt.Sprintf("Profile:  %s\n", reports.Profile))
	}
	sb.WriteString(fmt.Sprintf("Files:    %d\n", reports.Total))
	sb.WriteString(fmt.Sprintf("Failed:   %d\n", reports.Failed))

	var failed []string
	for _, r := range reports.Reports {
		if !r.Passed {
			failed = append(failed, filepath.Base(r.File))
		}
	}
	if len(failed) > 0 {
		sb.WriteString("\nFailing files:\n")
		count := min(len(failed), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", failed[i]))
		}
		if len(failed) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(failed)-maxItemsToShow))
		}
	}

	p.printBox("BATCH SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}
