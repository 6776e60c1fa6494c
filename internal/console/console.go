package console

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	savedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	warnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))
)

// Printer writes user-facing output: the summary to Out, problems to Err.
type Printer struct {
	Out io.Writer
	Err io.Writer
}

// Summary prints the summary block followed by where it was saved.
func (p Printer) Summary(summary, path string) {
	fmt.Fprintf(p.Out, "\n%s\n\n", headerStyle.Render("--- Meeting Summary ---"))
	fmt.Fprintln(p.Out, summary)
	fmt.Fprintf(p.Out, "\n%s\n", savedStyle.Render("✅ Summary saved to: "+path))
}

func (p Printer) Error(msg string) {
	fmt.Fprintf(p.Err, "\n%s\n\n", errorStyle.Render("🚨 "+msg))
}

func (p Printer) Warn(msg string) {
	fmt.Fprintf(p.Err, "\n%s\n\n", warnStyle.Render("⚠️ "+msg))
}

// Hint prints indented follow-up guidance under an error.
func (p Printer) Hint(lines ...string) {
	for _, line := range lines {
		fmt.Fprintf(p.Err, "    %s\n", line)
	}
	if len(lines) > 0 {
		fmt.Fprintln(p.Err)
	}
}
