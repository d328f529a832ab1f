// Package report shows export results to the user and runs the
// post-export "open folder" / "open file" actions.
package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"tm-spectators/internal/export"
)

// Reporter writes styled status lines.
type Reporter struct {
	out io.Writer

	infoStyle  lipgloss.Style
	errorStyle lipgloss.Style
	labelStyle lipgloss.Style
	valueStyle lipgloss.Style
}

// New returns a Reporter whose colour support follows out.
func New(out io.Writer) *Reporter {
	r := lipgloss.NewRenderer(out)
	return &Reporter{
		out: out,
		infoStyle: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("82")), // Green
		errorStyle: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")), // Red
		labelStyle: r.NewStyle().
			Foreground(lipgloss.Color("245")). // Light gray
			Width(20),
		valueStyle: r.NewStyle().
			Foreground(lipgloss.Color("255")), // White
	}
}

// Info prints a success line.
func (r *Reporter) Info(format string, args ...any) {
	fmt.Fprintln(r.out, r.infoStyle.Render("INFO")+" "+fmt.Sprintf(format, args...))
}

// Error prints a failure line. Export errors are shown with their user message.
func (r *Reporter) Error(err error) {
	msg := err.Error()
	var e *export.Error
	if errors.As(err, &e) {
		msg = e.Message()
	}
	fmt.Fprintln(r.out, r.errorStyle.Render("ERROR")+" "+msg)
}

// Field prints an aligned "label value" line.
func (r *Reporter) Field(label string, value any) {
	fmt.Fprintln(r.out, r.labelStyle.Render(label)+r.valueStyle.Render(fmt.Sprint(value)))
}

// Summary prints the result of one export.
func (r *Reporter) Summary(s export.Summary) {
	r.Info("Spectator positions exported to %s.", s.Path)
	r.Field("Rows written", s.RowsWritten)
	r.Field("Duplicates removed", s.DuplicatesRemoved)
	if s.Appended {
		r.Field("Mode", "append")
	} else {
		r.Field("Mode", "write")
	}
}
