package tui

import (
	"fmt"
	"io"

	"github.com/aretw0/fable/pkg/domain"
	"github.com/muesli/termenv"
)

var severityColors = map[domain.Severity]string{
	domain.SeverityError:   "#ef4444",
	domain.SeverityWarning: "#f59e0b",
	domain.SeverityInfo:    "#3b82f6",
}

// SeverityLabel renders an upper-case severity tag in its color.
func SeverityLabel(p termenv.Profile, sev domain.Severity) string {
	label := fmt.Sprintf("%-7s", sev)
	switch sev {
	case domain.SeverityError:
		label = "ERROR  "
	case domain.SeverityWarning:
		label = "WARNING"
	case domain.SeverityInfo:
		label = "INFO   "
	}
	s := p.String(label).Foreground(p.Color(severityColors[sev]))
	if sev == domain.SeverityError {
		s = s.Bold()
	}
	return s.String()
}

// PrintReport writes a human-readable validation report for one story.
func PrintReport(w io.Writer, p termenv.Profile, name string, result domain.ValidationResult) {
	status := p.String("ok").Foreground(p.Color("#10b981"))
	if !result.Valid {
		status = p.String("invalid").Foreground(p.Color(severityColors[domain.SeverityError])).Bold()
	}
	fmt.Fprintf(w, "%s: %s (%d errors, %d warnings, %d infos)\n",
		name, status, result.Counts.Error, result.Counts.Warning, result.Counts.Info)

	for _, is := range result.Issues {
		where := ""
		if is.NodeID != "" {
			where = fmt.Sprintf(" [%s]", is.NodeID)
		}
		fmt.Fprintf(w, "  %s %s%s %s\n", SeverityLabel(p, is.Severity), is.Code, where, is.Message)
	}
}

// PrintEvents writes runtime events, dimmed, for verbose play sessions.
func PrintEvents(w io.Writer, p termenv.Profile, events []domain.Event) {
	for _, ev := range events {
		fmt.Fprintln(w, p.String(fmt.Sprintf("  · %s: %s", ev.Code, ev.Message)).Faint())
	}
}
