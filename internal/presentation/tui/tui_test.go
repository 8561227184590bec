package tui_test

import (
	"bytes"
	"testing"

	"github.com/aretw0/fable/internal/presentation/tui"
	"github.com/aretw0/fable/pkg/domain"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintReport(t *testing.T) {
	result := domain.ValidationResult{
		Valid: false,
		Issues: []domain.Issue{
			{Code: domain.IssueBrokenReference, Severity: domain.SeverityError, NodeID: "start", Message: "target 'x' does not exist"},
			{Code: domain.IssueNoStartNode, Severity: domain.SeverityWarning, Message: "no start passage"},
		},
		Counts: domain.IssueCounts{Error: 1, Warning: 1},
	}

	var buf bytes.Buffer
	tui.PrintReport(&buf, termenv.Ascii, "tale.yaml", result)

	assert.Equal(t, "tale.yaml: invalid (1 errors, 1 warnings, 0 infos)\n"+
		"  ERROR   BROKEN_REFERENCE [start] target 'x' does not exist\n"+
		"  WARNING NO_START_NODE no start passage\n", buf.String())
}

func TestPrintReport_Valid(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintReport(&buf, termenv.Ascii, "ok.yaml", domain.ValidationResult{Valid: true})
	assert.Equal(t, "ok.yaml: ok (0 errors, 0 warnings, 0 infos)\n", buf.String())
}

func TestSeverityLabel_Colors(t *testing.T) {
	assert.Equal(t, "INFO   ", tui.SeverityLabel(termenv.Ascii, domain.SeverityInfo))
	assert.Contains(t, tui.SeverityLabel(termenv.TrueColor, domain.SeverityError), "\x1b[")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf, termenv.Ascii)
	assert.Contains(t, buf.String(), "|_|  \\__,_|_.__/|_|\\___|")
}

func TestPlainRenderer(t *testing.T) {
	out, err := tui.PlainRenderer("Hello **world**  \n\n")
	require.NoError(t, err)
	assert.Equal(t, "Hello **world**\n", out)
}

func TestPrintEvents(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintEvents(&buf, termenv.Ascii, []domain.Event{{Code: domain.EventConditionBranch, Message: "'x' is true"}})
	assert.Contains(t, buf.String(), "CONDITION_BRANCH: 'x' is true")
}
