package validator

import (
	"log/slog"
	"time"

	"github.com/aretw0/fable/internal/logging"
	"github.com/aretw0/fable/pkg/domain"
)

// Option configures a validation run.
type Option func(*config)

type config struct {
	logger *slog.Logger
}

// WithLogger sets the logger that receives the per-run summary.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// check inspects one aspect of a story and appends what it finds.
type check func(g *graph, report *reporter)

var checks = []check{
	checkStartNodes,
	checkReferences,
	checkReachability,
	checkDeadEnds,
	checkContent,
	checkCycles,
	checkConditions,
	checkVariables,
}

// Validate runs every check against story.
func Validate(story *domain.Story) domain.ValidationResult {
	return ValidateWith(story)
}

// ValidateWith runs every check against story and returns the issues in a
// stable order. It never mutates the story.
func ValidateWith(story *domain.Story, opts ...Option) domain.ValidationResult {
	cfg := &config{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(cfg)
	}

	started := time.Now()
	g := newGraph(story)
	report := &reporter{}
	for _, c := range checks {
		c(g, report)
	}

	issues := report.issues
	if issues == nil {
		issues = []domain.Issue{}
	}
	domain.SortIssues(issues)

	var counts domain.IssueCounts
	for _, is := range issues {
		switch is.Severity {
		case domain.SeverityError:
			counts.Error++
		case domain.SeverityWarning:
			counts.Warning++
		case domain.SeverityInfo:
			counts.Info++
		}
	}

	result := domain.ValidationResult{
		Valid:      counts.Error == 0,
		Issues:     issues,
		Counts:     counts,
		DurationMs: float64(time.Since(started).Microseconds()) / 1000,
	}

	cfg.logger.Debug("story validated",
		"story_id", g.storyID,
		"nodes", len(g.ids),
		"errors", counts.Error,
		"warnings", counts.Warning,
		"infos", counts.Info,
		"duration_ms", result.DurationMs)

	return result
}

// graph is a read-only view of the story taken once per run.
type graph struct {
	storyID  string
	ids      []string
	nodes    map[string]domain.Node
	outgoing map[string][]domain.Edge
	edges    []domain.Edge
}

func newGraph(story *domain.Story) *graph {
	g := &graph{
		nodes:    make(map[string]domain.Node),
		outgoing: make(map[string][]domain.Edge),
	}
	if story == nil {
		return g
	}
	g.storyID = story.ID
	for _, n := range story.Nodes() {
		g.ids = append(g.ids, n.NodeID())
		g.nodes[n.NodeID()] = n
	}
	g.edges = story.Edges()
	for _, e := range g.edges {
		g.outgoing[e.Source] = append(g.outgoing[e.Source], e)
	}
	return g
}

func (g *graph) exists(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

type reporter struct {
	issues []domain.Issue
}

func (r *reporter) add(code string, sev domain.Severity, cat domain.IssueCategory, nodeID, msg string, details map[string]any) {
	r.issues = append(r.issues, domain.Issue{
		Code:     code,
		Severity: sev,
		Category: cat,
		Message:  msg,
		NodeID:   nodeID,
		Details:  details,
	})
}
