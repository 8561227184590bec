package domain

import (
	"cmp"
	"slices"
)

// IssueCategory groups validator findings.
type IssueCategory string

const (
	CategoryStructure    IssueCategory = "structure"
	CategoryReference    IssueCategory = "reference"
	CategoryReachability IssueCategory = "reachability"
	CategoryFlow         IssueCategory = "flow"
	CategoryContent      IssueCategory = "content"
	CategoryCycle        IssueCategory = "cycle"
	CategoryExpression   IssueCategory = "expression"
	CategoryState        IssueCategory = "state"
)

// Validator issue codes.
const (
	IssueNoStartNode          = "NO_START_NODE"
	IssueMultipleStartNodes   = "MULTIPLE_START_NODES"
	IssueBrokenReference      = "BROKEN_REFERENCE"
	IssueUnreachableNode      = "UNREACHABLE_NODE"
	IssueUnmarkedDeadEnd      = "UNMARKED_DEAD_END"
	IssueChoiceWithoutOptions = "CHOICE_WITHOUT_OPTIONS"
	IssueIncludeNoReturn      = "INCLUDE_NO_RETURN"
	IssueEmptyContent         = "EMPTY_CONTENT"
	IssueShortContent         = "SHORT_CONTENT"
	IssueNonTerminatingCycle  = "NON_TERMINATING_CYCLE"
	IssueCycleDetected        = "CYCLE_DETECTED"
	IssueInvalidCondition     = "INVALID_CONDITION"
	IssueNoStateChange        = "NO_STATE_CHANGE"
	IssueVariableNoNext       = "VARIABLE_NO_NEXT"
	IssueEffectfulCondition   = "EFFECTFUL_CONDITION"
)

// Issue is a single validator finding.
type Issue struct {
	Code     string         `json:"code"`
	Severity Severity       `json:"severity"`
	Category IssueCategory  `json:"category"`
	Message  string         `json:"message"`
	NodeID   string         `json:"nodeId,omitempty"`
	Details  map[string]any `json:"details,omitempty"`
}

// CompareIssues orders issues by severity rank, code, node ID and message.
func CompareIssues(a, b Issue) int {
	return cmp.Or(
		cmp.Compare(a.Severity.Rank(), b.Severity.Rank()),
		cmp.Compare(a.Code, b.Code),
		cmp.Compare(a.NodeID, b.NodeID),
		cmp.Compare(a.Message, b.Message),
	)
}

// SortIssues sorts issues in place using CompareIssues.
func SortIssues(issues []Issue) {
	slices.SortStableFunc(issues, CompareIssues)
}

// IssueCounts tallies issues by severity.
type IssueCounts struct {
	Error   int `json:"error"`
	Warning int `json:"warning"`
	Info    int `json:"info"`
}

// ValidationResult is the outcome of validating a Story.
type ValidationResult struct {
	Valid      bool        `json:"valid"`
	Issues     []Issue     `json:"issues"`
	Counts     IssueCounts `json:"counts"`
	DurationMs float64     `json:"durationMs"`
}

// ByCode returns the issues carrying the given code.
func (r ValidationResult) ByCode(code string) []Issue {
	var out []Issue
	for _, is := range r.Issues {
		if is.Code == code {
			out = append(out, is)
		}
	}
	return out
}
