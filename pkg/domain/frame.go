package domain

// Severity grades validator issues and runtime events.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Rank orders severities from most to least serious.
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 0
	case SeverityWarning:
		return 1
	case SeverityInfo:
		return 2
	}
	return 3
}

// Runtime event codes.
const (
	EventConditionBranch = "CONDITION_BRANCH"
	EventVariableUpdate  = "VARIABLE_UPDATE"
	EventIncludeEnter    = "INCLUDE_ENTER"
	EventIncludeReturn   = "INCLUDE_RETURN"
	EventCommentSkip     = "COMMENT_SKIP"
	EventChoiceHidden    = "CHOICE_HIDDEN"
)

// Event describes something the interpreter did on the way to a frame.
type Event struct {
	Code     string         `json:"code"`
	Message  string         `json:"message"`
	Severity Severity       `json:"severity"`
	NodeID   string         `json:"nodeId,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}

// FrameChoice is an option as shown to the player.
type FrameChoice struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Target string `json:"target"`
}

// Frame is one unit of player-visible output.
type Frame struct {
	NodeID    string         `json:"nodeId"`
	Text      string         `json:"text"`
	Choices   []FrameChoice  `json:"choices"`
	Ending    bool           `json:"ending"`
	Variables map[string]any `json:"variables"`
	Events    []Event        `json:"events"`
}
