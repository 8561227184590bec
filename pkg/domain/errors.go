package domain

import (
	"errors"
	"fmt"
)

// ErrUnknownNodeType is returned by loaders for a node kind they do not know.
var ErrUnknownNodeType = errors.New("unknown node type")

// ErrInvalidNodeID is returned by loaders for IDs outside the lowercase identifier pattern.
var ErrInvalidNodeID = errors.New("invalid node id")

// ErrSaveNotFound is returned by save stores for names they do not hold.
var ErrSaveNotFound = errors.New("save not found")

// RuntimeCode identifies a runtime failure.
type RuntimeCode string

const (
	CodeIncludeDepth   RuntimeCode = "RT001_INCLUDE_DEPTH"
	CodeNoStartNode    RuntimeCode = "RT002_NO_START_NODE"
	CodeNodeNotFound   RuntimeCode = "RT003_NODE_NOT_FOUND"
	CodeInvalidChoice  RuntimeCode = "RT004_INVALID_CHOICE"
	CodeCommentDeadEnd RuntimeCode = "RT005_COMMENT_DEADEND"
	CodeNoNext         RuntimeCode = "RT006_NO_NEXT"
	CodeStepLimit      RuntimeCode = "RT010_STEP_LIMIT"
	CodeSaveVersion    RuntimeCode = "RT020_SAVE_VERSION"
	CodeStoryMismatch  RuntimeCode = "RT021_STORY_MISMATCH"
	CodeMissingNode    RuntimeCode = "RT022_MISSING_NODE"
	CodeMissingReturn  RuntimeCode = "RT023_MISSING_RETURN"
	CodeInvalidSave    RuntimeCode = "RT024_INVALID_SAVE"
)

// RuntimeError is returned by every runtime entry point.
// The session state is left unchanged when one is returned.
type RuntimeError struct {
	Code    RuntimeCode
	Message string
	NodeID  string
	Details map[string]any
	Err     error
}

func (e *RuntimeError) Error() string {
	if e.NodeID != "" {
		return fmt.Sprintf("%s: %s (node '%s')", e.Code, e.Message, e.NodeID)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *RuntimeError) Unwrap() error { return e.Err }

// IsRuntimeCode reports whether err is a RuntimeError with the given code.
func IsRuntimeCode(err error, code RuntimeCode) bool {
	var rtErr *RuntimeError
	return errors.As(err, &rtErr) && rtErr.Code == code
}

// RuntimeCodeOf extracts the code of a RuntimeError, or "" for other errors.
func RuntimeCodeOf(err error) RuntimeCode {
	var rtErr *RuntimeError
	if errors.As(err, &rtErr) {
		return rtErr.Code
	}
	return ""
}
