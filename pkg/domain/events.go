package domain

import (
	"time"
)

// NodeEvent is emitted each time the interpreter lands on a node.
type NodeEvent struct {
	Timestamp time.Time `json:"timestamp"`
	StoryID   string    `json:"story_id"`
	NodeID    string    `json:"node_id"`
	Kind      NodeKind  `json:"kind"`
	Visits    int       `json:"visits"`
}

// FrameEvent is emitted when a frame is yielded to the player.
type FrameEvent struct {
	Timestamp time.Time `json:"timestamp"`
	StoryID   string    `json:"story_id"`
	Frame     *Frame    `json:"frame"`
	// AutoSteps is the number of silent transitions taken to reach the frame.
	AutoSteps int `json:"auto_steps"`
}

// ErrorEvent is emitted when a Start or Choose call fails.
type ErrorEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	StoryID   string        `json:"story_id"`
	Err       *RuntimeError `json:"error"`
}

// LifecycleHooks defines callbacks for runtime observability.
// Hooks run synchronously on the caller's goroutine; nil hooks are skipped.
// OnNodeEnter and OnFrame report only calls that succeeded: the nodes a
// rolled-back call walked through are never reported.
type LifecycleHooks struct {
	OnNodeEnter func(*NodeEvent)
	OnFrame     func(*FrameEvent)
	OnError     func(*ErrorEvent)
}
