package document

import "fmt"

// NodeError reports a node that could not be decoded.
type NodeError struct {
	NodeID string
	Err    error
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("node '%s': %v", e.NodeID, e.Err)
}

func (e *NodeError) Unwrap() error { return e.Err }
