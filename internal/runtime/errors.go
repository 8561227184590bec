package runtime

import (
	"fmt"

	"github.com/aretw0/fable/pkg/domain"
)

func newError(code domain.RuntimeCode, nodeID, format string, args ...any) *domain.RuntimeError {
	return &domain.RuntimeError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		NodeID:  nodeID,
	}
}

func withDetails(err *domain.RuntimeError, details map[string]any) *domain.RuntimeError {
	err.Details = details
	return err
}
