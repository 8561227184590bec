package runner

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/aretw0/fable/pkg/domain"
)

// Message types written by JSONHandler.
const (
	MessageFrame  = "frame"
	MessageNotice = "notice"
	MessageError  = "error"
)

// Message is one line of JSONHandler output.
type Message struct {
	Type    string        `json:"type"`
	Frame   *domain.Frame `json:"frame,omitempty"`
	Message string        `json:"message,omitempty"`
}

// JSONHandler implements IOHandler for structured JSON-Lines communication.
// Each frame, notice or error is one JSON object per line. Answers are read
// one per line as a JSON string, an object {"choice": "..."} or raw text.
type JSONHandler struct {
	Encoder *json.Encoder
	input   *linePump
}

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	return &JSONHandler{
		Encoder: json.NewEncoder(w),
		input:   newLinePump(r),
	}
}

func (h *JSONHandler) Show(frame *domain.Frame) error {
	return h.Encoder.Encode(Message{Type: MessageFrame, Frame: frame})
}

// Choices is a no-op: frames already carry their choices.
func (h *JSONHandler) Choices(*domain.Frame) error { return nil }

func (h *JSONHandler) Notice(msg string) error {
	return h.Encoder.Encode(Message{Type: MessageNotice, Message: msg})
}

func (h *JSONHandler) Problem(msg string) error {
	return h.Encoder.Encode(Message{Type: MessageError, Message: msg})
}

// Input reads one answer. Like TextHandler.Input it gives up when ctx ends.
func (h *JSONHandler) Input(ctx context.Context) (string, error) {
	line, err := h.input.next(ctx)
	if err != nil {
		return "", err
	}
	return decodeAnswer(line), nil
}

func decodeAnswer(line string) string {
	var s string
	if err := json.Unmarshal([]byte(line), &s); err == nil {
		return strings.TrimSpace(s)
	}
	var obj struct {
		Choice *string `json:"choice"`
	}
	if err := json.Unmarshal([]byte(line), &obj); err == nil && obj.Choice != nil {
		return strings.TrimSpace(*obj.Choice)
	}
	// Fallback: plain text.
	return line
}
