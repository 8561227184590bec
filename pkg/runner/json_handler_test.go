package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, out string) []Message {
	t.Helper()
	var msgs []Message
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		var m Message
		require.NoError(t, json.Unmarshal([]byte(line), &m), line)
		msgs = append(msgs, m)
	}
	return msgs
}

func TestJSONHandler_Output(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := NewJSONHandler(strings.NewReader(""), buf)

	require.NoError(t, handler.Show(sampleFrame))
	require.NoError(t, handler.Choices(sampleFrame))
	require.NoError(t, handler.Notice("Saved."))
	require.NoError(t, handler.Problem("No such choice: 9"))

	msgs := decodeLines(t, buf.String())
	require.Len(t, msgs, 3, "choices travel inside the frame")

	assert.Equal(t, MessageFrame, msgs[0].Type)
	require.NotNil(t, msgs[0].Frame)
	assert.Equal(t, "hall", msgs[0].Frame.NodeID)
	assert.Len(t, msgs[0].Frame.Choices, 2)

	assert.Equal(t, Message{Type: MessageNotice, Message: "Saved."}, msgs[1])
	assert.Equal(t, Message{Type: MessageError, Message: "No such choice: 9"}, msgs[2])
}

func TestJSONHandler_Input(t *testing.T) {
	input := strings.Join([]string{
		`"yard"`,
		`{"choice": " hall#1 "}`,
		`2`,
		`plain words`,
		`{"other": true}`,
	}, "\n")
	handler := NewJSONHandler(strings.NewReader(input), io.Discard)

	var got []string
	for {
		val, err := handler.Input(context.Background())
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, val)
	}
	assert.Equal(t, []string{"yard", "hall#1", "2", "plain words", `{"other": true}`}, got)
}

func TestJSONHandler_InputCancelled(t *testing.T) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })

	handler := NewJSONHandler(pr, io.Discard)
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	done := make(chan error, 1)
	go func() {
		_, err := handler.Input(ctx)
		done <- err
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Input kept waiting for an answer after cancellation")
	}
}
