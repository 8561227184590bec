package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/fable"
	"github.com/aretw0/fable/internal/config"
	"github.com/aretw0/fable/pkg/adapters/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lighthousePath = "../../examples/stories/lighthouse.yaml"

const brokenStory = `id: broken
nodes:
  start:
    start: true
    content: Hello there, traveller.
    choices:
      - text: Go
        target: nowhere
`

func testConfig() config.Config {
	return config.Config{MaxAutoSteps: 500, MaxIncludeDepth: 8, MaxRepeats: 200, LogLevel: "error"}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValidateFiles(t *testing.T) {
	broken := writeFile(t, "broken.yaml", brokenStory)
	missing := filepath.Join(t.TempDir(), "missing.yaml")

	reports, err := ValidateFiles(context.Background(), []string{lighthousePath, broken, missing})
	require.NoError(t, err)
	require.Len(t, reports, 3)

	assert.Equal(t, lighthousePath, reports[0].Path)
	assert.True(t, reports[0].OK())

	assert.Equal(t, broken, reports[1].Path)
	require.NotNil(t, reports[1].Result)
	assert.False(t, reports[1].OK())
	assert.NotEmpty(t, reports[1].Result.ByCode("BROKEN_REFERENCE"))

	assert.Equal(t, missing, reports[2].Path)
	assert.Nil(t, reports[2].Result)
	assert.NotEmpty(t, reports[2].Error)
	assert.False(t, reports[2].OK())
}

func TestValidateFiles_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ValidateFiles(ctx, []string{lighthousePath})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteReports(t *testing.T) {
	broken := writeFile(t, "broken.yaml", brokenStory)
	reports, err := ValidateFiles(context.Background(), []string{lighthousePath, broken})
	require.NoError(t, err)

	t.Run("text", func(t *testing.T) {
		var out bytes.Buffer
		ok, err := WriteReports(&out, reports, false)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Contains(t, out.String(), lighthousePath+": ok (0 errors, 0 warnings")
		assert.Contains(t, out.String(), broken+": invalid")
		assert.Contains(t, out.String(), "BROKEN_REFERENCE [start]")
	})

	t.Run("json", func(t *testing.T) {
		var out bytes.Buffer
		ok, err := WriteReports(&out, reports[:1], true)
		require.NoError(t, err)
		assert.True(t, ok)

		var decoded []FileReport
		require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
		require.Len(t, decoded, 1)
		require.NotNil(t, decoded[0].Result)
		assert.True(t, decoded[0].Result.Valid)
	})
}

func TestRenderGraph(t *testing.T) {
	out, err := RenderGraph(context.Background(), lighthousePath, "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "graph TD"))
	assert.Contains(t, out, "lamp_room")
	assert.NotContains(t, out, "classDef current")

	eng := fable.New()
	story, err := fable.LoadStory(lighthousePath)
	require.NoError(t, err)
	state := eng.NewSession(story)
	_, err = eng.Start(state, "")
	require.NoError(t, err)
	_, err = eng.Choose(state, "shed")
	require.NoError(t, err)
	data, err := fable.SerializeSaveData(eng.SaveGame(state, fable.SaveOptions{}))
	require.NoError(t, err)
	savePath := writeFile(t, "save.json", string(data))

	out, err = RenderGraph(context.Background(), lighthousePath, savePath)
	require.NoError(t, err)
	assert.Contains(t, out, "class shed current")
}

func TestRenderGraph_Errors(t *testing.T) {
	_, err := RenderGraph(context.Background(), "does-not-exist.yaml", "")
	assert.Error(t, err)

	bad := writeFile(t, "save.json", `{"version": 1}`)
	_, err = RenderGraph(context.Background(), lighthousePath, bad)
	assert.Error(t, err)
}

func TestParseVars(t *testing.T) {
	vars, err := ParseVars([]string{"gold=12", "name=Ada", "brave=true", "empty="})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"gold": 12.0, "name": "Ada", "brave": true, "empty": ""}, vars)

	_, err = ParseVars([]string{"novalue"})
	assert.Error(t, err)
	_, err = ParseVars([]string{"=3"})
	assert.Error(t, err)
}

func TestEvalExpression(t *testing.T) {
	vars := map[string]any{"gold": 12.0, "name": "Ada"}
	tests := []struct {
		src  string
		want string
	}{
		{"gold >= 10", "true"},
		{"gold + 1", "13"},
		{"'Hi ' + name", "Hi Ada"},
		{"missing", "undefined"},
		{"gold / 0", "NaN"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, err := EvalExpression(tt.src, vars)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := EvalExpression("gold +", vars)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gold +")
	assert.Contains(t, err.Error(), "^")
}

func TestRunPlay_SaveAndResume(t *testing.T) {
	savePath := filepath.Join(t.TempDir(), "saves", "lighthouse.json")

	var out bytes.Buffer
	err := RunPlay(context.Background(), PlayOptions{
		StoryPath: lighthousePath,
		SavePath:  savePath,
		Plain:     true,
	}, testConfig(), strings.NewReader("1\nsave\nquit\n"), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "The storm is rising")
	assert.Contains(t, out.String(), "Saved.")
	assert.Contains(t, out.String(), "Bye!")

	data, err := os.ReadFile(savePath)
	require.NoError(t, err)
	save, err := fable.DeserializeSaveData(data)
	require.NoError(t, err)
	assert.Equal(t, "lighthouse", save.StoryID)
	assert.Equal(t, "shed", save.Snapshot.CurrentNodeID)
	assert.Equal(t, "lighthouse.json", save.SaveName)

	out.Reset()
	err = RunPlay(context.Background(), PlayOptions{
		StoryPath: lighthousePath,
		LoadPath:  savePath,
		Plain:     true,
	}, testConfig(), strings.NewReader("1\n"), &out)
	require.NoError(t, err)
	assert.NotContains(t, out.String(), "The storm is rising")
	assert.Contains(t, out.String(), "The shed smells of salt")
}

func TestRunPlay_SaveDisabled(t *testing.T) {
	var out bytes.Buffer
	err := RunPlay(context.Background(), PlayOptions{StoryPath: lighthousePath, Plain: true},
		testConfig(), strings.NewReader("save\n"), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Saving is not enabled.")
}

func TestRunPlay_Metrics(t *testing.T) {
	var out, metrics bytes.Buffer
	err := RunPlay(context.Background(), PlayOptions{
		StoryPath:  lighthousePath,
		Plain:      true,
		MetricsOut: &metrics,
	}, testConfig(), strings.NewReader("2\n"), &out)
	require.NoError(t, err)
	assert.Contains(t, metrics.String(), "fable_node_visits_total")
	assert.Contains(t, metrics.String(), `node_id="locked"`)
	assert.Contains(t, metrics.String(), "fable_frames_total")
}

func TestRunPlay_Verbose(t *testing.T) {
	var out bytes.Buffer
	err := RunPlay(context.Background(), PlayOptions{StoryPath: lighthousePath, Plain: true, Verbose: true},
		testConfig(), strings.NewReader("2\n"), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "CONDITION_BRANCH")
}

func TestRunPlay_RejectsInvalidStory(t *testing.T) {
	broken := writeFile(t, "broken.yaml", brokenStory)

	var out bytes.Buffer
	err := RunPlay(context.Background(), PlayOptions{StoryPath: broken, Plain: true},
		testConfig(), strings.NewReader(""), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 errors")
	assert.Contains(t, out.String(), "BROKEN_REFERENCE")
}

func TestRunPlay_Interrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := RunPlay(ctx, PlayOptions{StoryPath: lighthousePath, Plain: true},
		testConfig(), strings.NewReader("1\n"), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), ">>> Interrupted at 'start' node.")
}

func TestRunPlay_InterruptedAtPrompt(t *testing.T) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	var out bytes.Buffer
	done := make(chan error, 1)
	go func() {
		done <- RunPlay(ctx, PlayOptions{StoryPath: lighthousePath, Plain: true}, testConfig(), pr, &out)
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
		assert.Contains(t, out.String(), "The storm is rising")
		assert.Contains(t, out.String(), ">>> Interrupted at 'start' node.")
	case <-time.After(2 * time.Second):
		t.Fatal("play kept waiting at the prompt after cancellation")
	}
}

func TestRunPlay_BadLogLevel(t *testing.T) {
	cfg := testConfig()
	cfg.LogLevel = "loud"
	err := RunPlay(context.Background(), PlayOptions{StoryPath: lighthousePath},
		cfg, strings.NewReader(""), &bytes.Buffer{})
	assert.Error(t, err)
}

func TestListSaves(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	var out bytes.Buffer
	require.NoError(t, ListSaves(ctx, store, &out))
	assert.Equal(t, ">>> No saves found.\n", out.String())

	eng := fable.New()
	story, err := fable.LoadStory(lighthousePath)
	require.NoError(t, err)
	state := eng.NewSession(story)
	_, err = eng.Start(state, "")
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, "slot1", eng.SaveGame(state, fable.SaveOptions{})))

	out.Reset()
	require.NoError(t, ListSaves(ctx, store, &out))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"NAME", "STORY", "NODE", "SAVED"}, strings.Fields(lines[0]))
	fields := strings.Fields(lines[1])
	assert.Equal(t, []string{"slot1", "lighthouse", "start"}, fields[:3])
}

func TestRunPlay_JSON(t *testing.T) {
	var out bytes.Buffer
	err := RunPlay(context.Background(), PlayOptions{StoryPath: lighthousePath, JSON: true},
		testConfig(), strings.NewReader("\"2\"\n"), &out)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.True(t, json.Valid([]byte(line)), line)
	}
	assert.Contains(t, lines[1], `"nodeId":"locked"`)
}
