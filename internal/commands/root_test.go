package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/sdpower/ccstatusline/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTranscript(t *testing.T, inputTokens int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transcript.jsonl")
	line := fmt.Sprintf(`{"timestamp":"2025-01-15T10:00:00Z","message":{"role":"assistant","model":"claude-opus-4-1-20250805","usage":{"input_tokens":%d}}}`, inputTokens)
	require.NoError(t, os.WriteFile(path, []byte(line+"\n"), 0644))
	return path
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("CCSTATUSLINE_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))

	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootRendersStatusLine(t *testing.T) {
	input := map[string]interface{}{
		"session_id":      "abc",
		"transcript_path": writeTranscript(t, 150000),
		"model":           map[string]string{"display_name": "Opus 4.1"},
		"output_style":    map[string]string{"name": "default"},
	}
	raw, err := json.Marshal(input)
	require.NoError(t, err)

	out, _, err := execute(t, string(raw), "--no-color")
	require.NoError(t, err)
	assert.Equal(t, " • 93.8% Opus • default • abc", out)
}

func TestRootToleratesGarbageInput(t *testing.T) {
	out, _, err := execute(t, "definitely not json", "--no-color")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRootDebugReportsInputError(t *testing.T) {
	_, stderr, err := execute(t, "{", "--no-color", "--debug")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Debug:")
}

func TestRootUsesConfigCapacity(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("context_capacity: 300000\n"), 0644))

	raw := fmt.Sprintf(`{"transcript_path":%q,"model":{"display_name":"Sonnet"}}`, writeTranscript(t, 150000))
	out, _, err := execute(t, raw, "--no-color", "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, " • 50% Sonnet", out)
}

func TestUsageCommandJSON(t *testing.T) {
	path := writeTranscript(t, 80000)

	out, _, err := execute(t, "", "usage", path, "--format", "json")
	require.NoError(t, err)

	var report map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "50", report["context_display"])
	assert.Equal(t, "elevated", report["level"])
	assert.Equal(t, true, report["found"])
	assert.Equal(t, "claude-opus-4-1-20250805", report["model"])
}

func TestUsageCommandReadsPathFromStdin(t *testing.T) {
	path := writeTranscript(t, 1000)
	stdin := fmt.Sprintf(`{"transcript_path":%q}`, path)

	out, _, err := execute(t, stdin, "usage")
	require.NoError(t, err)
	assert.Contains(t, out, "Opus-4.1")
	assert.Contains(t, out, "1,000")
}

func TestUsageCommandMissingTranscript(t *testing.T) {
	_, _, err := execute(t, "", "usage", filepath.Join(t.TempDir(), "missing.jsonl"))
	assert.Error(t, err)

	_, _, err = execute(t, "{}", "usage")
	assert.Error(t, err)
}

func TestWatchOnce(t *testing.T) {
	path := writeTranscript(t, 120000)

	out, _, err := execute(t, "", "watch", path, "--continuous=false")
	require.NoError(t, err)
	assert.Contains(t, out, "Context: 75%")
}

func TestHelpMentionsSubcommands(t *testing.T) {
	out, _, err := execute(t, "", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "usage")
	assert.Contains(t, out, "watch")
}

func TestUsageCommandTimezone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcript.jsonl")
	line := `{"timestamp":"2025-01-15T10:00:00","message":{"role":"assistant","usage":{"input_tokens":1000}}}`
	require.NoError(t, os.WriteFile(path, []byte(line+"\n"), 0644))

	out, _, err := execute(t, "", "usage", path, "--format", "json", "--timezone", "Asia/Tokyo")
	require.NoError(t, err)

	var report struct {
		Timestamp time.Time `json:"timestamp"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.True(t, report.Timestamp.Equal(time.Date(2025, 1, 15, 1, 0, 0, 0, time.UTC)), "got %s", report.Timestamp)
}

func TestInvalidTimezone(t *testing.T) {
	path := writeTranscript(t, 1000)

	_, _, err := execute(t, "", "usage", path, "--timezone", "Not/AZone")
	assert.ErrorContains(t, err, "invalid timezone")

	raw := fmt.Sprintf(`{"transcript_path":%q,"model":{"display_name":"Opus"}}`, path)
	out, _, err := execute(t, raw, "--no-color", "--timezone", "Not/AZone")
	require.NoError(t, err)
	assert.Equal(t, " • 1% Opus", out)
}

func TestTranscriptPathSkipsInteractiveStdin(t *testing.T) {
	original := stdinIsTerminal
	t.Cleanup(func() { stdinIsTerminal = original })
	stdinIsTerminal = func(io.Reader) bool { return true }

	_, err := transcriptPath(nil, strings.NewReader(`{"transcript_path":"/tmp/x.jsonl"}`))
	assert.ErrorIs(t, err, types.ErrNoTranscript)

	path, err := transcriptPath([]string{"/tmp/y.jsonl"}, strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/y.jsonl", path)
}

func TestTranscriptPathReadsPipedStdin(t *testing.T) {
	path, err := transcriptPath(nil, strings.NewReader(`{"transcript_path":"/tmp/x.jsonl"}`))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.jsonl", path)
}
