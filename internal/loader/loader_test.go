package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sdpower/ccstatusline/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assistantLine(ts string, input int) string {
	return fmt.Sprintf(`{"type":"assistant","timestamp":%q,"message":{"role":"assistant","usage":{"input_tokens":%d,"output_tokens":1}}}`, ts, input)
}

func TestLatestUsagePicksNewestInWindow(t *testing.T) {
	lines := make([]string, 60)
	for i := range lines {
		lines[i] = `{"type":"user","message":{"role":"user","content":"hi"}}`
	}
	lines[9] = assistantLine("2025-01-15T10:00:00Z", 10)
	lines[54] = assistantLine("2025-01-15T11:00:00Z", 55)

	usage, found := LatestUsage(lines, DefaultWindow)
	require.True(t, found)
	assert.Equal(t, int64(55), usage.InputTokens)
}

func TestLatestUsageIgnoresLinesOutsideWindow(t *testing.T) {
	lines := make([]string, 60)
	lines[9] = assistantLine("2025-01-15T10:00:00Z", 10)

	_, found := LatestUsage(lines, DefaultWindow)
	assert.False(t, found)

	usage, found := LatestUsage(lines, 60)
	require.True(t, found)
	assert.Equal(t, int64(10), usage.InputTokens)
}

func TestLatestUsageTieKeepsFirst(t *testing.T) {
	lines := []string{
		assistantLine("2025-01-15T10:00:00Z", 1),
		assistantLine("2025-01-15T10:00:00Z", 2),
	}

	usage, found := LatestUsage(lines, DefaultWindow)
	require.True(t, found)
	assert.Equal(t, int64(1), usage.InputTokens)
}

func TestLatestUsageUsesTimestampNotPosition(t *testing.T) {
	lines := []string{
		assistantLine("2025-01-15T12:00:00Z", 1),
		assistantLine("2025-01-15T10:00:00Z", 2),
	}

	usage, found := LatestUsage(lines, DefaultWindow)
	require.True(t, found)
	assert.Equal(t, int64(1), usage.InputTokens)
}

func TestLatestUsageSkipsIneligible(t *testing.T) {
	lines := []string{
		`not json at all`,
		`{"timestamp":"2025-01-15T10:00:00Z","message":{"role":"user","usage":{"input_tokens":7}}}`,
		`{"timestamp":"2025-01-15T10:00:01Z","message":{"role":"assistant"}}`,
		`{"timestamp":"bogus","message":{"role":"assistant","usage":{"input_tokens":8}}}`,
		`{"message":{"role":"assistant","usage":{"input_tokens":9}}}`,
		"",
	}

	_, found := LatestUsage(lines, DefaultWindow)
	assert.False(t, found)
}

func TestLoadLatestUsage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.jsonl")
	content := strings.Join([]string{
		`{"type":"user","timestamp":"2025-01-15T09:59:00Z","message":{"role":"user","content":"hello"}}`,
		assistantLine("2025-01-15T10:00:00Z", 100),
		`{"broken`,
		assistantLine("2025-01-15T10:05:00Z", 200),
	}, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	l := New()
	usage, found, err := l.LoadLatestUsage(context.Background(), path)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, int64(200), usage.InputTokens)
	assert.Equal(t, int64(201), usage.GetTotal())
}

func TestLoadLatestUsageMissingFile(t *testing.T) {
	l := New()

	_, found, err := l.LoadLatestUsage(context.Background(), filepath.Join(t.TempDir(), "missing.jsonl"))
	assert.False(t, found)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	var loaderErr types.LoaderError
	assert.True(t, errors.As(err, &loaderErr))
}

func TestLoadLatestUsageEmptyPath(t *testing.T) {
	_, found, err := New().LoadLatestUsage(context.Background(), "")
	assert.False(t, found)
	assert.ErrorIs(t, err, types.ErrNoTranscript)
}

func TestReadLinesKeepsTrailingEmptyLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("a\nb\n"), 0644))

	lines, err := New().ReadLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", ""}, lines)
}

func TestSetWindowIgnoresNonPositive(t *testing.T) {
	l := New()
	l.SetWindow(0)
	assert.Equal(t, DefaultWindow, l.Window())
	l.SetWindow(10)
	assert.Equal(t, 10, l.Window())
}

func TestLatestRecordCarriesModel(t *testing.T) {
	lines := []string{
		`{"timestamp":"2025-01-15T10:00:00Z","message":{"role":"assistant","model":"claude-sonnet-4-20250514","usage":{"input_tokens":3}}}`,
	}

	record, found := New().LatestRecord(lines)
	require.True(t, found)
	assert.Equal(t, "claude-sonnet-4-20250514", record.Model)
	assert.Equal(t, int64(3), record.Usage.InputTokens)
}

func TestSetTimezoneAppliesToZonelessTimestamps(t *testing.T) {
	lines := []string{
		assistantLine("2025-01-15T10:00:00", 1),
		assistantLine("2025-01-15T05:00:00Z", 2),
	}

	tokyo := New()
	tokyo.SetTimezone(time.FixedZone("JST", 9*3600))
	record, found := tokyo.LatestRecord(lines)
	require.True(t, found)
	assert.Equal(t, int64(2), record.Usage.InputTokens, "10:00 JST is 01:00 UTC")

	utc := New()
	utc.SetTimezone(time.UTC)
	record, found = utc.LatestRecord(lines)
	require.True(t, found)
	assert.Equal(t, int64(1), record.Usage.InputTokens)
}
