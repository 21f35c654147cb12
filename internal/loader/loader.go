package loader

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sdpower/ccstatusline/internal/types"
)

// DefaultWindow is how many trailing transcript lines are scanned for usage.
const DefaultWindow = 50

type Loader struct {
	window   int
	debug    bool
	timezone *time.Location
}

func New() *Loader {
	return &Loader{
		window:   DefaultWindow,
		debug:    false,
		timezone: time.Local,
	}
}

func (l *Loader) SetDebug(debug bool) {
	l.debug = debug
}

// SetTimezone sets the zone used for transcript timestamps that carry no offset.
func (l *Loader) SetTimezone(timezone *time.Location) {
	l.timezone = timezone
}

func (l *Loader) SetWindow(window int) {
	if window > 0 {
		l.window = window
	}
}

func (l *Loader) Window() int {
	return l.window
}

// ReadLines returns the transcript split on newlines. A trailing newline yields
// an empty final element.
func (l *Loader) ReadLines(path string) ([]string, error) {
	if path == "" {
		return nil, types.ErrNoTranscript
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, types.LoaderError{Path: path, Err: err}
	}

	return strings.Split(string(data), "\n"), nil
}

// LoadLatestUsage reads the transcript at path and returns the latest assistant
// usage record in the scan window. found is false when there is none; err is
// set only when the transcript could not be read.
func (l *Loader) LoadLatestUsage(ctx context.Context, path string) (usage types.TokenCounts, found bool, err error) {
	if err := ctx.Err(); err != nil {
		return types.TokenCounts{}, false, err
	}

	lines, err := l.ReadLines(path)
	if err != nil {
		if l.debug {
			fmt.Fprintf(os.Stderr, "Debug: %v\n", err)
		}
		return types.TokenCounts{}, false, err
	}

	usage, found = l.latestUsage(lines)
	if l.debug {
		fmt.Fprintf(os.Stderr, "Debug: Scanned %d of %d lines in %s, usage found: %t\n",
			min(len(lines), l.window), len(lines), path, found)
	}

	return usage, found, nil
}

// LatestUsage returns the usage of the assistant record with the greatest
// timestamp among the last window lines. On equal timestamps the earlier line wins.
func LatestUsage(lines []string, window int) (types.TokenCounts, bool) {
	l := New()
	l.SetWindow(window)
	return l.latestUsage(lines)
}

// LatestRecord is LatestUsage returning the whole winning record.
func (l *Loader) LatestRecord(lines []string) (types.Record, bool) {
	var (
		latest types.Record
		found  bool
	)

	start := max(0, len(lines)-l.window)
	for i := start; i < len(lines); i++ {
		record, ok := parseLineIn(lines[i], l.timezone)
		if !ok || !record.IsAssistantUsage() {
			continue
		}
		if found && record.Timestamp <= latest.Timestamp {
			continue
		}

		latest = record
		found = true
	}

	return latest, found
}

func (l *Loader) latestUsage(lines []string) (types.TokenCounts, bool) {
	record, found := l.LatestRecord(lines)
	if !found {
		return types.TokenCounts{}, false
	}
	return *record.Usage, true
}
