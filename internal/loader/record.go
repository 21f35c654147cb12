package loader

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/sdpower/ccstatusline/internal/types"
)

// Layouts tried, in order, for textual timestamps.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

// ParseLine decodes one transcript line. It returns false for blank lines and
// lines that are not JSON objects; it never returns an error.
func ParseLine(line string) (types.Record, bool) {
	return parseLineIn(line, time.Local)
}

func parseLineIn(line string, loc *time.Location) (types.Record, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return types.Record{}, false
	}

	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(line), &raw); err != nil || raw == nil {
		return types.Record{}, false
	}

	record := types.Record{}
	record.Timestamp, record.TimestampValid = resolveTimestamp(raw["timestamp"], loc)

	message, ok := raw["message"].(map[string]interface{})
	if !ok {
		return record, true
	}
	if role, ok := message["role"].(string); ok {
		record.Role = role
	}
	if model, ok := message["model"].(string); ok {
		record.Model = model
	}
	if usage, ok := message["usage"].(map[string]interface{}); ok {
		counts := types.TokenCounts{
			InputTokens:              tokenField(usage, "input_tokens"),
			OutputTokens:             tokenField(usage, "output_tokens"),
			CacheReadInputTokens:     tokenField(usage, "cache_read_input_tokens"),
			CacheCreationInputTokens: tokenField(usage, "cache_creation_input_tokens"),
		}
		record.Usage = &counts
	}

	return record, true
}

// resolveTimestamp converts a raw timestamp to epoch milliseconds.
func resolveTimestamp(v interface{}, loc *time.Location) (float64, bool) {
	switch ts := v.(type) {
	case float64:
		return ts, true
	case string:
		t, ok := parseTimestamp(ts, loc)
		if !ok {
			return 0, false
		}
		return float64(t.UnixMilli()), true
	default:
		return 0, false
	}
}

func parseTimestamp(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}

	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}

	// Date-only forms are UTC midnight.
	for _, layout := range []string{"2006-01-02", "2006-01", "2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

func tokenField(usage map[string]interface{}, key string) int64 {
	if n, ok := usage[key].(float64); ok {
		return int64(n)
	}
	return 0
}
