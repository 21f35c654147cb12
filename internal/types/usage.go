package types

// TokenCounts holds the four token fields of an assistant usage record.
// Absent fields decode as zero.
type TokenCounts struct {
	InputTokens              int64 `json:"input_tokens"`
	OutputTokens             int64 `json:"output_tokens"`
	CacheCreationInputTokens int64 `json:"cache_creation_input_tokens"`
	CacheReadInputTokens     int64 `json:"cache_read_input_tokens"`
}

// GetTotal returns the number of tokens occupying the context window.
func (tc TokenCounts) GetTotal() int64 {
	return tc.InputTokens + tc.OutputTokens + tc.CacheReadInputTokens + tc.CacheCreationInputTokens
}

// Record is one decoded transcript line.
type Record struct {
	// Timestamp is in epoch milliseconds when TimestampValid is set.
	Timestamp      float64
	TimestampValid bool
	Usage          *TokenCounts
	Role           string
	Model          string
}

// IsAssistantUsage reports whether the record can compete for the latest usage slot.
func (r Record) IsAssistantUsage() bool {
	return r.TimestampValid && r.Usage != nil && r.Role == "assistant"
}
