package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenCountsGetTotal(t *testing.T) {
	assert.Equal(t, int64(0), TokenCounts{}.GetTotal())
	assert.Equal(t, int64(180), TokenCounts{
		InputTokens:              100,
		OutputTokens:             50,
		CacheReadInputTokens:     20,
		CacheCreationInputTokens: 10,
	}.GetTotal())
}

func TestPercentageAbsentVersusZero(t *testing.T) {
	absent := Percentage{}
	zero := Percentage{Value: 0, Found: true}

	assert.Equal(t, "0", absent.String())
	assert.Equal(t, "0", zero.String())
	assert.NotEqual(t, absent, zero)
}

func TestPercentageLevels(t *testing.T) {
	tests := []struct {
		value float64
		want  Level
	}{
		{0, LevelNormal},
		{49.4, LevelNormal},
		{49.5, LevelElevated},
		{69.9, LevelHigh},
		{89.4, LevelHigh},
		{89.5, LevelCritical},
		{100, LevelCritical},
	}

	for _, tt := range tests {
		p := Percentage{Value: tt.value, Found: true}
		assert.Equal(t, tt.want, p.Level(), "value %v", tt.value)
	}
}

func TestPercentageOneDecimalRoundsTiesUp(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{90.25, "90.3"},
		{91.25, "91.3"},
		{90.75, "90.8"},
		{90.35, "90.3"}, // the double is just below the tie
		{93.44, "93.4"},
		{100, "100.0"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Percentage{Value: tt.value, Found: true}.String(), "value %v", tt.value)
	}
}
