package calculator

import (
	"github.com/sdpower/ccstatusline/internal/types"
)

// DefaultCapacity is the assumed context-window size in tokens.
const DefaultCapacity = 160000

type Calculator struct {
	capacity int64
}

func New(capacity int64) *Calculator {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Calculator{
		capacity: capacity,
	}
}

func (c *Calculator) Capacity() int64 {
	return c.capacity
}

// ContextPercentage maps a usage record to its share of the context window,
// clamped at 100. found=false yields the "no record" percentage.
func (c *Calculator) ContextPercentage(usage types.TokenCounts, found bool) types.Percentage {
	if !found {
		return types.Percentage{}
	}
	return c.PercentageOf(usage.GetTotal())
}

func (c *Calculator) PercentageOf(usedTokens int64) types.Percentage {
	percentage := float64(usedTokens) * 100 / float64(c.capacity)
	if percentage > 100 {
		percentage = 100
	}
	return types.Percentage{Value: percentage, Found: true}
}

// Remaining returns how many tokens are left before the window is full.
func (c *Calculator) Remaining(usage types.TokenCounts) int64 {
	remaining := c.capacity - usage.GetTotal()
	if remaining < 0 {
		return 0
	}
	return remaining
}
