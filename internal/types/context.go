package types

import (
	"math"
	"math/big"
	"strconv"
)

// Level classifies a context percentage for coloring.
type Level int

const (
	LevelNormal Level = iota
	LevelElevated
	LevelHigh
	LevelCritical
)

func (l Level) String() string {
	switch l {
	case LevelCritical:
		return "critical"
	case LevelHigh:
		return "high"
	case LevelElevated:
		return "elevated"
	default:
		return "normal"
	}
}

// Percentage is the context-window fill level derived from the latest usage record.
type Percentage struct {
	Value float64 `json:"value"` // clamped to at most 100
	Found bool    `json:"found"` // false when no usage record was available
}

// String renders one decimal at or above 90 and a rounded integer below it.
// A missing record renders as "0".
func (p Percentage) String() string {
	if !p.Found {
		return "0"
	}
	if p.Value >= 90 {
		return tenthsHalfUp(p.Value)
	}
	return strconv.FormatFloat(math.Floor(p.Value+0.5), 'f', 0, 64)
}

// tenthsHalfUp formats v with one decimal, rounding exact ties upward. The
// arithmetic is done on the exact binary value so 90.25 becomes "90.3" while a
// double just below a tie still rounds down.
func tenthsHalfUp(v float64) string {
	x := new(big.Float).SetPrec(128).SetFloat64(v)
	x.Mul(x, big.NewFloat(10))
	x.Add(x, big.NewFloat(0.5))

	n, _ := x.Int(nil)
	q, r := new(big.Int).QuoRem(n, big.NewInt(10), new(big.Int))
	return q.String() + "." + r.String()
}

// Displayed is the numeric value of String, which is what thresholds apply to.
func (p Percentage) Displayed() float64 {
	v, err := strconv.ParseFloat(p.String(), 64)
	if err != nil {
		return 0
	}
	return v
}

func (p Percentage) Level() Level {
	v := p.Displayed()
	switch {
	case v >= 90:
		return LevelCritical
	case v >= 70:
		return LevelHigh
	case v >= 50:
		return LevelElevated
	default:
		return LevelNormal
	}
}
