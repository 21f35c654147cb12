package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/sdpower/ccstatusline/internal/types"
)

// Palette maps each status-line role to a style. It is passed to formatters
// rather than looked up globally.
type Palette struct {
	Branch   lipgloss.Style
	Muted    lipgloss.Style
	Normal   lipgloss.Style
	Elevated lipgloss.Style
	High     lipgloss.Style
	Critical lipgloss.Style
}

// NewRenderer returns a lipgloss renderer with a fixed color profile. The host
// reads our stdout through a pipe, so terminal detection would drop all color.
func NewRenderer(w io.Writer, noColor bool) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	} else {
		r.SetColorProfile(termenv.ANSI256)
	}
	return r
}

func DefaultPalette(r *lipgloss.Renderer) Palette {
	bold := r.NewStyle().Bold(true)
	gray := bold.Foreground(lipgloss.Color("8"))

	return Palette{
		Branch:   bold.Foreground(lipgloss.Color("5")),
		Muted:    gray,
		Normal:   gray,
		Elevated: bold.Foreground(lipgloss.Color("3")),
		High:     bold.Foreground(lipgloss.Color("208")),
		Critical: bold.Foreground(lipgloss.Color("1")),
	}
}

func (p Palette) ForLevel(level types.Level) lipgloss.Style {
	switch level {
	case types.LevelCritical:
		return p.Critical
	case types.LevelHigh:
		return p.High
	case types.LevelElevated:
		return p.Elevated
	default:
		return p.Normal
	}
}
