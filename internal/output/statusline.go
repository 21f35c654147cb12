package output

import (
	"strings"

	"github.com/sdpower/ccstatusline/internal/types"
)

const separator = " • "

// Status is everything one status line shows. Empty fields drop their segment.
type Status struct {
	Branch           string
	ModelDisplayName string
	Context          types.Percentage
	OutputStyle      string
	SessionID        string
}

type StatusFormatter struct {
	palette Palette
}

func NewStatusFormatter(palette Palette) *StatusFormatter {
	return &StatusFormatter{palette: palette}
}

// Format joins the branch, model, output style and session segments in that order.
func (f *StatusFormatter) Format(s Status) string {
	var b strings.Builder
	b.WriteString(f.branch(s.Branch))
	b.WriteString(f.model(s.ModelDisplayName, s.Context))
	b.WriteString(f.muted(s.OutputStyle))
	b.WriteString(f.muted(s.SessionID))
	return b.String()
}

func (f *StatusFormatter) branch(name string) string {
	if name == "" {
		return ""
	}
	return f.palette.Branch.Render(" " + name)
}

// The context percentage rides along with the model name and is hidden with it.
func (f *StatusFormatter) model(displayName string, context types.Percentage) string {
	if displayName == "" {
		return ""
	}
	return " " + f.palette.Muted.Render(strings.TrimPrefix(separator, " ")) +
		f.palette.ForLevel(context.Level()).Render(context.String()+"% ") +
		f.palette.Muted.Render(ShortModelName(displayName))
}

func (f *StatusFormatter) muted(value string) string {
	if value == "" {
		return ""
	}
	return f.palette.Muted.Render(separator + value)
}
