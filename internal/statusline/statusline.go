// Package statusline turns one host session snapshot into the rendered status line.
package statusline

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sdpower/ccstatusline/internal/calculator"
	"github.com/sdpower/ccstatusline/internal/loader"
	"github.com/sdpower/ccstatusline/internal/output"
	"github.com/sdpower/ccstatusline/internal/types"
	"github.com/sdpower/ccstatusline/internal/vcs"
)

type Renderer struct {
	loader     *loader.Loader
	calculator *calculator.Calculator
	branches   vcs.BranchLookup
	formatter  *output.StatusFormatter
	debug      bool
	debugOut   io.Writer
}

func New(l *loader.Loader, calc *calculator.Calculator, branches vcs.BranchLookup, formatter *output.StatusFormatter) *Renderer {
	return &Renderer{
		loader:     l,
		calculator: calc,
		branches:   branches,
		formatter:  formatter,
		debugOut:   os.Stderr,
	}
}

func (r *Renderer) SetDebug(debug bool) {
	r.debug = debug
	r.loader.SetDebug(debug)
}

func (r *Renderer) SetDebugOutput(w io.Writer) {
	r.debugOut = w
}

// Render never fails: every lookup that errors contributes its empty default.
func (r *Renderer) Render(ctx context.Context, in types.SessionInput) string {
	status := output.Status{
		Branch:           r.branch(ctx, in.Workspace.CurrentDir),
		ModelDisplayName: in.Model.DisplayName,
		OutputStyle:      in.OutputStyle.Name,
		SessionID:        in.SessionID,
	}

	// The transcript is only read when the model segment will be shown.
	if in.Model.DisplayName != "" {
		status.Context = r.ContextPercentage(ctx, in.TranscriptPath)
	}

	return r.formatter.Format(status)
}

// RenderFrom decodes the session snapshot from in; malformed input renders as empty.
func (r *Renderer) RenderFrom(ctx context.Context, in io.Reader) string {
	input, err := types.DecodeSessionInput(in)
	if err != nil {
		r.debugf("%v", err)
		input = types.SessionInput{}
	}
	return r.Render(ctx, input)
}

// ContextPercentage is "0" (not found) whenever the transcript yields no usage.
func (r *Renderer) ContextPercentage(ctx context.Context, transcriptPath string) types.Percentage {
	if transcriptPath == "" {
		return types.Percentage{}
	}

	usage, found, err := r.loader.LoadLatestUsage(ctx, transcriptPath)
	if err != nil {
		return types.Percentage{}
	}
	return r.calculator.ContextPercentage(usage, found)
}

func (r *Renderer) branch(ctx context.Context, dir string) string {
	if dir == "" || r.branches == nil {
		return ""
	}

	branch, err := r.branches.CurrentBranch(ctx, dir)
	if err != nil {
		r.debugf("branch lookup in %s: %v", dir, err)
		return ""
	}
	return branch
}

func (r *Renderer) debugf(format string, args ...interface{}) {
	if r.debug {
		fmt.Fprintf(r.debugOut, "Debug: "+format+"\n", args...)
	}
}
