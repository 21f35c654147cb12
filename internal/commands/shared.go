package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/sdpower/ccstatusline/internal/calculator"
	"github.com/sdpower/ccstatusline/internal/loader"
	"github.com/sdpower/ccstatusline/internal/output"
	"github.com/sdpower/ccstatusline/internal/types"
)

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isFileTerminal(f)
}

func isFileTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// stdinIsTerminal reports whether r is a terminal nobody is piping into.
var stdinIsTerminal = func(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && isFileTerminal(f)
}

// transcriptPath takes the path from args, else from the session JSON on stdin.
// An interactive stdin is not read, since it would block until EOF.
func transcriptPath(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if stdinIsTerminal(stdin) {
		return "", types.ErrNoTranscript
	}

	in, err := types.DecodeSessionInput(stdin)
	if err != nil {
		return "", fmt.Errorf("no transcript argument and %w", err)
	}
	if in.TranscriptPath == "" {
		return "", types.ErrNoTranscript
	}
	return in.TranscriptPath, nil
}

func buildUsageReport(ctx context.Context, l *loader.Loader, calc *calculator.Calculator, path string) (output.UsageReport, error) {
	if err := ctx.Err(); err != nil {
		return output.UsageReport{}, err
	}

	lines, err := l.ReadLines(path)
	if err != nil {
		return output.UsageReport{}, err
	}

	report := output.UsageReport{
		TranscriptPath: path,
		Capacity:       calc.Capacity(),
		Remaining:      calc.Capacity(),
	}

	record, found := l.LatestRecord(lines)
	if found {
		ts := time.UnixMilli(int64(record.Timestamp))
		report.Found = true
		report.Model = record.Model
		report.Timestamp = &ts
		report.Usage = *record.Usage
		report.TotalTokens = record.Usage.GetTotal()
		report.Remaining = calc.Remaining(*record.Usage)
	}

	report.Context = calc.ContextPercentage(report.Usage, found)
	report.ContextDisplay = report.Context.String()
	report.Level = report.Context.Level().String()

	return report, nil
}
