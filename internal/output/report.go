package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/sdpower/ccstatusline/internal/types"
)

// UsageReport describes the latest usage record of one transcript.
type UsageReport struct {
	TranscriptPath string            `json:"transcript_path"`
	Found          bool              `json:"found"`
	Model          string            `json:"model,omitempty"`
	Timestamp      *time.Time        `json:"timestamp,omitempty"`
	Usage          types.TokenCounts `json:"usage"`
	TotalTokens    int64             `json:"total_tokens"`
	Capacity       int64             `json:"capacity"`
	Remaining      int64             `json:"remaining"`
	Context        types.Percentage  `json:"context"`
	ContextDisplay string            `json:"context_display"`
	Level          string            `json:"level"`
}

type Formatter struct {
	options FormatterOptions
	palette Palette
}

type FormatterOptions struct {
	Format  string // "table", "json"
	NoColor bool
}

func NewFormatter(opts FormatterOptions, palette Palette) *Formatter {
	if opts.Format == "" {
		opts.Format = "table"
	}
	return &Formatter{options: opts, palette: palette}
}

func (f *Formatter) FormatUsageReport(report UsageReport) (string, error) {
	switch f.options.Format {
	case "json":
		return f.FormatJSON(report)
	case "table":
		return f.formatUsageTable(report), nil
	default:
		return "", fmt.Errorf("unknown format %q", f.options.Format)
	}
}

func (f *Formatter) FormatJSON(data interface{}) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData) + "\n", nil
}

func (f *Formatter) formatUsageTable(report UsageReport) string {
	var buf bytes.Buffer

	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Settings: tw.Settings{Separators: tw.Separators{BetweenRows: tw.Off}},
		})),
		tablewriter.WithConfig(tablewriter.Config{
			Header: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignCenter},
			},
			Row: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)

	table.Header([]string{"Field", "Value"})

	model := "-"
	if report.Model != "" {
		model = ShortenModelName(report.Model)
	}
	timestamp := "-"
	if report.Timestamp != nil {
		timestamp = report.Timestamp.Local().Format("2006-01-02 15:04:05")
	}

	contextCell := report.ContextDisplay + "%"
	if !report.Found {
		contextCell = "0% (no usage record)"
	}

	table.Append([]string{"Transcript", report.TranscriptPath})
	table.Append([]string{"Model", model})
	table.Append([]string{"Timestamp", timestamp})
	table.Append([]string{"Input", formatNumberWithCommas(report.Usage.InputTokens)})
	table.Append([]string{"Output", formatNumberWithCommas(report.Usage.OutputTokens)})
	table.Append([]string{"Cache Create", formatNumberWithCommas(report.Usage.CacheCreationInputTokens)})
	table.Append([]string{"Cache Read", formatNumberWithCommas(report.Usage.CacheReadInputTokens)})
	table.Append([]string{"Total Tokens", formatNumberWithCommas(report.TotalTokens)})
	table.Append([]string{"Capacity", formatNumberWithCommas(report.Capacity)})
	table.Append([]string{"Remaining", formatNumberWithCommas(report.Remaining)})
	table.Append([]string{"Context", contextCell})

	table.Render()

	out := buf.String()
	if f.options.NoColor {
		return out
	}
	return f.levelStyle(report).Render("Context window: "+contextCell) + "\n" + out
}

func (f *Formatter) levelStyle(report UsageReport) lipgloss.Style {
	return f.palette.ForLevel(report.Context.Level())
}

// formatNumberWithCommas formats a number with thousand separators
func formatNumberWithCommas(n int64) string {
	if n < 0 {
		return "-" + formatNumberWithCommas(-n)
	}
	if n < 1000 {
		return strconv.FormatInt(n, 10)
	}
	return formatNumberWithCommas(n/1000) + "," + fmt.Sprintf("%03d", n%1000)
}
