package monitor

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-isatty"
	"github.com/sdpower/ccstatusline/internal/calculator"
	"github.com/sdpower/ccstatusline/internal/loader"
	"github.com/sdpower/ccstatusline/internal/types"
)

const gaugeWidth = 40

var (
	gaugeLow  = mustHex("#3fb950")
	gaugeHigh = mustHex("#f85149")
)

type Monitor struct {
	options Options
}

type Options struct {
	TranscriptPath string
	Interval       time.Duration
	NoColor        bool
	Continuous     bool
	Loader         *loader.Loader
	Calculator     *calculator.Calculator
}

type model struct {
	options    Options
	lastUpdate time.Time
	usage      types.TokenCounts
	context    types.Percentage
	err        error
}

type tickMsg time.Time

type updateDataMsg struct {
	usage   types.TokenCounts
	context types.Percentage
	err     error
}

func New(opts Options) *Monitor {
	if opts.Interval == 0 {
		opts.Interval = 2 * time.Second
	}
	if opts.Loader == nil {
		opts.Loader = loader.New()
	}
	if opts.Calculator == nil {
		opts.Calculator = calculator.New(calculator.DefaultCapacity)
	}

	return &Monitor{
		options: opts,
	}
}

func (m *Monitor) Start(ctx context.Context, w io.Writer) error {
	if m.options.Continuous {
		return m.startTUI(ctx)
	}
	return m.runOnce(ctx, w)
}

func (m *Monitor) startTUI(ctx context.Context) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("live monitoring requires an interactive terminal (TTY)")
	}

	p := tea.NewProgram(
		initialModel(m.options),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	return err
}

func (m *Monitor) runOnce(ctx context.Context, w io.Writer) error {
	msg := loadUsage(ctx, m.options)
	if msg.err != nil {
		return fmt.Errorf("failed to load data: %w", msg.err)
	}

	fmt.Fprintf(w, "Context: %s%% %s\n", msg.context.String(), renderGauge(msg.context, m.options.NoColor))
	fmt.Fprintf(w, "Tokens: %d / %d\n", msg.usage.GetTotal(), m.options.Calculator.Capacity())
	return nil
}

func initialModel(opts Options) model {
	return model{
		options:    opts,
		lastUpdate: time.Now(),
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(m.options.Interval),
		m.updateData(),
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			return m, m.updateData()
		}

	case tickMsg:
		m.lastUpdate = time.Time(msg)
		return m, tea.Batch(
			tickCmd(m.options.Interval),
			m.updateData(),
		)

	case updateDataMsg:
		m.usage = msg.usage
		m.context = msg.context
		m.err = msg.err
	}

	return m, nil
}

func (m model) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n\nPress 'q' to quit, 'r' to retry", m.err)
	}

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205")).
		MarginBottom(1)
	summaryStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(1).
		MarginBottom(1)

	if m.options.NoColor {
		headerStyle = lipgloss.NewStyle()
		summaryStyle = lipgloss.NewStyle()
	}

	content := headerStyle.Render("Context Window Monitor")
	content += "\n\n"

	summary := fmt.Sprintf(
		"Transcript: %s\nContext: %s%% %s\nInput: %d  Output: %d\nCache Create: %d  Cache Read: %d\nTotal: %d / %d\nLast Update: %s",
		m.options.TranscriptPath,
		m.context.String(),
		renderGauge(m.context, m.options.NoColor),
		m.usage.InputTokens,
		m.usage.OutputTokens,
		m.usage.CacheCreationInputTokens,
		m.usage.CacheReadInputTokens,
		m.usage.GetTotal(),
		m.options.Calculator.Capacity(),
		m.lastUpdate.Format("15:04:05"),
	)

	content += summaryStyle.Render(summary)
	content += "\n\nPress 'q' to quit, 'r' to refresh"
	return content
}

func (m model) updateData() tea.Cmd {
	opts := m.options
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		return loadUsage(ctx, opts)
	}
}

func loadUsage(ctx context.Context, opts Options) updateDataMsg {
	usage, found, err := opts.Loader.LoadLatestUsage(ctx, opts.TranscriptPath)
	if err != nil {
		return updateDataMsg{err: err}
	}
	return updateDataMsg{
		usage:   usage,
		context: opts.Calculator.ContextPercentage(usage, found),
	}
}

// renderGauge draws a fixed-width bar whose fill color moves from green to red.
func renderGauge(p types.Percentage, noColor bool) string {
	filled := int(p.Value / 100 * gaugeWidth)
	filled = max(0, min(gaugeWidth, filled))

	bar := strings.Repeat("█", filled)
	rest := strings.Repeat("░", gaugeWidth-filled)
	if noColor {
		return "[" + bar + rest + "]"
	}

	fill := lipgloss.NewStyle().Foreground(lipgloss.Color(gaugeColor(p.Value).Hex()))
	empty := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	return "[" + fill.Render(bar) + empty.Render(rest) + "]"
}

func gaugeColor(value float64) colorful.Color {
	t := max(0, min(1, value/100))
	return gaugeLow.BlendLab(gaugeHigh, t).Clamped()
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
