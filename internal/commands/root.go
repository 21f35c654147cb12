package commands

import (
	"fmt"
	"time"

	"github.com/sdpower/ccstatusline/internal/calculator"
	"github.com/sdpower/ccstatusline/internal/config"
	"github.com/sdpower/ccstatusline/internal/loader"
	"github.com/sdpower/ccstatusline/internal/output"
	"github.com/sdpower/ccstatusline/internal/statusline"
	"github.com/sdpower/ccstatusline/internal/vcs"
	"github.com/spf13/cobra"
)

var Version = "dev"

type rootOptions struct {
	configPath string
	debug      bool
	noColor    bool
	timezone   string
}

// NewRootCommand builds the CLI. Run without a subcommand it reads the host's
// session JSON from stdin and prints the status line.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "ccstatusline",
		Short: "Claude Code status line with context-window usage",
		Long: `Reads the Claude Code session JSON from stdin and prints one colored line
with the git branch, context-window usage, model, output style and session id.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer := newStatusRenderer(cmd, opts)
			fmt.Fprint(cmd.OutOrStdout(), renderer.RenderFrom(cmd.Context(), cmd.InOrStdin()))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to config file (default $XDG_CONFIG_HOME/ccstatusline/config.yaml)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Write diagnostics to stderr")
	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	cmd.PersistentFlags().StringVar(&opts.timezone, "timezone", "", "Timezone for transcript timestamps without an offset (e.g. UTC, America/New_York)")

	cmd.AddCommand(
		NewUsageCommand(opts),
		NewWatchCommand(opts),
	)

	cmd.Version = Version
	cmd.SetVersionTemplate(fmt.Sprintf("ccstatusline %s\n", Version))

	return cmd
}

// loadConfig falls back to defaults on any error so rendering never fails.
func loadConfig(cmd *cobra.Command, opts *rootOptions) *config.Config {
	path := opts.configPath
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.LoadOrDefault(path)
	if err != nil && opts.debug {
		fmt.Fprintf(cmd.ErrOrStderr(), "Debug: using default config: %v\n", err)
	}
	return cfg
}

func newLoader(cfg *config.Config, opts *rootOptions) (*loader.Loader, error) {
	l := loader.New()
	l.SetWindow(cfg.ScanWindow)
	l.SetDebug(opts.debug)

	if opts.timezone != "" {
		loc, err := time.LoadLocation(opts.timezone)
		if err != nil {
			return l, fmt.Errorf("invalid timezone %s: %w", opts.timezone, err)
		}
		l.SetTimezone(loc)
	}

	return l, nil
}

func newStatusRenderer(cmd *cobra.Command, opts *rootOptions) *statusline.Renderer {
	cfg := loadConfig(cmd, opts)

	// A bad timezone keeps the local zone; the status line still renders.
	dataLoader, err := newLoader(cfg, opts)
	if err != nil && opts.debug {
		fmt.Fprintf(cmd.ErrOrStderr(), "Debug: %v\n", err)
	}

	palette := output.DefaultPalette(output.NewRenderer(cmd.OutOrStdout(), opts.noColor))
	renderer := statusline.New(
		dataLoader,
		calculator.New(cfg.ContextCapacity),
		vcs.NewGitBranch(cfg.GitCommand),
		output.NewStatusFormatter(palette),
	)
	renderer.SetDebugOutput(cmd.ErrOrStderr())
	renderer.SetDebug(opts.debug)
	return renderer
}
