package commands

import (
	"fmt"
	"time"

	"github.com/sdpower/ccstatusline/internal/calculator"
	"github.com/sdpower/ccstatusline/internal/monitor"
	"github.com/spf13/cobra"
)

func NewWatchCommand(root *rootOptions) *cobra.Command {
	var (
		interval   int
		continuous bool
	)

	cmd := &cobra.Command{
		Use:   "watch [transcript]",
		Short: "Watch context-window usage of a transcript in real-time",
		Long: `Watch a transcript and redraw its context-window gauge as new assistant turns
arrive. Without an argument the transcript path is read from the session JSON on stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := transcriptPath(args, cmd.InOrStdin())
			if err != nil {
				return err
			}

			cfg := loadConfig(cmd, root)
			dataLoader, err := newLoader(cfg, root)
			if err != nil {
				return err
			}

			mon := monitor.New(monitor.Options{
				TranscriptPath: path,
				Interval:       time.Duration(interval) * time.Second,
				NoColor:        root.noColor || !isTerminal(cmd.OutOrStdout()),
				Continuous:     continuous,
				Loader:         dataLoader,
				Calculator:     calculator.New(cfg.ContextCapacity),
			})

			if err := mon.Start(cmd.Context(), cmd.OutOrStdout()); err != nil {
				return fmt.Errorf("failed to start monitor: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&interval, "interval", 2, "Update interval in seconds")
	cmd.Flags().BoolVar(&continuous, "continuous", true, "Run continuously")

	return cmd
}
