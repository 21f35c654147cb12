package commands

import (
	"fmt"

	"github.com/sdpower/ccstatusline/internal/calculator"
	"github.com/sdpower/ccstatusline/internal/output"
	"github.com/spf13/cobra"
)

func NewUsageCommand(root *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "usage [transcript]",
		Short: "Show the latest context usage of a transcript",
		Long: `Show the most recent assistant usage record of a transcript and how much of
the context window it occupies. Without an argument the transcript path is read
from the session JSON on stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := transcriptPath(args, cmd.InOrStdin())
			if err != nil {
				return err
			}

			cfg := loadConfig(cmd, root)
			calc := calculator.New(cfg.ContextCapacity)
			dataLoader, err := newLoader(cfg, root)
			if err != nil {
				return err
			}

			report, err := buildUsageReport(cmd.Context(), dataLoader, calc, path)
			if err != nil {
				return fmt.Errorf("failed to load usage data: %w", err)
			}

			noColor := root.noColor || !isTerminal(cmd.OutOrStdout())
			formatter := output.NewFormatter(
				output.FormatterOptions{Format: format, NoColor: noColor},
				output.DefaultPalette(output.NewRenderer(cmd.OutOrStdout(), noColor)),
			)

			out, err := formatter.FormatUsageReport(report)
			if err != nil {
				return fmt.Errorf("failed to format report: %w", err)
			}

			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, json)")

	return cmd
}
