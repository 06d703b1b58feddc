package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dotcommander/codecred/internal/metrics"
)

var describeCmd = &cobra.Command{
	Use:   "describe [metric]",
	Short: "Describe the quality metrics",
	Long: `Describe prints what each metric measures. With an argument, only
that metric is described.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		nameStyle := lipgloss.NewStyle().Bold(true)

		if len(args) == 1 {
			kind, err := metrics.ParseKind(args[0])
			if err != nil {
				return err
			}
			evaluator, err := metrics.ForKind(kind)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n  %s\n", nameStyle.Render(kind.String()), evaluator.Describe())
			return nil
		}

		for _, evaluator := range metrics.AllEvaluators() {
			fmt.Printf("%s\n  %s\n", nameStyle.Render(evaluator.Kind().String()), evaluator.Describe())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
}
