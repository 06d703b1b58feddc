package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	rootPath     string
	quiet        bool
	verbose      bool
	outputFormat string
	outputFile   string
	minScore     float64
)

var rootCmd = &cobra.Command{
	Use:   "codecred",
	Short: "CodeCred - heuristic code valuation and contribution payouts",
	Long: `CodeCred scores source files across six quality metrics (impact,
simplicity, cleanness, comment, creditability, novelty), attributes line
ranges to contributors in a ledger, and values each contribution in
simulated Bitcoin micropayments.

By default, codecred scores every source file under the project root.
Use the subcommands to inspect metrics, manage the ledger, or serve the
scoring engine over HTTP.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScore(cmd, args)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootPath, "root", "r", "", "Project root directory (defaults to the current directory)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "console", "Output format for reports (console|json|markdown)")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "Output file for reports (requires --format)")
	rootCmd.PersistentFlags().Float64Var(&minScore, "min-score", 0.0, "Fail when any file scores below this composite")

	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("minScore", rootCmd.PersistentFlags().Lookup("min-score"))
}
