package main

import (
	"fmt"
	"os"

	"github.com/hug-scm/hug-tools/internal/analyze"
	"github.com/spf13/cobra"
)

var (
	coChangesThreshold float64
	coChangesFormat    string
	coChangesTop       int
)

// coChangesCmd reads `git log --name-only --format=%H` from stdin.
var coChangesCmd = &cobra.Command{
	Use:   "co-changes",
	Short: "Analyze co-change patterns from git history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("threshold") {
			coChangesThreshold = cfg.Analyze.CoChangeThreshold
		}
		if !cmd.Flags().Changed("top") {
			coChangesTop = cfg.Analyze.CoChangeTopN
		}
		commits, err := analyze.ParseNameOnlyLog(os.Stdin)
		if err != nil {
			return err
		}
		if len(commits) == 0 {
			return fmt.Errorf("no commits found in input")
		}

		correlations := analyze.CoChangeCorrelations(commits, coChangesThreshold)
		total := len(correlations)
		if coChangesTop > 0 && len(correlations) > coChangesTop {
			correlations = correlations[:coChangesTop]
		}

		if coChangesFormat == "json" {
			return printJSON(analyze.CoChangeReport{
				CommitsAnalyzed: len(commits),
				Threshold:       coChangesThreshold,
				TotalPairs:      total,
				Correlations:    correlations,
			})
		}
		fmt.Println(analyze.FormatCoChangesText(correlations, coChangesThreshold, len(commits)))
		return nil
	},
}

func init() {
	coChangesCmd.Flags().Float64Var(&coChangesThreshold, "threshold", 0.30, "Minimum correlation threshold (0.0-1.0)")
	coChangesCmd.Flags().StringVar(&coChangesFormat, "format", "text", "Output format: json or text")
	coChangesCmd.Flags().IntVar(&coChangesTop, "top", 20, "Show top N co-change pairs")
	rootCmd.AddCommand(coChangesCmd)
}
