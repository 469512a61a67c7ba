package main

import (
	"fmt"
	"time"

	"github.com/hug-scm/hug-tools/internal/analyze"
	"github.com/spf13/cobra"
)

var (
	churnSince  string
	churnFormat string
)

var churnCmd = &cobra.Command{
	Use:   "churn <file>",
	Short: "Analyze file churn from git history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file := args[0]
		commits, err := analyze.ChurnHistory(cmd.Context(), newRunner(""), file, churnSince)
		if err != nil {
			return err
		}
		fc := analyze.ComputeFileChurn(commits, time.Now(), cfg.Analyze.ChurnDecayDays)
		if fc == nil {
			if churnFormat == "json" {
				_ = printJSON(map[string]map[string]string{
					"error": {"type": "no_history", "message": fmt.Sprintf("No commit history found for %s", file)},
				})
				return errNoData
			}
			return fmt.Errorf("no commit history found for %s", file)
		}

		if churnFormat == "text" {
			fmt.Println(analyze.FormatChurnText(file, fc))
			return nil
		}
		return printJSON(analyze.ChurnReport{
			File:      file,
			FileChurn: fc,
			Params: analyze.ChurnParams{
				Since:     churnSince,
				DecayDays: cfg.Analyze.ChurnDecayDays,
			},
		})
	},
}

func init() {
	churnCmd.Flags().StringVar(&churnSince, "since", "", "Only analyze commits since this date")
	churnCmd.Flags().StringVar(&churnFormat, "format", "json", "Output format: json or text")
	rootCmd.AddCommand(churnCmd)
}
