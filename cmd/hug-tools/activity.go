package main

import (
	"fmt"
	"os"

	"github.com/hug-scm/hug-tools/internal/analyze"
	"github.com/spf13/cobra"
)

var (
	activityByHour   bool
	activityByDay    bool
	activityByAuthor bool
	activityFormat   string
	activitySince    string
)

// activityCmd reads `git log --format='%ai|%an'` lines from stdin.
var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Analyze temporal commit activity patterns",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		commits, err := analyze.ParseActivityLog(os.Stdin, os.Stderr)
		if err != nil {
			return err
		}
		if len(commits) == 0 {
			return fmt.Errorf("no commits found in input")
		}

		var timeRange *string
		if activitySince != "" {
			timeRange = &activitySince
		}

		if activityFormat == "json" {
			if activityByHour {
				return printJSON(analyze.ActivityReport{
					CommitsAnalyzed: len(commits),
					TimeRange:       timeRange,
					Analysis:        analyze.ByHour(commits, activityByAuthor),
				})
			}
			if activityByDay {
				return printJSON(analyze.ActivityReport{
					CommitsAnalyzed: len(commits),
					TimeRange:       timeRange,
					Analysis:        analyze.ByDay(commits, activityByAuthor),
				})
			}
			return printJSON(analyze.ActivityBothReport{
				CommitsAnalyzed: len(commits),
				TimeRange:       timeRange,
				ByHour:          analyze.ByHour(commits, activityByAuthor),
				ByDay:           analyze.ByDay(commits, activityByAuthor),
			})
		}

		switch {
		case activityByHour:
			fmt.Println(analyze.FormatActivityText(analyze.ByHour(commits, activityByAuthor), len(commits), activitySince))
		case activityByDay:
			fmt.Println(analyze.FormatActivityText(analyze.ByDay(commits, activityByAuthor), len(commits), activitySince))
		default:
			fmt.Println(analyze.FormatActivityText(analyze.ByHour(commits, activityByAuthor), len(commits), activitySince))
			fmt.Println()
			fmt.Println(analyze.FormatActivityText(analyze.ByDay(commits, activityByAuthor), len(commits), activitySince))
		}
		return nil
	},
}

func init() {
	activityCmd.Flags().BoolVar(&activityByHour, "by-hour", false, "Group commits by hour of day")
	activityCmd.Flags().BoolVar(&activityByDay, "by-day", false, "Group commits by day of week")
	activityCmd.Flags().BoolVar(&activityByAuthor, "by-author", false, "Break down activity by author")
	activityCmd.Flags().StringVar(&activityFormat, "format", "text", "Output format: json or text")
	activityCmd.Flags().StringVar(&activitySince, "since", "", "Description of time range (for display)")
	rootCmd.AddCommand(activityCmd)
}
