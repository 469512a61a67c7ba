package main

import (
	"os"

	"github.com/hug-scm/hug-tools/internal/logjson"
	"github.com/spf13/cobra"
)

var (
	logJSONWithStats bool
	logJSONNoBody    bool
)

// logJSONCmd converts the 15-field `git log` format on stdin to the
// JSON envelope the shell wrappers emit for `hug lg --json`.
var logJSONCmd = &cobra.Command{
	Use:   "log-json",
	Short: "Convert delimited git log output to JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		commits, err := logjson.Parse(os.Stdin, logjson.Options{
			IncludeStats: logJSONWithStats,
			OmitBody:     logJSONNoBody,
		})
		if err != nil {
			return err
		}
		return printJSON(logjson.NewOutput("hug ll", commits))
	},
}

func init() {
	logJSONCmd.Flags().BoolVar(&logJSONWithStats, "with-stats", false, "Include per-file stats from --numstat input")
	logJSONCmd.Flags().BoolVar(&logJSONNoBody, "no-body", false, "Omit commit bodies (subject only)")
	rootCmd.AddCommand(logJSONCmd)
}
