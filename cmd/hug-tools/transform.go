package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/hug-scm/hug-tools/internal/transform"
	"github.com/spf13/cobra"
)

var transformCmd = &cobra.Command{
	Use:   "transform",
	Short: "JSON transformation helpers for the shell wrappers",
}

var transformStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Convert `git status --short` on stdin to JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		return printIndentedJSON(transform.ParseStatus(string(data)))
	},
}

var transformLogWithFiles bool

var transformLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Convert NUL-separated git log records on stdin to JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		return printIndentedJSON(transform.ParseLogRecords(string(data), transformLogWithFiles))
	},
}

var (
	transformSearchWithFiles bool
	transformSearchNoBody    bool
)

var transformSearchCmd = &cobra.Command{
	Use:   "search <type> <term> [git-args...]",
	Short: "Search commits by message or code and emit JSON",
	Long:  "Search type is 'message' (git log --grep) or 'code' (git log -S).\nExtra arguments are passed through to git log.",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		result := transform.CommitSearch(cmd.Context(), newRunner(""), transform.SearchOptions{
			Type:      args[0],
			Term:      args[1],
			WithFiles: transformSearchWithFiles,
			NoBody:    transformSearchNoBody,
			ExtraArgs: args[2:],
		})
		return printIndentedJSON(result)
	},
}

var transformValidateCmd = &cobra.Command{
	Use:   "validate <schema>",
	Short: "Validate JSON on stdin against a named schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		if !transform.ValidateSchema(data, args[0]) {
			return errNoData
		}
		return nil
	},
}

// printIndentedJSON writes v with two-space indent and unescaped
// non-ASCII, the form the transform consumers expect.
func printIndentedJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

func init() {
	transformLogCmd.Flags().BoolVar(&transformLogWithFiles, "with-files", false, "Include file change details")
	transformSearchCmd.Flags().BoolVar(&transformSearchWithFiles, "with-files", false, "Include file change details")
	transformSearchCmd.Flags().BoolVar(&transformSearchNoBody, "no-body", false, "Omit commit bodies")
	// Everything after <type> <term> passes through to git log.
	transformSearchCmd.Flags().SetInterspersed(false)
	transformCmd.AddCommand(transformStatusCmd, transformLogCmd, transformSearchCmd, transformValidateCmd)
	rootCmd.AddCommand(transformCmd)
}
