// hug-tools is the helper binary behind the Hug SCM shell commands.
// Every subcommand either shells out to git and parses its text
// output, or consumes git-produced text on stdin, and re-emits the
// result as JSON, readable text, or bash declare statements for the
// calling shell to eval.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hug-scm/hug-tools/internal/config"
	"github.com/hug-scm/hug-tools/internal/gitcmd"
	"github.com/hug-scm/hug-tools/internal/jsonx"
	"github.com/hug-scm/hug-tools/internal/ui"
	"github.com/spf13/cobra"
)

// errNoData signals exit code 1 without an error message, matching
// the shell contract of the listing commands.
var errNoData = errors.New("no data")

var cfg = config.Default()

var rootCmd = &cobra.Command{
	Use:           "hug-tools",
	Short:         "Helper toolkit for Hug SCM",
	Long:          "hug-tools bundles the analysis, transformation and listing helpers\nused by the Hug SCM shell commands into a single binary.",
	Version:       config.Version(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		ui.Init()
		loaded, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: ignoring config file: %v\n", err)
			return
		}
		cfg = loaded
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errNoData) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// newRunner builds a git runner for dir honoring the configured
// timeout. Empty dir means the current directory.
func newRunner(dir string) *gitcmd.Runner {
	r := gitcmd.New(dir)
	if cfg.Git.TimeoutSeconds > 0 {
		r.Timeout = time.Duration(cfg.Git.TimeoutSeconds) * time.Second
	}
	return r
}

// printJSON writes v as compact JSON with the separators the shell
// consumers expect.
func printJSON(v any) error {
	data, err := jsonx.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
