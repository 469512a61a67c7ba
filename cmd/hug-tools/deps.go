package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hug-scm/hug-tools/internal/analyze"
	"github.com/hug-scm/hug-tools/internal/depcache"
	"github.com/hug-scm/hug-tools/internal/gitcmd"
	"github.com/spf13/cobra"
)

var (
	depsAll        bool
	depsDepth      int
	depsThreshold  int
	depsSince      string
	depsFormat     string
	depsMaxResults int
)

var depsCmd = &cobra.Command{
	Use:   "deps [commit]",
	Short: "Analyze commit dependencies via file overlap",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("threshold") {
			depsThreshold = cfg.Analyze.DepsThreshold
		}
		if !cmd.Flags().Changed("max-results") {
			depsMaxResults = cfg.Analyze.DepsMaxResults
		}
		if !depsAll && len(args) == 0 {
			return fmt.Errorf("either a commit hash or --all is required")
		}

		ctx := cmd.Context()
		runner := newRunner("")

		var source analyze.CommitFileSource
		if cache := openDepsCache(ctx, runner); cache != nil {
			defer cache.Close()
			source = cache
		}
		d := analyze.NewDeps(runner, source)

		commits, err := d.AllCommits(ctx, depsSince)
		if err != nil {
			return err
		}
		if len(commits) == 0 {
			return fmt.Errorf("no commits found")
		}

		maxCommits := analyze.MaxCommitsForTier(analyze.RepoSizeTier(len(commits)))
		if cfg.Analyze.DepsMaxCommits > 0 {
			maxCommits = cfg.Analyze.DepsMaxCommits
		}
		if len(commits) > maxCommits {
			fmt.Fprintf(os.Stderr, "Note: limiting analysis to %d of %d commits\n", maxCommits, len(commits))
			commits = commits[:maxCommits]
		}
		if err := d.BuildFileIndex(ctx, commits); err != nil {
			return err
		}

		if depsAll {
			coupling, err := d.AnalyzeAll(ctx, commits, depsThreshold, depsMaxResults)
			if err != nil {
				return err
			}
			out, err := d.FormatCoupling(ctx, coupling, depsThreshold, depsFormat == "json")
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		}

		root := args[0]
		graph, err := d.BuildGraph(ctx, root, analyze.GraphParams{
			Depth:      depsDepth,
			Threshold:  depsThreshold,
			MaxResults: depsMaxResults,
			MaxCommits: maxCommits,
		})
		if err != nil {
			return err
		}

		var out string
		switch depsFormat {
		case "json":
			out, err = d.FormatJSON(ctx, root, graph)
		case "text":
			out, err = d.FormatList(ctx, root, graph)
		default:
			out, err = d.FormatGraph(ctx, root, graph, depsDepth)
		}
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	},
}

// openDepsCache opens the per-repo commit-file cache under the git
// dir. A missing repository or unopenable cache degrades to uncached
// analysis with a warning.
func openDepsCache(ctx context.Context, runner *gitcmd.Runner) *depcache.Cache {
	gitDir, err := runner.Output(ctx, "rev-parse", "--git-dir")
	if err != nil {
		return nil
	}
	cache, err := depcache.Open(filepath.Join(gitDir, "hug-tools"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: deps cache disabled: %v\n", err)
		return nil
	}
	return cache
}

func init() {
	depsCmd.Flags().BoolVar(&depsAll, "all", false, "Analyze all commits in repository")
	depsCmd.Flags().IntVar(&depsDepth, "depth", 1, "Depth of dependency traversal")
	depsCmd.Flags().IntVar(&depsThreshold, "threshold", 2, "Minimum file overlap for dependency")
	depsCmd.Flags().StringVar(&depsSince, "since", "", "Only consider commits since this date")
	depsCmd.Flags().StringVar(&depsFormat, "format", "graph", "Output format: graph, text or json")
	depsCmd.Flags().IntVar(&depsMaxResults, "max-results", 20, "Maximum number of related commits to show")
	rootCmd.AddCommand(depsCmd)
}
