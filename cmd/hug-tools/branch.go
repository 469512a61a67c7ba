package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/hug-scm/hug-tools/internal/branch"
	"github.com/spf13/cobra"
)

var branchCmd = &cobra.Command{
	Use:   "branch",
	Short: "Branch listing, filtering, selection and search",
}

var (
	branchListJSON    bool
	branchListPattern string
)

var branchListCmd = &cobra.Command{
	Use:   "list <local|remote|wip>",
	Short: "List branches of the given type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lister := branch.NewLister(newRunner(""))

		var details *branch.Details
		var err error
		switch args[0] {
		case "local":
			details, err = lister.Local(cmd.Context(), true)
		case "remote":
			details, err = lister.Remote(cmd.Context(), true)
		case "wip":
			details, err = lister.WIP(cmd.Context(), branchListPattern)
		default:
			return fmt.Errorf("unknown branch type %q (want local, remote or wip)", args[0])
		}
		if err != nil {
			return err
		}
		if details == nil || len(details.Branches) == 0 {
			return errNoData
		}

		if branchListJSON {
			return printJSON(details)
		}
		fmt.Println(details.BashDeclare())
		return nil
	},
}

var branchFindRemoteCmd = &cobra.Command{
	Use:   "find-remote <branch>",
	Short: "Resolve a branch name to its remote ref",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		remote, err := branch.NewLister(newRunner("")).FindRemote(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if remote == "" {
			return errNoData
		}
		fmt.Println(remote)
		return nil
	},
}

var (
	filterBranches       string
	filterHashes         string
	filterSubjects       string
	filterTracks         string
	filterDates          string
	filterCurrentBranch  string
	filterExcludeCurrent bool
	filterIncludeBackup  bool
)

var branchFilterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Filter parallel branch arrays for the shell",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := branch.FilterInput{
			Branches: strings.Fields(filterBranches),
			Hashes:   strings.Fields(filterHashes),
			Subjects: strings.Fields(filterSubjects),
			Tracks:   strings.Fields(filterTracks),
			Dates:    strings.Fields(filterDates),
		}
		// The shell may omit trailing arrays; pad them to match.
		n := len(in.Branches)
		for _, arr := range [][]string{in.Hashes, in.Subjects, in.Tracks, in.Dates} {
			if len(arr) > n {
				n = len(arr)
			}
		}
		in.Pad(n)

		current := ""
		if filterExcludeCurrent {
			current = filterCurrentBranch
		}
		out, err := branch.Filter(in, branch.FilterOptions{
			ExcludeCurrent: current,
			ExcludeBackups: !filterIncludeBackup,
		})
		if err != nil {
			return err
		}
		fmt.Println(out.BashDeclare())
		return nil
	},
}

var (
	selectBranches    string
	selectHashes      string
	selectDates       string
	selectSubjects    string
	selectTracks      string
	selectPlaceholder string
	selectSelection   string
	selectArrayName   string
)

func selectInput() branch.SelectInput {
	return branch.SelectInput{
		Branches: strings.Fields(selectBranches),
		Hashes:   strings.Fields(selectHashes),
		Dates:    strings.Fields(selectDates),
		Subjects: strings.Fields(selectSubjects),
		Tracks:   strings.Fields(selectTracks),
	}
}

var branchFormatOptionsCmd = &cobra.Command{
	Use:   "format-options",
	Short: "Render styled branch lines for an external picker",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, opt := range branch.FormatOptions(selectInput()) {
			if opt != "" {
				fmt.Println(opt)
			}
		}
		return nil
	},
}

var branchSelectCmd = &cobra.Command{
	Use:   "select",
	Short: "Pick branches via a numbered prompt",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := selectInput()
		input := selectSelection
		if input == "" {
			opts := branch.FormatOptions(in)
			for i, opt := range opts {
				fmt.Fprintf(os.Stderr, "%3d) %s\n", i+1, opt)
			}
			fmt.Fprintf(os.Stderr, "%s (e.g. 1,3-5 or 'a' for all): ", selectPlaceholder)
			line, err := bufio.NewReader(os.Stdin).ReadString('\n')
			if err != nil && line == "" {
				return errNoData
			}
			input = strings.TrimSpace(line)
		}

		sel := branch.Select(in.Branches, input)
		fmt.Println(sel.BashDeclare(selectArrayName))
		return nil
	},
}

var (
	searchTerms  string
	searchLogic  string
	searchFields string
)

var branchSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Match search terms against branch fields",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logic := branch.SearchLogic(searchLogic)
		if logic != branch.SearchOR && logic != branch.SearchAND {
			return fmt.Errorf("logic must be OR or AND, got %q", searchLogic)
		}
		terms := strings.Fields(searchTerms)
		matched := branch.Matches(strings.Fields(searchFields), terms, logic)
		fmt.Println(branch.SearchBashDeclare(matched, logic, terms))
		return nil
	},
}

func init() {
	branchListCmd.Flags().BoolVar(&branchListJSON, "json", false, "Output JSON instead of bash declarations")
	branchListCmd.Flags().StringVar(&branchListPattern, "pattern", branch.WIPPattern, "Ref pattern for WIP branches")

	branchFilterCmd.Flags().StringVar(&filterBranches, "branches", "", "Space-separated branch names")
	branchFilterCmd.Flags().StringVar(&filterHashes, "hashes", "", "Space-separated commit hashes")
	branchFilterCmd.Flags().StringVar(&filterSubjects, "subjects", "", "Space-separated commit subjects")
	branchFilterCmd.Flags().StringVar(&filterTracks, "tracks", "", "Space-separated tracking info")
	branchFilterCmd.Flags().StringVar(&filterDates, "dates", "", "Space-separated commit dates")
	branchFilterCmd.Flags().StringVar(&filterCurrentBranch, "current-branch", "", "Current branch name")
	branchFilterCmd.Flags().BoolVar(&filterExcludeCurrent, "exclude-current", false, "Exclude current branch from results")
	branchFilterCmd.Flags().BoolVar(&filterIncludeBackup, "include-backup", false, "Include backup branches")
	_ = branchFilterCmd.MarkFlagRequired("branches")
	_ = branchFilterCmd.MarkFlagRequired("hashes")

	for _, c := range []*cobra.Command{branchSelectCmd, branchFormatOptionsCmd} {
		c.Flags().StringVar(&selectBranches, "branches", "", "Space-separated branch names")
		c.Flags().StringVar(&selectHashes, "hashes", "", "Space-separated commit hashes")
		c.Flags().StringVar(&selectDates, "dates", "", "Space-separated commit dates")
		c.Flags().StringVar(&selectSubjects, "subjects", "", "Space-separated commit subjects")
		c.Flags().StringVar(&selectTracks, "tracks", "", "Space-separated tracking info")
		_ = c.MarkFlagRequired("branches")
	}
	branchSelectCmd.Flags().StringVar(&selectPlaceholder, "placeholder", "Select branches", "Prompt text for the user")
	branchSelectCmd.Flags().StringVar(&selectSelection, "selection", "", "Pre-selected input (skips the prompt)")
	branchSelectCmd.Flags().StringVar(&selectArrayName, "array-name", "selected_branches", "Name for the result array")

	branchSearchCmd.Flags().StringVar(&searchTerms, "terms", "", "Space-separated search terms")
	branchSearchCmd.Flags().StringVar(&searchLogic, "logic", "OR", "Search logic: OR (any match) or AND (all must match)")
	branchSearchCmd.Flags().StringVar(&searchFields, "fields", "", "Space-separated field values to search")
	_ = branchSearchCmd.MarkFlagRequired("terms")
	_ = branchSearchCmd.MarkFlagRequired("fields")

	branchCmd.AddCommand(branchListCmd, branchFindRemoteCmd, branchFilterCmd, branchSelectCmd, branchFormatOptionsCmd, branchSearchCmd)
	rootCmd.AddCommand(branchCmd)
}
