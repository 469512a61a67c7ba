package main

import (
	"fmt"
	"time"

	"github.com/hug-scm/hug-tools/internal/analyze"
	"github.com/spf13/cobra"
)

var (
	ownershipAuthor    string
	ownershipSince     string
	ownershipFormat    string
	ownershipDecayDays float64
)

var ownershipCmd = &cobra.Command{
	Use:   "ownership [file]",
	Short: "Analyze code ownership and expertise",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("decay-days") {
			ownershipDecayDays = cfg.Analyze.OwnershipDecayDays
		}
		if ownershipAuthor != "" {
			return runAuthorExpertise(cmd)
		}
		if len(args) == 0 {
			return fmt.Errorf("either a file path or --author is required")
		}
		return runFileOwnership(cmd, args[0])
	},
}

func runFileOwnership(cmd *cobra.Command, file string) error {
	commits, err := analyze.OwnershipHistory(cmd.Context(), newRunner(""), file, ownershipSince, time.Now())
	if err != nil {
		return err
	}
	if len(commits) == 0 {
		return fmt.Errorf("no commit history found for %s", file)
	}
	ownership := analyze.ComputeOwnership(commits, ownershipDecayDays)

	if ownershipFormat == "json" {
		return printJSON(analyze.OwnershipReport{
			File:         file,
			TotalCommits: len(commits),
			DecayDays:    ownershipDecayDays,
			Ownership:    ownership,
		})
	}
	fmt.Println(analyze.FormatOwnershipText(file, ownership))
	return nil
}

func runAuthorExpertise(cmd *cobra.Command) error {
	files, err := analyze.AuthorFiles(cmd.Context(), newRunner(""), ownershipAuthor, ownershipSince)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no commits found for author %q", ownershipAuthor)
	}

	if ownershipFormat == "json" {
		return printJSON(analyze.AuthorReport{
			Author:     ownershipAuthor,
			TotalFiles: len(files),
			Files:      analyze.SortedAuthorFiles(files),
		})
	}
	fmt.Println(analyze.FormatAuthorExpertiseText(ownershipAuthor, files))
	return nil
}

func init() {
	ownershipCmd.Flags().StringVar(&ownershipAuthor, "author", "", "Author name (for author expertise mode)")
	ownershipCmd.Flags().StringVar(&ownershipSince, "since", "", "Only consider commits since this date")
	ownershipCmd.Flags().StringVar(&ownershipFormat, "format", "text", "Output format: json or text")
	ownershipCmd.Flags().Float64Var(&ownershipDecayDays, "decay-days", 180, "Recency decay constant in days")
	rootCmd.AddCommand(ownershipCmd)
}
