package main

import (
	"fmt"

	"github.com/hug-scm/hug-tools/internal/models"
	"github.com/hug-scm/hug-tools/internal/repo"
	"github.com/hug-scm/hug-tools/internal/worktree"
	"github.com/spf13/cobra"
)

var worktreeCmd = &cobra.Command{
	Use:   "worktree",
	Short: "Worktree inspection helpers",
}

var (
	worktreeIncludeMain  bool
	worktreeMainRepoPath string
	worktreeJSON         bool
)

var worktreeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List worktrees with branch, commit and dirty state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !repo.IsRepository(".") {
			return fmt.Errorf("not a git repository")
		}

		trees, err := worktree.NewLister(newRunner("")).List(cmd.Context(), worktreeIncludeMain, worktreeMainRepoPath)
		if err != nil {
			return err
		}

		if worktreeJSON {
			if trees == nil {
				trees = []models.Worktree{}
			}
			return printJSON(trees)
		}
		fmt.Println(worktree.BashDeclare(trees))
		return nil
	},
}

func init() {
	worktreeListCmd.Flags().BoolVar(&worktreeIncludeMain, "include-main", false, "Include the main repository checkout")
	worktreeListCmd.Flags().StringVar(&worktreeMainRepoPath, "main-repo-path", "", "Main repository path to exclude")
	worktreeListCmd.Flags().BoolVar(&worktreeJSON, "json", false, "Output JSON instead of bash declarations")

	worktreeCmd.AddCommand(worktreeListCmd)
	rootCmd.AddCommand(worktreeCmd)
}
