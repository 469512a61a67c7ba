package main

import (
	"github.com/hug-scm/hug-tools/internal/config"
	"github.com/hug-scm/hug-tools/internal/mcpserver"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve Hug tools over the Model Context Protocol on stdio",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return mcpserver.Serve(config.Version())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
