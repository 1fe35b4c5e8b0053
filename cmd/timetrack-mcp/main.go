package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"timetrack-mcp/cli"
)

// Set via ldflags at build time.
var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "timetrack-mcp",
	Short: "MCP server for the TimeTrack time-tracking API",
	Long: "timetrack-mcp — exposes the TimeTrack REST API as MCP tools over stdio " +
		"so an AI assistant can list projects, manage tasks, and track time.",
	// SilenceUsage prevents printing usage on every error
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "", false, "Enable verbose/debug logging")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf("timetrack-mcp version %s\n", version))

	rootCmd.AddCommand(cli.NewServeCmd(version))
	rootCmd.AddCommand(cli.NewToolsCmd())
}
