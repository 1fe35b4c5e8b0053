package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"timetrack-mcp/catalog"
	"timetrack-mcp/mcpserver"
)

// NewToolsCmd creates the "tools" command group for offline catalog
// inspection; none of its subcommands touch the network or need credentials.
func NewToolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Inspect the static tool catalog",
	}

	cmd.AddCommand(newToolsListCmd())
	cmd.AddCommand(newToolsInspectCmd())

	return cmd
}

func newToolsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every tool with its HTTP mapping",
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tMETHOD\tPATH\tDESCRIPTION")
			for _, ep := range catalog.Endpoints() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", ep.Name, ep.Method, ep.Path, ep.Description)
			}
			return w.Flush()
		},
	}
}

func newToolsInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <name>",
		Short: "Show one tool's declaration and input schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ep, ok := catalog.Lookup(args[0])
			if !ok {
				return exitError(exitConfig, "unknown tool: %s", args[0])
			}
			tool := mcpserver.BuildTool(ep)
			schema, err := json.MarshalIndent(tool.InputSchema, "", "  ")
			if err != nil {
				return exitError(exitRuntime, "encoding schema: %v", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s %s\n", ep.Name, ep.Method, ep.Path)
			fmt.Fprintln(out, ep.Description)
			fmt.Fprintln(out, string(schema))
			return nil
		},
	}
}
