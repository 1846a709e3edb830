package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentdeck/agentdeck/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Manage the project's MCP server definitions (.mcp.json)",
}

var mcpListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured MCP servers",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveProjectDir(cmd)
		if err != nil {
			return err
		}
		specs, err := mcp.LoadConfig(mcpConfigPath(dir))
		if err != nil {
			return err
		}
		if len(specs) == 0 {
			fmt.Println("No MCP servers configured")
			return nil
		}
		for _, name := range mcp.SortedNames(specs) {
			spec := specs[name]
			if spec.IsStdio() {
				fmt.Printf("%s: %s %s\n", name, spec.Command, strings.Join(spec.Args, " "))
			} else {
				fmt.Printf("%s: %s (%s)\n", name, spec.URL, spec.Type)
			}
		}
		return nil
	},
}

var mcpAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add or replace an MCP server definition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveProjectDir(cmd)
		if err != nil {
			return err
		}

		command, _ := cmd.Flags().GetString("command")
		cmdArgs, _ := cmd.Flags().GetStringSlice("arg")
		url, _ := cmd.Flags().GetString("url")
		transport, _ := cmd.Flags().GetString("type")
		headers, _ := cmd.Flags().GetStringSlice("header")
		force, _ := cmd.Flags().GetBool("force")

		spec := mcp.ServerSpec{Command: command, Args: cmdArgs, URL: url, Type: transport}
		for _, h := range headers {
			k, v, ok := strings.Cut(h, ":")
			if !ok {
				return fmt.Errorf("invalid header %q (want Name: value)", h)
			}
			if spec.Headers == nil {
				spec.Headers = make(map[string]string)
			}
			spec.Headers[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}

		if err := mcp.UpsertServer(mcpConfigPath(dir), args[0], spec, force); err != nil {
			return err
		}
		fmt.Printf("Added %s to %s\n", args[0], mcpConfigPath(dir))
		return nil
	},
}

var mcpRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove an MCP server definition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveProjectDir(cmd)
		if err != nil {
			return err
		}
		if err := mcp.RemoveServer(mcpConfigPath(dir), args[0]); err != nil {
			return err
		}
		fmt.Printf("Removed %s from %s\n", args[0], mcpConfigPath(dir))
		return nil
	},
}

func mcpConfigPath(projectDir string) string {
	return filepath.Join(projectDir, ".mcp.json")
}

func init() {
	for _, c := range []*cobra.Command{mcpListCmd, mcpAddCmd, mcpRemoveCmd} {
		addProjectFlags(c)
		mcpCmd.AddCommand(c)
	}
	mcpAddCmd.Flags().String("command", "", "Command for stdio transport")
	mcpAddCmd.Flags().StringSlice("arg", nil, "Command argument (repeatable)")
	mcpAddCmd.Flags().String("url", "", "Endpoint URL for HTTP transport")
	mcpAddCmd.Flags().String("type", "", "Remote transport type (http or sse)")
	mcpAddCmd.Flags().StringSlice("header", nil, "HTTP header as 'Name: value' (repeatable)")
	mcpAddCmd.Flags().Bool("force", false, "Replace an existing entry")
	rootCmd.AddCommand(mcpCmd)
}
