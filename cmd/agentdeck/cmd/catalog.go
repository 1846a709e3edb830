package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Show the skills and MCP server tools available to agents",
	Long: `Catalog discovers the capability universe for a project: skills from
the global plugins directory and the project's .claude/skills, and MCP
servers from the project's .mcp.json plus the global ~/.claude.json.

Each configured MCP server is queried live for its tool list. Servers that
cannot be reached are shown disconnected with the failure reason; they can
still be granted via wildcard or hand-entered identifiers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveProjectDir(cmd)
		if err != nil {
			return err
		}
		cat := buildCatalog(cmd, dir)

		fmt.Println(headerStyle.Render("Base tools"))
		for _, tool := range cat.BaseTools {
			fmt.Printf("  %-14s %s\n", tool.Name, dimStyle.Render(string(tool.Category)))
		}

		fmt.Println()
		fmt.Println(headerStyle.Render("Skills"))
		if len(cat.Skills) == 0 {
			fmt.Println(dimStyle.Render("  none discovered"))
		}
		for _, skill := range cat.Skills {
			if skill.Description != "" {
				fmt.Printf("  %-20s %s\n", skill.Name, dimStyle.Render(skill.Description))
			} else {
				fmt.Printf("  %s\n", skill.Name)
			}
		}

		fmt.Println()
		fmt.Println(headerStyle.Render("MCP servers"))
		if len(cat.Servers) == 0 {
			fmt.Println(dimStyle.Render("  none configured"))
		}
		for _, server := range cat.Servers {
			fmt.Printf("  %s %s\n", server.Name, statusBadge(server.Connected))
			if server.Err != "" {
				fmt.Printf("    %s\n", warnStyle.Render(server.Err))
			}
			for _, tool := range server.Tools {
				fmt.Printf("    %-30s %s\n", tool.Name, dimStyle.Render(tool.FullName))
			}
		}
		return nil
	},
}

func init() {
	addCatalogFlags(catalogCmd)
	rootCmd.AddCommand(catalogCmd)
}
