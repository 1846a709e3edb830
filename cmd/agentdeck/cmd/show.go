package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentdeck/agentdeck/internal/project"
	"github.com/agentdeck/agentdeck/internal/reconcile"
)

var showCmd = &cobra.Command{
	Use:   "show <agent>",
	Short: "Show one agent's assigned and available capabilities",
	Long: `Show prints the assigned/available partition for each capability
class of one agent. The agent may be given by filename (architect.md) or by
its frontmatter name.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveProjectDir(cmd)
		if err != nil {
			return err
		}

		rec, err := project.Find(dir, args[0])
		if err != nil {
			return err
		}
		cat := buildCatalog(cmd, dir)

		fmt.Printf("%s  %s\n", headerStyle.Render(rec.Name), dimStyle.Render(rec.Filename))
		fmt.Printf("model: %s\n\n", rec.Model)

		fmt.Println(headerStyle.Render("Tools"))
		fmt.Printf("  assigned:  %s\n", summarizeTools(rec.AllTools, rec.Tools))
		if len(rec.DisallowedTools) != 0 {
			fmt.Printf("  denied:    %s\n", summarizeTools(false, rec.DisallowedTools))
		}
		available := reconcile.AvailableBaseTools(rec, cat)
		names := make([]string, len(available))
		for i, tool := range available {
			names[i] = tool.Name
		}
		fmt.Printf("  available: %s\n\n", summarizeTools(false, names))

		fmt.Println(headerStyle.Render("Skills"))
		fmt.Printf("  assigned:  %s\n", summarizeTools(false, rec.Skills))
		availSkills := reconcile.AvailableSkills(rec, cat)
		skillNames := make([]string, len(availSkills))
		for i, s := range availSkills {
			skillNames[i] = s.Name
		}
		fmt.Printf("  available: %s\n", summarizeTools(false, skillNames))

		for _, server := range cat.Servers {
			fmt.Printf("\n%s %s\n", headerStyle.Render("MCP "+server.Name), statusBadge(server.Connected))
			if rec.AllTools || rec.HasServerWildcard(server.Name) {
				fmt.Println("  assigned:  all server tools")
				continue
			}
			var assigned []string
			for _, id := range rec.Tools {
				for _, tool := range server.Tools {
					if id == tool.FullName {
						assigned = append(assigned, tool.Name)
					}
				}
			}
			fmt.Printf("  assigned:  %s\n", summarizeTools(false, assigned))
			availTools := reconcile.AvailableServerTools(rec, cat, server.Name)
			toolNames := make([]string, len(availTools))
			for i, tool := range availTools {
				toolNames[i] = tool.Name
			}
			fmt.Printf("  available: %s\n", summarizeTools(false, toolNames))
		}
		return nil
	},
}

func init() {
	addCatalogFlags(showCmd)
	rootCmd.AddCommand(showCmd)
}
