package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentdeck/agentdeck/internal/agent"
	"github.com/agentdeck/agentdeck/internal/project"
	"github.com/agentdeck/agentdeck/internal/reconcile"
)

var assignCmd = &cobra.Command{
	Use:   "assign <agent>",
	Short: "Grant tools, skills or MCP server access to an agent",
	Long: `Assign edits one agent's capability grants and writes the file back.

Granting a tool removes it from the disallowed list (and vice versa for
deny); the two sets can never overlap. --server grants a whole MCP server,
either as the mcp__<server>__* wildcard (default) or expanded to every
discovered action with --expand.`,
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

		tools, _ := cmd.Flags().GetStringSlice("tool")
		skills, _ := cmd.Flags().GetStringSlice("skill")
		denied, _ := cmd.Flags().GetStringSlice("deny")
		server, _ := cmd.Flags().GetString("server")
		expand, _ := cmd.Flags().GetBool("expand")
		allTools, _ := cmd.Flags().GetBool("all-tools")

		if len(tools)+len(skills)+len(denied) == 0 && server == "" && !allTools {
			return fmt.Errorf("nothing to assign: pass --tool, --skill, --deny, --server or --all-tools")
		}

		if allTools {
			rec = reconcile.SetAllTools(rec, true)
		}
		for _, id := range tools {
			rec = reconcile.AssignTool(rec, id)
		}
		for _, name := range skills {
			rec = reconcile.AssignSkill(rec, name)
		}
		for _, id := range denied {
			rec = reconcile.Disallow(rec, id)
		}
		if server != "" {
			if expand {
				cat := buildCatalog(cmd, dir)
				st, ok := cat.Server(server)
				if !ok || !st.Connected {
					return fmt.Errorf("server %q has no discovered tools to expand; use the wildcard grant instead", server)
				}
				rec = reconcile.AssignAllFromServer(rec, cat, server, false)
			} else {
				rec = reconcile.AssignTool(rec, agent.WildcardIdentifier(server))
			}
		}

		if err := project.Save(dir, rec); err != nil {
			return err
		}
		fmt.Printf("Updated %s\n", rec.Filename)
		return nil
	},
}

var unassignCmd = &cobra.Command{
	Use:   "unassign <agent>",
	Short: "Revoke tools, skills or denied entries from an agent",
	Long: `Unassign removes capability grants and writes the file back.

Removing a tool while the "*" wildcard grant is active converts the grant
to an explicit list (every known tool except the removed and denied ones).
--all-tools turns the wildcard off, leaving an empty tool list.`,
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

		tools, _ := cmd.Flags().GetStringSlice("tool")
		skills, _ := cmd.Flags().GetStringSlice("skill")
		denied, _ := cmd.Flags().GetStringSlice("deny")
		allTools, _ := cmd.Flags().GetBool("all-tools")

		if len(tools)+len(skills)+len(denied) == 0 && !allTools {
			return fmt.Errorf("nothing to unassign: pass --tool, --skill, --deny or --all-tools")
		}

		if allTools {
			rec = reconcile.SetAllTools(rec, false)
		}
		if len(tools) > 0 {
			cat := buildCatalog(cmd, dir)
			for _, id := range tools {
				rec = reconcile.UnassignTool(rec, cat, id)
			}
		}
		for _, name := range skills {
			rec = reconcile.UnassignSkill(rec, name)
		}
		for _, id := range denied {
			rec = reconcile.Allow(rec, id)
		}

		if err := project.Save(dir, rec); err != nil {
			return err
		}
		fmt.Printf("Updated %s\n", rec.Filename)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{assignCmd, unassignCmd} {
		addCatalogFlags(c)
		c.Flags().StringSlice("tool", nil, "Tool identifier (base name or mcp__server__action)")
		c.Flags().StringSlice("skill", nil, "Skill name")
		c.Flags().StringSlice("deny", nil, "Tool identifier for the disallowed list")
		c.Flags().Bool("all-tools", false, "Toggle the \"*\" wildcard grant")
	}
	assignCmd.Flags().String("server", "", "Grant a whole MCP server")
	assignCmd.Flags().Bool("expand", false, "With --server, add each discovered action instead of the wildcard")
	rootCmd.AddCommand(assignCmd)
	rootCmd.AddCommand(unassignCmd)
}
