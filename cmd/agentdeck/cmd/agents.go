package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentdeck/agentdeck/internal/project"
)

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "List the subagents defined in a project",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveProjectDir(cmd)
		if err != nil {
			return err
		}

		result, err := project.Scan(dir, nil)
		if err != nil {
			return err
		}

		if len(result.Agents) == 0 && len(result.Warnings) == 0 {
			fmt.Printf("No agents found in %s\n", project.AgentsDir(dir))
			return nil
		}

		for _, rec := range result.Agents {
			name := rec.Name
			if rec.Nickname != "" {
				name = fmt.Sprintf("%s (%s)", rec.Name, rec.Nickname)
			}
			fmt.Printf("%s  %s\n", headerStyle.Render(name), dimStyle.Render(rec.Filename))
			fmt.Printf("  model:  %s\n", rec.Model)
			fmt.Printf("  tools:  %s\n", summarizeTools(rec.AllTools, rec.Tools))
			if len(rec.DisallowedTools) != 0 {
				fmt.Printf("  denied: %s\n", summarizeTools(false, rec.DisallowedTools))
			}
			if len(rec.Skills) != 0 {
				fmt.Printf("  skills: %s\n", summarizeTools(false, rec.Skills))
			}
		}

		for _, w := range result.Warnings {
			fmt.Printf("%s %s: %v\n", warnStyle.Render("skipped"), w.Filename, w.Err)
		}
		return nil
	},
}

func init() {
	addProjectFlags(agentsCmd)
	rootCmd.AddCommand(agentsCmd)
}
