package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/agentdeck/agentdeck/internal/catalog"
)

var (
	connectedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))  // green
	disconnectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")) // red
	warnStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("214")) // amber
	dimStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	headerStyle       = lipgloss.NewStyle().Bold(true)
)

// resolveProjectDir resolves the --dir flag or falls back to cwd.
func resolveProjectDir(cmd *cobra.Command) (string, error) {
	dir, _ := cmd.Flags().GetString("dir")
	if dir != "" {
		return dir, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	return cwd, nil
}

// addProjectFlags adds the flags shared by commands that read a project.
func addProjectFlags(cmd *cobra.Command) {
	cmd.Flags().String("dir", "", "Project directory (default: current directory)")
}

// addCatalogFlags adds the flags shared by commands that build a catalog.
func addCatalogFlags(cmd *cobra.Command) {
	addProjectFlags(cmd)
	cmd.Flags().Duration("timeout", 0, "Per-server MCP query timeout (default 5s)")
	cmd.Flags().Bool("no-mcp", false, "Skip querying MCP servers")
}

// buildCatalog constructs the capability catalog per the command's flags.
func buildCatalog(cmd *cobra.Command, projectDir string) *catalog.Catalog {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	skipMCP, _ := cmd.Flags().GetBool("no-mcp")
	return catalog.Build(context.Background(), catalog.BuildOptions{
		ProjectDir: projectDir,
		Timeout:    timeout,
		SkipMCP:    skipMCP,
	})
}

// statusBadge renders a server's connection state.
func statusBadge(connected bool) string {
	if connected {
		return connectedStyle.Render("connected")
	}
	return disconnectedStyle.Render("disconnected")
}

// summarizeTools renders a record's tool grant for one-line listings.
func summarizeTools(allTools bool, tools []string) string {
	if allTools {
		return "* (all tools)"
	}
	if len(tools) == 0 {
		return dimStyle.Render("none")
	}
	return strings.Join(tools, ", ")
}
