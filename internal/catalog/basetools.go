// Package catalog assembles the universe of assignable capabilities for a
// project: the static base tool table, skills discovered on disk, and MCP
// servers queried live from the project and global configuration.
package catalog

// ToolCategory groups base tools for display.
type ToolCategory string

const (
	CategoryFile      ToolCategory = "file"
	CategoryExecution ToolCategory = "execution"
	CategoryCode      ToolCategory = "code"
	CategoryWeb       ToolCategory = "web"
	CategoryNotebook  ToolCategory = "notebook"
	CategoryUtility   ToolCategory = "utility"
)

// BaseTool is one built-in Claude Code tool.
type BaseTool struct {
	Name     string
	Category ToolCategory
}

// BaseTools is the fixed table of built-in tools. No discovery needed.
var BaseTools = []BaseTool{
	{"Read", CategoryFile},
	{"Write", CategoryFile},
	{"Edit", CategoryFile},
	{"Glob", CategoryFile},
	{"Grep", CategoryFile},
	{"Bash", CategoryExecution},
	{"BashOutput", CategoryExecution},
	{"KillShell", CategoryExecution},
	{"Task", CategoryCode},
	{"WebFetch", CategoryWeb},
	{"WebSearch", CategoryWeb},
	{"NotebookEdit", CategoryNotebook},
	{"TodoWrite", CategoryUtility},
	{"SlashCommand", CategoryUtility},
	{"ExitPlanMode", CategoryUtility},
}

// BaseToolNames returns the names of all base tools in table order.
func BaseToolNames() []string {
	names := make([]string, len(BaseTools))
	for i, t := range BaseTools {
		names[i] = t.Name
	}
	return names
}

// IsBaseTool reports whether name is in the base tool table.
func IsBaseTool(name string) bool {
	for _, t := range BaseTools {
		if t.Name == name {
			return true
		}
	}
	return false
}
