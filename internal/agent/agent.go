// Package agent implements the subagent file model for Claude Code agent
// definitions: Markdown files with a YAML frontmatter header describing the
// agent's identity, model and capability grants. It parses those files into
// Records, renders Records back to deterministic file content, and exposes
// the derived views the capability reconciler works with.
package agent

import (
	"sort"
	"strings"
)

// MCPToolPrefix marks namespaced MCP tool identifiers: mcp__<server>__<action>.
const MCPToolPrefix = "mcp__"

// WildcardAction is the action component granting every current and future
// tool of a server: mcp__<server>__*.
const WildcardAction = "*"

// Model is the Claude model an agent runs on.
type Model string

const (
	ModelOpus   Model = "opus"
	ModelSonnet Model = "sonnet"
	ModelHaiku  Model = "haiku"
)

// Valid reports whether m is one of the recognized model literals.
// Matching is case-sensitive.
func (m Model) Valid() bool {
	switch m {
	case ModelOpus, ModelSonnet, ModelHaiku:
		return true
	}
	return false
}

// Models returns the recognized model literals.
func Models() []Model {
	return []Model{ModelOpus, ModelSonnet, ModelHaiku}
}

// Record is one parsed agent file. Tools, DisallowedTools and Skills have
// set semantics but preserve order for stable serialization. When AllTools
// is set the agent has the "*" wildcard grant and Tools is empty; in that
// mode DisallowedTools is the authoritative exclusion list.
type Record struct {
	Filename        string
	Name            string
	Description     string
	Model           Model
	AllTools        bool
	Tools           []string
	DisallowedTools []string
	Skills          []string
	Nickname        string
	Body            string
}

// HasTool reports whether id is in the explicit tool set. It does not
// consider the wildcard grant.
func (r Record) HasTool(id string) bool { return contains(r.Tools, id) }

// HasSkill reports whether name is in the skill set.
func (r Record) HasSkill(name string) bool { return contains(r.Skills, name) }

// IsDisallowed reports whether id is in the disallowed tool set.
func (r Record) IsDisallowed(id string) bool { return contains(r.DisallowedTools, id) }

// SplitTools partitions the explicit tool set into base tools and MCP
// identifiers. The two families are reconciled independently.
func (r Record) SplitTools() (base, mcpTools []string) {
	for _, t := range r.Tools {
		if IsMCPTool(t) {
			mcpTools = append(mcpTools, t)
		} else {
			base = append(base, t)
		}
	}
	return base, mcpTools
}

// MCPServersAssigned returns the sorted set of server names referenced by
// the MCP subset of the tool set. Identifiers that do not match the
// mcp__<server>__<action> pattern are omitted rather than treated as an
// error; malformed entries must not break grouping.
func (r Record) MCPServersAssigned() []string {
	_, mcpTools := r.SplitTools()
	seen := make(map[string]bool)
	var servers []string
	for _, id := range mcpTools {
		server, _, ok := ParseToolIdentifier(id)
		if !ok || seen[server] {
			continue
		}
		seen[server] = true
		servers = append(servers, server)
	}
	sort.Strings(servers)
	return servers
}

// HasServerWildcard reports whether the record carries the mcp__<server>__*
// grant for the given server.
func (r Record) HasServerWildcard(server string) bool {
	return contains(r.Tools, WildcardIdentifier(server))
}

// IsMCPTool reports whether id is a namespaced MCP tool identifier.
func IsMCPTool(id string) bool { return strings.HasPrefix(id, MCPToolPrefix) }

// ParseToolIdentifier splits a namespaced identifier mcp__<server>__<action>
// into its server and action parts. The action may be the "*" wildcard.
// ok is false when id does not follow the two-underscore-delimited pattern.
func ParseToolIdentifier(id string) (server, action string, ok bool) {
	rest, found := strings.CutPrefix(id, MCPToolPrefix)
	if !found {
		return "", "", false
	}
	server, action, found = strings.Cut(rest, "__")
	if !found || server == "" || action == "" {
		return "", "", false
	}
	return server, action, true
}

// WildcardIdentifier returns the wildcard identifier for a server.
func WildcardIdentifier(server string) string {
	return MCPToolPrefix + server + "__" + WildcardAction
}

// FullToolName returns the namespaced identifier for one server action.
func FullToolName(server, action string) string {
	return MCPToolPrefix + server + "__" + action
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
