// Package reconcile computes and mutates the partition of capability
// universes into "assigned" and "available" for one agent. All operations
// are stateless immutable updates: they take a Record by value and return a
// new Record, never touching the caller's slices. The allowed/disallowed
// mutual exclusion invariant holds by construction after every operation.
package reconcile

import (
	"github.com/agentdeck/agentdeck/internal/agent"
	"github.com/agentdeck/agentdeck/internal/catalog"
	"github.com/agentdeck/agentdeck/internal/mcp"
)

// AssignTool grants a tool identifier (base or namespaced MCP). The
// identifier is evicted from the disallowed set first, so the two sets stay
// disjoint. Idempotent. Under the wildcard grant the explicit set is left
// alone — every tool is already assigned.
func AssignTool(r agent.Record, id string) agent.Record {
	r.DisallowedTools = withRemoved(r.DisallowedTools, id)
	if r.AllTools {
		return r
	}
	r.Tools = withAdded(r.Tools, id)
	return r
}

// UnassignTool revokes a tool identifier. No-op if absent. When the
// wildcard grant is on, the grant is first materialized into an explicit
// set (the full catalog universe minus disallowed entries) so the single
// removal has a deterministic result.
func UnassignTool(r agent.Record, cat *catalog.Catalog, id string) agent.Record {
	if r.AllTools {
		r = materialize(r, cat)
	}
	r.Tools = withRemoved(r.Tools, id)
	return r
}

// Disallow puts a tool identifier on the exclusion list, evicting it from
// the explicit allowed set first. Idempotent.
func Disallow(r agent.Record, id string) agent.Record {
	r.Tools = withRemoved(r.Tools, id)
	r.DisallowedTools = withAdded(r.DisallowedTools, id)
	return r
}

// Allow removes a tool identifier from the exclusion list. No-op if absent.
func Allow(r agent.Record, id string) agent.Record {
	r.DisallowedTools = withRemoved(r.DisallowedTools, id)
	return r
}

// AssignSkill adds a skill by name. Idempotent.
func AssignSkill(r agent.Record, name string) agent.Record {
	r.Skills = withAdded(r.Skills, name)
	return r
}

// UnassignSkill removes a skill by name. No-op if absent.
func UnassignSkill(r agent.Record, name string) agent.Record {
	r.Skills = withRemoved(r.Skills, name)
	return r
}

// SetAllTools toggles the wildcard grant. Turning it on clears the explicit
// set; turning it off resets to the explicit empty set (the pre-wildcard
// set is not remembered).
func SetAllTools(r agent.Record, on bool) agent.Record {
	r.AllTools = on
	r.Tools = nil
	return r
}

// AssignAllFromServer grants everything a server offers: the single
// wildcard identifier when wildcard is set, otherwise every concrete action
// discovered for that server. Entries already present are not duplicated.
func AssignAllFromServer(r agent.Record, cat *catalog.Catalog, server string, wildcard bool) agent.Record {
	if wildcard {
		return AssignTool(r, agent.WildcardIdentifier(server))
	}
	if st, ok := cat.Server(server); ok {
		for _, tool := range st.Tools {
			r = AssignTool(r, tool.FullName)
		}
	}
	return r
}

// materialize converts the wildcard grant into the equivalent explicit set:
// all base tools plus all discovered MCP actions, minus disallowed entries.
func materialize(r agent.Record, cat *catalog.Catalog) agent.Record {
	r.AllTools = false
	r.Tools = nil
	for _, name := range catalog.BaseToolNames() {
		if !r.IsDisallowed(name) {
			r.Tools = withAdded(r.Tools, name)
		}
	}
	if cat != nil {
		for _, name := range cat.AllMCPToolNames() {
			if !r.IsDisallowed(name) {
				r.Tools = withAdded(r.Tools, name)
			}
		}
	}
	return r
}

// AvailableBaseTools returns the base tools not currently assigned. Under
// the wildcard grant every base tool counts as assigned.
func AvailableBaseTools(r agent.Record, cat *catalog.Catalog) []catalog.BaseTool {
	if r.AllTools {
		return nil
	}
	var out []catalog.BaseTool
	for _, tool := range cat.BaseTools {
		if !r.HasTool(tool.Name) {
			out = append(out, tool)
		}
	}
	return out
}

// AvailableSkills returns the catalog skills not currently assigned.
func AvailableSkills(r agent.Record, cat *catalog.Catalog) []catalog.Skill {
	var out []catalog.Skill
	for _, skill := range cat.Skills {
		if !r.HasSkill(skill.Name) {
			out = append(out, skill)
		}
	}
	return out
}

// AvailableServerTools returns a server's discovered actions not currently
// assigned. The wildcard tool grant and the per-server wildcard identifier
// both make the server's whole action list count as assigned.
func AvailableServerTools(r agent.Record, cat *catalog.Catalog, server string) []mcp.ToolInfo {
	if r.AllTools || r.HasServerWildcard(server) {
		return nil
	}
	st, ok := cat.Server(server)
	if !ok {
		return nil
	}
	var out []mcp.ToolInfo
	for _, tool := range st.Tools {
		if !r.HasTool(tool.FullName) {
			out = append(out, tool)
		}
	}
	return out
}

// withAdded returns a copy of ss with s appended if not already present.
func withAdded(ss []string, s string) []string {
	for _, v := range ss {
		if v == s {
			return ss
		}
	}
	out := make([]string, 0, len(ss)+1)
	out = append(out, ss...)
	return append(out, s)
}

// withRemoved returns a copy of ss with every occurrence of s removed.
// The original slice is never modified.
func withRemoved(ss []string, s string) []string {
	found := false
	for _, v := range ss {
		if v == s {
			found = true
			break
		}
	}
	if !found {
		return ss
	}
	var out []string
	for _, v := range ss {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}
