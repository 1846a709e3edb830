package agent

import (
	"reflect"
	"testing"
)

func TestSplitTools(t *testing.T) {
	rec := Record{Tools: []string{"Read", "mcp__playwright__browser_click", "Bash", "mcp__context7__*"}}
	base, mcpTools := rec.SplitTools()
	if !reflect.DeepEqual(base, []string{"Read", "Bash"}) {
		t.Errorf("base = %v", base)
	}
	if !reflect.DeepEqual(mcpTools, []string{"mcp__playwright__browser_click", "mcp__context7__*"}) {
		t.Errorf("mcp = %v", mcpTools)
	}
}

func TestMCPServersAssigned(t *testing.T) {
	rec := Record{Tools: []string{
		"Read",
		"mcp__playwright__browser_click",
		"mcp__playwright__browser_navigate",
		"mcp__context7__*",
		"mcp__broken",      // no action part
		"mcp____nameless",  // empty server name
	}}
	got := rec.MCPServersAssigned()
	if !reflect.DeepEqual(got, []string{"context7", "playwright"}) {
		t.Errorf("servers = %v", got)
	}
}

func TestParseToolIdentifier(t *testing.T) {
	cases := []struct {
		id             string
		server, action string
		ok             bool
	}{
		{"mcp__playwright__browser_click", "playwright", "browser_click", true},
		{"mcp__context7__*", "context7", "*", true},
		{"mcp__srv__action__extra", "srv", "action__extra", true},
		{"Read", "", "", false},
		{"mcp__noaction", "", "", false},
		{"mcp____x", "", "", false},
		{"mcp__x__", "", "", false},
	}
	for _, tc := range cases {
		server, action, ok := ParseToolIdentifier(tc.id)
		if server != tc.server || action != tc.action || ok != tc.ok {
			t.Errorf("ParseToolIdentifier(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tc.id, server, action, ok, tc.server, tc.action, tc.ok)
		}
	}
}

func TestWildcardIdentifier(t *testing.T) {
	if got := WildcardIdentifier("playwright"); got != "mcp__playwright__*" {
		t.Errorf("WildcardIdentifier = %q", got)
	}
	if got := FullToolName("playwright", "browser_click"); got != "mcp__playwright__browser_click" {
		t.Errorf("FullToolName = %q", got)
	}
}

func TestHasServerWildcard(t *testing.T) {
	rec := Record{Tools: []string{"mcp__playwright__*", "mcp__context7__resolve"}}
	if !rec.HasServerWildcard("playwright") {
		t.Error("expected wildcard for playwright")
	}
	if rec.HasServerWildcard("context7") {
		t.Error("unexpected wildcard for context7")
	}
}
