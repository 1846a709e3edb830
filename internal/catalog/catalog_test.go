package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/agentdeck/agentdeck/internal/mcp"
)

func TestBaseTools_Table(t *testing.T) {
	if len(BaseTools) == 0 {
		t.Fatal("base tool table is empty")
	}
	seen := make(map[string]bool)
	for _, tool := range BaseTools {
		if tool.Name == "" || tool.Category == "" {
			t.Errorf("incomplete entry: %+v", tool)
		}
		if seen[tool.Name] {
			t.Errorf("duplicate tool %q", tool.Name)
		}
		seen[tool.Name] = true
	}
	if !IsBaseTool("Read") || !IsBaseTool("Bash") {
		t.Error("expected Read and Bash in base table")
	}
	if IsBaseTool("mcp__x__y") {
		t.Error("namespaced identifier reported as base tool")
	}
}

func TestBuild_SkipMCP(t *testing.T) {
	project := t.TempDir()
	writeSkill(t, filepath.Join(project, ".claude", "skills"), "local-skill", "d")

	cat := Build(context.Background(), BuildOptions{
		ProjectDir:       project,
		GlobalConfigPath: filepath.Join(project, "no-global.json"),
		GlobalSkillsDir:  filepath.Join(project, "no-skills"),
		CredentialsPath:  filepath.Join(project, "no-creds.json"),
		SkipMCP:          true,
	})

	if len(cat.BaseTools) != len(BaseTools) {
		t.Errorf("base tools = %d", len(cat.BaseTools))
	}
	if len(cat.Skills) != 1 || cat.Skills[0].Name != "local-skill" {
		t.Errorf("skills = %+v", cat.Skills)
	}
	if len(cat.Servers) != 0 {
		t.Errorf("servers = %+v", cat.Servers)
	}
}

func TestBuild_UnreachableServersStayListed(t *testing.T) {
	project := t.TempDir()
	config := `{"mcpServers": {
		"ghost-a": {"command": "agentdeck-no-such-binary-a"},
		"ghost-b": {"command": "agentdeck-no-such-binary-b"}
	}}`
	if err := os.WriteFile(filepath.Join(project, ".mcp.json"), []byte(config), 0o644); err != nil {
		t.Fatal(err)
	}

	cat := Build(context.Background(), BuildOptions{
		ProjectDir:       project,
		GlobalConfigPath: filepath.Join(project, "no-global.json"),
		GlobalSkillsDir:  filepath.Join(project, "no-skills"),
		CredentialsPath:  filepath.Join(project, "no-creds.json"),
		Timeout:          2 * time.Second,
	})

	if len(cat.Servers) != 2 {
		t.Fatalf("servers = %+v", cat.Servers)
	}
	for _, s := range cat.Servers {
		if s.Connected || s.Err == "" {
			t.Errorf("server %q should be disconnected with an error: %+v", s.Name, s)
		}
	}

	if _, ok := cat.Server("ghost-a"); !ok {
		t.Error("Server lookup failed for ghost-a")
	}
}

func TestAllMCPToolNames(t *testing.T) {
	cat := &Catalog{Servers: []mcp.ServerTools{
		{Name: "a", Connected: true, Tools: []mcp.ToolInfo{
			{Name: "t1", FullName: "mcp__a__t1"},
			{Name: "t2", FullName: "mcp__a__t2"},
		}},
		{Name: "b", Connected: false},
	}}
	names := cat.AllMCPToolNames()
	if len(names) != 2 || names[0] != "mcp__a__t1" || names[1] != "mcp__a__t2" {
		t.Errorf("names = %v", names)
	}
}
