package project

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/agentdeck/agentdeck/internal/agent"
)

func writeAgent(t *testing.T, projectDir, filename, content string) {
	t.Helper()
	dir := AgentsDir(projectDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

const validAgent = `---
name: architect
description: "Design"
model: opus
tools: [Read, Glob]
nickname: Ada
---

You design systems.
`

func TestScan_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	writeAgent(t, dir, "architect.md", validAgent)

	result, err := Scan(dir, nil)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(result.Agents) != 1 || len(result.Warnings) != 0 {
		t.Fatalf("result = %+v", result)
	}

	rec := result.Agents[0]
	if rec.Name != "architect" || rec.Nickname != "Ada" {
		t.Errorf("record = %+v", rec)
	}
	if !reflect.DeepEqual(rec.Tools, []string{"Read", "Glob"}) {
		t.Errorf("tools = %v", rec.Tools)
	}

	// Re-serialize, re-parse: identical record.
	if err := Save(dir, rec); err != nil {
		t.Fatalf("save: %v", err)
	}
	back, err := Load(dir, "architect.md")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reflect.DeepEqual(back, rec) {
		t.Errorf("round-trip mismatch\n got: %#v\nwant: %#v", back, rec)
	}
}

func TestScan_BadFilesBecomeWarnings(t *testing.T) {
	dir := t.TempDir()
	writeAgent(t, dir, "good.md", validAgent)
	writeAgent(t, dir, "no-frontmatter.md", "just markdown")
	writeAgent(t, dir, "no-model.md", "---\nname: x\ndescription: d\n---\nbody")
	writeAgent(t, dir, "notes.txt", "not an agent file")

	result, err := Scan(dir, nil)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(result.Agents) != 1 {
		t.Errorf("agents = %+v", result.Agents)
	}
	if len(result.Warnings) != 2 {
		t.Fatalf("warnings = %+v", result.Warnings)
	}
	for _, w := range result.Warnings {
		if !agent.IsParseError(w.Err) {
			t.Errorf("warning for %s carries non-parse error: %v", w.Filename, w.Err)
		}
	}
}

func TestScan_MissingDirectory(t *testing.T) {
	result, err := Scan(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(result.Agents) != 0 || len(result.Warnings) != 0 {
		t.Errorf("result = %+v", result)
	}
}

func TestFind_ByNameAndFilename(t *testing.T) {
	dir := t.TempDir()
	writeAgent(t, dir, "architect.md", validAgent)

	byFile, err := Find(dir, "architect.md")
	if err != nil {
		t.Fatalf("by filename: %v", err)
	}
	byName, err := Find(dir, "architect")
	if err != nil {
		t.Fatalf("by name: %v", err)
	}
	if !reflect.DeepEqual(byFile, byName) {
		t.Errorf("lookup mismatch: %+v vs %+v", byFile, byName)
	}

	if _, err := Find(dir, "missing"); err == nil {
		t.Error("expected error for unknown agent")
	}
}

func TestSave_CreatesDirAndLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	rec := agent.Record{
		Filename: "fresh.md", Name: "fresh", Description: "d", Model: agent.ModelHaiku, Body: "b",
	}
	if err := Save(dir, rec); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(AgentPath(dir, "fresh.md")); err != nil {
		t.Errorf("agent file missing: %v", err)
	}
	if _, err := os.Stat(AgentPath(dir, "fresh.md") + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind")
	}

	if err := Save(dir, agent.Record{Name: "x"}); err == nil {
		t.Error("expected error for record without filename")
	}
}

func TestRemove(t *testing.T) {
	dir := t.TempDir()
	writeAgent(t, dir, "gone.md", validAgent)
	if err := Remove(dir, "gone.md"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Stat(AgentPath(dir, "gone.md")); !os.IsNotExist(err) {
		t.Error("file still present")
	}
	if err := Remove(dir, "gone.md"); err == nil {
		t.Error("expected error removing missing file")
	}
}
