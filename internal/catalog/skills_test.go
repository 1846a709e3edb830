package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSkill(t *testing.T, dir, name, description string) {
	t.Helper()
	skillDir := filepath.Join(dir, name)
	if err := os.MkdirAll(skillDir, 0o755); err != nil {
		t.Fatal(err)
	}
	content := "---\nname: " + name + "\ndescription: " + description + "\n---\n\nInstructions.\n"
	if err := os.WriteFile(filepath.Join(skillDir, "SKILL.md"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscoverSkills_Basic(t *testing.T) {
	global := t.TempDir()
	writeSkill(t, filepath.Join(global, "cache", "foo-plugin", "skills"), "pdf-extraction", "Extract PDFs")
	writeSkill(t, global, "commit-helper", "Write commits")

	skills := DiscoverSkills(global, "")
	if len(skills) != 2 {
		t.Fatalf("got %d skills: %+v", len(skills), skills)
	}
	// Sorted by name.
	if skills[0].Name != "commit-helper" || skills[1].Name != "pdf-extraction" {
		t.Errorf("order = %q, %q", skills[0].Name, skills[1].Name)
	}
	if skills[1].Description != "Extract PDFs" {
		t.Errorf("description = %q", skills[1].Description)
	}
	if skills[1].Path == "" {
		t.Error("path not recorded")
	}
}

func TestDiscoverSkills_ProjectOverridesGlobal(t *testing.T) {
	global := t.TempDir()
	project := t.TempDir()
	writeSkill(t, global, "shared", "global version")
	writeSkill(t, project, "shared", "project version")
	writeSkill(t, global, "only-global", "g")

	skills := DiscoverSkills(global, project)
	if len(skills) != 2 {
		t.Fatalf("got %d skills: %+v", len(skills), skills)
	}
	for _, s := range skills {
		if s.Name == "shared" && s.Description != "project version" {
			t.Errorf("shared skill = %+v, want project version", s)
		}
	}
}

func TestDiscoverSkills_DirNameFallback(t *testing.T) {
	global := t.TempDir()
	skillDir := filepath.Join(global, "no-frontmatter-name")
	if err := os.MkdirAll(skillDir, 0o755); err != nil {
		t.Fatal(err)
	}
	// Frontmatter without a name field: the containing directory names it.
	content := "---\ndescription: d\n---\nbody"
	if err := os.WriteFile(filepath.Join(skillDir, "SKILL.md"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	skills := DiscoverSkills(global, "")
	if len(skills) != 1 || skills[0].Name != "no-frontmatter-name" {
		t.Errorf("skills = %+v", skills)
	}
}

func TestDiscoverSkills_SkipsHiddenAndVendorDirs(t *testing.T) {
	global := t.TempDir()
	writeSkill(t, filepath.Join(global, ".git"), "hidden", "h")
	writeSkill(t, filepath.Join(global, "node_modules"), "dep", "d")
	writeSkill(t, global, "visible", "v")

	skills := DiscoverSkills(global, "")
	if len(skills) != 1 || skills[0].Name != "visible" {
		t.Errorf("skills = %+v", skills)
	}
}

func TestDiscoverSkills_MissingDirs(t *testing.T) {
	skills := DiscoverSkills(filepath.Join(t.TempDir(), "absent"), "")
	if len(skills) != 0 {
		t.Errorf("skills = %+v", skills)
	}
}
