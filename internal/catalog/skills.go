package catalog

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/agentdeck/agentdeck/internal/agent"
)

const skillFileName = "SKILL.md"

// Skill is one discovered skill definition.
type Skill struct {
	Name        string
	Path        string // path to the SKILL.md file
	Description string
}

// skillFrontmatter is the subset of SKILL.md frontmatter we read.
type skillFrontmatter struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// DiscoverSkills walks the global and project-local skill directories for
// SKILL.md files. Duplicate names are deduplicated with project scope taking
// precedence over global. Results are sorted by name. Missing directories
// simply contribute nothing.
func DiscoverSkills(globalDir, projectDir string) []Skill {
	byName := make(map[string]Skill)
	for _, skill := range discoverSkillsIn(globalDir) {
		byName[skill.Name] = skill
	}
	for _, skill := range discoverSkillsIn(projectDir) {
		byName[skill.Name] = skill // project overrides global
	}

	skills := make([]Skill, 0, len(byName))
	for _, skill := range byName {
		skills = append(skills, skill)
	}
	sort.Slice(skills, func(i, j int) bool { return skills[i].Name < skills[j].Name })
	return skills
}

// discoverSkillsIn recursively finds SKILL.md files under dir. The skill
// name is the frontmatter name when present, otherwise the containing
// directory name. Unreadable entries and unparseable skills are skipped.
func discoverSkillsIn(dir string) []Skill {
	if dir == "" {
		return nil
	}

	var skills []Skill
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}

		if d.IsDir() && path != dir {
			name := d.Name()
			if strings.HasPrefix(name, ".") && name != ".claude" && name != ".agents" {
				return filepath.SkipDir
			}
			switch name {
			case "node_modules", "vendor", "__pycache__":
				return filepath.SkipDir
			}
		}

		if d.IsDir() || d.Name() != skillFileName {
			return nil
		}

		skill := Skill{
			Name: filepath.Base(filepath.Dir(path)),
			Path: path,
		}
		if fm, ok := readSkillFrontmatter(path); ok {
			if fm.Name != "" {
				skill.Name = fm.Name
			}
			skill.Description = fm.Description
		}
		skills = append(skills, skill)
		return nil
	})

	return skills
}

func readSkillFrontmatter(path string) (skillFrontmatter, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return skillFrontmatter{}, false
	}
	fmText, _, err := agent.SplitFrontmatter(string(data))
	if err != nil {
		return skillFrontmatter{}, false
	}
	var fm skillFrontmatter
	if err := yaml.Unmarshal([]byte(fmText), &fm); err != nil {
		return skillFrontmatter{}, false
	}
	return fm, true
}
