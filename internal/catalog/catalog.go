package catalog

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/agentdeck/agentdeck/internal/mcp"
)

// Catalog is the discovered universe of assignable capabilities at a point
// in time. It is shared read-only across all agents of a project and rebuilt
// on each scan or MCP refresh.
type Catalog struct {
	BaseTools []BaseTool
	Skills    []Skill
	Servers   []mcp.ServerTools
}

// Server returns the discovery result for a named server.
func (c *Catalog) Server(name string) (mcp.ServerTools, bool) {
	for _, s := range c.Servers {
		if s.Name == name {
			return s, true
		}
	}
	return mcp.ServerTools{}, false
}

// AllMCPToolNames returns the namespaced full names of every discovered
// action across all connected servers.
func (c *Catalog) AllMCPToolNames() []string {
	var names []string
	for _, s := range c.Servers {
		for _, t := range s.Tools {
			names = append(names, t.FullName)
		}
	}
	return names
}

// BuildOptions configures catalog construction. Zero values resolve to the
// Claude Code defaults under the user's home directory.
type BuildOptions struct {
	ProjectDir       string
	GlobalConfigPath string // default ~/.claude.json
	GlobalSkillsDir  string // default ~/.claude/plugins
	CredentialsPath  string // default ~/.claude/agentdeck-credentials.json
	Timeout          time.Duration
	SkipMCP          bool
	Logger           *slog.Logger
}

func (o BuildOptions) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// Build assembles a Catalog from the static base tool table, skill
// discovery, and live MCP server queries over the merged project and global
// configuration. Per-source failures degrade and are logged; they never
// abort construction.
func Build(ctx context.Context, opts BuildOptions) *Catalog {
	log := opts.logger()

	home, _ := os.UserHomeDir()
	if opts.GlobalConfigPath == "" && home != "" {
		opts.GlobalConfigPath = filepath.Join(home, ".claude.json")
	}
	if opts.GlobalSkillsDir == "" && home != "" {
		opts.GlobalSkillsDir = filepath.Join(home, ".claude", "plugins")
	}
	if opts.CredentialsPath == "" && home != "" {
		opts.CredentialsPath = filepath.Join(home, ".claude", "agentdeck-credentials.json")
	}

	var projectSkillsDir string
	if opts.ProjectDir != "" {
		projectSkillsDir = filepath.Join(opts.ProjectDir, ".claude", "skills")
	}

	cat := &Catalog{
		BaseTools: BaseTools,
		Skills:    DiscoverSkills(opts.GlobalSkillsDir, projectSkillsDir),
	}

	if opts.SkipMCP {
		return cat
	}

	var project map[string]mcp.ServerSpec
	if opts.ProjectDir != "" {
		var err error
		project, err = mcp.LoadConfig(filepath.Join(opts.ProjectDir, ".mcp.json"))
		if err != nil {
			log.Warn("skipping project mcp config", "error", err)
		}
	}
	global, err := mcp.LoadConfig(opts.GlobalConfigPath)
	if err != nil {
		log.Warn("skipping global mcp config", "error", err)
	}

	specs := mcp.MergeConfigs(project, global)
	if len(specs) == 0 {
		return cat
	}

	creds, err := mcp.LoadCredentials(opts.CredentialsPath)
	if err != nil {
		log.Warn("skipping credentials file", "error", err)
	} else {
		specs = mcp.ApplyCredentials(specs, creds)
	}

	cat.Servers = mcp.QueryServers(ctx, specs, mcp.QueryOptions{
		Timeout: opts.Timeout,
		Logger:  log,
	})
	return cat
}
