// Package project scans a project directory for agent definition files and
// persists edited records back to disk.
package project

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentdeck/agentdeck/internal/agent"
)

// agentsSubdir is the project-relative directory holding agent files.
const agentsSubdir = ".claude/agents"

// Warning records a file the scanner had to skip and why.
type Warning struct {
	Filename string
	Err      error
}

// ScanResult is the outcome of scanning one project's agents directory.
type ScanResult struct {
	Agents   []agent.Record
	Warnings []Warning
}

// AgentsDir returns the agents directory for a project root.
func AgentsDir(projectDir string) string {
	return filepath.Join(projectDir, agentsSubdir)
}

// AgentPath returns the path of one agent file within a project.
func AgentPath(projectDir, filename string) string {
	return filepath.Join(AgentsDir(projectDir), filename)
}

// Scan parses every .md file in the project's agents directory. A file that
// fails to parse is reported as a warning and excluded; it never aborts the
// scan. A missing agents directory yields an empty result. Agents come back
// in filename order.
func Scan(projectDir string, logger *slog.Logger) (*ScanResult, error) {
	if logger == nil {
		logger = slog.Default()
	}

	entries, err := os.ReadDir(AgentsDir(projectDir))
	if err != nil {
		if os.IsNotExist(err) {
			return &ScanResult{}, nil
		}
		return nil, fmt.Errorf("reading agents directory: %w", err)
	}

	result := &ScanResult{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		rec, err := Load(projectDir, entry.Name())
		if err != nil {
			logger.Warn("skipping agent file", "file", entry.Name(), "error", err)
			result.Warnings = append(result.Warnings, Warning{Filename: entry.Name(), Err: err})
			continue
		}
		result.Agents = append(result.Agents, rec)
	}

	return result, nil
}

// Load reads and parses one agent file by filename.
func Load(projectDir, filename string) (agent.Record, error) {
	data, err := os.ReadFile(AgentPath(projectDir, filename))
	if err != nil {
		return agent.Record{}, fmt.Errorf("reading %s: %w", filename, err)
	}
	return agent.Parse(string(data), filename)
}

// Find loads an agent by filename or, failing that, by agent name.
func Find(projectDir, key string) (agent.Record, error) {
	if strings.HasSuffix(key, ".md") {
		return Load(projectDir, key)
	}
	result, err := Scan(projectDir, nil)
	if err != nil {
		return agent.Record{}, err
	}
	for _, rec := range result.Agents {
		if rec.Name == key {
			return rec, nil
		}
	}
	return agent.Record{}, fmt.Errorf("no agent named %q in %s", key, AgentsDir(projectDir))
}

// Save renders a record and writes it to its file atomically (temp file
// plus rename), so a failed write cannot corrupt the previous content.
// The agents directory is created if needed.
func Save(projectDir string, rec agent.Record) error {
	if rec.Filename == "" {
		return fmt.Errorf("record has no filename")
	}

	content, err := agent.Render(rec)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", rec.Filename, err)
	}

	dir := AgentsDir(projectDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating agents directory: %w", err)
	}

	path := AgentPath(projectDir, rec.Filename)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o644); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("saving %s: %w", rec.Filename, err)
	}
	return nil
}

// Remove deletes an agent file.
func Remove(projectDir, filename string) error {
	if err := os.Remove(AgentPath(projectDir, filename)); err != nil {
		return fmt.Errorf("removing %s: %w", filename, err)
	}
	return nil
}
