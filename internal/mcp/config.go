// Package mcp reads MCP server definitions from Claude Code configuration
// files and queries the defined servers for their tool lists over stdio or
// streamable HTTP.
package mcp

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tailscale/hujson"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// serversKey is the top-level key holding server definitions in .mcp.json
// and ~/.claude.json.
const serversKey = "mcpServers"

// ServerSpec is one server's connection definition: command+args for stdio
// transport, or url+headers for streamable HTTP.
type ServerSpec struct {
	Command string            `json:"command,omitempty"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
	URL     string            `json:"url,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
	Type    string            `json:"type,omitempty"` // "http" or "sse" for remote servers
}

// IsStdio reports whether the spec uses stdio transport.
func (s ServerSpec) IsStdio() bool { return s.Command != "" }

// IsRemote reports whether the spec uses a remote HTTP transport.
func (s ServerSpec) IsRemote() bool { return s.URL != "" }

// Validate checks that a spec is well-formed before it is written to config.
func (s ServerSpec) Validate() error {
	if s.Command == "" && s.URL == "" {
		return fmt.Errorf("server must have either command (stdio) or url (remote)")
	}
	if s.Command != "" && s.URL != "" {
		return fmt.Errorf("server cannot have both command and url")
	}
	return nil
}

// LoadConfig reads the mcpServers mapping from a JSON config file. The files
// are user-edited, so comments and trailing commas are tolerated (JWCC). A
// missing file yields an empty mapping, not an error.
func LoadConfig(path string) (map[string]ServerSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]ServerSpec{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	var file struct {
		MCPServers map[string]ServerSpec `json:"mcpServers"`
	}
	if err := json.Unmarshal(std, &file); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if file.MCPServers == nil {
		file.MCPServers = map[string]ServerSpec{}
	}
	return file.MCPServers, nil
}

// MergeConfigs combines server mappings from multiple sources. Earlier
// layers win on name collisions, so callers pass project-level config before
// global config.
func MergeConfigs(layers ...map[string]ServerSpec) map[string]ServerSpec {
	merged := make(map[string]ServerSpec)
	for _, layer := range layers {
		for name, spec := range layer {
			if _, ok := merged[name]; !ok {
				merged[name] = spec
			}
		}
	}
	return merged
}

// SortedNames returns the server names of a mapping in stable order.
func SortedNames(specs map[string]ServerSpec) []string {
	names := make([]string, 0, len(specs))
	for name := range specs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UpsertServer writes a server entry into the config file at path, creating
// the file if needed. Existing entries are only replaced when force is set.
// The rest of the file is left untouched.
func UpsertServer(path, name string, spec ServerSpec, force bool) error {
	if name == "" {
		return fmt.Errorf("server name is required")
	}
	if err := spec.Validate(); err != nil {
		return err
	}

	content, err := readConfigFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	if content == "" {
		content = "{}"
	}

	entryPath := serversKey + "." + escapeJSONKey(name)
	if gjson.Get(content, entryPath).Exists() && !force {
		return fmt.Errorf("server %q already configured in %s (use --force to replace)", name, path)
	}

	raw, err := json.Marshal(spec)
	if err != nil {
		return fmt.Errorf("marshaling server spec: %w", err)
	}
	newContent, err := sjson.SetRaw(content, entryPath, string(raw))
	if err != nil {
		return fmt.Errorf("writing server entry: %w", err)
	}

	return writeConfigFile(path, newContent)
}

// RemoveServer deletes a server entry from the config file at path.
func RemoveServer(path, name string) error {
	content, err := readConfigFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	entryPath := serversKey + "." + escapeJSONKey(name)
	if content == "" || !gjson.Get(content, entryPath).Exists() {
		return fmt.Errorf("server %q not found in %s", name, path)
	}

	newContent, err := sjson.Delete(content, entryPath)
	if err != nil {
		return fmt.Errorf("removing server entry: %w", err)
	}

	return writeConfigFile(path, newContent)
}

// LoadCredentials reads the optional credentials file mapping server name to
// HTTP headers. A missing file yields an empty mapping.
func LoadCredentials(path string) (map[string]map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	var creds map[string]map[string]string
	if err := json.Unmarshal(std, &creds); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return creds, nil
}

// ApplyCredentials merges per-server headers from the credentials file into
// remote server specs. Headers already present in the spec win.
func ApplyCredentials(specs map[string]ServerSpec, creds map[string]map[string]string) map[string]ServerSpec {
	out := make(map[string]ServerSpec, len(specs))
	for name, spec := range specs {
		if headers, ok := creds[name]; ok && spec.IsRemote() {
			merged := make(map[string]string, len(headers)+len(spec.Headers))
			for k, v := range headers {
				merged[k] = v
			}
			for k, v := range spec.Headers {
				merged[k] = v
			}
			spec.Headers = merged
		}
		out[name] = spec
	}
	return out
}

// readConfigFile reads a JSON config file and returns its content as a
// string. Returns empty string if the file does not exist.
func readConfigFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return string(data), nil
}

// writeConfigFile writes content to a JSON config file atomically.
// Creates parent directories if needed.
func writeConfigFile(path, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// escapeJSONKey escapes a key for use with gjson/sjson path syntax, which
// treats dots and wildcards as path operators.
func escapeJSONKey(key string) string {
	var b strings.Builder
	for _, c := range key {
		if c == '.' || c == '*' || c == '?' || c == '#' {
			b.WriteByte('\\')
		}
		b.WriteRune(c)
	}
	return b.String()
}
