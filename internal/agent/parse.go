package agent

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Delimiter is the frontmatter fence line.
const Delimiter = "---"

// MalformedFrontmatterError reports a structural problem with the
// frontmatter block: missing delimiters or unparseable YAML between them.
type MalformedFrontmatterError struct {
	Reason string
}

func (e *MalformedFrontmatterError) Error() string {
	return "malformed frontmatter: " + e.Reason
}

// MissingFieldError reports a required frontmatter field that is absent
// or null.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "missing required field: " + e.Field
}

// InvalidModelError reports a model value outside the recognized enum.
type InvalidModelError struct {
	Value string
}

func (e *InvalidModelError) Error() string {
	return fmt.Sprintf("invalid model %q (want opus, sonnet or haiku)", e.Value)
}

// SplitFrontmatter separates raw file content into the YAML frontmatter text
// and the Markdown body. This is pure text segmentation; no YAML parsing
// happens here. The content must open with a "---" line and carry a closing
// "---" line; otherwise a MalformedFrontmatterError is returned. Leading
// blank lines and a redundant "---" immediately after the closing delimiter
// are stripped from the body, which is then trimmed.
func SplitFrontmatter(content string) (frontmatter, body string, err error) {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, Delimiter) {
		return "", "", &MalformedFrontmatterError{Reason: "content must start with '---'"}
	}

	rest := trimmed[len(Delimiter):]
	end := strings.Index(rest, "\n"+Delimiter)
	if end < 0 {
		return "", "", &MalformedFrontmatterError{Reason: "missing closing '---' delimiter"}
	}

	frontmatter = strings.TrimSpace(rest[:end])
	body = strings.TrimSpace(rest[end+len(Delimiter)+1:])

	// Some hand-edited files double the closing fence; drop the stray one.
	if strings.HasPrefix(body, Delimiter) {
		body = strings.TrimSpace(body[len(Delimiter):])
	}

	return frontmatter, body, nil
}

// Parse turns raw agent file content into a Record. filename is recorded as
// the stable identifier and used in error context. Parse enforces the
// required name/description/model fields, the model enum, and normalizes the
// heterogeneous list encodings (sequence, comma-separated string, absent).
func Parse(content, filename string) (Record, error) {
	fm, body, err := SplitFrontmatter(content)
	if err != nil {
		return Record{}, err
	}

	var raw map[string]any
	if err := yaml.Unmarshal([]byte(fm), &raw); err != nil {
		return Record{}, &MalformedFrontmatterError{Reason: "invalid YAML: " + err.Error()}
	}
	if raw == nil {
		raw = make(map[string]any)
	}

	name, err := requiredString(raw, "name")
	if err != nil {
		return Record{}, err
	}
	description, err := requiredString(raw, "description")
	if err != nil {
		return Record{}, err
	}
	modelStr, err := requiredString(raw, "model")
	if err != nil {
		return Record{}, err
	}
	model := Model(modelStr)
	if !model.Valid() {
		return Record{}, &InvalidModelError{Value: modelStr}
	}

	rec := Record{
		Filename:        filename,
		Name:            name,
		Description:     description,
		Model:           model,
		DisallowedTools: normalizeList(raw["disallowedTools"]),
		Skills:          normalizeList(raw["skills"]),
		Body:            body,
	}

	// tools is the one field with a third encoding: the scalar "*" meaning
	// "all base tools plus all discoverable MCP actions".
	if s, ok := raw["tools"].(string); ok && strings.TrimSpace(s) == WildcardAction {
		rec.AllTools = true
	} else {
		rec.Tools = normalizeList(raw["tools"])
	}

	// nickname is display-only and must be a scalar string; other shapes are
	// ignored rather than coerced.
	if s, ok := raw["nickname"].(string); ok {
		rec.Nickname = s
	}

	return rec, nil
}

// IsParseError reports whether err is one of the per-file fatal parse
// errors a scanner should catch and downgrade to a warning.
func IsParseError(err error) bool {
	var mf *MalformedFrontmatterError
	var miss *MissingFieldError
	var inv *InvalidModelError
	return errors.As(err, &mf) || errors.As(err, &miss) || errors.As(err, &inv)
}

// requiredString fetches a required frontmatter field, stringifying scalar
// values the way the frontmatter format allows (e.g. unquoted numeric names).
func requiredString(raw map[string]any, field string) (string, error) {
	v, ok := raw[field]
	if !ok || v == nil {
		return "", &MissingFieldError{Field: field}
	}
	return stringify(v), nil
}

// normalizeList coerces the three accepted list encodings into a canonical
// string slice: an explicit sequence (each element stringified and trimmed),
// a single comma-separated string (split, trimmed, empties dropped), or
// absent/null (nil). Any other scalar becomes a single-element list.
func normalizeList(v any) []string {
	switch val := v.(type) {
	case nil:
		return nil
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			out = append(out, strings.TrimSpace(stringify(item)))
		}
		if len(out) == 0 {
			return nil
		}
		return out
	case string:
		var out []string
		for _, part := range strings.Split(val, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	default:
		return []string{stringify(v)}
	}
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
