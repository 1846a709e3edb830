package agent

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Render serializes a Record back to agent file content. Field order is
// fixed (name, description, model, tools, disallowedTools, skills, nickname)
// and empty sets / absent nickname are omitted so generated files stay
// minimal and diff-friendly. The output satisfies Parse(Render(r)) == r for
// every field, modulo surrounding whitespace.
func Render(r Record) ([]byte, error) {
	doc := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	appendScalar(doc, "name", r.Name)
	appendScalar(doc, "description", r.Description)
	appendScalar(doc, "model", string(r.Model))

	if r.AllTools {
		// A bare * is a YAML alias indicator, so the wildcard is always
		// emitted quoted.
		key := scalarNode("tools")
		val := scalarNode(WildcardAction)
		val.Style = yaml.DoubleQuotedStyle
		doc.Content = append(doc.Content, key, val)
	} else if len(r.Tools) > 0 {
		appendSequence(doc, "tools", r.Tools)
	}

	if len(r.DisallowedTools) > 0 {
		appendSequence(doc, "disallowedTools", r.DisallowedTools)
	}
	if len(r.Skills) > 0 {
		appendSequence(doc, "skills", r.Skills)
	}
	if r.Nickname != "" {
		appendScalar(doc, "nickname", r.Nickname)
	}

	var fm bytes.Buffer
	enc := yaml.NewEncoder(&fm)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(Delimiter + "\n")
	buf.Write(fm.Bytes())
	buf.WriteString(Delimiter + "\n")
	if r.Body != "" {
		buf.WriteString("\n")
		buf.WriteString(r.Body)
		if !strings.HasSuffix(r.Body, "\n") {
			buf.WriteString("\n")
		}
	}

	return buf.Bytes(), nil
}

func scalarNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

func appendScalar(doc *yaml.Node, key, value string) {
	doc.Content = append(doc.Content, scalarNode(key), scalarNode(value))
}

// appendSequence emits a flow-style sequence ([a, b, c]), matching the
// compact form the agent files use on disk. The encoder quotes individual
// elements only when YAML requires it, which keeps quoting stable across a
// parse/render cycle.
func appendSequence(doc *yaml.Node, key string, values []string) {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle}
	for _, v := range values {
		seq.Content = append(seq.Content, scalarNode(v))
	}
	doc.Content = append(doc.Content, scalarNode(key), seq)
}
