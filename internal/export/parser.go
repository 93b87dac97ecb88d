package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parser deserializes a document file.
type Parser interface {
	Parse(data []byte) (*Document, error)
}

// JSONParser parses a JSON-encoded Document.
type JSONParser struct{}

func (p *JSONParser) Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON document: %w", err)
	}
	if err := doc.validate(); err != nil {
		return nil, fmt.Errorf("not a valid storydemon document: %w", err)
	}
	return &doc, nil
}

// MarkdownParser parses a Markdown document with YAML frontmatter.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(data []byte) (*Document, error) {
	content := string(data)
	if !strings.HasPrefix(content, separator) {
		return nil, fmt.Errorf("not a valid storydemon document: missing frontmatter")
	}
	rest := strings.TrimPrefix(content, separator)
	idx := strings.Index(rest, "\n"+separator)
	if idx < 0 {
		return nil, fmt.Errorf("not a valid storydemon document: missing closing separator")
	}
	raw := rest[:idx]
	body := rest[idx+len("\n"+separator):]

	// The version key marks our own exports among arbitrary Markdown.
	var probe map[string]any
	if err := yaml.Unmarshal([]byte(raw), &probe); err != nil {
		return nil, fmt.Errorf("not a valid storydemon document: failed to parse frontmatter: %w", err)
	}
	if _, ok := probe["storydemon_version"]; !ok {
		return nil, fmt.Errorf("not a valid storydemon document: missing storydemon_version")
	}

	var doc Document
	if err := yaml.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("not a valid storydemon document: failed to parse frontmatter: %w", err)
	}
	if err := doc.validate(); err != nil {
		return nil, fmt.Errorf("not a valid storydemon document: %w", err)
	}
	doc.Text = strings.TrimPrefix(body, "\n")
	return &doc, nil
}

// Parse detects the format of data and parses it.
func Parse(data []byte) (*Document, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if bytes.HasPrefix(trimmed, []byte("{")) {
		return (&JSONParser{}).Parse(data)
	}
	return (&MarkdownParser{}).Parse(data)
}
