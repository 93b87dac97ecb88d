package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

const separator = "---\n"

// Renderer serializes a Document to bytes.
type Renderer interface {
	Render(doc *Document) ([]byte, error)
}

// JSONRenderer renders a Document as indented JSON.
type JSONRenderer struct{}

func (r *JSONRenderer) Render(doc *Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// MarkdownRenderer renders a Document as YAML frontmatter followed by the
// text, unchanged.
type MarkdownRenderer struct{}

func (r *MarkdownRenderer) Render(doc *Document) ([]byte, error) {
	raw, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal frontmatter: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString(separator)
	buf.Write(raw)
	buf.WriteString(separator)
	buf.WriteString("\n")
	buf.WriteString(doc.Text)
	return buf.Bytes(), nil
}
