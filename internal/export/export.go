// Package export converts writing sessions to and from portable documents.
package export

import (
	"fmt"
	"time"

	"github.com/fakeyudi/storydemon/internal/session"
)

// Version is the document format version written by this package.
const Version = 1

// Document is the portable representation of one writing session. In
// Markdown the text is the body and every other field lives in the YAML
// frontmatter.
type Document struct {
	Version      int       `json:"storydemon_version" yaml:"storydemon_version"`
	ID           string    `json:"id" yaml:"id"`
	Text         string    `json:"text" yaml:"-"`
	WordCount    int       `json:"word_count" yaml:"word_count"`
	DemonCount   int       `json:"demon_count" yaml:"demon_count"`
	CreatedAt    time.Time `json:"created_at" yaml:"created_at"`
	LastModified time.Time `json:"last_modified" yaml:"last_modified"`
	Score        int       `json:"score" yaml:"score"`
}

// FromSession builds a Document from a history entry.
func FromSession(ws session.WritingSession) *Document {
	return &Document{
		Version:      Version,
		ID:           ws.ID,
		Text:         ws.Text,
		WordCount:    ws.WordCount,
		DemonCount:   ws.DemonCount,
		CreatedAt:    ws.CreatedAt,
		LastModified: ws.LastModified,
		Score:        session.Score(ws.WordCount, ws.DemonCount).TotalScore,
	}
}

// Session converts d back into a history entry. The word count is derived
// from the text; the stored count and score are informational.
func (d *Document) Session() session.WritingSession {
	return session.WritingSession{
		ID:           d.ID,
		Text:         d.Text,
		WordCount:    session.CountWords(d.Text),
		DemonCount:   max(0, d.DemonCount),
		CreatedAt:    time.UnixMilli(d.CreatedAt.UnixMilli()),
		LastModified: time.UnixMilli(d.LastModified.UnixMilli()),
	}
}

func (d *Document) validate() error {
	if d.Version != Version {
		return fmt.Errorf("unsupported document version %d", d.Version)
	}
	return nil
}

// Supported formats.
const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// RendererFor returns the Renderer for format.
func RendererFor(format string) (Renderer, error) {
	switch format {
	case FormatMarkdown, "md":
		return &MarkdownRenderer{}, nil
	case FormatJSON:
		return &JSONRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown format %q (want markdown or json)", format)
	}
}

// Extension returns the file extension conventionally used for format.
func Extension(format string) string {
	if format == FormatJSON {
		return ".json"
	}
	return ".md"
}
