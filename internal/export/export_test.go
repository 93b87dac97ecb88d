package export_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/fakeyudi/storydemon/internal/export"
	"github.com/fakeyudi/storydemon/internal/session"
)

// generateTime produces an arbitrary time at millisecond precision, the
// precision sessions are stored with.
func generateTime(t *rapid.T, label string) time.Time {
	ms := rapid.Int64Range(1_000_000_000_000, 1_900_000_000_000).Draw(t, label+"_unix_ms")
	return time.UnixMilli(ms)
}

func generateSession(t *rapid.T) session.WritingSession {
	text := rapid.String().Draw(t, "text")
	created := generateTime(t, "created")
	return session.WritingSession{
		ID:           rapid.StringMatching(`[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`).Draw(t, "id"),
		Text:         text,
		WordCount:    session.CountWords(text),
		DemonCount:   rapid.IntRange(0, 200).Draw(t, "demons"),
		CreatedAt:    created,
		LastModified: created.Add(time.Duration(rapid.Int64Range(0, 1e9).Draw(t, "age_ms")) * time.Millisecond),
	}
}

func checkRoundTrip(t *rapid.T, want session.WritingSession, format string) {
	r, err := export.RendererFor(format)
	if err != nil {
		t.Fatal(err)
	}
	data, err := r.Render(export.FromSession(want))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	doc, err := export.Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v\n%s", err, data)
	}
	got := doc.Session()
	if got.ID != want.ID || got.Text != want.Text || got.WordCount != want.WordCount || got.DemonCount != want.DemonCount {
		t.Fatalf("round trip mismatch:\nwant %+v\ngot  %+v", want, got)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) || !got.LastModified.Equal(want.LastModified) {
		t.Fatalf("timestamps changed: want %v/%v got %v/%v", want.CreatedAt, want.LastModified, got.CreatedAt, got.LastModified)
	}
}

// Feature: storydemon, Property 10: Markdown export round-trip
func TestMarkdownRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		checkRoundTrip(t, generateSession(t), export.FormatMarkdown)
	})
}

// Feature: storydemon, Property 11: JSON export round-trip
func TestJSONRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		checkRoundTrip(t, generateSession(t), export.FormatJSON)
	})
}

func TestMarkdownLayout(t *testing.T) {
	doc := export.FromSession(session.WritingSession{
		ID:         "abc",
		Text:       "It was a dark and stormy night.\n\n---\nThe end.",
		WordCount:  9,
		DemonCount: 5,
	})
	data, err := (&export.MarkdownRenderer{}).Render(doc)
	require.NoError(t, err)

	out := string(data)
	assert.True(t, strings.HasPrefix(out, "---\nstorydemon_version: 1\n"), out)
	assert.Contains(t, out, "score: 14\n")
	assert.True(t, strings.HasSuffix(out, "\n---\n\nIt was a dark and stormy night.\n\n---\nThe end."), out)

	parsed, err := (&export.MarkdownParser{}).Parse(data)
	require.NoError(t, err)
	assert.Equal(t, doc.Text, parsed.Text)
}

func TestMarkdownParserRejectsPlainMarkdown(t *testing.T) {
	for name, input := range map[string]string{
		"no frontmatter":   "# Just a story\n\nOnce upon a time.",
		"foreign metadata": "---\ntitle: Something else\n---\n\nBody",
		"unterminated":     "---\nstorydemon_version: 1\nid: x\n",
		"bad yaml":         "---\nstorydemon_version: [1\n---\n\nBody",
		"future version":   "---\nstorydemon_version: 9\nid: x\n---\n\nBody",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := (&export.MarkdownParser{}).Parse([]byte(input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "not a valid storydemon document")
		})
	}
}

func TestJSONParserErrors(t *testing.T) {
	_, err := (&export.JSONParser{}).Parse([]byte(`{"id": "x"`))
	assert.Error(t, err)

	_, err = (&export.JSONParser{}).Parse([]byte(`{"id": "x", "text": "hi"}`))
	assert.ErrorContains(t, err, "unsupported document version 0")
}

func TestRendererForUnknown(t *testing.T) {
	_, err := export.RendererFor("pdf")
	assert.Error(t, err)
	assert.Equal(t, ".json", export.Extension(export.FormatJSON))
	assert.Equal(t, ".md", export.Extension(export.FormatMarkdown))
}
