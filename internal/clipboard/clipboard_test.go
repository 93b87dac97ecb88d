package clipboard

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	ran   []string
	input string
	fail  map[string]bool
}

func (r *recorder) run(name string, args []string, stdin io.Reader) error {
	r.ran = append(r.ran, name)
	if r.fail[name] {
		return errors.New("exit status 1")
	}
	data, _ := io.ReadAll(stdin)
	r.input = string(data)
	return nil
}

func newTestClipboard(w io.Writer, installed []string, env map[string]string, r *recorder) *Clipboard {
	c := New(w)
	c.commands = platformCommands("linux")
	c.lookPath = func(name string) (string, error) {
		for _, n := range installed {
			if n == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", errors.New("not found")
	}
	c.run = r.run
	c.getenv = func(k string) string { return env[k] }
	return c
}

func TestCopyUsesFirstWorkingCommand(t *testing.T) {
	r := &recorder{fail: map[string]bool{"xclip": true}}
	var term bytes.Buffer
	c := newTestClipboard(&term, []string{"xclip", "xsel"}, nil, r)

	assert.True(t, c.Copy("demons beware"))
	assert.Equal(t, []string{"xclip", "xsel"}, r.ran)
	assert.Equal(t, "demons beware", r.input)
	assert.Zero(t, term.Len())
}

func TestCopySkipsWaylandWithoutDisplay(t *testing.T) {
	r := &recorder{}
	c := newTestClipboard(nil, []string{"wl-copy", "xsel"}, nil, r)

	assert.True(t, c.Copy("x"))
	assert.Equal(t, []string{"xsel"}, r.ran)
}

func TestCopyFallsBackToOSC52(t *testing.T) {
	r := &recorder{}
	var term bytes.Buffer
	c := newTestClipboard(&term, nil, map[string]string{"TERM": "xterm-256color"}, r)

	assert.True(t, c.Copy("hi"))
	assert.Empty(t, r.ran)
	// "hi" in base64.
	assert.True(t, strings.HasPrefix(term.String(), "\x1b]52;c;aGk="), "got %q", term.String())
}

func TestCopyOSC52InsideTmux(t *testing.T) {
	var term bytes.Buffer
	c := newTestClipboard(&term, nil, map[string]string{"TMUX": "/tmp/tmux-1000/default,1,0"}, &recorder{})

	assert.True(t, c.Copy("hi"))
	assert.True(t, strings.HasPrefix(term.String(), "\x1bPtmux;"), "got %q", term.String())
}

func TestCopyReportsFailure(t *testing.T) {
	r := &recorder{fail: map[string]bool{"xsel": true}}
	c := newTestClipboard(nil, []string{"xsel"}, nil, r)

	assert.False(t, c.Copy("lost"))
}
