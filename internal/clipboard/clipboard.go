// Package clipboard copies text to the system clipboard. Platform clipboard
// commands are tried first; when none works the text is sent to the terminal
// as an OSC 52 sequence.
package clipboard

import (
	"bytes"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/aymanbagabas/go-osc52/v2"

	"github.com/fakeyudi/storydemon/internal/log"
)

// command is one platform clipboard writer that reads the text on stdin.
type command struct {
	name string
	args []string
}

// Clipboard copies text. The zero value is not usable; call New.
type Clipboard struct {
	commands []command
	fallback io.Writer

	// Swappable for tests.
	lookPath func(string) (string, error)
	run      func(name string, args []string, stdin io.Reader) error
	getenv   func(string) string
}

// New returns a Clipboard that writes its OSC 52 fallback to w, normally the
// controlling terminal. A nil w disables the fallback.
func New(w io.Writer) *Clipboard {
	return &Clipboard{
		commands: platformCommands(runtime.GOOS),
		fallback: w,
		lookPath: exec.LookPath,
		run:      runCommand,
		getenv:   os.Getenv,
	}
}

func platformCommands(goos string) []command {
	switch goos {
	case "darwin":
		return []command{{name: "pbcopy"}}
	case "windows":
		return []command{{name: "clip.exe"}}
	default:
		return []command{
			{name: "wl-copy"},
			{name: "xclip", args: []string{"-selection", "clipboard"}},
			{name: "xsel", args: []string{"--clipboard", "--input"}},
			// WSL exposes the Windows clipboard.
			{name: "clip.exe"},
		}
	}
}

func runCommand(name string, args []string, stdin io.Reader) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = stdin
	return cmd.Run()
}

// Copy places text on the clipboard and reports whether any path accepted
// it. Failures are logged, never returned.
func (c *Clipboard) Copy(text string) bool {
	for _, cmd := range c.commands {
		if cmd.name == "wl-copy" && c.getenv("WAYLAND_DISPLAY") == "" {
			continue
		}
		if _, err := c.lookPath(cmd.name); err != nil {
			continue
		}
		if err := c.run(cmd.name, cmd.args, strings.NewReader(text)); err != nil {
			log.Warn("clipboard: %s failed: %v", cmd.name, err)
			continue
		}
		log.Debug("clipboard: copied %d bytes with %s", len(text), cmd.name)
		return true
	}
	return c.copyOSC52(text)
}

func (c *Clipboard) copyOSC52(text string) bool {
	if c.fallback == nil {
		return false
	}
	seq := osc52.New(text)
	switch {
	case c.getenv("TMUX") != "":
		seq = seq.Tmux()
	case strings.HasPrefix(c.getenv("TERM"), "screen"):
		seq = seq.Screen()
	}
	// Buffer so a partial write never reaches the terminal.
	var buf bytes.Buffer
	if _, err := seq.WriteTo(&buf); err != nil {
		log.Warn("clipboard: osc52 encode failed: %v", err)
		return false
	}
	if _, err := c.fallback.Write(buf.Bytes()); err != nil {
		log.Warn("clipboard: osc52 write failed: %v", err)
		return false
	}
	log.Debug("clipboard: copied %d bytes with osc52", len(text))
	return true
}
