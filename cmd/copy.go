package cmd

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/storydemon/internal/clipboard"
)

// newClipboard is swapped in tests.
var newClipboard = func(w io.Writer) interface{ Copy(string) bool } {
	return clipboard.New(w)
}

var copyCmd = &cobra.Command{
	Use:   "copy [id]",
	Short: "Copy the current session (or a saved one) to the clipboard",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd, false, true)
		if err != nil {
			return err
		}
		defer store.Close()

		text := store.Text()
		if len(args) == 1 {
			ws, err := findSession(store, args[0])
			if err != nil {
				return err
			}
			text = ws.Text
		}
		if strings.TrimSpace(text) == "" {
			return errors.New("nothing to copy")
		}

		if !newClipboard(os.Stderr).Copy(text) {
			return errors.New("copy failed: no clipboard available")
		}
		cmd.Println("Copied!")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(copyCmd)
}
