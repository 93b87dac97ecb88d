package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/storydemon/internal/export"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Add an exported session to the history",
	Long: `Import a session previously written by "storydemon export". The format
(Markdown or JSON) is detected from the content. A session with the same id
is replaced; otherwise it is added as the newest entry.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("file not found: %s", path)
			}
			return err
		}

		doc, err := export.Parse(data)
		if err != nil {
			return err
		}

		store, err := openStore(cmd, false, true)
		if err != nil {
			return err
		}
		defer store.Close()

		ws := doc.Session()
		store.Import(ws)
		if store.Err() != nil {
			return errNotSaved
		}
		id := ws.ID
		if id == "" {
			// New ids are prepended.
			id = store.History()[0].ID
		}
		cmd.Printf("imported session %s (%d words, %d demons)\n", shortID(id), ws.WordCount, ws.DemonCount)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
