package cmd

import (
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/fakeyudi/storydemon/internal/session"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current writing session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd, false, true)
		if err != nil {
			return err
		}
		defer store.Close()

		id := store.CurrentSessionID()
		if id == "" && store.Text() == "" {
			cmd.Println("no active session")
		} else {
			if id == "" {
				id = "(unsaved)"
			}
			sum := store.Summary()
			cmd.Printf("Session: %s\n", id)
			if ws, ok := store.Lookup(store.CurrentSessionID()); ok {
				cmd.Printf("Started: %s\n", humanize.Time(ws.CreatedAt))
				cmd.Printf("Last edit: %s\n", humanize.Time(ws.LastModified))
			}
			cmd.Printf("Words: %s\n", humanize.Comma(int64(sum.WordCount)))
			cmd.Printf("Demons squashed: %s\n", humanize.Comma(int64(sum.DemonCount)))
			cmd.Printf("Score: %s (×%.1f)\n", humanize.Comma(int64(sum.TotalScore)), sum.Multiplier)
		}
		cmd.Printf("History: %d/%d sessions\n", len(store.History()), session.MaxHistory)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
