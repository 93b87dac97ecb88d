package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/fakeyudi/storydemon/internal/session"
)

var clearYes bool

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"ls"},
	Short:   "List saved writing sessions, newest first",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd, false, true)
		if err != nil {
			return err
		}
		defer store.Close()

		entries := store.History()
		if len(entries) == 0 {
			cmd.Println("no saved sessions")
			return nil
		}

		current := store.CurrentSessionID()
		t := table.New().
			Border(lipgloss.HiddenBorder()).
			Headers("", "ID", "WORDS", "DEMONS", "MODIFIED", "TEXT")
		for _, ws := range entries {
			marker := ""
			if ws.ID == current {
				marker = "*"
			}
			t.Row(
				marker,
				shortID(ws.ID),
				humanize.Comma(int64(ws.WordCount)),
				humanize.Comma(int64(ws.DemonCount)),
				humanize.Time(ws.LastModified),
				ansi.Truncate(firstLine(ws.Text), 40, "…"),
			)
		}
		cmd.Println(t.Render())
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a saved session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd, false, true)
		if err != nil {
			return err
		}
		defer store.Close()

		ws, err := findSession(store, args[0])
		if err != nil {
			return err
		}
		sum := session.Score(ws.WordCount, ws.DemonCount)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "# %s\n", ws.ID)
		fmt.Fprintf(out, "%s words • %s demons • score %s • %s\n\n",
			humanize.Comma(int64(ws.WordCount)),
			humanize.Comma(int64(ws.DemonCount)),
			humanize.Comma(int64(sum.TotalScore)),
			humanize.Time(ws.LastModified),
		)
		fmt.Fprintln(out, ws.Text)
		return nil
	},
}

var historyLoadCmd = &cobra.Command{
	Use:   "load <id>",
	Short: "Make a saved session the current one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd, false, true)
		if err != nil {
			return err
		}
		defer store.Close()

		ws, err := findSession(store, args[0])
		if err != nil {
			return err
		}
		store.LoadFromHistory(ws.ID)
		if store.Err() != nil {
			return errNotSaved
		}
		cmd.Printf("loaded session %s (%d words)\n", shortID(ws.ID), ws.WordCount)
		return nil
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a saved session",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd, false, true)
		if err != nil {
			return err
		}
		defer store.Close()

		ws, err := findSession(store, args[0])
		if err != nil {
			return err
		}
		store.DeleteFromHistory(ws.ID)
		if store.Err() != nil {
			return errNotSaved
		}
		cmd.Printf("deleted session %s\n", shortID(ws.ID))
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every saved session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !clearYes {
			return errors.New("refusing to clear history without --yes")
		}
		store, err := openStore(cmd, false, true)
		if err != nil {
			return err
		}
		defer store.Close()

		n := len(store.History())
		store.ClearHistory()
		if store.Err() != nil {
			return errNotSaved
		}
		cmd.Printf("cleared %d sessions\n", n)
		return nil
	},
}

var historyNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Save the current session and start a blank one",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd, false, true)
		if err != nil {
			return err
		}
		defer store.Close()

		store.StartNewSession()
		if store.Err() != nil {
			return errNotSaved
		}
		cmd.Println("started a new session")
		return nil
	},
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func firstLine(text string) string {
	line, _, _ := strings.Cut(strings.TrimLeft(text, " \n"), "\n")
	return line
}

func init() {
	historyClearCmd.Flags().BoolVar(&clearYes, "yes", false, "confirm deleting every session")
	historyCmd.AddCommand(historyShowCmd, historyLoadCmd, historyDeleteCmd, historyClearCmd, historyNewCmd)
	rootCmd.AddCommand(historyCmd)
}
