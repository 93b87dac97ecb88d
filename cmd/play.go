package cmd

import (
	"errors"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/fakeyudi/storydemon/internal/clipboard"
	"github.com/fakeyudi/storydemon/internal/log"
	"github.com/fakeyudi/storydemon/internal/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start writing (the default command)",
	Args:  cobra.NoArgs,
	RunE:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(os.Stdin.Fd()) || !term.IsTerminal(os.Stdout.Fd()) {
		return errors.New("storydemon needs an interactive terminal; try `storydemon status` or `storydemon history`")
	}

	store, err := openStore(cmd, true, false)
	if err != nil {
		return err
	}
	defer store.Close()

	log.Info("starting game: %d words, %d sessions in history", store.WordCount(), len(store.History()))
	err = tui.Run(tui.Options{
		Store:      store,
		Config:     cfg,
		ConfigPath: configPath,
		Clipboard:  clipboard.New(os.Stderr),
	})
	log.Info("game ended: %d words, %d demons", store.WordCount(), store.DemonCount())
	return err
}

func init() {
	rootCmd.AddCommand(playCmd)
}
