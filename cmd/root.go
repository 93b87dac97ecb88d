package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/storydemon/internal/config"
	"github.com/fakeyudi/storydemon/internal/log"
	"github.com/fakeyudi/storydemon/internal/session"
)

// cfg holds the loaded configuration, populated in PersistentPreRunE.
var cfg config.Config

// configFlag is the --config value; configPath is the file cfg was loaded
// from.
var (
	configFlag string
	configPath string
)

// logFile is closed when the command finishes.
var logFile *os.File

var rootCmd = &cobra.Command{
	Use:   "storydemon",
	Short: "A writing game where demons heckle you until you squash them",
	Long: `storydemon is a distraction-free writing screen with a twist: every so
often a demon pops up with a snide remark. Click it (or press ctrl+x) to
squash it. The more you write, the faster they come back.

Run without a subcommand to start writing.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := configFlag
		if path == "" {
			p, err := config.DefaultPath()
			if err != nil {
				return fmt.Errorf("resolving config path: %w", err)
			}
			path = p
		}

		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
		configPath = path

		return setupLogging(cfg.Log)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logFile == nil {
			return nil
		}
		err := logFile.Close()
		logFile = nil
		log.SetOutput(io.Discard)
		return err
	},
	RunE: runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file (default $XDG_CONFIG_HOME/storydemon/config.toml)")
}

// setupLogging points the default logger at the configured log file. The
// terminal belongs to the TUI, so logs never go to stdout or stderr.
func setupLogging(lc config.LogConfig) error {
	level, err := log.ParseLevel(lc.Level)
	if err != nil {
		return err
	}
	log.SetLevel(level)

	path := lc.File
	if path == "" {
		dir, err := session.DataDir()
		if err != nil {
			return fmt.Errorf("resolving data directory: %w", err)
		}
		path = filepath.Join(dir, "storydemon.log")
	}
	f, err := log.OpenFile(path)
	if err != nil {
		return err
	}
	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	log.SetOutput(f)
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// GetConfig returns the loaded configuration for use by subcommands.
func GetConfig() config.Config {
	return cfg
}
