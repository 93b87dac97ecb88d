package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/storydemon/internal/export"
	"github.com/fakeyudi/storydemon/internal/log"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export a saved session as Markdown or JSON",
	Long: `Export a saved session. Markdown exports carry the session metadata in
YAML frontmatter with the text as the body; JSON exports hold everything in
one object. Both can be read back with "storydemon import".

Without -o the document is written to stdout. When -o names a directory the
file is named after the session id.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format := strings.ToLower(exportFormat)
		renderer, err := export.RendererFor(format)
		if err != nil {
			return err
		}

		store, err := openStore(cmd, false, true)
		if err != nil {
			return err
		}
		defer store.Close()

		ws, err := findSession(store, args[0])
		if err != nil {
			return err
		}
		data, err := renderer.Render(export.FromSession(ws))
		if err != nil {
			return fmt.Errorf("rendering session: %w", err)
		}

		if exportOutput == "" {
			_, err := cmd.OutOrStdout().Write(data)
			return err
		}

		path := exportOutput
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			path = filepath.Join(path, "storydemon-"+shortID(ws.ID)+export.Extension(format))
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("writing export: %w", err)
		}
		log.Info("exported session %s to %s", ws.ID, path)
		cmd.Printf("exported to %s\n", path)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", export.FormatMarkdown, "output format: markdown or json")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file or directory (default stdout)")
	rootCmd.AddCommand(exportCmd)
}
