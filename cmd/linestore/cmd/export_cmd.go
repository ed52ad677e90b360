package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"linestore/internal/config"
	"linestore/internal/core"
	"linestore/internal/render"
)

var exportOut string

// exportCmd renders a file as HTML, reading its lines as Markdown.
var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Render a file's lines as Markdown to HTML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		fs := core.NewFileStore(false, cfg.MaxLineBytes, nil)
		s, err := core.OpenOrEmpty(fs, args[0], cfg.StoreOptions())
		if err != nil {
			return fmt.Errorf("load %s: %w", args[0], err)
		}

		if exportOut == "" || exportOut == "-" {
			return render.HTML(cmd.OutOrStdout(), s)
		}
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("create %s: %w", exportOut, err)
		}
		if err := render.HTML(f, s); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "write HTML to this file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}
