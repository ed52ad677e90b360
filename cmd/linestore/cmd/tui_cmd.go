package cmd

import (
	"github.com/spf13/cobra"

	"linestore/internal/tui"
)

// tuiCmd launches the full-screen editor.
var tuiCmd = &cobra.Command{
	Use:   "tui [file]",
	Short: "Edit a file in the interactive full-screen interface",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, logger, err := openSession(cmd, args)
		if err != nil {
			return err
		}
		defer logger.Close()

		return tui.Run(sess)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
