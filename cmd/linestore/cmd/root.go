package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"linestore/internal/clock"
	"linestore/internal/config"
	"linestore/internal/core"
	"linestore/internal/editor"
	"linestore/internal/logs"
)

var configPath string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "linestore [file]",
	Short: "A line-oriented text editor backed by a growable line store",
	Long: `linestore loads a text file into memory as a sequence of lines and lets you
view, insert, append, edit, delete and search lines from a numbered menu,
then save the buffer back to disk with one newline per line.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, logger, err := openSession(cmd, args)
		if err != nil {
			return err
		}
		defer logger.Close()

		return editor.NewConsole(sess, cmd.InOrStdin(), cmd.OutOrStdout()).Run()
	},
}

// openSession loads the config, opens the logger and, when a file argument
// is given, loads it into a new session. A missing file starts an empty
// buffer under that name.
func openSession(cmd *cobra.Command, args []string) (*editor.Session, *logs.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	logger := logs.Open(cfg.LogPath())

	fs := core.NewFileStore(cfg.AtomicSave, cfg.MaxLineBytes, logger.Logger)
	sess := editor.NewSession(fs, clock.RealClock{}, logger.Logger, cfg.StoreOptions())

	out := cmd.OutOrStdout()
	if len(args) == 0 {
		fmt.Fprintln(out, "Starting new unnamed buffer.")
		return sess, logger, nil
	}

	switch err := sess.Open(args[0]); {
	case err == nil:
		fmt.Fprintf(out, "Opened existing file '%s' (%d lines).\n", args[0], sess.Store.Len())
	case errors.Is(err, core.ErrNotFound):
		fmt.Fprintf(out, "Starting new file '%s'.\n", args[0])
	default:
		fmt.Fprintf(out, "Could not load '%s': %v\nStarting with an empty buffer.\n", args[0], err)
	}
	logger.Info("open", "file", args[0], "lines", sess.Store.Len())
	return sess, logger, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "path to the YAML config file")
}
