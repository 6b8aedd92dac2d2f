package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pagecells",
	Short: "pagecells edits pages made of nested cells in the terminal",
	Long: `pagecells lays pages out as rows of cells. Each cell is rendered by a
plugin (text, markdown, container, spacer) and may hold rows of its own.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Editor config file (default $PAGECELLS_CONFIG or ~/.pagecells/config.toml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides log_level)")
	rootCmd.PersistentFlags().String("lang", "", "Content language (overrides default_lang)")
}
