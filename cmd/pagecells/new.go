package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pagecells/internal/document"
	"pagecells/internal/templates"
)

var newCmd = &cobra.Command{
	Use:   "new <page>",
	Short: "Create a page from a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("template")
		data, err := templates.Get(name)
		if err != nil {
			return err
		}
		pages, err := document.NewStore()
		if err != nil {
			return fmt.Errorf("locate pages: %w", err)
		}
		path, err := pages.Create(args[0], data)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().String("template", templates.Default, "Starter page template")
}
