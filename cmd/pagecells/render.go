package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"pagecells/internal/cell"
	"pagecells/internal/layout"
	"pagecells/internal/logging"
)

var renderCmd = &cobra.Command{
	Use:   "render <page>",
	Short: "Print a preview of a page to stdout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		width, _ := cmd.Flags().GetInt("width")
		if width <= 0 {
			return fmt.Errorf("width must be positive, got %d", width)
		}
		color, _ := cmd.Flags().GetString("color")
		profile, err := colorProfile(color)
		if err != nil {
			return err
		}
		lipgloss.SetColorProfile(profile)

		s, err := openSession(cmd, args[0], logging.New)
		if err != nil {
			return err
		}
		if err := s.store.Dispatch(cell.SetMode{Mode: cell.ModePreview}); err != nil {
			return err
		}
		renderer := layout.NewRenderer(s.store, layout.WithLogger(s.logger))
		renderer.ScrollOffset = s.cfg.ScrollOffset
		frame := renderer.Render(cmd.Context(), s.scope, width)
		fmt.Fprintln(cmd.OutOrStdout(), frame.Content)
		return nil
	},
}

// colorProfile maps the --color flag to a profile. auto colors only when
// stdout is a terminal.
func colorProfile(mode string) (termenv.Profile, error) {
	switch mode {
	case "always":
		return termenv.EnvColorProfile(), nil
	case "never":
		return termenv.Ascii, nil
	case "auto", "":
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return termenv.EnvColorProfile(), nil
		}
		return termenv.Ascii, nil
	}
	return termenv.Ascii, fmt.Errorf("unknown color mode %q (want auto, always or never)", mode)
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().Int("width", 80, "Output width in columns")
	renderCmd.Flags().String("color", "auto", "Color output: auto, always or never")
}
