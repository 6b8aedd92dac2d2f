package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"pagecells/internal/cell"
	"pagecells/internal/layout"
	"pagecells/internal/logging"
	"pagecells/internal/metrics"
	"pagecells/internal/trace"
	"pagecells/internal/ui"
)

var editCmd = &cobra.Command{
	Use:   "edit <page>",
	Short: "Open a page in the interactive editor",
	Long: `Opens a page file (.yaml, .yml or .json) or a named page from
$PAGECELLS_PAGES_DIR (default ~/.pagecells/pages) in the terminal editor.
Press SPC for the command menu.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().Bool("preview", false, "Start in preview mode")
	editCmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g. 127.0.0.1:9464)")
	editCmd.Flags().String("log-file", "", "Write logs to this file; logs are discarded otherwise")
}

func runEdit(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// The terminal belongs to the UI, so logs need a file of their own.
	var newLogger func(slog.Level) *slog.Logger
	if path, _ := cmd.Flags().GetString("log-file"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		newLogger = func(level slog.Level) *slog.Logger {
			return logging.NewWriter(f, level)
		}
	}
	s, err := openSession(cmd, args[0], newLogger)
	if err != nil {
		return err
	}

	tp, err := trace.NewProvider(ctx)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	tp.Install()
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			s.logger.Warn("trace: shutdown failed", "err", err)
		}
	}()

	if preview, _ := cmd.Flags().GetBool("preview"); preview {
		if err := s.store.Dispatch(cell.SetMode{Mode: cell.ModePreview}); err != nil {
			return err
		}
	}

	renderer := layout.NewRenderer(s.store,
		layout.WithLogger(s.logger),
		layout.WithTracer(tp.Tracer("pagecells/layout")),
	)
	renderer.ScrollOffset = s.cfg.ScrollOffset
	editor := ui.NewEditorView(ctx, s.store, renderer, s.scope, s.logger)

	if addr, _ := cmd.Flags().GetString("metrics-addr"); addr != "" {
		rec := metrics.NewRecorder()
		s.store.Subscribe(rec.ObserveAction)
		renderer.OnEvent = rec.ObserveEvent
		editor.OnRender = rec.ObserveRender
		go func() {
			if err := rec.Serve(ctx, addr, s.logger); err != nil {
				s.logger.Error("metrics: serve failed", "addr", addr, "err", err)
			}
		}()
	}

	model := ui.NewAppModel(editor, s.path, s.logger).AsTeaModel()
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
