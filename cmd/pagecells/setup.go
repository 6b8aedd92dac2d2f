package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"pagecells/internal/cell"
	"pagecells/internal/config"
	"pagecells/internal/document"
	"pagecells/internal/logging"
	"pagecells/internal/options"
	"pagecells/internal/plugins"
)

// session is everything a command needs to show one page.
type session struct {
	cfg    config.Config
	logger *slog.Logger
	scope  *options.Scope
	store  *cell.Store
	path   string
}

// openSession loads the config and the page named by ref. newLogger builds
// the logger at the configured level; nil discards logs.
func openSession(cmd *cobra.Command, ref string, newLogger func(slog.Level) *slog.Logger) (*session, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	levelName := cfg.LogLevel
	if flag, _ := cmd.Flags().GetString("log-level"); flag != "" {
		levelName = flag
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return nil, err
	}
	logger := logging.NewNop()
	if newLogger != nil {
		logger = newLogger(level)
	}

	opts, err := cfg.Build(plugins.NewCatalog(logger))
	if err != nil {
		return nil, err
	}

	pages, err := document.NewStore()
	if err != nil {
		return nil, fmt.Errorf("locate pages: %w", err)
	}
	path := pages.Resolve(ref)
	// The store is the language source, so the scope is built around it
	// once the page is loaded; plugin lookup needs only the options.
	store, err := document.Load(path, options.NewScope(opts, nil))
	if err != nil {
		return nil, err
	}

	lang := cfg.Lang()
	if store.Lang() != "" {
		lang = store.Lang()
	}
	if flag, _ := cmd.Flags().GetString("lang"); flag != "" {
		lang = flag
	}
	if err := store.Dispatch(cell.SetLang{Lang: lang}); err != nil {
		return nil, err
	}

	logger.Debug("session: page loaded", "path", path, "cells", store.Len(), "lang", lang)
	return &session{
		cfg:    cfg,
		logger: logger,
		scope:  options.NewScope(opts, store),
		store:  store,
		path:   path,
	}, nil
}
