package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/todo/internal/config"
	"github.com/sandeepkv93/todo/internal/logging"
	"github.com/sandeepkv93/todo/internal/model"
	"github.com/sandeepkv93/todo/internal/query"
	"github.com/sandeepkv93/todo/internal/storage"
	"github.com/sandeepkv93/todo/internal/store"
)

// app is everything a subcommand needs once configuration is resolved.
type app struct {
	cfg     config.RuntimeConfig
	logger  *log.Logger
	store   *store.Store
	closers []io.Closer
}

func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i].Close())
	}
	return errors.Join(errs...)
}

func loadConfig(opts *rootOptions) (config.RuntimeConfig, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.RuntimeConfig{}, err
	}
	if opts.backend != "" {
		cfg.Backend = opts.backend
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if opts.file != "" {
		if strings.EqualFold(strings.TrimSpace(cfg.Backend), config.BackendSQLite) {
			cfg.SQLitePath = opts.file
		} else {
			cfg.DataFile = opts.file
		}
	}
	cfg.Finalize()
	if err := cfg.Validate(); err != nil {
		return config.RuntimeConfig{}, err
	}
	return cfg, nil
}

// openApp resolves config, opens the backend and loads the store. The
// terminal UI logs to the configured file so it does not draw over the
// screen; everything else logs to stderr.
func openApp(cmd *cobra.Command, opts *rootOptions, tui bool) (*app, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg}

	logOpts := logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat}
	if tui {
		logger, closer, err := logging.OpenFile(cfg.LogFile, logOpts)
		if err != nil {
			return nil, err
		}
		a.logger = logger
		if closer != nil {
			a.closers = append(a.closers, closer)
		}
	} else {
		a.logger = logging.New(cmd.ErrOrStderr(), logOpts)
	}

	var backend storage.Backend
	switch cfg.Backend {
	case config.BackendSQLite:
		repo, err := storage.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.closers = append(a.closers, repo)
		backend = repo
	default:
		backend = storage.NewFlatFile(cfg.DataFile, storage.WithFlatFileLogger(a.logger))
	}
	a.logger.Debug("backend opened", "backend", cfg.Backend)

	a.store = store.New(backend, store.WithLogger(a.logger))
	a.store.Load(commandContext(cmd))
	return a, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// defaultListing is what a bare `todo list` prints; task numbers on the
// command line index into it.
func (a *app) defaultListing() []model.Task {
	p := query.DefaultParams()
	if mode, err := query.ParseSortMode(a.cfg.DefaultSort); err == nil {
		p.Sort = mode
	}
	return query.Run(a.store.Tasks(), p)
}

func (a *app) taskByNumber(raw string) (model.Task, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(raw, "#"))
	if err != nil {
		return model.Task{}, fmt.Errorf("invalid task number %q", raw)
	}
	listing := a.defaultListing()
	if n < 1 || n > len(listing) {
		return model.Task{}, fmt.Errorf("no task #%d (have %d)", n, len(listing))
	}
	return listing[n-1], nil
}

// defaults is the base for a new task.
func (a *app) defaults() store.Draft {
	return store.Draft{
		Category: model.Category(a.cfg.DefaultCategory),
		Priority: model.Priority(a.cfg.DefaultPriority),
	}
}

// resolve applies flag values on top of base. Categories already used by
// stored tasks are accepted alongside the configured ones.
func (a *app) resolve(base store.Draft, in store.Input) (store.Draft, error) {
	return store.Resolve(base, in, query.TaskCategories(a.store.Tasks(), a.cfg.Categories))
}

// saved reports a failed write of the last change, which would otherwise
// only be logged.
func (a *app) saved() error {
	if err := a.store.SaveErr(); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}
