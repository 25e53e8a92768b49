package app

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/five82/curator/internal/config"
	"github.com/five82/curator/internal/harvard"
	"github.com/five82/curator/internal/logging"
	"github.com/five82/curator/internal/prefs"
	"github.com/five82/curator/internal/state"
	"github.com/five82/curator/internal/ui"
)

// Options configure the curator application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/curator/prefs.toml
	StartPage  int    // zero or one starts on the first page
	Version    string
}

// App holds the wired components for one session.
type App struct {
	Config      config.Config
	Client      *harvard.Client
	Coordinator *state.Coordinator

	logger *logging.Logger
	log    logrus.FieldLogger
}

// New loads configuration and wires the logger, API client and coordinator.
func New(opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(logging.Options{Path: cfg.LogPath(), Level: cfg.LogLevel})
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	root := logger.Service()

	clientOpts := []harvard.Option{
		harvard.WithTimeout(cfg.Timeout),
		harvard.WithBreakerThreshold(cfg.BreakerThreshold),
		harvard.WithLogger(root),
	}
	if opts.Version != "" {
		clientOpts = append(clientOpts, harvard.WithUserAgent("curator/"+opts.Version))
	}
	client, err := harvard.NewClient(cfg.BaseURL, cfg.APIKey, clientOpts...)
	if err != nil {
		_ = logger.Close()
		return nil, fmt.Errorf("init api client: %w", err)
	}

	coordinator := state.NewCoordinator(client,
		state.WithRefreshPolicy(state.ParseRefreshPolicy(cfg.RefreshPolicy)),
		state.WithLogger(root),
	)

	if cfg.APIKey == "" {
		root.Warn("no API key configured; requests will be rejected")
	}
	root.WithFields(logrus.Fields{
		"base_url":       cfg.BaseURL,
		"refresh_policy": cfg.RefreshPolicy,
		"timeout":        cfg.Timeout.String(),
	}).Info("curator started")

	return &App{
		Config:      cfg,
		Client:      client,
		Coordinator: coordinator,
		logger:      logger,
		log:         root.WithField("component", "app"),
	}, nil
}

// Activate is called whenever the application becomes active: at start and
// each time the terminal regains focus. It triggers the initial load, which
// is a no-op after the first call.
func (a *App) Activate(ctx context.Context) {
	a.log.Debug("activated")
	a.Coordinator.Load(ctx)
}

// Close flushes the log file.
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	return a.logger.Close()
}

// Run boots the curator TUI until the user quits or the context is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	a, err := New(opts)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	userPrefs, _ := prefs.Load(opts.PrefsPath)
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	err = ui.Run(ui.Options{
		Context:   ctx,
		Browser:   a.Coordinator,
		Activate:  a.Activate,
		StartPage: opts.StartPage,
		LogPath:   a.Config.LogPath(),
		ThemeName: userPrefs.Theme,
		Layout:    userPrefs.Layout,
		PrefsPath: prefsPath,
		Logger:    a.log,
	})
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		// Interrupted by signal; not a failure.
		return nil
	}
	return err
}

// FetchPage loads a single page through the coordinator, the same path the
// browser uses, and returns the group together with the paging totals.
func (a *App) FetchPage(ctx context.Context, page int) (state.RecordGroup, state.Snapshot, error) {
	if page < 1 {
		return state.RecordGroup{}, state.Snapshot{}, fmt.Errorf("page must be >= 1, got %d", page)
	}
	if err := a.Coordinator.ShowRecords(ctx, page); err != nil {
		return state.RecordGroup{}, state.Snapshot{}, err
	}
	snap := a.Coordinator.Snapshot()
	group, ok := snap.Current()
	if !ok {
		return state.RecordGroup{}, snap, fmt.Errorf("page %d missing after fetch", page)
	}
	return group, snap, nil
}
