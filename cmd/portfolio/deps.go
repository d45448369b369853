package main

import (
	"portfolio.dev/internal/config"
	"portfolio.dev/internal/feed"
	"portfolio.dev/internal/github"
	"portfolio.dev/internal/models"
	"portfolio.dev/internal/services"
	"portfolio.dev/internal/theme"
)

// newProjectService wires the GitHub source, the overlay tables and the feed
// options from the loaded config.
func newProjectService(cfg *config.Config) (*services.ProjectService, error) {
	tables, err := config.LoadOverlay(cfg.Feed.OverlayPath)
	if err != nil {
		return nil, err
	}
	return projectServiceWith(cfg, tables)
}

func projectServiceWith(cfg *config.Config, tables *models.OverlayTables) (*services.ProjectService, error) {
	client, err := github.NewClient(cfg.GitHub, nil, logger.Named("github"))
	if err != nil {
		return nil, err
	}

	opts, err := feedOptions(cfg)
	if err != nil {
		return nil, err
	}

	service := services.NewProjectService(client, feed.NewOverlay(*tables), opts, cfg.Server.StaticDir, logger.Named("feed"))
	service.SetMountPolicy(cfg.Feed.MountTTL, cfg.Feed.MaxMounts)
	return service, nil
}

func feedOptions(cfg *config.Config) (feed.Options, error) {
	loc, err := cfg.Location()
	if err != nil {
		return feed.Options{}, err
	}
	return feed.Options{
		Account:       cfg.GitHub.Account,
		PageSize:      cfg.Feed.PageSize,
		ExcludeMarker: cfg.Feed.ExcludeMarker,
		Location:      loc,
	}, nil
}

// newThemeStore loads the persisted theme
func newThemeStore(cfg *config.Config) (*theme.Store, error) {
	path := cfg.Theme.Path
	if path == "" {
		var err error
		path, err = theme.DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	store := theme.NewStore(path, nil)
	if _, err := store.Load(); err != nil {
		return nil, err
	}
	return store, nil
}
