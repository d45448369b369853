package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"portfolio.dev/internal/feed"
	"portfolio.dev/internal/models"
)

// ErrProjectNotFound is returned for names outside the working set
var ErrProjectNotFound = errors.New("project not found")

// ProjectsResponse is one page of the feed, or the reason there is none.
// Mount identifies the loaded feed for follow-up requests.
type ProjectsResponse struct {
	Mount  string         `json:"mount"`
	Status string         `json:"status"`
	Page   *feed.PageView `json:"page,omitempty"`
	Error  *ErrorPayload  `json:"error,omitempty"`
}

// DetailResponse is the detail overlay of one project of a mount
type DetailResponse struct {
	Mount string `json:"mount"`
	feed.DetailView
}

// ErrorPayload reports a failed load to the client
type ErrorPayload struct {
	Kind       feed.Kind  `json:"-"`
	Type       string     `json:"kind"`
	Message    string     `json:"message"`
	StatusCode int        `json:"status_code,omitempty"`
	ResetAt    *time.Time `json:"reset_at,omitempty"`
}

// ProjectService mounts repository feeds for consumers. Feeds loaded for the
// HTTP API are kept by mount id so one page load fetches once.
type ProjectService struct {
	fetcher   feed.Fetcher
	overlay   *feed.Overlay
	opts      feed.Options
	staticDir string
	logger    *zap.Logger
	mounts    *mountRegistry
}

// NewProjectService creates a new ProjectService. staticDir is where local
// project images live; empty disables the image check.
func NewProjectService(fetcher feed.Fetcher, overlay *feed.Overlay, opts feed.Options, staticDir string, logger *zap.Logger) *ProjectService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProjectService{
		fetcher:   fetcher,
		overlay:   overlay,
		opts:      opts,
		staticDir: staticDir,
		logger:    logger,
		mounts:    newMountRegistry(DefaultMountTTL, DefaultMaxMounts, logger),
	}
}

// SetMountPolicy replaces the idle expiry and the mount limit. Zero values
// keep the defaults. Call it before serving.
func (s *ProjectService) SetMountPolicy(ttl time.Duration, maxMounts int) {
	s.mounts = newMountRegistry(ttl, maxMounts, s.logger)
}

// Close unmounts every kept feed
func (s *ProjectService) Close() {
	s.mounts.closeAll()
}

// NewFeed creates an unloaded feed
func (s *ProjectService) NewFeed() *feed.Feed {
	return feed.New(s.fetcher, s.overlay, s.opts, s.logger)
}

// Mount creates a feed and loads it. The caller owns the feed and must Close it.
func (s *ProjectService) Mount(ctx context.Context) (*feed.Feed, error) {
	f := s.NewFeed()
	if err := f.Load(ctx); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// acquire returns the kept mount for id, or loads and keeps a new one when
// id is empty, unknown or expired.
func (s *ProjectService) acquire(ctx context.Context, id string) (*mount, error) {
	if m, ok := s.mounts.get(id); ok {
		return m, nil
	}
	f, err := s.Mount(ctx)
	if err != nil {
		return nil, err
	}
	if id != "" {
		s.logger.Debug("Mount expired, loading again", zap.String("previous", id))
	}
	return s.mounts.add(f), nil
}

// NewErrorPayload describes e for the client
func NewErrorPayload(e *feed.Error, loc *time.Location) *ErrorPayload {
	p := &ErrorPayload{
		Kind:       e.Kind,
		Type:       e.Kind.String(),
		Message:    e.Message(loc),
		StatusCode: e.StatusCode,
	}
	if e.Kind == feed.KindRateLimited && !e.ResetAt.IsZero() {
		reset := e.ResetAt
		p.ResetAt = &reset
	}
	return p
}

// ListProjects selects page n of the mount identified by mountID, loading a
// new mount first when there is none. The response names the mount used.
func (s *ProjectService) ListProjects(ctx context.Context, mountID string, page int) (*ProjectsResponse, error) {
	m, err := s.acquire(ctx, mountID)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	f := m.feed

	resp := &ProjectsResponse{Mount: f.ID(), Status: f.Status().String()}
	if fe := f.Err(); fe != nil {
		resp.Error = NewErrorPayload(fe, s.opts.Location)
		return resp, nil
	}

	if err := f.SelectPage(page); err != nil {
		return resp, err
	}

	view := f.Page()
	for i := range view.Projects {
		s.checkImage(&view.Projects[i])
	}
	resp.Page = &view
	return resp, nil
}

// GetProject opens the detail of the named project on tab, within the mount
// identified by mountID. A failed load is returned as *feed.Error alongside
// a response naming the mount.
func (s *ProjectService) GetProject(ctx context.Context, mountID, name string, tab feed.Tab) (*DetailResponse, error) {
	m, err := s.acquire(ctx, mountID)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	f := m.feed

	resp := &DetailResponse{Mount: f.ID()}
	if fe := f.Err(); fe != nil {
		return resp, fe
	}

	repo, ok := f.Lookup(name)
	if !ok {
		return resp, fmt.Errorf("%w: %s", ErrProjectNotFound, name)
	}
	if err := f.OpenDetail(repo); err != nil {
		return resp, err
	}
	if err := f.SetTab(tab); err != nil {
		return resp, err
	}

	resp.DetailView, _ = f.Detail()
	s.checkImage(&resp.Project)
	return resp, nil
}

// checkImage falls back to the default image when a local image is missing
func (s *ProjectService) checkImage(p *models.DisplayProject) {
	if s.localMissing(p.ImageURL) {
		img := feed.NewImageSource(*p)
		if img.OnError() {
			s.logger.Debug("Project image missing, using default",
				zap.String("project", p.Name),
				zap.String("image", p.ImageURL))
			p.ImageURL = img.Src()
		}
	}
	if s.localMissing(p.ImageURL) {
		s.logger.Warn("Default project image missing", zap.String("image", p.ImageURL))
	}
}

// localMissing reports whether url names a file under staticDir that does
// not exist. Remote URLs and a disabled check are never missing.
func (s *ProjectService) localMissing(url string) bool {
	if s.staticDir == "" || !strings.HasPrefix(url, "/static/") {
		return false
	}
	rel := strings.TrimPrefix(url, "/static/")
	_, err := os.Stat(filepath.Join(s.staticDir, filepath.FromSlash(rel)))
	return err != nil
}
