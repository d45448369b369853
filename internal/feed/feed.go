// Package feed implements the repository listing pipeline: fetch the account's
// public repositories once, keep the non-site ones ordered by stars, and serve
// pages of enriched projects plus a detail overlay.
package feed

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"portfolio.dev/internal/models"
)

// Fetcher lists the public repositories of an account
type Fetcher interface {
	ListRepositories(ctx context.Context, account string) ([]models.Repository, error)
}

// Status is the load state of a Feed
type Status int

const (
	StatusLoading Status = iota
	StatusReady
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusError:
		return "error"
	}
	return "loading"
}

// Options configures a Feed
type Options struct {
	Account       string
	PageSize      int
	ExcludeMarker string
	Location      *time.Location // for the rate-limit reset time; nil means time.Local
}

func (o Options) withDefaults() Options {
	if o.PageSize <= 0 {
		o.PageSize = DefaultPageSize
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	return o
}

// PageView is one page of the working set
type PageView struct {
	Projects         []models.DisplayProject `json:"projects"`
	CurrentPage      int                     `json:"current_page"`
	TotalPages       int                     `json:"total_pages"`
	Total            int                     `json:"total"`
	ShowPagination   bool                    `json:"show_pagination"`
	PreviousDisabled bool                    `json:"previous_disabled"`
	NextDisabled     bool                    `json:"next_disabled"`
}

// Feed is a single mount of the repository listing. It moves from Loading to
// Ready or Error exactly once; only a new Feed loads again.
type Feed struct {
	id      string
	fetcher Fetcher
	overlay *Overlay
	opts    Options
	logger  *zap.Logger

	mu       sync.Mutex
	status   Status
	started  bool
	closed   bool
	cancel   context.CancelFunc
	repos    []models.Repository
	err      *Error
	page     int
	selected *models.Repository
	tab      Tab
}

// New creates a Feed in the Loading state
func New(fetcher Fetcher, overlay *Overlay, opts Options, logger *zap.Logger) *Feed {
	if overlay == nil {
		overlay = NewOverlay(models.OverlayTables{})
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.NewString()
	return &Feed{
		id:      id,
		fetcher: fetcher,
		overlay: overlay,
		opts:    opts.withDefaults(),
		logger:  logger.With(zap.String("mount", id), zap.String("account", opts.Account)),
		status:  StatusLoading,
	}
}

// ID identifies this mount in logs
func (f *Feed) ID() string {
	return f.id
}

// Load fetches the repositories and settles the Feed into Ready or Error.
// A failed fetch is recorded in the Feed and is not returned; the error
// return is reserved for misuse and cancellation.
func (f *Feed) Load(ctx context.Context) error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return ErrClosed
	}
	if f.started {
		f.mu.Unlock()
		return ErrAlreadyLoaded
	}
	f.started = true
	ctx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	f.mu.Unlock()
	defer cancel()

	start := time.Now()
	fetched, err := f.fetcher.ListRepositories(ctx, f.opts.Account)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancel = nil

	if f.closed {
		f.logger.Debug("Discarding load result after close")
		return ErrClosed
	}

	if err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("load repositories: %w", err)
		}
		var fe *Error
		if !errors.As(err, &fe) {
			fe = NetworkFailure(f.opts.Account, err)
		}
		f.fail(fe)
		return nil
	}

	set := WorkingSet(fetched, f.opts.ExcludeMarker)
	if len(set) == 0 {
		f.fail(Empty(f.opts.Account))
		return nil
	}

	f.repos = set
	f.page = 1
	f.status = StatusReady
	f.logger.Info("Repositories loaded",
		zap.Int("fetched", len(fetched)),
		zap.Int("shown", len(set)),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

func (f *Feed) fail(e *Error) {
	f.err = e
	f.status = StatusError
	f.logger.Warn("Repository load failed",
		zap.Stringer("kind", e.Kind),
		zap.Int("status_code", e.StatusCode),
		zap.Error(e))
}

// Close unmounts the Feed, cancelling a load still in flight
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	if f.cancel != nil {
		f.cancel()
	}
}

// Status returns the current load state
func (f *Feed) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// Err returns the load failure, or nil
func (f *Feed) Err() *Error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Message returns the user-facing failure text, or "" when not in Error
func (f *Feed) Message() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err == nil {
		return ""
	}
	return f.err.Message(f.opts.Location)
}

// Repositories returns a copy of the working set
func (f *Feed) Repositories() []models.Repository {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Repository, len(f.repos))
	copy(out, f.repos)
	return out
}

// Lookup finds a repository of the working set by exact name
func (f *Feed) Lookup(name string) (models.Repository, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.repos {
		if r.Name == name {
			return r, true
		}
	}
	return models.Repository{}, false
}

// Overlay returns the metadata overlay used for enrichment
func (f *Feed) Overlay() *Overlay {
	return f.overlay
}

// TotalPages returns the page count of the working set
func (f *Feed) TotalPages() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return TotalPages(len(f.repos), f.opts.PageSize)
}

// CurrentPage returns the selected page, 0 until Ready
func (f *Feed) CurrentPage() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.page
}

// SelectPage makes n the current page. Out-of-range pages are rejected,
// not clamped.
func (f *Feed) SelectPage(n int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.status != StatusReady {
		return ErrNotReady
	}
	total := TotalPages(len(f.repos), f.opts.PageSize)
	if n < 1 || n > total {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrPageOutOfRange, n, total)
	}
	f.page = n
	return nil
}

// Page returns the current page view. Before Ready it is empty.
func (f *Feed) Page() PageView {
	f.mu.Lock()
	defer f.mu.Unlock()

	total := TotalPages(len(f.repos), f.opts.PageSize)
	view := PageView{
		Projects:    []models.DisplayProject{},
		CurrentPage: f.page,
		TotalPages:  total,
		Total:       len(f.repos),
	}
	if f.status != StatusReady {
		return view
	}

	for _, r := range Paginate(f.repos, f.opts.PageSize, f.page) {
		view.Projects = append(view.Projects, f.overlay.Enrich(r))
	}
	view.ShowPagination = total > 1
	view.PreviousDisabled = f.page == 1
	view.NextDisabled = f.page == total
	return view
}

// OpenDetail selects repo for the detail overlay and resets the tab
func (f *Feed) OpenDetail(repo models.Repository) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.status != StatusReady {
		return ErrNotReady
	}
	f.selected = &repo
	f.tab = DefaultTab
	return nil
}

// CloseDetail clears the detail overlay
func (f *Feed) CloseDetail() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.selected = nil
	f.tab = ""
}

// SetTab switches the active tab of the open detail
func (f *Feed) SetTab(tab Tab) error {
	if _, err := ParseTab(string(tab)); err != nil || tab == "" {
		return fmt.Errorf("%w: %q", ErrUnknownTab, tab)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.selected == nil {
		return ErrNotReady
	}
	f.tab = tab
	return nil
}

// Detail returns the open detail overlay
func (f *Feed) Detail() (DetailView, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.selected == nil {
		return DetailView{}, false
	}
	project := f.overlay.Enrich(*f.selected)
	return DetailView{
		Project:   project,
		ActiveTab: f.tab,
		Tabs:      Tabs,
		Content:   TabContent(project, f.tab),
	}, true
}
