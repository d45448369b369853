// Package github lists an account's public repositories from the GitHub REST
// API and turns failed responses into feed errors.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	gh "github.com/google/go-github/v55/github"
	"github.com/gregjones/httpcache"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"portfolio.dev/internal/config"
	"portfolio.dev/internal/feed"
	"portfolio.dev/internal/models"
)

// perPage is the page size of the single listing request
const perPage = 100

// Client fetches repositories for the feed
type Client struct {
	gh     *gh.Client
	logger *zap.Logger
}

// NewClient builds a Client from cfg. base may be nil to use the default
// transport.
func NewClient(cfg config.GitHubConfig, base http.RoundTripper, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if base == nil {
		base = http.DefaultTransport
	}

	transport := base
	if cfg.Cache {
		cache := httpcache.NewMemoryCacheTransport()
		cache.Transport = transport
		transport = cache
	}
	if cfg.Token != "" {
		transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token}),
			Base:   transport,
		}
	}

	client := gh.NewClient(&http.Client{
		Transport: transport,
		Timeout:   cfg.Timeout,
	})

	if cfg.BaseURL != "" {
		baseURL := cfg.BaseURL
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid github base url %q: %w", cfg.BaseURL, err)
		}
		client.BaseURL = u
	}

	return &Client{gh: client, logger: logger}, nil
}

// ListRepositories issues GET /users/{account}/repos?sort=updated&per_page=100.
// Only the first page is read.
func (c *Client) ListRepositories(ctx context.Context, account string) ([]models.Repository, error) {
	opts := &gh.RepositoryListOptions{
		Sort:        "updated",
		ListOptions: gh.ListOptions{PerPage: perPage},
	}

	repos, resp, err := c.gh.Repositories.List(ctx, account, opts)
	if err != nil {
		return nil, Classify(account, err)
	}

	if resp != nil {
		c.logger.Debug("Listed repositories",
			zap.String("account", account),
			zap.Int("count", len(repos)),
			zap.Int("rate_remaining", resp.Rate.Remaining))
	}

	out := make([]models.Repository, 0, len(repos))
	for _, r := range repos {
		out = append(out, convert(r))
	}
	return out, nil
}

func convert(r *gh.Repository) models.Repository {
	topics := r.Topics
	if topics == nil {
		topics = []string{}
	}
	return models.Repository{
		ID:          r.GetID(),
		Name:        r.GetName(),
		Description: r.GetDescription(),
		HTMLURL:     r.GetHTMLURL(),
		Homepage:    r.GetHomepage(),
		Topics:      topics,
		Language:    r.GetLanguage(),
		Stars:       r.GetStargazersCount(),
		Forks:       r.GetForksCount(),
		UpdatedAt:   r.GetUpdatedAt().Time,
	}
}

// Classify maps an error from the GitHub client onto the feed error taxonomy.
// Cancellation is passed through untouched.
func Classify(account string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}

	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		return feed.RateLimited(account, rateErr.Rate.Reset.Time)
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return feed.AccessDenied(account)
	}

	var respErr *gh.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		return classifyStatus(account, respErr.Response)
	}

	return feed.NetworkFailure(account, err)
}

func classifyStatus(account string, resp *http.Response) *feed.Error {
	switch resp.StatusCode {
	case http.StatusForbidden:
		if resp.Header.Get("X-RateLimit-Remaining") == "0" {
			return feed.RateLimited(account, resetTime(resp.Header))
		}
		return feed.AccessDenied(account)
	case http.StatusNotFound:
		return feed.NotFound(account)
	}
	return feed.UnexpectedStatus(account, resp.StatusCode, statusText(resp))
}

// statusText returns the reason phrase of resp, e.g. "Bad Gateway"
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
