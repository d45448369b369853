package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"portfolio.dev/internal/config"
	"portfolio.dev/internal/feed"
)

const reposJSON = `[
	{
		"id": 1,
		"name": "qeats",
		"description": "Food ordering backend",
		"html_url": "https://github.com/octo/qeats",
		"homepage": "https://qeats.example.com",
		"topics": ["java", "spring"],
		"language": "Java",
		"stargazers_count": 12,
		"forks_count": 3,
		"updated_at": "2024-05-01T10:00:00Z"
	},
	{
		"id": 2,
		"name": "octo.github.io",
		"html_url": "https://github.com/octo/octo.github.io",
		"stargazers_count": 1,
		"updated_at": "2024-04-01T10:00:00Z"
	}
]`

func newTestClient(t *testing.T, serverURL string, mutate ...func(*config.GitHubConfig)) *Client {
	t.Helper()
	cfg := config.GitHubConfig{BaseURL: serverURL, Timeout: 5 * time.Second}
	for _, m := range mutate {
		m(&cfg)
	}
	c, err := NewClient(cfg, nil, zaptest.NewLogger(t))
	require.NoError(t, err)
	return c
}

func TestClient_ListRepositories(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/users/octo/repos", r.URL.Path)
		assert.Equal(t, "updated", r.URL.Query().Get("sort"))
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		assert.Empty(t, r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(reposJSON))
	}))
	defer server.Close()

	repos, err := newTestClient(t, server.URL).ListRepositories(context.Background(), "octo")
	require.NoError(t, err)
	require.Len(t, repos, 2)

	q := repos[0]
	assert.Equal(t, int64(1), q.ID)
	assert.Equal(t, "qeats", q.Name)
	assert.Equal(t, "Food ordering backend", q.Description)
	assert.Equal(t, "https://github.com/octo/qeats", q.HTMLURL)
	assert.Equal(t, "https://qeats.example.com", q.Homepage)
	assert.Equal(t, []string{"java", "spring"}, q.Topics)
	assert.Equal(t, "Java", q.Language)
	assert.Equal(t, 12, q.Stars)
	assert.Equal(t, 3, q.Forks)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), q.UpdatedAt.UTC())

	site := repos[1]
	assert.Empty(t, site.Description)
	assert.Empty(t, site.Homepage)
	assert.NotNil(t, site.Topics)
}

func TestClient_SendsToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer ghp_secret", r.Header.Get("Authorization"))
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, func(cfg *config.GitHubConfig) { cfg.Token = "ghp_secret" })
	repos, err := c.ListRepositories(context.Background(), "octo")
	require.NoError(t, err)
	assert.Empty(t, repos)
}

func TestClient_CachedTransportStillLists(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("ETag", `"v1"`)
		if r.Header.Get("If-None-Match") == `"v1"` {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Write([]byte(reposJSON))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, func(cfg *config.GitHubConfig) { cfg.Cache = true })
	for i := 0; i < 2; i++ {
		repos, err := c.ListRepositories(context.Background(), "octo")
		require.NoError(t, err)
		assert.Len(t, repos, 2)
	}
	assert.Equal(t, 2, calls)
}

func TestClient_ErrorClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		header map[string]string
		body   string
		kind   feed.Kind
		check  func(t *testing.T, e *feed.Error)
	}{
		{
			name:   "rate limited",
			status: http.StatusForbidden,
			header: map[string]string{
				"X-RateLimit-Remaining": "0",
				"X-RateLimit-Reset":     "1700000000",
			},
			body: `{"message": "API rate limit exceeded"}`,
			kind: feed.KindRateLimited,
			check: func(t *testing.T, e *feed.Error) {
				assert.True(t, e.ResetAt.Equal(time.Unix(1700000000, 0)))
				want := time.Unix(1700000000, 0).In(time.Local).Format(feed.ResetTimeLayout)
				assert.Contains(t, e.Message(time.Local), want)
			},
		},
		{
			name:   "forbidden with quota left",
			status: http.StatusForbidden,
			header: map[string]string{"X-RateLimit-Remaining": "42"},
			body:   `{"message": "Forbidden"}`,
			kind:   feed.KindAccessDenied,
		},
		{
			name:   "account not found",
			status: http.StatusNotFound,
			body:   `{"message": "Not Found"}`,
			kind:   feed.KindNotFound,
			check: func(t *testing.T, e *feed.Error) {
				assert.Contains(t, e.Message(nil), `"octo"`)
			},
		},
		{
			name:   "server error",
			status: http.StatusBadGateway,
			body:   `{"message": "upstream"}`,
			kind:   feed.KindUnexpectedStatus,
			check: func(t *testing.T, e *feed.Error) {
				assert.Equal(t, 502, e.StatusCode)
				assert.Equal(t, "Bad Gateway", e.StatusText)
				assert.Contains(t, e.Message(nil), "502 Bad Gateway")
			},
		},
		{
			name:   "malformed body",
			status: http.StatusOK,
			body:   `{"not": "an array"`,
			kind:   feed.KindNetworkFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				for k, v := range tt.header {
					w.Header().Set(k, v)
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := newTestClient(t, server.URL).ListRepositories(context.Background(), "octo")
			require.Error(t, err)

			var fe *feed.Error
			require.True(t, errors.As(err, &fe), "got %T: %v", err, err)
			assert.Equal(t, tt.kind, fe.Kind)
			assert.Equal(t, "octo", fe.Account)
			if tt.check != nil {
				tt.check(t, fe)
			}
		})
	}
}

func TestClient_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newTestClient(t, url).ListRepositories(context.Background(), "octo")

	var fe *feed.Error
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, feed.KindNetworkFailure, fe.Kind)
	assert.NotNil(t, fe.Unwrap())
}

func TestClient_CancellationPassesThrough(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := newTestClient(t, server.URL).ListRepositories(ctx, "octo")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClassify(t *testing.T) {
	assert.NoError(t, Classify("octo", nil))

	err := Classify("octo", fmt.Errorf("boom"))
	var fe *feed.Error
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, feed.KindNetworkFailure, fe.Kind)
}

func TestClassifyStatus_RateLimitWithoutReset(t *testing.T) {
	resp := &http.Response{
		StatusCode: http.StatusForbidden,
		Status:     "403 Forbidden",
		Header:     http.Header{"X-Ratelimit-Remaining": []string{"0"}},
	}

	fe := classifyStatus("octo", resp)
	assert.Equal(t, feed.KindRateLimited, fe.Kind)
	assert.True(t, fe.ResetAt.IsZero())
	assert.Contains(t, fe.Message(time.UTC), "try again later")
	assert.NotContains(t, fe.Message(time.UTC), "12:00:00")
}

func TestResetTime(t *testing.T) {
	h := http.Header{}
	assert.True(t, resetTime(h).IsZero())

	h.Set("X-RateLimit-Reset", "soon")
	assert.True(t, resetTime(h).IsZero())

	h.Set("X-RateLimit-Reset", "1700000000")
	assert.Equal(t, int64(1700000000), resetTime(h).Unix())
}
