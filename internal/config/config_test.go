package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio.dev/internal/feed"
	"portfolio.dev/internal/models"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"SERVER_ADDR", "PORTFOLIO_GITHUB_ACCOUNT", "GITHUB_TOKEN", "PORTFOLIO_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 6, cfg.Feed.PageSize)
	assert.Equal(t, ".github.io", cfg.Feed.ExcludeMarker)
	assert.Equal(t, "https://api.github.com/", cfg.GitHub.BaseURL)
	assert.False(t, cfg.GitHub.Cache)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.yaml", `
server:
  addr: ":9000"
github:
  account: octocat
  timeout: 3s
feed:
  page_size: 9
  time_zone: UTC
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "static", cfg.Server.StaticDir, "unset keys keep their defaults")
	assert.Equal(t, "octocat", cfg.GitHub.Account)
	assert.Equal(t, 3*time.Second, cfg.GitHub.Timeout)
	assert.Equal(t, 9, cfg.Feed.PageSize)
	assert.Equal(t, "debug", cfg.Logging.Level)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_ADDR", ":7070")
	t.Setenv("PORTFOLIO_GITHUB_ACCOUNT", "from-env")
	t.Setenv("GITHUB_TOKEN", "ghp_test")
	t.Setenv("PORTFOLIO_LOG_LEVEL", "warn")

	path := writeFile(t, "config.yaml", "github:\n  account: from-file\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, "from-env", cfg.GitHub.Account)
	assert.Equal(t, "ghp_test", cfg.GitHub.Token)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)

	_, err := Load(writeFile(t, "bad.yaml", "feed: [unclosed"))
	assert.ErrorContains(t, err, "failed to parse config")

	_, err = Load(writeFile(t, "zero.yaml", "feed:\n  page_size: 0\n"))
	assert.ErrorContains(t, err, "feed.page_size must be positive")

	_, err = Load(writeFile(t, "tz.yaml", "feed:\n  time_zone: Mars/Olympus\n"))
	assert.ErrorContains(t, err, "feed.time_zone")

	_, err = Load(writeFile(t, "acct.yaml", "github:\n  account: \"  \"\n"))
	assert.ErrorContains(t, err, "github.account is required")
}

func TestLoadOverlay(t *testing.T) {
	path := writeFile(t, "overlay.yaml", `
default_image: /static/images/projects/default.png
images:
  xmeme: /static/images/projects/xmeme.png
scope:
  qeats:
    - Built the restaurant search API
technologies:
  qeats: [Java, Spring Boot, MongoDB]
`)

	tables, err := LoadOverlay(path)
	require.NoError(t, err)
	assert.Equal(t, "/static/images/projects/default.png", tables.DefaultImage)
	assert.Equal(t, "/static/images/projects/xmeme.png", tables.Images["xmeme"])
	assert.Equal(t, []string{"Built the restaurant search API"}, tables.Scope["qeats"])
	assert.Equal(t, []string{"Java", "Spring Boot", "MongoDB"}, tables.Technologies["qeats"])

	_, err = LoadOverlay(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to load overlay")
}

func TestLoadProfile(t *testing.T) {
	path := writeFile(t, "profile.yaml", `
name: Octo Cat
headline: Backend Developer
skills:
  - {name: Go, icon: "🐹", category: Backend, proficiency: 90}
contact:
  - {label: GitHub, url: "https://github.com/octocat"}
`)

	profile, err := LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, "Octo Cat", profile.Name)
	require.Len(t, profile.Skills, 1)
	assert.Equal(t, 90, profile.Skills[0].Proficiency)
	require.Len(t, profile.Contact, 1)
	assert.Equal(t, "https://github.com/octocat", profile.Contact[0].URL)
}

func TestValidate_AllowsDefaultsInAnyTimeZone(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Feed.TimeZone = "Asia/Kolkata"
	if _, err := time.LoadLocation("Asia/Kolkata"); err != nil {
		t.Skip("tzdata not available")
	}
	assert.NoError(t, cfg.Validate())
}

func TestSaveOverlay_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "overlay.yaml")
	tables := &models.OverlayTables{
		Images:       map[string]string{"QEats": "/static/images/projects/qeats.png"},
		Technologies: map[string][]string{"qeats": {"Java"}},
	}

	require.NoError(t, SaveOverlay(path, tables))

	got, err := LoadOverlay(path)
	require.NoError(t, err)
	assert.Equal(t, tables.Images, got.Images)
	assert.Equal(t, tables.Technologies, got.Technologies)
}

func TestShippedOverlayImagesExist(t *testing.T) {
	root := filepath.Join("..", "..")
	cfg := DefaultConfig()
	staticDir := filepath.Join(root, cfg.Server.StaticDir)

	tables, err := LoadOverlay(filepath.Join(root, cfg.Feed.OverlayPath))
	require.NoError(t, err)

	urls := []string{feed.NewOverlay(*tables).DefaultImage()}
	for name, url := range tables.Images {
		assert.NotContains(t, name, " ", "image keys are exact repository names")
		urls = append(urls, url)
	}

	for _, url := range urls {
		if !strings.HasPrefix(url, "/static/") {
			continue
		}
		path := filepath.Join(staticDir, filepath.FromSlash(strings.TrimPrefix(url, "/static/")))
		_, err := os.Stat(path)
		assert.NoError(t, err, url)
	}
}
