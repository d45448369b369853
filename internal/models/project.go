package models

import "time"

// Repository is a public repository as returned by the source-hosting API
type Repository struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	HTMLURL     string    `json:"html_url"`
	Homepage    string    `json:"homepage,omitempty"`
	Topics      []string  `json:"topics"`
	Language    string    `json:"language,omitempty"`
	Stars       int       `json:"stargazers_count"`
	Forks       int       `json:"forks_count"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DisplayProject is a Repository enriched with locally-resolved presentation metadata
type DisplayProject struct {
	Repository
	ImageURL         string   `json:"image_url"`
	FallbackImageURL string   `json:"fallback_image_url"`
	ScopeBullets     []string `json:"scope_bullets"`
	Technologies     []string `json:"technologies"`
}

// OverlayTables holds the static metadata lookup tables.
// Images is keyed by exact repository name; Scope and Technologies are keyed
// by normalized name.
type OverlayTables struct {
	DefaultImage string              `yaml:"default_image"`
	Images       map[string]string   `yaml:"images"`
	Scope        map[string][]string `yaml:"scope"`
	Technologies map[string][]string `yaml:"technologies"`
}
