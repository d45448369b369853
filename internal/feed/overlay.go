package feed

import (
	"strings"

	"portfolio.dev/internal/models"
)

// DefaultImage is used when the overlay tables name no default
const DefaultImage = "/static/images/projects/default.png"

// Overlay resolves presentation metadata for repositories from static tables.
// Images match the exact repository name. Scope and technologies match the
// normalized name.
type Overlay struct {
	defaultImage string
	images       map[string]string
	scope        map[string][]string
	technologies map[string][]string
}

// NewOverlay builds an Overlay, normalizing the scope and technology keys
func NewOverlay(t models.OverlayTables) *Overlay {
	o := &Overlay{
		defaultImage: t.DefaultImage,
		images:       make(map[string]string, len(t.Images)),
		scope:        make(map[string][]string, len(t.Scope)),
		technologies: make(map[string][]string, len(t.Technologies)),
	}
	if o.defaultImage == "" {
		o.defaultImage = DefaultImage
	}
	for name, url := range t.Images {
		o.images[name] = url
	}
	for name, bullets := range t.Scope {
		o.scope[Normalize(name)] = bullets
	}
	for name, tech := range t.Technologies {
		o.technologies[Normalize(name)] = tech
	}
	return o
}

// Normalize lower-cases and trims name, then strips everything outside [a-z0-9]
func Normalize(name string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DefaultImage returns the fallback image URL
func (o *Overlay) DefaultImage() string {
	return o.defaultImage
}

// ImageURL returns the image for name, or the default image
func (o *Overlay) ImageURL(name string) string {
	if url, ok := o.images[name]; ok && url != "" {
		return url
	}
	return o.defaultImage
}

// ScopeBullets returns a copy of the scope-of-work bullets for name; never nil
func (o *Overlay) ScopeBullets(name string) []string {
	return copyOrEmpty(o.scope[Normalize(name)])
}

// Technologies returns a copy of the technology tags for name; never nil
func (o *Overlay) Technologies(name string) []string {
	return copyOrEmpty(o.technologies[Normalize(name)])
}

// Enrich wraps repo with its overlay metadata
func (o *Overlay) Enrich(repo models.Repository) models.DisplayProject {
	return models.DisplayProject{
		Repository:       repo,
		ImageURL:         o.ImageURL(repo.Name),
		FallbackImageURL: o.defaultImage,
		ScopeBullets:     o.ScopeBullets(repo.Name),
		Technologies:     o.Technologies(repo.Name),
	}
}

func copyOrEmpty(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// ImageSource is the source of one rendered image element. OnError swaps in
// the fallback the first time it is called and does nothing afterwards.
type ImageSource struct {
	src      string
	fallback string
	failed   bool
}

// NewImageSource returns an ImageSource for a display project
func NewImageSource(p models.DisplayProject) *ImageSource {
	return &ImageSource{src: p.ImageURL, fallback: p.FallbackImageURL}
}

// Src returns the current source URL
func (s *ImageSource) Src() string {
	return s.src
}

// OnError handles a failed load and reports whether the source changed
func (s *ImageSource) OnError() bool {
	if s.failed {
		return false
	}
	s.failed = true
	s.src = s.fallback
	return true
}
