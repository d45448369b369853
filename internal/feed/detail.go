package feed

import (
	"fmt"
	"strings"

	"portfolio.dev/internal/models"
)

// NoInformation is shown on a tab that has nothing to list
const NoInformation = "No information available."

// NoDescription is shown for repositories without a description
const NoDescription = "No description available"

// Tab selects the content of the detail overlay
type Tab string

const (
	TabOverview     Tab = "overview"
	TabScope        Tab = "scope"
	TabTechnologies Tab = "technologies"
)

// DefaultTab is the tab selected whenever a detail is opened
const DefaultTab = TabOverview

// Tabs lists the detail tabs in display order
var Tabs = []Tab{TabOverview, TabScope, TabTechnologies}

// ParseTab parses a tab name; the empty string yields DefaultTab
func ParseTab(s string) (Tab, error) {
	if s == "" {
		return DefaultTab, nil
	}
	for _, t := range Tabs {
		if string(t) == strings.ToLower(s) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTab, s)
}

// Next returns the tab after t, wrapping around
func (t Tab) Next() Tab {
	for i, tab := range Tabs {
		if tab == t {
			return Tabs[(i+1)%len(Tabs)]
		}
	}
	return DefaultTab
}

// Title returns the label shown on the tab
func (t Tab) Title() string {
	switch t {
	case TabScope:
		return "Scope of Work"
	case TabTechnologies:
		return "Technologies"
	}
	return "Overview"
}

// DetailView is the state of the detail overlay
type DetailView struct {
	Project   models.DisplayProject `json:"project"`
	ActiveTab Tab                   `json:"active_tab"`
	Tabs      []Tab                 `json:"tabs"`
	Content   []string              `json:"content"`
}

// TabContent returns the lines shown on tab for p. The result is never nil
// and never empty.
func TabContent(p models.DisplayProject, tab Tab) []string {
	switch tab {
	case TabScope:
		return orPlaceholder(p.ScopeBullets)
	case TabTechnologies:
		return orPlaceholder(p.Technologies)
	}

	lines := []string{describe(p.Repository)}
	if p.Language != "" {
		lines = append(lines, "Language: "+p.Language)
	}
	lines = append(lines, fmt.Sprintf("Stars: %d, Forks: %d", p.Stars, p.Forks))
	if len(p.Topics) > 0 {
		lines = append(lines, "Topics: "+strings.Join(p.Topics, ", "))
	}
	lines = append(lines, "Code: "+p.HTMLURL)
	if p.Homepage != "" {
		lines = append(lines, "Live demo: "+p.Homepage)
	}
	return lines
}

func describe(r models.Repository) string {
	if strings.TrimSpace(r.Description) == "" {
		return NoDescription
	}
	return r.Description
}

func orPlaceholder(items []string) []string {
	if len(items) == 0 {
		return []string{NoInformation}
	}
	out := make([]string, len(items))
	copy(out, items)
	return out
}
