package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"portfolio.dev/internal/feed"
	"portfolio.dev/internal/models"
)

const minCardWidth = 40

// RenderCard renders one project card
func RenderCard(st Styles, p models.DisplayProject, active bool, width int) string {
	if width < minCardWidth {
		width = minCardWidth
	}

	var b strings.Builder
	b.WriteString(st.CardTitle.Render(p.Name))
	b.WriteString(st.Muted.Render(fmt.Sprintf("  ★ %d  ⑂ %d", p.Stars, p.Forks)))
	if p.Language != "" {
		b.WriteString(st.Muted.Render("  " + p.Language))
	}
	b.WriteString("\n")

	desc := p.Description
	if strings.TrimSpace(desc) == "" {
		desc = feed.NoDescription
	}
	b.WriteString(desc)
	b.WriteString("\n")

	if len(p.Topics) > 0 {
		tags := make([]string, 0, len(p.Topics))
		for _, t := range p.Topics {
			tags = append(tags, st.Tag.Render(t))
		}
		b.WriteString(strings.Join(tags, " "))
		b.WriteString("\n")
	}

	b.WriteString(st.Muted.Render("image ") + p.ImageURL + "\n")
	b.WriteString(st.Link.Render(p.HTMLURL))
	if p.Homepage != "" {
		b.WriteString("  " + st.Link.Render(p.Homepage))
	}

	style := st.Card
	if active {
		style = st.ActiveCard
	}
	return style.Width(width).Render(b.String())
}

// RenderPage renders the cards of a page followed by the pagination bar.
// selected is the index of the highlighted card, or -1.
func RenderPage(st Styles, view feed.PageView, selected, width int) string {
	cards := make([]string, 0, len(view.Projects)+2)
	cards = append(cards, st.Title.Render("Projects"))
	for i, p := range view.Projects {
		cards = append(cards, RenderCard(st, p, i == selected, width))
	}
	if bar := RenderPagination(st, view); bar != "" {
		cards = append(cards, bar)
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

// RenderPagination renders Previous, the page numbers and Next. It returns ""
// when there is a single page.
func RenderPagination(st Styles, view feed.PageView) string {
	if !view.ShowPagination {
		return ""
	}

	parts := make([]string, 0, view.TotalPages+2)
	parts = append(parts, button(st, "‹ Previous", view.PreviousDisabled))
	for n := 1; n <= view.TotalPages; n++ {
		label := fmt.Sprintf("%d", n)
		if n == view.CurrentPage {
			parts = append(parts, st.PageActive.Render(label))
		} else {
			parts = append(parts, st.Page.Render(label))
		}
	}
	parts = append(parts, button(st, "Next ›", view.NextDisabled))
	return lipgloss.JoinHorizontal(lipgloss.Center, spaced(parts)...)
}

func button(st Styles, label string, disabled bool) string {
	if disabled {
		return st.Disabled.Render(label)
	}
	return st.Page.Render(label)
}

func spaced(parts []string) []string {
	out := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			out = append(out, " ")
		}
		out = append(out, p)
	}
	return out
}

// DetailMarkdown renders the active tab of a detail overlay as markdown
func DetailMarkdown(d feed.DetailView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n## %s\n\n", d.Project.Name, d.ActiveTab.Title())
	for _, line := range d.Content {
		fmt.Fprintf(&b, "- %s\n", line)
	}
	return b.String()
}

// RenderDetail renders the tab bar and the active tab content
func RenderDetail(st Styles, d feed.DetailView, width int) string {
	tabs := make([]string, 0, len(d.Tabs))
	for _, t := range d.Tabs {
		if t == d.ActiveTab {
			tabs = append(tabs, st.TabActive.Render(t.Title()))
		} else {
			tabs = append(tabs, st.Tab.Render(t.Title()))
		}
	}

	md := DetailMarkdown(d)
	styleName := "light"
	if st.Dark {
		styleName = "dark"
	}
	body, err := glamour.Render(md, styleName)
	if err != nil {
		body = md
	}

	if width < minCardWidth {
		width = minCardWidth
	}
	return st.ActiveCard.Width(width).Render(
		lipgloss.JoinVertical(lipgloss.Left, lipgloss.JoinHorizontal(lipgloss.Top, tabs...), body),
	)
}

// RenderError renders a failed load in place of the grid
func RenderError(st Styles, message string) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		st.Title.Render("Projects"),
		st.Error.Render("Error: "+message),
	)
}
