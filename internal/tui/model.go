// Package tui is the terminal browser for the repository feed.
package tui

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"portfolio.dev/internal/feed"
	"portfolio.dev/internal/theme"
)

type keyMap struct {
	Prev  key.Binding
	Next  key.Binding
	Up    key.Binding
	Down  key.Binding
	Open  key.Binding
	Tab   key.Binding
	Close key.Binding
	Theme key.Binding
	Quit  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Prev:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous page")),
		Next:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next page")),
		Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Open:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Tab:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Close: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Theme: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Open, k.Tab, k.Close, k.Theme, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Prev, k.Next, k.Up, k.Down}, {k.Open, k.Tab, k.Close}, {k.Theme, k.Quit}}
}

type loadedMsg struct {
	err error
}

// Model is the bubbletea model of the browser. It owns one feed mount.
type Model struct {
	ctx     context.Context
	feed    *feed.Feed
	theme   *theme.Store
	styles  Styles
	keys    keyMap
	help    help.Model
	spinner spinner.Model

	loading bool
	cursor  int
	width   int
	notice  string
	err     error
}

// New creates the browser model for f
func New(ctx context.Context, f *feed.Feed, store *theme.Store) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:     ctx,
		feed:    f,
		theme:   store,
		styles:  NewStyles(store.IsDark()),
		keys:    defaultKeys(),
		help:    help.New(),
		spinner: sp,
		loading: true,
		width:   80,
	}
}

// Init starts the load and the spinner
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{err: m.feed.Load(m.ctx)}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.feed.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Theme):
		mode, err := m.theme.Toggle()
		if err != nil {
			m.notice = err.Error()
		}
		m.styles = NewStyles(mode == theme.Dark)
		return m, nil
	}

	if m.feed.Status() != feed.StatusReady {
		return m, nil
	}

	if _, open := m.feed.Detail(); open {
		switch {
		case key.Matches(msg, m.keys.Close):
			m.feed.CloseDetail()
		case key.Matches(msg, m.keys.Tab):
			d, _ := m.feed.Detail()
			_ = m.feed.SetTab(d.ActiveTab.Next())
		}
		return m, nil
	}

	page := m.feed.Page()
	switch {
	case key.Matches(msg, m.keys.Prev):
		if !page.PreviousDisabled {
			m.selectPage(page.CurrentPage - 1)
		}
	case key.Matches(msg, m.keys.Next):
		if !page.NextDisabled {
			m.selectPage(page.CurrentPage + 1)
		}
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(page.Projects)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Open):
		if m.cursor < len(page.Projects) {
			_ = m.feed.OpenDetail(page.Projects[m.cursor].Repository)
		}
	default:
		if n, err := strconv.Atoi(msg.String()); err == nil {
			m.selectPage(n)
		}
	}
	return m, nil
}

func (m *Model) selectPage(n int) {
	if err := m.feed.SelectPage(n); err != nil {
		m.notice = err.Error()
		return
	}
	m.cursor = 0
}

// View renders the model
func (m Model) View() string {
	if m.loading {
		return m.spinner.View() + " Loading projects...\n"
	}
	if m.err != nil {
		return m.styles.Error.Render("Error: "+m.err.Error()) + "\n"
	}

	var body string
	switch m.feed.Status() {
	case feed.StatusError:
		body = RenderError(m.styles, m.feed.Message())
	case feed.StatusReady:
		if d, open := m.feed.Detail(); open {
			body = RenderDetail(m.styles, d, m.width-2)
		} else {
			body = RenderPage(m.styles, m.feed.Page(), m.cursor, m.width-2)
		}
	}

	parts := []string{body}
	if m.notice != "" {
		parts = append(parts, m.styles.Muted.Render(m.notice))
	}
	parts = append(parts, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, parts...) + "\n"
}
