package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tdx/internal/models"
	"github.com/desertthunder/tdx/internal/services"
	"github.com/desertthunder/tdx/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	SearchView ViewState = iota
	ResultListView
	InfoView
)

// Model represents the TUI application state.
//
// The flow mirrors the CLI: type a query, pick a result, inspect its metadata.
type Model struct {
	ctx        context.Context
	view       ViewState
	spotify    services.Service
	width      int
	height     int
	input      textinput.Model
	resultList list.Model
	results    []models.TrackSummary
	selected   models.TrackSummary
	info       *models.TrackInfo
	searching  bool
	err        error
	help       help.Model
	keys       keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, spotify services.Service) *Model {
	input := textinput.New()
	input.Placeholder = "Track name..."
	input.Focus()
	input.CharLimit = 128
	input.Width = 40

	// the list needs a delegate before the first WindowSizeMsg arrives
	resultList := list.New(nil, list.NewDefaultDelegate(), 0, 0)

	return &Model{
		ctx:        ctx,
		view:       SearchView,
		spotify:    spotify,
		input:      input,
		resultList: resultList,
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

// Init starts the cursor blink in the query input.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resultList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case SearchView:
			return m.handleSearchKeys(msg)
		case ResultListView:
			return m.handleResultListKeys(msg)
		case InfoView:
			return m.handleInfoKeys(msg)
		}

	case Msg:
		return m.handleAppMsg(msg)
	}

	return m.updateChildren(msg)
}

// handleAppMsg dispatches the Elm-style [Msg] union.
func (m *Model) handleAppMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgResultsFetched:
		data := msg.data.(struct {
			results []models.TrackSummary
			err     error
		})
		m.searching = false
		if data.err != nil {
			m.err = data.err
			return m, nil
		}
		m.err = nil
		m.results = data.results
		items := make([]list.Item, len(data.results))
		for i, summary := range data.results {
			items[i] = resultItem{summary: summary}
		}
		cmd := m.resultList.SetItems(items)
		m.resultList.ResetSelected()
		m.resultList.Title = fmt.Sprintf("Results for %q", strings.TrimSpace(m.input.Value()))
		m.resultList.SetSize(m.width-4, m.height-8)
		m.view = ResultListView
		return m, cmd

	case MsgInfoFetched:
		data := msg.data.(struct {
			info *models.TrackInfo
			err  error
		})
		m.searching = false
		if data.err != nil {
			m.err = data.err
			m.view = ResultListView
			return m, nil
		}
		m.err = nil
		m.info = data.info
		m.view = InfoView
		return m, nil
	}

	return m, nil
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case msg.Type == tea.KeyEsc:
		return m, tea.Quit
	case msg.Type == tea.KeyEnter:
		query := strings.TrimSpace(m.input.Value())
		if query == "" {
			return m, nil
		}
		m.searching = true
		m.err = nil
		return m, m.searchTracks(query)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleResultListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		if !m.resultList.SettingFilter() {
			return m, tea.Quit
		}
	case key.Matches(msg, m.keys.back):
		m.view = SearchView
		m.input.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.resultList.SelectedItem().(resultItem); ok {
			m.selected = item.summary
			m.searching = true
			return m, m.fetchInfo(item.summary)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.resultList, cmd = m.resultList.Update(msg)
	return m, cmd
}

func (m *Model) handleInfoKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = ResultListView
		return m, nil
	case key.Matches(msg, m.keys.open):
		if m.info != nil && m.info.Image != "" {
			// best effort: ignore browser launch failures
			_ = shared.OpenBrowser(m.info.Image)
		}
		return m, nil
	}

	return m, nil
}

// updateChildren forwards non-key messages to the focused child component.
func (m *Model) updateChildren(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case SearchView:
		m.input, cmd = m.input.Update(msg)
	case ResultListView:
		m.resultList, cmd = m.resultList.Update(msg)
	}
	return m, cmd
}

// searchTracks returns a command that queries the provider.
func (m *Model) searchTracks(query string) tea.Cmd {
	return func() tea.Msg {
		results, err := m.spotify.SearchTracks(m.ctx, query, 0)
		return resultsFetchedMsg(results, err)
	}
}

// fetchInfo returns a command that loads detail metadata for the selected row.
func (m *Model) fetchInfo(summary models.TrackSummary) tea.Cmd {
	return func() tea.Msg {
		info, err := m.spotify.GetTrackInfo(m.ctx, summary)
		return infoFetchedMsg(info, err)
	}
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case SearchView:
		return m.renderSearch()
	case ResultListView:
		return m.renderResultList()
	case InfoView:
		return m.renderInfo()
	}
	return ""
}

func (m *Model) renderSearch() string {
	var b strings.Builder

	b.WriteString(styles.title.Render("tdx • track search"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if m.searching {
		b.WriteString(styles.warn.Render("Searching..."))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(styles.err.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString(styles.help.Render("enter: search • esc: quit"))
	return b.String()
}

func (m *Model) renderResultList() string {
	if len(m.results) == 0 {
		return styles.warn.Render("No matches.") + "\n\n" +
			styles.help.Render("esc: back • q: quit")
	}

	view := m.resultList.View()
	if m.err != nil {
		view += "\n" + styles.err.Render(fmt.Sprintf("Error: %v", m.err))
	}
	if m.searching {
		view += "\n" + styles.warn.Render("Loading track info...")
	}
	return view
}

func (m *Model) renderInfo() string {
	if m.info == nil {
		return styles.err.Render("No track info loaded.")
	}

	var b strings.Builder

	b.WriteString(styles.title.Render(m.info.Name))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Artist:    %s\n", m.info.Artist))
	b.WriteString(fmt.Sprintf("Duration:  %s\n", m.info.Duration))
	b.WriteString(fmt.Sprintf("Released:  %s\n", m.info.Year))
	b.WriteString(fmt.Sprintf("Label:     %s\n", strings.ReplaceAll(m.info.Label, "\n", " • ")))
	b.WriteString(fmt.Sprintf("Cover art: %s\n", m.info.Image))
	b.WriteString(fmt.Sprintf("Track ID:  %s\n", m.info.TrackID))
	b.WriteString("\n")
	b.WriteString(styles.help.Render("o: open cover art • esc: back • q: quit"))

	return b.String()
}
